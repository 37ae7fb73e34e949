package services

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NotFound(msg string) error {
	return fiber.NewError(fiber.StatusNotFound, msg)
}

func BadRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

func Conflict(msg string) error {
	return fiber.NewError(fiber.StatusConflict, msg)
}

func Unauthorized(msg string) error {
	return fiber.NewError(fiber.StatusUnauthorized, msg)
}

// notFoundOr turns gorm.ErrRecordNotFound into a 404 with msg and wraps anything else.
func notFoundOr(err error, msg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

const (
	MsgBarnExists     = "Trang trại này đã tồn tại trong hệ thống"
	MsgBarnInUse      = "Trang trại đang được sử dụng trong hệ thống, không thể xóa."
	MsgBarnNotFound   = "Không tìm thấy trang trại"
	MsgSpeciesExists  = "Loài này đã tồn tại trong hệ thống"
	MsgSpeciesInUse   = "Loài vật đang được sử dụng trong hệ thống, không thể xóa."
	MsgSpeciesMissing = "Không tìm thấy loài vật"

	MsgLivestockNotFound     = "Không tìm thấy vật nuôi"
	MsgInspectionCodeExists  = "Mã kiểm dịch đã tồn tại trong hệ thống"
	MsgInspectionCodeMissing = "Vật nuôi chưa có mã kiểm dịch"
	MsgLivestockInUse        = "Vật nuôi đang được sử dụng trong hệ thống, không thể xóa."
	MsgLivestockBusy         = "Vật nuôi đang thuộc một quy trình khác"
	MsgLivestockNotEligible  = "Vật nuôi không đủ điều kiện xuất"
	MsgLivestockNotOnFarm    = "Vật nuôi không còn ở trang trại"
	MsgGenderInvalid         = "Giới tính không hợp lệ"

	MsgMedicineExists   = "Thuốc này đã tồn tại trong hệ thống"
	MsgMedicineInUse    = "Thuốc đang được sử dụng trong hệ thống, không thể xóa."
	MsgMedicineNotFound = "Không tìm thấy thuốc"
	MsgDiseaseExists    = "Bệnh này đã tồn tại trong hệ thống"
	MsgDiseaseInUse     = "Bệnh đang được sử dụng trong hệ thống, không thể xóa."
	MsgDiseaseNotFound  = "Không tìm thấy bệnh"
	MsgMedicineLinked   = "Thuốc đã được gán cho bệnh này"
	MsgMedicineNotLink  = "Thuốc chưa được gán cho bệnh này"

	MsgVaccinationNotFound  = "Không tìm thấy lô tiêm"
	MsgVaccinationEmpty     = "Lô tiêm chưa có vật nuôi"
	MsgVaccinationDuplicate = "Vật nuôi đã có trong lô tiêm"
	MsgVaccinationLocked    = "Lô tiêm đã kết thúc, không thể thay đổi"

	MsgBatchImportNotFound = "Không tìm thấy lô nhập"
	MsgBatchImportLocked   = "Lô nhập đã kết thúc, không thể thêm vật nuôi"
	MsgSupplierNotFound    = "Không tìm thấy nhà cung cấp"

	MsgProcurementNotFound    = "Không tìm thấy gói thầu"
	MsgProcurementNotEditable = "Chỉ có thể chỉnh sửa gói thầu đang đấu thầu"
	MsgProcurementUnfinished  = "Gói thầu chưa bàn giao đủ vật nuôi"
	MsgWeightRange            = "Khối lượng tối thiểu phải nhỏ hơn hoặc bằng khối lượng tối đa"
	MsgAgeRange               = "Tuổi tối thiểu phải nhỏ hơn hoặc bằng tuổi tối đa"

	MsgBatchExportNotFound  = "Không tìm thấy lô xuất"
	MsgBatchExportFull      = "Lô xuất đã đủ số lượng"
	MsgBatchExportLocked    = "Lô xuất không ở trạng thái cho phép thay đổi"
	MsgExportDetailNotFound = "Không tìm thấy thông tin xuất của vật nuôi"
	MsgExportDetailHanded   = "Không thể xóa vật nuôi đã bàn giao"
	MsgSpeciesNotRequired   = "Loài vật không nằm trong yêu cầu của gói thầu"
	MsgSpeciesQuotaFull     = "Đã đủ số lượng cho loài vật này"
	MsgWeightNotMatched     = "Khối lượng vật nuôi không đạt yêu cầu"
	MsgAgeNotMatched        = "Tuổi vật nuôi không đạt yêu cầu"
	MsgNothingToHandover    = "Không có vật nuôi nào chờ bàn giao"
	MsgInvalidPrice         = "Đơn giá không hợp lệ"

	MsgOrderNotFound           = "Không tìm thấy đơn hàng"
	MsgOrderNotEditable        = "Chỉ có thể chỉnh sửa đơn hàng mới"
	MsgOrderRequirementsLocked = "Đơn hàng đã có vật nuôi, không thể thay đổi yêu cầu"
	MsgOrderLocked             = "Đơn hàng không ở trạng thái cho phép thay đổi"
	MsgOrderEmpty              = "Đơn hàng chưa có vật nuôi"
	MsgOrderNotMatched         = "Vật nuôi không phù hợp với yêu cầu của đơn hàng"
	MsgOrderDetailNotFound     = "Không tìm thấy vật nuôi trong đơn hàng"

	MsgInsuranceNotFound      = "Không tìm thấy yêu cầu bảo hành"
	MsgInsuranceExpired       = "Vật nuôi đã hết hạn bảo hành"
	MsgInsuranceOpen          = "Vật nuôi đang có yêu cầu bảo hành"
	MsgLivestockNotExported   = "Vật nuôi chưa được xuất bán"
	MsgRejectReasonRequired   = "Vui lòng nhập lý do từ chối"
	MsgReplacementRequired    = "Vui lòng chọn vật nuôi thay thế"
	MsgReplacementSpecies     = "Vật nuôi thay thế phải cùng loài"
	MsgReplacementNotEligible = "Vật nuôi thay thế không đủ điều kiện"

	MsgUserNotFound     = "Không tìm thấy người dùng"
	MsgUserExists       = "Tên đăng nhập hoặc email đã tồn tại"
	MsgInvalidLogin     = "Tên đăng nhập hoặc mật khẩu không đúng"
	MsgUserInactive     = "Tài khoản đã bị khóa"
	MsgPasswordRequired = "Vui lòng nhập mật khẩu"
	MsgRoleNotFound     = "Không tìm thấy vai trò"
	MsgRoleExists       = "Vai trò này đã tồn tại trong hệ thống"
	MsgRoleInUse        = "Vai trò đang được sử dụng, không thể xóa."
)
