package services

import (
	"context"
	"fmt"

	"livestock-app/models"

	"github.com/xuri/excelize/v2"
)

const (
	procurementSheet  = "Procurement"
	requirementsSheet = "Requirements"
)

// ExportExcel writes the package header, its requirement progress and every export record.
func (s *ProcurementService) ExportExcel(ctx context.Context, id uint) (*excelize.File, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	details := []models.BatchExportDetail{}
	err = s.DB.WithContext(ctx).
		Preload("Livestock.Species").
		Joins("JOIN batch_exports ON batch_exports.id = batch_export_details.batch_export_id").
		Where("batch_exports.procurement_package_id = ?", id).
		Order("batch_export_details.id").
		Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("list export details: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", procurementSheet); err != nil {
		return nil, err
	}

	info := [][]interface{}{
		{"Mã gói thầu", view.Code},
		{"Tên gói thầu", view.Name},
		{"Chủ đầu tư", view.Owner},
		{"Trạng thái", string(view.Status)},
		{"Ngày trúng thầu", dateString(view.SuccessDate)},
		{"Hạn bàn giao", dateString(view.ExpirationDate)},
		{"Tổng yêu cầu", view.TotalRequired},
		{"Đã bàn giao", view.TotalHandedOver},
	}
	for i, row := range info {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := row
		if err := f.SetSheetRow(procurementSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	start := len(info) + 2
	header := []interface{}{"STT", "Mã kiểm dịch", "Loài", "Khối lượng xuất (kg)", "Đơn giá", "Ngày bàn giao", "Hạn bảo hành", "Trạng thái"}
	cell, _ := excelize.CoordinatesToCellName(1, start)
	if err := f.SetSheetRow(procurementSheet, cell, &header); err != nil {
		return nil, err
	}
	for i, d := range details {
		code, species := "", ""
		if d.Livestock != nil {
			code = d.Livestock.InspectionCode
			if d.Livestock.Species != nil {
				species = d.Livestock.Species.Name
			}
		}
		price, _ := d.PriceUnit.Float64()
		row := []interface{}{
			i + 1, code, species, d.WeightExport, price,
			dateString(d.HandoverDate),
			dateString(d.ExpiredInsuranceDate),
			string(d.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, start+i+1)
		if err := f.SetSheetRow(procurementSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(requirementsSheet); err != nil {
		return nil, err
	}
	reqHeader := []interface{}{"Loài", "Số lượng", "KL tối thiểu", "KL tối đa", "Tuổi tối thiểu (tháng)", "Tuổi tối đa (tháng)", "Bảo hành (ngày)", "Đã chọn", "Đã bàn giao"}
	if err := f.SetSheetRow(requirementsSheet, "A1", &reqHeader); err != nil {
		return nil, err
	}
	for i, p := range view.Progress {
		species := ""
		if p.Species != nil {
			species = p.Species.Name
		}
		row := []interface{}{
			species, p.RequiredQuantity, p.RequiredWeightMin, p.RequiredWeightMax,
			p.RequiredAgeMin, p.RequiredAgeMax, p.RequiredInsuranceDays, p.Selected, p.HandedOver,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(requirementsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
