package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/repositories"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const livestockSheet = "Livestock"

var livestockHeader = []interface{}{
	"STT", "Mã kiểm dịch", "Loài", "Trang trại", "Trạng thái", "Giới tính", "Màu lông",
	"Nguồn gốc", "Khối lượng nhập (kg)", "Khối lượng ước tính (kg)", "Ngày sinh",
}

type ImportResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

// ExportExcel writes every livestock matching the filter, ignoring paging.
func (s *LivestockService) ExportExcel(ctx context.Context, filter dto.LivestockFilter) (*excelize.File, error) {
	filter.Page, filter.PageSize = 0, 0
	items, _, err := repositories.NewLivestockRepository(s.DB.WithContext(ctx)).List(filter)
	if err != nil {
		return nil, fmt.Errorf("list livestock: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", livestockSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(livestockSheet, "A1", &livestockHeader); err != nil {
		return nil, err
	}

	for i, l := range items {
		species, barn, dob := "", "", ""
		if l.Species != nil {
			species = l.Species.Name
		}
		if l.Barn != nil {
			barn = l.Barn.Name
		}
		if l.DateOfBirth != nil {
			dob = l.DateOfBirth.Format("2006-01-02")
		}
		row := []interface{}{
			i + 1, l.InspectionCode, species, barn, string(l.Status), l.Gender, l.Color,
			l.Origin, l.WeightOrigin, l.WeightEstimate, dob,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(livestockSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ImportExcel reads rows laid out like ExportExcel without the STT column:
// code, species, barn, gender, color, origin, weight, date of birth (yyyy-mm-dd).
// Bad rows are reported and skipped, the rest is saved in one transaction.
func (s *LivestockService) ImportExcel(ctx context.Context, r io.Reader, actor int) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, BadRequest("Không đọc được file Excel")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, BadRequest("File Excel không có sheet nào")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, BadRequest("File Excel phải có dòng tiêu đề và ít nhất một dòng dữ liệu")
	}

	result := &ImportResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewLivestockRepository(tx)
		speciesCache := map[string]uint{}
		barnCache := map[string]uint{}
		seen := map[string]bool{}

		for i, row := range rows[1:] {
			rowNum := i + 2
			if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
				result.TotalRows--
				continue
			}
			for len(row) < 8 {
				row = append(row, "")
			}

			code := strings.TrimSpace(row[0])
			if code != "" {
				taken, err := repo.InspectionCodeTaken(code, 0)
				if err != nil {
					return err
				}
				if taken || seen[code] {
					result.SkippedCount++
					result.SkippedItems = append(result.SkippedItems, code)
					continue
				}
			}

			speciesID, err := lookupID(tx, &models.Species{}, speciesCache, row[1])
			if err != nil {
				return err
			}
			if speciesID == 0 {
				result.ErrorCount++
				result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Dòng %d: %s", rowNum, MsgSpeciesMissing))
				continue
			}

			var barnID *uint
			if strings.TrimSpace(row[2]) != "" {
				id, err := lookupID(tx, &models.Barn{}, barnCache, row[2])
				if err != nil {
					return err
				}
				if id == 0 {
					result.ErrorCount++
					result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Dòng %d: %s", rowNum, MsgBarnNotFound))
					continue
				}
				barnID = &id
			}

			gender := strings.ToUpper(strings.TrimSpace(row[3]))
			switch gender {
			case "", "MALE", "FEMALE":
			default:
				result.ErrorCount++
				result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Dòng %d: %s", rowNum, MsgGenderInvalid))
				continue
			}

			weight := 0.0
			if raw := strings.TrimSpace(row[6]); raw != "" {
				weight, err = strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
				if err != nil || weight < 0 {
					result.ErrorCount++
					result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Dòng %d: khối lượng không hợp lệ", rowNum))
					continue
				}
			}

			var dob *time.Time
			if raw := strings.TrimSpace(row[7]); raw != "" {
				parsed, err := time.Parse("2006-01-02", raw)
				if err != nil {
					result.ErrorCount++
					result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Dòng %d: ngày sinh không hợp lệ", rowNum))
					continue
				}
				dob = &parsed
			}

			now := time.Now()
			livestock := models.Livestock{
				InspectionCode:  code,
				SpeciesID:       speciesID,
				BarnID:          barnID,
				Status:          initialStatus("", code),
				Gender:          gender,
				Color:           strings.TrimSpace(row[4]),
				Origin:          strings.TrimSpace(row[5]),
				WeightOrigin:    weight,
				WeightEstimate:  weight,
				WeightUpdatedAt: &now,
				DateOfBirth:     dob,
				ImportedAt:      &now,
				CreatedBy:       actor,
			}
			if err := tx.Create(&livestock).Error; err != nil {
				return fmt.Errorf("row %d: %w", rowNum, err)
			}
			if code != "" {
				seen[code] = true
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lookupID resolves a master record by case-insensitive name, 0 when missing.
func lookupID(tx *gorm.DB, model interface{}, cache map[string]uint, name string) (uint, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0, nil
	}
	if id, ok := cache[key]; ok {
		return id, nil
	}

	var ids []uint
	if err := tx.Model(model).Where("LOWER(name) = ?", key).Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	id := uint(0)
	if len(ids) > 0 {
		id = ids[0]
	}
	cache[key] = id
	return id, nil
}
