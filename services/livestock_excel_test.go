package services

import (
	"bytes"
	"testing"

	"livestock-app/dto"
	"livestock-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	header := []interface{}{"Mã kiểm dịch", "Loài", "Trang trại", "Giới tính", "Màu lông", "Nguồn gốc", "Khối lượng", "Ngày sinh"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLivestockImportExcel(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	f.barn("North")
	f.livestock("C-OLD", cow.ID, models.LivestockHealthy, 200)
	svc := NewLivestockService(f.db)

	buf := workbook(t,
		[]interface{}{"C-1", "cow", "north", "male", "brown", "Local", "210,5", "2024-01-15"},
		[]interface{}{"C-1", "Cow", "", "", "", "", "220", ""},
		[]interface{}{"C-OLD", "Cow", "", "", "", "", "230", ""},
		[]interface{}{"", "Cow", "", "", "", "", "", ""},
		[]interface{}{"G-1", "Goat", "", "", "", "", "40", ""},
		[]interface{}{"C-2", "Cow", "South", "", "", "", "40", ""},
		[]interface{}{"C-3", "Cow", "", "", "", "", "heavy", ""},
		[]interface{}{"C-4", "Cow", "", "bull", "", "", "240", ""},
	)

	result, err := svc.ImportExcel(f.ctx, buf, testActor)
	require.NoError(t, err)
	assert.Equal(t, 8, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 2, result.SkippedCount)
	assert.Equal(t, []string{"C-1", "C-OLD"}, result.SkippedItems)
	assert.Equal(t, 4, result.ErrorCount)
	assert.Equal(t, "Dòng 6: "+MsgSpeciesMissing, result.ErrorMessages[0])
	assert.Equal(t, "Dòng 9: "+MsgGenderInvalid, result.ErrorMessages[3])

	var imported models.Livestock
	require.NoError(t, f.db.Preload("Barn").Where("inspection_code = ?", "C-1").First(&imported).Error)
	assert.Equal(t, models.LivestockHealthy, imported.Status)
	assert.Equal(t, "MALE", imported.Gender)
	assert.InDelta(t, 210.5, imported.WeightOrigin, 0.001)
	require.NotNil(t, imported.Barn)
	assert.Equal(t, "North", imported.Barn.Name)
	require.NotNil(t, imported.DateOfBirth)

	var untagged int64
	require.NoError(t, f.db.Model(&models.Livestock{}).Where("status = ?", models.LivestockUnidentified).Count(&untagged).Error)
	assert.EqualValues(t, 1, untagged)
}

func TestLivestockImportRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	_, err := NewLivestockService(f.db).ImportExcel(f.ctx, bytes.NewBufferString("not a workbook"), testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, "")
}

func TestLivestockExportExcel(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	f.livestock("C-1", cow.ID, models.LivestockHealthy, 250)
	f.livestock("C-2", cow.ID, models.LivestockSick, 260)

	file, err := NewLivestockService(f.db).ExportExcel(f.ctx, dto.LivestockFilter{Statuses: []models.LivestockStatus{models.LivestockSick}})
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(livestockSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mã kiểm dịch", rows[0][1])
	assert.Equal(t, "C-2", rows[1][1])
	assert.Equal(t, "Cow", rows[1][2])
	assert.Equal(t, "SICK", rows[1][4])
}
