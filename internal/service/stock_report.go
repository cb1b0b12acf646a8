package service

import (
	"bytes"
	"fmt"
	"time"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const stockSheetName = "Blood Stock"

var stockReportHeader = []string{"Blood Group", "Quantity (units)", "Last Updated"}

// BuildStockReport renders a bank's stock as an xlsx workbook. Groups without an
// entry are listed with an empty quantity so the sheet always has eight rows.
func BuildStockReport(bank *entity.BloodBank, stock []entity.BloodStock) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(stockSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F8D7DA"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	title := fmt.Sprintf("%s (%s)", bank.Name, bank.City)
	if err := f.SetCellValue(stockSheetName, "A1", title); err != nil {
		return nil, err
	}

	for col, header := range stockReportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(stockSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(stockSheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}
	if err := f.SetColWidth(stockSheetName, "A", "C", 20); err != nil {
		return nil, err
	}

	byGroup := make(map[entity.BloodGroup]entity.BloodStock, len(stock))
	for _, s := range stock {
		byGroup[s.BloodGroup] = s
	}

	for i, group := range entity.BloodGroups {
		row := i + 3
		if err := setCellValue(f, 1, row, string(group)); err != nil {
			return nil, err
		}
		s, ok := byGroup[group]
		if !ok {
			continue
		}
		if err := setCellValue(f, 2, row, s.Quantity); err != nil {
			return nil, err
		}
		if err := setCellValue(f, 3, row, s.LastUpdated.UTC().Format(time.RFC3339)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(stockSheetName, cell, value)
}
