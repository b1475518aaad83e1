package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateHeaders is the header row of the downloadable sample file. Every
// spelling resolves through the default mapping table, so a template
// round-trips through Parse without dropping a column.
var TemplateHeaders = []string{
	"Name", "Phone", "Email",
	"Street", "City", "State", "Zip Code", "County", "Full Address",
	"Property Type", "Bedrooms", "Bathrooms", "Square Feet", "Lot Size", "Year Built",
	"Estimated Value", "Asking Price",
	"Source", "Status", "Priority", "Tags", "Notes",
}

var templateRows = [][]string{
	{
		"John Smith", "+1 (555) 123-4567", "john.smith@example.com",
		"123 Main St", "Austin", "TX", "78701", "Travis", "123 Main St, Austin, TX 78701",
		"single_family", "3", "2", "1850", "0.25", "1998",
		"450000", "425000",
		"website", "new", "medium", "motivated;off-market", "Owner relocating",
	},
	{
		"Jane Doe", "555-987-6543", "jane.doe@example.com",
		"456 Oak Ave", "Dallas", "TX", "75201", "Dallas", "456 Oak Ave, Dallas, TX 75201",
		"duplex", "4", "3", "2400", "0.18", "2005",
		"610000", "589000",
		"referral", "contacted", "high", "investor", "",
	},
}

// TemplateCSV renders the sample import file as CSV.
func TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(TemplateHeaders); err != nil {
		return nil, fmt.Errorf("write template header: %w", err)
	}
	for _, row := range templateRows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write template row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush template: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateXLSX renders the sample import file as a workbook with preset
// column widths.
func TemplateXLSX() ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)

	if err := setSheetRow(wb, sheet, 1, TemplateHeaders); err != nil {
		return nil, err
	}
	for i, row := range templateRows {
		if err := setSheetRow(wb, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(TemplateHeaders))
	if err != nil {
		return nil, fmt.Errorf("resolve last column: %w", err)
	}
	if err := wb.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return nil, fmt.Errorf("set column widths: %w", err)
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setSheetRow(wb *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("resolve cell: %w", err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := wb.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write sheet row %d: %w", rowNum, err)
	}
	return nil
}
