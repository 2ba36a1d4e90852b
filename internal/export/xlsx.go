// Package export renders the document as a spreadsheet: one row per
// date that has any recorded fact, one column per goal plus fixed
// columns for water, comment, weight and earnings.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/ozankoca/habitd/internal/datekey"
	"github.com/ozankoca/habitd/internal/store"
)

const sheetName = "Habits"

var statusSymbol = map[store.CellStatus]string{
	store.StatusDone:  "✓",
	store.StatusSkip:  "-",
	store.StatusUnset: "",
}

// collectDateKeys gathers every date that appears in any of the
// per-day maps, sorted ascending.
func collectDateKeys(doc store.Document) []string {
	seen := map[string]bool{}
	for k := range doc.Completions {
		seen[k] = true
	}
	for k := range doc.Comments {
		seen[k] = true
	}
	for k := range doc.Earnings {
		seen[k] = true
	}
	for k := range doc.WaterIntake {
		seen[k] = true
	}
	for k := range doc.WeightMeasurements {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatDate renders a key as "2 January 2006 Monday" for the date
// column; unparseable keys pass through unchanged.
func formatDate(key string) string {
	d, err := datekey.Parse(key)
	if err != nil {
		return key
	}
	return d.Format("2 January 2006 Monday")
}

// Workbook builds the spreadsheet for the given document. The caller
// is responsible for closing or saving the returned file.
func Workbook(doc store.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	header := []interface{}{"Date"}
	for _, g := range doc.Goals {
		header = append(header, g.Title)
	}
	header = append(header, "Water", "Comment", "Weight", "Earnings")
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, dateKey := range collectDateKeys(doc) {
		row := []interface{}{formatDate(dateKey)}
		for _, g := range doc.Goals {
			row = append(row, statusSymbol[doc.Cell(dateKey, g.ID)])
		}
		row = append(row, blankIfZero(doc.WaterAt(dateKey)))
		row = append(row, doc.Comment(dateKey))
		if kg, ok := doc.WeightAt(dateKey); ok {
			row = append(row, kg)
		} else {
			row = append(row, "")
		}
		if e, ok := doc.Earnings[dateKey]; ok {
			row = append(row, e.Amount)
		} else {
			row = append(row, "")
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row address: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %s: %w", dateKey, err)
		}
	}

	if err := applyLayout(f, doc); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(doc store.Document, path string) error {
	f, err := Workbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}

func blankIfZero(v float64) interface{} {
	if v == 0 {
		return ""
	}
	return v
}

// applyLayout sets column widths (wide date and comment, narrow
// numerics) and a bold filled header row.
func applyLayout(f *excelize.File, doc store.Document) error {
	goalCount := len(doc.Goals)
	widths := []struct {
		from, to int
		width    float64
	}{
		{1, 1, 28},
		{2, 1 + goalCount, 16},
		{2 + goalCount, 2 + goalCount, 6},
		{3 + goalCount, 3 + goalCount, 42},
		{4 + goalCount, 4 + goalCount, 8},
		{5 + goalCount, 5 + goalCount, 10},
	}
	for _, w := range widths {
		if w.from > w.to {
			continue
		}
		fromName, err := excelize.ColumnNumberToName(w.from)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		toName, err := excelize.ColumnNumberToName(w.to)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, fromName, toName, w.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"3D5A80"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(5 + goalCount)
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return nil
}
