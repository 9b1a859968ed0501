package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/almare/zerocut/internal/analysis"
)

// AnalysisColumns is the column order shared by the CSV and XLSX writers.
var AnalysisColumns = []string{
	"person_id",
	"pattern_width",
	"pattern_height",
	"size_band",
	"orientation",
	"bolt_width_used",
	"cut_loss_width_used",
	"cut_loss_area_used",
	"efficiency_used",
	"bolt_width_ideal",
	"cut_loss_width_ideal",
	"cut_loss_area_ideal",
	"efficiency_ideal",
	"pocket_possible",
	"embellished_saved",
}

// recordValues flattens a record into the AnalysisColumns order.
func recordValues(r analysis.Record) []interface{} {
	return []interface{}{
		r.SubjectID,
		r.PatternWidth,
		r.PatternHeight,
		r.Band.String(),
		r.Orientation.String(),
		r.BoltWidth,
		r.CutLossWidth,
		r.CutLossArea,
		r.Efficiency,
		r.IdealBoltWidth,
		r.CutLossWidthIdeal,
		r.CutLossAreaIdeal,
		r.EfficiencyIdeal,
		r.OffcutUsable,
		r.OffcutYield,
	}
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// WriteAnalysisCSV writes the analysis records as CSV.
func WriteAnalysisCSV(w io.Writer, records []analysis.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AnalysisColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := make([]string, 0, len(AnalysisColumns))
		for _, v := range recordValues(r) {
			row = append(row, formatValue(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnalysisCSVFile writes the analysis records to a CSV file.
func WriteAnalysisCSVFile(path string, records []analysis.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	if err := WriteAnalysisCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

// WriteAnalysisXLSX writes the analysis records as an Excel workbook with one
// "Analysis" sheet.
func WriteAnalysisXLSX(path string, records []analysis.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Analysis"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, name := range AnalysisColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for rowIdx, r := range records {
		for col, v := range recordValues(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
