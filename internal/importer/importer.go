// Package importer reads body measurement records from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/almare/zerocut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Subjects []model.BodyMeasurements
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Columns that are absent stay at -1.
type ColumnMapping struct {
	SubjectID    int
	Bust         int
	Waist        int
	Hip          int
	Arm          int
	Neck         int
	Shoulder     int
	ShirtLength  int
	SleeveLength int
	HemAboveHip  int
	ActualWidth  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"subject_id":    {"subject_id", "person_id", "id", "subject", "scan code", "participant"},
	"bust":          {"bust_circ", "bust", "chest", "chest_circ", "chest/bust", "bust circumference"},
	"waist":         {"waist_circ", "waist", "waist circumference"},
	"hip":           {"hip_circ", "hip", "hips", "hip circumference"},
	"arm":           {"arm_circ", "arm", "arm circumference"},
	"neck":          {"neck_circ", "neck", "neck circumference"},
	"shoulder":      {"shoulder_width", "shoulder", "shoulders"},
	"shirt_length":  {"shirt_length", "length", "desired length", "shirt length"},
	"sleeve_length": {"sleeve_length", "sleeve", "sleeve length"},
	"hem_above_hip": {"hem_above_hip", "shirt_above_hip", "above_hip", "above hip"},
	"actual_width":  {"use_actual_width", "actual_measure", "actual_width", "actual"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter that
// produces the most consistent multi-column split wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against the known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default
// positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		SubjectID: -1, Bust: -1, Waist: -1, Hip: -1, Arm: -1, Neck: -1,
		Shoulder: -1, ShirtLength: -1, SleeveLength: -1, HemAboveHip: -1,
		ActualWidth: -1,
	}

	targets := map[string]*int{
		"subject_id":    &mapping.SubjectID,
		"bust":          &mapping.Bust,
		"waist":         &mapping.Waist,
		"hip":           &mapping.Hip,
		"arm":           &mapping.Arm,
		"neck":          &mapping.Neck,
		"shoulder":      &mapping.Shoulder,
		"shirt_length":  &mapping.ShirtLength,
		"sleeve_length": &mapping.SleeveLength,
		"hem_above_hip": &mapping.HemAboveHip,
		"actual_width":  &mapping.ActualWidth,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := targets[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: id, bust, waist, hip, shirt length.
		return ColumnMapping{
			SubjectID: 0, Bust: 1, Waist: 2, Hip: 3, ShirtLength: 4,
			Arm: -1, Neck: -1, Shoulder: -1, SleeveLength: -1,
			HemAboveHip: -1, ActualWidth: -1,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFlag interprets common truthy spellings for the boolean columns.
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// parseFloat parses an optional numeric cell. Empty cells yield zero.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseRow extracts a measurement record from a row using the given column
// mapping. It returns the record and an error message (empty on success).
func parseRow(row []string, mapping ColumnMapping, rowLabel string, subjectCount int) (model.BodyMeasurements, string) {
	var m model.BodyMeasurements

	m.SubjectID = getCell(row, mapping.SubjectID)
	if m.SubjectID == "" {
		m.SubjectID = fmt.Sprintf("subject-%d", subjectCount+1)
	}

	fields := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"bust", mapping.Bust, &m.Bust},
		{"waist", mapping.Waist, &m.Waist},
		{"hip", mapping.Hip, &m.Hip},
		{"arm", mapping.Arm, &m.Arm},
		{"neck", mapping.Neck, &m.Neck},
		{"shoulder", mapping.Shoulder, &m.Shoulder},
		{"shirt length", mapping.ShirtLength, &m.ShirtLength},
		{"sleeve length", mapping.SleeveLength, &m.SleeveLength},
	}
	for _, f := range fields {
		cell := getCell(row, f.idx)
		v, err := parseFloat(cell)
		if err != nil {
			return model.BodyMeasurements{}, fmt.Sprintf("%s: invalid %s '%s'", rowLabel, f.name, cell)
		}
		*f.dst = v
	}

	m.HemAboveHip = parseFlag(getCell(row, mapping.HemAboveHip))
	m.UseActualWidth = parseFlag(getCell(row, mapping.ActualWidth))

	if err := m.Validate(); err != nil {
		return model.BodyMeasurements{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}

	return m, ""
}

// importRows converts raw rows into measurement records, detecting the header
// on the first row.
func importRows(rows [][]string) ImportResult {
	result := ImportResult{}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "file contains no rows")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	dataRows := rows
	if hasHeader {
		dataRows = rows[1:]
	} else {
		result.Warnings = append(result.Warnings,
			"no header row detected; assuming columns id, bust, waist, hip, shirt length")
	}

	for i, row := range dataRows {
		if len(row) == 0 {
			continue
		}
		rowLabel := fmt.Sprintf("row %d", i+1)
		m, errMsg := parseRow(row, mapping, rowLabel, len(result.Subjects))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Subjects = append(result.Subjects, m)
	}

	if len(result.Subjects) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "no measurement rows found")
	}
	return result
}

// readCSVRows reads a delimited text file into raw rows, detecting the
// delimiter from the content.
func readCSVRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse CSV: %w", err)
	}
	return rows, nil
}

// readXLSXRows reads the first sheet of an Excel workbook into raw rows.
func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// readRows dispatches on the file extension: .xlsx goes through excelize,
// everything else is treated as CSV.
func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSXRows(path)
	}
	return readCSVRows(path)
}

// ImportCSV reads measurement records from a CSV file.
func ImportCSV(path string) ImportResult {
	rows, err := readCSVRows(path)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return importRows(rows)
}

// ImportXLSX reads measurement records from the first sheet of an Excel
// workbook.
func ImportXLSX(path string) ImportResult {
	rows, err := readXLSXRows(path)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return importRows(rows)
}

// Import reads measurement records from a CSV or XLSX file.
func Import(path string) ImportResult {
	rows, err := readRows(path)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return importRows(rows)
}
