package importer

import (
	"fmt"
	"strings"

	"github.com/almare/zerocut/internal/model"
)

// ScanImportResult holds the results of importing a body scan database.
type ScanImportResult struct {
	Scans    []model.ScanMeasurements
	Errors   []string
	Warnings []string
}

// ScanColumnMapping maps scan record column roles to their indices in the
// data. Columns that are absent stay at -1.
type ScanColumnMapping struct {
	ScanCode       int
	Abdomen        int
	AxillaChest    int
	ChestBust      int
	Hip            int
	Seat           int
	StomachMax     int
	Waist          int
	HalfBackCenter int
	WaistHeight    int
	CrotchHeight   int
}

// scanHeaderAliases maps canonical scan column names to their accepted
// aliases (all lowercase). Scan database exports always carry a header row,
// so there is no positional fallback.
var scanHeaderAliases = map[string][]string{
	"scan_code":        {"scan_code", "scan code", "code", "subject_id", "id"},
	"abdomen":          {"abdomen_circ", "abdomen", "abdomen circumference"},
	"axilla_chest":     {"axilla_chest_circ", "axilla_chest", "axilla chest", "axilla chest circumference"},
	"chest_bust":       {"chest_bust_circ", "chest_bust", "chest/bust", "chest bust", "bust_circ", "chest"},
	"hip":              {"hip_circ", "hip", "hips"},
	"seat":             {"seat_circ", "seat"},
	"stomach_max":      {"stomach_max_circ", "stomach_max", "stomach max", "max stomach"},
	"waist":            {"waist_circ", "waist"},
	"half_back_center": {"half_back_center", "half back center", "half_back_centre", "half back centre"},
	"waist_height":     {"waist_height", "waist height"},
	"crotch_height":    {"crotch_height", "crotch height"},
}

// DetectScanColumns examines a header row and returns a ScanColumnMapping.
// Matching is case-insensitive against the known aliases. Returns false when
// the row does not look like a scan header.
func DetectScanColumns(row []string) (ScanColumnMapping, bool) {
	mapping := ScanColumnMapping{
		ScanCode: -1, Abdomen: -1, AxillaChest: -1, ChestBust: -1, Hip: -1,
		Seat: -1, StomachMax: -1, Waist: -1, HalfBackCenter: -1,
		WaistHeight: -1, CrotchHeight: -1,
	}

	targets := map[string]*int{
		"scan_code":        &mapping.ScanCode,
		"abdomen":          &mapping.Abdomen,
		"axilla_chest":     &mapping.AxillaChest,
		"chest_bust":       &mapping.ChestBust,
		"hip":              &mapping.Hip,
		"seat":             &mapping.Seat,
		"stomach_max":      &mapping.StomachMax,
		"waist":            &mapping.Waist,
		"half_back_center": &mapping.HalfBackCenter,
		"waist_height":     &mapping.WaistHeight,
		"crotch_height":    &mapping.CrotchHeight,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range scanHeaderAliases {
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

	// A row that only matches the generic id/circumference aliases is a
	// measurement header, not a scan header.
	if mapping.HalfBackCenter == -1 || mapping.WaistHeight == -1 || mapping.CrotchHeight == -1 {
		return mapping, false
	}
	return mapping, isHeader
}

// parseScanRow extracts a scan record from a row using the given column
// mapping. It returns the record and an error message (empty on success).
func parseScanRow(row []string, mapping ScanColumnMapping, rowLabel string, scanCount int) (model.ScanMeasurements, string) {
	var s model.ScanMeasurements

	s.ScanCode = getCell(row, mapping.ScanCode)
	if s.ScanCode == "" {
		s.ScanCode = fmt.Sprintf("scan-%d", scanCount+1)
	}

	fields := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"abdomen", mapping.Abdomen, &s.Abdomen},
		{"axilla chest", mapping.AxillaChest, &s.AxillaChest},
		{"chest bust", mapping.ChestBust, &s.ChestBust},
		{"hip", mapping.Hip, &s.Hip},
		{"seat", mapping.Seat, &s.Seat},
		{"stomach max", mapping.StomachMax, &s.StomachMax},
		{"waist", mapping.Waist, &s.Waist},
		{"half back center", mapping.HalfBackCenter, &s.HalfBackCenter},
		{"waist height", mapping.WaistHeight, &s.WaistHeight},
		{"crotch height", mapping.CrotchHeight, &s.CrotchHeight},
	}
	for _, f := range fields {
		cell := getCell(row, f.idx)
		v, err := parseFloat(cell)
		if err != nil {
			return model.ScanMeasurements{}, fmt.Sprintf("%s: invalid %s '%s'", rowLabel, f.name, cell)
		}
		*f.dst = v
	}

	if err := s.Validate(); err != nil {
		return model.ScanMeasurements{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}

	return s, ""
}

// importScanRows converts raw rows into scan records. The first row must be a
// scan header carrying at least the three height columns.
func importScanRows(rows [][]string) ScanImportResult {
	result := ScanImportResult{}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "file contains no rows")
		return result
	}

	mapping, ok := DetectScanColumns(rows[0])
	if !ok {
		result.Errors = append(result.Errors,
			"no scan header row detected; scan files need half back center, waist height, and crotch height columns")
		return result
	}

	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		rowLabel := fmt.Sprintf("row %d", i+1)
		s, errMsg := parseScanRow(row, mapping, rowLabel, len(result.Scans))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Scans = append(result.Scans, s)
	}

	if len(result.Scans) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "no scan rows found")
	}
	return result
}

// ImportScans reads body scan records from a CSV or XLSX file.
func ImportScans(path string) ScanImportResult {
	rows, err := readRows(path)
	if err != nil {
		return ScanImportResult{Errors: []string{err.Error()}}
	}
	return importScanRows(rows)
}
