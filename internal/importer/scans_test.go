package importer

import (
	"strings"
	"testing"
)

func TestDetectScanColumnsAliases(t *testing.T) {
	header := []string{
		"Scan Code", "Abdomen", "Axilla Chest", "Chest/Bust", "Hips",
		"Seat", "Stomach Max", "Waist", "Half Back Centre", "Waist Height",
		"Crotch Height",
	}
	mapping, ok := DetectScanColumns(header)
	if !ok {
		t.Fatal("expected scan header to be detected")
	}
	if mapping.ScanCode != 0 || mapping.ChestBust != 3 || mapping.Hip != 4 {
		t.Errorf("unexpected circumference mapping: %+v", mapping)
	}
	if mapping.HalfBackCenter != 8 || mapping.WaistHeight != 9 || mapping.CrotchHeight != 10 {
		t.Errorf("unexpected height mapping: %+v", mapping)
	}
}

func TestDetectScanColumnsRejectsMeasurementHeader(t *testing.T) {
	header := []string{"person_id", "bust_circ", "waist_circ", "hip_circ", "shirt_length"}
	if _, ok := DetectScanColumns(header); ok {
		t.Error("expected measurement header to be rejected as scan header")
	}
}

func TestImportScansCSV(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"scan_code,abdomen_circ,axilla_chest_circ,chest_bust_circ,hip_circ,seat_circ,stomach_max_circ,waist_circ,half_back_center,waist_height,crotch_height",
		"sc-101,88,96,98.2,102.3,104,90,82,46.1,98.0,72.4",
		",85,94,96,100,101,88,80,45,97,71",
	}, "\n"))

	result := ImportScans(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Scans) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(result.Scans))
	}

	s1 := result.Scans[0]
	if s1.ScanCode != "sc-101" || s1.Hip != 102.3 || s1.HalfBackCenter != 46.1 {
		t.Errorf("unexpected first scan: %+v", s1)
	}
	if got := s1.MaxCircumference(); got != 104 {
		t.Errorf("expected seat 104 as max circumference, got %g", got)
	}

	if result.Scans[1].ScanCode != "scan-2" {
		t.Errorf("expected generated code scan-2, got %q", result.Scans[1].ScanCode)
	}
}

func TestImportScansRowErrorsIsolated(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"scan_code,chest_bust_circ,hip_circ,half_back_center,waist_height,crotch_height",
		"good,98,102,46,98,72",
		"noise,abc,102,46,98,72",
		"no-heights,98,102,,98,72",
		"also-good,96,100,45,97,71",
	}, "\n"))

	result := ImportScans(path)
	if len(result.Scans) != 2 {
		t.Fatalf("expected 2 good scans, got %d (%v)", len(result.Scans), result.Errors)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Scans[0].ScanCode != "good" || result.Scans[1].ScanCode != "also-good" {
		t.Errorf("unexpected surviving scans: %v", result.Scans)
	}
}

func TestImportScansRequiresHeader(t *testing.T) {
	path := writeTempCSV(t, "sc-1,98,102,46,98,72\n")

	result := ImportScans(path)
	if len(result.Scans) != 0 {
		t.Fatalf("expected no scans without a header, got %d", len(result.Scans))
	}
	if len(result.Errors) == 0 {
		t.Error("expected an error about the missing scan header")
	}
}
