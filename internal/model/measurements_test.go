package model

import (
	"errors"
	"testing"
)

func TestDominantCircumferenceHipIncluded(t *testing.T) {
	m := BodyMeasurements{Bust: 100, Waist: 80, Hip: 110, ShirtLength: 70}
	if got := m.DominantCircumference(); got != 110 {
		t.Errorf("expected hip 110 to dominate, got %g", got)
	}
}

func TestDominantCircumferenceHemAboveHip(t *testing.T) {
	m := BodyMeasurements{Bust: 100, Waist: 80, Hip: 110, ShirtLength: 50, HemAboveHip: true}
	if got := m.DominantCircumference(); got != 100 {
		t.Errorf("expected bust 100 to dominate when hem is above hip, got %g", got)
	}
}

func TestDominantCircumferenceWaistLargest(t *testing.T) {
	m := BodyMeasurements{Bust: 90, Waist: 105, Hip: 95, ShirtLength: 70}
	if got := m.DominantCircumference(); got != 105 {
		t.Errorf("expected waist 105 to dominate, got %g", got)
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	m := BodyMeasurements{SubjectID: "s1", Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70}
	if err := m.Validate(); err != nil {
		t.Errorf("expected valid record, got %v", err)
	}
}

func TestValidateRejectsMissingBust(t *testing.T) {
	m := BodyMeasurements{Waist: 80, Hip: 95, ShirtLength: 70}
	err := m.Validate()
	if err == nil {
		t.Fatal("expected error for missing bust")
	}
	var invalid *InvalidMeasurementError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidMeasurementError, got %T", err)
	}
	if invalid.Field != "bust_circ" {
		t.Errorf("expected bust_circ field, got %s", invalid.Field)
	}
}

func TestValidateHipOptionalWhenHemAboveHip(t *testing.T) {
	m := BodyMeasurements{Bust: 100, Waist: 80, ShirtLength: 50, HemAboveHip: true}
	if err := m.Validate(); err != nil {
		t.Errorf("expected hip to be optional with hem above hip, got %v", err)
	}

	m.HemAboveHip = false
	if err := m.Validate(); err == nil {
		t.Error("expected error for missing hip with hem below hip")
	}
}

func TestValidateRejectsNegativeOptional(t *testing.T) {
	m := BodyMeasurements{Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70, Arm: -5}
	err := m.Validate()
	if err == nil {
		t.Fatal("expected error for negative arm circumference")
	}
	var invalid *InvalidMeasurementError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidMeasurementError, got %T", err)
	}
	if invalid.Field != "arm_circ" {
		t.Errorf("expected arm_circ field, got %s", invalid.Field)
	}
}

func TestNewBodyMeasurementsGeneratesID(t *testing.T) {
	a := NewBodyMeasurements(100, 80, 95, 70)
	b := NewBodyMeasurements(100, 80, 95, 70)
	if a.SubjectID == "" {
		t.Fatal("expected generated subject id")
	}
	if len(a.SubjectID) != 8 {
		t.Errorf("expected 8-char subject id, got %q", a.SubjectID)
	}
	if a.SubjectID == b.SubjectID {
		t.Error("expected distinct subject ids for distinct records")
	}
}

func TestNewSubjectID(t *testing.T) {
	a := NewSubjectID()
	b := NewSubjectID()
	if len(a) != 8 {
		t.Errorf("expected 8-char id, got %q", a)
	}
	if a == b {
		t.Error("expected distinct ids across calls")
	}
}

func TestScanMaxCircumference(t *testing.T) {
	s := ScanMeasurements{
		Abdomen:     88,
		AxillaChest: 95,
		ChestBust:   98,
		Hip:         102,
		Seat:        104,
		StomachMax:  90,
		Waist:       82,
	}
	if got := s.MaxCircumference(); got != 104 {
		t.Errorf("expected seat 104 as max circumference, got %g", got)
	}
}

func TestScanValidate(t *testing.T) {
	valid := ScanMeasurements{
		ChestBust: 98, Hip: 102,
		HalfBackCenter: 46, WaistHeight: 98, CrotchHeight: 72,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid scan record, got %v", err)
	}

	negative := valid
	negative.Seat = -3
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative circumference")
	}

	empty := ScanMeasurements{HalfBackCenter: 46, WaistHeight: 98, CrotchHeight: 72}
	if err := empty.Validate(); err == nil {
		t.Error("expected error when every circumference is zero")
	}

	noHeight := valid
	noHeight.CrotchHeight = 0
	err := noHeight.Validate()
	if err == nil {
		t.Fatal("expected error for missing crotch height")
	}
	var invalid *InvalidMeasurementError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidMeasurementError, got %T", err)
	}
	if invalid.Field != "crotch_height" {
		t.Errorf("expected crotch_height field, got %s", invalid.Field)
	}

	tooShort := valid
	tooShort.CrotchHeight = 200
	if err := tooShort.Validate(); err == nil {
		t.Error("expected error when heights give a non-positive shirt length")
	}
}
