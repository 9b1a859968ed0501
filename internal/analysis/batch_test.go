package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almare/zerocut/internal/model"
)

func TestAnalyzeSubject(t *testing.T) {
	cfg := model.DefaultConfig()
	m := model.BodyMeasurements{SubjectID: "s1", Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70}

	rec, err := AnalyzeSubject(m, 150, cfg)
	require.NoError(t, err)

	assert.Equal(t, "s1", rec.SubjectID)
	assert.Equal(t, model.BandIdeal, rec.Band)
	assert.Equal(t, 135.0, rec.PatternWidth)
	assert.Equal(t, 97.5, rec.PatternHeight)
	assert.Equal(t, OrientationPrimary, rec.Orientation)
	assert.Equal(t, 15.0, rec.CutLossWidth)
	assert.True(t, rec.OffcutUsable)
}

func TestAnalyzeSubjectInvalidMeasurements(t *testing.T) {
	cfg := model.DefaultConfig()
	m := model.BodyMeasurements{SubjectID: "bad", Waist: 80, Hip: 95, ShirtLength: 70}

	_, err := AnalyzeSubject(m, 150, cfg)
	require.Error(t, err)
	var invalid *model.InvalidMeasurementError
	assert.ErrorAs(t, err, &invalid)
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	cfg := model.DefaultConfig()
	var subjects []model.BodyMeasurements
	for i := 0; i < 50; i++ {
		subjects = append(subjects, model.BodyMeasurements{
			SubjectID:   fmt.Sprintf("s%02d", i),
			Bust:        90 + float64(i%30),
			Waist:       75,
			Hip:         95,
			ShirtLength: 65,
		})
	}

	result := AnalyzeBatch(context.Background(), subjects, 150, cfg, 8)
	require.Len(t, result.Records, 50)
	require.Empty(t, result.Errors)

	for i, rec := range result.Records {
		assert.Equal(t, subjects[i].SubjectID, rec.SubjectID, "record %d out of order", i)
	}
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	cfg := model.DefaultConfig()
	subjects := []model.BodyMeasurements{
		{SubjectID: "good-1", Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70},
		{SubjectID: "bad", Bust: 0, Waist: 80, Hip: 95, ShirtLength: 70},
		{SubjectID: "good-2", Bust: 105, Waist: 82, Hip: 98, ShirtLength: 68},
	}

	result := AnalyzeBatch(context.Background(), subjects, 150, cfg, 2)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "good-1", result.Records[0].SubjectID)
	assert.Equal(t, "good-2", result.Records[1].SubjectID)

	require.Len(t, result.Errors, 1)
	assert.True(t, strings.Contains(result.Errors[0], "bad"),
		"expected failed subject named in %q", result.Errors[0])
}

func TestAnalyzeBatchUnfitSubjectIsNotAnError(t *testing.T) {
	cfg := model.DefaultConfig()
	subjects := []model.BodyMeasurements{
		// Dominant 130 -> width 161: no orientation fits a 150 bolt.
		{SubjectID: "huge", Bust: 130, Waist: 100, Hip: 120, ShirtLength: 160},
		{SubjectID: "ok", Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70},
	}

	result := AnalyzeBatch(context.Background(), subjects, 150, cfg, 2)
	require.Len(t, result.Records, 2)
	require.Empty(t, result.Errors)

	assert.Equal(t, OrientationNone, result.Records[0].Orientation)
	assert.Equal(t, Unfit, result.Records[0].Efficiency)
	assert.Equal(t, OrientationPrimary, result.Records[1].Orientation)
}

func TestAnalyzeBatchEmptyInput(t *testing.T) {
	cfg := model.DefaultConfig()
	result := AnalyzeBatch(context.Background(), nil, 150, cfg, 4)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Errors)
}

func TestAnalyzeBatchCancelledContext(t *testing.T) {
	cfg := model.DefaultConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var subjects []model.BodyMeasurements
	for i := 0; i < 20; i++ {
		subjects = append(subjects, model.BodyMeasurements{
			SubjectID: fmt.Sprintf("s%d", i), Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70,
		})
	}

	result := AnalyzeBatch(ctx, subjects, 150, cfg, 4)
	// Everything dispatched after cancellation is reported, not silently lost.
	assert.Equal(t, 20, len(result.Records)+len(result.Errors))
	assert.NotEmpty(t, result.Errors)
}

func TestAnalyzeBatchSingleWorkerMatchesParallel(t *testing.T) {
	cfg := model.DefaultConfig()
	var subjects []model.BodyMeasurements
	for i := 0; i < 16; i++ {
		subjects = append(subjects, model.BodyMeasurements{
			SubjectID:   fmt.Sprintf("s%d", i),
			Bust:        92 + 3*float64(i),
			Waist:       78,
			Hip:         96,
			ShirtLength: 66,
		})
	}

	serial := AnalyzeBatch(context.Background(), subjects, 150, cfg, 1)
	parallel := AnalyzeBatch(context.Background(), subjects, 150, cfg, 8)
	assert.Equal(t, serial, parallel)
}

func TestAnalyzeSubjectAutoBolt(t *testing.T) {
	cfg := model.DefaultConfig()
	// Dominant 100 falls in the 135 cm catalog entry; the raw width stays
	// below it.
	m := model.BodyMeasurements{
		SubjectID: "s1", Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70,
		UseActualWidth: true,
	}

	rec, err := AnalyzeSubject(m, AutoBolt, cfg)
	require.NoError(t, err)

	assert.Equal(t, 135.0, rec.BoltWidth)
	assert.Equal(t, 131.0, rec.PatternWidth)
	assert.Equal(t, OrientationPrimary, rec.Orientation)
	assert.Equal(t, 4.0, rec.CutLossWidth)
}

func TestAnalyzeSubjectAutoBoltBeyondCatalog(t *testing.T) {
	cfg := model.DefaultConfig()
	m := model.BodyMeasurements{SubjectID: "s1", Bust: 130, Waist: 100, Hip: 120, ShirtLength: 70}

	rec, err := AnalyzeSubject(m, AutoBolt, cfg)
	require.NoError(t, err)
	assert.Equal(t, 155.0, rec.BoltWidth)
}

func TestAnalyzeSubjectAutoBoltEmptyCatalog(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.BoltCatalog = nil
	m := model.BodyMeasurements{SubjectID: "s1", Bust: 100, Waist: 80, Hip: 95, ShirtLength: 70}

	_, err := AnalyzeSubject(m, AutoBolt, cfg)
	require.Error(t, err)
	var invalid *model.InvalidDimensionError
	assert.ErrorAs(t, err, &invalid)
}

func TestAnalyzeScan(t *testing.T) {
	cfg := model.DefaultConfig()
	s := model.ScanMeasurements{
		ScanCode:       "sc-101",
		ChestBust:      98.2,
		Hip:            102.3,
		Waist:          82,
		HalfBackCenter: 46.1,
		WaistHeight:    98.0,
		CrotchHeight:   72.4,
	}

	rec, err := AnalyzeScan(s, 150, cfg)
	require.NoError(t, err)

	assert.Equal(t, "sc-101", rec.SubjectID)
	assert.Equal(t, model.BandIdeal, rec.Band)
	assert.Equal(t, 14.0, rec.Template.FacingWidth)
	// Max circumference 102.3 -> 102.5, plus 25 + 6.
	assert.Equal(t, 133.5, rec.PatternWidth)
	// Shirt length 46.1 + 98.0 - 72.4 rounds up to 72, plus collar and hem.
	assert.Equal(t, 99.5, rec.PatternHeight)
	assert.Equal(t, OrientationPrimary, rec.Orientation)
	assert.Equal(t, 16.5, rec.CutLossWidth)
	assert.Equal(t, 133.5/150.0, rec.Efficiency)
}

func TestAnalyzeScanAutoBolt(t *testing.T) {
	cfg := model.DefaultConfig()
	s := model.ScanMeasurements{
		ScanCode: "sc-101", ChestBust: 98.2, Hip: 102.3,
		HalfBackCenter: 46.1, WaistHeight: 98.0, CrotchHeight: 72.4,
	}

	rec, err := AnalyzeScan(s, AutoBolt, cfg)
	require.NoError(t, err)
	// 102.3 falls in the 135 cm catalog entry.
	assert.Equal(t, 135.0, rec.BoltWidth)
	assert.Equal(t, 1.5, rec.CutLossWidth)
}

func TestAnalyzeScanInvalidRecord(t *testing.T) {
	cfg := model.DefaultConfig()
	s := model.ScanMeasurements{ScanCode: "sc-bad", ChestBust: 98.2}

	_, err := AnalyzeScan(s, 150, cfg)
	require.Error(t, err)
	var invalid *model.InvalidMeasurementError
	assert.ErrorAs(t, err, &invalid)
}

func TestAnalyzeScanBatchPreservesOrderAndIsolatesFailures(t *testing.T) {
	cfg := model.DefaultConfig()
	scans := []model.ScanMeasurements{
		{ScanCode: "sc-1", ChestBust: 98, Hip: 102, HalfBackCenter: 46, WaistHeight: 98, CrotchHeight: 72},
		{ScanCode: "sc-broken", ChestBust: 98},
		{ScanCode: "sc-2", ChestBust: 94, Hip: 99, HalfBackCenter: 45, WaistHeight: 97, CrotchHeight: 71},
	}

	result := AnalyzeScanBatch(context.Background(), scans, 150, cfg, 2)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "sc-1", result.Records[0].SubjectID)
	assert.Equal(t, "sc-2", result.Records[1].SubjectID)

	require.Len(t, result.Errors, 1)
	assert.True(t, strings.Contains(result.Errors[0], "sc-broken"),
		"expected failed scan named in %q", result.Errors[0])
}
