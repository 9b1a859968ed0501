// Package sizing maps body measurements to template parameters and pattern
// dimensions. All functions are pure; the tailoring constants come in as a
// model.PatternConfig value.
package sizing

import (
	"math"

	"github.com/almare/zerocut/internal/model"
)

// Classify places a dominant circumference into a size band. Values exactly
// on a boundary belong to the ideal band.
func Classify(dominant float64, cfg model.PatternConfig) model.SizeBand {
	switch {
	case dominant < cfg.BandLower:
		return model.BandBelow
	case dominant > cfg.BandUpper:
		return model.BandAbove
	default:
		return model.BandIdeal
	}
}

// SelectTemplate returns the fixed template parameter set for a subject.
func SelectTemplate(m model.BodyMeasurements, cfg model.PatternConfig) (model.TemplateParameters, model.SizeBand, error) {
	if err := m.Validate(); err != nil {
		return model.TemplateParameters{}, 0, err
	}
	band := Classify(m.DominantCircumference(), cfg)
	return cfg.Template(band), band, nil
}

// RoundUpToBolt rounds a pattern width up to the next bolt increment. Widths
// already on an increment boundary are returned unchanged.
func RoundUpToBolt(width, increment float64) float64 {
	r := math.Mod(width, increment)
	if r == 0 {
		return width
	}
	return width + increment - r
}

// ResolveWidth computes the pattern width from the dominant circumference,
// ease, and seam tolerance. When useActual is false the raw width is rounded
// up to the next bolt increment.
func ResolveWidth(m model.BodyMeasurements, cfg model.PatternConfig, useActual bool) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	raw := m.DominantCircumference() + cfg.Ease + cfg.SeamTolerance
	if useActual {
		return raw, nil
	}
	return RoundUpToBolt(raw, cfg.BoltIncrement), nil
}

// CatalogWidth picks the narrowest manufactured bolt from the catalog that
// dresses the larger of the bust and hip circumferences. Bodies beyond the
// catalog get the widest bolt.
func CatalogWidth(bust, hip float64, catalog []model.BoltRange) float64 {
	largest := math.Max(bust, hip)
	for _, b := range catalog {
		if largest <= math.Max(b.MaxBust, b.MaxHip) {
			return b.Width
		}
	}
	return catalog[len(catalog)-1].Width
}

// Derive produces the pattern parameters and template for a subject. The
// pattern height is the desired shirt length plus the collar piece length and
// hem allowance.
func Derive(m model.BodyMeasurements, cfg model.PatternConfig) (model.PatternParameters, model.TemplateParameters, error) {
	tmpl, _, err := SelectTemplate(m, cfg)
	if err != nil {
		return model.PatternParameters{}, model.TemplateParameters{}, err
	}
	width, err := ResolveWidth(m, cfg, m.UseActualWidth)
	if err != nil {
		return model.PatternParameters{}, model.TemplateParameters{}, err
	}
	params := model.PatternParameters{
		SubjectID: m.SubjectID,
		Width:     width,
		Height:    m.ShirtLength + cfg.CollarLength + cfg.HemAllowance,
	}
	return params, tmpl, nil
}

// ceilToHalf rounds up to the nearest 0.5 cm, the resolution used for
// scan-derived measurements.
func ceilToHalf(v float64) float64 {
	return math.Ceil(v*2) / 2
}

// ScanPatternWidth derives the pattern width from a body scan record: the
// largest torso circumference, rounded up to 0.5 cm, plus ease and seam
// tolerance.
func ScanPatternWidth(s model.ScanMeasurements, cfg model.PatternConfig) float64 {
	return ceilToHalf(s.MaxCircumference()) + cfg.Ease + cfg.SeamTolerance
}

// ScanShirtLength derives the shirt length from a body scan record using the
// half back centre, waist height, and crotch height, rounded up to 0.5 cm.
func ScanShirtLength(s model.ScanMeasurements) float64 {
	return ceilToHalf(s.HalfBackCenter + s.WaistHeight - s.CrotchHeight)
}

// ScanPatternParameters derives full pattern dimensions from a scan record.
func ScanPatternParameters(s model.ScanMeasurements, cfg model.PatternConfig) model.PatternParameters {
	return model.PatternParameters{
		SubjectID: s.ScanCode,
		Width:     ScanPatternWidth(s, cfg),
		Height:    ScanShirtLength(s) + cfg.CollarLength + cfg.HemAllowance,
	}
}
