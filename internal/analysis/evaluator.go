// Package analysis scores garment patterns against fabric bolts: cut-loss
// width and area, utilization efficiency, offcut reuse, and batch summaries
// across data sets.
package analysis

import (
	"github.com/almare/zerocut/internal/model"
	"github.com/almare/zerocut/internal/sizing"
)

// Unfit is the sentinel recorded for cut loss and efficiency when the pattern
// fits the bolt in neither orientation. Such records require a multi-panel
// layout, which is out of scope for automatic computation.
const Unfit = -1.0

// Orientation is the layout chosen for the pattern on the bolt.
type Orientation int

const (
	OrientationPrimary Orientation = iota // pattern width along the bolt
	OrientationRotated                    // pattern rotated 90°
	OrientationNone                       // fits neither way
)

func (o Orientation) String() string {
	switch o {
	case OrientationRotated:
		return "Rotated"
	case OrientationNone:
		return "None"
	default:
		return "Primary"
	}
}

// EfficiencyResult is the flat per-(pattern, bolt) record produced by the
// evaluator, suitable for tabular export. The *Ideal fields score the same
// pattern against the ideal bolt width (pattern width rounded up to the next
// bolt increment) and are always defined.
type EfficiencyResult struct {
	SubjectID     string  `json:"subject_id"`
	PatternWidth  float64 `json:"pattern_width"`
	PatternHeight float64 `json:"pattern_height"`

	BoltWidth   float64     `json:"bolt_width_used"`
	Orientation Orientation `json:"orientation"`

	CutLossWidth float64 `json:"cut_loss_width_used"`
	CutLossArea  float64 `json:"cut_loss_area_used"`
	Efficiency   float64 `json:"efficiency_used"`

	IdealBoltWidth    float64 `json:"bolt_width_ideal"`
	CutLossWidthIdeal float64 `json:"cut_loss_width_ideal"`
	CutLossAreaIdeal  float64 `json:"cut_loss_area_ideal"`
	EfficiencyIdeal   float64 `json:"efficiency_ideal"`

	// Offcut reuse: whether the leftover strip is wide enough for the fixed
	// pocket set, and how many equivalent sets the offcut area represents.
	OffcutUsable bool    `json:"offcut_usable"`
	OffcutYield  float64 `json:"offcut_yield"`
}

// Fits reports whether the pattern fit the evaluated bolt in some orientation.
func (r EfficiencyResult) Fits() bool {
	return r.Orientation != OrientationNone
}

// Evaluate scores a pattern footprint against a candidate bolt width.
//
// The primary orientation lays the pattern width along the bolt; if that does
// not fit, the pattern is rotated 90°. The primary orientation always wins
// when it fits, even if the rotated one also would. When neither fits, the
// used-bolt fields carry the Unfit sentinel and the batch continues.
func Evaluate(p model.PatternParameters, boltWidth float64, cfg model.PatternConfig) (EfficiencyResult, error) {
	if p.Width <= 0 {
		return EfficiencyResult{}, &model.InvalidDimensionError{Dimension: "pattern_width", Value: p.Width}
	}
	if p.Height <= 0 {
		return EfficiencyResult{}, &model.InvalidDimensionError{Dimension: "pattern_height", Value: p.Height}
	}
	if boltWidth <= 0 {
		return EfficiencyResult{}, &model.InvalidDimensionError{Dimension: "bolt_width", Value: boltWidth}
	}

	r := EfficiencyResult{
		SubjectID:     p.SubjectID,
		PatternWidth:  p.Width,
		PatternHeight: p.Height,
		BoltWidth:     boltWidth,
	}

	switch {
	case p.Width <= boltWidth:
		r.Orientation = OrientationPrimary
		r.CutLossWidth = boltWidth - p.Width
		r.CutLossArea = r.CutLossWidth * p.Height
		r.Efficiency = p.Width / boltWidth
	case p.Height <= boltWidth:
		r.Orientation = OrientationRotated
		r.CutLossWidth = boltWidth - p.Height
		r.CutLossArea = r.CutLossWidth * p.Width
		r.Efficiency = p.Height / boltWidth
	default:
		r.Orientation = OrientationNone
		r.CutLossWidth = Unfit
		r.CutLossArea = Unfit
		r.Efficiency = Unfit
	}

	// The ideal bolt always fits by construction: it is the pattern width
	// rounded up to the next increment.
	r.IdealBoltWidth = sizing.RoundUpToBolt(p.Width, cfg.BoltIncrement)
	r.CutLossWidthIdeal = r.IdealBoltWidth - p.Width
	r.CutLossAreaIdeal = r.CutLossWidthIdeal * p.Height
	r.EfficiencyIdeal = p.Width / r.IdealBoltWidth

	if r.Fits() && r.CutLossWidth >= cfg.OffcutThreshold {
		r.OffcutUsable = true
		if r.CutLossArea > 0 {
			r.OffcutYield = cfg.PocketPairArea / r.CutLossArea
		}
	}

	return r, nil
}
