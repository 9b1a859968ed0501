package model

// SizeBand classifies a body's dominant circumference into one of the three
// fixed garment template buckets.
type SizeBand int

const (
	BandBelow SizeBand = iota // dominant circumference below the ideal range
	BandIdeal                 // within the ideal range (boundaries inclusive)
	BandAbove                 // above the ideal range
)

func (b SizeBand) String() string {
	switch b {
	case BandBelow:
		return "Below"
	case BandAbove:
		return "Above"
	default:
		return "Ideal"
	}
}

// TemplateParameters are the fixed tailoring constants for one template
// bucket. FacingWidth, SleeveheadRadius, and SleeveheadDepth are selected by
// size band; the rest are shared across all bodies. All values in cm.
type TemplateParameters struct {
	CollarWidth      float64 `json:"collar_width"`
	CollarLength     float64 `json:"collar_length"`
	FacingWidth      float64 `json:"facing_width"`      // neck-cutout (B5) width
	SleeveheadRadius float64 `json:"sleevehead_radius"` // half-span of the sleevehead curve
	SleeveheadDepth  float64 `json:"sleevehead_depth"`  // sag of the sleevehead curve
	Ease             float64 `json:"ease"`
	SeamTolerance    float64 `json:"seam_tolerance"`
}

// PatternParameters are the derived bounding dimensions of the flat pattern.
type PatternParameters struct {
	SubjectID string  `json:"subject_id"`
	Width     float64 `json:"pattern_width"`  // cm
	Height    float64 `json:"pattern_height"` // cm
}

// BoltRange maps a manufactured bolt width to the largest bust and hip
// circumferences it can dress.
type BoltRange struct {
	Width   float64 `json:"width"`
	MaxBust float64 `json:"max_bust"`
	MaxHip  float64 `json:"max_hip"`
}

// PatternConfig holds every named tailoring constant as overridable
// configuration. It is an immutable value passed explicitly into the sizing
// and analysis components; there is no hidden global table.
type PatternConfig struct {
	Ease          float64 `json:"ease"`           // wearing ease added to the dominant circumference
	SeamTolerance float64 `json:"seam_tolerance"` // side seam allowance
	HemAllowance  float64 `json:"hem_allowance"`  // added to the desired shirt length

	CollarWidth  float64 `json:"collar_width"`
	CollarLength float64 `json:"collar_length"`

	BoltIncrement float64 `json:"bolt_increment"` // bolt widths come in multiples of this

	// Offcut reuse: a leftover strip at least OffcutThreshold wide yields a
	// two-piece pocket set of PocketPairArea cm².
	OffcutThreshold float64 `json:"offcut_threshold"`
	PocketPairArea  float64 `json:"pocket_pair_area"`

	// Size band boundaries for the dominant circumference; boundary values
	// classify into the ideal band.
	BandLower float64 `json:"band_lower"`
	BandUpper float64 `json:"band_upper"`

	// Per-band template values, indexed by SizeBand.
	FacingWidths     [3]float64 `json:"facing_widths"`
	SleeveheadRadii  [3]float64 `json:"sleevehead_radii"`
	SleeveheadDepths [3]float64 `json:"sleevehead_depths"`

	// EncapWidth is the width of the optional encapsulation panel appended to
	// the right of the pattern block (not counted in the pattern width).
	EncapWidth float64 `json:"encap_width"`

	// BoltCatalog lists manufactured bolt widths with the body ranges they
	// cover, widest last. Lookups past the table fall back to the widest bolt.
	BoltCatalog []BoltRange `json:"bolt_catalog"`
}

// DefaultConfig returns the tailoring constants of the standard zero-waste
// tee template.
func DefaultConfig() PatternConfig {
	return PatternConfig{
		Ease:             25.0,
		SeamTolerance:    6.0,
		HemAllowance:     2.5,
		CollarWidth:      9.5,
		CollarLength:     25.0,
		BoltIncrement:    5.0,
		OffcutThreshold:  11.0,
		PocketPairArea:   275.0,
		BandLower:        95.0,
		BandUpper:        125.0,
		FacingWidths:     [3]float64{12.0, 14.0, 16.0},
		SleeveheadRadii:  [3]float64{12.0, 14.0, 16.0},
		SleeveheadDepths: [3]float64{3.0, 3.5, 4.0},
		EncapWidth:       2.5,
		BoltCatalog: []BoltRange{
			{Width: 135, MaxBust: 96, MaxHip: 104},
			{Width: 140, MaxBust: 101, MaxHip: 109},
			{Width: 145, MaxBust: 106, MaxHip: 114},
			{Width: 150, MaxBust: 111, MaxHip: 119},
			{Width: 155, MaxBust: 116, MaxHip: 124},
		},
	}
}

// Template assembles the full parameter set for the given size band.
func (c PatternConfig) Template(band SizeBand) TemplateParameters {
	return TemplateParameters{
		CollarWidth:      c.CollarWidth,
		CollarLength:     c.CollarLength,
		FacingWidth:      c.FacingWidths[band],
		SleeveheadRadius: c.SleeveheadRadii[band],
		SleeveheadDepth:  c.SleeveheadDepths[band],
		Ease:             c.Ease,
		SeamTolerance:    c.SeamTolerance,
	}
}
