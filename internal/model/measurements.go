package model

import "github.com/google/uuid"

// BodyMeasurements holds the raw per-subject input record. All lengths and
// circumferences are in cm. The record is created once at the input boundary
// and never mutated.
type BodyMeasurements struct {
	SubjectID string `json:"subject_id"`

	Bust     float64 `json:"bust_circ"`      // chest/bust circumference
	Waist    float64 `json:"waist_circ"`     // waist circumference
	Hip      float64 `json:"hip_circ"`       // hip circumference
	Arm      float64 `json:"arm_circ"`       // upper arm circumference (informational)
	Neck     float64 `json:"neck_circ"`      // neck circumference (informational)
	Shoulder float64 `json:"shoulder_width"` // shoulder width (informational)

	ShirtLength  float64 `json:"shirt_length"`  // desired finished shirt length
	SleeveLength float64 `json:"sleeve_length"` // desired sleeve length (informational)

	// HemAboveHip indicates the garment hem ends above the hip line; the hip
	// circumference is then excluded from the dominant-circumference search.
	HemAboveHip bool `json:"hem_above_hip"`

	// UseActualWidth keeps the pattern width at the raw measured value instead
	// of rounding it up to the next bolt increment.
	UseActualWidth bool `json:"use_actual_width"`
}

// NewSubjectID generates a short random subject identifier for records that
// arrive without one.
func NewSubjectID() string {
	return uuid.New().String()[:8]
}

// NewBodyMeasurements returns a record for the required measurements with a
// generated subject id.
func NewBodyMeasurements(bust, waist, hip, shirtLength float64) BodyMeasurements {
	return BodyMeasurements{
		SubjectID:   NewSubjectID(),
		Bust:        bust,
		Waist:       waist,
		Hip:         hip,
		ShirtLength: shirtLength,
	}
}

// DominantCircumference returns the largest circumference relevant to the
// pattern width. The hip participates only when the hem falls below the hip.
func (m BodyMeasurements) DominantCircumference() float64 {
	largest := m.Bust
	if m.Waist > largest {
		largest = m.Waist
	}
	if !m.HemAboveHip && m.Hip > largest {
		largest = m.Hip
	}
	return largest
}

// Validate checks the required measurements. Bust, waist, and shirt length
// must always be positive; hip must be positive unless the hem ends above the
// hip. Optional measurements may be zero (absent) but never negative.
func (m BodyMeasurements) Validate() error {
	required := []struct {
		field string
		value float64
	}{
		{"bust_circ", m.Bust},
		{"waist_circ", m.Waist},
		{"shirt_length", m.ShirtLength},
	}
	for _, r := range required {
		if r.value <= 0 {
			return &InvalidMeasurementError{Field: r.field, Value: r.value}
		}
	}
	if !m.HemAboveHip && m.Hip <= 0 {
		return &InvalidMeasurementError{Field: "hip_circ", Value: m.Hip}
	}
	optional := []struct {
		field string
		value float64
	}{
		{"hip_circ", m.Hip},
		{"arm_circ", m.Arm},
		{"neck_circ", m.Neck},
		{"shoulder_width", m.Shoulder},
		{"sleeve_length", m.SleeveLength},
	}
	for _, o := range optional {
		if o.value < 0 {
			return &InvalidMeasurementError{Field: o.field, Value: o.value}
		}
	}
	return nil
}

// ScanMeasurements holds the tape-measure columns of a 3-D body scan record.
// Pattern dimensions are derived from these instead of direct body
// measurements when analyzing scan databases.
type ScanMeasurements struct {
	ScanCode string `json:"scan_code"`

	Abdomen     float64 `json:"abdomen_circ"`
	AxillaChest float64 `json:"axilla_chest_circ"`
	ChestBust   float64 `json:"chest_bust_circ"`
	Hip         float64 `json:"hip_circ"`
	Seat        float64 `json:"seat_circ"`
	StomachMax  float64 `json:"stomach_max_circ"`
	Waist       float64 `json:"waist_circ"`

	HalfBackCenter float64 `json:"half_back_center"`
	WaistHeight    float64 `json:"waist_height"`
	CrotchHeight   float64 `json:"crotch_height"`
}

// MaxCircumference returns the largest of the seven torso circumferences.
func (s ScanMeasurements) MaxCircumference() float64 {
	largest := s.Abdomen
	for _, v := range []float64{s.AxillaChest, s.ChestBust, s.Hip, s.Seat, s.StomachMax, s.Waist} {
		if v > largest {
			largest = v
		}
	}
	return largest
}

// Validate checks a scan record. At least one circumference must be positive,
// none may be negative, and the three heights must combine to a positive
// shirt length.
func (s ScanMeasurements) Validate() error {
	circumferences := []struct {
		field string
		value float64
	}{
		{"abdomen_circ", s.Abdomen},
		{"axilla_chest_circ", s.AxillaChest},
		{"chest_bust_circ", s.ChestBust},
		{"hip_circ", s.Hip},
		{"seat_circ", s.Seat},
		{"stomach_max_circ", s.StomachMax},
		{"waist_circ", s.Waist},
	}
	for _, c := range circumferences {
		if c.value < 0 {
			return &InvalidMeasurementError{Field: c.field, Value: c.value}
		}
	}
	if s.MaxCircumference() <= 0 {
		return &InvalidMeasurementError{Field: "circumferences", Value: s.MaxCircumference()}
	}
	heights := []struct {
		field string
		value float64
	}{
		{"half_back_center", s.HalfBackCenter},
		{"waist_height", s.WaistHeight},
		{"crotch_height", s.CrotchHeight},
	}
	for _, h := range heights {
		if h.value <= 0 {
			return &InvalidMeasurementError{Field: h.field, Value: h.value}
		}
	}
	if length := s.HalfBackCenter + s.WaistHeight - s.CrotchHeight; length <= 0 {
		return &InvalidMeasurementError{Field: "shirt_length", Value: length}
	}
	return nil
}
