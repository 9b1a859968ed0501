package geometry

import (
	"github.com/almare/zerocut/internal/model"
)

// Default seam guide offsets, in cm. Edge offsets are measured inward from
// each vertical edge (center front); back offsets are measured outward from
// the vertical centerline (center back).
var (
	DefaultEdgeGuideOffsets = []float64{2.5, 5.5}
	DefaultBackGuideOffsets = []float64{9.5, 14.0}
)

// BuildOptions toggles the optional pattern features.
type BuildOptions struct {
	// IncludeEncap appends an encapsulation panel of EncapWidth to the right
	// of the pattern block. The panel is not part of the pattern width.
	IncludeEncap bool
	EncapWidth   float64

	// IncludeSeamGuides emits the seam/notch reference lines.
	IncludeSeamGuides bool
	EdgeGuideOffsets  []float64 // nil means DefaultEdgeGuideOffsets
	BackGuideOffsets  []float64 // nil means DefaultBackGuideOffsets

	// FacingExtentX/Y override the straight-segment extents of the facing
	// cutout. Zero means half the facing width. The two extents must be equal;
	// unequal extents produce a self-intersecting shape and are rejected.
	FacingExtentX float64
	FacingExtentY float64
}

// BuildPattern derives the complete layered pattern drawing from the pattern
// and template parameters. The function is pure: identical inputs yield
// identical geometry, and every feature in the collar, facing, and sleeve
// layers is mirror-symmetric about x = width/2 by construction.
func BuildPattern(p model.PatternParameters, t model.TemplateParameters, opts BuildOptions) (Pattern, error) {
	if p.Width <= 0 {
		return Pattern{}, &model.InvalidDimensionError{Dimension: "pattern_width", Value: p.Width}
	}
	if p.Height <= 0 {
		return Pattern{}, &model.InvalidDimensionError{Dimension: "pattern_height", Value: p.Height}
	}

	fx := opts.FacingExtentX
	fy := opts.FacingExtentY
	if fx == 0 {
		fx = t.FacingWidth / 2
	}
	if fy == 0 {
		fy = t.FacingWidth / 2
	}
	if fx != fy {
		return Pattern{}, &model.GeometryPreconditionError{
			Reason: "facing curve extents must be equal",
		}
	}

	w := p.Width
	h := p.Height
	cw := t.CollarWidth
	cl := t.CollarLength
	fw := t.FacingWidth
	radius := t.SleeveheadRadius
	depth := t.SleeveheadDepth
	collarY := h - cl

	pat := Pattern{SubjectID: p.SubjectID, Width: w, Height: h}

	// Collar: four congruent rectangles along the collar line, a mirrored
	// pair on each side of the centerline.
	collar := Layer{Name: LayerCollar}
	for _, x := range []float64{0, w/2 - cw, w / 2, w - cw} {
		collar.Polylines = append(collar.Polylines, Rect(x, collarY, cw, cl))
	}
	pat.Layers = append(pat.Layers, collar)

	// Facing: a rounded-corner L at each bottom corner of the collar line.
	// The quarter arc of radius fw/2 is tangent to both straight segments.
	facing := Layer{Name: LayerFacing}
	facing.Lines = append(facing.Lines,
		Line{Point{0, collarY - fw}, Point{fx, collarY - fw}},     // left horizontal
		Line{Point{fw, collarY - fy}, Point{fw, collarY}},         // left vertical
		Line{Point{w - fx, collarY - fw}, Point{w, collarY - fw}}, // right horizontal
		Line{Point{w - fw, collarY}, Point{w - fw, collarY - fy}}, // right vertical
	)
	facing.Arcs = append(facing.Arcs,
		Arc{Center: Point{fx, collarY - fy}, Radius: fx, StartAngle: 270, EndAngle: 360},
		Arc{Center: Point{w - fx, collarY - fy}, Radius: fx, StartAngle: 180, EndAngle: 270},
	)
	facing.Polylines = append(facing.Polylines,
		Polyline{Points: []Point{{0, collarY - fw}, {0, collarY}, {fw, collarY}}},
		Polyline{Points: []Point{{w, collarY - fw}, {w, collarY}, {w - fw, collarY}}},
	)
	pat.Layers = append(pat.Layers, facing)

	// Sleeve: one sleevehead curve centered on each quarter mark, straight
	// connectors to the adjacent collar pieces, and the sleeve piece edges.
	leftCurve := QuadCurve{
		Start:   Point{w/4 - radius, collarY},
		Control: Point{w / 4, collarY - depth},
		End:     Point{w/4 + radius, collarY},
	}
	rightCurve := QuadCurve{
		Start:   Point{3*w/4 - radius, collarY},
		Control: Point{3 * w / 4, collarY - depth},
		End:     Point{3*w/4 + radius, collarY},
	}
	sleeve := Layer{Name: LayerSleeve}
	sleeve.Curves = append(sleeve.Curves, leftCurve, rightCurve)
	sleeve.Lines = append(sleeve.Lines,
		Line{Point{cw, collarY}, leftCurve.Start},
		Line{leftCurve.End, Point{w/2 - cw, collarY}},
		Line{Point{w/2 + cw, collarY}, rightCurve.Start},
		Line{rightCurve.End, Point{w - cw, collarY}},
	)
	for _, x := range []float64{cw, w/2 - cw, w/2 + cw, w - cw} {
		sleeve.Lines = append(sleeve.Lines, Line{Point{x, h}, Point{x, collarY}})
	}
	sleeve.Lines = append(sleeve.Lines,
		Line{Point{cw, h}, Point{w/2 - cw, h}},
		Line{Point{w/2 + cw, h}, Point{w - cw, h}},
	)
	pat.Layers = append(pat.Layers, sleeve)

	// Bodice: the overall outline minus the facing cutouts, the sleevehead
	// border repeated, connecting lines along the collar line, and the
	// armhole drops below each sleevehead curve.
	bodice := Layer{Name: LayerBodice}
	bodice.Lines = append(bodice.Lines,
		Line{Point{0, collarY - fw}, Point{fx, collarY - fw}},
		Line{Point{fw, collarY - fy}, Point{fw, collarY}},
		Line{Point{w - fx, collarY - fw}, Point{w, collarY - fw}},
		Line{Point{w - fw, collarY}, Point{w - fw, collarY - fy}},
	)
	bodice.Arcs = append(bodice.Arcs,
		Arc{Center: Point{fx, collarY - fy}, Radius: fx, StartAngle: 270, EndAngle: 360},
		Arc{Center: Point{w - fx, collarY - fy}, Radius: fx, StartAngle: 180, EndAngle: 270},
	)
	bodice.Curves = append(bodice.Curves, leftCurve, rightCurve)
	bodice.Lines = append(bodice.Lines,
		Line{Point{fw, collarY}, leftCurve.Start},    // through left center front
		Line{leftCurve.End, rightCurve.Start},        // through center back
		Line{rightCurve.End, Point{w - fw, collarY}}, // through right center front
	)
	bodice.Polylines = append(bodice.Polylines, Polyline{
		Points: []Point{{0, collarY - fw}, {0, 0}, {w, 0}, {w, collarY - fw}},
	})
	armhole := ArmholeLength(w, cw)
	bodice.Lines = append(bodice.Lines,
		Line{Point{w / 4, collarY - depth}, Point{w / 4, collarY - depth - armhole}},
		Line{Point{3 * w / 4, collarY - depth}, Point{3 * w / 4, collarY - depth - armhole}},
	)
	pat.Layers = append(pat.Layers, bodice)

	// Seam: vertical cutting/sewing guides, mirrored about the centerline.
	// They reference positions only and are not structural boundaries.
	if opts.IncludeSeamGuides {
		edge := opts.EdgeGuideOffsets
		if edge == nil {
			edge = DefaultEdgeGuideOffsets
		}
		back := opts.BackGuideOffsets
		if back == nil {
			back = DefaultBackGuideOffsets
		}
		seam := Layer{Name: LayerSeam}
		top := collarY - fw
		for _, off := range edge {
			seam.Lines = append(seam.Lines,
				Line{Point{off, 0}, Point{off, top}},
				Line{Point{w - off, 0}, Point{w - off, top}},
			)
		}
		for _, off := range back {
			seam.Lines = append(seam.Lines,
				Line{Point{w/2 - off, 0}, Point{w/2 - off, top}},
				Line{Point{w/2 + off, 0}, Point{w/2 + off, top}},
			)
		}
		pat.Layers = append(pat.Layers, seam)
	}

	// Encap: panel for sensor and circuit encapsulation, appended to the
	// right of the pattern block.
	if opts.IncludeEncap && opts.EncapWidth > 0 {
		encap := Layer{Name: LayerEncap}
		encap.Polylines = append(encap.Polylines, Rect(w, 0, opts.EncapWidth, h))
		pat.Layers = append(pat.Layers, encap)
	}

	return pat, nil
}

// ArmholeLength is the length of the vertical drop below each sleevehead
// curve: half of the quarter-pattern width remaining after the collar pieces.
func ArmholeLength(patternWidth, collarWidth float64) float64 {
	return 0.5 * (0.5*patternWidth - 2*collarWidth)
}
