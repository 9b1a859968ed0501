// Package geometry builds the layered 2-D drawing of a zero-waste garment
// pattern. Coordinates are in cm with the origin at the pattern's bottom-left
// corner, +x rightward and +y upward.
package geometry

import "math"

// Point is a 2-D coordinate in cm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MirrorX reflects the point about the vertical line x = axis.
func (p Point) MirrorX(axis float64) Point {
	return Point{X: 2*axis - p.X, Y: p.Y}
}

// Line is a straight segment between two points.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Polyline is a point sequence; a closed polyline implicitly connects the
// last point back to the first.
type Polyline struct {
	Points []Point `json:"points"`
	Closed bool    `json:"closed"`
}

// Rect returns a closed polyline for an axis-aligned rectangle with its
// bottom-left corner at (x, y).
func Rect(x, y, w, h float64) Polyline {
	return Polyline{
		Points: []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}},
		Closed: true,
	}
}

// Arc is a circular arc swept counter-clockwise from StartAngle to EndAngle,
// both in degrees.
type Arc struct {
	Center     Point   `json:"center"`
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

// PointAt returns the point at angle deg (degrees) on the arc's circle.
func (a Arc) PointAt(deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}

// Flatten approximates the arc as a point sequence with segments+1 points.
func (a Arc) Flatten(segments int) []Point {
	start := a.StartAngle
	end := a.EndAngle
	if end <= start {
		end += 360
	}
	pts := make([]Point, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		pts[i] = a.PointAt(start + t*(end-start))
	}
	return pts
}

// QuadCurve is a quadratic Bézier segment.
type QuadCurve struct {
	Start   Point `json:"start"`
	Control Point `json:"control"`
	End     Point `json:"end"`
}

// PointAt evaluates the curve at parameter t in [0, 1].
func (q QuadCurve) PointAt(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.Start.X + 2*mt*t*q.Control.X + t*t*q.End.X,
		Y: mt*mt*q.Start.Y + 2*mt*t*q.Control.Y + t*t*q.End.Y,
	}
}

// Flatten approximates the curve as a point sequence with segments+1 points.
func (q QuadCurve) Flatten(segments int) []Point {
	pts := make([]Point, segments+1)
	for i := 0; i <= segments; i++ {
		pts[i] = q.PointAt(float64(i) / float64(segments))
	}
	return pts
}

// Layer names used by the pattern builder and export adapters.
const (
	LayerCollar = "Collar"
	LayerFacing = "Facing"
	LayerSleeve = "Sleeve"
	LayerBodice = "Bodice"
	LayerSeam   = "Seam"
	LayerEncap  = "Encap"
)

// Layer groups the primitives of one pattern piece.
type Layer struct {
	Name      string      `json:"name"`
	Polylines []Polyline  `json:"polylines,omitempty"`
	Lines     []Line      `json:"lines,omitempty"`
	Arcs      []Arc       `json:"arcs,omitempty"`
	Curves    []QuadCurve `json:"curves,omitempty"`
}

// Pattern is the complete layered drawing for one subject.
type Pattern struct {
	SubjectID string  `json:"subject_id"`
	Width     float64 `json:"width"`  // pattern block width, cm
	Height    float64 `json:"height"` // pattern block height, cm
	Layers    []Layer `json:"layers"`
}

// Layer returns the layer with the given name, or nil.
func (p *Pattern) Layer(name string) *Layer {
	for i := range p.Layers {
		if p.Layers[i].Name == name {
			return &p.Layers[i]
		}
	}
	return nil
}

// BoundingWidth is the drawing extent including any encapsulation panel to
// the right of the pattern block.
func (p *Pattern) BoundingWidth() float64 {
	w := p.Width
	for _, l := range p.Layers {
		for _, pl := range l.Polylines {
			for _, pt := range pl.Points {
				if pt.X > w {
					w = pt.X
				}
			}
		}
	}
	return w
}
