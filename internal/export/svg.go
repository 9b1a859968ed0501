package export

import (
	"fmt"
	"strings"

	"github.com/almare/zerocut/internal/geometry"
)

const (
	svgtop = `<?xml version="1.0"?>
<svg`
	svginitfmt = `%s width="%g%s" height="%g%s"`
	svgns      = `
     xmlns="http://www.w3.org/2000/svg"
     xmlns:xlink="http://www.w3.org/1999/xlink"`
	vbfmt = `viewBox="%g %g %g %g"`
)

var layerStyles = map[string]string{
	geometry.LayerFacing: "stroke:#c8a400;stroke-width:0.3;fill:none",
	geometry.LayerCollar: "stroke:#2e8b57;stroke-width:0.3;fill:none",
	geometry.LayerSleeve: "stroke:#008b8b;stroke-width:0.3;fill:none",
	geometry.LayerBodice: "stroke:#8b008b;stroke-width:0.3;fill:none",
	geometry.LayerSeam:   "stroke:#999999;stroke-width:0.2;fill:none;stroke-dasharray:1,1",
	geometry.LayerEncap:  "stroke:#b22222;stroke-width:0.3;fill:none",
}

func svgStart(w, h float64, unit string) string {
	return fmt.Sprintf(svginitfmt, svgtop, w, unit, h, unit) + " " +
		fmt.Sprintf(vbfmt, 0.0, 0.0, w, h) + svgns + ">"
}

func groupStart(attrs ...string) string {
	return "<g " + strings.Join(attrs, " ") + ">"
}

func pathTag(d, style string) string {
	return fmt.Sprintf(`
<path d="%s" style="%s" />`, d, style)
}

func lineTag(l geometry.Line, style string) string {
	return fmt.Sprintf(`
<line x1="%g" y1="%g" x2="%g" y2="%g" style="%s" />`,
		l.Start.X, l.Start.Y, l.End.X, l.End.Y, style)
}

func polylineTag(pl geometry.Polyline, style string) string {
	var b strings.Builder
	for i, p := range pl.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g,%g", p.X, p.Y)
	}
	tag := "polyline"
	if pl.Closed {
		tag = "polygon"
	}
	return fmt.Sprintf(`
<%s points="%s" style="%s" />`, tag, b.String(), style)
}

// arcPath flattens the arc into a polyline path. Flattening sidesteps the
// sweep-flag ambiguity the y-axis flip would introduce for native A commands.
func arcPath(a geometry.Arc) string {
	pts := a.Flatten(arcSegments)
	var b strings.Builder
	fmt.Fprintf(&b, "M %g %g", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		fmt.Fprintf(&b, " L %g %g", p.X, p.Y)
	}
	return b.String()
}

func quadPath(q geometry.QuadCurve) string {
	return fmt.Sprintf("M %g %g Q %g %g %g %g",
		q.Start.X, q.Start.Y, q.Control.X, q.Control.Y, q.End.X, q.End.Y)
}

// SVG renders the pattern as a standalone SVG document in cm units. Pattern
// coordinates have the origin at the bottom-left, so the drawing group flips
// the y axis.
func SVG(pat geometry.Pattern) string {
	bw := pat.BoundingWidth()
	var b strings.Builder
	b.WriteString(svgStart(bw, pat.Height, "cm"))
	b.WriteString(groupStart(fmt.Sprintf(`transform="translate(0,%g) scale(1,-1)"`, pat.Height)))

	for _, layer := range pat.Layers {
		style, ok := layerStyles[layer.Name]
		if !ok {
			style = "stroke:#000;stroke-width:0.3;fill:none"
		}
		b.WriteString(groupStart(fmt.Sprintf(`id="%s"`, layer.Name)))
		for _, pl := range layer.Polylines {
			b.WriteString(polylineTag(pl, style))
		}
		for _, l := range layer.Lines {
			b.WriteString(lineTag(l, style))
		}
		for _, a := range layer.Arcs {
			b.WriteString(pathTag(arcPath(a), style))
		}
		for _, c := range layer.Curves {
			b.WriteString(pathTag(quadPath(c), style))
		}
		b.WriteString("</g>")
	}

	b.WriteString("</g></svg>")
	return b.String()
}
