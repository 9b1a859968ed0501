// Package export writes pattern drawings and analysis results to the formats
// consumed downstream: DXF for CAD and 3-D garment tools, SVG and PDF for
// previews and workshop handouts, CSV and XLSX for tabular analysis.
package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/almare/zerocut/internal/geometry"
)

// Flattening resolution for curved primitives. DXF consumers get polylines
// rather than native arc/spline entities for maximum CAD compatibility.
const (
	arcSegments   = 16
	curveSegments = 24
)

// layerColors follows the original drawing convention: facing yellow, collar
// green, sleeve cyan, bodice magenta, encapsulation red.
var layerColors = map[string]color.ColorNumber{
	geometry.LayerFacing: color.Yellow,
	geometry.LayerCollar: color.Green,
	geometry.LayerSleeve: color.Cyan,
	geometry.LayerBodice: color.Magenta,
	geometry.LayerSeam:   color.White,
	geometry.LayerEncap:  color.Red,
}

// WriteDXF saves the pattern as a layered DXF drawing.
func WriteDXF(path string, pat geometry.Pattern) error {
	d := dxf.NewDrawing()

	for _, layer := range pat.Layers {
		col, ok := layerColors[layer.Name]
		if !ok {
			col = color.White
		}
		if _, err := d.AddLayer(layer.Name, col, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %q: %w", layer.Name, err)
		}

		for _, l := range layer.Lines {
			d.Line(l.Start.X, l.Start.Y, 0, l.End.X, l.End.Y, 0)
		}
		for _, pl := range layer.Polylines {
			d.LwPolyline(pl.Closed, vertices(pl.Points)...)
		}
		for _, a := range layer.Arcs {
			d.LwPolyline(false, vertices(a.Flatten(arcSegments))...)
		}
		for _, c := range layer.Curves {
			d.LwPolyline(false, vertices(c.Flatten(curveSegments))...)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

func vertices(pts []geometry.Point) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}
