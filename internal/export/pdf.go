package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/almare/zerocut/internal/analysis"
	"github.com/almare/zerocut/internal/geometry"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

type layerColorRGB struct {
	R, G, B int
}

var pdfLayerColors = map[string]layerColorRGB{
	geometry.LayerFacing: {R: 200, G: 164, B: 0},
	geometry.LayerCollar: {R: 46, G: 139, B: 87},
	geometry.LayerSleeve: {R: 0, G: 139, B: 139},
	geometry.LayerBodice: {R: 139, G: 0, B: 139},
	geometry.LayerSeam:   {R: 150, G: 150, B: 150},
	geometry.LayerEncap:  {R: 178, G: 34, B: 34},
}

// WritePatternPDF renders the pattern drawing on a single A4 landscape page
// with a header and an efficiency stats line.
func WritePatternPDF(path string, pat geometry.Pattern, rec analysis.Record) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Pattern %s (%.1f x %.1f cm)", pat.SubjectID, pat.Width, pat.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Bolt: %.0f cm | Cut loss: %.1f cm (%.0f cm²) | Efficiency: %.1f%% | Offcut pocket: %v",
		rec.BoltWidth, rec.CutLossWidth, rec.CutLossArea, rec.Efficiency*100, rec.OffcutUsable)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	renderPattern(pdf, pat)

	return pdf.OutputFileAndClose(path)
}

// renderPattern draws the layered pattern scaled to the page drawing area.
// Pattern y grows upward, page y grows downward, so y is flipped.
func renderPattern(pdf *fpdf.Fpdf, pat geometry.Pattern) {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	bw := pat.BoundingWidth()
	scale := math.Min(drawWidth/bw, drawHeight/pat.Height)

	offsetX := marginLeft + (drawWidth-bw*scale)/2
	offsetY := drawAreaTop

	px := func(p geometry.Point) (float64, float64) {
		return offsetX + p.X*scale, offsetY + (pat.Height-p.Y)*scale
	}
	drawPts := func(pts []geometry.Point, closed bool) {
		for i := 0; i < len(pts)-1; i++ {
			x1, y1 := px(pts[i])
			x2, y2 := px(pts[i+1])
			pdf.Line(x1, y1, x2, y2)
		}
		if closed && len(pts) > 2 {
			x1, y1 := px(pts[len(pts)-1])
			x2, y2 := px(pts[0])
			pdf.Line(x1, y1, x2, y2)
		}
	}

	pdf.SetLineWidth(0.3)
	for _, layer := range pat.Layers {
		col, ok := pdfLayerColors[layer.Name]
		if !ok {
			col = layerColorRGB{}
		}
		pdf.SetDrawColor(col.R, col.G, col.B)
		for _, l := range layer.Lines {
			drawPts([]geometry.Point{l.Start, l.End}, false)
		}
		for _, pl := range layer.Polylines {
			drawPts(pl.Points, pl.Closed)
		}
		for _, a := range layer.Arcs {
			drawPts(a.Flatten(arcSegments), false)
		}
		for _, c := range layer.Curves {
			drawPts(c.Flatten(curveSegments), false)
		}
	}
	pdf.SetDrawColor(0, 0, 0)
}

// WriteReportPDF renders the batch efficiency report: a used-vs-ideal
// efficiency bar chart for each subject followed by a summary statistics
// table.
func WriteReportPDF(path string, records []analysis.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to report")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight,
		"Fabric Efficiency Report", "", 0, "L", false, 0, "")

	chartTop := drawAreaTop
	chartHeight := 90.0
	chartWidth := pageWidth - marginLeft - marginRight
	baseline := chartTop + chartHeight

	// Axis
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(marginLeft, baseline, marginLeft+chartWidth, baseline)
	pdf.Line(marginLeft, chartTop, marginLeft, baseline)

	// Used (solid) and ideal (light) efficiency bars per subject.
	n := len(records)
	slot := chartWidth / float64(n)
	barW := math.Min(slot*0.4, 8)
	pdf.SetFont("Helvetica", "", 6)
	for i, r := range records {
		x := marginLeft + float64(i)*slot + slot/2

		if r.Fits() {
			h := r.Efficiency * chartHeight
			pdf.SetFillColor(46, 139, 87)
			pdf.Rect(x-barW, baseline-h, barW, h, "F")
		}
		hIdeal := r.EfficiencyIdeal * chartHeight
		pdf.SetFillColor(170, 210, 190)
		pdf.Rect(x, baseline-hIdeal, barW, hIdeal, "F")

		if slot > 6 {
			pdf.SetTextColor(0, 0, 0)
			pdf.SetXY(x-slot/2, baseline+1)
			pdf.CellFormat(slot, 3, r.SubjectID, "", 0, "C", false, 0, "")
		}
	}

	// Summary table, one row per metric in a stable order.
	summaries := analysis.SummarizeRecords(records)
	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	y := baseline + 10
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(60, 5, "Metric", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 5, "Count", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 5, "Mean", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 5, "Median", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 5, "Std Dev", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	y += 6
	for _, name := range names {
		s := summaries[name]
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(60, 4, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 4, fmt.Sprintf("%d", s.Count), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 4, fmt.Sprintf("%.3f", s.Mean), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 4, fmt.Sprintf("%.3f", s.Median), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 4, fmt.Sprintf("%.3f", s.StdDev), "", 1, "R", false, 0, "")
		y += 4.5
	}

	return pdf.OutputFileAndClose(path)
}
