package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/almare/zerocut/internal/analysis"
)

// LabelInfo holds the data encoded into each pattern label's QR code.
type LabelInfo struct {
	SubjectID     string  `json:"subject_id"`
	PatternWidth  float64 `json:"pattern_width_cm"`
	PatternHeight float64 `json:"pattern_height_cm"`
	BoltWidth     float64 `json:"bolt_width_cm"`
	Efficiency    float64 `json:"efficiency"`
	OffcutUsable  bool    `json:"offcut_usable"`
	Band          string  `json:"size_band"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per page) on US Letter paper.
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos extracts label data from a record set.
func CollectLabelInfos(records []analysis.Record) []LabelInfo {
	labels := make([]LabelInfo, 0, len(records))
	for _, r := range records {
		labels = append(labels, LabelInfo{
			SubjectID:     r.SubjectID,
			PatternWidth:  r.PatternWidth,
			PatternHeight: r.PatternHeight,
			BoltWidth:     r.BoltWidth,
			Efficiency:    r.Efficiency,
			OffcutUsable:  r.OffcutUsable,
			Band:          r.Band.String(),
		})
	}
	return labels
}

// WriteLabels generates a PDF of QR-coded cut labels, one per subject. Each
// label carries the subject id, the pattern dimensions, and a QR code
// encoding the analysis record as JSON, laid out on a standard label sheet.
func WriteLabels(path string, records []analysis.Record) error {
	labels := CollectLabelInfos(records)
	if len(labels) == 0 {
		return fmt.Errorf("no records to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("render label for %q: %w", label.SubjectID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.SubjectID, int(info.BoltWidth))
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	subject := info.SubjectID
	if pdf.GetStringWidth(subject) > textW {
		for len(subject) > 0 && pdf.GetStringWidth(subject+"...") > textW {
			subject = subject[:len(subject)-1]
		}
		subject += "..."
	}
	pdf.CellFormat(textW, 4.5, subject, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.1f x %.1f cm", info.PatternWidth, info.PatternHeight)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	boltInfo := fmt.Sprintf("Bolt %.0f cm | eff %.1f%% | %s", info.BoltWidth, info.Efficiency*100, info.Band)
	pdf.CellFormat(textW, 3, boltInfo, "", 1, "L", false, 0, "")

	if info.OffcutUsable {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Offcut: pocket set", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
