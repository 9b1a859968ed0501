// ZeroCut — zero-waste garment pattern generator and fabric efficiency analyzer
//
// Reads body measurements (or, with -scan, 3-D body scan records) from CSV
// or XLSX, derives one zero-waste tee pattern per subject, scores each
// pattern against a manufactured fabric bolt width, and writes the requested
// pattern drawings, analysis tables, and reports.
//
// Build:
//   go build -o zerocut ./cmd/zerocut

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/almare/zerocut/internal/analysis"
	"github.com/almare/zerocut/internal/export"
	"github.com/almare/zerocut/internal/geometry"
	"github.com/almare/zerocut/internal/importer"
	"github.com/almare/zerocut/internal/model"
	"github.com/almare/zerocut/internal/project"
	"github.com/almare/zerocut/internal/store"
)

var (
	inputPath  string
	outDir     string
	configPath string
	dbPath     string

	boltFlag  string
	boltWidth float64
	workers   int
	scanMode  bool

	withDXF    bool
	withSVG    bool
	withPDF    bool
	withLabels bool
	withXLSX   bool
	withCSV    bool
	withEncap  bool
	withGuides bool
)

func param() {
	flag.StringVar(&inputPath, "in", "", "measurements file (.csv or .xlsx)")
	flag.StringVar(&outDir, "out", "zerocut-out", "output directory")
	flag.StringVar(&configPath, "config", project.DefaultConfigPath(), "tailoring constants file (JSON)")
	flag.StringVar(&dbPath, "db", "", "sqlite database to archive results into (optional)")

	flag.StringVar(&boltFlag, "bolt", "150", "available fabric bolt width in cm, or 'auto' to pick each subject's bolt from the catalog")
	flag.IntVar(&workers, "workers", 0, "worker pool size (0 = GOMAXPROCS)")
	flag.BoolVar(&scanMode, "scan", false, "input rows are 3-D body scan records instead of direct measurements")

	flag.BoolVar(&withDXF, "dxf", false, "write one DXF pattern drawing per subject")
	flag.BoolVar(&withSVG, "svg", false, "write one SVG pattern drawing per subject")
	flag.BoolVar(&withPDF, "pdf", false, "write one print-ready PDF per subject plus a batch report")
	flag.BoolVar(&withLabels, "labels", false, "write a QR label sheet for the batch")
	flag.BoolVar(&withXLSX, "xlsx", false, "write the analysis table as XLSX")
	flag.BoolVar(&withCSV, "csv", true, "write the analysis table as CSV")
	flag.BoolVar(&withEncap, "encap", false, "include the encapsulation panel in pattern drawings")
	flag.BoolVar(&withGuides, "guides", true, "include seam guide lines in pattern drawings")

	flag.Parse()

	if inputPath == "" && flag.NArg() > 0 {
		inputPath = flag.Arg(0)
	}
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: zerocut [flags] measurements.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var err error
	boltWidth, err = parseBolt(boltFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -bolt value %q: %v\n", boltFlag, err)
		os.Exit(2)
	}
}

// parseBolt interprets the -bolt flag: a positive width in cm, or "auto" for
// per-subject catalog selection.
func parseBolt(s string) (float64, error) {
	if s == "auto" {
		return analysis.AutoBolt, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number or 'auto'")
	}
	if w <= 0 {
		return 0, fmt.Errorf("width must be positive")
	}
	return w, nil
}

func main() {
	param()

	cfg, err := project.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	result := analyzeInput(cfg)
	for _, e := range result.Errors {
		log.Printf("analysis: %s", e)
	}
	if len(result.Records) == 0 {
		log.Fatal("no subject could be analyzed")
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	if withCSV {
		path := filepath.Join(outDir, "analysis.csv")
		if err := export.WriteAnalysisCSVFile(path, result.Records); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}
	if withXLSX {
		path := filepath.Join(outDir, "analysis.xlsx")
		if err := export.WriteAnalysisXLSX(path, result.Records); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}
	if withLabels {
		path := filepath.Join(outDir, "labels.pdf")
		if err := export.WriteLabels(path, result.Records); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}
	if withPDF {
		path := filepath.Join(outDir, "report.pdf")
		if err := export.WriteReportPDF(path, result.Records); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}

	if withDXF || withSVG || withPDF {
		writeDrawings(result.Records, cfg)
	}

	if dbPath != "" {
		archive(result.Records)
	}

	logSummary(result.Records)
}

// analyzeInput imports the input file as measurement or scan records and runs
// the batch analysis.
func analyzeInput(cfg model.PatternConfig) analysis.BatchResult {
	ctx := context.Background()

	if scanMode {
		imp := importer.ImportScans(inputPath)
		for _, w := range imp.Warnings {
			log.Printf("warning: %s", w)
		}
		for _, e := range imp.Errors {
			log.Printf("skipped: %s", e)
		}
		if len(imp.Scans) == 0 {
			log.Fatalf("no usable scan rows in %s", inputPath)
		}
		log.Printf("imported %d scans from %s", len(imp.Scans), inputPath)
		return analysis.AnalyzeScanBatch(ctx, imp.Scans, boltWidth, cfg, workers)
	}

	imp := importer.Import(inputPath)
	for _, w := range imp.Warnings {
		log.Printf("warning: %s", w)
	}
	for _, e := range imp.Errors {
		log.Printf("skipped: %s", e)
	}
	if len(imp.Subjects) == 0 {
		log.Fatalf("no usable measurement rows in %s", inputPath)
	}
	log.Printf("imported %d subjects from %s", len(imp.Subjects), inputPath)
	return analysis.AnalyzeBatch(ctx, imp.Subjects, boltWidth, cfg, workers)
}

// writeDrawings rebuilds each subject's pattern geometry from its analysis
// record and writes the requested drawing formats.
func writeDrawings(records []analysis.Record, cfg model.PatternConfig) {
	opts := geometry.BuildOptions{
		IncludeEncap:      withEncap,
		EncapWidth:        cfg.EncapWidth,
		IncludeSeamGuides: withGuides,
	}
	for _, rec := range records {
		params := model.PatternParameters{
			SubjectID: rec.SubjectID,
			Width:     rec.PatternWidth,
			Height:    rec.PatternHeight,
		}
		pat, err := geometry.BuildPattern(params, rec.Template, opts)
		if err != nil {
			log.Printf("geometry %s: %v", rec.SubjectID, err)
			continue
		}
		if withDXF {
			path := filepath.Join(outDir, rec.SubjectID+".dxf")
			if err := export.WriteDXF(path, pat); err != nil {
				log.Printf("write %s: %v", path, err)
			}
		}
		if withSVG {
			path := filepath.Join(outDir, rec.SubjectID+".svg")
			if err := os.WriteFile(path, []byte(export.SVG(pat)), 0644); err != nil {
				log.Printf("write %s: %v", path, err)
			}
		}
		if withPDF {
			path := filepath.Join(outDir, rec.SubjectID+".pdf")
			if err := export.WritePatternPDF(path, pat, rec); err != nil {
				log.Printf("write %s: %v", path, err)
			}
		}
	}
}

// archive saves the batch into the sqlite results database.
func archive(records []analysis.Record) {
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.SaveBatch(context.Background(), records); err != nil {
		log.Fatalf("archive batch: %v", err)
	}
	log.Printf("archived %d records to %s", len(records), dbPath)
}

func logSummary(records []analysis.Record) {
	fit := 0
	for _, r := range records {
		if r.Fits() {
			fit++
		}
	}
	bolt := fmt.Sprintf("%.0f cm bolt", boltWidth)
	if boltWidth <= 0 {
		bolt = "catalog bolts"
	}
	log.Printf("analyzed %d subjects against %s: %d fit, %d unfit",
		len(records), bolt, fit, len(records)-fit)

	summaries := analysis.SummarizeRecords(records)
	for _, name := range []string{"efficiency_used", "efficiency_ideal", "cut_loss_area_used"} {
		s, ok := summaries[name]
		if !ok || s.Count == 0 {
			continue
		}
		log.Printf("%s: mean %.4f median %.4f stddev %.4f (n=%d)",
			name, s.Mean, s.Median, s.StdDev, s.Count)
	}
}
