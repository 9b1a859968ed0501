package analysis

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/almare/zerocut/internal/model"
	"github.com/almare/zerocut/internal/sizing"
)

// AutoBolt selects the bolt width per subject from the configured bolt
// catalog instead of evaluating every subject against one fixed width.
const AutoBolt = 0.0

// Record is one subject's full analysis outcome: the efficiency result plus
// the sizing decisions that produced the pattern dimensions.
type Record struct {
	EfficiencyResult
	Band     model.SizeBand           `json:"size_band"`
	Template model.TemplateParameters `json:"template"`
}

// BatchResult collects the outcomes of a batch run. A failure on one record
// never aborts the rest; failed subjects are reported alongside successes.
type BatchResult struct {
	Records []Record `json:"records"`
	Errors  []string `json:"errors,omitempty"`
}

// AnalyzeSubject derives the pattern for one subject and evaluates it against
// the given bolt width. Passing AutoBolt picks the bolt from the catalog
// based on the subject's bust and hip.
func AnalyzeSubject(m model.BodyMeasurements, boltWidth float64, cfg model.PatternConfig) (Record, error) {
	params, tmpl, err := sizing.Derive(m, cfg)
	if err != nil {
		return Record{}, err
	}
	if boltWidth <= 0 {
		if len(cfg.BoltCatalog) == 0 {
			return Record{}, &model.InvalidDimensionError{Dimension: "bolt_width", Value: boltWidth}
		}
		boltWidth = sizing.CatalogWidth(m.Bust, m.Hip, cfg.BoltCatalog)
	}
	band := sizing.Classify(m.DominantCircumference(), cfg)
	res, err := Evaluate(params, boltWidth, cfg)
	if err != nil {
		return Record{}, err
	}
	return Record{EfficiencyResult: res, Band: band, Template: tmpl}, nil
}

// AnalyzeScan derives the pattern from a body scan record and evaluates it
// against the given bolt width. The size band comes from the largest torso
// circumference; AutoBolt picks the bolt from the catalog against the same
// circumference.
func AnalyzeScan(s model.ScanMeasurements, boltWidth float64, cfg model.PatternConfig) (Record, error) {
	if err := s.Validate(); err != nil {
		return Record{}, err
	}
	params := sizing.ScanPatternParameters(s, cfg)
	largest := s.MaxCircumference()
	if boltWidth <= 0 {
		if len(cfg.BoltCatalog) == 0 {
			return Record{}, &model.InvalidDimensionError{Dimension: "bolt_width", Value: boltWidth}
		}
		boltWidth = sizing.CatalogWidth(largest, largest, cfg.BoltCatalog)
	}
	band := sizing.Classify(largest, cfg)
	res, err := Evaluate(params, boltWidth, cfg)
	if err != nil {
		return Record{}, err
	}
	return Record{EfficiencyResult: res, Band: band, Template: cfg.Template(band)}, nil
}

// AnalyzeBatch evaluates every subject against the bolt width using a worker
// pool. Records come back in input order; a cancelled context stops
// dispatching new subjects but already-dispatched ones complete.
func AnalyzeBatch(ctx context.Context, subjects []model.BodyMeasurements, boltWidth float64, cfg model.PatternConfig, workers int) BatchResult {
	return runBatch(ctx, len(subjects), workers,
		func(i int) (Record, error) { return AnalyzeSubject(subjects[i], boltWidth, cfg) },
		func(i int) string { return subjects[i].SubjectID })
}

// AnalyzeScanBatch evaluates every scan record against the bolt width using
// the same worker pool as AnalyzeBatch.
func AnalyzeScanBatch(ctx context.Context, scans []model.ScanMeasurements, boltWidth float64, cfg model.PatternConfig, workers int) BatchResult {
	return runBatch(ctx, len(scans), workers,
		func(i int) (Record, error) { return AnalyzeScan(scans[i], boltWidth, cfg) },
		func(i int) string { return scans[i].ScanCode })
}

// runBatch maps analyze over n independent records with a worker pool.
// Records are independent, so each worker writes only its own result slots;
// the merge at the end needs no locking.
func runBatch(ctx context.Context, n, workers int, analyze func(int) (Record, error), id func(int) string) BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if n == 0 {
		return BatchResult{}
	}

	type slot struct {
		rec Record
		err error
	}
	slots := make([]slot, n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, err := analyze(i)
				slots[i] = slot{rec: rec, err: err}
			}
		}()
	}

dispatch:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < n; j++ {
				slots[j].err = ctx.Err()
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	var out BatchResult
	for i, s := range slots {
		if s.err != nil {
			out.Errors = append(out.Errors,
				fmt.Sprintf("subject %s: %v", id(i), s.err))
			continue
		}
		out.Records = append(out.Records, s.rec)
	}
	return out
}
