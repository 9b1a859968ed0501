// Package store persists analysis runs in a SQLite archive so workshop and
// scan data sets can be compared across sessions.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/almare/zerocut/internal/analysis"
	"github.com/almare/zerocut/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the SQLite analysis archive.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive at dbPath, sets the recommended
// pragmas, and runs any pending migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecord archives one analysis record and returns its row id.
func (s *Store) SaveRecord(ctx context.Context, r analysis.Record) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			subject_id, pattern_width, pattern_height, size_band, orientation,
			bolt_width_used, cut_loss_width_used, cut_loss_area_used, efficiency_used,
			bolt_width_ideal, cut_loss_width_ideal, cut_loss_area_ideal, efficiency_ideal,
			offcut_usable, offcut_yield, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SubjectID, r.PatternWidth, r.PatternHeight, int(r.Band), int(r.Orientation),
		r.BoltWidth, r.CutLossWidth, r.CutLossArea, r.Efficiency,
		r.IdealBoltWidth, r.CutLossWidthIdeal, r.CutLossAreaIdeal, r.EfficiencyIdeal,
		r.OffcutUsable, r.OffcutYield, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return res.LastInsertId()
}

// SaveBatch archives all records of a batch run.
func (s *Store) SaveBatch(ctx context.Context, records []analysis.Record) error {
	for _, r := range records {
		if _, err := s.SaveRecord(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// ListRecords returns up to limit archived records, newest first.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]analysis.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject_id, pattern_width, pattern_height, size_band, orientation,
			bolt_width_used, cut_loss_width_used, cut_loss_area_used, efficiency_used,
			bolt_width_ideal, cut_loss_width_ideal, cut_loss_area_ideal, efficiency_ideal,
			offcut_usable, offcut_yield
		FROM analyses
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var records []analysis.Record
	for rows.Next() {
		var r analysis.Record
		var band, orientation int
		if err := rows.Scan(
			&r.SubjectID, &r.PatternWidth, &r.PatternHeight, &band, &orientation,
			&r.BoltWidth, &r.CutLossWidth, &r.CutLossArea, &r.Efficiency,
			&r.IdealBoltWidth, &r.CutLossWidthIdeal, &r.CutLossAreaIdeal, &r.EfficiencyIdeal,
			&r.OffcutUsable, &r.OffcutYield,
		); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		r.Band = model.SizeBand(band)
		r.Orientation = analysis.Orientation(orientation)
		records = append(records, r)
	}
	return records, rows.Err()
}
