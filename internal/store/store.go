// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store writes snapshots of the assembled reaction table for
// external analysis tools: a SQLite database of records and sampled
// curve points, or flat CSV/YAML/JSON files.
// Implements: prd003-export (R1-R3);
//
//	docs/ARCHITECTURE § Export.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rxndb/internal/dataset"
)

const dbFile = "rxndb.db"

// ExportSQLite writes the table and its sampled curves to a SQLite
// database at path. An existing file is replaced so the snapshot always
// reflects exactly the given table (R1.1-R1.4).
func ExportSQLite(ctx context.Context, table *dataset.Table, path string, resolution int) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale snapshot: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := createSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insertReaction, err := tx.PrepareContext(ctx,
		`INSERT INTO reactions (id, rxn, type, plot_type, reactants, products,
			t_unit, p_unit, citation, calibration_confidence, data_confidence,
			tmin, tmax, pmin, pmax, coefficients)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing reaction insert: %w", err)
	}
	defer insertReaction.Close()

	insertSample, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (reaction_id, seq, t, p) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing sample insert: %w", err)
	}
	defer insertSample.Close()

	for _, row := range table.Rows() {
		rec := row.Record
		win := rec.Fit.Window
		_, err := insertReaction.ExecContext(ctx,
			row.ID, row.Reaction, string(row.Type), string(row.PlotType),
			row.Reactants, row.Products,
			row.Units.Temperature, row.Units.Pressure,
			row.Citation, row.CalibrationConfidence, row.DataConfidence,
			win.TMin, win.TMax, win.PMin, win.PMax,
			formatCoefficients(rec.Fit.Coefficients),
		)
		if err != nil {
			return fmt.Errorf("inserting reaction %s: %w", row.ID, err)
		}

		seq := 0
		for tv, pv := range dataset.Sample(rec, resolution) {
			if _, err := insertSample.ExecContext(ctx, row.ID, seq, tv, pv); err != nil {
				return fmt.Errorf("inserting sample for %s: %w", row.ID, err)
			}
			seq++
		}
	}

	return tx.Commit()
}

func createSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reactions (
			id TEXT PRIMARY KEY,
			rxn TEXT NOT NULL,
			type TEXT NOT NULL,
			plot_type TEXT NOT NULL,
			reactants TEXT NOT NULL,
			products TEXT NOT NULL,
			t_unit TEXT,
			p_unit TEXT,
			citation TEXT,
			calibration_confidence TEXT,
			data_confidence TEXT,
			tmin REAL, tmax REAL, pmin REAL, pmax REAL,
			coefficients TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS samples (
			reaction_id TEXT NOT NULL REFERENCES reactions(id),
			seq INTEGER NOT NULL,
			t REAL NOT NULL,
			p REAL NOT NULL,
			PRIMARY KEY (reaction_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reactions_type ON reactions(type)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// formatCoefficients serializes the coefficient list as a comma-joined
// string, readable from SQL without JSON support.
func formatCoefficients(coeffs []float64) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return strings.Join(parts, ",")
}
