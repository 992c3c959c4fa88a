// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the reaction record database, assembles the
// in-memory table, and evaluates polynomial curve fits for plotting.
// Implements: prd001-ingestion (R1-R4);
//
//	docs/ARCHITECTURE § Ingestion.
package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rxndb/pkg/types"
)

// DefaultResolution is the number of evenly spaced points evaluated
// across a record's validity window when no resolution is given.
const DefaultResolution = 100

// validCurveTypes is the set of accepted CurveType values (R1.3).
var validCurveTypes = map[types.CurveType]bool{
	types.CurvePhaseBoundary: true,
	types.CurveMelting:       true,
	types.CurveCalibration:   true,
	types.CurveReaction:      true,
}

// Reject records a file excluded from the working set and why (R4.2).
type Reject struct {
	// File is the record filename relative to the data directory.
	File string `json:"file" yaml:"file"`

	// Reason describes the validation failure.
	Reason string `json:"reason" yaml:"reason"`
}

// Load reads every YAML record file in dir, validates each one, and
// assembles the valid records into a Table in lexical filename order.
// Malformed files are skipped with the reason retained in the returned
// rejects; the diagnostic is also written to w. An unreadable directory
// is the only fatal condition: no partial table can be built from it.
// A directory with zero valid records yields an empty table and no
// error (R3.1-R3.4, R4.1-R4.3).
func Load(dir string, w io.Writer) (*Table, []Reject, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading record directory %s: %w", dir, err)
	}

	var records []types.ReactionRecord
	var rejects []Reject

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isRecordFile(name) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			rejects = append(rejects, reject(w, name, fmt.Sprintf("read error: %v", err)))
			continue
		}

		var rec types.ReactionRecord
		if err := yaml.Unmarshal(data, &rec); err != nil {
			rejects = append(rejects, reject(w, name, fmt.Sprintf("parse error: %v", err)))
			continue
		}

		normalize(&rec)

		if reason := validate(&rec); reason != "" {
			rejects = append(rejects, reject(w, name, reason))
			continue
		}

		records = append(records, rec)
	}

	return NewTable(records), rejects, nil
}

func reject(w io.Writer, name, reason string) Reject {
	fmt.Fprintf(w, "skipped %s: %s\n", name, reason)
	return Reject{File: name, Reason: reason}
}

// isRecordFile reports whether name looks like a YAML record file.
func isRecordFile(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// normalize fills derivable display fields before validation. Required
// fields are never coerced (R2.4): a record missing reactants stays
// invalid even though a reaction string could not be built for it.
func normalize(rec *types.ReactionRecord) {
	for i, p := range rec.Reactants {
		rec.Reactants[i] = strings.ToLower(strings.TrimSpace(p))
	}
	for i, p := range rec.Products {
		rec.Products[i] = strings.ToLower(strings.TrimSpace(p))
	}
	if rec.PlotType == "" {
		rec.PlotType = types.PlotCurve
	}
	if rec.Reaction == "" && len(rec.Reactants) > 0 && len(rec.Products) > 0 {
		rec.Reaction = strings.Join(rec.Reactants, " + ") + " => " + strings.Join(rec.Products, " + ")
	}
}

// validate returns a rejection reason, or "" if the record is valid
// (R2.1-R2.5). A zero-coefficient polynomial is a validation failure,
// not a default curve.
func validate(rec *types.ReactionRecord) string {
	if rec.ID == "" {
		return "missing id"
	}
	if len(rec.Reactants) == 0 {
		return "missing reactants"
	}
	if len(rec.Products) == 0 {
		return "missing products"
	}
	if !validCurveTypes[rec.Type] {
		return fmt.Sprintf("invalid curve type %q", rec.Type)
	}
	if rec.PlotType != types.PlotCurve && rec.PlotType != types.PlotPoint {
		return fmt.Sprintf("invalid plot type %q", rec.PlotType)
	}
	if rec.Units.Temperature == "" || rec.Units.Pressure == "" {
		return "missing units"
	}
	if len(rec.Fit.Coefficients) == 0 {
		return "missing polynomial coefficients"
	}
	for i, c := range rec.Fit.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Sprintf("non-finite coefficient at index %d", i)
		}
	}
	win := rec.Fit.Window
	if win.TMin > win.TMax {
		return fmt.Sprintf("inverted temperature window [%g, %g]", win.TMin, win.TMax)
	}
	if win.PMin > win.PMax {
		return fmt.Sprintf("inverted pressure window [%g, %g]", win.PMin, win.PMax)
	}
	return ""
}
