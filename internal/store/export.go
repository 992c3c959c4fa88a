// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rxndb/internal/dataset"
)

// ExportYAML writes the table rows to a YAML file (R2.2).
func ExportYAML(table *dataset.Table, path string) error {
	data, err := yaml.Marshal(table.Rows())
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the table rows to an indented JSON file (R2.3).
func ExportJSON(table *dataset.Table, path string) error {
	data, err := json.MarshalIndent(table.Rows(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// csvHeader is the column order of CSV exports (R2.4).
var csvHeader = []string{
	"id", "rxn", "type", "plot_type", "reactants", "products",
	"t_unit", "p_unit", "citation",
	"calibration_confidence", "data_confidence",
	"tmin", "tmax", "pmin", "pmax",
}

// ExportCSV writes the table rows as CSV, one row per record.
func ExportCSV(table *dataset.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range table.Rows() {
		win := row.Record.Fit.Window
		record := []string{
			row.ID, row.Reaction, string(row.Type), string(row.PlotType),
			row.Reactants, row.Products,
			row.Units.Temperature, row.Units.Pressure,
			row.Citation, row.CalibrationConfidence, row.DataConfidence,
			formatFloat(win.TMin), formatFloat(win.TMax),
			formatFloat(win.PMin), formatFloat(win.PMax),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", row.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
