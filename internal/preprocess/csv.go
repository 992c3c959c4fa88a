// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preprocess

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rxndb/pkg/types"
)

// ConvertCSV reads a curve-fit source database in CSV form (one row per
// fitted boundary, with intercept b, terms t1..t4, and window columns)
// and writes one normalized YAML record file per row into outDir. Rows
// that cannot be converted are skipped with a diagnostic on w; the
// returned count is the number of records written (R2.1-R2.5).
func ConvertCSV(path, outDir, source string, w io.Writer) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer f.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	written := 0
	for rowNum := 2; ; rowNum++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("reading CSV row %d: %w", rowNum, err)
		}

		rec, err := convertCSVRow(row, cols, source, written+1)
		if err != nil {
			fmt.Fprintf(w, "skipped row %d: %v\n", rowNum, err)
			continue
		}
		if err := writeRecordFile(outDir, rec); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

// convertCSVRow builds one ReactionRecord from a CSV row.
func convertCSVRow(row []string, cols map[string]int, source string, seq int) (types.ReactionRecord, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var reactants, products []string
	for i := 1; i <= 3; i++ {
		if p := get(fmt.Sprintf("reactant%d", i)); p != "" {
			reactants = append(reactants, strings.ToLower(p))
		}
		if p := get(fmt.Sprintf("product%d", i)); p != "" {
			products = append(products, strings.ToLower(p))
		}
	}
	reactants = NormalizePhases(reactants)
	products = NormalizePhases(products)

	// Melting rows leave the reactant columns empty; the solid phase is
	// in the formula column.
	if len(reactants) == 0 && anyMelt(products) {
		if formula := get("formula"); formula != "" {
			reactants = []string{strings.ToLower(formula)}
		}
	}

	coeffs, err := fitCoefficients(get)
	if err != nil {
		return types.ReactionRecord{}, err
	}

	win, err := fitWindow(get)
	if err != nil {
		return types.ReactionRecord{}, err
	}

	rxn := strings.ToLower(get("rxn"))
	if rxn == "" || rxn == "melt" {
		rxn = strings.Join(reactants, " + ") + " => " + strings.Join(products, " + ")
	}
	rxn = NormalizeReaction(tidyReaction(rxn))

	curveType := types.CurvePhaseBoundary
	if anyMelt(products) {
		curveType = types.CurveMelting
	}

	rec := types.ReactionRecord{
		ID:        recordID(source, get("id"), seq),
		Source:    source,
		Type:      curveType,
		PlotType:  types.PlotCurve,
		Reaction:  rxn,
		Reactants: reactants,
		Products:  products,
		Units:     types.Units{Temperature: "C", Pressure: "GPa"},
		Fit:       types.Fit{Coefficients: coeffs, Window: win},
		Ref: types.Reference{
			ShortCite: shortCite(get("authors"), get("year")),
			Authors:   strings.ReplaceAll(get("authors"), ";", ","),
			Year:      get("year"),
			Title:     get("title"),
			Journal:   get("journal"),
			Volume:    get("volume"),
			Pages:     get("pages"),
			DOI:       get("doi"),
		},
		CalibrationConfidence: get("calibration_confidence"),
		DataConfidence:        get("data_constraint_confidence"),
		Misc:                  get("misc"),
	}
	return rec, nil
}

// fitCoefficients assembles [b, t1, t2, t3, t4] from the row, treating
// empty cells as zero and trimming trailing zero terms.
func fitCoefficients(get func(string) string) ([]float64, error) {
	names := []string{"b", "t1", "t2", "t3", "t4"}
	coeffs := make([]float64, 0, len(names))
	for _, name := range names {
		cell := get(name)
		if cell == "" || cell == "-" {
			coeffs = append(coeffs, 0)
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coefficient %s=%q", name, cell)
		}
		coeffs = append(coeffs, v)
	}
	for len(coeffs) > 1 && coeffs[len(coeffs)-1] == 0 {
		coeffs = coeffs[:len(coeffs)-1]
	}
	if get("b") == "" {
		return nil, fmt.Errorf("missing intercept b")
	}
	return coeffs, nil
}

// fitWindow parses tmin/tmax/pmin/pmax from the row.
func fitWindow(get func(string) string) (types.Window, error) {
	parse := func(name string) (float64, error) {
		cell := get(name)
		if cell == "" || cell == "-" {
			return 0, nil
		}
		return strconv.ParseFloat(cell, 64)
	}
	var win types.Window
	var err error
	if win.TMin, err = parse("tmin"); err != nil {
		return win, fmt.Errorf("invalid tmin: %w", err)
	}
	if win.TMax, err = parse("tmax"); err != nil {
		return win, fmt.Errorf("invalid tmax: %w", err)
	}
	if win.PMin, err = parse("pmin"); err != nil {
		return win, fmt.Errorf("invalid pmin: %w", err)
	}
	if win.PMax, err = parse("pmax"); err != nil {
		return win, fmt.Errorf("invalid pmax: %w", err)
	}
	if win.TMin == 0 && win.TMax == 0 {
		return win, fmt.Errorf("missing temperature window")
	}
	return win, nil
}

func anyMelt(phases []string) bool {
	for _, p := range phases {
		if strings.Contains(p, "melt") {
			return true
		}
	}
	return false
}

// recordID builds "<source>-NNN" from the row's own id when it is
// numeric, falling back to the sequence number.
func recordID(source, rawID string, seq int) string {
	if n, err := strconv.Atoi(rawID); err == nil {
		return fmt.Sprintf("%s-%03d", source, n)
	}
	return fmt.Sprintf("%s-%03d", source, seq)
}

func shortCite(authors, year string) string {
	a := strings.ReplaceAll(authors, ";", ",")
	if a == "" {
		a = "Unknown"
	}
	if year == "" {
		year = "n.d."
	}
	return a + ", " + year
}

// writeRecordFile marshals a record to outDir/<id>.yml.
func writeRecordFile(outDir string, rec types.ReactionRecord) error {
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("marshaling record %s: %w", rec.ID, err)
	}
	path := filepath.Join(outDir, rec.ID+".yml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", rec.ID, err)
	}
	return nil
}
