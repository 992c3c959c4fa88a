// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"sort"
	"strings"

	"github.com/pdiddy/rxndb/pkg/types"
)

// Row is one flattened table entry: display columns plus the underlying
// record for plotting (R5.1, R5.2).
type Row struct {
	ID       string          `json:"id" yaml:"id"`
	Reaction string          `json:"rxn" yaml:"rxn"`
	Type     types.CurveType `json:"type" yaml:"type"`
	PlotType types.PlotType  `json:"plot_type" yaml:"plot_type"`

	// Reactants and Products are joined display strings ("ky + q").
	Reactants string `json:"reactants" yaml:"reactants"`
	Products  string `json:"products" yaml:"products"`

	Units    types.Units `json:"units" yaml:"units"`
	Citation string      `json:"citation" yaml:"citation"`

	CalibrationConfidence string `json:"calibration_confidence,omitempty" yaml:"calibration_confidence,omitempty"`
	DataConfidence        string `json:"data_confidence,omitempty" yaml:"data_confidence,omitempty"`

	// Record holds the full record, including the fit and window.
	Record *types.ReactionRecord `json:"-" yaml:"-"`
}

// Table is the immutable working set of validated records. Row order is
// insertion order; nothing re-sorts or mutates it after construction, so
// a Table is safe to share across concurrent readers (R5.3, R5.4).
type Table struct {
	rows []Row
	byID map[string]int
}

// NewTable flattens validated records into a Table, preserving order.
func NewTable(records []types.ReactionRecord) *Table {
	t := &Table{
		rows: make([]Row, 0, len(records)),
		byID: make(map[string]int, len(records)),
	}
	for i := range records {
		rec := &records[i]
		t.byID[rec.ID] = len(t.rows)
		t.rows = append(t.rows, Row{
			ID:                    rec.ID,
			Reaction:              rec.Reaction,
			Type:                  rec.Type,
			PlotType:              rec.PlotType,
			Reactants:             strings.Join(rec.Reactants, " + "),
			Products:              strings.Join(rec.Products, " + "),
			Units:                 rec.Units,
			Citation:              rec.Ref.ShortCite,
			CalibrationConfidence: rec.CalibrationConfidence,
			DataConfidence:        rec.DataConfidence,
			Record:                rec,
		})
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the table rows in insertion order. Callers must treat the
// returned slice as read-only.
func (t *Table) Rows() []Row { return t.rows }

// ByID returns the record with the given identifier.
func (t *Table) ByID(id string) (*types.ReactionRecord, bool) {
	i, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return t.rows[i].Record, true
}

// Filter returns a new Table holding the rows for which pred is true, in
// original relative order. The receiver is unchanged (R6.1-R6.3).
func (t *Table) Filter(pred func(Row) bool) *Table {
	var kept []Row
	for _, row := range t.rows {
		if pred(row) {
			kept = append(kept, row)
		}
	}
	out := &Table{rows: kept, byID: make(map[string]int, len(kept))}
	for i, row := range kept {
		out.byID[row.ID] = i
	}
	return out
}

// ByReactants keeps rows whose reactants include any of the given phase
// names. Leading stoichiometric digits are ignored on both sides.
func (t *Table) ByReactants(phases []string) *Table {
	return t.Filter(func(r Row) bool {
		return containsAnyPhase(r.Record.Reactants, phases)
	})
}

// ByProducts keeps rows whose products include any of the given phases.
func (t *Table) ByProducts(phases []string) *Table {
	return t.Filter(func(r Row) bool {
		return containsAnyPhase(r.Record.Products, phases)
	})
}

// ByCurveType keeps rows of the given curve type.
func (t *Table) ByCurveType(ct types.CurveType) *Table {
	return t.Filter(func(r Row) bool { return r.Type == ct })
}

// ByIDs keeps rows whose ID appears in ids, preserving table order.
func (t *Table) ByIDs(ids []string) *Table {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return t.Filter(func(r Row) bool { return want[r.ID] })
}

// UniquePhases returns the sorted set of phase names appearing in any
// row's reactants or products, with leading stoichiometric digits
// stripped ("2ky" and "ky" are the same phase).
func (t *Table) UniquePhases() []string {
	seen := make(map[string]bool)
	for _, row := range t.rows {
		for _, p := range row.Record.Reactants {
			seen[stripCoefficient(p)] = true
		}
		for _, p := range row.Record.Products {
			seen[stripCoefficient(p)] = true
		}
	}
	phases := make([]string, 0, len(seen))
	for p := range seen {
		if p != "" {
			phases = append(phases, p)
		}
	}
	sort.Strings(phases)
	return phases
}

// stripCoefficient removes a leading run of digits from a phase name.
func stripCoefficient(phase string) string {
	i := 0
	for i < len(phase) && phase[i] >= '0' && phase[i] <= '9' {
		i++
	}
	return phase[i:]
}

// containsAnyPhase reports whether list contains any of phases, comparing
// with stoichiometric digits stripped.
func containsAnyPhase(list, phases []string) bool {
	for _, have := range list {
		h := stripCoefficient(have)
		for _, want := range phases {
			if h == stripCoefficient(want) {
				return true
			}
		}
	}
	return false
}
