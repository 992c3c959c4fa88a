package dataset

import (
	"reflect"
	"testing"

	"github.com/pdiddy/rxndb/pkg/types"
)

func testRecords() []types.ReactionRecord {
	mk := func(id, rxn string, reactants, products []string, ct types.CurveType) types.ReactionRecord {
		return types.ReactionRecord{
			ID:        id,
			Type:      ct,
			PlotType:  types.PlotCurve,
			Reaction:  rxn,
			Reactants: reactants,
			Products:  products,
			Units:     types.Units{Temperature: "C", Pressure: "GPa"},
			Fit: types.Fit{
				Coefficients: []float64{1.0},
				Window:       types.Window{TMin: 0, TMax: 100, PMin: 0, PMax: 10},
			},
		}
	}
	return []types.ReactionRecord{
		mk("r1", "ky => sil", []string{"ky"}, []string{"sil"}, types.CurvePhaseBoundary),
		mk("r2", "ky => and", []string{"ky"}, []string{"and"}, types.CurvePhaseBoundary),
		mk("r3", "fo => melt", []string{"fo"}, []string{"melt"}, types.CurveMelting),
		mk("r4", "2ky + q => cor", []string{"2ky", "q"}, []string{"cor"}, types.CurveReaction),
	}
}

func tableIDs(t *Table) []string {
	ids := make([]string, 0, t.Len())
	for _, row := range t.Rows() {
		ids = append(ids, row.ID)
	}
	return ids
}

func TestTableAssembly(t *testing.T) {
	table := NewTable(testRecords())

	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", table.Len())
	}

	row := table.Rows()[3]
	if row.Reactants != "2ky + q" {
		t.Errorf("joined reactants = %q, want %q", row.Reactants, "2ky + q")
	}
	if row.Products != "cor" {
		t.Errorf("joined products = %q, want %q", row.Products, "cor")
	}
	if row.Record == nil || row.Record.ID != "r4" {
		t.Error("row should reference its underlying record")
	}
}

func TestByID(t *testing.T) {
	table := NewTable(testRecords())

	rec, ok := table.ByID("r3")
	if !ok || rec.Reaction != "fo => melt" {
		t.Errorf("ByID(r3) = %v, %v", rec, ok)
	}
	if _, ok := table.ByID("nope"); ok {
		t.Error("ByID(nope) should not be found")
	}
}

func TestFilterByReactantPreservesOrder(t *testing.T) {
	table := NewTable(testRecords())

	got := table.ByReactants([]string{"ky"})
	want := []string{"r1", "r2", "r4"} // r4 matches via "2ky"
	if !reflect.DeepEqual(tableIDs(got), want) {
		t.Errorf("ByReactants(ky) = %v, want %v", tableIDs(got), want)
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	table := NewTable(testRecords())
	before := tableIDs(table)

	table.ByProducts([]string{"melt"})
	table.ByCurveType(types.CurveMelting)
	table.Filter(func(Row) bool { return false })

	if !reflect.DeepEqual(tableIDs(table), before) {
		t.Errorf("filtering mutated the table: %v, want %v", tableIDs(table), before)
	}
}

func TestFilterChaining(t *testing.T) {
	table := NewTable(testRecords())

	got := table.ByReactants([]string{"ky"}).ByProducts([]string{"sil", "and"})
	want := []string{"r1", "r2"}
	if !reflect.DeepEqual(tableIDs(got), want) {
		t.Errorf("chained filter = %v, want %v", tableIDs(got), want)
	}
}

func TestByIDs(t *testing.T) {
	table := NewTable(testRecords())

	got := table.ByIDs([]string{"r3", "r1"})
	// Table order wins over argument order.
	want := []string{"r1", "r3"}
	if !reflect.DeepEqual(tableIDs(got), want) {
		t.Errorf("ByIDs = %v, want %v", tableIDs(got), want)
	}
}

func TestByCurveType(t *testing.T) {
	table := NewTable(testRecords())

	got := table.ByCurveType(types.CurveMelting)
	if !reflect.DeepEqual(tableIDs(got), []string{"r3"}) {
		t.Errorf("ByCurveType(melting_curve) = %v, want [r3]", tableIDs(got))
	}
}

func TestUniquePhases(t *testing.T) {
	table := NewTable(testRecords())

	got := table.UniquePhases()
	want := []string{"and", "cor", "fo", "ky", "melt", "q", "sil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniquePhases() = %v, want %v", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	table := NewTable(nil)
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if got := table.UniquePhases(); len(got) != 0 {
		t.Errorf("UniquePhases() = %v, want empty", got)
	}
}
