package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rxndb/pkg/types"
)

// --- test helpers ---

func writeRecordFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeRecord(t *testing.T, dir, name string, rec types.ReactionRecord) {
	t.Helper()
	data, err := yaml.Marshal(&rec)
	if err != nil {
		t.Fatal(err)
	}
	writeRecordFile(t, dir, name, string(data))
}

func sampleRecord(id string) types.ReactionRecord {
	return types.ReactionRecord{
		ID:        id,
		Source:    "jimmy",
		Type:      types.CurvePhaseBoundary,
		PlotType:  types.PlotCurve,
		Reaction:  "ky => sil",
		Reactants: []string{"ky"},
		Products:  []string{"sil"},
		Units:     types.Units{Temperature: "C", Pressure: "GPa"},
		Fit: types.Fit{
			Coefficients: []float64{25.0, -0.003},
			Window:       types.Window{TMin: 1000, TMax: 1800, PMin: 0, PMax: 30},
		},
		Ref: types.Reference{ShortCite: "Holdaway, 1971"},
	}
}

func mustLoad(t *testing.T, dir string) (*Table, []Reject) {
	t.Helper()
	var buf strings.Builder
	table, rejects, err := Load(dir, &buf)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return table, rejects
}

// --- Load ---

func TestLoadValidDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "jimmy-001.yml", sampleRecord("jimmy-001"))
	writeRecord(t, dir, "jimmy-002.yml", sampleRecord("jimmy-002"))

	table, rejects := mustLoad(t, dir)
	if table.Len() != 2 {
		t.Errorf("table.Len() = %d, want 2", table.Len())
	}
	if len(rejects) != 0 {
		t.Errorf("rejects = %v, want none", rejects)
	}
}

func TestLoadSkipsRecordMissingPolynomial(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "good.yml", sampleRecord("jimmy-001"))

	bad := sampleRecord("jimmy-002")
	bad.Fit.Coefficients = nil
	writeRecord(t, dir, "bad.yml", bad)

	table, rejects := mustLoad(t, dir)
	if table.Len() != 1 {
		t.Errorf("table.Len() = %d, want 1", table.Len())
	}
	if len(rejects) != 1 {
		t.Fatalf("len(rejects) = %d, want 1", len(rejects))
	}
	if rejects[0].File != "bad.yml" {
		t.Errorf("reject file = %q, want bad.yml", rejects[0].File)
	}
	if !strings.Contains(rejects[0].Reason, "polynomial") {
		t.Errorf("reject reason = %q, want mention of polynomial", rejects[0].Reason)
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	table, rejects := mustLoad(t, t.TempDir())
	if table.Len() != 0 {
		t.Errorf("table.Len() = %d, want 0", table.Len())
	}
	if len(rejects) != 0 {
		t.Errorf("rejects = %v, want none", rejects)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	var buf strings.Builder
	_, _, err := Load(filepath.Join(t.TempDir(), "no-such-dir"), &buf)
	if err == nil {
		t.Fatal("Load() on a missing directory should fail")
	}
}

func TestLoadSkipsUnparsableFile(t *testing.T) {
	dir := t.TempDir()
	writeRecordFile(t, dir, "broken.yml", "id: [unclosed\n")
	writeRecord(t, dir, "good.yml", sampleRecord("jimmy-001"))

	table, rejects := mustLoad(t, dir)
	if table.Len() != 1 {
		t.Errorf("table.Len() = %d, want 1", table.Len())
	}
	if len(rejects) != 1 || !strings.Contains(rejects[0].Reason, "parse error") {
		t.Errorf("rejects = %v, want one parse error", rejects)
	}
}

func TestLoadIgnoresNonRecordFiles(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "good.yml", sampleRecord("jimmy-001"))
	writeRecordFile(t, dir, "README.md", "# not a record\n")

	table, rejects := mustLoad(t, dir)
	if table.Len() != 1 {
		t.Errorf("table.Len() = %d, want 1", table.Len())
	}
	if len(rejects) != 0 {
		t.Errorf("rejects = %v, want none", rejects)
	}
}

func TestLoadPreservesFilenameOrder(t *testing.T) {
	dir := t.TempDir()
	// Written out of order; enumeration is lexical.
	writeRecord(t, dir, "b-002.yml", sampleRecord("b-002"))
	writeRecord(t, dir, "a-001.yml", sampleRecord("a-001"))
	writeRecord(t, dir, "c-003.yml", sampleRecord("c-003"))

	table, _ := mustLoad(t, dir)
	var ids []string
	for _, row := range table.Rows() {
		ids = append(ids, row.ID)
	}
	want := []string{"a-001", "b-002", "c-003"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("row order = %v, want %v", ids, want)
		}
	}
}

func TestLoadParsesYAMLSchema(t *testing.T) {
	dir := t.TempDir()
	writeRecordFile(t, dir, "hp11-007.yml", `
id: hp11-007
source: hp11
type: melting_curve
plot_type: curve
rxn: fo => melt
reactants: [fo]
products: [melt]
units:
  temperature: C
  pressure: GPa
fit:
  coefficients: [2.1, 0.004, -1.2e-07]
  window:
    tmin: 1200
    tmax: 2200
    pmin: 0
    pmax: 25
ref:
  short_cite: "Presnall & Walter, 1993"
  year: "1993"
calibration_confidence: high
`)

	table, rejects := mustLoad(t, dir)
	if len(rejects) != 0 {
		t.Fatalf("rejects = %v, want none", rejects)
	}
	rec, ok := table.ByID("hp11-007")
	if !ok {
		t.Fatal("record hp11-007 not found")
	}
	if rec.Type != types.CurveMelting {
		t.Errorf("type = %q, want melting_curve", rec.Type)
	}
	if len(rec.Fit.Coefficients) != 3 {
		t.Errorf("len(coefficients) = %d, want 3", len(rec.Fit.Coefficients))
	}
	if rec.Fit.Window.TMax != 2200 {
		t.Errorf("tmax = %g, want 2200", rec.Fit.Window.TMax)
	}
	if rec.Ref.ShortCite != "Presnall & Walter, 1993" {
		t.Errorf("short_cite = %q", rec.Ref.ShortCite)
	}
}

func TestLoadSynthesizesReactionString(t *testing.T) {
	dir := t.TempDir()
	rec := sampleRecord("jimmy-009")
	rec.Reaction = ""
	rec.Reactants = []string{"ab"}
	rec.Products = []string{"jd", "q"}
	writeRecord(t, dir, "jimmy-009.yml", rec)

	table, _ := mustLoad(t, dir)
	got, ok := table.ByID("jimmy-009")
	if !ok {
		t.Fatal("record jimmy-009 not found")
	}
	if got.Reaction != "ab => jd + q" {
		t.Errorf("reaction = %q, want %q", got.Reaction, "ab => jd + q")
	}
}

// --- validate ---

func TestValidate(t *testing.T) {
	valid := sampleRecord("jimmy-001")

	tests := []struct {
		name   string
		mutate func(*types.ReactionRecord)
		want   string // substring of the expected reason, "" for valid
	}{
		{"valid record", func(r *types.ReactionRecord) {}, ""},
		{"missing id", func(r *types.ReactionRecord) { r.ID = "" }, "missing id"},
		{"missing reactants", func(r *types.ReactionRecord) { r.Reactants = nil }, "reactants"},
		{"missing products", func(r *types.ReactionRecord) { r.Products = nil }, "products"},
		{"unknown curve type", func(r *types.ReactionRecord) { r.Type = "squiggle" }, "curve type"},
		{"missing units", func(r *types.ReactionRecord) { r.Units.Pressure = "" }, "units"},
		{"zero coefficients", func(r *types.ReactionRecord) { r.Fit.Coefficients = []float64{} }, "polynomial"},
		{"inverted T window", func(r *types.ReactionRecord) {
			r.Fit.Window.TMin, r.Fit.Window.TMax = 1800, 1000
		}, "inverted temperature window"},
		{"inverted P window", func(r *types.ReactionRecord) {
			r.Fit.Window.PMin, r.Fit.Window.PMax = 30, 0
		}, "inverted pressure window"},
		{"collapsed window is valid", func(r *types.ReactionRecord) {
			r.Fit.Window.TMin, r.Fit.Window.TMax = 1500, 1500
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			rec.Reactants = append([]string(nil), valid.Reactants...)
			rec.Products = append([]string(nil), valid.Products...)
			rec.Fit.Coefficients = append([]float64(nil), valid.Fit.Coefficients...)
			tt.mutate(&rec)

			reason := validate(&rec)
			if tt.want == "" && reason != "" {
				t.Errorf("validate() = %q, want valid", reason)
			}
			if tt.want != "" && !strings.Contains(reason, tt.want) {
				t.Errorf("validate() = %q, want substring %q", reason, tt.want)
			}
		})
	}
}

func TestValidateNonFiniteCoefficient(t *testing.T) {
	dir := t.TempDir()
	writeRecordFile(t, dir, "nan.yml", `
id: bad-001
type: phase_boundary
reactants: [ky]
products: [sil]
units: {temperature: C, pressure: GPa}
fit:
  coefficients: [.nan, 1.0]
  window: {tmin: 0, tmax: 100, pmin: 0, pmax: 10}
`)

	table, rejects := mustLoad(t, dir)
	if table.Len() != 0 {
		t.Errorf("table.Len() = %d, want 0", table.Len())
	}
	if len(rejects) != 1 || !strings.Contains(rejects[0].Reason, "non-finite") {
		t.Errorf("rejects = %v, want one non-finite coefficient reject", rejects)
	}
}
