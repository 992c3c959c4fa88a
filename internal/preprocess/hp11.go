// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preprocess

import (
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/rxndb/pkg/types"
)

// bracket is one experimental half-bracket row from the HP11 database:
// lo/hi pairs for ln K, P, and T, with "-" for absent values.
type bracket struct {
	lnK, p, t float64
	hasLnK    bool
}

// entryStart matches the numbered header that begins each HP11 entry.
var entryStart = regexp.MustCompile(`(?m)^\s*(\d+)\)\s+(.*)$`)

// citeYear matches "Author(s), 1971" at the end of a citation fragment.
var citeYear = regexp.MustCompile(`^(.+?)(?:,|\s)(\d{4})$`)

// ConvertHP11 reads the HP11 plain-text database of experimental
// half-brackets and writes one normalized YAML record file per entry
// into outDir. Each entry's bracket midpoints are reduced to a linear
// fit P = c0 + c1·T over the bracketed temperature range, so HP11
// entries satisfy the same fit-plus-window contract as the curve
// databases; a single-bracket entry collapses to a constant fit on a
// point window. Unparsable entries are skipped with a diagnostic on w
// (R3.1-R3.5).
func ConvertHP11(path, outDir string, w io.Writer) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading source database: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	written := 0
	for _, entry := range splitEntries(string(data)) {
		rec, err := convertHP11Entry(entry)
		if err != nil {
			fmt.Fprintf(w, "skipped entry: %v\n", err)
			continue
		}
		if err := writeRecordFile(outDir, rec); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// splitEntries splits the database text at numbered entry headers.
func splitEntries(text string) []string {
	locs := entryStart.FindAllStringIndex(text, -1)
	var entries []string
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		entry := strings.TrimSpace(text[loc[0]:end])
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func convertHP11Entry(entry string) (types.ReactionRecord, error) {
	lines := strings.Split(entry, "\n")
	header := strings.TrimSpace(lines[0])

	m := entryStart.FindStringSubmatch(header)
	if m == nil {
		return types.ReactionRecord{}, fmt.Errorf("invalid header %q", header)
	}
	index, _ := strconv.Atoi(m[1])

	rxn, ref, err := splitReactionAndCitation(m[2])
	if err != nil {
		return types.ReactionRecord{}, err
	}
	rxn = NormalizeReaction(tidyReaction(strings.ToLower(rxn)))

	reactants, products, err := SplitReaction(rxn)
	if err != nil {
		return types.ReactionRecord{}, err
	}

	brackets := parseBrackets(lines[1:])
	if len(brackets) == 0 {
		return types.ReactionRecord{}, fmt.Errorf("entry %d: no usable brackets", index)
	}

	coeffs, win := fitBrackets(brackets)

	curveType := types.CurvePhaseBoundary
	for _, b := range brackets {
		if b.hasLnK && b.lnK != 0 {
			curveType = types.CurveCalibration
			break
		}
	}

	return types.ReactionRecord{
		ID:        fmt.Sprintf("hp11-%03d", index),
		Source:    "hp11",
		Type:      curveType,
		PlotType:  types.PlotPoint,
		Reaction:  rxn,
		Reactants: NormalizePhases(reactants),
		Products:  NormalizePhases(products),
		Units:     types.Units{Temperature: "C", Pressure: "GPa"},
		Fit:       types.Fit{Coefficients: coeffs, Window: win},
		Ref:       ref,
		Misc:      fmt.Sprintf("%d brackets", len(brackets)),
	}, nil
}

// splitReactionAndCitation separates "ky = sil (Holdaway, 1971)" into the
// reaction text and a Reference. The citation is the last balanced
// parenthesized group; reactions never contain parentheses in HP11.
func splitReactionAndCitation(rest string) (string, types.Reference, error) {
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ")") {
		return strings.ReplaceAll(rest, "=", "=>"), types.Reference{}, nil
	}

	depth := 0
	for i := len(rest) - 1; i >= 0; i-- {
		switch rest[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				rxn := strings.TrimSpace(rest[:i])
				cite := strings.TrimSpace(rest[i+1 : len(rest)-1])
				return normalizeArrow(rxn), parseCitation(cite), nil
			}
		}
	}
	return "", types.Reference{}, fmt.Errorf("unbalanced citation in %q", rest)
}

// normalizeArrow rewrites the HP11 "=" separator as "=>" without
// touching an already-normalized arrow.
func normalizeArrow(rxn string) string {
	if strings.Contains(rxn, "=>") {
		return rxn
	}
	return strings.ReplaceAll(rxn, "=", "=>")
}

// parseCitation keeps the full citation text as the short cite and, when
// the first fragment matches "Author, YYYY", fills the author and year.
func parseCitation(cite string) types.Reference {
	ref := types.Reference{ShortCite: cite}
	first := strings.TrimSpace(strings.Split(cite, ";")[0])
	if m := citeYear.FindStringSubmatch(first); m != nil {
		ref.Authors = strings.TrimSpace(m[1])
		ref.Year = m[2]
	}
	return ref
}

// parseBrackets reads data lines of up to seven numeric columns:
// lnK lo/hi, x_CO2, P lo/hi, T lo/hi. A bracket is usable when both a
// pressure and a temperature midpoint can be formed.
func parseBrackets(lines []string) []bracket {
	var brackets []bracket
	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) < 7 {
			continue
		}
		vals := make([]float64, 7)
		present := make([]bool, 7)
		numeric := true
		for i := 0; i < 7; i++ {
			tok := tokens[i]
			if tok == "-" {
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				numeric = false
				break
			}
			vals[i] = v
			present[i] = true
		}
		if !numeric || !present[0] && !present[3] && !present[5] {
			continue
		}

		p, pOK := midpoint(vals[3], vals[4], present[3], present[4])
		t, tOK := midpoint(vals[5], vals[6], present[5], present[6])
		if !pOK || !tOK {
			continue
		}

		b := bracket{p: p, t: t}
		if lnK, ok := midpoint(vals[0], vals[1], present[0], present[1]); ok {
			b.lnK, b.hasLnK = lnK, true
		}
		brackets = append(brackets, b)
	}
	return brackets
}

// midpoint averages a lo/hi pair, falling back to whichever side exists.
func midpoint(lo, hi float64, hasLo, hasHi bool) (float64, bool) {
	switch {
	case hasLo && hasHi:
		return (lo + hi) / 2, true
	case hasLo:
		return lo, true
	case hasHi:
		return hi, true
	default:
		return 0, false
	}
}

// fitBrackets reduces bracket midpoints to a least-squares line
// P = c0 + c1·T and the bounding window. Entries whose brackets share a
// single temperature get a constant fit on a collapsed window.
func fitBrackets(brackets []bracket) ([]float64, types.Window) {
	tMin, tMax := math.Inf(1), math.Inf(-1)
	pMin, pMax := math.Inf(1), math.Inf(-1)
	var sumT, sumP, sumTT, sumTP float64
	n := float64(len(brackets))

	for _, b := range brackets {
		tMin, tMax = math.Min(tMin, b.t), math.Max(tMax, b.t)
		pMin, pMax = math.Min(pMin, b.p), math.Max(pMax, b.p)
		sumT += b.t
		sumP += b.p
		sumTT += b.t * b.t
		sumTP += b.t * b.p
	}

	win := types.Window{TMin: tMin, TMax: tMax, PMin: pMin, PMax: pMax}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		// All brackets at one temperature: constant fit at the mean P.
		return []float64{sumP / n}, win
	}

	slope := (n*sumTP - sumT*sumP) / denom
	intercept := (sumP - slope*sumT) / n
	return []float64{intercept, slope}, win
}
