// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preprocess converts the raw source databases into normalized
// YAML record files for the loader.
// Implements: prd002-preprocess (R1-R4);
//
//	docs/ARCHITECTURE § Preprocessing.
package preprocess

import (
	"fmt"
	"regexp"
	"strings"
)

// abbrevMap maps inconsistent phase abbreviations used across the source
// databases to their canonical form.
var abbrevMap = map[string]string{
	"sil":  "sil",
	"sill": "sil",
	"wd":   "wad",
	"wa":   "wad",
	"wds":  "wad",
}

// phasePattern matches an optional stoichiometric coefficient followed by
// a word that starts with a known abbreviation.
var phasePattern = regexp.MustCompile(buildPhasePattern())

func buildPhasePattern() string {
	keys := make([]string, 0, len(abbrevMap))
	for k := range abbrevMap {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	return `\b(\d*)(` + strings.Join(keys, "|") + `)\b`
}

// NormalizePhases canonicalizes a list of phase abbreviations.
func NormalizePhases(phases []string) []string {
	out := make([]string, len(phases))
	for i, p := range phases {
		p = strings.ToLower(strings.TrimSpace(p))
		if canonical, ok := abbrevMap[p]; ok {
			p = canonical
		}
		out[i] = p
	}
	return out
}

// NormalizeReaction canonicalizes phase abbreviations inside a reaction
// display string, preserving stoichiometric coefficients ("2sill" stays
// "2sil").
func NormalizeReaction(rxn string) string {
	return phasePattern.ReplaceAllStringFunc(rxn, func(match string) string {
		sub := phasePattern.FindStringSubmatch(match)
		coeff, phase := sub[1], sub[2]
		if canonical, ok := abbrevMap[phase]; ok {
			phase = canonical
		}
		return coeff + phase
	})
}

// SplitReaction splits a "a + b => c + d" display string into reactant
// and product phase lists.
func SplitReaction(rxn string) (reactants, products []string, err error) {
	left, right, found := strings.Cut(rxn, "=>")
	if !found {
		return nil, nil, fmt.Errorf("invalid reaction %q: no \"=>\" separator", rxn)
	}
	return splitPhases(left), splitPhases(right), nil
}

func splitPhases(side string) []string {
	var phases []string
	for _, p := range strings.Split(side, "+") {
		p = strings.TrimSpace(p)
		if p != "" {
			phases = append(phases, p)
		}
	}
	return phases
}

// tidyReaction normalizes whitespace around "+" and "=>" in a reaction
// string taken verbatim from a source database.
var (
	plusSpacing  = regexp.MustCompile(`\s*\+\s*`)
	arrowSpacing = regexp.MustCompile(`\s*=>\s*`)
)

func tidyReaction(rxn string) string {
	rxn = arrowSpacing.ReplaceAllString(strings.ToLower(rxn), " => ")
	return plusSpacing.ReplaceAllString(rxn, " + ")
}
