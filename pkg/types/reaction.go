// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data types for the rxndb pipeline.
package types

// CurveType categorizes what a record's fitted curve represents.
// Per prd001-ingestion R1.3.
type CurveType string

const (
	CurvePhaseBoundary CurveType = "phase_boundary"
	CurveMelting       CurveType = "melting_curve"
	CurveCalibration   CurveType = "calibration_curve"
	CurveReaction      CurveType = "reaction_curve"
)

// PlotType selects how the dashboard renders a record: a fitted line or
// discrete experimental points with error bars.
type PlotType string

const (
	PlotCurve PlotType = "curve"
	PlotPoint PlotType = "point"
)

// Units names the temperature and pressure units of a record's data.
type Units struct {
	// Temperature is the temperature unit (e.g. "C").
	Temperature string `json:"temperature" yaml:"temperature"`

	// Pressure is the pressure unit (e.g. "GPa").
	Pressure string `json:"pressure" yaml:"pressure"`
}

// Window is the inclusive validity range of a fitted curve on both axes.
// Samples are never taken outside it. Per prd001-ingestion R2.2.
type Window struct {
	TMin float64 `json:"tmin" yaml:"tmin"`
	TMax float64 `json:"tmax" yaml:"tmax"`
	PMin float64 `json:"pmin" yaml:"pmin"`
	PMax float64 `json:"pmax" yaml:"pmax"`
}

// Fit is a polynomial in temperature describing pressure along the curve.
// Coefficients[i] multiplies T^i, so Coefficients[0] is the intercept.
// Per prd001-ingestion R2.1.
type Fit struct {
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Window       Window    `json:"window" yaml:"window"`
}

// Reference is the literature citation for a record. Carried through the
// pipeline unchanged; never used in computation.
type Reference struct {
	// ShortCite is the display citation (e.g. "Bohlen et al., 1991").
	ShortCite string `json:"short_cite" yaml:"short_cite"`

	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year    string `json:"year,omitempty" yaml:"year,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Pages   string `json:"pages,omitempty" yaml:"pages,omitempty"`
	DOI     string `json:"doi,omitempty" yaml:"doi,omitempty"`
}

// ReactionRecord is one curated phase-boundary or melting-curve entry,
// stored as a single YAML document in the data directory.
// Per prd001-ingestion R1.1-R1.6.
type ReactionRecord struct {
	// ID uniquely identifies the record (e.g. "jimmy-042").
	ID string `json:"id" yaml:"id"`

	// Source names the database the record was derived from (e.g. "hp11").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Type categorizes the curve: phase_boundary, melting_curve,
	// calibration_curve, or reaction_curve.
	Type CurveType `json:"type" yaml:"type"`

	// PlotType selects line or point rendering.
	PlotType PlotType `json:"plot_type" yaml:"plot_type"`

	// Reaction is the display string (e.g. "ky => sil").
	Reaction string `json:"rxn" yaml:"rxn"`

	// Reactants lists the phase abbreviations on the left side,
	// lowercase, with optional leading stoichiometric digits.
	Reactants []string `json:"reactants" yaml:"reactants"`

	// Products lists the phase abbreviations on the right side.
	Products []string `json:"products" yaml:"products"`

	// Units names the axes' units.
	Units Units `json:"units" yaml:"units"`

	// Fit is the polynomial and its validity window.
	Fit Fit `json:"fit" yaml:"fit"`

	// Ref is the literature citation.
	Ref Reference `json:"ref" yaml:"ref"`

	// CalibrationConfidence and DataConfidence are free-form annotations
	// from the source database, carried through for display and filtering.
	CalibrationConfidence string `json:"calibration_confidence,omitempty" yaml:"calibration_confidence,omitempty"`
	DataConfidence        string `json:"data_confidence,omitempty" yaml:"data_confidence,omitempty"`

	// Misc holds any remaining annotation from the source row.
	Misc string `json:"misc,omitempty" yaml:"misc,omitempty"`
}
