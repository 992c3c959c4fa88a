// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"iter"

	"github.com/pdiddy/rxndb/pkg/types"
)

// Sample returns a lazy, restartable sequence of (T, P) points for the
// record's fit: n evenly spaced temperatures across the validity window,
// each paired with the polynomial evaluated there. Points are never
// taken outside the window; if the temperature window collapses to a
// single value the sequence yields exactly that one point. A degenerate
// pressure window (PMin == PMax) disables pressure clipping, since such
// records bound the curve by temperature alone (R7.1-R7.4).
//
// The sequence is pure: ranging over it twice yields the same points.
func Sample(rec *types.ReactionRecord, n int) iter.Seq2[float64, float64] {
	if n <= 0 {
		n = DefaultResolution
	}
	fit := rec.Fit
	win := fit.Window

	return func(yield func(float64, float64) bool) {
		if len(fit.Coefficients) == 0 {
			return
		}

		emit := func(tv float64) bool {
			pv := Eval(fit.Coefficients, tv)
			if win.PMin != win.PMax && (pv < win.PMin || pv > win.PMax) {
				return true // clipped, keep going
			}
			return yield(tv, pv)
		}

		if win.TMin == win.TMax || n == 1 {
			emit(win.TMin)
			return
		}

		step := (win.TMax - win.TMin) / float64(n-1)
		for i := 0; i < n; i++ {
			tv := win.TMin + float64(i)*step
			if i == n-1 {
				tv = win.TMax // keep the last point exactly on the bound
			}
			if !emit(tv) {
				return
			}
		}
	}
}

// Eval computes the power series Σ c_i·T^i by Horner's rule.
func Eval(coefficients []float64, t float64) float64 {
	p := 0.0
	for i := len(coefficients) - 1; i >= 0; i-- {
		p = p*t + coefficients[i]
	}
	return p
}

// Points collects the sampled sequence into parallel slices, for JSON
// encoding and exports.
func Points(rec *types.ReactionRecord, n int) (ts, ps []float64) {
	for tv, pv := range Sample(rec, n) {
		ts = append(ts, tv)
		ps = append(ps, pv)
	}
	return ts, ps
}

// Midpoint returns the middle sampled point of the record's curve, used
// by the dashboard to place reaction labels. ok is false when the fit
// yields no valid samples.
func Midpoint(rec *types.ReactionRecord, n int) (t, p float64, ok bool) {
	ts, ps := Points(rec, n)
	if len(ts) == 0 {
		return 0, 0, false
	}
	mid := len(ts) / 2
	if len(ts)%2 == 0 {
		return (ts[mid-1] + ts[mid]) / 2, (ps[mid-1] + ps[mid]) / 2, true
	}
	return ts[mid], ps[mid], true
}
