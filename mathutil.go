/*
 Copyright (C) 2026 Douglas Wayne Potter

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as
 published by the Free Software Foundation, either version 3 of the
 License, or (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package colgen

import "gonum.org/v1/gonum/floats"

// Tolerance is the floating-point slack used throughout the framework for
// feasibility and reduced-cost sign checks.
const Tolerance = 1e-6

// computeReducedCost returns objective_coefficient - sum(duals[row] *
// coefficient) over a column's elements. duals is indexed by original
// (uncompacted) row id.
func computeReducedCost(c *Column, duals []float64) float64 {
	rc := c.ObjectiveCoefficient
	for _, e := range c.Elements {
		rc -= duals[e.Row] * e.Coefficient
	}
	return rc
}

// gather extracts vec[r] for each r in activeRows, in order.
func gather(activeRows []int, vec []float64) []float64 {
	out := make([]float64, len(activeRows))
	for i, r := range activeRows {
		out[i] = vec[r]
	}
	return out
}

// norm returns the Euclidean norm of vec restricted to the given row
// indices (the "active rows" of a compacted CG call).
func norm(activeRows []int, vec []float64) float64 {
	return floats.Norm(gather(activeRows, vec), 2)
}

// normDiff returns the Euclidean norm of (v1 - v2) restricted to the given
// row indices.
func normDiff(activeRows []int, v1, v2 []float64) float64 {
	a := gather(activeRows, v1)
	b := gather(activeRows, v2)
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	return floats.Norm(diff, 2)
}

// dotDiff returns the inner product of (a1 - a2) and (b1 - b2) restricted
// to the given row indices, used by the automatic directional-smoothing
// beta formula.
func dotDiff(activeRows []int, a1, a2, b1, b2 []float64) float64 {
	da := make([]float64, len(activeRows))
	floats.SubTo(da, gather(activeRows, a1), gather(activeRows, a2))
	db := make([]float64, len(activeRows))
	floats.SubTo(db, gather(activeRows, b1), gather(activeRows, b2))
	return floats.Dot(da, db)
}

func clampBelow(x, max float64) float64 {
	if x > max {
		return max
	}
	return x
}

func clampAbove(x, min float64) float64 {
	if x < min {
		return min
	}
	return x
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
