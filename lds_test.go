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

package colgen_test

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/snow-abstraction/colgen"
	"github.com/snow-abstraction/colgen/cuttingstock"
)

// TestE5LimitedDiscrepancySearchFindsOptimum is scenario E5 of spec.md §8,
// adapted to a cutting-stock instance whose LP relaxation is genuinely
// fractional at the root (so the search actually branches): with a
// discrepancy limit of 1 the search must still reach the true optimum of
// 4 bins. The bound is the root LP value 3.5, so the reported absolute
// optimality gap is 0.5.
func TestE5LimitedDiscrepancySearchFindsOptimum(t *testing.T) {
	ins := cuttingstock.Instance{Capacity: 10, ItemWidths: []int{3, 4, 5}, Demands: []int{4, 3, 2}}
	model, err := cuttingstock.NewModel(ins)
	assert.NilError(t, err)

	params := colgen.LimitedDiscrepancySearchParameters{
		ColumnGenerationParameters: baseParameters(ins.DummyColumnObjectiveCoefficient()),
		MaximumDiscrepancy:         1,
		MaximumNumberOfNodes:       200,
	}
	out, err := colgen.LimitedDiscrepancySearch(model, params)
	assert.NilError(t, err)
	assert.Assert(t, out.Solution.Feasible())
	assert.Equal(t, out.Solution.ObjectiveValue(), 4.0)
	assert.Equal(t, out.AbsoluteOptimalityGap(), 0.5)
}

// TestP4BoundNeverWorsensAfterRoot is P4: the bound published via
// NewBoundCallback (fired only at depth 0 per spec.md §4.6) is never
// contradicted by the final Output.Bound.
func TestP4BoundNeverWorsensAfterRoot(t *testing.T) {
	ins := cuttingstock.Instance{Capacity: 10, ItemWidths: []int{3, 4, 5}, Demands: []int{4, 3, 2}}
	model, err := cuttingstock.NewModel(ins)
	assert.NilError(t, err)

	var rootBound float64
	var sawBound bool
	params := colgen.LimitedDiscrepancySearchParameters{
		ColumnGenerationParameters: baseParameters(ins.DummyColumnObjectiveCoefficient()),
		MaximumDiscrepancy:         2,
		MaximumNumberOfNodes:       200,
	}
	params.NewBoundCallback = func(bound float64) {
		if !sawBound {
			rootBound = bound
			sawBound = true
		}
	}
	out, err := colgen.LimitedDiscrepancySearch(model, params)
	assert.NilError(t, err)
	assert.Assert(t, sawBound)
	assert.Equal(t, out.Bound, rootBound)
}

// TestP5IncumbentNeverWorsens is P5: every incumbent reported through
// NewSolutionCallback is at least as good as the one before it
// (minimizing, so the objective value must be non-increasing).
func TestP5IncumbentNeverWorsens(t *testing.T) {
	ins := cuttingstock.Instance{Capacity: 10, ItemWidths: []int{3, 4, 5}, Demands: []int{4, 3, 2}}
	model, err := cuttingstock.NewModel(ins)
	assert.NilError(t, err)

	var history []float64
	params := colgen.LimitedDiscrepancySearchParameters{
		ColumnGenerationParameters: baseParameters(ins.DummyColumnObjectiveCoefficient()),
		MaximumDiscrepancy:         2,
		MaximumNumberOfNodes:       200,
	}
	params.NewSolutionCallback = func(sol colgen.Solution) {
		history = append(history, sol.ObjectiveValue())
	}
	_, err = colgen.LimitedDiscrepancySearch(model, params)
	assert.NilError(t, err)
	assert.Assert(t, len(history) >= 1)
	for i := 1; i < len(history); i++ {
		assert.Assert(t, history[i] <= history[i-1]+colgen.Tolerance)
	}
}

// TestLDSRespectsDiscrepancyLimit verifies the search still terminates and
// produces a finite, non-NaN bound even when the discrepancy limit is the
// tightest possible value.
func TestLDSRespectsDiscrepancyLimit(t *testing.T) {
	ins := cuttingstock.Instance{Capacity: 1, ItemWidths: []int{1, 1, 1}, Demands: []int{1, 1, 1}}
	model, err := cuttingstock.NewModel(ins)
	assert.NilError(t, err)

	params := colgen.LimitedDiscrepancySearchParameters{
		ColumnGenerationParameters: baseParameters(ins.DummyColumnObjectiveCoefficient()),
		MaximumDiscrepancy:         0,
	}
	out, err := colgen.LimitedDiscrepancySearch(model, params)
	assert.NilError(t, err)
	assert.Assert(t, !math.IsNaN(out.Bound) && !math.IsInf(out.Bound, 0))
}
