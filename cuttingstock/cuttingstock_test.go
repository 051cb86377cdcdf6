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

package cuttingstock_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/combin"
	"gotest.tools/v3/assert"

	"github.com/snow-abstraction/colgen"
	"github.com/snow-abstraction/colgen/cuttingstock"
	"github.com/snow-abstraction/colgen/lp"
)

func newCGParameters(ins cuttingstock.Instance) colgen.ColumnGenerationParameters {
	return colgen.ColumnGenerationParameters{
		CommonParameters: colgen.CommonParameters{
			NewLPBackend:                    lp.NewBackend,
			DummyColumnObjectiveCoefficient: ins.DummyColumnObjectiveCoefficient(),
		},
		MaximumNumberOfIterations:       -1,
		StaticWentgesSmoothingParameter: 0,
	}
}

// TestE1TrivialBinPacking is scenario E1 of spec.md §8: 3 items of weight
// 1, capacity 1, no conflicts. CG should converge with relaxation and
// integer optimum both equal to 3 (one item per bin, no sharing possible).
func TestE1TrivialBinPacking(t *testing.T) {
	ins := cuttingstock.Instance{
		Capacity:   1,
		ItemWidths: []int{1, 1, 1},
		Demands:    []int{1, 1, 1},
	}
	model, err := cuttingstock.NewModel(ins)
	assert.NilError(t, err)

	out, err := colgen.ColumnGeneration(model, newCGParameters(ins))
	assert.NilError(t, err)
	assert.Assert(t, out.NumberOfColumnGenerationIterations <= 4)
	assert.Equal(t, out.Bound, 3.0)
	assert.Assert(t, out.RelaxationSolution.Feasible())
	assert.Equal(t, out.RelaxationSolution.ObjectiveValue(), 3.0)
}

// TestE2CuttingStockDemandSaturating is scenario E2: one item type, demand
// 5, weight 1, capacity 1. Expected LP optimum 5 and a single pattern used
// with value 5.
func TestE2CuttingStockDemandSaturating(t *testing.T) {
	ins := cuttingstock.Instance{
		Capacity:   1,
		ItemWidths: []int{1},
		Demands:    []int{5},
	}
	model, err := cuttingstock.NewModel(ins)
	assert.NilError(t, err)

	out, err := colgen.ColumnGeneration(model, newCGParameters(ins))
	assert.NilError(t, err)
	assert.Equal(t, out.Bound, 5.0)
	assert.Equal(t, len(out.RelaxationSolution.Columns()), 1)
	assert.Equal(t, out.RelaxationSolution.Columns()[0].Value, 5.0)
}

// TestBruteForceCrossCheck verifies, on a handful of small random
// instances, that the column-generation LP bound, rounded up, matches an
// exhaustive exact bin-packing search (the LP bound itself is fractional
// on these instances), mirroring the teacher's own
// permutation/combination-based brute force cross-checks.
func TestBruteForceCrossCheck(t *testing.T) {
	instances := []cuttingstock.Instance{
		{Capacity: 10, ItemWidths: []int{3, 4, 5}, Demands: []int{2, 1, 1}},
		{Capacity: 7, ItemWidths: []int{2, 3}, Demands: []int{3, 2}},
		{Capacity: 5, ItemWidths: []int{2, 2, 3}, Demands: []int{1, 1, 1}},
	}
	for _, ins := range instances {
		model, err := cuttingstock.NewModel(ins)
		assert.NilError(t, err)

		out, err := colgen.ColumnGeneration(model, newCGParameters(ins))
		assert.NilError(t, err)

		want := bruteForceMinBins(ins)
		assert.Equal(t, math.Ceil(out.Bound-colgen.Tolerance), float64(want))
	}
}

// bruteForceMinBins solves the 1-D bin packing instance ins exactly by
// exhaustive backtracking search: expand every item's demand into
// individual units, then recursively choose, via combin.Combinations, the
// subset of remaining units that goes into each successive bin, keeping
// the best (fewest-bins) complete packing found. Only intended for the
// small cross-check instances above.
func bruteForceMinBins(ins cuttingstock.Instance) int {
	var units []int
	for i, w := range ins.ItemWidths {
		for u := 0; u < ins.Demands[i]; u++ {
			units = append(units, w)
		}
	}

	best := len(units) + 1
	var search func(remaining []int, binsUsed int)
	search = func(remaining []int, binsUsed int) {
		if binsUsed >= best {
			return
		}
		if len(remaining) == 0 {
			if binsUsed < best {
				best = binsUsed
			}
			return
		}

		n := len(remaining)
		for k := n; k >= 1; k-- {
			for _, idx := range combin.Combinations(n, k) {
				total := 0
				for _, i := range idx {
					total += remaining[i]
				}
				if total > ins.Capacity {
					continue
				}
				inSubset := make([]bool, n)
				for _, i := range idx {
					inSubset[i] = true
				}
				rest := make([]int, 0, n-k)
				for i, v := range remaining {
					if !inSubset[i] {
						rest = append(rest, v)
					}
				}
				search(rest, binsUsed+1)
			}
		}
	}
	search(units, 0)
	return best
}
