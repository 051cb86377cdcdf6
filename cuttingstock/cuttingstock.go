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

// Package cuttingstock is a reference pricing oracle (colgen.PricingSolver
// implementation) for the one-dimensional cutting stock problem: given a
// set of item widths with demands and a roll capacity, decide the minimum
// number of rolls needed to satisfy every demand, where a roll is cut
// according to a "pattern" (how many of each item width it holds).
//
// The master problem has one row per item type (demand == demand, i.e. an
// equality row) and one variable per cutting pattern; a pattern's pricing
// problem, given dual prices on the item-type rows, is a bounded knapsack
// problem (maximize total dual value subject to the roll capacity), which
// is exactly the formulation used by the source material's own
// cuttingstock.hpp pricing solver.
package cuttingstock

import (
	"fmt"
	"math"

	"github.com/snow-abstraction/colgen"
)

// Instance is a one-dimensional cutting stock instance: Capacity is the
// roll length, ItemWidths[i] is the width of item type i and Demands[i] is
// how many copies of it must be cut in total. Both Capacity and the item
// widths are integers: the bounded-knapsack pricing subproblem is solved
// by dynamic programming over the capacity, which requires an integral
// state space.
type Instance struct {
	Capacity   int
	ItemWidths []int
	Demands    []int
}

// MaximumDemand returns the largest single-item-type demand, used as the
// upper bound on a pattern's multiplicity (a column is never useful beyond
// satisfying one item type's whole demand by itself).
func (ins Instance) MaximumDemand() int {
	max := 0
	for _, d := range ins.Demands {
		if d > max {
			max = d
		}
	}
	return max
}

func (ins Instance) validate() error {
	if ins.Capacity <= 0 {
		return fmt.Errorf("cuttingstock: capacity must be positive, got %d", ins.Capacity)
	}
	if len(ins.ItemWidths) != len(ins.Demands) {
		return fmt.Errorf("cuttingstock: %d item widths but %d demands", len(ins.ItemWidths), len(ins.Demands))
	}
	for i, w := range ins.ItemWidths {
		if w <= 0 {
			return fmt.Errorf("cuttingstock: item %d has non-positive width %d", i, w)
		}
		if w > ins.Capacity {
			return fmt.Errorf("cuttingstock: item %d has width %d exceeding capacity %d", i, w, ins.Capacity)
		}
		if ins.Demands[i] < 0 {
			return fmt.Errorf("cuttingstock: item %d has negative demand %d", i, ins.Demands[i])
		}
	}
	return nil
}

// Pattern is the decoded payload stashed on a Column's Extra field: how
// many copies of each item type the pattern cuts from one roll.
type Pattern struct {
	Counts []int
}

// NewModel builds the colgen.Model for ins: one row per item type with
// LowerBound == UpperBound == demand (every unit of demand must be cut,
// exactly, not merely covered) and coefficient bounds [0, demand] (a
// single pattern never needs more copies of an item type than its total
// demand), and a fresh PricingSolver as in the source material's
// get_parameters/PricingSolver pair. There are no static columns: every
// column comes from pricing.
func NewModel(ins Instance) (*colgen.Model, error) {
	if err := ins.validate(); err != nil {
		return nil, err
	}
	rows := make([]colgen.Row, len(ins.Demands))
	for i, d := range ins.Demands {
		rows[i] = colgen.Row{
			LowerBound:            float64(d),
			UpperBound:            float64(d),
			CoefficientLowerBound: 0,
			CoefficientUpperBound: float64(d),
		}
	}
	solver := &PricingSolver{instance: ins, filledDemand: make([]int, len(ins.Demands))}
	return colgen.NewModel(colgen.Minimize, rows, solver, nil)
}

// DummyColumnObjectiveCoefficient mirrors the source's
// "2 * instance.maximum_demand()" default for this domain.
func (ins Instance) DummyColumnObjectiveCoefficient() float64 {
	return 2 * float64(ins.MaximumDemand())
}

// PricingSolver is the cutting-stock pricing oracle: a bounded knapsack
// problem over the current dual prices, solved by dynamic programming.
// filledDemand is per-call mutable scratch (per spec.md §5's
// shared-resource policy), reset at every InitializePricing.
type PricingSolver struct {
	instance     Instance
	filledDemand []int
}

var _ colgen.PricingSolver = (*PricingSolver)(nil)

// InitializePricing records how much of each item type's demand is
// already satisfied by fixedColumns, so SolvePricing never proposes a
// pattern that would use more of an item type than still has open demand.
// The cutting stock model has no static columns, so there is nothing to
// report infeasible.
func (p *PricingSolver) InitializePricing(fixedColumns *colgen.ColumnMap) ([]*colgen.Column, error) {
	for i := range p.filledDemand {
		p.filledDemand[i] = 0
	}
	for _, cv := range fixedColumns.Columns() {
		if cv.Value < 0.5 {
			continue
		}
		for _, e := range cv.Column.Elements {
			p.filledDemand[e.Row] += int(math.Round(cv.Value * e.Coefficient))
		}
	}
	return nil, nil
}

// pricingScale converts a fractional dual price into an integral knapsack
// profit, matching the source material's "knapsacksolver::Profit mult =
// 10000" scaling so that the DP, which requires integral profits, still
// discriminates between close dual values.
const pricingScale = 10000.0

// SolvePricing builds a bounded knapsack instance with one item per
// (item type, remaining demand unit) pair -- exactly the source's
// per-unit expansion -- profit = floor(pricingScale * dual), and returns
// the single best-reduced-cost pattern found by dynamic-programming
// knapsack, wrapped up as one candidate Column. Overcost is always 0: this
// oracle does not implement Lagrangian bound tightening.
func (p *PricingSolver) SolvePricing(duals []float64) ([]*colgen.Column, float64, error) {
	var weights []int
	var profits []int
	var itemType []int
	for t, w := range p.instance.ItemWidths {
		profit := int(math.Floor(pricingScale * duals[t]))
		if profit <= 0 {
			continue
		}
		remaining := p.instance.Demands[t] - p.filledDemand[t]
		for u := 0; u < remaining; u++ {
			weights = append(weights, w)
			profits = append(profits, profit)
			itemType = append(itemType, t)
		}
	}

	if len(weights) == 0 {
		return nil, 0, nil
	}

	chosen := solveKnapsackDP(p.instance.Capacity, weights, profits)

	counts := make([]int, len(p.instance.ItemWidths))
	for _, idx := range chosen {
		counts[itemType[idx]]++
	}

	var elements []colgen.LinearTerm
	for t, c := range counts {
		if c > 0 {
			elements = append(elements, colgen.LinearTerm{Row: t, Coefficient: float64(c)})
		}
	}
	if len(elements) == 0 {
		return nil, 0, nil
	}

	column := &colgen.Column{
		Type:                 colgen.Integer,
		LowerBound:           0,
		UpperBound:           float64(p.instance.MaximumDemand()),
		ObjectiveCoefficient: 1,
		Elements:             elements,
		Extra:                Pattern{Counts: counts},
	}
	return []*colgen.Column{column}, 0, nil
}

// solveKnapsackDP solves a 0/1 knapsack problem (capacity, per-item
// weights/profits) by the standard bottom-up dynamic program and returns
// the indices of the chosen items. Items here are already the per-unit
// expansion of a bounded knapsack (one entry per remaining demand unit),
// as in the source's knapsacksolver call.
func solveKnapsackDP(capacity int, weights, profits []int) []int {
	n := len(weights)
	// best[i][c] = best profit achievable using items [0, i) within
	// capacity c.
	best := make([][]int, n+1)
	for i := range best {
		best[i] = make([]int, capacity+1)
	}
	for i := 0; i < n; i++ {
		w, v := weights[i], profits[i]
		for c := 0; c <= capacity; c++ {
			best[i+1][c] = best[i][c]
			if w <= c {
				if cand := best[i][c-w] + v; cand > best[i+1][c] {
					best[i+1][c] = cand
				}
			}
		}
	}

	var chosen []int
	c := capacity
	for i := n; i > 0; i-- {
		if best[i][c] != best[i-1][c] {
			chosen = append(chosen, i-1)
			c -= weights[i-1]
		}
	}
	return chosen
}
