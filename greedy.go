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

import "math"

// GreedyParameters is ColumnGenerationParameters plus the depth limit on
// the round-and-fix dive.
type GreedyParameters struct {
	ColumnGenerationParameters

	// MaximumNumberOfNodes bounds the number of rounding steps; 0 means
	// unbounded (the dive runs until every row is either dropped or fixed,
	// or no fractional integer column remains).
	MaximumNumberOfNodes int
}

// Greedy implements the round-and-fix diving heuristic of spec.md §4.5: at
// each node it solves the column-generation relaxation with the current
// fixed columns, then rounds the most attractive fractional Integer column
// up to its bound and fixes it, repeating until the relaxation is integral
// or infeasible. Only the root node's relaxation contributes to Output.Bound;
// later nodes only tighten Output.Solution.
func Greedy(model *Model, params GreedyParameters) (Output, error) {
	if params.DummyColumnObjectiveCoefficient == 0 {
		return Output{}, &InvalidArgumentError{Msg: "dummy column objective coefficient must be nonzero"}
	}
	if params.NewLPBackend == nil {
		return Output{}, &InvalidArgumentError{Msg: "NewLPBackend is required"}
	}

	fixed := NewColumnMap()
	for _, cv := range params.FixedColumns {
		fixed.SetColumnValue(cv.Column, cv.Value)
	}
	pool := params.ColumnPool
	var bound float64
	haveBound := false

	node := 0
	for {
		if params.CommonParameters.Timer.NeedsToEnd() {
			break
		}
		if params.MaximumNumberOfNodes > 0 && node >= params.MaximumNumberOfNodes {
			break
		}

		nodeParams := params.ColumnGenerationParameters
		nodeParams.FixedColumns = fixed.Columns()
		nodeParams.ColumnPool = pool
		if params.InternalDiving == InternalDivingEverywhere ||
			(params.InternalDiving == InternalDivingAtRoot && node == 0) {
			nodeParams.InternalDiving = InternalDivingEverywhere
		} else {
			nodeParams.InternalDiving = NoInternalDiving
		}

		out, err := ColumnGeneration(model, nodeParams)
		if err != nil {
			return Output{}, err
		}
		pool = out.Columns

		if node == 0 {
			bound = out.Bound
			haveBound = true
			if params.NewBoundCallback != nil {
				params.NewBoundCallback(bound)
			}
		}

		if !relaxationRowsSatisfied(out.RelaxationSolution) {
			// No feasible completion from this fixing; the dive has
			// nothing left to try at this node.
			break
		}

		if out.RelaxationSolution.Feasible() {
			// Every Integer column is already integral and every row is
			// satisfied: the relaxation itself is a feasible incumbent.
			if params.NewSolutionCallback != nil {
				params.NewSolutionCallback(out.RelaxationSolution)
			}
			result := Output{
				Solution:                           out.RelaxationSolution,
				RelaxationSolution:                 out.RelaxationSolution,
				Bound:                               bound,
				DummyColumnObjectiveCoefficient:     out.DummyColumnObjectiveCoefficient,
				NumberOfColumnGenerationIterations: out.NumberOfColumnGenerationIterations,
				Columns:                             pool,
			}
			return result, nil
		}

		// Fix every Integer column whose floor already exceeds what is
		// currently fixed for it, all in one pass, before considering any
		// branch; this mirrors the fix-step the diving heuristic runs
		// ahead of branch selection.
		fixedAny := false
		for _, cv := range out.RelaxationSolution.Columns() {
			if cv.Column.Type != Integer {
				continue
			}
			floorValue := math.Floor(cv.Value)
			if floorValue <= fixed.GetColumnValue(cv.Column, 0) {
				continue
			}
			fixed.SetColumnValue(cv.Column, floorValue)
			fixedAny = true
		}
		if fixedAny {
			node++
			continue
		}

		branch, ok := bestBranchingColumn(out.RelaxationSolution, fixed, nil)
		if !ok {
			break
		}
		ceilValue := math.Ceil(branch.Value)
		if ceilValue > branch.Column.UpperBound {
			ceilValue = branch.Column.UpperBound
		}
		fixed.SetColumnValue(branch.Column, ceilValue)
		node++
	}

	if !haveBound {
		bound = 0
	}
	return Output{
		Solution:           zeroSolution(model),
		RelaxationSolution: zeroSolution(model),
		Bound:              bound,
		Columns:            pool,
	}, nil
}

// relaxationRowsSatisfied reports whether every row's bound is met by sol,
// ignoring integrality. This is weaker than Solution.Feasible, which also
// demands every Integer column carry an integral value: a fixing whose
// relaxation fails this row check can never be completed into a feasible
// solution no matter how its fractional columns are rounded, so the dive
// prunes here rather than branching further.
func relaxationRowsSatisfied(sol Solution) bool {
	model := sol.Model()
	for r, row := range model.Rows {
		v := sol.RowValue(r)
		if v < row.LowerBound-Tolerance || v > row.UpperBound+Tolerance {
			return false
		}
	}
	return true
}

// bestBranchingColumn picks the next Integer column to fix: among columns
// not already fixed at or above their current relaxation value, it prefers
// the highest BranchingPriority, breaking ties on the smallest distance to
// the column's ceiling. A column whose ceiling is 0 is never chosen, since
// there would be nothing to fix it to. tabu, when non-nil, additionally
// excludes columns already branched on along the current search path.
func bestBranchingColumn(s Solution, fixed *ColumnMap, tabu map[*Column]bool) (ColumnValue, bool) {
	best := ColumnValue{}
	bestDiff := math.Inf(1)
	found := false
	for _, cv := range s.Columns() {
		if cv.Column.Type != Integer {
			continue
		}
		if tabu != nil && tabu[cv.Column] {
			continue
		}
		if cv.Value <= fixed.GetColumnValue(cv.Column, 0)+Tolerance {
			continue
		}
		ceil := math.Ceil(cv.Value)
		if ceil == 0 {
			continue
		}
		diff := ceil - cv.Value
		if !found ||
			cv.Column.BranchingPriority > best.Column.BranchingPriority ||
			(cv.Column.BranchingPriority == best.Column.BranchingPriority && diff < bestDiff-Tolerance) {
			best = cv
			bestDiff = diff
			found = true
		}
	}
	return best, found
}
