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

import (
	"math"

	"github.com/snow-abstraction/colgen/internal/ldsqueue"
)

// LimitedDiscrepancySearchParameters is ColumnGenerationParameters plus the
// tree-search-specific knobs of spec.md §4.6.
type LimitedDiscrepancySearchParameters struct {
	ColumnGenerationParameters

	// MaximumDiscrepancy caps how many "wrong-branch" choices a node may
	// accumulate from the root before it is pruned; -1 means unbounded.
	MaximumDiscrepancy int

	// MaximumNumberOfNodes bounds the number of tree nodes expanded; 0
	// means unbounded.
	MaximumNumberOfNodes int
}

type ldsNode struct {
	fixed       []ColumnValue
	tabu        map[*Column]bool
	discrepancy int
	depth       int
}

// LimitedDiscrepancySearch implements the branch-and-bound-flavored limited
// discrepancy search of spec.md §4.6: nodes are explored in
// (discrepancy ascending, depth descending) order via internal/ldsqueue,
// each node resolves its column-generation relaxation, an integral
// feasible relaxation becomes a candidate incumbent, and a fractional
// Integer column is branched on into a conforming child (discrepancy
// unchanged) and a discrepant child (discrepancy+1), with a tabu set
// along each node's ancestor chain preventing the same column from being
// fixed twice on one root-to-node path.
func LimitedDiscrepancySearch(model *Model, params LimitedDiscrepancySearchParameters) (Output, error) {
	if params.DummyColumnObjectiveCoefficient == 0 {
		return Output{}, &InvalidArgumentError{Msg: "dummy column objective coefficient must be nonzero"}
	}
	if params.NewLPBackend == nil {
		return Output{}, &InvalidArgumentError{Msg: "NewLPBackend is required"}
	}

	sign := model.ObjectiveSense.internalSign()

	q := ldsqueue.New()
	nodes := map[int]*ldsNode{}
	nextID := 0

	root := &ldsNode{
		fixed: append([]ColumnValue(nil), params.FixedColumns...),
		tabu:  map[*Column]bool{},
	}
	nodes[nextID] = root
	q.Push(ldsqueue.Node{Discrepancy: 0, Depth: 0, ID: nextID})
	nextID++

	pool := params.ColumnPool
	bestSolution := zeroSolution(model)
	haveIncumbent := false
	var bound float64
	haveBound := false
	var totalIterations int
	var lastColumns []*Column = pool

	expanded := 0
	for q.Len() > 0 {
		if params.CommonParameters.Timer.NeedsToEnd() {
			break
		}
		if params.MaximumNumberOfNodes > 0 && expanded >= params.MaximumNumberOfNodes {
			break
		}
		item := q.Pop()
		n := nodes[item.ID]
		delete(nodes, item.ID)
		expanded++

		nodeParams := params.ColumnGenerationParameters
		nodeParams.FixedColumns = n.fixed
		nodeParams.ColumnPool = pool
		if params.InternalDiving == InternalDivingEverywhere ||
			(params.InternalDiving == InternalDivingAtRoot && n.depth == 0) {
			nodeParams.InternalDiving = InternalDivingEverywhere
		} else {
			nodeParams.InternalDiving = NoInternalDiving
		}

		out, err := ColumnGeneration(model, nodeParams)
		if err != nil {
			return Output{}, err
		}
		pool = out.Columns
		lastColumns = pool
		totalIterations += out.NumberOfColumnGenerationIterations

		if n.depth == 0 {
			bound = out.Bound
			haveBound = true
			if params.NewBoundCallback != nil {
				params.NewBoundCallback(bound)
			}
		}

		if !relaxationRowsSatisfied(out.RelaxationSolution) {
			continue // pruned: no feasible completion from this fixing
		}

		if isBetter(sign, out.RelaxationSolution, bestSolution, haveIncumbent) {
			bestSolution = out.RelaxationSolution
			haveIncumbent = true
			if params.NewSolutionCallback != nil {
				params.NewSolutionCallback(bestSolution)
			}
		}

		if out.RelaxationSolution.Feasible() {
			continue // already integral; nothing left to branch on
		}

		fixedMap := NewColumnMap()
		for _, cv := range n.fixed {
			fixedMap.SetColumnValue(cv.Column, cv.Value)
		}

		// Fix every Integer column whose floor already exceeds what is
		// currently fixed for it, all in one pass, before considering any
		// branch.
		var floorFixed []ColumnValue
		for _, cv := range out.RelaxationSolution.Columns() {
			if cv.Column.Type != Integer {
				continue
			}
			floorValue := math.Floor(cv.Value)
			if floorValue <= fixedMap.GetColumnValue(cv.Column, 0) {
				continue
			}
			floorFixed = append(floorFixed, ColumnValue{Column: cv.Column, Value: floorValue})
		}
		if len(floorFixed) > 0 {
			child := &ldsNode{
				fixed:       append(append([]ColumnValue(nil), n.fixed...), floorFixed...),
				tabu:        n.tabu,
				discrepancy: n.discrepancy,
				depth:       n.depth + 1,
			}
			nodes[nextID] = child
			q.Push(ldsqueue.Node{Discrepancy: child.discrepancy, Depth: child.depth, ID: nextID})
			nextID++
			continue
		}

		frac, ok := bestBranchingColumn(out.RelaxationSolution, fixedMap, n.tabu)
		if !ok {
			continue // nothing left to branch on
		}

		conformingValue := math.Ceil(frac.Value)
		if conformingValue > frac.Column.UpperBound {
			conformingValue = frac.Column.UpperBound
		}
		discrepantValue := 0.0
		if conformingValue == 0 {
			discrepantValue = frac.Column.UpperBound
		}

		childTabu := make(map[*Column]bool, len(n.tabu)+1)
		for c := range n.tabu {
			childTabu[c] = true
		}
		childTabu[frac.Column] = true

		conforming := &ldsNode{
			fixed:       append(append([]ColumnValue(nil), n.fixed...), ColumnValue{Column: frac.Column, Value: conformingValue}),
			tabu:        childTabu,
			discrepancy: n.discrepancy,
			depth:       n.depth + 1,
		}
		nodes[nextID] = conforming
		q.Push(ldsqueue.Node{Discrepancy: conforming.discrepancy, Depth: conforming.depth, ID: nextID})
		nextID++

		if params.MaximumDiscrepancy < 0 || n.discrepancy+1 <= params.MaximumDiscrepancy {
			discrepant := &ldsNode{
				fixed:       append(append([]ColumnValue(nil), n.fixed...), ColumnValue{Column: frac.Column, Value: discrepantValue}),
				tabu:        childTabu,
				discrepancy: n.discrepancy + 1,
				depth:       n.depth + 1,
			}
			nodes[nextID] = discrepant
			q.Push(ldsqueue.Node{Discrepancy: discrepant.discrepancy, Depth: discrepant.depth, ID: nextID})
			nextID++
		}
	}

	if !haveBound {
		bound = 0
	}
	return Output{
		Solution:                          bestSolution,
		RelaxationSolution:                bestSolution,
		Bound:                             bound,
		NumberOfColumnGenerationIterations: totalIterations,
		Columns:                           lastColumns,
	}, nil
}

func isBetter(sign float64, candidate, incumbent Solution, haveIncumbent bool) bool {
	if !candidate.Feasible() {
		return false
	}
	if !haveIncumbent {
		return true
	}
	return sign*candidate.ObjectiveValue() < sign*incumbent.ObjectiveValue()-Tolerance
}
