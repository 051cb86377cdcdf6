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

import "fmt"

// ObjectiveSense is the direction of optimization for a Model.
type ObjectiveSense int

const (
	Minimize ObjectiveSense = iota
	Maximize
)

// internalSign returns +1 for Minimize and -1 for Maximize, letting
// driver/backend code written once in "minimize" terms apply to both
// senses uniformly (e.g. the dummy-column objective coefficient flips
// sign, a reduced cost is "favorable" when internalSign*rc < -Tolerance).
func (s ObjectiveSense) internalSign() float64 {
	if s == Maximize {
		return -1
	}
	return 1
}

// PricingSolver is the user-supplied subproblem solver (the pricing
// oracle). A Model owns exactly one PricingSolver.
//
// InitializePricing is called once per root column-generation invocation
// (i.e. once per call to ColumnGeneration, and once per node in Greedy and
// LimitedDiscrepancySearch), with the columns currently fixed at that
// node. It returns the subset of the Model's static columns that are now
// infeasible given those fixed columns (e.g. a route that would conflict
// with an already-fixed route) so the engine can exclude them.
//
// SolvePricing is given a full-length dual vector indexed by the Model's
// original (uncompacted) row ids and returns zero or more candidate
// columns. The oracle may return columns with unfavorable reduced cost;
// the engine is responsible for filtering. The oracle should aim for the
// most favorable columns it can find within its own heuristic budget.
// Overcost is an optional Lagrangian bound contribution used by advanced
// bound tightening and may always be 0.
//
// Implementations must be deterministic given the same inputs whenever a
// deterministic run is requested by the caller (this framework never
// requests nondeterminism itself, but does not prevent an oracle from
// being randomized when the caller is fine with that).
type PricingSolver interface {
	InitializePricing(fixedColumns *ColumnMap) (infeasibleColumns []*Column, err error)
	SolvePricing(duals []float64) (columns []*Column, overcost float64, err error)
}

// Model is an immutable problem description: the objective sense, the
// rows, the pricing oracle, and the static columns that are always
// present in the master (e.g. slack-like variables). Model exclusively
// owns Rows and PricingSolver; Columns are shared (reference-counted)
// handles that may also live in a column pool, a Solution, or a
// tree-search node.
type Model struct {
	ObjectiveSense ObjectiveSense
	Rows           []Row
	PricingSolver  PricingSolver
	Columns        []*Column
}

// NewModel validates rows and static columns and returns a ready-to-use
// Model. Returns an *InvalidArgumentError if a row is malformed or if a
// static column references a row out of range or a coefficient outside
// that row's declared bounds (static columns are trusted thereafter: the
// engine does not re-validate them on every CG call, only columns coming
// from the pricing oracle or caller-supplied initial columns).
func NewModel(sense ObjectiveSense, rows []Row, pricingSolver PricingSolver, columns []*Column) (*Model, error) {
	for i, r := range rows {
		if err := r.validate(); err != nil {
			return nil, &InvalidArgumentError{Msg: fmt.Sprintf("row %d: %s", i, err)}
		}
	}
	for i, c := range columns {
		if err := c.validateAgainstRows(rows); err != nil {
			return nil, &InvalidArgumentError{Msg: fmt.Sprintf("static column %d: %s", i, err)}
		}
	}
	return &Model{
		ObjectiveSense: sense,
		Rows:           rows,
		PricingSolver:  pricingSolver,
		Columns:        columns,
	}, nil
}
