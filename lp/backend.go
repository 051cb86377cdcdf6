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

// Package lp is the restricted-master LP backend plugin contract (spec
// §6) plus a reference implementation. The column-generation engine
// depends only on the Backend interface; it never assumes a particular
// solver. Clp, Cplex, Xpress, Knitro and Highs bindings are named in the
// source material as example implementations of this same contract but
// are explicitly out of scope here -- Simplex below is this module's one
// concrete backend, good enough to drive the engine end to end on
// moderate-size restricted masters.
package lp

// Sense is the direction of optimization a Backend is constructed with.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Backend is an opaque restricted-master LP solver. A Backend is
// constructed once per column-generation call via a Sense and per-row
// bounds, then grown by repeated AddColumn calls and re-solved; backend
// implementations must be warm-startable across that add/solve sequence,
// the same way the reference Simplex backend below reuses its tableau
// and basis across calls to Solve.
//
// Row and column indices are dense integers: rows are numbered
// 0..len(rowLowerBounds)-1 in the order given to New, columns are
// numbered 0, 1, 2, ... in the order AddColumn is called.
type Backend interface {
	// AddColumn installs a new column with the given sparse (row, coeff)
	// entries, objective coefficient and bounds, and returns its column
	// index. rows and coeffs must have equal length; a row index may not
	// repeat.
	AddColumn(rows []int, coeffs []float64, objectiveCoefficient, lowerBound, upperBound float64) int

	// Solve (re-)solves the current restricted master. It returns an
	// error (wrapping *colgen.InfeasibleMasterError semantics at the
	// caller's discretion) if the master is proved infeasible.
	Solve() error

	// Objective returns the optimal objective value of the last Solve.
	Objective() float64

	// Dual returns the shadow price of row, following the standard
	// primal-dual sign convention for the backend's objective sense: for
	// a >= constraint (row activity pinned at its lower bound), the dual
	// is non-negative when minimizing.
	Dual(row int) float64

	// Primal returns the value of column col from the last Solve.
	Primal(col int) float64
}

// NewFunc constructs a fresh Backend for one column-generation call,
// given the objective sense and the (possibly +/-Inf) bounds of each row.
type NewFunc func(sense Sense, rowLowerBounds, rowUpperBounds []float64) Backend
