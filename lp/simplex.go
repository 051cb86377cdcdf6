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

package lp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const simplexTolerance = 1e-7
const maxSimplexIterations = 20000

type varStatus int

const (
	atLower varStatus = iota
	atUpper
)

// Simplex is a reference bounded-variable, two-phase primal simplex
// backend. Every row is represented by a slack variable s_r whose value
// equals the row's activity and whose bounds are exactly the row's
// declared bounds; slack columns occupy internal indices [0, m) and
// start as the identity matrix, so the current tableau restricted to
// those columns is always B^-1 (a standard tableau-method fact), which
// both lets new columns be priced into the current basis without
// replaying pivot history and lets duals be read off directly at the
// end. Structural (caller-added) columns are assumed to have a finite
// lower bound; this is true of every column this framework ever builds
// (defaults to 0) and is not a general-purpose LP restriction this type
// tries to lift.
type Simplex struct {
	sense Sense
	m     int
	n     int

	t []row

	lower []float64
	upper []float64
	cost  []float64
	st    []varStatus

	basis    []int // basis[r] = variable index basic in row r
	rowOfVar []int // rowOfVar[j] = r if j is basic in row r, else -1

	solved         bool
	objectiveValue float64
}

type row []float64

// New returns a Simplex backend for the given sense and row bounds.
func New(sense Sense, rowLowerBounds, rowUpperBounds []float64) *Simplex {
	m := len(rowLowerBounds)
	s := &Simplex{
		sense: sense,
		m:     m,
		n:     m,
		t:     make([]row, m),
		lower: append([]float64(nil), rowLowerBounds...),
		upper: append([]float64(nil), rowUpperBounds...),
		cost:  make([]float64, m),
		st:    make([]varStatus, m),
		basis: make([]int, m),
	}
	s.rowOfVar = make([]int, m)
	for r := 0; r < m; r++ {
		s.t[r] = make(row, m)
		s.t[r][r] = 1
		s.basis[r] = r
		s.rowOfVar[r] = r
	}
	return s
}

// NewBackend adapts New to the lp.NewFunc signature expected by callers
// that configure a driver's Parameters.NewLPBackend.
func NewBackend(sense Sense, rowLowerBounds, rowUpperBounds []float64) Backend {
	return New(sense, rowLowerBounds, rowUpperBounds)
}

func (s *Simplex) AddColumn(rows []int, coeffs []float64, objectiveCoefficient, lowerBound, upperBound float64) int {
	if math.IsInf(lowerBound, -1) {
		panic("lp: Simplex requires a finite column lower bound")
	}
	j := s.n
	s.n++

	col := make([]float64, s.m)
	for i, r := range rows {
		coeff := coeffs[i]
		if coeff == 0 {
			continue
		}
		for r2 := 0; r2 < s.m; r2++ {
			if v := s.t[r2][r]; v != 0 {
				col[r2] += -coeff * v
			}
		}
	}

	for r := 0; r < s.m; r++ {
		s.t[r] = append(s.t[r], col[r])
	}
	s.lower = append(s.lower, lowerBound)
	s.upper = append(s.upper, upperBound)
	s.cost = append(s.cost, objectiveCoefficient)
	s.st = append(s.st, atLower)
	s.rowOfVar = append(s.rowOfVar, -1)
	s.solved = false

	return j - s.m
}

func (s *Simplex) externalToInternal(col int) int { return s.m + col }

func (s *Simplex) isBasic(j int) bool { return s.rowOfVar[j] != -1 }

func (s *Simplex) nonbasicValue(j int) float64 {
	if s.st[j] == atLower {
		return s.lower[j]
	}
	return s.upper[j]
}

// effCost is the objective coefficient used internally: the library
// always minimizes internally, so a Maximize problem is solved as the
// minimization of its negation and un-negated when Objective is read.
func (s *Simplex) effCost(j int) float64 {
	if s.sense == Maximize {
		return -s.cost[j]
	}
	return s.cost[j]
}

func (s *Simplex) basicValues() []float64 {
	v := make([]float64, s.m)
	for r := 0; r < s.m; r++ {
		sum := 0.0
		trow := s.t[r]
		for j := 0; j < s.n; j++ {
			if s.isBasic(j) {
				continue
			}
			if trow[j] == 0 {
				continue
			}
			sum += trow[j] * s.nonbasicValue(j)
		}
		v[r] = -sum
	}
	return v
}

// reducedCosts returns, for every variable, cost[j] - sum_r costB[r] *
// T[r][j] where costB[r] is virtualCostOfBasic(r). Values for basic
// variables are 0 by construction and not meaningful.
func (s *Simplex) reducedCosts(directCost func(j int) float64, virtualCostOfBasic func(r int) float64) []float64 {
	rc := make([]float64, s.n)
	cb := make([]float64, s.m)
	for r := 0; r < s.m; r++ {
		cb[r] = virtualCostOfBasic(r)
	}
	for j := 0; j < s.n; j++ {
		if s.isBasic(j) {
			continue
		}
		sum := 0.0
		for r := 0; r < s.m; r++ {
			if cb[r] == 0 {
				continue
			}
			sum += cb[r] * s.t[r][j]
		}
		rc[j] = directCost(j) - sum
	}
	return rc
}

// Solve runs phase 1 (minimize bound infeasibility of the basic
// variables) followed by phase 2 (minimize the real, sense-adjusted
// objective), per the bounded-variable primal simplex method.
func (s *Simplex) Solve() error {
	s.solved = false

	if err := s.runPhase1(); err != nil {
		return err
	}
	if err := s.runPhase2(); err != nil {
		return err
	}

	values := s.allValues()
	obj := 0.0
	for j := 0; j < s.n; j++ {
		obj += s.cost[j] * values[j]
	}
	s.objectiveValue = obj
	s.solved = true
	return nil
}

func (s *Simplex) allValues() []float64 {
	v := make([]float64, s.n)
	bv := s.basicValues()
	for j := 0; j < s.n; j++ {
		if s.isBasic(j) {
			v[j] = bv[s.rowOfVar[j]]
		} else {
			v[j] = s.nonbasicValue(j)
		}
	}
	return v
}

func (s *Simplex) totalInfeasibility() float64 {
	bv := s.basicValues()
	total := 0.0
	for r := 0; r < s.m; r++ {
		bvar := s.basis[r]
		if bv[r] > s.upper[bvar]+simplexTolerance {
			total += bv[r] - s.upper[bvar]
		} else if bv[r] < s.lower[bvar]-simplexTolerance {
			total += s.lower[bvar] - bv[r]
		}
	}
	return total
}

func (s *Simplex) runPhase1() error {
	for iter := 0; iter < maxSimplexIterations; iter++ {
		bv := s.basicValues()
		infeasCost := make([]float64, s.m)
		total := 0.0
		for r := 0; r < s.m; r++ {
			bvar := s.basis[r]
			if bv[r] > s.upper[bvar]+simplexTolerance {
				infeasCost[r] = 1
				total += bv[r] - s.upper[bvar]
			} else if bv[r] < s.lower[bvar]-simplexTolerance {
				infeasCost[r] = -1
				total += s.lower[bvar] - bv[r]
			}
		}
		if total <= simplexTolerance {
			return nil
		}

		rc := s.reducedCosts(func(int) float64 { return 0 }, func(r int) float64 { return infeasCost[r] })
		j, dir, ok := s.chooseEntering(rc)
		if !ok {
			return &InfeasibleError{Msg: fmt.Sprintf("restricted master infeasible (phase 1 stalled with total infeasibility %g)", total)}
		}
		if err := s.pivotOn(j, dir, bv); err != nil {
			return err
		}
	}
	return &InfeasibleError{Msg: "phase 1 did not converge within iteration limit"}
}

func (s *Simplex) runPhase2() error {
	for iter := 0; iter < maxSimplexIterations; iter++ {
		bv := s.basicValues()
		rc := s.reducedCosts(s.effCost, func(r int) float64 { return s.effCost(s.basis[r]) })
		j, dir, ok := s.chooseEntering(rc)
		if !ok {
			return nil
		}
		if err := s.pivotOn(j, dir, bv); err != nil {
			return err
		}
	}
	return &UnboundedError{Msg: "phase 2 did not converge within iteration limit"}
}

// chooseEntering applies Dantzig's rule: among nonbasic variables whose
// reduced cost signals an improving move given their current bound
// status, pick the one with the largest violation.
func (s *Simplex) chooseEntering(rc []float64) (j int, dir float64, ok bool) {
	best := simplexTolerance
	bestJ := -1
	bestDir := 0.0
	for v := 0; v < s.n; v++ {
		if s.isBasic(v) {
			continue
		}
		switch s.st[v] {
		case atLower:
			if -rc[v] > best {
				best = -rc[v]
				bestJ = v
				bestDir = 1
			}
		case atUpper:
			if rc[v] > best {
				best = rc[v]
				bestJ = v
				bestDir = -1
			}
		}
	}
	if bestJ == -1 {
		return 0, 0, false
	}
	return bestJ, bestDir, true
}

// pivotOn moves entering variable j in direction dir (+1 increasing from
// its lower bound, -1 decreasing from its upper bound) as far as
// feasibility (using effective, infeasibility-aware bounds on basic
// variables) allows, then either flips j to its opposite bound or pivots
// it into the basis in place of the blocking row.
func (s *Simplex) pivotOn(j int, dir float64, bv []float64) error {
	selfLimit := math.Inf(1)
	if !math.IsInf(s.lower[j], -1) && !math.IsInf(s.upper[j], 1) {
		selfLimit = s.upper[j] - s.lower[j]
	}

	theta := selfLimit
	leavingRow := -1
	leavingToUpper := false

	for r := 0; r < s.m; r++ {
		coef := s.t[r][j]
		if coef == 0 {
			continue
		}
		rate := -coef * dir
		if rate == 0 {
			continue
		}
		bvar := s.basis[r]
		effLower, effUpper := s.lower[bvar], s.upper[bvar]
		if bv[r] > effUpper+simplexTolerance {
			effUpper = math.Inf(1)
		}
		if bv[r] < effLower-simplexTolerance {
			effLower = math.Inf(-1)
		}
		var limit float64
		var toUpper bool
		if rate > 0 {
			if math.IsInf(effUpper, 1) {
				continue
			}
			limit = (effUpper - bv[r]) / rate
			toUpper = true
		} else {
			if math.IsInf(effLower, -1) {
				continue
			}
			limit = (effLower - bv[r]) / rate
			toUpper = false
		}
		if limit < -simplexTolerance {
			limit = 0
		}
		if limit < theta-simplexTolerance {
			theta = limit
			leavingRow = r
			leavingToUpper = toUpper
		}
	}

	if math.IsInf(theta, 1) {
		return &UnboundedError{Msg: "restricted master unbounded"}
	}

	if leavingRow == -1 {
		// Bound flip: j never enters the basis.
		if dir > 0 {
			s.st[j] = atUpper
		} else {
			s.st[j] = atLower
		}
		return nil
	}

	leavingVar := s.basis[leavingRow]
	pivotVal := s.t[leavingRow][j]
	trow := s.t[leavingRow]
	for c := 0; c < s.n; c++ {
		trow[c] /= pivotVal
	}
	for r := 0; r < s.m; r++ {
		if r == leavingRow {
			continue
		}
		factor := s.t[r][j]
		if factor == 0 {
			continue
		}
		rr := s.t[r]
		for c := 0; c < s.n; c++ {
			rr[c] -= factor * trow[c]
		}
	}

	s.rowOfVar[leavingVar] = -1
	if leavingToUpper {
		s.st[leavingVar] = atUpper
	} else {
		s.st[leavingVar] = atLower
	}
	s.basis[leavingRow] = j
	s.rowOfVar[j] = leavingRow

	return nil
}

func (s *Simplex) Objective() float64 {
	return s.objectiveValue
}

func (s *Simplex) Primal(col int) float64 {
	j := s.externalToInternal(col)
	if s.isBasic(j) {
		return s.basicValues()[s.rowOfVar[j]]
	}
	return s.nonbasicValue(j)
}

// Dual returns B^-1 row contributions dotted with the basic costs: the
// slack columns [0, m) of the current tableau are exactly B^-1 (they
// began as the identity matrix), so y^T = c_B^T * B^-1 is read directly
// off the tableau with no extra bookkeeping. Because each slack equals its
// row's activity, that product is the negated shadow price under the
// minimization-form costs of effCost: the sign is flipped back when
// minimizing, and for Maximize effCost's own negation already cancels it.
func (s *Simplex) Dual(rowIdx int) float64 {
	cb := mat.NewVecDense(s.m, nil)
	for r := 0; r < s.m; r++ {
		cb.SetVec(r, s.effCost(s.basis[r]))
	}
	binvCol := make([]float64, s.m)
	for r := 0; r < s.m; r++ {
		binvCol[r] = s.t[r][rowIdx]
	}
	y := floats.Dot(cb.RawVector().Data, binvCol)
	if s.sense == Maximize {
		return y
	}
	return -y
}

// InfeasibleError is returned by Solve when the restricted master is
// proved infeasible.
type InfeasibleError struct{ Msg string }

func (e *InfeasibleError) Error() string { return e.Msg }

// UnboundedError is returned by Solve when the restricted master is
// unbounded; this should not occur in normal column-generation use given
// the dummy-column mechanism, but is reported rather than panicking.
type UnboundedError struct{ Msg string }

func (e *UnboundedError) Error() string { return e.Msg }
