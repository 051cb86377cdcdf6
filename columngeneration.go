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
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/snow-abstraction/colgen/lp"
)

// ColumnGenerationParameters extends CommonParameters with the knobs
// specific to the column-generation engine itself: the iteration cap,
// the Wentges and directional smoothing stabilization parameters, and a
// per-iteration progress hook.
type ColumnGenerationParameters struct {
	CommonParameters

	MaximumNumberOfIterations int // -1 = unbounded

	StaticWentgesSmoothingParameter float64 // alpha0
	SelfAdjustingWentgesSmoothing   bool
	StaticDirectionalSmoothingParameter float64 // beta0
	AutomaticDirectionalSmoothing      bool

	IterationCallback func(iteration int, columnsInMaster int, relaxationValue, bound float64)
}

func (p ColumnGenerationParameters) toLPSense(sense ObjectiveSense) lp.Sense {
	if sense == Maximize {
		return lp.Maximize
	}
	return lp.Minimize
}

const mEscalationFactor = 4
const mAbortMultiple = 100

// ColumnGeneration drives the stabilized column-generation main loop
// described in spec.md §4.4: preprocessing against fixed columns,
// repeated LP-solve/pricing rounds with Wentges and directional-smoothing
// stabilization, subgradient-driven self-adjustment of alpha, and a
// dummy-column Big-M escalation loop that restarts the whole call when
// the restricted master cannot yet be made feasible without artificial
// help.
func ColumnGeneration(model *Model, params ColumnGenerationParameters) (Output, error) {
	if params.DummyColumnObjectiveCoefficient == 0 {
		return Output{}, &InvalidArgumentError{Msg: "dummy column objective coefficient must be nonzero"}
	}
	if params.NewLPBackend == nil {
		return Output{}, &InvalidArgumentError{Msg: "NewLPBackend is required"}
	}
	for i, c := range params.InitialColumns {
		if err := c.validateAgainstRows(model.Rows); err != nil {
			return Output{}, &InvalidArgumentError{Msg: fmt.Sprintf("initial column %d: %s", i, err)}
		}
	}
	return columnGeneration(model, params, 0)
}

func columnGeneration(model *Model, params ColumnGenerationParameters, depth int) (Output, error) {
	fixed := NewColumnMap()
	for _, cv := range params.FixedColumns {
		fixed.SetColumnValue(cv.Column, cv.Value)
	}

	rowValues := make([]float64, len(model.Rows))
	c0 := 0.0
	for _, cv := range params.FixedColumns {
		c0 += cv.Column.ObjectiveCoefficient * cv.Value
		for _, e := range cv.Column.Elements {
			rowValues[e.Row] += cv.Value * e.Coefficient
		}
	}

	activeRows := make([]int, 0, len(model.Rows))
	rowCompactedIndex := make([]int, len(model.Rows))
	shiftedLower := make([]float64, 0, len(model.Rows))
	shiftedUpper := make([]float64, 0, len(model.Rows))
	for r, row := range model.Rows {
		rowCompactedIndex[r] = -1
		if row.CoefficientLowerBound >= 0 && rowValues[r] > row.UpperBound+Tolerance {
			return Output{}, &InfeasibleMasterError{Msg: "fixed columns already exceed a row's upper bound"}
		}
		if row.CoefficientLowerBound >= 0 && absFloat(rowValues[r]-row.UpperBound) <= Tolerance {
			continue // saturated: dropped from the compacted active-row set (P7)
		}
		rowCompactedIndex[r] = len(activeRows)
		activeRows = append(activeRows, r)
		shiftedLower = append(shiftedLower, row.LowerBound-rowValues[r])
		shiftedUpper = append(shiftedUpper, row.UpperBound-rowValues[r])
	}

	backend := params.NewLPBackend(params.toLPSense(model.ObjectiveSense), shiftedLower, shiftedUpper)

	M := params.DummyColumnObjectiveCoefficient
	dummySign := 1.0
	if model.ObjectiveSense == Maximize {
		dummySign = -1.0
	}
	type dummyRef struct {
		row  int // original row index
		col  int
	}
	var dummies []dummyRef
	for ci, r := range activeRows {
		if shiftedLower[ci] > Tolerance {
			col := backend.AddColumn([]int{ci}, []float64{shiftedLower[ci]}, M*dummySign, 0, posInf)
			dummies = append(dummies, dummyRef{row: r, col: col})
		}
		if shiftedUpper[ci] < -Tolerance {
			col := backend.AddColumn([]int{ci}, []float64{shiftedUpper[ci]}, M*dummySign, 0, posInf)
			dummies = append(dummies, dummyRef{row: r, col: col})
		}
	}

	infeasibleStatic, err := model.PricingSolver.InitializePricing(fixed)
	if err != nil {
		return Output{}, err
	}
	infeasibleSet := make(map[*Column]bool, len(infeasibleStatic))
	for _, c := range infeasibleStatic {
		infeasibleSet[c] = true
	}

	installed := make(map[*Column]int) // column -> backend column index
	var installedList []*Column

	installable := func(c *Column) bool {
		if fixed.Contains(c) || infeasibleSet[c] {
			return false
		}
		if c.Type == Integer {
			for _, e := range c.Elements {
				ci := rowCompactedIndex[e.Row]
				if ci < 0 {
					continue
				}
				row := model.Rows[e.Row]
				if row.CoefficientLowerBound >= 0 && e.Coefficient > shiftedUpper[ci]+Tolerance {
					return false
				}
			}
		}
		return true
	}

	install := func(c *Column) {
		if _, ok := installed[c]; ok {
			return
		}
		if !installable(c) {
			return
		}
		rows := make([]int, 0, len(c.Elements))
		coeffs := make([]float64, 0, len(c.Elements))
		for _, e := range c.Elements {
			ci := rowCompactedIndex[e.Row]
			if ci < 0 {
				continue
			}
			rows = append(rows, ci)
			coeffs = append(coeffs, e.Coefficient)
		}
		idx := backend.AddColumn(rows, coeffs, c.ObjectiveCoefficient, c.LowerBound, c.UpperBound)
		installed[c] = idx
		installedList = append(installedList, c)
	}

	for _, c := range model.Columns {
		install(c)
	}
	for _, c := range params.InitialColumns {
		install(c)
	}

	pool := params.ColumnPool

	piIn := make([]float64, len(model.Rows))
	piSep := make([]float64, len(model.Rows))

	alpha := params.StaticWentgesSmoothingParameter
	beta := params.StaticDirectionalSmoothingParameter

	sign := model.ObjectiveSense.internalSign()

	iterations := 0
	var timeLPSolve, timePricing time.Duration
	lastG := make([]float64, len(model.Rows))

	for {
		if params.CommonParameters.Timer.NeedsToEnd() {
			break
		}
		if params.MaximumNumberOfIterations >= 0 && iterations >= params.MaximumNumberOfIterations {
			break
		}
		iterations++

		t0 := time.Now()
		if err := backend.Solve(); err != nil {
			var infeasible *lp.InfeasibleError
			if errors.As(err, &infeasible) {
				return Output{}, &InfeasibleMasterError{Msg: err.Error()}
			}
			return Output{}, &LpBackendError{Err: err}
		}
		timeLPSolve += time.Since(t0)

		duals := make([]float64, len(model.Rows))
		for ci, r := range activeRows {
			duals[r] = backend.Dual(ci)
		}

		relaxationValue := c0 + backend.Objective()
		if params.IterationCallback != nil {
			params.IterationCallback(iterations, len(installedList), relaxationValue, relaxationValue)
		}

		var newColumns []*Column
		for _, c := range pool {
			if _, ok := installed[c]; ok || !installable(c) {
				continue
			}
			rc := computeReducedCost(c, duals)
			if sign*rc < -Tolerance {
				newColumns = append(newColumns, c)
			}
		}

		if len(newColumns) == 0 {
			t1 := time.Now()
			piOut := duals
			attemptColumns, piSepThisRound, err := stabilizedPricing(
				model, activeRows, piIn, piOut, lastG, alpha, beta,
				params.AutomaticDirectionalSmoothing, sign,
				&pool, installed,
				params.InternalDiving != NoInternalDiving, fixed, params.FixedColumns, rowValues,
			)
			if err != nil {
				return Output{}, err
			}
			piSep = piSepThisRound
			for _, c := range attemptColumns {
				if installable(c) {
					newColumns = append(newColumns, c)
				}
			}
			timePricing += time.Since(t1)
		} else {
			piSep = duals
		}

		if len(newColumns) == 0 {
			break // no improving column anywhere: converged
		}

		a := make([]float64, len(activeRows))
		for _, c := range newColumns {
			for _, e := range c.Elements {
				ci := rowCompactedIndex[e.Row]
				if ci >= 0 {
					a[ci] += e.Coefficient
				}
			}
		}
		g := make([]float64, len(model.Rows))
		for ci, r := range activeRows {
			g[r] = clampBelow(shiftedUpper[ci]-a[ci], 0) + clampAbove(shiftedLower[ci]-a[ci], 0)
		}

		if params.SelfAdjustingWentgesSmoothing && normDiff(activeRows, piSep, piIn) > Tolerance {
			v := dotDiff(activeRows, g, zeroVec(len(model.Rows)), piSep, piIn)
			if v > 0 {
				alpha = maxFloat(0, alpha-0.1)
			} else {
				alpha = minFloat(0.99, alpha+0.1*(1-alpha))
			}
		}

		for _, c := range newColumns {
			install(c)
			if !poolContains(pool, c) {
				pool = append(pool, c)
			}
		}

		piIn = piSep
		lastG = g
	}

	if err := backend.Solve(); err != nil {
		var infeasible *lp.InfeasibleError
		if errors.As(err, &infeasible) {
			return Output{}, &InfeasibleMasterError{Msg: err.Error()}
		}
		return Output{}, &LpBackendError{Err: err}
	}

	dummyActive := false
	for _, d := range dummies {
		if backend.Primal(d.col) > Tolerance {
			dummyActive = true
			break
		}
	}

	if dummyActive {
		maxColumnCost := 0.0
		for _, c := range pool {
			valueMax := posInf
			for _, e := range c.Elements {
				row := model.Rows[e.Row]
				var v float64
				if e.Coefficient > 0 {
					v = row.UpperBound / e.Coefficient
				} else {
					v = row.LowerBound / e.Coefficient
				}
				if v < valueMax {
					valueMax = v
				}
			}
			cost := absFloat(c.ObjectiveCoefficient * valueMax)
			if cost > maxColumnCost {
				maxColumnCost = cost
			}
		}
		if maxColumnCost > 0 && absFloat(M) > mAbortMultiple*maxColumnCost {
			relax := buildRelaxationSolution(model, fixed, installed, installedList, backend)
			return Output{
				Solution:                           zeroSolution(model),
				RelaxationSolution:                 relax,
				Bound:                               0,
				DummyColumnObjectiveCoefficient:     M,
				NumberOfColumnGenerationIterations:  iterations,
				Columns:                             pool,
				TimeLpSolve:                         timeLPSolve,
				TimePricing:                         timePricing,
			}, nil
		}
		nextInitial := make([]*Column, 0, len(installedList))
		for _, c := range installedList {
			if backend.Primal(installed[c]) > Tolerance {
				nextInitial = append(nextInitial, c)
			}
		}
		nextParams := params
		nextParams.DummyColumnObjectiveCoefficient = M * mEscalationFactor
		nextParams.InitialColumns = nextInitial
		nextParams.ColumnPool = pool
		return columnGeneration(model, nextParams, depth+1)
	}

	relax := buildRelaxationSolution(model, fixed, installed, installedList, backend)
	bound := c0 + backend.Objective()

	return Output{
		Solution:                          relax,
		RelaxationSolution:                relax,
		Bound:                             bound,
		DummyColumnObjectiveCoefficient:   M,
		NumberOfColumnGenerationIterations: iterations,
		Columns:                           pool,
		TimeLpSolve:                       timeLPSolve,
		TimePricing:                       timePricing,
	}, nil
}

func buildRelaxationSolution(model *Model, fixed *ColumnMap, installed map[*Column]int, installedList []*Column, backend lp.Backend) Solution {
	b := SolutionBuilder{}
	b.SetModel(model)
	for _, cv := range fixed.Columns() {
		b.AddColumn(cv.Column, cv.Value)
	}
	for _, c := range installedList {
		v := backend.Primal(installed[c])
		if absFloat(v) > Tolerance {
			b.AddColumn(c, v)
		}
	}
	return b.Build()
}

// stabilizedPricing runs the mispricing inner loop of spec.md §4.4: it
// repeatedly narrows the separation point toward the latest LP duals
// (piOut) until the pricing oracle returns an improving column or both
// smoothing parameters are exhausted.
func stabilizedPricing(
	model *Model,
	activeRows []int,
	piIn, piOut, g []float64,
	alpha, beta float64,
	autoDirectional bool,
	sign float64,
	pool *[]*Column,
	installed map[*Column]int,
	diving bool,
	fixed *ColumnMap,
	fixedColumns []ColumnValue,
	rowValues []float64,
) ([]*Column, []float64, error) {
	piSep := piOut
	for k := 1; ; k++ {
		alphaK := maxFloat(0, 1-float64(k)*(1-alpha)-Tolerance)

		plainSmoothing := k > 1 || normDiff(activeRows, piIn, piOut) <= Tolerance || (beta == 0 && !autoDirectional)

		if plainSmoothing {
			piSep = convexCombination(piIn, piOut, alphaK)
		} else {
			piTilde := convexCombination(piIn, piOut, alphaK)
			gNorm := norm(activeRows, g)
			var piG []float64
			if gNorm > Tolerance {
				coefG := normDiff(activeRows, piIn, piOut) / gNorm
				piG = addScaled(piIn, g, coefG)
			} else {
				piG = append([]float64(nil), piIn...)
			}

			effectiveBeta := beta
			if autoDirectional {
				denomA := normDiff(activeRows, piOut, piIn)
				denomB := normDiff(activeRows, piG, piIn)
				if denomA > Tolerance && denomB > Tolerance {
					effectiveBeta = maxFloat(0, dotDiff(activeRows, piOut, piIn, piG, piIn)/(denomA*denomB))
				} else {
					effectiveBeta = 0
				}
			}

			rho := addScaled(scaleVec(piG, effectiveBeta), scaleVec(piOut, 1-effectiveBeta), 1)
			denomRho := normDiff(activeRows, piIn, rho)
			if denomRho > Tolerance {
				coefSep := normDiff(activeRows, piIn, piTilde) / denomRho
				piSep = addScaled(piIn, subVec(rho, piIn), coefSep)
			} else {
				piSep = piTilde
			}
			beta = effectiveBeta
		}

		var columns []*Column
		var err error
		if diving {
			columns, err = internalDive(model, fixed, fixedColumns, rowValues, piSep, piOut, sign)
		} else {
			columns, _, err = model.PricingSolver.SolvePricing(piSep)
		}
		if err != nil {
			// A pricing oracle error is fatal to the whole CG call, not
			// just this round: it propagates to the caller instead of
			// being treated as "no column this round".
			return nil, piSep, err
		}

		var newColumns []*Column
		for _, c := range columns {
			if err := c.validateAgainstRows(model.Rows); err != nil {
				return nil, piSep, err
			}
			if !poolContains(*pool, c) {
				*pool = append(*pool, c)
			}
			if _, ok := installed[c]; ok {
				continue
			}
			rc := computeReducedCost(c, piOut)
			if sign*rc < -Tolerance {
				newColumns = append(newColumns, c)
			}
		}

		if len(newColumns) > 0 {
			return newColumns, piSep, nil
		}
		if alphaK == 0 && beta == 0 {
			return nil, piSep, nil
		}
	}
}

// internalDive implements spec.md §4.4's "internal diving" option: instead
// of a single pricing call at the current separation point, it repeatedly
// reprices against a growing set of temporarily fixed columns, each round
// greedily fixing every newly returned column (sorted by reduced cost
// against the outer duals) to the largest multiplicity the row bounds
// still allow, until a round fixes nothing. All columns seen across every
// round are returned so the caller can pick the improving ones as usual;
// the pricing solver's externally visible fixed-column state is restored
// before returning.
func internalDive(model *Model, fixed *ColumnMap, fixedColumns []ColumnValue, rowValues []float64, piSep, piOut []float64, sign float64) ([]*Column, error) {
	rowValuesTmp := append([]float64(nil), rowValues...)
	fixedTmp := append([]ColumnValue(nil), fixedColumns...)
	var all []*Column

	for {
		fixedTmpMap := NewColumnMap()
		for _, cv := range fixedTmp {
			fixedTmpMap.SetColumnValue(cv.Column, cv.Value)
		}
		if _, err := model.PricingSolver.InitializePricing(fixedTmpMap); err != nil {
			return nil, err
		}
		batch, _, err := model.PricingSolver.SolvePricing(piSep)
		if err != nil {
			return nil, err
		}

		var withElements []*Column
		for _, c := range batch {
			if len(c.Elements) == 0 {
				continue
			}
			withElements = append(withElements, c)
			all = append(all, c)
		}
		if len(withElements) == 0 {
			break
		}

		sort.Slice(withElements, func(i, j int) bool {
			rci := computeReducedCost(withElements[i], piOut)
			rcj := computeReducedCost(withElements[j], piOut)
			if sign > 0 {
				return rci < rcj
			}
			return rci > rcj
		})

		fixedAny := false
		for _, c := range withElements {
			value := math.Inf(1)
			for _, e := range c.Elements {
				row := model.Rows[e.Row]
				var v float64
				if e.Coefficient > 0 {
					v = (row.UpperBound - rowValuesTmp[e.Row]) / e.Coefficient
				} else {
					v = (rowValuesTmp[e.Row] - row.LowerBound) / -e.Coefficient
				}
				if v < value {
					value = v
				}
			}
			if value > Tolerance {
				for _, e := range c.Elements {
					rowValuesTmp[e.Row] += value * e.Coefficient
				}
				fixedTmp = append(fixedTmp, ColumnValue{Column: c, Value: value})
				fixedAny = true
			}
		}
		if !fixedAny {
			break
		}
	}

	if _, err := model.PricingSolver.InitializePricing(fixed); err != nil {
		return nil, err
	}
	return all, nil
}

func poolContains(pool []*Column, c *Column) bool {
	var hasher ColumnHasher
	for _, p := range pool {
		if hasher.Equal(p, c) {
			return true
		}
	}
	return false
}

func convexCombination(a, b []float64, alpha float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = alpha*a[i] + (1-alpha)*b[i]
	}
	return out
}

func addScaled(base, dir []float64, coef float64) []float64 {
	out := make([]float64, len(base))
	for i := range base {
		out[i] = base[i] + coef*dir[i]
	}
	return out
}

func scaleVec(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}

func subVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func zeroVec(n int) []float64 { return make([]float64, n) }

const posInf = 1e308
