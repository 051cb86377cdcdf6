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
	"testing"

	"gotest.tools/v3/assert"
)

// stubPricingSolver is the minimal PricingSolver used to exercise the
// data-model invariants directly, without going through a full driver
// run.
type stubPricingSolver struct{}

func (stubPricingSolver) InitializePricing(*ColumnMap) ([]*Column, error) { return nil, nil }
func (stubPricingSolver) SolvePricing([]float64) ([]*Column, float64, error) {
	return nil, 0, nil
}

func testModel(t *testing.T) *Model {
	t.Helper()
	rows := []Row{NewRow(1, 1), NewRow(1, 1)}
	model, err := NewModel(Minimize, rows, stubPricingSolver{}, nil)
	assert.NilError(t, err)
	return model
}

// TestSolutionBuilderSumsDuplicateColumns is P9: adding the same (column,
// v1) and (column, v2) yields value v1 + v2.
func TestSolutionBuilderSumsDuplicateColumns(t *testing.T) {
	model := testModel(t)
	col := NewColumn(3, []LinearTerm{{Row: 0, Coefficient: 1}})

	var b SolutionBuilder
	b.SetModel(model)
	b.AddColumn(col, 0.4)
	b.AddColumn(col, 0.6)
	sol := b.Build()

	assert.Equal(t, len(sol.Columns()), 1)
	assert.Equal(t, sol.Columns()[0].Value, 1.0)
}

// TestSolutionBuilderBuildIsRepeatable is the second half of P9: Build may
// be called more than once from the same accumulated inputs and returns
// equal solutions each time.
func TestSolutionBuilderBuildIsRepeatable(t *testing.T) {
	model := testModel(t)
	col := NewColumn(3, []LinearTerm{{Row: 0, Coefficient: 1}})

	var b SolutionBuilder
	b.SetModel(model)
	b.AddColumn(col, 1)
	first := b.Build()
	second := b.Build()

	assert.Equal(t, first.ObjectiveValue(), second.ObjectiveValue())
	assert.Equal(t, first.Feasible(), second.Feasible())
}

// TestSolutionObjectiveValueIsSumOfValueTimesCoefficient is P1.
func TestSolutionObjectiveValueIsSumOfValueTimesCoefficient(t *testing.T) {
	model := testModel(t)
	a := NewColumn(2, []LinearTerm{{Row: 0, Coefficient: 1}})
	c := NewColumn(5, []LinearTerm{{Row: 1, Coefficient: 1}})

	var b SolutionBuilder
	b.SetModel(model)
	b.AddColumn(a, 1)
	b.AddColumn(c, 1)
	sol := b.Build()

	assert.Equal(t, sol.ObjectiveValue(), 2.0*1+5.0*1)
}

// TestFeasibleSolutionSatisfiesRowBoundsAndIntegrality is P2.
func TestFeasibleSolutionSatisfiesRowBoundsAndIntegrality(t *testing.T) {
	model := testModel(t)
	a := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}})
	c := NewColumn(1, []LinearTerm{{Row: 1, Coefficient: 1}})

	var b SolutionBuilder
	b.SetModel(model)
	b.AddColumn(a, 1)
	b.AddColumn(c, 1)
	sol := b.Build()

	assert.Assert(t, sol.Feasible())
	assert.Equal(t, sol.RowValue(0), 1.0)
	assert.Equal(t, sol.RowValue(1), 1.0)
}

func TestSolutionMarkedInfeasibleWhenRowBoundViolated(t *testing.T) {
	model := testModel(t) // row 0 is [1,1]
	a := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}})

	var b SolutionBuilder
	b.SetModel(model)
	b.AddColumn(a, 0.4) // leaves row 0 at 0.4, short of its lower bound 1
	sol := b.Build()

	assert.Assert(t, !sol.Feasible())
	// Even though infeasible, ObjectiveValue and RowValues are still
	// computed.
	assert.Equal(t, sol.ObjectiveValue(), 0.4)
}

func TestSolutionMarkedInfeasibleWhenIntegerColumnIsFractional(t *testing.T) {
	model := testModel(t)

	// Two independent Integer columns, each accumulated from two parts, plus
	// a Continuous filler on row 1, so every row is satisfied and only the
	// fractional total of an Integer column makes the solution infeasible.
	filler := &Column{Type: Continuous, LowerBound: 0, UpperBound: 1, ObjectiveCoefficient: 0,
		Elements: []LinearTerm{{Row: 1, Coefficient: 1}}}
	frac := &Column{Type: Integer, LowerBound: 0, UpperBound: 1, ObjectiveCoefficient: 1,
		Elements: []LinearTerm{{Row: 0, Coefficient: 1}}}
	other := &Column{Type: Integer, LowerBound: 0, UpperBound: 1, ObjectiveCoefficient: 1,
		Elements: []LinearTerm{{Row: 1, Coefficient: 1}}}

	var b2 SolutionBuilder
	b2.SetModel(model)
	b2.AddColumn(frac, 0.5)
	b2.AddColumn(frac, 0.5) // sums to 1.0, integral and satisfies row 0
	b2.AddColumn(other, 0.3)
	b2.AddColumn(other, 0.3) // sums to 0.6, not integral
	b2.AddColumn(filler, 0.4) // brings row 1 to 1.0, within its bounds
	sol2 := b2.Build()
	assert.Assert(t, !sol2.Feasible())
}

// TestColumnHasherTreatsPermutedElementsAsEqual is part of P6's
// dedup contract: structural equality must not depend on element order.
func TestColumnHasherTreatsPermutedElementsAsEqual(t *testing.T) {
	var h ColumnHasher
	a := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}, {Row: 1, Coefficient: 2}})
	b := NewColumn(1, []LinearTerm{{Row: 1, Coefficient: 2}, {Row: 0, Coefficient: 1}})
	assert.Assert(t, h.Equal(a, b))
	assert.Equal(t, h.Hash(a), h.Hash(b))
}

func TestColumnHasherRejectsDuplicateOrExtraRows(t *testing.T) {
	var h ColumnHasher
	a := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}})
	b := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}, {Row: 1, Coefficient: 1}})
	assert.Assert(t, !h.Equal(a, b))
	c := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}, {Row: 0, Coefficient: 1}})
	assert.Assert(t, !h.Equal(b, c))
}

func TestColumnHasherDistinguishesDifferentObjective(t *testing.T) {
	var h ColumnHasher
	a := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}})
	b := NewColumn(2, []LinearTerm{{Row: 0, Coefficient: 1}})
	assert.Assert(t, !h.Equal(a, b))
}

func TestColumnMapAddColumnValueSums(t *testing.T) {
	m := NewColumnMap()
	col := NewColumn(1, nil)
	m.AddColumnValue(col, 0.25)
	m.AddColumnValue(col, 0.75)
	assert.Equal(t, m.GetColumnValue(col, -1), 1.0)
	assert.Equal(t, m.Len(), 1)
}

func TestColumnMapCloneIsIndependent(t *testing.T) {
	m := NewColumnMap()
	col := NewColumn(1, nil)
	m.SetColumnValue(col, 1)
	clone := m.Clone()
	clone.SetColumnValue(col, 2)
	assert.Equal(t, m.GetColumnValue(col, -1), 1.0)
	assert.Equal(t, clone.GetColumnValue(col, -1), 2.0)
}

func TestComputeReducedCost(t *testing.T) {
	col := NewColumn(10, []LinearTerm{{Row: 0, Coefficient: 2}, {Row: 1, Coefficient: 3}})
	duals := []float64{1, 1}
	assert.Equal(t, computeReducedCost(col, duals), 10.0-(2+3))
}

func TestNewModelRejectsOutOfRangeStaticColumn(t *testing.T) {
	rows := []Row{NewRow(0, 1)}
	bad := NewColumn(1, []LinearTerm{{Row: 5, Coefficient: 1}})
	_, err := NewModel(Minimize, rows, stubPricingSolver{}, []*Column{bad})
	assert.ErrorContains(t, err, "invalid argument")
}

func TestNewModelRejectsInvalidRow(t *testing.T) {
	rows := []Row{{LowerBound: 2, UpperBound: 1}}
	_, err := NewModel(Minimize, rows, stubPricingSolver{}, nil)
	assert.ErrorContains(t, err, "invalid argument")
}
