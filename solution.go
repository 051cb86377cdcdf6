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

// Solution is an assignment of values to a subset of a Model's columns.
// It is built only through SolutionBuilder and is immutable thereafter.
type Solution struct {
	model          *Model
	feasible       bool
	objectiveValue float64
	rowValues      []float64
	columns        []ColumnValue
}

// Model returns the Model this solution was built against.
func (s Solution) Model() *Model { return s.model }

// Feasible reports whether every row's bound is satisfied (within
// Tolerance) and every integer-typed column carries an integral value
// (within Tolerance). An infeasible Solution is still a complete,
// well-formed value: ObjectiveValue and RowValues are always computed,
// regardless of Feasible.
func (s Solution) Feasible() bool { return s.feasible }

// ObjectiveValue returns sum(column.ObjectiveCoefficient * value) over the
// solution's columns (P1).
func (s Solution) ObjectiveValue() float64 { return s.objectiveValue }

// RowValue returns sum(value * coefficient) for all columns in the
// solution that carry an element on row r.
func (s Solution) RowValue(row int) float64 { return s.rowValues[row] }

// Columns returns the solution's (handle, value) pairs in the order they
// were first added via SolutionBuilder.AddColumn.
func (s Solution) Columns() []ColumnValue {
	out := make([]ColumnValue, len(s.columns))
	copy(out, s.columns)
	return out
}

// zeroSolution is the value returned by drivers that have found no
// incumbent yet: not feasible, zero objective value, no columns.
func zeroSolution(model *Model) Solution {
	b := SolutionBuilder{}
	b.SetModel(model)
	s := b.Build()
	s.feasible = false
	return s
}

// SolutionBuilder assembles a Solution from (column, value) contributions,
// combining duplicate columns by summation, then computes row values,
// feasibility and objective value in one pass via Build.
type SolutionBuilder struct {
	model *Model
	m     ColumnMap
}

// SetModel must be called before any AddColumn call.
func (b *SolutionBuilder) SetModel(model *Model) {
	b.model = model
	b.m = *NewColumnMap()
}

// AddColumn records value for column, summing with any value already
// recorded for the same column handle (P9).
func (b *SolutionBuilder) AddColumn(column *Column, value float64) {
	b.m.AddColumnValue(column, value)
}

// Build computes row values, feasibility and objective value from the
// accumulated (column, value) pairs and returns the resulting Solution.
// A SolutionBuilder may be built more than once (e.g. after further
// AddColumn calls); each Build is independent (P9).
func (b *SolutionBuilder) Build() Solution {
	rowValues := make([]float64, len(b.model.Rows))
	objectiveValue := 0.0
	columns := b.m.Columns()

	for _, cv := range columns {
		objectiveValue += cv.Column.ObjectiveCoefficient * cv.Value
		for _, e := range cv.Column.Elements {
			rowValues[e.Row] += cv.Value * e.Coefficient
		}
	}

	feasible := true
	for r, row := range b.model.Rows {
		if rowValues[r] < row.LowerBound-Tolerance || rowValues[r] > row.UpperBound+Tolerance {
			feasible = false
			break
		}
	}
	if feasible {
		for _, cv := range columns {
			if cv.Column.Type != Integer {
				continue
			}
			if math.Abs(cv.Value-math.Round(cv.Value)) > Tolerance {
				feasible = false
				break
			}
		}
	}

	return Solution{
		model:          b.model,
		feasible:       feasible,
		objectiveValue: objectiveValue,
		rowValues:      rowValues,
		columns:        columns,
	}
}
