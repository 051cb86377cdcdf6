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

// VariableType is the domain of a Column's value in a Solution.
type VariableType int

const (
	// Continuous columns may take any real value within their bounds.
	Continuous VariableType = iota
	// Integer columns must take (within Tolerance) an integral value
	// within their bounds for a Solution to be considered feasible.
	Integer
)

func (t VariableType) String() string {
	switch t {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	default:
		return fmt.Sprintf("VariableType(%d)", int(t))
	}
}

// LinearTerm is one nonzero entry of a Column: its coefficient on a Row.
// Row indices need not be sorted within a Column's Elements and a row may
// not appear more than once.
type LinearTerm struct {
	Row         int
	Coefficient float64
}

// Column is a master-problem variable. Columns are created once, by the
// pricing oracle or as part of a Model's static columns, and never mutated
// afterwards; they are shared by reference (handle semantics) across the
// column pool, the LP backend, solutions and tree-search nodes, so a
// *Column is compared for identity with ==, never with a deep equality
// check. Structural equality, when it is needed (pool deduplication), goes
// through ColumnHasher instead.
type Column struct {
	Type                 VariableType
	LowerBound           float64
	UpperBound           float64
	ObjectiveCoefficient float64
	Elements             []LinearTerm
	BranchingPriority    float64
	// Extra is an opaque, read-only payload a pricing oracle can stash on
	// a column to decode it back into a domain object (a cutting pattern,
	// a route) once the framework reports a value for it. The framework
	// never inspects it.
	Extra any
}

// NewColumn returns a Column with the library's default bounds: Integer
// type, [0, 1] domain, matching the defaults used throughout the reference
// pricing problems (0/1 pattern-selection variables).
func NewColumn(objectiveCoefficient float64, elements []LinearTerm) *Column {
	return &Column{
		Type:                 Integer,
		LowerBound:           0,
		UpperBound:           1,
		ObjectiveCoefficient: objectiveCoefficient,
		Elements:             elements,
	}
}

// validateAgainstRows checks a column returned by the pricing oracle (or an
// initial/static column supplied by the caller) against the Model's rows:
// every row index must be in range and every coefficient must lie within
// the row's declared coefficient bounds. Trusted static model columns
// supplied at Model construction are not re-checked at every CG call; only
// columns flowing in from a pricing oracle or initial-column lists are.
func (c *Column) validateAgainstRows(rows []Row) error {
	seen := make(map[int]bool, len(c.Elements))
	for _, e := range c.Elements {
		if e.Row < 0 || e.Row >= len(rows) {
			return &PricingContractViolationError{
				Msg: fmt.Sprintf("column references row %d out of range [0, %d)", e.Row, len(rows)),
			}
		}
		if seen[e.Row] {
			return &PricingContractViolationError{
				Msg: fmt.Sprintf("column references row %d more than once", e.Row),
			}
		}
		seen[e.Row] = true
		row := rows[e.Row]
		if e.Coefficient < row.CoefficientLowerBound-Tolerance || e.Coefficient > row.CoefficientUpperBound+Tolerance {
			return &PricingContractViolationError{
				Msg: fmt.Sprintf("column coefficient %g on row %d outside declared range [%g, %g]",
					e.Coefficient, e.Row, row.CoefficientLowerBound, row.CoefficientUpperBound),
			}
		}
	}
	return nil
}

// ColumnHasher provides structural equality and a hash for *Column values,
// used by the column pool to detect that a newly priced column duplicates
// one already known. Two columns are considered equal when they have the
// same objective coefficient and the same multiset of (row, coefficient)
// elements; pointer identity is deliberately not used here since distinct
// calls to the pricing oracle routinely rediscover the same pattern as a
// fresh handle.
type ColumnHasher struct{}

// Hash combines the objective coefficient with a sum of per-element hashes,
// so that permutations of Elements hash identically (the sum is
// commutative); this mirrors the symmetric containment check Equal
// performs below.
func (ColumnHasher) Hash(c *Column) uint64 {
	h := hashFloat(c.ObjectiveCoefficient)
	for _, e := range c.Elements {
		h += hashFloat(float64(e.Row))*1099511628211 + hashFloat(e.Coefficient)
	}
	return h
}

// Equal reports whether a and b are structurally equal: same objective
// coefficient and, for every element of a, a matching element in b with
// the same row and (within Tolerance) the same coefficient, and
// vice-versa -- the symmetric check guards against duplicate or extra
// rows that a naive one-directional containment check would miss.
func (ColumnHasher) Equal(a, b *Column) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if absFloat(a.ObjectiveCoefficient-b.ObjectiveCoefficient) > Tolerance {
		return false
	}
	if len(a.Elements) != len(b.Elements) {
		return false
	}
	return containsAll(a.Elements, b.Elements) && containsAll(b.Elements, a.Elements)
}

func containsAll(xs, ys []LinearTerm) bool {
	for _, x := range xs {
		found := false
		for _, y := range ys {
			if x.Row == y.Row && absFloat(x.Coefficient-y.Coefficient) <= Tolerance {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hashFloat(f float64) uint64 {
	// FNV-1a-style mix over the bit pattern; only used for bucketing, not
	// for security, so a simple mix is sufficient.
	bits := uint64(int64(f * 1e6))
	bits ^= bits >> 33
	bits *= 0xff51afd7ed558ccd
	bits ^= bits >> 33
	return bits
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
