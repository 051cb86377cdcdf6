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

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// columnByIdentity is the cmp.Option that makes go-cmp treat two *Column
// handles as equal exactly when they are the same pointer. Columns are
// reference-counted handles (see column.go); diffing their fields
// structurally would claim two distinct columns that happen to have
// identical coefficients are "equal", which is wrong for ColumnMap/Solution
// content, where what matters is which column handle was installed.
var columnByIdentity = cmp.Comparer(func(a, b *Column) bool { return a == b })

func TestColumnValuesCompareByColumnIdentityNotStructure(t *testing.T) {
	a := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}})
	b := NewColumn(1, []LinearTerm{{Row: 0, Coefficient: 1}})

	got := []ColumnValue{{Column: a, Value: 1}}
	wantSameHandle := []ColumnValue{{Column: a, Value: 1}}
	wantDifferentHandle := []ColumnValue{{Column: b, Value: 1}}

	if diff := cmp.Diff(wantSameHandle, got, columnByIdentity, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("same handle should compare equal even though two builds exist, diff:\n%s", diff)
	}
	if cmp.Diff(wantDifferentHandle, got, columnByIdentity, cmpopts.EquateEmpty()) == "" {
		t.Fatalf("structurally identical but distinct column handles must not compare equal")
	}
}

func TestSolutionColumnsCompareByColumnIdentity(t *testing.T) {
	rows := []Row{NewRow(1, 1)}
	model, err := NewModel(Minimize, rows, stubPricingSolver{}, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	col := NewColumn(5, []LinearTerm{{Row: 0, Coefficient: 1}})
	var b SolutionBuilder
	b.SetModel(model)
	b.AddColumn(col, 1)
	sol := b.Build()

	want := []ColumnValue{{Column: col, Value: 1}}
	if diff := cmp.Diff(want, sol.Columns(), columnByIdentity); diff != "" {
		t.Fatalf("Solution.Columns() mismatch (-want +got):\n%s", diff)
	}
}
