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

package instancegen

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestMakeRandomInstanceIsReproducible(t *testing.T) {
	a := MakeRandomInstance(5, 10, 3, 42)
	b := MakeRandomInstance(5, 10, 3, 42)
	assert.DeepEqual(t, a, b)
	assert.Equal(t, len(a.ItemWidths), 5)
	for _, w := range a.ItemWidths {
		assert.Assert(t, w >= 1 && w <= 10)
	}
}

func TestReadDemandFile(t *testing.T) {
	input := "capacity 10\n# comment\n3 2\n4 1\n\n5 1\n"
	ins, err := ReadDemandFile(strings.NewReader(input))
	assert.NilError(t, err)
	assert.Equal(t, ins.Capacity, 10)
	assert.DeepEqual(t, ins.ItemWidths, []int{3, 4, 5})
	assert.DeepEqual(t, ins.Demands, []int{2, 1, 1})
}

func TestReadDemandFileMissingHeader(t *testing.T) {
	_, err := ReadDemandFile(strings.NewReader("3 2\n"))
	assert.ErrorContains(t, err, "capacity")
}
