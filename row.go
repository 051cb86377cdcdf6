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

// Row is a master-problem constraint. LowerBound and UpperBound may be
// +/-Inf. CoefficientLowerBound and CoefficientUpperBound are declarative
// hints: every column the framework ever installs on this row is promised
// to carry a coefficient within that range, which lets the engine decide
// when a row has become saturated (see the column-generation preprocessing
// step) without inspecting every column.
type Row struct {
	LowerBound             float64
	UpperBound             float64
	CoefficientLowerBound  float64
	CoefficientUpperBound  float64
}

// NewRow returns a Row with the library's default coefficient bounds
// ([0, 1]), matching the defaults used throughout the reference pricing
// problems (set-partitioning-style rows).
func NewRow(lowerBound, upperBound float64) Row {
	return Row{
		LowerBound:            lowerBound,
		UpperBound:            upperBound,
		CoefficientLowerBound: 0,
		CoefficientUpperBound: 1,
	}
}

func (r Row) validate() error {
	if r.LowerBound > r.UpperBound {
		return &InvalidArgumentError{Msg: "row lower bound must be <= upper bound"}
	}
	if r.CoefficientLowerBound > r.CoefficientUpperBound {
		return &InvalidArgumentError{Msg: "row coefficient lower bound must be <= coefficient upper bound"}
	}
	if math.IsNaN(r.LowerBound) || math.IsNaN(r.UpperBound) {
		return &InvalidArgumentError{Msg: "row bounds must not be NaN"}
	}
	return nil
}
