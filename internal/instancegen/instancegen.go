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

// Package instancegen generates and reads cutting-stock instances for
// tests and the demo CLIs, adapted from the teacher's random
// set-cover-instance generator (data.go's MakeRandomInstance) and MPS
// reader (readMPS.go) retargeted to this module's one domain driver,
// github.com/snow-abstraction/colgen/cuttingstock.
package instancegen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/snow-abstraction/colgen/cuttingstock"
)

// MakeRandomInstance returns a random cutting-stock instance with
// numberOfItemTypes item types, a roll of the given capacity, item widths
// drawn uniformly from [1, capacity] and demands drawn uniformly from
// [1, maxDemand], in the same "seeded rand.Rand, one field at a time"
// style as the teacher's MakeRandomInstance.
func MakeRandomInstance(numberOfItemTypes, capacity, maxDemand int, seed int64) cuttingstock.Instance {
	gen := rand.New(rand.NewSource(seed))

	ins := cuttingstock.Instance{
		Capacity:   capacity,
		ItemWidths: make([]int, numberOfItemTypes),
		Demands:    make([]int, numberOfItemTypes),
	}
	for i := 0; i < numberOfItemTypes; i++ {
		ins.ItemWidths[i] = 1 + gen.Intn(capacity)
		ins.Demands[i] = 1 + gen.Intn(maxDemand)
	}
	return ins
}

// ReadDemandFile reads a small whitespace-delimited cutting-stock demand
// file: a first line "capacity <int>", followed by one "<width> <demand>"
// line per item type. This continues the teacher's readInstance habit
// (cmd/solve_sc/main.go dispatching on file extension between JSON and
// MPS) of supporting more than one instance file format; this is this
// module's second format alongside plain JSON, playing the role the
// teacher's readMPS.go plays for weighted-exact-cover instances.
func ReadDemandFile(r io.Reader) (cuttingstock.Instance, error) {
	scanner := bufio.NewScanner(r)
	var ins cuttingstock.Instance
	lineNo := 0
	haveCapacity := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if !haveCapacity {
			if len(fields) != 2 || fields[0] != "capacity" {
				return cuttingstock.Instance{}, fmt.Errorf("instancegen: line %d: expected \"capacity <int>\"", lineNo)
			}
			capacity, err := strconv.Atoi(fields[1])
			if err != nil {
				return cuttingstock.Instance{}, fmt.Errorf("instancegen: line %d: invalid capacity: %w", lineNo, err)
			}
			ins.Capacity = capacity
			haveCapacity = true
			continue
		}

		if len(fields) != 2 {
			return cuttingstock.Instance{}, fmt.Errorf("instancegen: line %d: expected \"<width> <demand>\"", lineNo)
		}
		width, err := strconv.Atoi(fields[0])
		if err != nil {
			return cuttingstock.Instance{}, fmt.Errorf("instancegen: line %d: invalid width: %w", lineNo, err)
		}
		demand, err := strconv.Atoi(fields[1])
		if err != nil {
			return cuttingstock.Instance{}, fmt.Errorf("instancegen: line %d: invalid demand: %w", lineNo, err)
		}
		ins.ItemWidths = append(ins.ItemWidths, width)
		ins.Demands = append(ins.Demands, demand)
	}
	if err := scanner.Err(); err != nil {
		return cuttingstock.Instance{}, err
	}
	if !haveCapacity {
		return cuttingstock.Instance{}, fmt.Errorf("instancegen: missing \"capacity <int>\" header line")
	}
	return ins, nil
}
