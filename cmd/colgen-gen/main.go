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

// colgen-gen outputs a random cutting-stock instance to standard out as
// JSON, the same role the teacher's cmd/generate_instance plays for
// weighted exact cover instances.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/snow-abstraction/colgen/internal/instancegen"
	"github.com/snow-abstraction/colgen/internal/util"
)

func main() {
	fs := util.NewFlagSet(`Usage: %s -seed 1 -items 10 -capacity 20 -maxDemand 5

%s outputs a random cutting-stock instance to standard out as JSON.

Arguments:
`)
	seed := fs.Int64("seed", 1, "seed for the random generator")
	items := fs.Int("items", 10, "number of item types")
	capacity := fs.Int("capacity", 20, "roll capacity")
	maxDemand := fs.Int("maxDemand", 5, "maximum demand per item type")
	fs.Parse()

	if *items <= 0 {
		log.Fatalln("items must be positive")
	}
	if *capacity <= 0 {
		log.Fatalln("capacity must be positive")
	}
	if *maxDemand <= 0 {
		log.Fatalln("maxDemand must be positive")
	}

	ins := instancegen.MakeRandomInstance(*items, *capacity, *maxDemand, *seed)

	b, err := json.MarshalIndent(ins, "", "  ")
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Fprintln(os.Stdout, string(b))
}
