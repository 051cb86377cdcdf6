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

// colgen-solve reads a cutting-stock instance (JSON or a small demand
// file), runs one of the three drivers (column generation, greedy diving
// or limited discrepancy search) over it and prints the resulting Output,
// the same role the teacher's cmd/solve_sc plays for weighted exact cover
// instances.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/snow-abstraction/colgen"
	"github.com/snow-abstraction/colgen/cuttingstock"
	"github.com/snow-abstraction/colgen/internal/instancegen"
	"github.com/snow-abstraction/colgen/internal/util"
	"github.com/snow-abstraction/colgen/lp"
)

func usage() string {
	return `Usage: %s -instance instance.json -algorithm cg

%s reads in a cutting-stock instance file, solves it and prints the
resulting Output to standard out.

Arguments:
`
}

func main() {
	fs := util.NewFlagSet(usage())
	filename := fs.String("instance", "",
		"instance filename. The file should end in .json (or .JSON) or .demand.")
	algorithm := fs.String("algorithm", "cg", "algorithm to run: cg, greedy or lds")
	logLevel := fs.String("logLevel", "Info", "log level (Debug, Info, Warn, Error)")
	timeLimit := fs.Duration("timeLimit", 0, "time limit (0 = unlimited)")
	discrepancyLimit := fs.Int("discrepancyLimit", 2, "maximum discrepancy for the lds algorithm")
	fs.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(*logLevel),
	})))

	if *filename == "" {
		fmt.Fprintln(os.Stderr, "Please supply the instance file name")
		os.Exit(1)
	}

	ins, err := readInstance(*filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read instance due to error: %s\n", err)
		os.Exit(1)
	}

	model, err := cuttingstock.NewModel(ins)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build model due to error: %s\n", err)
		os.Exit(1)
	}

	common := colgen.CommonParameters{
		Timer:                           colgen.NewTimer(*timeLimit),
		NewLPBackend:                    lp.NewBackend,
		DummyColumnObjectiveCoefficient: ins.DummyColumnObjectiveCoefficient(),
	}
	cgParams := colgen.ColumnGenerationParameters{
		CommonParameters:                common,
		MaximumNumberOfIterations:       -1,
		StaticWentgesSmoothingParameter: 0.5,
		SelfAdjustingWentgesSmoothing:   true,
	}

	var out colgen.Output
	switch *algorithm {
	case "cg":
		out, err = colgen.ColumnGeneration(model, cgParams)
	case "greedy":
		out, err = colgen.Greedy(model, colgen.GreedyParameters{ColumnGenerationParameters: cgParams})
	case "lds":
		out, err = colgen.LimitedDiscrepancySearch(model, colgen.LimitedDiscrepancySearchParameters{
			ColumnGenerationParameters: cgParams,
			MaximumDiscrepancy:         *discrepancyLimit,
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown algorithm %q: must be cg, greedy or lds\n", *algorithm)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to solve instance due to error: %s\n", err)
		os.Exit(1)
	}

	out.LogSummary(slog.Default())
	fmt.Printf("feasible: %t\nobjective: %g\nbound: %g\n", out.Solution.Feasible(), out.SolutionValue(), out.Bound)
}

func readInstance(filename string) (cuttingstock.Instance, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return readJSONInstance(filename)
	case ".demand":
		f, err := os.Open(filename)
		if err != nil {
			return cuttingstock.Instance{}, err
		}
		defer f.Close()
		return instancegen.ReadDemandFile(f)
	}
	return cuttingstock.Instance{}, fmt.Errorf(
		"the file extension should be .json, .JSON or .demand, not %s", ext)
}

func readJSONInstance(filename string) (cuttingstock.Instance, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return cuttingstock.Instance{}, err
	}
	var ins cuttingstock.Instance
	if err := json.Unmarshal(b, &ins); err != nil {
		return cuttingstock.Instance{}, err
	}
	return ins, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "Debug":
		return slog.LevelDebug
	case "Info":
		return slog.LevelInfo
	case "Warn":
		return slog.LevelWarn
	case "Error":
		return slog.LevelError
	}
	slog.Error("unknown log level. defaulting to Info")
	return slog.LevelInfo
}
