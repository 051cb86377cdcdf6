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
	"log/slog"
	"math"
	"time"

	"github.com/snow-abstraction/colgen/lp"
)

// InternalDiving selects how aggressively a driver dives during pricing:
// off, root-node only, or at every node.
type InternalDiving int

const (
	NoInternalDiving InternalDiving = iota
	InternalDivingAtRoot
	InternalDivingEverywhere
)

// CommonParameters are the fields shared by ColumnGeneration, Greedy and
// LimitedDiscrepancySearch (spec.md §6, "Parameters common to all
// drivers").
type CommonParameters struct {
	Timer Timer

	// Logger is the sink for diagnostic events, defaulting to slog.Default()
	// when nil. The drivers in this package do not write any events to it.
	Logger *slog.Logger

	// NewLPBackend constructs a fresh LP backend for a CG call. Required.
	NewLPBackend lp.NewFunc

	NewSolutionCallback func(Solution)
	NewBoundCallback     func(bound float64)

	DummyColumnObjectiveCoefficient float64
	ColumnPool                      []*Column
	InitialColumns                  []*Column
	FixedColumns                    []ColumnValue
	InternalDiving                  InternalDiving
}

func (p CommonParameters) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Output is the result type common to all drivers (spec.md §6, "Output
// fields").
type Output struct {
	Solution             Solution
	RelaxationSolution    Solution
	Bound                float64
	DummyColumnObjectiveCoefficient float64
	NumberOfColumnGenerationIterations int
	Columns              []*Column

	TimeLpSolve time.Duration
	TimePricing time.Duration
}

// SolutionValue returns the output's incumbent objective value, or NaN if
// no feasible solution was found.
func (o Output) SolutionValue() float64 {
	if !o.Solution.Feasible() {
		return math.NaN()
	}
	return o.Solution.ObjectiveValue()
}

// AbsoluteOptimalityGap returns |solution.ObjectiveValue - bound|, or NaN
// when there is no feasible solution yet.
func (o Output) AbsoluteOptimalityGap() float64 {
	if !o.Solution.Feasible() {
		return math.NaN()
	}
	d := o.Solution.ObjectiveValue() - o.Bound
	if d < 0 {
		d = -d
	}
	return d
}

// RelativeOptimalityGap returns AbsoluteOptimalityGap / max(|bound|, 1), or
// NaN when there is no feasible solution yet. This is the relative
// counterpart of the original's relative_optimality_gap; it is guarded
// against division by a near-zero bound.
func (o Output) RelativeOptimalityGap() float64 {
	if !o.Solution.Feasible() {
		return math.NaN()
	}
	denom := o.Bound
	if denom < 0 {
		denom = -denom
	}
	if denom < 1 {
		denom = 1
	}
	return o.AbsoluteOptimalityGap() / denom
}

// LogSummary writes one structured log line per field of the output,
// replacing the original's AlgorithmFormatter stdout table with this
// module's slog-based ambient logging convention.
func (o Output) LogSummary(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("column generation summary",
		"feasible", o.Solution.Feasible(),
		"objective_value", o.SolutionValue(),
		"bound", o.Bound,
		"absolute_optimality_gap", o.AbsoluteOptimalityGap(),
		"iterations", o.NumberOfColumnGenerationIterations,
		"dummy_column_objective_coefficient", o.DummyColumnObjectiveCoefficient,
		"time_lpsolve", o.TimeLpSolve,
		"time_pricing", o.TimePricing)
}
