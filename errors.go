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

// InvalidArgumentError is returned when a driver is called with parameters
// or a Model that is malformed in a way the caller could have checked
// up front: a zero dummy-column objective coefficient, a negative row
// index, or a column coefficient outside its declared row bounds.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Msg)
}

// InfeasibleMasterError is returned when the LP backend proves the
// restricted master infeasible. It is fatal to the current column
// generation call.
type InfeasibleMasterError struct {
	Msg string
}

func (e *InfeasibleMasterError) Error() string {
	return fmt.Sprintf("infeasible master: %s", e.Msg)
}

// PricingContractViolationError is returned when a pricing oracle returns a
// column referencing an unknown row, or a coefficient outside the row's
// declared range.
type PricingContractViolationError struct {
	Msg string
}

func (e *PricingContractViolationError) Error() string {
	return fmt.Sprintf("pricing contract violation: %s", e.Msg)
}

// LpBackendError wraps a backend-specific failure bubbled up unchanged.
type LpBackendError struct {
	Err error
}

func (e *LpBackendError) Error() string {
	return fmt.Sprintf("lp backend error: %s", e.Err)
}

func (e *LpBackendError) Unwrap() error {
	return e.Err
}

// resourceExhausted is a sentinel, not surfaced to callers as an error:
// per the error handling design, a timer expiry is a cooperative stop
// caught at every loop boundary. The drivers stop by leaving their loops
// when Timer.NeedsToEnd reports true; no driver returns or checks this
// value.
type resourceExhausted struct{}

func (resourceExhausted) Error() string { return "resource exhausted: timer expired" }

var errResourceExhausted = &resourceExhausted{}
