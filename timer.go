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

import "time"

// Timer is the cooperative cancellation mechanism described in spec.md
// §5: the only way a caller requests early termination is a poll of
// NeedsToEnd between the long-running lp.Backend.Solve and
// PricingSolver.SolvePricing calls. There is no forced interruption.
type Timer struct {
	deadline time.Time
	hasLimit bool
}

// NewTimer returns a Timer that expires after d. A non-positive d means
// no limit (NeedsToEnd always returns false).
func NewTimer(d time.Duration) Timer {
	if d <= 0 {
		return Timer{}
	}
	return Timer{deadline: time.Now().Add(d), hasLimit: true}
}

// NeedsToEnd reports whether the timer has expired.
func (t Timer) NeedsToEnd() bool {
	return t.hasLimit && time.Now().After(t.deadline)
}
