// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package ordered

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Next after a sequence has been closed.
var ErrClosed = errors.New("sequence is closed")

// OrderViolationError reports an element whose key compared strictly below
// an already-observed key, breaking the sortedness precondition. Position
// is the zero-based index of the offending element within the input the
// violation was detected on.
//
// Once a sequence has reported an OrderViolationError, it is failed: every
// subsequent Next returns the same error.
type OrderViolationError struct {
	// Position is the index of the offending element.
	Position int64
}

func (e *OrderViolationError) Error() string {
	return fmt.Sprintf("sort order violated at element %d: key is less than preceding key", e.Position)
}

// IsOrderViolation reports whether err is (or wraps) an OrderViolationError.
func IsOrderViolation(err error) bool {
	var ove *OrderViolationError
	return errors.As(err, &ove)
}
