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

import "cmp"

// Comparer is a total order over keys. It returns a negative number when
// a sorts before b, zero when they are equal, and a positive number when
// a sorts after b. It must be consistent with the order the caller claims
// the input already has.
type Comparer[K any] func(a, b K) int

// Natural returns the Comparer for K's natural order. The plain transform
// constructors (Select, GroupBy, Join, GroupJoin) use it when no comparer
// is given.
func Natural[K cmp.Ordered]() Comparer[K] {
	return cmp.Compare[K]
}
