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
	"iter"
	"slices"
)

// Group is one maximal run of equal-key elements, in their original input
// order. A Group handed out by a transform is never appended to again, so
// consumers may hold it and iterate it any number of times.
type Group[K, E any] struct {
	key   K
	elems []E
}

// newGroup starts a run with its first element.
func newGroup[K, E any](key K, first E) *Group[K, E] {
	return &Group[K, E]{key: key, elems: []E{first}}
}

// emptyGroup returns a run with a key but no elements, used by GroupJoin
// for outer elements with no inner match.
func emptyGroup[K, E any](key K) *Group[K, E] {
	return &Group[K, E]{key: key}
}

// Key returns the key shared by every element of the group.
func (g *Group[K, E]) Key() K { return g.key }

// Len returns the number of elements in the group.
func (g *Group[K, E]) Len() int { return len(g.elems) }

// At returns the i-th element of the group in original input order.
func (g *Group[K, E]) At(i int) E { return g.elems[i] }

// All returns an iterator over the group's elements. The iterator may be
// ranged more than once.
func (g *Group[K, E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range g.elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Slice returns a copy of the group's elements.
func (g *Group[K, E]) Slice() []E {
	return slices.Clone(g.elems)
}
