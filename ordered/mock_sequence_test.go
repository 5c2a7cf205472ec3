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
	"context"
	"io"
)

// mockSequence is a test Sequence that tracks how many elements were
// pulled and how many times it was closed.
type mockSequence[T any] struct {
	items      []T
	index      int
	reads      int64
	closeCount int
	failAfter  int // fail after this many reads when failErr is set
	failErr    error
}

func newMockSequence[T any](items ...T) *mockSequence[T] {
	return &mockSequence[T]{items: items}
}

func (m *mockSequence[T]) Next(_ context.Context) (T, error) {
	var zero T
	if m.failErr != nil && m.reads >= int64(m.failAfter) {
		return zero, m.failErr
	}
	if m.index >= len(m.items) {
		return zero, io.EOF
	}
	item := m.items[m.index]
	m.index++
	m.reads++
	return item, nil
}

func (m *mockSequence[T]) Close() error {
	m.closeCount++
	return nil
}

// pair is a generic two-field result used by join tests.
type pair[A, B any] struct {
	a A
	b B
}

func makePair[A, B any](a A, b B) pair[A, B] {
	return pair[A, B]{a: a, b: b}
}

// pet matches the grouping example used across the grouping tests.
type pet struct {
	Age  int
	Name string
}
