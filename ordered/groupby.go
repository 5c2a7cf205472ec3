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
	"cmp"
	"context"
	"errors"
	"io"
)

// groupBySequence collapses each maximal run of equal-key elements into one
// result. Only the run currently being assembled is buffered.
type groupBySequence[T, K, E, R any] struct {
	source    Sequence[T]
	key       func(T) K
	elem      func(T) E
	result    func(*Group[K, E]) R
	cmp       Comparer[K]
	cur       *Group[K, E]
	pos       int64
	err       error
	srcClosed bool
	closed    bool
}

// GroupBy partitions source into contiguous equal-key runs under the key
// type's natural order, yielding one Group per run. Keys of successive
// groups are strictly increasing; a key below the current run's key fails
// the stream and abandons the run in progress.
func GroupBy[T any, K cmp.Ordered](source Sequence[T], keySelector func(T) K) (Sequence[*Group[K, T]], error) {
	return GroupBySelect(source, keySelector, identity[T])
}

// GroupBySelect is like GroupBy but stores elementSelector(elem) in each
// group instead of the element itself.
func GroupBySelect[T any, K cmp.Ordered, E any](source Sequence[T], keySelector func(T) K, elementSelector func(T) E) (Sequence[*Group[K, E]], error) {
	if elementSelector == nil {
		return nil, errors.New("elementSelector is required")
	}
	return GroupByFunc(source, keySelector, elementSelector, group[K, E], Natural[K]())
}

// GroupByResult is like GroupBySelect but maps each completed group
// through resultSelector instead of yielding the group itself.
func GroupByResult[T any, K cmp.Ordered, E, R any](source Sequence[T], keySelector func(T) K, elementSelector func(T) E, resultSelector func(*Group[K, E]) R) (Sequence[R], error) {
	return GroupByFunc(source, keySelector, elementSelector, resultSelector, Natural[K]())
}

// GroupByFunc is the full form: explicit element projection, group result
// mapping, and comparer. The convenience forms all route through it.
func GroupByFunc[T, K, E, R any](source Sequence[T], keySelector func(T) K, elementSelector func(T) E, resultSelector func(*Group[K, E]) R, comparer Comparer[K]) (Sequence[R], error) {
	if source == nil {
		return nil, errors.New("source is required")
	}
	if keySelector == nil {
		return nil, errors.New("keySelector is required")
	}
	if elementSelector == nil {
		return nil, errors.New("elementSelector is required")
	}
	if resultSelector == nil {
		return nil, errors.New("resultSelector is required")
	}
	if comparer == nil {
		return nil, errors.New("comparer is required")
	}

	return &groupBySequence[T, K, E, R]{
		source: source,
		key:    keySelector,
		elem:   elementSelector,
		result: resultSelector,
		cmp:    comparer,
	}, nil
}

func identity[T any](t T) T { return t }

// group is the result selector used when the caller wants the Group itself.
func group[K, E any](g *Group[K, E]) *Group[K, E] { return g }

func (s *groupBySequence[T, K, E, R]) fail(err error) error {
	s.err = err
	s.cur = nil
	s.closeSource()
	return err
}

func (s *groupBySequence[T, K, E, R]) closeSource() {
	if s.srcClosed {
		return
	}
	s.srcClosed = true
	_ = s.source.Close()
}

func (s *groupBySequence[T, K, E, R]) Next(ctx context.Context) (R, error) {
	var zero R
	if s.closed {
		return zero, ErrClosed
	}
	if s.err != nil {
		return zero, s.err
	}

	for {
		elem, err := s.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if s.cur == nil {
					return zero, s.fail(io.EOF)
				}
				// Flush the final run; the next call reports EOF.
				done := s.cur
				s.cur = nil
				s.err = io.EOF
				s.closeSource()
				recordGroup(ctx, "groupby")
				return s.result(done), nil
			}
			return zero, s.fail(err)
		}

		key := s.key(elem)
		if s.cur == nil {
			s.cur = newGroup(key, s.elem(elem))
			s.pos++
			continue
		}

		switch c := s.cmp(key, s.cur.key); {
		case c == 0:
			s.cur.elems = append(s.cur.elems, s.elem(elem))
			s.pos++
		case c > 0:
			done := s.cur
			s.cur = newGroup(key, s.elem(elem))
			s.pos++
			recordGroup(ctx, "groupby")
			return s.result(done), nil
		default:
			recordViolation(ctx, "groupby")
			return zero, s.fail(&OrderViolationError{Position: s.pos})
		}
	}
}

// Close releases the underlying source and drops the run in progress.
func (s *groupBySequence[T, K, E, R]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cur = nil
	if s.srcClosed {
		return nil
	}
	s.srcClosed = true
	return s.source.Close()
}
