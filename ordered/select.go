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

// selectSequence projects each element while verifying non-decreasing key
// order.
type selectSequence[T, K, R any] struct {
	source    Sequence[T]
	key       func(T) K
	result    func(K, T) R
	cmp       Comparer[K]
	prev      K
	started   bool
	pos       int64
	err       error
	srcClosed bool
	closed    bool
}

// Select produces a lazy projection of source using the key type's natural
// order to verify that keys never decrease. Elements already yielded before
// a violation stand; the violating element fails the stream.
func Select[T any, K cmp.Ordered, R any](source Sequence[T], keySelector func(T) K, resultSelector func(K, T) R) (Sequence[R], error) {
	return SelectFunc(source, keySelector, resultSelector, Natural[K]())
}

// SelectFunc is like Select but verifies order with an explicit comparer.
func SelectFunc[T, K, R any](source Sequence[T], keySelector func(T) K, resultSelector func(K, T) R, comparer Comparer[K]) (Sequence[R], error) {
	if source == nil {
		return nil, errors.New("source is required")
	}
	if keySelector == nil {
		return nil, errors.New("keySelector is required")
	}
	if resultSelector == nil {
		return nil, errors.New("resultSelector is required")
	}
	if comparer == nil {
		return nil, errors.New("comparer is required")
	}

	return &selectSequence[T, K, R]{
		source: source,
		key:    keySelector,
		result: resultSelector,
		cmp:    comparer,
	}, nil
}

// fail records a terminal error, releases the source, and returns the error.
func (s *selectSequence[T, K, R]) fail(err error) error {
	s.err = err
	s.closeSource()
	return err
}

func (s *selectSequence[T, K, R]) closeSource() {
	if s.srcClosed {
		return
	}
	s.srcClosed = true
	_ = s.source.Close()
}

func (s *selectSequence[T, K, R]) Next(ctx context.Context) (R, error) {
	var zero R
	if s.closed {
		return zero, ErrClosed
	}
	if s.err != nil {
		return zero, s.err
	}

	elem, err := s.source.Next(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return zero, s.fail(io.EOF)
		}
		return zero, s.fail(err)
	}

	key := s.key(elem)
	if s.started && s.cmp(key, s.prev) < 0 {
		recordViolation(ctx, "select")
		return zero, s.fail(&OrderViolationError{Position: s.pos})
	}
	s.prev = key
	s.started = true
	s.pos++

	recordYield(ctx, "select")
	return s.result(key, elem), nil
}

// Close releases the underlying source. It is safe to call more than once.
func (s *selectSequence[T, K, R]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.srcClosed {
		return nil
	}
	s.srcClosed = true
	return s.source.Close()
}
