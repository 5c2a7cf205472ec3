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
)

// joinSequence flattens the run merge into one result per matching pair,
// outer-element-major with inner elements in original input order.
type joinSequence[TO, TI, K, R any] struct {
	merge    *runMerge[TO, TI, K]
	result   func(TO, TI) R
	curOuter *Group[K, TO]
	curMatch *Group[K, TI]
	outerIdx int
	innerIdx int
	err      error
	mClosed  bool
	closed   bool
}

// Join merge-joins two sequences sorted by the key type's natural order,
// yielding one result per matching pair. Outer elements with no match
// yield nothing.
func Join[TO, TI any, K cmp.Ordered, R any](outer Sequence[TO], inner Sequence[TI], outerKeySelector func(TO) K, innerKeySelector func(TI) K, resultSelector func(TO, TI) R) (Sequence[R], error) {
	return JoinFunc(outer, inner, outerKeySelector, innerKeySelector, resultSelector, Natural[K]())
}

// JoinFunc is like Join but joins under an explicit comparer.
func JoinFunc[TO, TI, K, R any](outer Sequence[TO], inner Sequence[TI], outerKeySelector func(TO) K, innerKeySelector func(TI) K, resultSelector func(TO, TI) R, comparer Comparer[K]) (Sequence[R], error) {
	if resultSelector == nil {
		return nil, errors.New("resultSelector is required")
	}
	merge, err := newRunMerge(outer, inner, outerKeySelector, innerKeySelector, comparer)
	if err != nil {
		return nil, err
	}
	return &joinSequence[TO, TI, K, R]{
		merge:  merge,
		result: resultSelector,
	}, nil
}

func (s *joinSequence[TO, TI, K, R]) fail(err error) error {
	s.err = err
	s.curOuter = nil
	s.curMatch = nil
	if !s.mClosed {
		s.mClosed = true
		_ = s.merge.close()
	}
	return err
}

func (s *joinSequence[TO, TI, K, R]) Next(ctx context.Context) (R, error) {
	var zero R
	if s.closed {
		return zero, ErrClosed
	}
	if s.err != nil {
		return zero, s.err
	}

	for {
		if s.curOuter != nil && s.outerIdx < s.curOuter.Len() {
			if s.innerIdx < s.curMatch.Len() {
				pair := s.result(s.curOuter.At(s.outerIdx), s.curMatch.At(s.innerIdx))
				s.innerIdx++
				recordYield(ctx, "join")
				return pair, nil
			}
			s.outerIdx++
			s.innerIdx = 0
			continue
		}

		outerRun, match, err := s.merge.nextRun(ctx)
		if err != nil {
			if IsOrderViolation(err) {
				recordViolation(ctx, "join")
			}
			return zero, s.fail(err)
		}
		if match.Len() == 0 {
			// Unmatched outer run produces no pairs at all.
			continue
		}
		s.curOuter = outerRun
		s.curMatch = match
		s.outerIdx = 0
		s.innerIdx = 0
	}
}

// Close releases both underlying sequences. It is safe to call more than
// once.
func (s *joinSequence[TO, TI, K, R]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.curOuter = nil
	s.curMatch = nil
	if s.mClosed {
		return nil
	}
	s.mClosed = true
	return s.merge.close()
}
