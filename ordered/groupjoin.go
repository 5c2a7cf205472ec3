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
	"fmt"
	"io"
)

// runMerge is the two-pointer core shared by GroupJoin and Join. It walks
// two grouped streams in lockstep, holding at most one outer run and one
// inner run at a time. Inner runs whose key has fallen behind the current
// outer key are discarded, never buffered.
type runMerge[TO, TI, K any] struct {
	outer       Sequence[*Group[K, TO]]
	inner       Sequence[*Group[K, TI]]
	cmp         Comparer[K]
	curInner    *Group[K, TI]
	innerPrimed bool
	innerDone   bool
}

// newRunMerge validates the shared join arguments and wires both inputs
// through run grouping.
func newRunMerge[TO, TI, K any](outer Sequence[TO], inner Sequence[TI], outerKey func(TO) K, innerKey func(TI) K, comparer Comparer[K]) (*runMerge[TO, TI, K], error) {
	if outer == nil {
		return nil, errors.New("outer is required")
	}
	if inner == nil {
		return nil, errors.New("inner is required")
	}
	if outerKey == nil {
		return nil, errors.New("outerKeySelector is required")
	}
	if innerKey == nil {
		return nil, errors.New("innerKeySelector is required")
	}
	if comparer == nil {
		return nil, errors.New("comparer is required")
	}

	outerGroups, err := GroupByFunc(outer, outerKey, identity[TO], group[K, TO], comparer)
	if err != nil {
		return nil, fmt.Errorf("failed to group outer sequence: %w", err)
	}
	innerGroups, err := GroupByFunc(inner, innerKey, identity[TI], group[K, TI], comparer)
	if err != nil {
		return nil, fmt.Errorf("failed to group inner sequence: %w", err)
	}

	return &runMerge[TO, TI, K]{
		outer: outerGroups,
		inner: innerGroups,
		cmp:   comparer,
	}, nil
}

// nextRun advances to the next outer run and returns it together with the
// inner run sharing its key, or an empty group when no inner run matches.
// Returns io.EOF once the outer stream is exhausted. The inner stream is
// not touched until the first outer run has been read.
func (m *runMerge[TO, TI, K]) nextRun(ctx context.Context) (*Group[K, TO], *Group[K, TI], error) {
	outerRun, err := m.outer.Next(ctx)
	if err != nil {
		return nil, nil, err
	}

	if !m.innerPrimed {
		m.innerPrimed = true
		if err := m.advanceInner(ctx); err != nil {
			return nil, nil, err
		}
	}
	for !m.innerDone && m.cmp(m.curInner.key, outerRun.key) < 0 {
		if err := m.advanceInner(ctx); err != nil {
			return nil, nil, err
		}
	}

	if !m.innerDone && m.cmp(m.curInner.key, outerRun.key) == 0 {
		return outerRun, m.curInner, nil
	}
	return outerRun, emptyGroup[K, TI](outerRun.key), nil
}

func (m *runMerge[TO, TI, K]) advanceInner(ctx context.Context) error {
	run, err := m.inner.Next(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			m.innerDone = true
			m.curInner = nil
			return nil
		}
		return err
	}
	m.curInner = run
	return nil
}

func (m *runMerge[TO, TI, K]) close() error {
	var errs []error
	if err := m.outer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close outer sequence: %w", err))
	}
	if err := m.inner.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close inner sequence: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// groupJoinSequence yields one result per outer element, pairing it with
// the full group of inner elements sharing its key. The same group value
// is handed to every outer element of a run.
type groupJoinSequence[TO, TI, K, R any] struct {
	merge    *runMerge[TO, TI, K]
	result   func(TO, *Group[K, TI]) R
	curOuter *Group[K, TO]
	curMatch *Group[K, TI]
	idx      int
	err      error
	mClosed  bool
	closed   bool
}

// GroupJoin merge-joins two sequences sorted by the key type's natural
// order, yielding one result per outer element together with the group of
// all matching inner elements. Outer elements with no match receive an
// empty group.
func GroupJoin[TO, TI any, K cmp.Ordered, R any](outer Sequence[TO], inner Sequence[TI], outerKeySelector func(TO) K, innerKeySelector func(TI) K, resultSelector func(TO, *Group[K, TI]) R) (Sequence[R], error) {
	return GroupJoinFunc(outer, inner, outerKeySelector, innerKeySelector, resultSelector, Natural[K]())
}

// GroupJoinFunc is like GroupJoin but joins under an explicit comparer.
func GroupJoinFunc[TO, TI, K, R any](outer Sequence[TO], inner Sequence[TI], outerKeySelector func(TO) K, innerKeySelector func(TI) K, resultSelector func(TO, *Group[K, TI]) R, comparer Comparer[K]) (Sequence[R], error) {
	if resultSelector == nil {
		return nil, errors.New("resultSelector is required")
	}
	merge, err := newRunMerge(outer, inner, outerKeySelector, innerKeySelector, comparer)
	if err != nil {
		return nil, err
	}
	return &groupJoinSequence[TO, TI, K, R]{
		merge:  merge,
		result: resultSelector,
	}, nil
}

func (s *groupJoinSequence[TO, TI, K, R]) fail(err error) error {
	s.err = err
	s.curOuter = nil
	s.curMatch = nil
	if !s.mClosed {
		s.mClosed = true
		_ = s.merge.close()
	}
	return err
}

func (s *groupJoinSequence[TO, TI, K, R]) Next(ctx context.Context) (R, error) {
	var zero R
	if s.closed {
		return zero, ErrClosed
	}
	if s.err != nil {
		return zero, s.err
	}

	if s.curOuter == nil || s.idx >= s.curOuter.Len() {
		outerRun, match, err := s.merge.nextRun(ctx)
		if err != nil {
			if IsOrderViolation(err) {
				recordViolation(ctx, "groupjoin")
			}
			return zero, s.fail(err)
		}
		s.curOuter = outerRun
		s.curMatch = match
		s.idx = 0
	}

	elem := s.curOuter.At(s.idx)
	s.idx++
	recordYield(ctx, "groupjoin")
	return s.result(elem, s.curMatch), nil
}

// Close releases both underlying sequences. It is safe to call more than
// once.
func (s *groupJoinSequence[TO, TI, K, R]) Close() error {
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
