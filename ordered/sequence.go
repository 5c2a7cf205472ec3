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
	"errors"
	"fmt"
	"io"
	"iter"
)

// Sequence is a pull-based, forward-only stream of elements.
// Next returns io.EOF when the stream is exhausted. A sequence is read
// exactly once; re-enumeration after exhaustion or failure is not
// supported.
type Sequence[T any] interface {
	// Next returns the next element.
	// Returns io.EOF when there are no more elements.
	// Returns error for any read failures.
	Next(ctx context.Context) (T, error)

	// Close releases any resources held by the sequence.
	Close() error
}

// sliceSequence serves elements from an in-memory slice.
type sliceSequence[T any] struct {
	items  []T
	pos    int
	closed bool
}

// FromSlice returns a Sequence that yields the elements of items in order.
// The slice is not copied; the caller must not mutate it while reading.
func FromSlice[T any](items []T) Sequence[T] {
	return &sliceSequence[T]{items: items}
}

func (s *sliceSequence[T]) Next(_ context.Context) (T, error) {
	var zero T
	if s.closed || s.pos >= len(s.items) {
		return zero, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	return item, nil
}

func (s *sliceSequence[T]) Close() error {
	s.closed = true
	s.items = nil
	return nil
}

// pullSequence adapts a push-style iter.Seq to the pull interface.
type pullSequence[T any] struct {
	next   func() (T, bool)
	stop   func()
	closed bool
}

// FromSeq returns a Sequence that yields the elements of seq.
// Closing the sequence stops the underlying iterator.
func FromSeq[T any](seq iter.Seq[T]) Sequence[T] {
	next, stop := iter.Pull(seq)
	return &pullSequence[T]{next: next, stop: stop}
}

func (s *pullSequence[T]) Next(_ context.Context) (T, error) {
	var zero T
	if s.closed {
		return zero, ErrClosed
	}
	item, ok := s.next()
	if !ok {
		return zero, io.EOF
	}
	return item, nil
}

func (s *pullSequence[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stop()
	return nil
}

// concatSequence reads from multiple sequences one after another.
type concatSequence[T any] struct {
	seqs    []Sequence[T]
	current int
	closed  bool
}

// Concat returns a Sequence that yields all elements of each input
// sequence in turn. The inputs are closed when the returned sequence is
// closed.
func Concat[T any](seqs ...Sequence[T]) (Sequence[T], error) {
	for i, seq := range seqs {
		if seq == nil {
			return nil, fmt.Errorf("sequence at index %d is nil", i)
		}
	}
	return &concatSequence[T]{seqs: seqs}, nil
}

func (c *concatSequence[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if c.closed {
		return zero, ErrClosed
	}
	for c.current < len(c.seqs) {
		item, err := c.seqs[c.current].Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.current++
				continue
			}
			return zero, fmt.Errorf("sequence %d: %w", c.current, err)
		}
		return item, nil
	}
	return zero, io.EOF
}

func (c *concatSequence[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for i, seq := range c.seqs {
		if err := seq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close sequence %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Collect drains seq into a slice and closes it. On error the elements
// read so far are returned along with the error; the close error, if any,
// is joined in.
func Collect[T any](ctx context.Context, seq Sequence[T]) ([]T, error) {
	var out []T
	var readErr error
	for {
		item, err := seq.Next(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
		out = append(out, item)
	}
	if err := seq.Close(); err != nil {
		readErr = errors.Join(readErr, err)
	}
	return out, readErr
}
