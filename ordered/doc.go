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

// Package ordered provides single-pass transforms over sequences that are
// already sorted by a key: validating projection, run grouping, merge join,
// and merge group-join. Sortedness is a precondition, never something this
// package establishes; an element whose key compares below an
// already-observed key fails the stream at that exact point.
//
// # Core Interface
//
// All transforms consume and produce the same pull-based stream shape:
//
//	type Sequence[T any] interface {
//	    Next(ctx context.Context) (T, error)  // io.EOF when exhausted
//	    Close() error
//	}
//
// Sequences are forward-only and read exactly once. A transform owns its
// input sequences and closes them when it is closed, when it fails, and
// when it reaches end of input, so abandoning a stream early never leaks
// the underlying source.
//
// # Transforms
//
// Each transform comes in two forms, following the slices package
// convention: a plain form for keys satisfying cmp.Ordered that uses the
// key type's natural order, and a Func form taking an explicit Comparer.
//
//   - Select / SelectFunc: project each element while verifying
//     non-decreasing key order.
//   - GroupBy / GroupBySelect / GroupByResult / GroupByFunc: collapse each
//     maximal run of equal-key elements into one result. Only one run is
//     buffered at a time, so memory is bounded by the largest run rather
//     than the input size.
//   - Join / JoinFunc: merge-join two sorted sequences, one result per
//     matching pair.
//   - GroupJoin / GroupJoinFunc: merge-join producing one result per outer
//     element, paired with the full (possibly empty) group of matching
//     inner elements.
//
// Example, pairing rows from two sorted streams:
//
//	pairs, err := ordered.Join(outer, inner,
//	    func(o Order) int64 { return o.CustomerID },
//	    func(c Customer) int64 { return c.ID },
//	    func(o Order, c Customer) Invoice { return NewInvoice(o, c) },
//	)
//	if err != nil {
//	    return err
//	}
//	defer pairs.Close()
//
//	for {
//	    inv, err := pairs.Next(ctx)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    process(inv)
//	}
//
// # Failure Model
//
// Constructor arguments are validated eagerly: a nil sequence or selector
// is reported before any element is read. Ordering violations are reported
// lazily through Next as a *OrderViolationError at the offending element;
// everything yielded before the violation stands, and every Next after it
// returns the same error.
package ordered
