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
	"io"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	ctx := context.Background()
	seq := FromSlice([]string{"a", "b", "c"})

	got, err := Collect(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	_, err = seq.Next(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestFromSeq(t *testing.T) {
	ctx := context.Background()
	seq := FromSeq(slices.Values([]int{3, 1, 4}))

	got, err := Collect(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 4}, got)
}

func TestFromSeq_CloseStopsIterator(t *testing.T) {
	ctx := context.Background()
	seq := FromSeq(slices.Values([]int{1, 2, 3}))

	_, err := seq.Next(ctx)
	require.NoError(t, err)

	require.NoError(t, seq.Close())
	require.NoError(t, seq.Close())

	_, err = seq.Next(ctx)
	require.ErrorIs(t, err, ErrClosed)
}

func TestConcat(t *testing.T) {
	ctx := context.Background()
	first := newMockSequence(1, 2)
	second := newMockSequence[int]()
	third := newMockSequence(3)

	seq, err := Concat[int](first, second, third)
	require.NoError(t, err)

	got, err := Collect(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	assert.Equal(t, 1, first.closeCount)
	assert.Equal(t, 1, second.closeCount)
	assert.Equal(t, 1, third.closeCount)
}

func TestConcat_NilSequence(t *testing.T) {
	_, err := Concat[int](newMockSequence(1), nil)
	require.Error(t, err)
}

func TestConcat_ErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("read failed")
	bad := newMockSequence(1)
	bad.failErr = boom
	bad.failAfter = 0

	seq, err := Concat[int](bad)
	require.NoError(t, err)
	defer seq.Close()

	_, err = seq.Next(ctx)
	require.ErrorIs(t, err, boom)
}

func TestCollect_ReturnsPartialOnError(t *testing.T) {
	ctx := context.Background()
	source := newMockSequence(1, 2, 7, 3)

	seq, err := Select(source, func(v int) int { return v }, func(k, v int) int { return v })
	require.NoError(t, err)

	got, err := Collect(ctx, seq)
	assert.True(t, IsOrderViolation(err))
	assert.Equal(t, []int{1, 2, 7}, got)
}
