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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupJoin_OneResultPerOuterElement(t *testing.T) {
	ctx := context.Background()
	outer := newMockSequence(1, 2, 4)
	inner := newMockSequence(1, 2, 2, 3)

	seq, err := GroupJoin(outer, inner,
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) pair[int, []int] { return pair[int, []int]{a: o, b: g.Slice()} })
	require.NoError(t, err)

	results, err := Collect(ctx, seq)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, pair[int, []int]{a: 1, b: []int{1}}, results[0])
	assert.Equal(t, pair[int, []int]{a: 2, b: []int{2, 2}}, results[1])
	assert.Equal(t, 4, results[2].a)
	assert.Empty(t, results[2].b, "unmatched outer element gets an empty group")
}

func TestGroupJoin_SharedGroupAcrossOuterRun(t *testing.T) {
	ctx := context.Background()
	outer := newMockSequence(5, 5, 5)
	inner := newMockSequence(5, 5)

	seq, err := GroupJoin(outer, inner,
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) *Group[int, int] { return g })
	require.NoError(t, err)

	groups, err := Collect(ctx, seq)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Every outer element of the run receives the same group value, and it
	// can be enumerated again for each of them.
	assert.Same(t, groups[0], groups[1])
	assert.Same(t, groups[1], groups[2])
	for _, g := range groups {
		assert.Equal(t, []int{5, 5}, g.Slice())
	}
}

func TestGroupJoin_EmptyOuterNeverReadsInner(t *testing.T) {
	ctx := context.Background()
	inner := newMockSequence(1, 2, 3)

	seq, err := GroupJoin(newMockSequence[int](), inner,
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) int { return o })
	require.NoError(t, err)
	defer seq.Close()

	_, err = seq.Next(ctx)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, int64(0), inner.reads)
	assert.Equal(t, 1, inner.closeCount, "inner is still released on termination")
}

func TestGroupJoin_SkipsUnmatchedInnerRuns(t *testing.T) {
	ctx := context.Background()
	outer := newMockSequence(10, 30)
	inner := newMockSequence(5, 10, 20, 20, 30)

	seq, err := GroupJoin(outer, inner,
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) pair[int, int] { return pair[int, int]{a: o, b: g.Len()} })
	require.NoError(t, err)

	results, err := Collect(ctx, seq)
	require.NoError(t, err)

	// Inner runs 5 and 20,20 fall between outer keys and are discarded.
	assert.Equal(t, []pair[int, int]{{10, 1}, {30, 1}}, results)
}

func TestGroupJoin_ViolationInInnerPropagates(t *testing.T) {
	ctx := context.Background()
	outer := newMockSequence(1, 2)
	inner := newMockSequence(1, 3, 2)

	seq, err := GroupJoin(outer, inner,
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) int { return o })
	require.NoError(t, err)
	defer seq.Close()

	got, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	_, err = seq.Next(ctx)
	assert.True(t, IsOrderViolation(err))

	_, err2 := seq.Next(ctx)
	assert.Equal(t, err, err2)
}

func TestGroupJoin_ViolationInOuterPropagates(t *testing.T) {
	ctx := context.Background()
	seq, err := GroupJoin(newMockSequence(2, 1), newMockSequence(1, 2),
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) int { return o })
	require.NoError(t, err)
	defer seq.Close()

	_, err = seq.Next(ctx)
	assert.True(t, IsOrderViolation(err))
}

func TestGroupJoinFunc_CustomComparer(t *testing.T) {
	ctx := context.Background()
	descending := func(a, b int) int { return b - a }

	seq, err := GroupJoinFunc(newMockSequence(9, 5), newMockSequence(9, 9, 1),
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) pair[int, int] { return pair[int, int]{a: o, b: g.Len()} },
		descending)
	require.NoError(t, err)

	results, err := Collect(ctx, seq)
	require.NoError(t, err)
	assert.Equal(t, []pair[int, int]{{9, 2}, {5, 0}}, results)
}

func TestGroupJoin_ConstructorValidation(t *testing.T) {
	key := func(v int) int { return v }
	result := func(o int, g *Group[int, int]) int { return o }
	outer := newMockSequence(1)
	inner := newMockSequence(1)

	_, err := GroupJoin[int, int, int, int](nil, inner, key, key, result)
	require.Error(t, err)

	_, err = GroupJoin[int, int, int, int](outer, nil, key, key, result)
	require.Error(t, err)

	_, err = GroupJoin(outer, inner, nil, key, result)
	require.Error(t, err)

	_, err = GroupJoin(outer, inner, key, nil, result)
	require.Error(t, err)

	_, err = GroupJoin[int, int, int, int](outer, inner, key, key, nil)
	require.Error(t, err)

	_, err = GroupJoinFunc(outer, inner, key, key, result, nil)
	require.Error(t, err)

	assert.Equal(t, int64(0), outer.reads)
	assert.Equal(t, int64(0), inner.reads)
}

func TestGroupJoin_CloseReleasesBothSources(t *testing.T) {
	ctx := context.Background()
	outer := newMockSequence(1, 2)
	inner := newMockSequence(1, 2)

	seq, err := GroupJoin(outer, inner,
		func(v int) int { return v },
		func(v int) int { return v },
		func(o int, g *Group[int, int]) int { return o })
	require.NoError(t, err)

	_, err = seq.Next(ctx)
	require.NoError(t, err)

	require.NoError(t, seq.Close())
	require.NoError(t, seq.Close())
	assert.Equal(t, 1, outer.closeCount)
	assert.Equal(t, 1, inner.closeCount)
}
