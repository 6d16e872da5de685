package cmdqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAdvancesByExactSize(t *testing.T) {
	b := NewBuffer(1024)
	sizes := []int{8, 16, 3, 100}
	total := 0
	for _, n := range sizes {
		p, err := b.Alloc(n)
		require.NoError(t, err)
		assert.Len(t, p, n)
		total += n
		assert.Equal(t, total, b.Used())
	}
}

func TestAllocOverflowKeepsUsed(t *testing.T) {
	b := NewBuffer(128)
	_, err := b.Alloc(64)
	require.NoError(t, err)

	free := b.Cap() - b.Used() - ReservedTail
	_, err = b.Alloc(free + 1)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, 64, b.Used())

	_, err = b.Alloc(free)
	assert.NoError(t, err)
}

func TestAllocBadSize(t *testing.T) {
	b := NewBuffer(128)
	_, err := b.Alloc(128 - ReservedTail + 1)
	assert.ErrorIs(t, err, ErrBadSize)
	assert.Zero(t, b.Used())
}

func TestRecordsReadBackInOrder(t *testing.T) {
	b := NewBuffer(1024)
	require.NoError(t, b.Append(DrawBuffer, DrawBufferCmd{Buffer: 0}))
	require.NoError(t, b.Append(SetColor, SetColorCmd{Color: [4]float32{1, 0.5, 0, 1}}))
	require.NoError(t, b.Append(DrawSurfs, DrawSurfsCmd{View: 1, First: 10, Count: 5}))
	require.NoError(t, b.Append(Finish, FinishCmd{}))
	require.NoError(t, b.Seal(7))

	r := NewReader(b.Bytes())
	var ids []ID
	for {
		id, payload, err := r.Next()
		require.NoError(t, err)
		ids = append(ids, id)
		switch id {
		case SetColor:
			var c SetColorCmd
			require.NoError(t, Decode(payload, &c))
			assert.Equal(t, float32(0.5), c.Color[1])
		case DrawSurfs:
			var c DrawSurfsCmd
			require.NoError(t, Decode(payload, &c))
			assert.Equal(t, DrawSurfsCmd{View: 1, First: 10, Count: 5}, c)
		case SwapBuffers:
			var c SwapBuffersCmd
			require.NoError(t, Decode(payload, &c))
			assert.Equal(t, int32(7), c.Frame)
		}
		if id == EndOfList {
			break
		}
	}
	assert.Equal(t, []ID{DrawBuffer, SetColor, DrawSurfs, Finish, SwapBuffers, EndOfList}, ids)
}

func TestSealFitsAfterFullBuffer(t *testing.T) {
	b := NewBuffer(256)
	for b.Append(SetColor, SetColorCmd{}) == nil {
	}
	require.NoError(t, b.Seal(1))
	assert.LessOrEqual(t, b.Used(), b.Cap())

	assert.ErrorIs(t, b.Append(Finish, nil), ErrSealed)
	assert.ErrorIs(t, b.Seal(1), ErrSealed)
}

func TestTinyBufferStillSeals(t *testing.T) {
	for _, capacity := range []int{-1, 0, ReservedTail - 1} {
		b := NewBuffer(capacity)
		assert.Equal(t, ReservedTail, b.Cap())
		assert.ErrorIs(t, b.Append(Finish, nil), ErrBadSize)
		require.NoError(t, b.Seal(3))
		assert.Equal(t, ReservedTail, b.Used())
	}

	q := New(0)
	data, err := q.End()
	require.NoError(t, err)
	assert.Len(t, data, ReservedTail)
}

func TestReaderTruncated(t *testing.T) {
	b := NewBuffer(256)
	require.NoError(t, b.Append(SetColor, SetColorCmd{}))
	_, _, err := NewReader(b.Bytes()[:12]).Next()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestQueueToggleKeepsPrevious(t *testing.T) {
	q := New(512)
	require.NoError(t, q.Add(DrawBuffer, DrawBufferCmd{}))
	first, err := q.End()
	require.NoError(t, err)
	n := len(first)

	q.Toggle()
	assert.Zero(t, q.Current().Used())
	assert.Equal(t, n, q.Previous().Used())
	assert.True(t, q.Previous().Sealed())
	assert.Equal(t, 1, q.Frame())
}

func TestQueueTryAddDrops(t *testing.T) {
	q := New(64)
	dropped := 0
	for i := 0; i < 10; i++ {
		if !q.TryAdd(SetColor, SetColorCmd{}) {
			dropped++
		}
	}
	st := q.Stats()
	assert.Equal(t, dropped, st.Dropped)
	assert.Positive(t, dropped)
	assert.Contains(t, st.String(), "dropped")

	err := q.Add(SetColor, SetColorCmd{})
	assert.ErrorIs(t, err, ErrOverflow)
}
