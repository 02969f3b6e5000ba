package data_struct

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"slices"
	"testing"
)

func fill(t *testing.T, values ...string) *Queue {
	t.Helper()
	q := NewQueue()
	for _, v := range values {
		require.NoError(t, q.InsertTail(v))
	}
	return q
}

func TestQueue_Insert(t *testing.T) {
	t.Run("InsertHeadSingle", func(t *testing.T) {
		q := NewQueue()
		require.NoError(t, q.InsertHead("a"))

		assert.Equal(t, 1, q.Size())
		assert.Same(t, q.head, q.tail)
		assert.Nil(t, q.tail.next)
		assert.Equal(t, "a", q.head.Value)
	})

	t.Run("InsertTailSingle", func(t *testing.T) {
		q := NewQueue()
		require.NoError(t, q.InsertTail("a"))

		assert.Equal(t, 1, q.Size())
		assert.Same(t, q.head, q.tail)
	})

	t.Run("InsertHeadMultiple", func(t *testing.T) {
		q := NewQueue()
		require.NoError(t, q.InsertHead("1"))
		require.NoError(t, q.InsertHead("2"))
		require.NoError(t, q.InsertHead("3"))

		assert.Equal(t, []string{"3", "2", "1"}, q.Values())
		tail, ok := q.Tail()
		assert.True(t, ok)
		assert.Equal(t, "1", tail)
	})

	t.Run("Mixed", func(t *testing.T) {
		q := NewQueue()
		require.NoError(t, q.InsertTail("middle"))
		require.NoError(t, q.InsertHead("front"))
		require.NoError(t, q.InsertTail("back"))

		assert.Equal(t, []string{"front", "middle", "back"}, q.Values())
		assert.Equal(t, "[front -> middle -> back]", q.String())
		assert.NoError(t, q.Validate())
	})

	t.Run("EmptyString", func(t *testing.T) {
		q := NewQueue()
		require.NoError(t, q.InsertTail(""))

		assert.Equal(t, 1, q.Size())
		v, err := q.RemoveHead(nil)
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})
}

func TestQueue_NilQueue(t *testing.T) {
	var q *Queue

	assert.ErrorIs(t, q.InsertHead("a"), ErrNilQueue)
	assert.ErrorIs(t, q.InsertTail("a"), ErrNilQueue)
	_, err := q.RemoveHead(make([]byte, 8))
	assert.ErrorIs(t, err, ErrNilQueue)
	assert.Equal(t, 0, q.Size())
	assert.True(t, q.IsEmpty())
	assert.Nil(t, q.Values())
	assert.Equal(t, "[]", q.String())
	assert.ErrorIs(t, q.Validate(), ErrNilQueue)

	assert.NotPanics(t, func() {
		q.Reverse()
		q.Sort()
		q.Free()
	})
}

func TestQueue_RemoveHead(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		q := NewQueue()
		buf := []byte("xyz")

		_, err := q.RemoveHead(buf)
		assert.ErrorIs(t, err, ErrEmptyQueue)
		assert.Equal(t, []byte("xyz"), buf)
		assert.Equal(t, 0, q.Size())
		assert.NoError(t, q.Validate())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		q := NewQueue()
		require.NoError(t, q.InsertHead("hello world"))

		buf := make([]byte, 64)
		v, err := q.RemoveHead(buf)
		require.NoError(t, err)
		assert.Equal(t, "hello world", v)
		assert.Equal(t, "hello world\x00", string(buf[:12]))
		assert.Nil(t, q.head)
		assert.Nil(t, q.tail)
	})

	t.Run("Truncated", func(t *testing.T) {
		q := fill(t, "hello")
		buf := make([]byte, 3)

		v, err := q.RemoveHead(buf)
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
		assert.Equal(t, []byte{'h', 'e', 0}, buf)
	})

	t.Run("CapacityOne", func(t *testing.T) {
		q := fill(t, "hello")
		buf := []byte{'x'}

		_, err := q.RemoveHead(buf)
		require.NoError(t, err)
		assert.Equal(t, []byte{0}, buf)
	})

	t.Run("ZeroFillsBuffer", func(t *testing.T) {
		q := fill(t, "ab")
		buf := []byte("zzzzzz")

		_, err := q.RemoveHead(buf)
		require.NoError(t, err)
		assert.Equal(t, []byte{'a', 'b', 0, 0, 0, 0}, buf)
	})

	t.Run("Order", func(t *testing.T) {
		q := fill(t, "5", "7", "9")

		for _, want := range []string{"5", "7", "9"} {
			v, err := q.RemoveHead(nil)
			require.NoError(t, err)
			assert.Equal(t, want, v)
			assert.NoError(t, q.Validate())
		}
		assert.True(t, q.IsEmpty())

		require.NoError(t, q.InsertTail("11"))
		head, _ := q.Head()
		tail, _ := q.Tail()
		assert.Equal(t, "11", head)
		assert.Equal(t, "11", tail)
	})
}

func TestQueue_Free(t *testing.T) {
	q := fill(t, "a", "b", "c")
	first := q.head

	q.Free()
	assert.Equal(t, 0, q.Size())
	assert.Nil(t, q.head)
	assert.Nil(t, q.tail)
	assert.Nil(t, first.next)
	assert.NoError(t, q.Validate())

	assert.NotPanics(t, q.Free)
	assert.Equal(t, 0, q.Size())
}

func TestQueue_Reverse(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		q := NewQueue()
		q.Reverse()
		assert.NoError(t, q.Validate())
	})

	t.Run("Single", func(t *testing.T) {
		q := fill(t, "a")
		q.Reverse()
		assert.Equal(t, []string{"a"}, q.Values())
		assert.Same(t, q.head, q.tail)
	})

	t.Run("Many", func(t *testing.T) {
		q := fill(t, "1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
		first, last := q.head, q.tail

		q.Reverse()
		assert.Equal(t, []string{"10", "9", "8", "7", "6", "5", "4", "3", "2", "1"}, q.Values())
		assert.Same(t, last, q.head)
		assert.Same(t, first, q.tail)
		assert.NoError(t, q.Validate())

		q.Reverse()
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, q.Values())
	})

	t.Run("InsertAfterReverse", func(t *testing.T) {
		q := fill(t, "a", "b")
		q.Reverse()
		require.NoError(t, q.InsertTail("z"))
		assert.Equal(t, []string{"b", "a", "z"}, q.Values())
	})
}

func TestQueue_RandomOperations(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	q := NewQueue()
	var model []string
	inserted, removed := 0, 0

	for i := 0; i < 5000; i++ {
		value := string(rune('a' + r.IntN(26)))
		switch r.IntN(5) {
		case 0:
			require.NoError(t, q.InsertHead(value))
			model = append([]string{value}, model...)
			inserted++
		case 1:
			require.NoError(t, q.InsertTail(value))
			model = append(model, value)
			inserted++
		case 2:
			v, err := q.RemoveHead(nil)
			if len(model) == 0 {
				require.ErrorIs(t, err, ErrEmptyQueue)
				continue
			}
			require.NoError(t, err)
			require.Equal(t, model[0], v)
			model = model[1:]
			removed++
		case 3:
			q.Reverse()
			for a, b := 0, len(model)-1; a < b; a, b = a+1, b-1 {
				model[a], model[b] = model[b], model[a]
			}
		case 4:
			if r.IntN(10) == 0 {
				q.Sort()
				slices.Sort(model)
			}
		}

		require.Equal(t, inserted-removed, q.Size())
		require.NoError(t, q.Validate())
	}
	if len(model) == 0 {
		model = nil
	}
	assert.Equal(t, model, q.Values())
}
