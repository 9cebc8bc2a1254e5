package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_SetClearBit(t *testing.T) {
	s := New(10)
	require.True(t, s.IsZero())
	s.Set(3)
	s.Set(7)
	require.True(t, s.Bit(3))
	require.True(t, s.Bit(7))
	require.False(t, s.Bit(4))
	require.Equal(t, 2, s.PopCount())
	s.Clear(3)
	require.False(t, s.Bit(3))
	require.Equal(t, 1, s.PopCount())
}

func TestSet_Superset(t *testing.T) {
	a := New(8)
	a.Set(1)
	a.Set(2)
	a.Set(5)
	b := New(8)
	b.Set(1)
	b.Set(5)
	require.True(t, a.Superset(b))
	require.False(t, b.Superset(a))
}

func TestSet_EqualAndClone(t *testing.T) {
	a := New(8)
	a.Set(2)
	c := a.Clone()
	require.True(t, a.Equal(c))
	c.Set(4)
	require.False(t, a.Equal(c))
	require.False(t, a.Bit(4))
}

func TestSet_OrAnd(t *testing.T) {
	a := New(8)
	a.Set(1)
	b := New(8)
	b.Set(2)
	a.Or(b)
	require.True(t, a.Bit(1))
	require.True(t, a.Bit(2))

	a.And(b)
	require.False(t, a.Bit(1))
	require.True(t, a.Bit(2))
}

func TestSet_KeyDistinguishesContents(t *testing.T) {
	a := New(8)
	a.Set(1)
	b := New(8)
	b.Set(2)
	require.NotEqual(t, a.Key(), b.Key())

	c := New(8)
	c.Set(1)
	require.Equal(t, a.Key(), c.Key())
}
