package alloc

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestArrayLayout(t *testing.T) {
	l, err := ArrayLayout(8, 8, 20)
	require.NoError(t, err)
	require.Equal(t, Layout{Size: 160, Align: 8}, l)

	l, err = ArrayLayout(4, 4, 0)
	require.NoError(t, err)
	require.Equal(t, uintptr(0), l.Size)

	// zero-sized elements never overflow
	l, err = ArrayLayout(0, 1, math.MaxInt)
	require.NoError(t, err)
	require.Equal(t, uintptr(0), l.Size)
}

func TestArrayLayoutErrors(t *testing.T) {
	_, err := ArrayLayout(8, 8, -1)
	require.ErrorIs(t, err, ErrLayout)

	_, err = ArrayLayout(8, 3, 1)
	require.ErrorIs(t, err, ErrLayout)

	_, err = ArrayLayout(8, 0, 1)
	require.ErrorIs(t, err, ErrLayout)

	_, err = ArrayLayout(8, 8, math.MaxInt/4)
	require.ErrorIs(t, err, ErrLayout)

	_, err = ArrayLayout(1<<40, 8, 1<<40)
	require.ErrorIs(t, err, ErrLayout)
}

func TestLayoutFor(t *testing.T) {
	type pair struct {
		A uint32
		B uint8
	}
	l, err := LayoutFor[pair](10)
	require.NoError(t, err)
	require.Equal(t, Layout{Size: 80, Align: 4}, l)

	_, err = LayoutFor[uint64](math.MaxInt)
	require.ErrorIs(t, err, ErrLayout)
}

func TestLayoutSizeMatchesStride(t *testing.T) {
	condition := func(n uint16) bool {
		l, err := LayoutFor[int64](int(n))
		return err == nil && l.Size == uintptr(n)*8 && l.Align == 8
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}
