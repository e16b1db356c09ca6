package join_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vecvcg/grid"
	"vecvcg/join"
)

func mustGrid(t *testing.T, shape []int, values []int64) *grid.Grid[int64] {
	t.Helper()
	g, err := grid.New(shape, values)
	require.NoError(t, err)
	return g
}

func TestBuild_DimMismatch(t *testing.T) {
	a := mustGrid(t, []int{3}, []int64{0, 1, 2})
	b := mustGrid(t, []int{2, 2}, []int64{0, 1, 2, 3})
	_, err := join.Build[int64](a, b, []int{5, 5}, join.DefaultFlags())
	assert.ErrorIs(t, err, join.ErrDimMismatch)
}

// TestBuild_1DConvolution checks the max-plus convolution of two small
// 1-D valuations by hand: A = [0,2,3], B = [0,1]. The joint value at y is
// max over a of A[a]+B[y-a] for feasible a.
//
//	y=0: a=0 -> 0+0=0
//	y=1: a=0 -> 0+1=1; a=1 -> 2+0=2  => 2, arg=1
//	y=2: a=1 -> 2+1=3; a=2 -> 3+0=3  => 3, arg=1 (lex-smallest tie)
//	y=3: a=2 -> 3+1=4               => 4, arg=2
func TestBuild_1DConvolution(t *testing.T) {
	a := mustGrid(t, []int{3}, []int64{0, 2, 3})
	b := mustGrid(t, []int{2}, []int64{0, 1})

	jg, err := join.Build[int64](a, b, []int{10}, join.DefaultFlags())
	require.NoError(t, err)

	assert.Equal(t, []int{4}, jg.Shape())
	assert.Equal(t, int64(4), jg.Max())
	assert.Equal(t, []int{3}, jg.ArgMax())

	for y, want := range map[int]int64{0: 0, 1: 2, 2: 3, 3: 4} {
		v, err := jg.At([]int{y})
		require.NoError(t, err)
		assert.Equal(t, want, v, "y=%d", y)
	}

	argAt2, err := jg.ArgAt([]int{2})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, argAt2, "tie at y=2 must pick the lexicographically smallest a")
}

func TestBuild_ShapeBoundTruncation(t *testing.T) {
	a := mustGrid(t, []int{3}, []int64{0, 2, 3})
	b := mustGrid(t, []int{2}, []int64{0, 1})

	// Unbounded joint shape would be 3+2-1=4; m=1 caps it to m+1=2.
	jg, err := join.Build[int64](a, b, []int{1}, join.DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, jg.Shape())
}

func TestBuild_FlagsAreValueEquivalent(t *testing.T) {
	a := mustGrid(t, []int{5}, []int64{0, 1, 3, 3, 5})
	b := mustGrid(t, []int{4}, []int64{0, 2, 2, 4})
	m := []int{20}

	baseline, err := join.Build[int64](a, b, m, join.DefaultFlags())
	require.NoError(t, err)

	variants := []join.Flags{
		join.NewFlags(join.WithFilter(true)),
		join.NewFlags(join.WithFilterGrad(true)),
		join.NewFlags(join.WithBruteOpt(true)),
		join.NewFlags(join.WithCount(true), join.WithBuildTime(true), join.WithQueryTime(true)),
		join.NewFlags(join.WithMethod(1)),
		join.NewFlags(join.WithChunkSize(1)),
	}
	for _, flags := range variants {
		jg, err := join.Build[int64](a, b, m, flags)
		require.NoError(t, err)
		assert.Equal(t, baseline.Shape(), jg.Shape())

		total := 1
		for _, s := range jg.Shape() {
			total *= s
		}
		x := []int{0}
		for i := 0; i < total; i++ {
			want, _ := baseline.At(x)
			got, _ := jg.At(x)
			assert.Equal(t, want, got, "flags=%+v y=%v", flags, x)
			if i < total-1 {
				grid.NextIndex(x, jg.Shape())
			}
		}
	}
}

func TestBuild_RecoverArgsSumsToY(t *testing.T) {
	a := mustGrid(t, []int{3}, []int64{0, 2, 3})
	b := mustGrid(t, []int{2}, []int64{0, 1})
	c := mustGrid(t, []int{2}, []int64{0, 4})

	ab, err := join.Build[int64](a, b, []int{10}, join.DefaultFlags())
	require.NoError(t, err)
	abc, err := join.Build[int64](ab, c, []int{10}, join.DefaultFlags())
	require.NoError(t, err)

	y := abc.ArgMax()
	legs, err := abc.RecoverArgs(y)
	require.NoError(t, err)
	require.Len(t, legs, 3)

	sum := 0
	for _, leg := range legs {
		require.Len(t, leg, 1)
		sum += leg[0]
	}
	assert.Equal(t, y[0], sum)
}
