package assign

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func set(words ...string) map[string]bool {
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}

func TestHungarianKnownMatrix(t *testing.T) {
	cost := mat.NewDense(3, 3, []float64{
		4, 1, 3,
		2, 0, 5,
		3, 2, 2,
	})
	assert.Equal(t, []int{1, 0, 2}, Hungarian(cost))
}

func TestHungarianMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.IntN(5)
		data := make([]float64, n*n)
		for i := range data {
			data[i] = -float64(rng.IntN(4))
		}
		cost := mat.NewDense(n, n, data)

		got := Hungarian(cost)
		require.Len(t, got, n)

		seen := make(map[int]bool)
		total := 0.0
		for row, col := range got {
			require.False(t, seen[col], "column assigned twice")
			seen[col] = true
			total += cost.At(row, col)
		}
		assert.Equal(t, bruteForceMin(cost), total, "trial %d", trial)
	}
}

func bruteForceMin(cost *mat.Dense) float64 {
	n, _ := cost.Dims()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := math.Inf(1)
	var walk func(k int)
	walk = func(k int) {
		if k == n {
			total := 0.0
			for row, col := range perm {
				total += cost.At(row, col)
			}
			best = math.Min(best, total)
			return
		}
		for i := k; i < n; i++ {
			perm[k], perm[i] = perm[i], perm[k]
			walk(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	walk(0)
	return best
}

func TestHungarianRejectsRectangular(t *testing.T) {
	assert.Panics(t, func() { Hungarian(mat.NewDense(2, 3, nil)) })
}

func TestPadSquare(t *testing.T) {
	tall := mat.NewDense(3, 1, []float64{-1, -2, -3})
	p := PadSquare(tall)
	r, c := p.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, -2.0, p.At(1, 0))
	assert.Equal(t, 0.0, p.At(1, 2))

	wide := mat.NewDense(1, 2, []float64{-1, -1})
	r, c = PadSquare(wide).Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
}

func TestMeanOverlap(t *testing.T) {
	xs := []map[string]bool{set("government", "authorities"), set("official")}
	ys := []map[string]bool{set("official", "functionary"), set("government", "authorities")}

	// Crossed alignment: ys[0]<->xs[1] (1 shared), ys[1]<->xs[0] (2 shared).
	assert.InDelta(t, 1.5, MeanOverlap(xs, ys), 1e-9)

	// A third unmatched word on one side spreads the same total over 3 slots.
	ys = append(ys, set("yesterday"))
	assert.InDelta(t, 1.0, MeanOverlap(xs, ys), 1e-9)

	assert.Zero(t, MeanOverlap(nil, ys))
	assert.Zero(t, MeanOverlap(xs, nil))
}

func TestAssignedMeanPaddingInvariant(t *testing.T) {
	cost := mat.NewDense(2, 3, []float64{
		-1, 0, -2,
		0, -3, 0,
	})
	want := AssignedMean(cost, 3)
	assert.InDelta(t, 5.0/3.0, want, 1e-9)

	for size := 3; size <= 7; size++ {
		assert.InDelta(t, want, AssignedMean(PadTo(cost, size), 3), 1e-9, "size %d", size)
	}
}

func TestAssignedMeanMonotoneInOverlap(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for trial := 0; trial < 30; trial++ {
		r, c := 1+rng.IntN(4), 1+rng.IntN(4)
		cost := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				cost.Set(i, j, -float64(rng.IntN(3)))
			}
		}
		slots := max(r, c)
		before := AssignedMean(cost, slots)

		i, j := rng.IntN(r), rng.IntN(c)
		cost.Set(i, j, cost.At(i, j)-1)
		after := AssignedMean(cost, slots)

		assert.GreaterOrEqual(t, after, before, "trial %d", trial)
	}
}
