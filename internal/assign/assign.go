// Package assign aligns the words of two phrases by solving the assignment
// problem over a synonym-overlap cost matrix.
package assign

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Hungarian returns a minimum-cost perfect matching of a square cost matrix
// as row -> column. It panics with mat.ErrShape on a non-square matrix; use
// PadSquare first.
//
// This is the O(n^3) potentials formulation of Kuhn-Munkres.
func Hungarian(cost mat.Matrix) []int {
	n, c := cost.Dims()
	if n != c {
		panic(mat.ErrShape)
	}
	if n == 0 {
		return nil
	}

	inf := math.Inf(1)
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)   // p[j]: row matched to column j (1-based, 0 = free)
	way := make([]int, n+1) // previous column on the augmenting path
	minv := make([]float64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowToCol := make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			rowToCol[p[j]-1] = j - 1
		}
	}
	return rowToCol
}

// PadSquare pads a rectangular matrix with zero rows or columns.
func PadSquare(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	return PadTo(m, max(r, c))
}

// PadTo embeds m in the top-left corner of a size x size zero matrix.
// size must be at least as large as both dimensions of m.
func PadTo(m mat.Matrix, size int) *mat.Dense {
	r, c := m.Dims()
	if size < r || size < c {
		panic(mat.ErrShape)
	}
	out := mat.NewDense(size, size, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(i, j))
		}
	}
	return out
}

// OverlapMatrix builds the len(ys) x len(xs) cost matrix whose cell (i, j)
// is the negated number of synonyms shared by ys[i] and xs[j]. Both sides
// must be non-empty.
func OverlapMatrix(xs, ys []map[string]bool) *mat.Dense {
	m := mat.NewDense(len(ys), len(xs), nil)
	for i, y := range ys {
		for j, x := range xs {
			m.Set(i, j, -float64(shared(x, y)))
		}
	}
	return m
}

// AssignedMean pads cost to a square, solves the assignment and returns the
// mean of the negated matched costs over slots. Padding cells contribute 0.
func AssignedMean(cost mat.Matrix, slots int) float64 {
	if slots == 0 {
		return 0
	}
	r, c := cost.Dims()
	if r == 0 || c == 0 {
		return 0
	}

	square := PadSquare(cost)
	total := 0.0
	for row, col := range Hungarian(square) {
		total -= square.At(row, col)
	}
	return total / float64(slots)
}

// MeanOverlap is the word-alignment score of two phrases given the synonym
// set of each content word. Either side empty scores 0.
func MeanOverlap(xs, ys []map[string]bool) float64 {
	if len(xs) == 0 || len(ys) == 0 {
		return 0
	}
	return AssignedMean(OverlapMatrix(xs, ys), max(len(xs), len(ys)))
}

func shared(a, b map[string]bool) int {
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}
