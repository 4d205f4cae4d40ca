package similarity

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a square, symmetric similarity matrix. Setting (i, j) also sets
// (j, i), so the matrix cannot become asymmetric.
type Matrix struct {
	n   int
	sym *mat.SymDense
}

// NewMatrix returns an n×n matrix with ones on the diagonal and zeros
// everywhere else.
func NewMatrix(n int) *Matrix {
	if n <= 0 {
		return &Matrix{}
	}
	sym := mat.NewSymDense(n, nil)
	for i := range n {
		sym.SetSym(i, i, 1)
	}
	return &Matrix{n: n, sym: sym}
}

// Len returns the dimension of the matrix.
func (m *Matrix) Len() int {
	return m.n
}

// At returns the similarity of sentences i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Set stores the similarity of sentences i and j, clamped to [0, 1].
func (m *Matrix) Set(i, j int, v float64) {
	m.sym.SetSym(i, j, clamp(v))
}

// CosineMatrix computes the pairwise cosine similarity of all vectors.
//
// Each pair is computed once and mirrored. A vector with zero norm (a
// sentence without any token) has similarity 0 to every other sentence.
// The diagonal is 1 by construction.
func CosineMatrix(v *Vectors) *Matrix {
	m := NewMatrix(v.Len())
	for i := 0; i < v.Len(); i++ {
		for j := i + 1; j < v.Len(); j++ {
			m.Set(i, j, cosine(v.rows[i], v.rows[j], v.norms[i], v.norms[j]))
		}
	}
	return m
}

func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// rounding can push identical vectors a hair past 1
func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
