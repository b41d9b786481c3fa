// Package algebra provides the reference tensor-algebra collaborator: a
// dense real matrix artifact and an Algebra implementation over it. The
// resolution engine depends only on the site.Artifact / site.Algebra
// contracts; this package exists so handlers have something concrete to
// build and the repository is usable end to end.
package algebra

import (
	"fmt"

	"github.com/latticeworks/sitekit/internal/site"
)

// Matrix is a square dense real matrix artifact. A freshly allocated
// Matrix is empty (no storage); the first Set allocates. Emptiness is the
// signal the engine uses to detect populate-handler success, so handlers
// must not allocate storage for names they do not define.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix returns an empty n×n matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n}
}

// FromRows builds a matrix from row-major values. All rows must have
// length len(rows).
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("algebra: matrix must have at least one row")
	}
	m := &Matrix{n: n, data: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("algebra: row %d has %d entries, want %d", i, len(row), n)
		}
		copy(m.data[i*n:(i+1)*n], row)
	}
	return m, nil
}

// Dim returns the matrix dimension.
func (m *Matrix) Dim() int { return m.n }

// IsEmpty reports whether the matrix has no storage yet.
func (m *Matrix) IsEmpty() bool { return m.data == nil }

// At returns the entry at 0-based (i, j). An empty matrix reads as zero.
func (m *Matrix) At(i, j int) float64 {
	if m.data == nil {
		return 0
	}
	return m.data[i*m.n+j]
}

// Set writes the entry at 0-based (i, j), allocating storage on first use.
func (m *Matrix) Set(i, j int, v float64) {
	if m.data == nil {
		m.data = make([]float64, m.n*m.n)
	}
	m.data[i*m.n+j] = v
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{n: m.n}
	if m.data != nil {
		out.data = make([]float64, len(m.data))
		copy(out.data, m.data)
	}
	return out
}

// Rows returns the matrix as row-major slices. An empty matrix returns nil.
func (m *Matrix) Rows() [][]float64 {
	if m.data == nil {
		return nil
	}
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = make([]float64, m.n)
		copy(rows[i], m.data[i*m.n:(i+1)*m.n])
	}
	return rows
}

// Dense is the site.Algebra implementation over Matrix artifacts.
type Dense struct{}

// Empty returns an empty matrix shaped for ind.
func (Dense) Empty(ind site.Index) site.Artifact {
	return NewMatrix(ind.Dim())
}

// Product returns the matrix product a·b. Operand order is preserved;
// matrix multiplication is not commutative.
func (Dense) Product(a, b site.Artifact) (site.Artifact, error) {
	am, ok := a.(*Matrix)
	if !ok {
		return nil, fmt.Errorf("algebra: left operand is %T, want *Matrix", a)
	}
	bm, ok := b.(*Matrix)
	if !ok {
		return nil, fmt.Errorf("algebra: right operand is %T, want *Matrix", b)
	}
	if am.IsEmpty() || bm.IsEmpty() {
		return nil, fmt.Errorf("algebra: product of empty matrix")
	}
	if am.n != bm.n {
		return nil, fmt.Errorf("algebra: dimension mismatch %d vs %d", am.n, bm.n)
	}

	n := am.n
	out := &Matrix{n: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += am.data[i*n+k] * bm.data[k*n+j]
			}
			out.data[i*n+j] = sum
		}
	}
	return out, nil
}
