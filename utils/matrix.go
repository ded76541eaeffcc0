package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a gonum dense matrix with the row-major access patterns used
// throughout the solver. DataP aliases the underlying storage.
type Matrix struct {
	M     *mat.Dense
	DataP []float64
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

func (m Matrix) Set(i, j int, val float64) Matrix {
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Copy() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	copy(R.DataP, m.DataP)
	return
}

func (m Matrix) Scale(a float64) Matrix {
	for i := range m.DataP {
		m.DataP[i] *= a
	}
	return m
}

func (m Matrix) Add(A Matrix) Matrix {
	for i, val := range A.DataP {
		m.DataP[i] += val
	}
	return m
}

func (m Matrix) Mul(A Matrix) (R Matrix) {
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

func (m Matrix) MulVec(b []float64) (x []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(b) != nc {
		err := fmt.Errorf("dimension mismatch in MulVec: nc = %d, len(b) = %d", nc, len(b))
		panic(err)
	}
	x = make([]float64, nr)
	out := mat.NewVecDense(nr, x)
	out.MulVec(m.M, mat.NewVecDense(nc, b))
	return
}

func (m Matrix) Row(i int) (r []float64) {
	var (
		_, nc = m.Dims()
	)
	r = make([]float64, nc)
	copy(r, m.M.RawRowView(i))
	return
}

func (m Matrix) Print(msgI ...string) (o string) {
	var (
		name = ""
	)
	if len(msgI) != 0 {
		name = msgI[0]
	}
	formatString := "%s = \n%8.5f\n"
	o = fmt.Sprintf(formatString, name, mat.Formatted(m.M, mat.Squeeze()))
	return
}

// LU holds a factorization reused across multiple right hand sides. The base
// circulation solve and all five derivative solves share one factorization.
type LU struct {
	lu *mat.LU
	n  int
}

// LUFactorize factors a square matrix, reporting singular or badly
// conditioned systems as errors rather than returning garbage.
func (m Matrix) LUFactorize() (f *LU, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("cannot factorize non-square matrix: %d x %d", nr, nc)
		return
	}
	f = &LU{lu: &mat.LU{}, n: nr}
	f.lu.Factorize(m.M)
	if cond := f.lu.Cond(); cond > 1.e12 {
		err = fmt.Errorf("matrix is singular or near-singular, condition number = %8.3e", cond)
		f = nil
	}
	return
}

// Solve returns x satisfying A x = b for the factored A.
func (f *LU) Solve(b []float64) (x []float64, err error) {
	if len(b) != f.n {
		err = fmt.Errorf("dimension mismatch in LU solve: n = %d, len(b) = %d", f.n, len(b))
		return
	}
	var (
		bV = mat.NewVecDense(f.n, b)
		xV = mat.NewVecDense(f.n, nil)
	)
	if err = f.lu.SolveVecTo(xV, false, bV); err != nil {
		err = fmt.Errorf("dense solve failed: %w", err)
		return
	}
	x = make([]float64, f.n)
	copy(x, xV.RawVector().Data)
	return
}
