package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	var (
		a = Vec3{1, 2, 3}
		b = Vec3{4, 5, 6}
	)
	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, 32., a.Dot(b))
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))
	assert.True(t, near(math.Sqrt(14), a.Norm()))
	assert.True(t, near(1, a.Normalize().Norm()))
	assert.Equal(t, Vec3{1, -2, 3}, a.FlipY())
	assert.Equal(t, Vec3{2.5, 3.5, 4.5}, a.Midpoint(b))
	// Cross of parallel vectors is zero
	assert.Equal(t, Vec3{}, a.Cross(a.Scale(2)))
}

func TestMat3(t *testing.T) {
	var (
		theta  = 30. * math.Pi / 180.
		sa, ca = math.Sin(theta), math.Cos(theta)
		R      = Mat3{{ca, 0, sa}, {0, 1, 0}, {-sa, 0, ca}}
	)
	// Rotation preserves length
	v := Vec3{1, 2, 3}
	assert.True(t, near(v.Norm(), R.MulVec(v).Norm()))
	// R^T R = I
	I := R.Transpose().Mul(R)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			expected := 0.
			if i == j {
				expected = 1.
			}
			assert.True(t, near(expected, I[i][j]))
		}
	}
	assert.Equal(t, v, Mat3Ident().MulVec(v))
}

func TestMatrixLU(t *testing.T) {
	var (
		A = NewMatrix(3, 3, []float64{2, 1, 1, 1, 3, 2, 1, 0, 0})
	)
	f, err := A.LUFactorize()
	assert.NoError(t, err)
	// One factorization, multiple right hand sides
	x1, err := f.Solve([]float64{4, 5, 6})
	assert.NoError(t, err)
	assert.True(t, nearVec([]float64{6, 15, -23}, x1, 1.e-10))
	x2, err := f.Solve([]float64{1, 0, 0})
	assert.NoError(t, err)
	b2 := A.MulVec(x2)
	assert.True(t, nearVec([]float64{1, 0, 0}, b2, 1.e-10))

	// Singular system is reported, not solved
	S := NewMatrix(2, 2, []float64{1, 2, 2, 4})
	_, err = S.LUFactorize()
	assert.Error(t, err)

	// Non-square refusal
	_, err = NewMatrix(2, 3).LUFactorize()
	assert.Error(t, err)
}

func TestPartitionMap(t *testing.T) {
	for _, np := range []int{1, 2, 3, 7} {
		for _, max := range []int{1, 5, 12, 100} {
			pm := NewPartitionMap(np, max)
			total := 0
			last := 0
			for n := 0; n < pm.ParallelDegree; n++ {
				kMin, kMax := pm.GetBucketRange(n)
				assert.Equal(t, last, kMin) // contiguous coverage
				assert.Equal(t, kMax-kMin, pm.GetBucketDimension(n))
				total += kMax - kMin
				last = kMax
			}
			assert.Equal(t, max, total)
		}
	}
	// Degree is clamped to the index count
	pm := NewPartitionMap(8, 3)
	assert.Equal(t, 3, pm.ParallelDegree)
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
