package VLM

import (
	"math"

	"github.com/openaero/govlm/utils"
)

// The five derivative parameters carried alongside every primal quantity:
// angle of attack, sideslip, and the three normalized body rotation rates.
const (
	DerivAlpha = iota
	DerivBeta
	DerivP
	DerivQ
	DerivR
	NDeriv
)

// Dual is a scalar with its five shadow derivatives. Propagating Dual values
// through the primal arithmetic keeps the derivative path control-flow
// identical to the value path.
type Dual struct {
	V float64
	D [NDeriv]float64
}

func (a Dual) Add(b Dual) (r Dual) {
	r.V = a.V + b.V
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n] + b.D[n]
	}
	return
}

func (a Dual) Sub(b Dual) (r Dual) {
	r.V = a.V - b.V
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n] - b.D[n]
	}
	return
}

func (a Dual) Scale(s float64) (r Dual) {
	r.V = s * a.V
	for n := 0; n < NDeriv; n++ {
		r.D[n] = s * a.D[n]
	}
	return
}

// Mul applies the product rule.
func (a Dual) Mul(b Dual) (r Dual) {
	r.V = a.V * b.V
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n]*b.V + a.V*b.D[n]
	}
	return
}

// Div applies the quotient rule.
func (a Dual) Div(b Dual) (r Dual) {
	r.V = a.V / b.V
	for n := 0; n < NDeriv; n++ {
		r.D[n] = (a.D[n] - r.V*b.D[n]) / b.V
	}
	return
}

func (a Dual) Sqrt() (r Dual) {
	r.V = math.Sqrt(a.V)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = 0.5 * a.D[n] / r.V
	}
	return
}

// DualVec is a 3-vector with five shadow derivative vectors.
type DualVec struct {
	V utils.Vec3
	D [NDeriv]utils.Vec3
}

func (a DualVec) Add(b DualVec) (r DualVec) {
	r.V = a.V.Add(b.V)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Add(b.D[n])
	}
	return
}

// AddVec adds a derivative-free vector, leaving the shadows untouched.
func (a DualVec) AddVec(v utils.Vec3) (r DualVec) {
	r = a
	r.V = a.V.Add(v)
	return
}

func (a DualVec) Scale(s float64) (r DualVec) {
	r.V = a.V.Scale(s)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Scale(s)
	}
	return
}

// ScaleDual multiplies the vector by a Dual scalar via the product rule.
func (a DualVec) ScaleDual(s Dual) (r DualVec) {
	r.V = a.V.Scale(s.V)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Scale(s.V).Add(a.V.Scale(s.D[n]))
	}
	return
}

// CrossVec crosses against a derivative-free vector on the right.
func (a DualVec) CrossVec(v utils.Vec3) (r DualVec) {
	r.V = a.V.Cross(v)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Cross(v)
	}
	return
}

func (a DualVec) Cross(b DualVec) (r DualVec) {
	r.V = a.V.Cross(b.V)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Cross(b.V).Add(a.V.Cross(b.D[n]))
	}
	return
}

func (a DualVec) Dot(b DualVec) (r Dual) {
	r.V = a.V.Dot(b.V)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Dot(b.V) + a.V.Dot(b.D[n])
	}
	return
}

// DotVec dots against a derivative-free vector.
func (a DualVec) DotVec(v utils.Vec3) (r Dual) {
	r.V = a.V.Dot(v)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Dot(v)
	}
	return
}

func (a DualVec) Sub(b DualVec) (r DualVec) {
	r.V = a.V.Sub(b.V)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].Sub(b.D[n])
	}
	return
}

func (a DualVec) NormSq() Dual {
	return a.Dot(a)
}

func (a DualVec) Norm() Dual {
	return a.Dot(a).Sqrt()
}

// RotateMat applies a derivative-free rotation to value and shadows.
func (a DualVec) RotateMat(R utils.Mat3) (r DualVec) {
	r.V = R.MulVec(a.V)
	for n := 0; n < NDeriv; n++ {
		r.D[n] = R.MulVec(a.D[n])
	}
	return
}
