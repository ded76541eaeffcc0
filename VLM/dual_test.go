package VLM

import (
	"testing"

	"github.com/openaero/govlm/utils"
)

func dualVar(v float64, n int) (d Dual) {
	d.V = v
	d.D[n] = 1
	return
}

func TestDualProductAndQuotientRules(t *testing.T) {
	var (
		a = dualVar(2, DerivAlpha)
		b = dualVar(3, DerivBeta)
	)
	p := a.Mul(b)
	near(t, 6, p.V, 1.e-15)
	near(t, 3, p.D[DerivAlpha], 1.e-15)
	near(t, 2, p.D[DerivBeta], 1.e-15)

	q := a.Div(b)
	near(t, 2./3., q.V, 1.e-15)
	near(t, 1./3., q.D[DerivAlpha], 1.e-15)
	near(t, -2./9., q.D[DerivBeta], 1.e-15)

	// d sqrt(x^2) / dx = 1 at x = 2
	s := a.Mul(a).Sqrt()
	near(t, 2, s.V, 1.e-15)
	near(t, 1, s.D[DerivAlpha], 1.e-15)
}

func TestDualVecChainedOperations(t *testing.T) {
	// v(x) = (x, 1, 0); d/dx |v|^2 = 2x
	var (
		v DualVec
	)
	v.V = utils.Vec3{2, 1, 0}
	v.D[DerivP] = utils.Vec3{1, 0, 0}

	ns := v.NormSq()
	near(t, 5, ns.V, 1.e-15)
	near(t, 4, ns.D[DerivP], 1.e-15)

	// d/dx |v| = x / |v|
	n := v.Norm()
	near(t, 2./n.V, n.D[DerivP], 1.e-15)

	// Cross with a constant vector keeps shadows linear
	w := v.CrossVec(utils.Vec3{0, 0, 1})
	nearVec(t, utils.Vec3{1, -2, 0}, w.V, 1.e-15)
	nearVec(t, utils.Vec3{0, -1, 0}, w.D[DerivP], 1.e-15)

	// Product rule through ScaleDual
	g := dualVar(3, DerivP)
	sv := v.ScaleDual(g)
	nearVec(t, utils.Vec3{6, 3, 0}, sv.V, 1.e-15)
	nearVec(t, utils.Vec3{3 + 2, 1, 0}, sv.D[DerivP], 1.e-15)
}
