package VLM

import (
	"math"

	"github.com/openaero/govlm/utils"
)

// TrefftzPanel is one shed trailing-vortex pair projected onto the plane
// perpendicular to the freestream far downstream: the left and right vortex
// positions (x component dropped), the pair circulation, and whether the
// originating surface is analyzed as a symmetric half model.
type TrefftzPanel struct {
	Rl, Rr    DualVec
	Gamma     Dual
	Symmetric bool
}

// trefftzPanels projects every shed trailing filament pair into wind axes.
// Ring lattices shed only from the trailing-edge row (interior chordwise
// stations cancel); horseshoe lattices shed a pair per panel. The wind
// rotation depends on alpha and beta, so projected geometry carries shadow
// derivatives of its own.
func (sys *System) trefftzPanels() (panels []TrefftzPanel) {
	var (
		R        = sys.FS.BodyToWind()
		dRa, dRb = sys.FS.BodyToWindDerivatives()
	)
	project := func(p utils.Vec3) (o DualVec) {
		o.V = R.MulVec(p)
		o.D[DerivAlpha] = dRa.MulVec(p)
		o.D[DerivBeta] = dRb.MulVec(p)
		o.V[0] = 0
		o.D[DerivAlpha][0] = 0
		o.D[DerivBeta][0] = 0
		return
	}
	for n, s := range sys.Surfaces {
		var (
			gdual = sys.surfaceGammaDual(n)
		)
		appendPanel := func(k int, p Panel) {
			panels = append(panels, TrefftzPanel{
				Rl:        project(p.BottomLeft()),
				Rr:        project(p.BottomRight()),
				Gamma:     gdual[k],
				Symmetric: s.Symmetric,
			})
		}
		if s.ringLattice() {
			te := s.Nc - 1
			for j := 0; j < s.Ns; j++ {
				appendPanel(te*s.Ns+j, s.Panel(te, j))
			}
		} else {
			for k, p := range s.Panels {
				appendPanel(k, p)
			}
		}
	}
	return
}

// trefftzVortexVelocity is the in-plane velocity at p induced by a trailing
// vortex piercing the plane at c with strength gamma: in the far plane the
// filament appears doubly infinite.
func trefftzVortexVelocity(p, c DualVec, gamma Dual) (V DualVec) {
	var (
		d  = p.Sub(c)
		ds = d.NormSq()
	)
	if ds.V < degenerateTol {
		return
	}
	// xhat x d restricted to the plane
	perp := DualVec{
		V: utils.Vec3{0, -d.V[2], d.V[1]},
	}
	for n := 0; n < NDeriv; n++ {
		perp.D[n] = utils.Vec3{0, -d.D[n][2], d.D[n][1]}
	}
	V = perp.ScaleDual(gamma.Div(ds).Scale(1. / (2. * math.Pi)))
	return
}

// pairInducedVelocity sums the left (negative) and right (positive) vortex
// contributions of a sending pair, with opposite-sign mirrored images for
// symmetric senders. A vortex piercing the plane on the centerline cancels
// against its own image, matching the zero net shed strength of the
// corresponding full-model station.
func pairInducedVelocity(p DualVec, tp TrefftzPanel) (V DualVec) {
	V = trefftzVortexVelocity(p, tp.Rr, tp.Gamma)
	V = V.Sub(trefftzVortexVelocity(p, tp.Rl, tp.Gamma))
	if tp.Symmetric {
		V = V.Sub(trefftzVortexVelocity(p, flipDual(tp.Rr), tp.Gamma))
		V = V.Add(trefftzVortexVelocity(p, flipDual(tp.Rl), tp.Gamma))
	}
	return
}

func flipDual(a DualVec) (r DualVec) {
	r.V = a.V.FlipY()
	for n := 0; n < NDeriv; n++ {
		r.D[n] = a.D[n].FlipY()
	}
	return
}

// farFieldDragDual evaluates the Trefftz-plane vortex-pair interaction
// integral in dual arithmetic. It shares no intermediate state with the
// near-field path, so agreement between the two is a genuine consistency
// check.
func (sys *System) farFieldDragDual() (CD Dual, err error) {
	if err = sys.requireState(CirculationCurrent, "far field drag"); err != nil {
		return
	}
	var (
		panels = sys.trefftzPanels()
		q      = 0.5 * RHO
		D      Dual
	)
	for _, rp := range panels {
		var (
			center = rp.Rl.Add(rp.Rr).Scale(0.5)
			span   = rp.Rr.Sub(rp.Rl)
			ds     = span.Norm()
		)
		if ds.V < degenerateTol {
			continue
		}
		// In-plane unit normal to the span segment (xhat x span)
		nhat := DualVec{V: utils.Vec3{0, -span.V[2], span.V[1]}}
		for n := 0; n < NDeriv; n++ {
			nhat.D[n] = utils.Vec3{0, -span.D[n][2], span.D[n][1]}
		}
		nhat = nhat.ScaleDual(Dual{V: 1}.Div(ds))

		var Vind DualVec
		for _, sp := range panels {
			Vind = Vind.Add(pairInducedVelocity(center, sp))
		}
		w := Vind.Dot(nhat)
		contrib := rp.Gamma.Mul(w).Mul(ds).Scale(-0.5 * RHO)
		if rp.Symmetric {
			contrib = contrib.Scale(2)
		}
		D = D.Add(contrib)
	}
	CD = D.Scale(1. / (q * sys.Ref.S))
	return
}

// FarFieldDrag computes the induced drag coefficient from the Trefftz-plane
// integral.
func (sys *System) FarFieldDrag() (CD float64, err error) {
	var cd Dual
	if cd, err = sys.farFieldDragDual(); err != nil {
		return
	}
	CD = cd.V
	return
}

// FarFieldDragDerivatives returns the five shadow derivatives of the
// far-field induced drag coefficient.
func (sys *System) FarFieldDragDerivatives() (CD float64, dCD [NDeriv]float64, err error) {
	var cd Dual
	if cd, err = sys.farFieldDragDual(); err != nil {
		return
	}
	CD, dCD = cd.V, cd.D
	return
}
