package VLM

import (
	"github.com/openaero/govlm/utils"
)

// momentOf returns arm x F with the product rule over F's shadows.
func momentOf(arm utils.Vec3, F DualVec) (M DualVec) {
	// arm x F = -(F x arm)
	M = F.CrossVec(arm).Scale(-1)
	return
}

// symmetrizeForce applies the half-model doubling rule for forces: the x and
// z components double, the side force is zeroed. The rule acts on the shadow
// derivatives as well, so antisymmetric derivatives (CYb, CYp, Clb, Clp, Clr,
// Cnb, ...) come out identically zero for a symmetric surface: the half model
// enforces a mirror-symmetric circulation and cannot represent the
// antisymmetric response. Recovering those derivatives requires an explicitly
// mirrored full model.
func symmetrizeForce(F DualVec) (r DualVec) {
	r.V = utils.Vec3{2 * F.V[0], 0, 2 * F.V[2]}
	for n := 0; n < NDeriv; n++ {
		r.D[n] = utils.Vec3{2 * F.D[n][0], 0, 2 * F.D[n][2]}
	}
	return
}

// symmetrizeMoment doubles the pitching moment and zeroes roll and yaw,
// shadows included, with the same full-model caveat as symmetrizeForce.
func symmetrizeMoment(M DualVec) (r DualVec) {
	r.V = utils.Vec3{0, 2 * M.V[1], 0}
	for n := 0; n < NDeriv; n++ {
		r.D[n] = utils.Vec3{0, 2 * M.D[n][1], 0}
	}
	return
}

// NearFieldProperties integrates Kutta-Joukowski forces over the three bound
// segments of every panel, accumulating body-frame forces and moments about
// the reference point together with their five shadow derivatives, and
// records per-panel properties.
func (sys *System) NearFieldProperties() (err error) {
	if err = sys.requireState(CirculationCurrent, "near field integration"); err != nil {
		return
	}
	var (
		q     = 0.5 * RHO // dynamic pressure at unit freestream speed
		coefF = 1. / (q * sys.Ref.S)
	)
	sys.cf, sys.cm = DualVec{}, DualVec{}
	sys.Properties = make([][]PanelProperties, len(sys.Surfaces))

	// Dual circulation per surface, shared by the segment loops below
	gdual := make([][]Dual, len(sys.Surfaces))
	for n := range sys.Surfaces {
		gdual[n] = sys.surfaceGammaDual(n)
	}

	for n, s := range sys.Surfaces {
		var (
			props  = make([]PanelProperties, s.N())
			sF, sM DualVec // per-surface accumulators
		)
		for i := 0; i < s.Nc; i++ {
			for j := 0; j < s.Ns; j++ {
				var (
					k = i*s.Ns + j
					p = s.Panels[k]
					g = gdual[n][k]
				)
				// Net spanwise-segment circulation: chordwise upstream
				// neighbor cancels on a ring lattice, horseshoes carry the
				// panel circulation directly.
				gnet := g
				if _, isRing := p.(Ring); isRing && i > 0 {
					gnet = g.Sub(gdual[n][k-s.Ns])
				}

				// Top (spanwise) segment: full local velocity, external
				// plus induced from every surface and wake. The segment's
				// own contribution vanishes on its own axis.
				var (
					tc   = p.TopCenter()
					Vtop = sys.FS.ExternalVelocityDual(tc, sys.Ref)
				)
				for m, ss := range sys.Surfaces {
					Vtop = Vtop.Add(ss.InducedVelocityDual(tc, gdual[m], sys.pairOpts(s, ss)))
				}
				for _, wake := range sys.Wakes {
					Vtop.V = Vtop.V.Add(wake.InducedVelocity(tc))
				}
				dsTop := p.TopRight().Sub(p.TopLeft())
				Ftop := Vtop.CrossVec(dsTop).ScaleDual(gnet).Scale(RHO)

				// Left and right (chordwise) segments: external velocity
				// only. The induced contribution is deliberately omitted
				// here; after the cross product with a chordwise-aligned
				// filament its effect is negligible and including it would
				// double-count bound-vortex self-induction. This matches
				// classical panel-method practice.
				var (
					lc     = p.TopLeft().Midpoint(p.BottomLeft())
					rc     = p.TopRight().Midpoint(p.BottomRight())
					Vleft  = sys.FS.ExternalVelocityDual(lc, sys.Ref)
					Vright = sys.FS.ExternalVelocityDual(rc, sys.Ref)
				)
				dsLeft := p.TopLeft().Sub(p.BottomLeft())
				dsRight := p.BottomRight().Sub(p.TopRight())
				Fleft := Vleft.CrossVec(dsLeft).ScaleDual(g).Scale(RHO)
				Fright := Vright.CrossVec(dsRight).ScaleDual(g).Scale(RHO)

				sF = sF.Add(Ftop).Add(Fleft).Add(Fright)
				sM = sM.Add(momentOf(tc.Sub(sys.Ref.R), Ftop))
				sM = sM.Add(momentOf(lc.Sub(sys.Ref.R), Fleft))
				sM = sM.Add(momentOf(rc.Sub(sys.Ref.R), Fright))

				props[k] = PanelProperties{
					Gamma:    g.V,
					Velocity: Vtop.V,
					CFTop:    Ftop.V.Scale(coefF),
					CFLeft:   Fleft.V.Scale(coefF),
					CFRight:  Fright.V.Scale(coefF),
				}
			}
		}
		if s.Symmetric {
			sF = symmetrizeForce(sF)
			sM = symmetrizeMoment(sM)
		}
		sys.cf = sys.cf.Add(sF)
		sys.cm = sys.cm.Add(sM)
		sys.Properties[n] = props
	}
	// Normalize to coefficients in the body frame. Moment axes use span,
	// chord, span reference lengths.
	sys.cf = sys.cf.Scale(coefF)
	sys.cm.V = sys.normalizeMoment(sys.cm.V)
	for d := 0; d < NDeriv; d++ {
		sys.cm.D[d] = sys.normalizeMoment(sys.cm.D[d])
	}
	sys.state = NearFieldCurrent
	return
}

func (sys *System) normalizeMoment(m utils.Vec3) utils.Vec3 {
	var (
		q = 0.5 * RHO
	)
	return utils.Vec3{
		m[0] / (q * sys.Ref.S * sys.Ref.B),
		m[1] / (q * sys.Ref.S * sys.Ref.C),
		m[2] / (q * sys.Ref.S * sys.Ref.B),
	}
}

func (sys *System) dimensionalizeMoment(m utils.Vec3) utils.Vec3 {
	return utils.Vec3{m[0] * sys.Ref.B, m[1] * sys.Ref.C, m[2] * sys.Ref.B}
}

func (sys *System) renormalizeMoment(m utils.Vec3) utils.Vec3 {
	return utils.Vec3{m[0] / sys.Ref.B, m[1] / sys.Ref.C, m[2] / sys.Ref.B}
}

// BodyForces returns the force and moment coefficients in the requested
// frame. Moments rotate as dimensional quantities because each axis carries
// a different reference length.
func (sys *System) BodyForces(frame Frame) (CF, CM utils.Vec3, err error) {
	if err = sys.requireState(NearFieldCurrent, "force coefficient output"); err != nil {
		return
	}
	var (
		R = sys.FS.RotationMatrix(frame)
	)
	CF = R.MulVec(sys.cf.V)
	CM = sys.renormalizeMoment(R.MulVec(sys.dimensionalizeMoment(sys.cm.V)))
	return
}

// BodyForcesDerivatives returns the five derivative sets of the force and
// moment coefficients in the requested frame, chaining the frame rotation's
// own alpha and beta dependence where it exists.
func (sys *System) BodyForcesDerivatives(frame Frame) (dCF, dCM [NDeriv]utils.Vec3, err error) {
	if err = sys.requireState(NearFieldCurrent, "force derivative output"); err != nil {
		return
	}
	var (
		R        = sys.FS.RotationMatrix(frame)
		dR       [NDeriv]utils.Mat3 // nonzero only for alpha, beta
		mDim     = sys.dimensionalizeMoment(sys.cm.V)
		dRa, dRb utils.Mat3
	)
	switch frame {
	case Stability:
		dRa = sys.FS.BodyToStabilityDerivative()
	case Wind:
		dRa, dRb = sys.FS.BodyToWindDerivatives()
	}
	dR[DerivAlpha] = dRa
	dR[DerivBeta] = dRb
	for d := 0; d < NDeriv; d++ {
		dCF[d] = R.MulVec(sys.cf.D[d]).Add(dR[d].MulVec(sys.cf.V))
		dmd := sys.dimensionalizeMoment(sys.cm.D[d])
		dCM[d] = sys.renormalizeMoment(R.MulVec(dmd).Add(dR[d].MulVec(mDim)))
	}
	return
}
