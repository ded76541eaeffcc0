package VLM

import (
	"math"

	"github.com/openaero/govlm/utils"
)

const fourPi = 4. * math.Pi

// Threshold below which a filament is treated as degenerate (coincident
// endpoints, e.g. the collapsed root edge of a tapered panel on the symmetry
// plane) and contributes exactly zero rather than NaN.
const degenerateTol = 1.e-13

// BoundInducedVelocity returns the velocity per unit circulation induced by
// a straight finite vortex filament. r1 and r2 run from the filament start
// and end points to the evaluation point; circulation is positive in the
// start -> end direction.
func BoundInducedVelocity(r1, r2 utils.Vec3, finiteCore bool, coreSize float64) (V utils.Vec3) {
	var (
		nr1 = r1.Norm()
		nr2 = r2.Norm()
	)
	// Degenerate (zero length) filament
	if r1.Sub(r2).Norm() < degenerateTol {
		return
	}
	// Evaluation point on a filament endpoint
	if nr1 < degenerateTol || nr2 < degenerateTol {
		return
	}
	f1 := r1.Cross(r2)
	if !finiteCore {
		denom := nr1*nr2 + r1.Dot(r2)
		if math.Abs(denom) < degenerateTol {
			// Evaluation point on the filament axis
			return
		}
		f2 := (1./nr1 + 1./nr2) / denom
		V = f1.Scale(f2 / fourPi)
		return
	}
	var (
		rdot = r1.Dot(r2)
		r1s  = nr1 * nr1
		r2s  = nr2 * nr2
		eps2 = coreSize * coreSize
	)
	denom := r1s*r2s - rdot*rdot + eps2*(r1s+r2s-2.*nr1*nr2)
	if math.Abs(denom) < degenerateTol {
		return
	}
	f2 := (r1s-rdot)/math.Sqrt(r1s+eps2) + (r2s-rdot)/math.Sqrt(r2s+eps2)
	V = f1.Scale(f2 / (fourPi * denom))
	return
}

// TrailingInducedVelocity returns the velocity per unit circulation induced
// by a semi-infinite vortex filament starting at a point and extending to
// infinity along unit direction xhat, with circulation positive in the
// downstream (xhat) direction. r runs from the filament start to the
// evaluation point. The finite-core form is the infinite-length limit of the
// regularized bound filament.
func TrailingInducedVelocity(r, xhat utils.Vec3, finiteCore bool, coreSize float64) (V utils.Vec3) {
	var (
		nr    = r.Norm()
		alpha = r.Dot(xhat)
	)
	if nr < degenerateTol {
		return
	}
	f := r.Cross(xhat)
	if !finiteCore {
		denom := nr * (nr - alpha)
		if math.Abs(denom) < degenerateTol {
			return
		}
		V = f.Scale(-1. / (fourPi * denom))
		return
	}
	var (
		eps2  = coreSize * coreSize
		denom = nr*nr - alpha*alpha + eps2
	)
	if math.Abs(denom) < degenerateTol {
		return
	}
	V = f.Scale(-(1. + alpha/math.Sqrt(nr*nr+eps2)) / (fourPi * denom))
	return
}
