package VLM

import (
	"math"
	"testing"

	"github.com/openaero/govlm/utils"
	"github.com/stretchr/testify/assert"
)

func TestBoundFilamentKnownValue(t *testing.T) {
	// Spanwise filament from (0,-1,0) to (0,1,0), evaluated one unit above
	// its midpoint. Hand evaluation gives sqrt(2)/(4 pi) along x.
	var (
		a = utils.Vec3{0, -1, 0}
		b = utils.Vec3{0, 1, 0}
		p = utils.Vec3{0, 0, 1}
	)
	V := BoundInducedVelocity(p.Sub(a), p.Sub(b), false, 0)
	nearVec(t, utils.Vec3{math.Sqrt2 / (4. * math.Pi), 0, 0}, V, 1.e-14)
}

func TestBoundFilamentInfiniteLineLimit(t *testing.T) {
	// A very long filament approaches the 2D line vortex 1/(2 pi d).
	var (
		a = utils.Vec3{0, -1000, 0}
		b = utils.Vec3{0, 1000, 0}
		p = utils.Vec3{0, 0, 1}
	)
	V := BoundInducedVelocity(p.Sub(a), p.Sub(b), false, 0)
	near(t, 1./(2.*math.Pi), V[0], 1.e-6)
	near(t, 0, V[1], 1.e-14)
	near(t, 0, V[2], 1.e-14)
}

func TestBoundFilamentAntisymmetry(t *testing.T) {
	// Reversing the traversal negates the induced velocity.
	var (
		a = utils.Vec3{0.3, -0.7, 0.1}
		b = utils.Vec3{-0.2, 1.1, 0.4}
		p = utils.Vec3{1, 0.2, -0.5}
	)
	Vf := BoundInducedVelocity(p.Sub(a), p.Sub(b), false, 0)
	Vr := BoundInducedVelocity(p.Sub(b), p.Sub(a), false, 0)
	nearVec(t, Vf.Scale(-1), Vr, 1.e-14)
}

func TestTrailingFilamentPerpendicular(t *testing.T) {
	// Abeam the start point the semi-infinite filament induces exactly half
	// the doubly infinite line value.
	V := TrailingInducedVelocity(utils.Vec3{0, 1, 0}, utils.Vec3{1, 0, 0}, false, 0)
	nearVec(t, utils.Vec3{0, 0, 1. / (4. * math.Pi)}, V, 1.e-14)
}

func TestTrailingFilamentDownstreamLimit(t *testing.T) {
	// Far downstream the semi-infinite filament approaches the full line.
	V := TrailingInducedVelocity(utils.Vec3{1000, 1, 0}, utils.Vec3{1, 0, 0}, false, 0)
	near(t, 1./(2.*math.Pi), V[2], 1.e-6)
}

func TestFiniteCoreVanishingLimit(t *testing.T) {
	var (
		a = utils.Vec3{0.3, -0.7, 0.1}
		b = utils.Vec3{-0.2, 1.1, 0.4}
		p = utils.Vec3{1, 0.2, -0.5}
	)
	V0 := BoundInducedVelocity(p.Sub(a), p.Sub(b), false, 0)
	Ve := BoundInducedVelocity(p.Sub(a), p.Sub(b), true, 1.e-8)
	nearVec(t, V0, Ve, 1.e-8)

	T0 := TrailingInducedVelocity(p, utils.Vec3{1, 0, 0}, false, 0)
	Te := TrailingInducedVelocity(p, utils.Vec3{1, 0, 0}, true, 1.e-8)
	nearVec(t, T0, Te, 1.e-8)
}

func TestFiniteCoreReducesMagnitude(t *testing.T) {
	var (
		a = utils.Vec3{0, -1, 0}
		b = utils.Vec3{0, 1, 0}
		p = utils.Vec3{0, 0, 0.5}
	)
	V0 := BoundInducedVelocity(p.Sub(a), p.Sub(b), false, 0)
	Ve := BoundInducedVelocity(p.Sub(a), p.Sub(b), true, 0.25)
	assert.Less(t, Ve.Norm(), V0.Norm())
	assert.Greater(t, Ve.Norm(), 0.)
}

func TestDegenerateFilamentsAreZero(t *testing.T) {
	var (
		a = utils.Vec3{0, -1, 0}
		b = utils.Vec3{0, 1, 0}
	)
	// Zero length filament
	p := utils.Vec3{1, 2, 3}
	assert.Equal(t, utils.Vec3{}, BoundInducedVelocity(p.Sub(a), p.Sub(a), false, 0))
	// Evaluation point on an endpoint
	assert.Equal(t, utils.Vec3{}, BoundInducedVelocity(a.Sub(a), a.Sub(b), false, 0))
	// Evaluation point on the filament axis, between the endpoints
	q := utils.Vec3{0, 0.5, 0}
	assert.Equal(t, utils.Vec3{}, BoundInducedVelocity(q.Sub(a), q.Sub(b), false, 0))
	// Evaluation point on the trailing filament axis, downstream
	assert.Equal(t, utils.Vec3{}, TrailingInducedVelocity(utils.Vec3{2, 0, 0}, utils.Vec3{1, 0, 0}, false, 0))
	// On the start point itself
	assert.Equal(t, utils.Vec3{}, TrailingInducedVelocity(utils.Vec3{}, utils.Vec3{1, 0, 0}, false, 0))
}

func TestTrailingMatchesLongBoundSegment(t *testing.T) {
	// A very long bound filament running downstream approximates the
	// semi-infinite trailing filament.
	var (
		start = utils.Vec3{0, 0, 0}
		xhat  = utils.Vec3{1, 0, 0}
		far   = utils.Vec3{1.e6, 0, 0}
		p     = utils.Vec3{0.5, 0.8, -0.3}
	)
	Vt := TrailingInducedVelocity(p.Sub(start), xhat, false, 0)
	Vb := BoundInducedVelocity(p.Sub(start), p.Sub(far), false, 0)
	nearVec(t, Vt, Vb, 1.e-6)
}
