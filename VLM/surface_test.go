package VLM

import (
	"testing"

	"github.com/openaero/govlm/utils"
	"github.com/stretchr/testify/assert"
)

func TestSurfaceValidation(t *testing.T) {
	ring := Ring{Rtl: utils.Vec3{0, 0, 0}, Rtr: utils.Vec3{0, 1, 0},
		Rbl: utils.Vec3{1, 0, 0}, Rbr: utils.Vec3{1, 1, 0},
		Rcp: utils.Vec3{0.75, 0.5, 0}, Ncp: utils.Vec3{0, 0, 1}}
	hs := Horseshoe{Rl: utils.Vec3{0, 0, 0}, Rr: utils.Vec3{0, 1, 0},
		Rcp: utils.Vec3{0.5, 0.5, 0}, Ncp: utils.Vec3{0, 0, 1}}

	_, err := NewSurface(1, false, 0, 1, nil)
	assert.Error(t, err)
	_, err = NewSurface(1, false, 1, 2, []Panel{ring})
	assert.Error(t, err)
	_, err = NewSurface(1, false, 1, 2, []Panel{ring, hs})
	assert.Error(t, err)
	s, err := NewSurface(1, false, 1, 2, []Panel{ring, ring})
	assert.NoError(t, err)
	assert.Equal(t, 2, s.N())
	assert.True(t, s.OnTrailingEdge(0))
}

func TestPanelTransforms(t *testing.T) {
	h := Horseshoe{
		Rl: utils.Vec3{0, 1, 0}, Rr: utils.Vec3{0, 2, 0},
		Rcp: utils.Vec3{0.5, 1.5, 0}, Ncp: utils.Vec3{0, 0, 1},
		XlTE: 0.75, XrTE: 0.5,
	}
	ht := h.Translate(utils.Vec3{1, 0, 2}).(Horseshoe)
	nearVec(t, utils.Vec3{1, 1, 2}, ht.TopLeft(), 1.e-15)
	nearVec(t, utils.Vec3{1.5, 1.5, 2}, ht.ControlPoint(), 1.e-15)

	// Reflection swaps left and right so span still increases with y.
	hr := h.Reflect().(Horseshoe)
	nearVec(t, utils.Vec3{0, -2, 0}, hr.TopLeft(), 1.e-15)
	nearVec(t, utils.Vec3{0, -1, 0}, hr.TopRight(), 1.e-15)
	near(t, 0.5, hr.XlTE, 1.e-15)
	near(t, 0.75, hr.XrTE, 1.e-15)
	nearVec(t, utils.Vec3{0.5, -2, 0}, hr.BottomLeft(), 1.e-15)

	// Rotation about a point moves corners and rotates the normal in place.
	Rz := utils.Mat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	p := Ring{Rtl: utils.Vec3{1, 0, 0}, Rtr: utils.Vec3{1, 1, 0},
		Rbl: utils.Vec3{2, 0, 0}, Rbr: utils.Vec3{2, 1, 0},
		Rcp: utils.Vec3{1.75, 0.5, 0}, Ncp: utils.Vec3{0, 0, 1}}
	pr := p.Rotate(Rz, utils.Vec3{1, 0, 0}).(Ring)
	nearVec(t, utils.Vec3{1, 0, 0}, pr.TopLeft(), 1.e-15)
	nearVec(t, utils.Vec3{0, 0, 0}, pr.TopRight(), 1.e-15)
	nearVec(t, utils.Vec3{0, 0, 1}, pr.Normal(), 1.e-15)
}

func TestSharedInfluenceMatchesDirect(t *testing.T) {
	// On a same-surface ring lattice the shared-filament scatter is an exact
	// algebraic regrouping of the per-panel evaluation.
	s, err := GenerateSurface(testWingSections(), SurfaceConfig{
		ID: 1, Symmetric: true, Shape: RingPanels, Nc: 3, Ns: 6,
	})
	assert.NoError(t, err)
	for _, trailing := range []bool{true, false} {
		opts := InfluenceOpts{SameID: true, TrailingVortices: trailing, Xhat: utils.Vec3{1, 0, 0}}
		for _, rcp := range []utils.Vec3{
			s.Panel(1, 3).ControlPoint(),
			{5, 2, 1},
			{-1, 6, -0.5},
		} {
			var (
				vs = make([]utils.Vec3, s.N())
				vd = make([]utils.Vec3, s.N())
			)
			s.influenceShared(rcp, opts, vs)
			s.influenceDirect(rcp, opts, vd)
			for k := range vs {
				nearVec(t, vd[k], vs[k], 1.e-12)
			}
		}
	}
}

func TestSymmetricImageMatchesMirroredPanel(t *testing.T) {
	// The half-model image of a panel induces the same velocity as the
	// explicitly reflected panel carrying the same circulation.
	ring := Ring{
		Rtl: utils.Vec3{0, 1, 0}, Rtr: utils.Vec3{0, 2, 0.1},
		Rbl: utils.Vec3{1, 1, 0}, Rbr: utils.Vec3{1, 2, 0.1},
		Rcp: utils.Vec3{0.75, 1.5, 0.05}, Ncp: utils.Vec3{0, 0, 1},
	}
	var (
		half, _   = NewSurface(1, true, 1, 1, []Panel{ring})
		mirror, _ = NewSurface(1, false, 1, 1, []Panel{ring.Reflect()})
		direct, _ = NewSurface(1, false, 1, 1, []Panel{ring})
		opts      = InfluenceOpts{SameID: true, TrailingVortices: true, Xhat: utils.Vec3{1, 0, 0}}
		rcp       = utils.Vec3{2, 0.5, 0.3}
	)
	vHalf := half.Influence(rcp, opts)[0]
	vSum := direct.Influence(rcp, opts)[0].Add(mirror.Influence(rcp, opts)[0])
	nearVec(t, vSum, vHalf, 1.e-12)
}

func TestRootFilamentsCancelAgainstImage(t *testing.T) {
	// A root panel touching y=0 shares its inboard edge and inboard trailing
	// leg with its image, which traverses them in reverse: the pair cancels,
	// so the half-model influence equals the panel plus an explicitly
	// reflected copy. Keeping the on-plane filament uncancelled would leave a
	// spurious centerline vortex.
	root := Ring{
		Rtl: utils.Vec3{0, 0, 0}, Rtr: utils.Vec3{0, 1, 0},
		Rbl: utils.Vec3{1, 0, 0}, Rbr: utils.Vec3{1, 1, 0},
		Rcp: utils.Vec3{0.75, 0.5, 0}, Ncp: utils.Vec3{0, 0, 1},
	}
	var (
		half, _   = NewSurface(1, true, 1, 1, []Panel{root})
		mirror, _ = NewSurface(1, false, 1, 1, []Panel{root.Reflect()})
		direct, _ = NewSurface(1, false, 1, 1, []Panel{root})
		opts      = InfluenceOpts{SameID: true, TrailingVortices: true, Xhat: utils.Vec3{1, 0, 0}}
	)
	for _, rcp := range []utils.Vec3{{2, 1, 0.5}, {0.75, 0.5, 0}, {0.5, -0.4, 0.2}} {
		vHalf := half.Influence(rcp, opts)[0]
		vSum := direct.Influence(rcp, opts)[0].Add(mirror.Influence(rcp, opts)[0])
		nearVec(t, vSum, vHalf, 1.e-12)
	}
}

func TestSymmetricOnPlaneSurfaceRejected(t *testing.T) {
	// A fin lying entirely on y=0 is its own mirror image: with the symmetric
	// flag every filament would cancel and the influence matrix would be
	// singular, so the configuration is refused outright.
	fin := Ring{
		Rtl: utils.Vec3{0, 0, 1}, Rtr: utils.Vec3{0, 0, 0},
		Rbl: utils.Vec3{1, 0, 1}, Rbr: utils.Vec3{1, 0, 0},
		Rcp: utils.Vec3{0.75, 0, 0.5}, Ncp: utils.Vec3{0, 1, 0},
	}
	_, err := NewSurface(2, true, 1, 1, []Panel{fin})
	assert.ErrorContains(t, err, "symmetry plane")
	_, err = NewSurface(2, false, 1, 1, []Panel{fin})
	assert.NoError(t, err)
}
