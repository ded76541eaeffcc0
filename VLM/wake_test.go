package VLM

import (
	"math"
	"testing"

	"github.com/openaero/govlm/utils"
	"github.com/stretchr/testify/assert"
)

func TestWakeValidation(t *testing.T) {
	_, err := NewWake([]utils.Vec3{{0, 0, 0}}, 5, 1.e-6, false)
	assert.Error(t, err)
	_, err = NewWake([]utils.Vec3{{0, 0, 0}, {0, 1, 0}}, 0, 1.e-6, false)
	assert.Error(t, err)

	w, err := NewWake([]utils.Vec3{{0, 0, 0}, {0, 1, 0}}, 5, 1.e-6, false)
	assert.NoError(t, err)
	assert.Equal(t, 0, w.NRows())
	assert.Equal(t, utils.Vec3{}, w.InducedVelocity(utils.Vec3{1, 2, 3}))

	assert.Error(t, w.Shed([]utils.Vec3{{0, 0, 0}}, []float64{1}))
	assert.Error(t, w.Shed([]utils.Vec3{{0, 0, 0}, {0, 1, 0}}, nil))
}

func TestWakeShedAndCap(t *testing.T) {
	te := []utils.Vec3{{0, 0, 0}, {0, 1, 0}}
	w, err := NewWake(te, 2, 1.e-6, false)
	assert.NoError(t, err)

	drift := func(utils.Vec3) utils.Vec3 { return utils.Vec3{1, 0, 0} }
	for step := 1; step <= 4; step++ {
		w.Propagate(1, drift)
		assert.NoError(t, w.Shed(te, []float64{float64(step)}))
	}
	// Capped at two rows; the newest circulation sits in row 0.
	assert.Equal(t, 2, w.NRows())
	_, _, _, _, g0 := w.Panel(0, 0)
	_, _, _, _, g1 := w.Panel(1, 0)
	near(t, 4, g0, 1.e-15)
	near(t, 3, g1, 1.e-15)
	// Row 0 is pinned at the trailing edge; older vertices sit downstream.
	tl, _, bl, _, _ := w.Panel(0, 0)
	nearVec(t, utils.Vec3{0, 0, 0}, tl, 1.e-15)
	nearVec(t, utils.Vec3{1, 0, 0}, bl, 1.e-15)
}

func TestWakeRingInducedVelocity(t *testing.T) {
	// A unit square ring with unit circulation induces 2 sqrt(2) / pi at its
	// center, directed along the circuit's axis.
	te := []utils.Vec3{{0, 0, 0}, {0, 1, 0}}
	w, err := NewWake(te, 4, 1.e-8, false)
	assert.NoError(t, err)
	w.Propagate(1, func(utils.Vec3) utils.Vec3 { return utils.Vec3{1, 0, 0} })
	assert.NoError(t, w.Shed(te, []float64{1}))

	V := w.InducedVelocity(utils.Vec3{0.5, 0.5, 0})
	nearVec(t, utils.Vec3{0, 0, -2. * math.Sqrt2 / math.Pi}, V, 1.e-6)
}

func TestWakeSymmetricImages(t *testing.T) {
	te := []utils.Vec3{{0, 1, 0}, {0, 2, 0}}
	build := func(symmetric bool) *Wake {
		w, err := NewWake(te, 4, 1.e-8, symmetric)
		assert.NoError(t, err)
		w.Propagate(1, func(utils.Vec3) utils.Vec3 { return utils.Vec3{1, 0, 0} })
		assert.NoError(t, w.Shed(te, []float64{1}))
		return w
	}
	var (
		sym  = build(true)
		base = build(false)
		p    = utils.Vec3{0.5, 0.5, 0.3}
	)
	// Image field equals an explicitly mirrored ring: same corners flipped,
	// traversal reversed.
	mirror, err := NewWake([]utils.Vec3{{0, -1, 0}, {0, -2, 0}}, 4, 1.e-8, false)
	assert.NoError(t, err)
	mirror.Propagate(1, func(utils.Vec3) utils.Vec3 { return utils.Vec3{1, 0, 0} })
	assert.NoError(t, mirror.Shed([]utils.Vec3{{0, -1, 0}, {0, -2, 0}}, []float64{-1}))

	want := base.InducedVelocity(p).Add(mirror.InducedVelocity(p))
	nearVec(t, want, sym.InducedVelocity(p), 1.e-12)
}

func TestShedCirculation(t *testing.T) {
	sys := buildTestWing(t, RingPanels, 3, 4, 2)
	assert.NoError(t, sys.Analyze())
	g := sys.shedCirculation(0)
	assert.Len(t, g, 4)
	// Ring lattices shed the trailing-edge row circulation.
	te := sys.SurfaceGamma(0)[2*4:]
	for j := range g {
		near(t, te[j], g[j], 1.e-15)
	}

	hsys := buildTestWing(t, HorseshoePanels, 3, 4, 2)
	assert.NoError(t, hsys.Analyze())
	gh := hsys.shedCirculation(0)
	sg := hsys.SurfaceGamma(0)
	for j := range gh {
		near(t, sg[j]+sg[4+j]+sg[8+j], gh[j], 1.e-15)
	}
}

func TestRunUnsteady(t *testing.T) {
	sys := buildTestWing(t, RingPanels, 1, 8, 5)

	_, err := sys.RunUnsteady(UnsteadyOptions{Dt: 0, Steps: 3})
	assert.Error(t, err)

	hist, err := sys.RunUnsteady(UnsteadyOptions{Dt: 0.25, Steps: 6, MaxWakeRows: 4, Frozen: true})
	assert.NoError(t, err)
	assert.Len(t, hist, 6)
	assert.False(t, sys.TrailingVortices)
	assert.Len(t, sys.Wakes, 1)
	assert.Equal(t, 4, sys.Wakes[0].NRows())

	for k, rec := range hist {
		near(t, float64(k+1)*0.25, rec.Time, 1.e-12)
		assert.Greater(t, rec.CF[2], 0., "lift should stay positive at step %d", k)
		assert.False(t, math.IsNaN(rec.CF.Norm()))
	}
	// Frozen convection carries the oldest wake vertices downstream of the
	// trailing edge.
	w := sys.Wakes[0]
	oldest := w.vertex(w.NRows(), 0)
	newest := w.vertex(0, 0)
	assert.Greater(t, oldest[0], newest[0])

	// The transient settles toward a steady value.
	var (
		early = math.Abs(hist[1].CF[2] - hist[0].CF[2])
		late  = math.Abs(hist[5].CF[2] - hist[4].CF[2])
	)
	assert.Less(t, late, early)
}
