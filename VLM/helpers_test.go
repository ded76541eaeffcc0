package VLM

import (
	"math"
	"testing"

	"github.com/openaero/govlm/utils"
	"github.com/stretchr/testify/assert"
)

func near(t *testing.T, want, got, tol float64) {
	t.Helper()
	assert.InDelta(t, want, got, tol)
}

func nearVec(t *testing.T, want, got utils.Vec3, tol float64) {
	t.Helper()
	for n := 0; n < 3; n++ {
		assert.InDelta(t, want[n], got[n], tol)
	}
}

func deg(d float64) float64 { return d * math.Pi / 180. }

// Tapered, twisted planar wing used by the AVL cross-check cases: root chord
// 2.2 at the origin, tip chord 1.8 at 7.5 span with 0.4 sweep offset, two
// degrees of uniform twist.
func testWingSections() []WingSection {
	return []WingSection{
		{LE: utils.Vec3{0, 0, 0}, Chord: 2.2, Twist: deg(2)},
		{LE: utils.Vec3{0.4, 7.5, 0}, Chord: 1.8, Twist: deg(2)},
	}
}

func testWingReference() *Reference {
	return &Reference{S: 30, C: 2, B: 15, R: utils.Vec3{0.5, 0, 0}}
}

func buildTestWing(t *testing.T, shape PanelShape, nc, ns int, alphaDeg float64) *System {
	t.Helper()
	s, err := GenerateSurface(testWingSections(), SurfaceConfig{
		ID: 1, Symmetric: true, Shape: shape, Nc: nc, Ns: ns,
	})
	assert.NoError(t, err)
	sys, err := NewSystem([]*Surface{s}, &Freestream{Alpha: deg(alphaDeg)}, testWingReference())
	assert.NoError(t, err)
	return sys
}
