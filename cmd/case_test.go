package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaero/govlm/InputParameters"
	"github.com/openaero/govlm/VLM"
)

var wingCase = `
Title: "Tapered Wing"
Alpha: 1.0
Sref: 30
Cref: 2
Bref: 15
Rref: [0.5, 0, 0]
Frame: stability
Surfaces:
  - Name: wing
    ID: 1
    Symmetric: true
    PanelShape: ring
    NChord: 1
    NSpan: 12
    Sections:
      - LE: [0, 0, 0]
        Chord: 2.2
        Twist: 2.0
      - LE: [0.4, 7.5, 0]
        Chord: 1.8
        Twist: 2.0
`

func TestBuildSystemFromRunCase(t *testing.T) {
	rp := &InputParameters.RunParameters{}
	require.NoError(t, rp.Parse([]byte(wingCase)))
	assert.Equal(t, 12, rp.Surfaces[0].Ns)

	sys, frame, err := buildSystem(rp)
	require.NoError(t, err)
	assert.Equal(t, VLM.Stability, frame)
	assert.Equal(t, 12, sys.N())
	assert.Equal(t, 30., sys.Ref.S)

	// The assembled case solves end to end and reproduces the AVL level
	// lift coefficient for this wing.
	assert.NoError(t, sys.Analyze())
	CF, _, err := sys.BodyForces(frame)
	assert.NoError(t, err)
	assert.InDelta(t, 0.24324, CF[2], 1.e-3)
}

func TestBuildSystemMirror(t *testing.T) {
	rp := &InputParameters.RunParameters{}
	require.NoError(t, rp.Parse([]byte(wingCase)))
	rp.Surfaces[0].Symmetric = false
	rp.Surfaces[0].Mirror = true

	sys, _, err := buildSystem(rp)
	require.NoError(t, err)
	// Mirroring doubles the span panel count.
	assert.Equal(t, 24, sys.N())
}
