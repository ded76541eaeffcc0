package VLM

import (
	"fmt"
	"runtime"

	"github.com/openaero/govlm/utils"
)

// Air density in the normalized system. Forces come out as coefficients of
// the dynamic pressure, so the solver carries unit density throughout.
const RHO = 1.0

// SystemState tracks the analysis pipeline. Each update stage requires its
// predecessor to be current; violating the order is a checked error, not a
// silent stale result.
type SystemState uint8

const (
	Unbuilt SystemState = iota
	GeometryLoaded
	InfluenceCoefficientsCurrent
	NormalVelocitiesCurrent
	CirculationCurrent
	NearFieldCurrent
)

func (st SystemState) String() string {
	return []string{
		"unbuilt",
		"geometry loaded",
		"influence coefficients current",
		"normal velocities current",
		"circulation current",
		"near field current",
	}[int(st)]
}

// PanelProperties is the per-panel derived output of a near-field pass:
// normalized circulation, local velocity at the bound vortex center, and
// the force coefficient contributions of the three bound segments.
type PanelProperties struct {
	Gamma                  float64
	Velocity               utils.Vec3
	CFTop, CFLeft, CFRight utils.Vec3
}

// System owns the surfaces, flow state and all solution storage for one
// analysis. It is not safe for concurrent mutation; a single analysis call
// parallelizes internally over disjoint data.
type System struct {
	Surfaces []*Surface
	FS       *Freestream
	Ref      *Reference

	// TrailingVortices switches the semi-infinite trailing system on. It is
	// turned off when a resolved wake lattice supplies that physics.
	TrailingVortices bool
	Xhat             utils.Vec3

	// ParallelDegree limits the goroutines used for influence assembly;
	// zero means use all CPUs.
	ParallelDegree int

	Wakes []*Wake

	state   SystemState
	offsets []int // global circulation index of each surface's first panel
	nTotal  int

	AIC    utils.Matrix
	lu     *utils.LU
	w      []float64
	wd     [NDeriv][]float64
	Gamma  []float64
	Gammad [NDeriv][]float64

	cf, cm     DualVec // body-frame accumulated coefficients
	Properties [][]PanelProperties
}

// NewSystem builds a system from externally constructed surfaces. Surfaces
// sharing an ID are treated as the same physical surface (shared filaments,
// no finite core between them).
func NewSystem(surfaces []*Surface, fs *Freestream, ref *Reference) (sys *System, err error) {
	if len(surfaces) == 0 {
		err = fmt.Errorf("system needs at least one surface")
		return
	}
	if fs == nil || ref == nil {
		err = fmt.Errorf("system needs freestream and reference records")
		return
	}
	if ref.S <= 0 || ref.C <= 0 || ref.B <= 0 {
		err = fmt.Errorf("reference quantities must be positive: S=%g, c=%g, b=%g", ref.S, ref.C, ref.B)
		return
	}
	sys = &System{
		Surfaces:         surfaces,
		FS:               fs,
		Ref:              ref,
		TrailingVortices: true,
		Xhat:             utils.Vec3{1, 0, 0},
		state:            GeometryLoaded,
	}
	sys.offsets = make([]int, len(surfaces))
	for n, s := range surfaces {
		sys.offsets[n] = sys.nTotal
		sys.nTotal += s.N()
	}
	return
}

func (sys *System) N() int { return sys.nTotal }

func (sys *System) State() SystemState { return sys.state }

// SurfaceGamma returns the slice of the circulation vector belonging to
// surface n.
func (sys *System) SurfaceGamma(n int) []float64 {
	return sys.Gamma[sys.offsets[n] : sys.offsets[n]+sys.Surfaces[n].N()]
}

func (sys *System) surfaceGammaDual(n int) (g []Dual) {
	var (
		o = sys.offsets[n]
		s = sys.Surfaces[n]
	)
	g = make([]Dual, s.N())
	for k := range g {
		g[k].V = sys.Gamma[o+k]
		for d := 0; d < NDeriv; d++ {
			g[k].D[d] = sys.Gammad[d][o+k]
		}
	}
	return
}

func (sys *System) requireState(need SystemState, stage string) error {
	if sys.state < need {
		return fmt.Errorf("stale dependency: %s requires state %q, system is at %q", stage, need, sys.state)
	}
	return nil
}

// SetFreestream replaces the flow state. The influence matrix depends only
// on geometry, so its factorization survives; everything downstream is
// invalidated.
func (sys *System) SetFreestream(fs *Freestream) {
	sys.FS = fs
	if sys.state > InfluenceCoefficientsCurrent {
		sys.state = InfluenceCoefficientsCurrent
	}
}

// SetSurfaces replaces the geometry and invalidates every derived stage.
func (sys *System) SetSurfaces(surfaces []*Surface) error {
	if len(surfaces) == 0 {
		return fmt.Errorf("system needs at least one surface")
	}
	sys.Surfaces = surfaces
	sys.offsets = make([]int, len(surfaces))
	sys.nTotal = 0
	for n, s := range surfaces {
		sys.offsets[n] = sys.nTotal
		sys.nTotal += s.N()
	}
	sys.state = GeometryLoaded
	return nil
}

func (sys *System) parallelDegree() (np int) {
	np = sys.ParallelDegree
	if np <= 0 {
		np = runtime.NumCPU()
	}
	return
}

// pairOpts derives the influence evaluation mode for a receiving surface and
// a sending surface once, then passes it down the kernel loops.
func (sys *System) pairOpts(receiving, sending *Surface) InfluenceOpts {
	return InfluenceOpts{
		SameID:           receiving != nil && receiving.ID == sending.ID,
		TrailingVortices: sys.TrailingVortices,
		Xhat:             sys.Xhat,
	}
}

// InducedVelocityAt sums the induced velocity at an arbitrary point from all
// surfaces and wakes with known circulations. The receiving surface (nil for
// off-body points) selects shared-edge accounting per sender.
func (sys *System) InducedVelocityAt(r utils.Vec3, receiving *Surface) (V utils.Vec3) {
	for n, s := range sys.Surfaces {
		V = V.Add(s.InducedVelocity(r, sys.SurfaceGamma(n), sys.pairOpts(receiving, s)))
	}
	for _, w := range sys.Wakes {
		V = V.Add(w.InducedVelocity(r))
	}
	return
}

// Analyze runs the full steady pipeline in order.
func (sys *System) Analyze() (err error) {
	if err = sys.InfluenceCoefficients(); err != nil {
		return
	}
	if err = sys.NormalVelocities(); err != nil {
		return
	}
	if err = sys.Circulation(); err != nil {
		return
	}
	return sys.NearFieldProperties()
}
