package VLM

import (
	"fmt"

	"github.com/openaero/govlm/utils"
)

// Wake is a resolved lattice of shed vortex rings behind one surface. It is
// stored as a vertex grid of (rows+1) x (Ns+1) points with one circulation
// value per ring; row 0 is pinned to the trailing edge and older rows convect
// downstream. Wake filaments always carry a finite core: wake vertices drift
// and close encounters with control points are routine, not exceptional.
type Wake struct {
	Symmetric bool
	Ns        int
	MaxRows   int
	Core      float64

	rows     int
	vertices []utils.Vec3
	gamma    []float64
}

// NewWake starts an empty wake attached to the given trailing-edge points.
func NewWake(te []utils.Vec3, maxRows int, core float64, symmetric bool) (w *Wake, err error) {
	if len(te) < 2 {
		err = fmt.Errorf("wake needs at least two trailing edge points, have %d", len(te))
		return
	}
	if maxRows < 1 {
		err = fmt.Errorf("wake row cap must be positive, have %d", maxRows)
		return
	}
	w = &Wake{
		Symmetric: symmetric,
		Ns:        len(te) - 1,
		MaxRows:   maxRows,
		Core:      core,
		vertices:  append([]utils.Vec3(nil), te...),
	}
	return
}

func (w *Wake) NRows() int { return w.rows }

func (w *Wake) vertex(i, j int) utils.Vec3 { return w.vertices[i*(w.Ns+1)+j] }

// Panel returns the corner points and circulation of wake ring (i, j), row 0
// nearest the trailing edge.
func (w *Wake) Panel(i, j int) (tl, tr, bl, br utils.Vec3, gamma float64) {
	tl, tr = w.vertex(i, j), w.vertex(i, j+1)
	bl, br = w.vertex(i+1, j), w.vertex(i+1, j+1)
	gamma = w.gamma[i*w.Ns+j]
	return
}

func wakeSegment(rcp, a, b utils.Vec3, core float64, symmetric bool) (V utils.Vec3) {
	V = BoundInducedVelocity(rcp.Sub(a), rcp.Sub(b), true, core)
	if symmetric {
		V = V.Add(boundImage(rcp, a, b, true, core))
	}
	return
}

// InducedVelocity sums the velocity at r induced by every wake ring, with
// mirrored images when the parent surface is a symmetric half model.
func (w *Wake) InducedVelocity(r utils.Vec3) (V utils.Vec3) {
	for i := 0; i < w.rows; i++ {
		for j := 0; j < w.Ns; j++ {
			tl, tr, bl, br, g := w.Panel(i, j)
			var vp utils.Vec3
			vp = vp.Add(wakeSegment(r, tl, tr, w.Core, w.Symmetric))
			vp = vp.Add(wakeSegment(r, tr, br, w.Core, w.Symmetric))
			vp = vp.Add(wakeSegment(r, br, bl, w.Core, w.Symmetric))
			vp = vp.Add(wakeSegment(r, bl, tl, w.Core, w.Symmetric))
			V = V.Add(vp.Scale(g))
		}
	}
	return
}

// Propagate convects every wake vertex with the velocity field vel over one
// time step. The trailing-edge row moves too; Shed re-pins a fresh row there.
func (w *Wake) Propagate(dt float64, vel func(utils.Vec3) utils.Vec3) {
	for k, p := range w.vertices {
		w.vertices[k] = p.Add(vel(p).Scale(dt))
	}
}

// Shed prepends a new ring row between the trailing edge and the previously
// shed row, carrying the current trailing-edge circulation. The oldest row is
// dropped once the cap is reached.
func (w *Wake) Shed(te []utils.Vec3, gamma []float64) (err error) {
	if len(te) != w.Ns+1 || len(gamma) != w.Ns {
		err = fmt.Errorf("shed row shape mismatch: want %d points and %d circulations, have %d and %d",
			w.Ns+1, w.Ns, len(te), len(gamma))
		return
	}
	w.vertices = append(append([]utils.Vec3(nil), te...), w.vertices...)
	w.gamma = append(append([]float64(nil), gamma...), w.gamma...)
	w.rows++
	if w.rows > w.MaxRows {
		w.rows = w.MaxRows
		w.vertices = w.vertices[:(w.rows+1)*(w.Ns+1)]
		w.gamma = w.gamma[:w.rows*w.Ns]
	}
	return
}

// trailingEdgePoints collects the Ns+1 shedding stations along the trailing
// edge.
func (s *Surface) trailingEdgePoints() (pts []utils.Vec3) {
	pts = make([]utils.Vec3, s.Ns+1)
	te := s.Nc - 1
	for j := 0; j < s.Ns; j++ {
		pts[j] = s.Panel(te, j).BottomLeft()
	}
	pts[s.Ns] = s.Panel(te, s.Ns-1).BottomRight()
	return
}

// wakeCore picks the largest trailing-edge panel core as the wake core size.
func (s *Surface) wakeCore() (core float64) {
	te := s.Nc - 1
	for j := 0; j < s.Ns; j++ {
		if c := s.Panel(te, j).CoreSize(); c > core {
			core = c
		}
	}
	return
}

// shedCirculation is the trailing vorticity leaving the edge between adjacent
// stations: the trailing-edge row circulation on a ring lattice, the column
// sum on a horseshoe lattice whose every panel runs legs to the edge.
func (sys *System) shedCirculation(n int) (g []float64) {
	var (
		s  = sys.Surfaces[n]
		sg = sys.SurfaceGamma(n)
	)
	g = make([]float64, s.Ns)
	if s.ringLattice() {
		copy(g, sg[(s.Nc-1)*s.Ns:])
		return
	}
	for i := 0; i < s.Nc; i++ {
		for j := 0; j < s.Ns; j++ {
			g[j] += sg[i*s.Ns+j]
		}
	}
	return
}

// UnsteadyOptions configures a time-marching wake run.
type UnsteadyOptions struct {
	Dt          float64
	Steps       int
	MaxWakeRows int  // zero means keep every shed row
	Frozen      bool // convect the wake with the external flow only
}

// UnsteadyResult is the body-frame force and moment coefficient record of one
// time step.
type UnsteadyResult struct {
	Time   float64
	CF, CM utils.Vec3
}

// RunUnsteady time-marches an impulsively started flow: each step solves the
// circulation against the current wake, records forces, convects the wake and
// sheds a fresh ring row at the trailing edge. The semi-infinite trailing
// system is switched off for the whole run since the resolved wake supplies
// that physics.
func (sys *System) RunUnsteady(opts UnsteadyOptions) (hist []UnsteadyResult, err error) {
	if err = sys.requireState(GeometryLoaded, "unsteady run"); err != nil {
		return
	}
	if opts.Dt <= 0 || opts.Steps <= 0 {
		err = fmt.Errorf("unsteady run needs positive dt and step count, have dt=%g, steps=%d", opts.Dt, opts.Steps)
		return
	}
	if opts.MaxWakeRows <= 0 {
		opts.MaxWakeRows = opts.Steps
	}
	sys.TrailingVortices = false
	sys.Wakes = sys.Wakes[:0]
	for _, s := range sys.Surfaces {
		var w *Wake
		if w, err = NewWake(s.trailingEdgePoints(), opts.MaxWakeRows, s.wakeCore(), s.Symmetric); err != nil {
			return
		}
		sys.Wakes = append(sys.Wakes, w)
	}
	if err = sys.InfluenceCoefficients(); err != nil {
		return
	}
	vel := func(r utils.Vec3) utils.Vec3 {
		V := sys.FS.ExternalVelocity(r, sys.Ref)
		if !opts.Frozen {
			V = V.Add(sys.InducedVelocityAt(r, nil))
		}
		return V
	}
	hist = make([]UnsteadyResult, 0, opts.Steps)
	for step := 0; step < opts.Steps; step++ {
		if err = sys.NormalVelocities(); err != nil {
			return
		}
		if err = sys.Circulation(); err != nil {
			return
		}
		if err = sys.NearFieldProperties(); err != nil {
			return
		}
		var rec UnsteadyResult
		rec.Time = float64(step+1) * opts.Dt
		if rec.CF, rec.CM, err = sys.BodyForces(Body); err != nil {
			return
		}
		hist = append(hist, rec)

		shed := make([][]float64, len(sys.Surfaces))
		for n := range sys.Surfaces {
			shed[n] = sys.shedCirculation(n)
		}
		for n, w := range sys.Wakes {
			w.Propagate(opts.Dt, vel)
			if err = w.Shed(sys.Surfaces[n].trailingEdgePoints(), shed[n]); err != nil {
				return
			}
		}
		// Wake geometry changed; everything past the factorization is stale.
		sys.state = InfluenceCoefficientsCurrent
	}
	return
}
