package VLM

import (
	"fmt"

	"github.com/openaero/govlm/utils"
)

// Surface is an ordered chordwise x spanwise grid of panels. The grid index
// carries positional meaning: row 0 is the leading edge, row Nc-1 the
// trailing edge; interior rows and columns share vortex filaments with their
// neighbors. Panels are stored row-major, k = i*Ns + j.
type Surface struct {
	ID        int
	Symmetric bool
	Nc, Ns    int
	Panels    []Panel
}

func NewSurface(id int, symmetric bool, nc, ns int, panels []Panel) (s *Surface, err error) {
	if nc < 1 || ns < 1 {
		err = fmt.Errorf("surface dimensions must be positive, have %d x %d", nc, ns)
		return
	}
	if len(panels) != nc*ns {
		err = fmt.Errorf("panel count mismatch: %d x %d grid needs %d panels, have %d", nc, ns, nc*ns, len(panels))
		return
	}
	_, isRing := panels[0].(Ring)
	for _, p := range panels {
		if _, ok := p.(Ring); ok != isRing {
			err = fmt.Errorf("surface mixes horseshoe and ring panels")
			return
		}
	}
	if symmetric && allOnSymmetryPlane(panels) {
		err = fmt.Errorf("symmetric surface lies on the symmetry plane: every filament cancels against its own image")
		return
	}
	s = &Surface{ID: id, Symmetric: symmetric, Nc: nc, Ns: ns, Panels: panels}
	return
}

func (s *Surface) Panel(i, j int) Panel { return s.Panels[i*s.Ns+j] }
func (s *Surface) N() int               { return len(s.Panels) }

// OnTrailingEdge reports whether grid row i sheds trailing vorticity.
func (s *Surface) OnTrailingEdge(i int) bool { return i == s.Nc-1 }

func (s *Surface) ringLattice() bool {
	_, ok := s.Panels[0].(Ring)
	return ok
}

// InfluenceOpts selects the evaluation mode for a (receiver, sender) surface
// pair. SameID means the receiver belongs to the same physical surface, so
// adjacent panels genuinely share filaments (shared-edge accounting, no
// finite core). Distinct IDs model viscous cores on every filament instead.
type InfluenceOpts struct {
	SameID           bool
	TrailingVortices bool
	Xhat             utils.Vec3
}

// Influence computes the velocity induced at rcp per unit circulation on
// each panel of the surface, including mirrored-image filaments when the
// surface is symmetric.
func (s *Surface) Influence(rcp utils.Vec3, opts InfluenceOpts) (v []utils.Vec3) {
	v = make([]utils.Vec3, len(s.Panels))
	if opts.SameID && s.ringLattice() {
		s.influenceShared(rcp, opts, v)
	} else {
		s.influenceDirect(rcp, opts, v)
	}
	return
}

// InducedVelocity sums the influence coefficients against known panel
// circulations.
func (s *Surface) InducedVelocity(rcp utils.Vec3, gamma []float64, opts InfluenceOpts) (V utils.Vec3) {
	for k, vk := range s.Influence(rcp, opts) {
		V = V.Add(vk.Scale(gamma[k]))
	}
	return
}

// InducedVelocityDual is the derivative-carrying twin of InducedVelocity.
// The kernel has no freestream dependence, so the shadows are linear
// combinations of the same geometric coefficients.
func (s *Surface) InducedVelocityDual(rcp utils.Vec3, gamma []Dual, opts InfluenceOpts) (V DualVec) {
	for k, vk := range s.Influence(rcp, opts) {
		V = V.Add(DualVec{}.AddVec(vk).ScaleDual(gamma[k]))
	}
	return
}

// boundImage adds the mirrored-image contribution of filament a->b: flip the
// endpoints across y=0 and reverse the traversal so circulation remains
// continuous across the symmetry plane. A filament lying on the plane meets
// its own reversed image, so the pair sums to zero, exactly as the coincident
// opposite-sign filaments of an explicitly mirrored panel would cancel.
func boundImage(rcp, a, b utils.Vec3, finiteCore bool, core float64) utils.Vec3 {
	return BoundInducedVelocity(rcp.Sub(b.FlipY()), rcp.Sub(a.FlipY()), finiteCore, core)
}

func trailingImage(rcp, p, xhat utils.Vec3, finiteCore bool, core float64) utils.Vec3 {
	return TrailingInducedVelocity(rcp.Sub(p.FlipY()), xhat.FlipY(), finiteCore, core).Scale(-1)
}

// segment evaluates a bound filament a->b and, for symmetric surfaces, its
// mirror image.
func (s *Surface) segment(rcp, a, b utils.Vec3, finiteCore bool, core float64) (V utils.Vec3) {
	V = BoundInducedVelocity(rcp.Sub(a), rcp.Sub(b), finiteCore, core)
	if s.Symmetric {
		V = V.Add(boundImage(rcp, a, b, finiteCore, core))
	}
	return
}

// leg evaluates a semi-infinite trailing filament shed from p and, for
// symmetric surfaces, its mirror image.
func (s *Surface) leg(rcp, p, xhat utils.Vec3, finiteCore bool, core float64) (V utils.Vec3) {
	V = TrailingInducedVelocity(rcp.Sub(p), xhat, finiteCore, core)
	if s.Symmetric {
		V = V.Add(trailingImage(rcp, p, xhat, finiteCore, core))
	}
	return
}

// influenceDirect evaluates every filament of every panel independently.
// Required when the receiver belongs to a different surface (finite core,
// no physically shared filaments) and for horseshoe lattices, whose legs
// overlap rather than coincide.
func (s *Surface) influenceDirect(rcp utils.Vec3, opts InfluenceOpts, v []utils.Vec3) {
	var (
		finiteCore = !opts.SameID
		xhat       = opts.Xhat
	)
	for i := 0; i < s.Nc; i++ {
		for j := 0; j < s.Ns; j++ {
			var (
				k    = i*s.Ns + j
				p    = s.Panels[k]
				core = p.CoreSize()
				onTE = s.OnTrailingEdge(i)
			)
			switch pp := p.(type) {
			case Horseshoe:
				var (
					rl, rr = pp.TopLeft(), pp.TopRight()
					bl, br = pp.BottomLeft(), pp.BottomRight()
				)
				if opts.TrailingVortices {
					v[k] = v[k].Sub(s.leg(rcp, bl, xhat, finiteCore, core))
					v[k] = v[k].Add(s.leg(rcp, br, xhat, finiteCore, core))
				}
				v[k] = v[k].Add(s.segment(rcp, bl, rl, finiteCore, core))
				v[k] = v[k].Add(s.segment(rcp, rl, rr, finiteCore, core))
				v[k] = v[k].Add(s.segment(rcp, rr, br, finiteCore, core))
			case Ring:
				var (
					tl, tr = pp.TopLeft(), pp.TopRight()
					bl, br = pp.BottomLeft(), pp.BottomRight()
				)
				v[k] = v[k].Add(s.segment(rcp, tl, tr, finiteCore, core))
				v[k] = v[k].Add(s.segment(rcp, tr, br, finiteCore, core))
				if onTE && opts.TrailingVortices {
					v[k] = v[k].Add(s.leg(rcp, br, xhat, finiteCore, core))
					v[k] = v[k].Sub(s.leg(rcp, bl, xhat, finiteCore, core))
				} else {
					v[k] = v[k].Add(s.segment(rcp, br, bl, finiteCore, core))
				}
				v[k] = v[k].Add(s.segment(rcp, bl, tl, finiteCore, core))
			}
		}
	}
}

// influenceShared exploits shared filaments on a same-ID ring lattice: each
// interior filament is evaluated once and scattered with opposite signs into
// the two panel slots that own it, halving kernel evaluations. This is an
// algebraic identity, not an approximation.
func (s *Surface) influenceShared(rcp utils.Vec3, opts InfluenceOpts, v []utils.Vec3) {
	var (
		nc, ns = s.Nc, s.Ns
		xhat   = opts.Xhat
	)
	// Spanwise-running bound filaments at chord stations i = 0..nc. Station
	// i is the top edge of row i and the bottom edge of row i-1.
	for i := 0; i <= nc; i++ {
		for j := 0; j < ns; j++ {
			var (
				a, b utils.Vec3
				core float64
			)
			if i < nc {
				p := s.Panel(i, j)
				a, b = p.TopLeft(), p.TopRight()
				core = p.CoreSize()
			} else {
				p := s.Panel(nc-1, j)
				a, b = p.BottomLeft(), p.BottomRight()
				core = p.CoreSize()
			}
			if i == nc && opts.TrailingVortices {
				// The trailing-edge closing segment is replaced by the
				// shed trailing legs below.
				continue
			}
			vt := s.segment(rcp, a, b, false, core)
			if i < nc {
				v[i*ns+j] = v[i*ns+j].Add(vt)
			}
			if i > 0 {
				v[(i-1)*ns+j] = v[(i-1)*ns+j].Sub(vt)
			}
		}
	}
	// Chordwise-running side filaments at span stations j = 0..ns. Station
	// j is the left edge of column j and the right edge of column j-1,
	// traversed top -> bottom (downstream).
	for i := 0; i < nc; i++ {
		for j := 0; j <= ns; j++ {
			var (
				a, b utils.Vec3
				core float64
			)
			if j < ns {
				p := s.Panel(i, j)
				a, b = p.TopLeft(), p.BottomLeft()
				core = p.CoreSize()
			} else {
				p := s.Panel(i, ns-1)
				a, b = p.TopRight(), p.BottomRight()
				core = p.CoreSize()
			}
			vs := s.segment(rcp, a, b, false, core)
			if j > 0 {
				v[i*ns+j-1] = v[i*ns+j-1].Add(vs)
			}
			if j < ns {
				v[i*ns+j] = v[i*ns+j].Sub(vs)
			}
		}
	}
	// Semi-infinite trailing legs at span stations of the trailing-edge
	// row. Station j is the left leg of column j and the right leg of
	// column j-1.
	if opts.TrailingVortices {
		var (
			te = nc - 1
		)
		for j := 0; j <= ns; j++ {
			var (
				pt   utils.Vec3
				core float64
			)
			if j < ns {
				p := s.Panel(te, j)
				pt = p.BottomLeft()
				core = p.CoreSize()
			} else {
				p := s.Panel(te, ns-1)
				pt = p.BottomRight()
				core = p.CoreSize()
			}
			vt := s.leg(rcp, pt, xhat, false, core)
			if j > 0 {
				v[te*ns+j-1] = v[te*ns+j-1].Add(vt)
			}
			if j < ns {
				v[te*ns+j] = v[te*ns+j].Sub(vt)
			}
		}
	}
}
