package VLM

import (
	"github.com/openaero/govlm/utils"
)

// Tolerance for deciding that a point lies on the y=0 symmetry plane. A
// surface placed entirely on the plane is its own mirror image and cannot be
// analyzed as a symmetric half model.
const SymmetryTol = 1.e-12

// Panel is the closed interface over the two concrete vortex panel shapes.
// Corner ordering is consistent across a surface: "top" is the upstream
// (leading) bound vortex of the panel, left/right follow increasing span.
// Panels are immutable; the transform methods return new values.
type Panel interface {
	TopLeft() utils.Vec3
	TopRight() utils.Vec3
	BottomLeft() utils.Vec3
	BottomRight() utils.Vec3
	TopCenter() utils.Vec3
	BottomCenter() utils.Vec3
	ControlPoint() utils.Vec3
	Normal() utils.Vec3
	CoreSize() float64

	Translate(dr utils.Vec3) Panel
	Reflect() Panel
	Rotate(R utils.Mat3, point utils.Vec3) Panel
}

// Horseshoe is a bound vortex at the panel quarter chord whose legs run
// chordwise to the trailing edge and then downstream to infinity. Rl and Rr
// are the bound vortex endpoints; XlTE and XrTE are the chordwise distances
// from those endpoints to the trailing edge.
type Horseshoe struct {
	Rl, Rr     utils.Vec3
	Rcp        utils.Vec3
	Ncp        utils.Vec3
	XlTE, XrTE float64
	Core       float64
}

func (h Horseshoe) TopLeft() utils.Vec3  { return h.Rl }
func (h Horseshoe) TopRight() utils.Vec3 { return h.Rr }

// The bottom corners of a horseshoe lie on the trailing edge, where the legs
// turn downstream.
func (h Horseshoe) BottomLeft() utils.Vec3 {
	return h.Rl.Add(utils.Vec3{h.XlTE, 0, 0})
}

func (h Horseshoe) BottomRight() utils.Vec3 {
	return h.Rr.Add(utils.Vec3{h.XrTE, 0, 0})
}

func (h Horseshoe) TopCenter() utils.Vec3    { return h.Rl.Midpoint(h.Rr) }
func (h Horseshoe) BottomCenter() utils.Vec3 { return h.BottomLeft().Midpoint(h.BottomRight()) }
func (h Horseshoe) ControlPoint() utils.Vec3 { return h.Rcp }
func (h Horseshoe) Normal() utils.Vec3       { return h.Ncp }
func (h Horseshoe) CoreSize() float64        { return h.Core }

func (h Horseshoe) Translate(dr utils.Vec3) Panel {
	h.Rl = h.Rl.Add(dr)
	h.Rr = h.Rr.Add(dr)
	h.Rcp = h.Rcp.Add(dr)
	return h
}

// Reflect mirrors the panel across y=0, swapping left and right so the corner
// ordering invariant survives.
func (h Horseshoe) Reflect() Panel {
	h.Rl, h.Rr = h.Rr.FlipY(), h.Rl.FlipY()
	h.XlTE, h.XrTE = h.XrTE, h.XlTE
	h.Rcp = h.Rcp.FlipY()
	h.Ncp = h.Ncp.FlipY()
	return h
}

func (h Horseshoe) Rotate(R utils.Mat3, point utils.Vec3) Panel {
	h.Rl = R.MulVec(h.Rl.Sub(point)).Add(point)
	h.Rr = R.MulVec(h.Rr.Sub(point)).Add(point)
	h.Rcp = R.MulVec(h.Rcp.Sub(point)).Add(point)
	h.Ncp = R.MulVec(h.Ncp)
	return h
}

// Ring is a general closed vortex ring with four independent corners.
// Circulation runs top-left -> top-right -> bottom-right -> bottom-left.
type Ring struct {
	Rtl, Rtr utils.Vec3
	Rbl, Rbr utils.Vec3
	Rcp      utils.Vec3
	Ncp      utils.Vec3
	Core     float64
}

func (p Ring) TopLeft() utils.Vec3      { return p.Rtl }
func (p Ring) TopRight() utils.Vec3     { return p.Rtr }
func (p Ring) BottomLeft() utils.Vec3   { return p.Rbl }
func (p Ring) BottomRight() utils.Vec3  { return p.Rbr }
func (p Ring) TopCenter() utils.Vec3    { return p.Rtl.Midpoint(p.Rtr) }
func (p Ring) BottomCenter() utils.Vec3 { return p.Rbl.Midpoint(p.Rbr) }
func (p Ring) ControlPoint() utils.Vec3 { return p.Rcp }
func (p Ring) Normal() utils.Vec3       { return p.Ncp }
func (p Ring) CoreSize() float64        { return p.Core }

func (p Ring) Translate(dr utils.Vec3) Panel {
	p.Rtl = p.Rtl.Add(dr)
	p.Rtr = p.Rtr.Add(dr)
	p.Rbl = p.Rbl.Add(dr)
	p.Rbr = p.Rbr.Add(dr)
	p.Rcp = p.Rcp.Add(dr)
	return p
}

func (p Ring) Reflect() Panel {
	p.Rtl, p.Rtr = p.Rtr.FlipY(), p.Rtl.FlipY()
	p.Rbl, p.Rbr = p.Rbr.FlipY(), p.Rbl.FlipY()
	p.Rcp = p.Rcp.FlipY()
	p.Ncp = p.Ncp.FlipY()
	return p
}

func (p Ring) Rotate(R utils.Mat3, point utils.Vec3) Panel {
	p.Rtl = R.MulVec(p.Rtl.Sub(point)).Add(point)
	p.Rtr = R.MulVec(p.Rtr.Sub(point)).Add(point)
	p.Rbl = R.MulVec(p.Rbl.Sub(point)).Add(point)
	p.Rbr = R.MulVec(p.Rbr.Sub(point)).Add(point)
	p.Rcp = R.MulVec(p.Rcp.Sub(point)).Add(point)
	p.Ncp = R.MulVec(p.Ncp)
	return p
}

// onSymmetryPlane reports whether every given point lies on y=0 within
// tolerance.
func onSymmetryPlane(pts ...utils.Vec3) bool {
	for _, p := range pts {
		if p[1] > SymmetryTol || p[1] < -SymmetryTol {
			return false
		}
	}
	return true
}

// allOnSymmetryPlane reports whether every corner of every panel lies on y=0.
func allOnSymmetryPlane(panels []Panel) bool {
	for _, p := range panels {
		if !onSymmetryPlane(p.TopLeft(), p.TopRight(), p.BottomLeft(), p.BottomRight()) {
			return false
		}
	}
	return true
}
