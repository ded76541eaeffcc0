package VLM

import (
	"fmt"
	"math"
	"strings"

	"github.com/openaero/govlm/utils"
)

// Freestream holds the onset flow state. All velocities are normalized by
// the reference freestream speed, so the freestream direction vector has
// unit magnitude and Omega holds the normalized body rotation rates
// (p, q, r). AdditionalVelocity optionally supplies an extra externally
// prescribed velocity field (e.g. gusts), also normalized.
type Freestream struct {
	Alpha, Beta        float64
	Omega              utils.Vec3
	AdditionalVelocity func(r utils.Vec3) utils.Vec3
}

// Velocity returns the unit freestream direction in body axes.
func (fs *Freestream) Velocity() utils.Vec3 {
	var (
		sa, ca = math.Sin(fs.Alpha), math.Cos(fs.Alpha)
		sb, cb = math.Sin(fs.Beta), math.Cos(fs.Beta)
	)
	return utils.Vec3{ca * cb, -sb, sa * cb}
}

// VelocityDerivatives returns the alpha and beta derivatives of the
// freestream direction.
func (fs *Freestream) VelocityDerivatives() (dVa, dVb utils.Vec3) {
	var (
		sa, ca = math.Sin(fs.Alpha), math.Cos(fs.Alpha)
		sb, cb = math.Sin(fs.Beta), math.Cos(fs.Beta)
	)
	dVa = utils.Vec3{-sa * cb, 0, ca * cb}
	dVb = utils.Vec3{-ca * sb, -cb, -sa * sb}
	return
}

// RotationalVelocity is the apparent flow at r due to body rotation about
// the reference point.
func (fs *Freestream) RotationalVelocity(r utils.Vec3, ref *Reference) utils.Vec3 {
	return r.Sub(ref.R).Cross(fs.Omega)
}

// ExternalVelocity is the full externally imposed velocity at r: freestream
// plus rotation plus any user-supplied field.
func (fs *Freestream) ExternalVelocity(r utils.Vec3, ref *Reference) (V utils.Vec3) {
	V = fs.Velocity().Add(fs.RotationalVelocity(r, ref))
	if fs.AdditionalVelocity != nil {
		V = V.Add(fs.AdditionalVelocity(r))
	}
	return
}

// ExternalVelocityDual carries the external velocity together with its five
// derivatives. The additional velocity field is held fixed, so it
// contributes nothing to the shadows.
func (fs *Freestream) ExternalVelocityDual(r utils.Vec3, ref *Reference) (V DualVec) {
	var (
		dVa, dVb = fs.VelocityDerivatives()
		arm      = r.Sub(ref.R)
	)
	V.V = fs.ExternalVelocity(r, ref)
	V.D[DerivAlpha] = dVa
	V.D[DerivBeta] = dVb
	V.D[DerivP] = arm.Cross(utils.Vec3{1, 0, 0})
	V.D[DerivQ] = arm.Cross(utils.Vec3{0, 1, 0})
	V.D[DerivR] = arm.Cross(utils.Vec3{0, 0, 1})
	return
}

// Trailing vortices extend downstream along the freestream-aligned x axis.
func (fs *Freestream) TrailingDirection() utils.Vec3 {
	return utils.Vec3{1, 0, 0}
}

// Frame selects the axis system for force and moment coefficient output.
// The set is closed: exactly three frames exist.
type Frame uint8

const (
	Body Frame = iota
	Stability
	Wind
)

func (f Frame) String() string {
	return []string{"body", "stability", "wind"}[int(f)]
}

var FrameNames = map[string]Frame{
	"body":      Body,
	"stability": Stability,
	"wind":      Wind,
}

func NewFrame(label string) (f Frame) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return Body
	}
	label = strings.ToLower(label)
	if f, ok = FrameNames[label]; !ok {
		err = fmt.Errorf("unable to use frame named %s", label)
		panic(err)
	}
	return
}

// BodyToStability rotates body axes by alpha only.
func (fs *Freestream) BodyToStability() utils.Mat3 {
	var (
		sa, ca = math.Sin(fs.Alpha), math.Cos(fs.Alpha)
	)
	return utils.Mat3{
		{ca, 0, sa},
		{0, 1, 0},
		{-sa, 0, ca},
	}
}

// BodyToStabilityDerivative is the alpha derivative of BodyToStability.
func (fs *Freestream) BodyToStabilityDerivative() utils.Mat3 {
	var (
		sa, ca = math.Sin(fs.Alpha), math.Cos(fs.Alpha)
	)
	return utils.Mat3{
		{-sa, 0, ca},
		{0, 0, 0},
		{-ca, 0, -sa},
	}
}

// BodyToWind rotates body axes by alpha then beta, aligning x with the
// freestream direction.
func (fs *Freestream) BodyToWind() utils.Mat3 {
	var (
		sa, ca = math.Sin(fs.Alpha), math.Cos(fs.Alpha)
		sb, cb = math.Sin(fs.Beta), math.Cos(fs.Beta)
	)
	return utils.Mat3{
		{ca * cb, -sb, sa * cb},
		{ca * sb, cb, sa * sb},
		{-sa, 0, ca},
	}
}

// BodyToWindDerivatives returns the alpha and beta derivatives of BodyToWind.
func (fs *Freestream) BodyToWindDerivatives() (dRa, dRb utils.Mat3) {
	var (
		sa, ca = math.Sin(fs.Alpha), math.Cos(fs.Alpha)
		sb, cb = math.Sin(fs.Beta), math.Cos(fs.Beta)
	)
	dRa = utils.Mat3{
		{-sa * cb, 0, ca * cb},
		{-sa * sb, 0, ca * sb},
		{-ca, 0, -sa},
	}
	dRb = utils.Mat3{
		{-ca * sb, -cb, -sa * sb},
		{ca * cb, -sb, sa * cb},
		{0, 0, 0},
	}
	return
}

// RotationMatrix returns the body-to-frame rotation for coefficient output.
func (fs *Freestream) RotationMatrix(frame Frame) utils.Mat3 {
	switch frame {
	case Stability:
		return fs.BodyToStability()
	case Wind:
		return fs.BodyToWind()
	default:
		return utils.Mat3Ident()
	}
}

// Reference holds the normalization quantities: area, chord, span and the
// moment reference point. Never mutated during a solve.
type Reference struct {
	S float64
	C float64
	B float64
	R utils.Vec3
}
