package VLM

import (
	"fmt"
	"math"
	"strings"

	"github.com/openaero/govlm/utils"
)

// Spacing selects the panel distribution along a grid direction.
type Spacing uint8

const (
	Uniform Spacing = iota
	Sine
	Cosine
)

func (sp Spacing) String() string {
	return []string{"uniform", "sine", "cosine"}[int(sp)]
}

var SpacingNames = map[string]Spacing{
	"uniform": Uniform,
	"sine":    Sine,
	"cosine":  Cosine,
}

func NewSpacing(label string) (sp Spacing) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return Uniform
	}
	label = strings.ToLower(label)
	if sp, ok = SpacingNames[label]; !ok {
		err = fmt.Errorf("unable to use spacing named %s", label)
		panic(err)
	}
	return
}

// fractions returns n+1 monotone station fractions in [0, 1].
func (sp Spacing) fractions(n int) (f []float64) {
	f = make([]float64, n+1)
	for k := 0; k <= n; k++ {
		t := float64(k) / float64(n)
		switch sp {
		case Sine:
			f[k] = math.Sin(0.5 * math.Pi * t)
		case Cosine:
			f[k] = 0.5 * (1. - math.Cos(math.Pi*t))
		default:
			f[k] = t
		}
	}
	f[0], f[n] = 0, 1
	return
}

// PanelShape selects the concrete panel variant a generated surface uses.
type PanelShape uint8

const (
	RingPanels PanelShape = iota
	HorseshoePanels
)

func (ps PanelShape) String() string {
	return []string{"ring", "horseshoe"}[int(ps)]
}

var ShapeNames = map[string]PanelShape{
	"ring":      RingPanels,
	"horseshoe": HorseshoePanels,
}

func NewPanelShape(label string) (ps PanelShape) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return RingPanels
	}
	label = strings.ToLower(label)
	if ps, ok = ShapeNames[label]; !ok {
		err = fmt.Errorf("unable to use panel shape named %s", label)
		panic(err)
	}
	return
}

// WingSection is one spanwise station of a linearly lofted lifting surface:
// leading edge position, chord and twist (radians, positive nose-up).
type WingSection struct {
	LE    utils.Vec3
	Chord float64
	Twist float64
}

// SurfaceConfig drives lattice generation.
type SurfaceConfig struct {
	ID           int
	Symmetric    bool
	Shape        PanelShape
	Nc, Ns       int
	SpacingChord Spacing
	SpacingSpan  Spacing
	CoreFraction float64 // finite core radius as a fraction of local chord
}

// DefaultCoreFraction regularizes filaments between distinct surfaces at a
// thousandth of the local chord.
const DefaultCoreFraction = 1.e-3

// sectionPoint places the point at chord fraction f of a section, rotating
// the chord line about the leading edge by the twist angle.
func sectionPoint(sec WingSection, f float64) utils.Vec3 {
	var (
		st, ct = math.Sin(sec.Twist), math.Cos(sec.Twist)
	)
	return utils.Vec3{
		sec.LE[0] + f*sec.Chord*ct,
		sec.LE[1],
		sec.LE[2] - f*sec.Chord*st,
	}
}

func lerpSection(a, b WingSection, t float64) WingSection {
	return WingSection{
		LE:    a.LE.Add(b.LE.Sub(a.LE).Scale(t)),
		Chord: a.Chord + t*(b.Chord-a.Chord),
		Twist: a.Twist + t*(b.Twist-a.Twist),
	}
}

// loftSections interpolates the section definitions at ns+1 spanwise
// stations distributed by sp over the cumulative spanwise arc.
func loftSections(sections []WingSection, ns int, sp Spacing) (stations []WingSection) {
	var (
		m   = len(sections)
		arc = make([]float64, m)
	)
	for k := 1; k < m; k++ {
		d := sections[k].LE.Sub(sections[k-1].LE)
		arc[k] = arc[k-1] + math.Hypot(d[1], d[2])
	}
	total := arc[m-1]
	stations = make([]WingSection, ns+1)
	for j, f := range sp.fractions(ns) {
		target := f * total
		k := 1
		for k < m-1 && arc[k] < target {
			k++
		}
		t := (target - arc[k-1]) / (arc[k] - arc[k-1])
		stations[j] = lerpSection(sections[k-1], sections[k], t)
	}
	return
}

// GenerateSurface lofts a lifting surface from its section definitions into
// a vortex lattice: bound vortices at panel quarter chord, control points at
// three-quarter chord, normals from the cell diagonals.
func GenerateSurface(sections []WingSection, cfg SurfaceConfig) (s *Surface, err error) {
	if len(sections) < 2 {
		err = fmt.Errorf("need at least two wing sections, have %d", len(sections))
		return
	}
	if cfg.Nc < 1 || cfg.Ns < 1 {
		err = fmt.Errorf("panel counts must be positive, have %d x %d", cfg.Nc, cfg.Ns)
		return
	}
	for k, sec := range sections {
		if sec.Chord <= 0 {
			err = fmt.Errorf("section %d has non-positive chord %g", k, sec.Chord)
			return
		}
	}
	if cfg.CoreFraction == 0 {
		cfg.CoreFraction = DefaultCoreFraction
	}
	var (
		nc, ns   = cfg.Nc, cfg.Ns
		stations = loftSections(sections, ns, cfg.SpacingSpan)
		fc       = cfg.SpacingChord.fractions(nc)
		// Grid vertices, chordwise x spanwise
		V = make([][]utils.Vec3, nc+1)
	)
	for i := 0; i <= nc; i++ {
		V[i] = make([]utils.Vec3, ns+1)
		for j := 0; j <= ns; j++ {
			V[i][j] = sectionPoint(stations[j], fc[i])
		}
	}
	// Quarter-chord point of cell row i at span station j; row nc extends
	// a quarter cell beyond the trailing edge for the lattice closure.
	quarter := func(i, j int) utils.Vec3 {
		if i < nc {
			return V[i][j].Add(V[i+1][j].Sub(V[i][j]).Scale(0.25))
		}
		return V[nc][j].Add(V[nc][j].Sub(V[nc-1][j]).Scale(0.25))
	}
	controlPoint := func(i, j int) utils.Vec3 {
		l := V[i][j].Add(V[i+1][j].Sub(V[i][j]).Scale(0.75))
		r := V[i][j+1].Add(V[i+1][j+1].Sub(V[i][j+1]).Scale(0.75))
		return l.Midpoint(r)
	}
	cellNormal := func(i, j int) utils.Vec3 {
		d1 := V[i+1][j+1].Sub(V[i][j])
		d2 := V[i][j+1].Sub(V[i+1][j])
		return d1.Cross(d2).Normalize()
	}
	panels := make([]Panel, nc*ns)
	for i := 0; i < nc; i++ {
		for j := 0; j < ns; j++ {
			var (
				chord = 0.5 * (stations[j].Chord + stations[j+1].Chord)
				core  = cfg.CoreFraction * chord
				rcp   = controlPoint(i, j)
				ncp   = cellNormal(i, j)
			)
			switch cfg.Shape {
			case HorseshoePanels:
				rl, rr := quarter(i, j), quarter(i, j+1)
				panels[i*ns+j] = Horseshoe{
					Rl: rl, Rr: rr,
					Rcp: rcp, Ncp: ncp,
					XlTE: V[nc][j][0] - rl[0],
					XrTE: V[nc][j+1][0] - rr[0],
					Core: core,
				}
			default:
				panels[i*ns+j] = Ring{
					Rtl: quarter(i, j), Rtr: quarter(i, j+1),
					Rbl: quarter(i+1, j), Rbr: quarter(i+1, j+1),
					Rcp: rcp, Ncp: ncp,
					Core: core,
				}
			}
		}
	}
	return NewSurface(cfg.ID, cfg.Symmetric, nc, ns, panels)
}

// MirrorSections expands half-span section definitions into a full span run
// from the reflected tip to the tip, for building an explicit mirror-image
// lattice instead of using the symmetric half-model flag.
func MirrorSections(sections []WingSection) (full []WingSection) {
	for k := len(sections) - 1; k > 0; k-- {
		sec := sections[k]
		sec.LE = sec.LE.FlipY()
		full = append(full, sec)
	}
	full = append(full, sections...)
	return
}

// TranslateSurface returns a copy of s with every panel translated by dr,
// used to place tail surfaces behind a wing.
func TranslateSurface(s *Surface, dr utils.Vec3) (o *Surface) {
	panels := make([]Panel, len(s.Panels))
	for k, p := range s.Panels {
		panels[k] = p.Translate(dr)
	}
	o = &Surface{ID: s.ID, Symmetric: s.Symmetric, Nc: s.Nc, Ns: s.Ns, Panels: panels}
	return
}
