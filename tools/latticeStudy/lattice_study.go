package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/openaero/govlm/VLM"
	"github.com/openaero/govlm/utils"
)

var (
	alphaDeg = 5.0
	levels   = 5
	nChord   = 4
)

func main() {
	alphaPtr := flag.Float64("alpha", alphaDeg, "angle of attack in degrees")
	levelsPtr := flag.Int("levels", levels, "spanwise refinement levels, panel count doubles each level")
	ncPtr := flag.Int("nc", nChord, "chordwise panel count, held fixed across levels")
	flag.Parse()
	alphaDeg = *alphaPtr
	levels = *levelsPtr
	nChord = *ncPtr
	if levels < 3 {
		fmt.Println("need at least 3 levels to estimate a convergence order")
		os.Exit(1)
	}

	rs := NewRefinementStudy(alphaDeg)
	ns := 4
	for k := 0; k < levels; k++ {
		CL, CD := runLevel(alphaDeg, nChord, ns)
		rs.Add(ns, CL, CD)
		ns *= 2
	}
	rs.Print()
}

// Tapered wing used for every level of the study.
func wingSections() []VLM.WingSection {
	return []VLM.WingSection{
		{LE: utils.Vec3{0, 0, 0}, Chord: 2.2, Twist: 2 * math.Pi / 180.},
		{LE: utils.Vec3{0.4, 7.5, 0}, Chord: 1.8, Twist: 2 * math.Pi / 180.},
	}
}

func runLevel(alphaDeg float64, nc, ns int) (CL, CD float64) {
	s, err := VLM.GenerateSurface(wingSections(), VLM.SurfaceConfig{
		ID: 1, Symmetric: true, Shape: VLM.RingPanels,
		Nc: nc, Ns: ns, SpacingSpan: VLM.Cosine,
	})
	if err != nil {
		panic(err)
	}
	sys, err := VLM.NewSystem([]*VLM.Surface{s},
		&VLM.Freestream{Alpha: alphaDeg * math.Pi / 180.},
		&VLM.Reference{S: 30, C: 2, B: 15, R: utils.Vec3{0.5, 0, 0}})
	if err != nil {
		panic(err)
	}
	if err = sys.Analyze(); err != nil {
		panic(err)
	}
	CF, _, err := sys.BodyForces(VLM.Stability)
	if err != nil {
		panic(err)
	}
	if CD, err = sys.FarFieldDrag(); err != nil {
		panic(err)
	}
	CL = CF[2]
	return
}

type RefinementStudy struct {
	alpha  float64
	ns     []int
	CL, CD []float64
}

func NewRefinementStudy(alpha float64) *RefinementStudy {
	return &RefinementStudy{alpha: alpha}
}

func (rs *RefinementStudy) Add(ns int, CL, CD float64) {
	rs.ns = append(rs.ns, ns)
	rs.CL = append(rs.CL, CL)
	rs.CD = append(rs.CD, CD)
}

// order estimates the observed convergence rate from the last three levels of
// a doubling sequence.
func order(f []float64) float64 {
	n := len(f)
	num := math.Abs(f[n-2] - f[n-3])
	den := math.Abs(f[n-1] - f[n-2])
	if den == 0 {
		return math.NaN()
	}
	return math.Log2(num / den)
}

func (rs *RefinementStudy) Print() {
	fmt.Printf("Alpha = %5.2f deg, Nc = %d\n", rs.alpha, nChord)
	fmt.Printf("%8s %12s %12s\n", "NSpan", "CL", "CDff")
	for i := range rs.ns {
		fmt.Printf("%8d %12.8f %12.8f\n", rs.ns[i], rs.CL[i], rs.CD[i])
	}
	fmt.Printf("Observed order: CL = %5.2f, CDff = %5.2f\n", order(rs.CL), order(rs.CD))
}
