package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML run case file. Angles and rates are in
// degrees and degrees per unit time; the solver works in radians and
// normalized rates, conversion happens when the case is built.
type SectionParameters struct {
	LE    [3]float64 `json:"LE"`
	Chord float64    `json:"Chord"`
	Twist float64    `json:"Twist"`
}

type SurfaceParameters struct {
	Name         string              `json:"Name"`
	ID           int                 `json:"ID"`
	Symmetric    bool                `json:"Symmetric"`
	Mirror       bool                `json:"Mirror"`
	PanelShape   string              `json:"PanelShape"`
	Nc           int                 `json:"NChord"`
	Ns           int                 `json:"NSpan"`
	ChordSpacing string              `json:"ChordSpacing"`
	SpanSpacing  string              `json:"SpanSpacing"`
	CoreFraction float64             `json:"CoreFraction"`
	Sections     []SectionParameters `json:"Sections"`
}

type UnsteadyParameters struct {
	Dt          float64 `json:"Dt"`
	Steps       int     `json:"Steps"`
	MaxWakeRows int     `json:"MaxWakeRows"`
	Frozen      bool    `json:"FrozenWake"`
}

type RunParameters struct {
	Title     string              `json:"Title"`
	Alpha     float64             `json:"Alpha"`
	Beta      float64             `json:"Beta"`
	RollRate  float64             `json:"RollRate"`
	PitchRate float64             `json:"PitchRate"`
	YawRate   float64             `json:"YawRate"`
	Sref      float64             `json:"Sref"`
	Cref      float64             `json:"Cref"`
	Bref      float64             `json:"Bref"`
	Rref      [3]float64          `json:"Rref"`
	Frame     string              `json:"Frame"`
	Surfaces  []SurfaceParameters `json:"Surfaces"`
	Unsteady  *UnsteadyParameters `json:"Unsteady"`
}

func (rp *RunParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, rp); err != nil {
		return err
	}
	return rp.validate()
}

func (rp *RunParameters) validate() error {
	if rp.Sref <= 0 || rp.Cref <= 0 || rp.Bref <= 0 {
		return fmt.Errorf("reference quantities must be positive: Sref=%g, Cref=%g, Bref=%g",
			rp.Sref, rp.Cref, rp.Bref)
	}
	if len(rp.Surfaces) == 0 {
		return fmt.Errorf("run case needs at least one surface")
	}
	for _, sp := range rp.Surfaces {
		if len(sp.Sections) < 2 {
			return fmt.Errorf("surface %q needs at least two sections, has %d", sp.Name, len(sp.Sections))
		}
		if sp.Nc < 1 || sp.Ns < 1 {
			return fmt.Errorf("surface %q panel counts must be positive, have %d x %d", sp.Name, sp.Nc, sp.Ns)
		}
		if sp.Symmetric && sp.Mirror {
			return fmt.Errorf("surface %q sets both Symmetric and Mirror", sp.Name)
		}
	}
	return nil
}

func (rp *RunParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("%8.5f\t\t= Alpha (deg)\n", rp.Alpha)
	fmt.Printf("%8.5f\t\t= Beta (deg)\n", rp.Beta)
	fmt.Printf("%8.5f %8.5f %8.5f\t= Roll, Pitch, Yaw rates\n", rp.RollRate, rp.PitchRate, rp.YawRate)
	fmt.Printf("%8.5f %8.5f %8.5f\t= Sref, Cref, Bref\n", rp.Sref, rp.Cref, rp.Bref)
	fmt.Printf("%v\t= Rref\n", rp.Rref)
	fmt.Printf("[%s]\t\t\t= Output Frame\n", rp.Frame)
	names := make([]string, len(rp.Surfaces))
	byName := make(map[string]SurfaceParameters, len(rp.Surfaces))
	for i, sp := range rp.Surfaces {
		names[i] = sp.Name
		byName[sp.Name] = sp
	}
	sort.Strings(names)
	for _, name := range names {
		sp := byName[name]
		fmt.Printf("Surface[%s] = %d x %d %s panels, %d sections\n",
			name, sp.Nc, sp.Ns, sp.PanelShape, len(sp.Sections))
	}
	if rp.Unsteady != nil {
		fmt.Printf("Unsteady: dt=%g steps=%d maxWakeRows=%d frozen=%v\n",
			rp.Unsteady.Dt, rp.Unsteady.Steps, rp.Unsteady.MaxWakeRows, rp.Unsteady.Frozen)
	}
}
