/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"

	"github.com/openaero/govlm/InputParameters"
	"github.com/openaero/govlm/VLM"
	"github.com/openaero/govlm/utils"
)

func processInput(caseFile string) (rp *InputParameters.RunParameters) {
	var (
		err error
	)
	if len(caseFile) == 0 {
		err = fmt.Errorf("must supply a run case file (-I, --caseFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Tapered Wing"
Alpha: 1.0        # degrees
Sref: 30
Cref: 2
Bref: 15
Rref: [0.5, 0, 0]
Frame: stability  # Can be "body" or "wind"
Surfaces:
  - Name: wing
    ID: 1
    Symmetric: true
    PanelShape: ring   # Can be "horseshoe"
    NChord: 4
    NSpan: 12
    SpanSpacing: cosine
    Sections:
      - LE: [0, 0, 0]
        Chord: 2.2
        Twist: 2.0
      - LE: [0.4, 7.5, 0]
        Chord: 1.8
        Twist: 2.0
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(caseFile); err != nil {
		panic(err)
	}
	rp = &InputParameters.RunParameters{}
	if err = rp.Parse(data); err != nil {
		panic(err)
	}
	return
}

const degToRad = math.Pi / 180.

// buildSystem assembles the solver state from the parsed run case,
// converting degrees to radians and dimensional rotation rates to the
// normalized body rates.
func buildSystem(rp *InputParameters.RunParameters) (sys *VLM.System, frame VLM.Frame, err error) {
	surfaces := make([]*VLM.Surface, 0, len(rp.Surfaces))
	for _, sp := range rp.Surfaces {
		sections := make([]VLM.WingSection, len(sp.Sections))
		for k, sec := range sp.Sections {
			sections[k] = VLM.WingSection{
				LE:    utils.Vec3{sec.LE[0], sec.LE[1], sec.LE[2]},
				Chord: sec.Chord,
				Twist: sec.Twist * degToRad,
			}
		}
		ns := sp.Ns
		if sp.Mirror {
			sections = VLM.MirrorSections(sections)
			ns *= 2
		}
		var s *VLM.Surface
		if s, err = VLM.GenerateSurface(sections, VLM.SurfaceConfig{
			ID:           sp.ID,
			Symmetric:    sp.Symmetric,
			Shape:        VLM.NewPanelShape(sp.PanelShape),
			Nc:           sp.Nc,
			Ns:           ns,
			SpacingChord: VLM.NewSpacing(sp.ChordSpacing),
			SpacingSpan:  VLM.NewSpacing(sp.SpanSpacing),
			CoreFraction: sp.CoreFraction,
		}); err != nil {
			err = fmt.Errorf("surface %q: %w", sp.Name, err)
			return
		}
		surfaces = append(surfaces, s)
	}
	fs := &VLM.Freestream{
		Alpha: rp.Alpha * degToRad,
		Beta:  rp.Beta * degToRad,
		Omega: utils.Vec3{
			rp.RollRate * degToRad,
			rp.PitchRate * degToRad,
			rp.YawRate * degToRad,
		},
	}
	ref := &VLM.Reference{
		S: rp.Sref, C: rp.Cref, B: rp.Bref,
		R: utils.Vec3{rp.Rref[0], rp.Rref[1], rp.Rref[2]},
	}
	if sys, err = VLM.NewSystem(surfaces, fs, ref); err != nil {
		return
	}
	frame = VLM.NewFrame(rp.Frame)
	return
}

func printCoefficients(frame VLM.Frame, CF, CM utils.Vec3) {
	fmt.Printf("Force and moment coefficients [%s frame]\n", frame)
	if frame == VLM.Wind {
		fmt.Printf("%10.6f\t= CD\n%10.6f\t= CY\n%10.6f\t= CL\n", CF[0], CF[1], CF[2])
	} else {
		fmt.Printf("%10.6f\t= CX\n%10.6f\t= CY\n%10.6f\t= CZ\n", CF[0], CF[1], CF[2])
	}
	fmt.Printf("%10.6f\t= Cl (roll)\n%10.6f\t= Cm (pitch)\n%10.6f\t= Cn (yaw)\n", CM[0], CM[1], CM[2])
}
