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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/openaero/govlm/VLM"
)

// steadyCmd represents the steady command
var steadyCmd = &cobra.Command{
	Use:   "steady",
	Short: "Steady analysis: loads, induced drag and stability derivatives",
	Long: `Steady analysis: solves the circulation distribution for the run
case and reports force and moment coefficients, optionally the Trefftz plane
induced drag and the analytic stability derivative set`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		caseFile, err := cmd.Flags().GetString("caseFile")
		if err != nil {
			panic(err)
		}
		farField, _ := cmd.Flags().GetBool("farField")
		derivatives, _ := cmd.Flags().GetBool("derivatives")
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		rp := processInput(caseFile)
		rp.Print()
		sys, frame, err := buildSystem(rp)
		if err != nil {
			panic(err)
		}
		if err = sys.Analyze(); err != nil {
			panic(err)
		}
		CF, CM, err := sys.BodyForces(frame)
		if err != nil {
			panic(err)
		}
		printCoefficients(frame, CF, CM)

		if farField {
			CD, err := sys.FarFieldDrag()
			if err != nil {
				panic(err)
			}
			fmt.Printf("%10.6f\t= CDiff (Trefftz plane)\n", CD)
		}
		if derivatives {
			sd, err := sys.StabilityDerivativesSet()
			if err != nil {
				panic(err)
			}
			printStabilityDerivatives(sd)
		}
	},
}

func printStabilityDerivatives(sd VLM.StabilityDerivatives) {
	fmt.Printf("Stability derivatives [stability frame, per radian]\n")
	fmt.Printf("%10.6f\t= CLa\t%10.6f\t= CLq\n", sd.CLa, sd.CLq)
	fmt.Printf("%10.6f\t= CYb\t%10.6f\t= CYp\t%10.6f\t= CYr\n", sd.CYb, sd.CYp, sd.CYr)
	fmt.Printf("%10.6f\t= Clb\t%10.6f\t= Clp\t%10.6f\t= Clr\n", sd.Clb, sd.Clp, sd.Clr)
	fmt.Printf("%10.6f\t= Cma\t%10.6f\t= Cmq\n", sd.Cma, sd.Cmq)
	fmt.Printf("%10.6f\t= Cnb\t%10.6f\t= Cnp\t%10.6f\t= Cnr\n", sd.Cnb, sd.Cnp, sd.Cnr)
}

func init() {
	rootCmd.AddCommand(steadyCmd)
	steadyCmd.Flags().StringP("caseFile", "I", "", "YAML run case file with flow state and surface definitions")
	steadyCmd.Flags().BoolP("farField", "f", false, "also compute the Trefftz plane induced drag")
	steadyCmd.Flags().BoolP("derivatives", "d", false, "also compute the stability derivative set")
	steadyCmd.Flags().Bool("profile", false, "write a CPU profile for this run")
}
