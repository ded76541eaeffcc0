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

	"github.com/spf13/cobra"

	"github.com/openaero/govlm/VLM"
)

// unsteadyCmd represents the unsteady command
var unsteadyCmd = &cobra.Command{
	Use:   "unsteady",
	Short: "Time-marching analysis with a resolved, shed wake",
	Long: `Time-marching analysis of an impulsively started flow: the wake is
shed from the trailing edges and convected each step, and the force history
is reported per step`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		caseFile, err := cmd.Flags().GetString("caseFile")
		if err != nil {
			panic(err)
		}
		rp := processInput(caseFile)
		if rp.Unsteady == nil {
			fmt.Println("error: run case has no Unsteady section")
			fmt.Println("Example:\nUnsteady:\n  Dt: 0.1\n  Steps: 50\n  MaxWakeRows: 100\n  FrozenWake: false")
			return
		}
		rp.Print()
		sys, _, err := buildSystem(rp)
		if err != nil {
			panic(err)
		}
		hist, err := sys.RunUnsteady(VLM.UnsteadyOptions{
			Dt:          rp.Unsteady.Dt,
			Steps:       rp.Unsteady.Steps,
			MaxWakeRows: rp.Unsteady.MaxWakeRows,
			Frozen:      rp.Unsteady.Frozen,
		})
		if err != nil {
			panic(err)
		}
		fmt.Printf("%10s %10s %10s %10s %10s\n", "time", "CX", "CY", "CZ", "Cm")
		for _, rec := range hist {
			fmt.Printf("%10.4f %10.6f %10.6f %10.6f %10.6f\n",
				rec.Time, rec.CF[0], rec.CF[1], rec.CF[2], rec.CM[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(unsteadyCmd)
	unsteadyCmd.Flags().StringP("caseFile", "I", "", "YAML run case file with flow state, surfaces and an Unsteady section")
}
