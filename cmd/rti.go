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
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gosph/InputParameters"
	"github.com/notargets/gosph/analysis"
	"github.com/notargets/gosph/checkpoint"
	"github.com/notargets/gosph/model_problems/SPH2D"
)

type ModelRTI struct {
	ICFile    string
	Graph     bool
	PlotSteps int
	Delay     time.Duration
	Clear     bool
	Profile   bool
}

// RTICmd represents the rti command
var RTICmd = &cobra.Command{
	Use:   "rti",
	Short: "Two dimensional SPH solver for the Rayleigh-Taylor instability",
	Long:  `Two dimensional SPH solver for the Rayleigh-Taylor instability, with checkpoint/restart and live analysis`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rti called")
		m := &ModelRTI{}
		m.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		m.Graph, _ = cmd.Flags().GetBool("graph")
		m.PlotSteps, _ = cmd.Flags().GetInt("plotSteps")
		dr, _ := cmd.Flags().GetInt("delay")
		m.Delay = time.Duration(dr) * time.Millisecond
		m.Clear, _ = cmd.Flags().GetBool("clear")
		m.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processInputRTI(m)
		RunRTI(m, ip)
	},
}

func init() {
	rootCmd.AddCommand(RTICmd)
	RTICmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- H (smoothing length)\n\t- DT (time step)\n\t- Alpha (viscosity)")
	RTICmd.Flags().BoolP("graph", "g", false, "display the particle field while computing the solution")
	RTICmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	RTICmd.Flags().IntP("plotSteps", "s", 500, "number of steps before plotting each frame")
	RTICmd.Flags().Bool("clear", false, "clear existing checkpoints and start fresh")
	RTICmd.Flags().Bool("profile", false, "write a CPU profile for this run")
}

func processInputRTI(m *ModelRTI) (ip *InputParameters.InputParametersSPH) {
	ip = InputParameters.Defaults()
	if len(m.ICFile) == 0 {
		exampleFile := `
########################################
Title: "Rayleigh-Taylor Instability"
H: 0.0005
DT: 0.000004
MaxSteps: 80000
P0: 100000.
Gravity: [0, -100.]
Alpha: 0.01
CheckpointInterval: 300
StatusInterval: 500
########################################
`
		fmt.Printf("Using built-in defaults, example file:%s\n", exampleFile)
		return
	}
	data, err := os.ReadFile(m.ICFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = ip.Parse(data); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func RunRTI(m *ModelRTI, ip *InputParameters.InputParametersSPH) {
	if m.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ip.Print()
	if m.Clear {
		fmt.Println("Clearing existing checkpoints...")
		if err := os.RemoveAll(ip.DataDir); err != nil {
			panic(err)
		}
	}

	rp := SPH2D.RTIParams{
		DomainWidth:     ip.DomainWidth,
		DomainHeight:    ip.DomainHeight,
		ParticleSpacing: ip.ParticleSpacing,
		DensityLight:    ip.DensityLight,
		DensityHeavy:    ip.DensityHeavy,
		InterfaceLevel:  ip.InterfaceLevel,
	}
	domainMin, domainMax := rp.DomainBounds()

	startStep := 0
	lastStep, state, err := checkpoint.LoadLatest(ip.DataDir)
	if err != nil {
		panic(err)
	}
	if state != nil {
		startStep = lastStep + 1
		fmt.Printf("Resuming simulation from step %d\n", startStep)
	} else {
		fmt.Println("Starting new simulation")
		state = SPH2D.SetupRayleighTaylor(rp)
	}

	c, err := SPH2D.NewSPH(ip.H, ip.Dt, ip.P0, ip.Gravity, domainMin, domainMax,
		ip.Alpha, ip.Beta, ip.ProcLimit, SPH2D.DefaultPhysicsParams(), state, true)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}

	var (
		history = &analysis.History{}
		pm      = &SPH2D.PlotMeta{Plot: m.Graph, FrameTime: m.Delay, StepsBeforePlot: m.PlotSteps}
		gMag    = math.Abs(ip.Gravity[1])
		start   = time.Now()
	)
	// On resume, rebuild the metrics history from the existing checkpoints so
	// history.csv covers the whole run, not just the steps after the restart
	if startStep > 0 {
		steps, err := checkpoint.Steps(ip.DataDir)
		if err != nil {
			panic(err)
		}
		for _, n := range steps {
			s, err := checkpoint.Load(ip.DataDir, n)
			if err != nil {
				panic(err)
			}
			history.Append(analysis.Sample(n, float64(n)*ip.Dt, s, gMag))
		}
	}
	for step := startStep; step < ip.MaxSteps; step++ {
		c.Step()
		if step%ip.CheckpointInterval == 0 {
			if err = checkpoint.Save(ip.DataDir, step, c.State()); err != nil {
				panic(err)
			}
			fmt.Printf("Checkpoint saved: step %d\n", step)
		}
		if step%ip.StatusInterval == 0 {
			t := float64(step) * ip.Dt
			sample := analysis.Sample(step, t, c.State(), gMag)
			history.Append(sample)
			min, max, mean := analysis.DensityStats(c.Density)
			fmt.Printf("Step %d (t=%.4fs)\n", step, t)
			fmt.Printf("  Rho Avg: %.1f (Min: %.1f, Max: %.1f)\n", mean, min, max)
			fmt.Printf("  Energy: Mech=%.4e, Int=%.4e, Tot=%.4e\n",
				sample.Ek+sample.Ep, sample.Eint, sample.Etot)
			fmt.Printf("  Mixing Width: %.5f\n", sample.MixingWidth)
		}
		if m.Graph && step%pm.StepsBeforePlot == 0 {
			c.PlotParticles(pm)
		}
	}
	fmt.Printf("Completed %d steps in %s\n", ip.MaxSteps-startStep, time.Since(start))
	if err = history.Write(filepath.Join(ip.DataDir, "history.csv")); err != nil {
		panic(err)
	}
}
