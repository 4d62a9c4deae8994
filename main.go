// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bow-simulation/virtualbow-sub000/bow"
	"github.com/bow-simulation/virtualbow-sub000/inp"
	"github.com/bow-simulation/virtualbow-sub000/out"
	"github.com/charmbracelet/lipgloss"
	"github.com/cpmech/gosl/io"
	"github.com/gosuri/uiprogress"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// command line flags
var (
	dynamic bool   // also simulate the shot
	outPath string // output file; default is the input file with extension .json
	doplot  bool   // save figures next to the output file
	verbose bool   // show messages
	doprof  int    // profiling: 0=none 1=CPU 2=MEM
)

// styles of the summary
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	labelStyle = lipgloss.NewStyle().Width(28).Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	rootCmd := &cobra.Command{
		Use:           "bowsim",
		Short:         "static and dynamic simulation of bows and arrows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run [input]",
		Short: "simulate the bow given by an input file (.yaml, .hjson or .json)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVarP(&dynamic, "dynamic", "d", false, "also simulate the shot")
	runCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: input file with extension .json)")
	runCmd.Flags().BoolVarP(&doplot, "plot", "p", false, "save figures next to the output file")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	runCmd.Flags().IntVar(&doprof, "prof", 0, "profiling: 0=none 1=CPU 2=MEM")

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the input file of a reference bow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := inp.Default().Save(args[0]); err != nil {
				return err
			}
			io.Pf("input file <%s> written\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// runSimulation loads the input, runs the simulations and saves the results
func runSimulation(cmd *cobra.Command, args []string) (err error) {
	fnamepath := args[0]
	if outPath == "" {
		outPath = io.FnKey(fnamepath) + ".json"
		if dir := filepath.Dir(fnamepath); dir != "." {
			outPath = filepath.Join(dir, outPath)
		}
	}
	mode := bow.Static
	if dynamic {
		mode = bow.Dynamic
	}

	// message
	if verbose {
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"input file", "input", fnamepath,
			"output file", "output", outPath,
			"simulate the shot", "dynamic", dynamic,
			"save figures", "plot", doplot,
			"profiling: 0=none 1=CPU 2=MEM", "prof", doprof,
		))
	}

	// profiling?
	switch doprof {
	case 1:
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case 2:
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	input, err := inp.Load(fnamepath)
	if err != nil {
		return
	}

	// interrupt cancels the simulation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// progress bars
	var progress bow.Progress
	if !verbose {
		uiprogress.Start()
		bars := []*uiprogress.Bar{addBar("statics")}
		if dynamic {
			bars = append(bars, addBar("dynamics"))
		}
		progress = func(static, dyn int) bool {
			bars[0].Set(static)
			if len(bars) > 1 {
				bars[1].Set(dyn)
			}
			return ctx.Err() == nil
		}
	}

	output, err := bow.Run(input, mode, progress, verbose)
	if !verbose {
		uiprogress.Stop()
	}
	if err != nil {
		return
	}
	if ctx.Err() != nil {
		io.Pforan("simulation cancelled; saving partial results\n")
	}

	// results
	if err = output.Save(outPath); err != nil {
		return
	}
	summary(output)
	if doplot {
		dirout, fnkey := filepath.Dir(outPath), io.FnKey(outPath)
		if err = out.PlotSetup(output, dirout, fnkey); err != nil {
			return
		}
		if output.Statics != nil && output.Statics.States.Len() > 1 {
			if err = out.PlotStatics(output, dirout, fnkey); err != nil {
				return
			}
		}
		if output.Dynamics != nil && output.Dynamics.States.Len() > 1 {
			if err = out.PlotDynamics(output, dirout, fnkey); err != nil {
				return
			}
		}
	}
	io.Pf("results written to <%s>\n", outPath)
	return
}

// addBar adds a progress bar from 0 to 100 percent
func addBar(name string) *uiprogress.Bar {
	bar := uiprogress.AddBar(100).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return io.Sf("%-9s", name)
	})
	return bar
}

// summary prints the main results and the draw curve
func summary(o *out.Output) {
	line := func(label string, value float64, unit string) {
		io.Pf("%s%s\n", labelStyle.Render(label), valueStyle.Render(io.Sf("%.4g %s", value, unit)))
	}
	io.Pf("\n%s\n", titleStyle.Render("SETUP"))
	line("limb mass", o.Setup.LimbMass, "kg")
	line("string length", o.Setup.StringLength, "m")
	line("string mass", o.Setup.StringMass, "kg")

	if st := o.Statics; st != nil {
		io.Pf("\n%s\n", titleStyle.Render("STATICS"))
		line("final draw force", st.FinalDrawForce, "N")
		line("drawing work", st.DrawingWork, "J")
		line("energy storage factor", st.EnergyStorageFactor, "")
		line("max string force", st.MaxStringForce, "N")
		line("max grip force", st.MaxGripForce, "N")
		for i, name := range o.Setup.Layers {
			if i < len(st.MaxStress) {
				line("max stress ("+name+")", st.MaxStress[i]*1e-6, "MPa")
			}
		}
		if st.States.Len() > 1 {
			chart := asciigraph.Plot(st.States.DrawForce,
				asciigraph.Height(10), asciigraph.Width(60),
				asciigraph.Caption("draw force [N] from brace height to full draw"))
			io.Pf("\n%s\n", graphStyle.Render(chart))
		}
	}

	if dyn := o.Dynamics; dyn != nil {
		io.Pf("\n%s\n", titleStyle.Render("DYNAMICS"))
		line("arrow departure time", dyn.ArrowDepartureTime, "s")
		line("arrow velocity", dyn.ArrowVelocity, "m/s")
		line("arrow energy", dyn.ArrowEnergy, "J")
		line("efficiency", dyn.Efficiency, "")
		line("max string force", dyn.MaxStringForce, "N")
		if dyn.States.Len() > 1 {
			chart := asciigraph.Plot(dyn.States.VelArrow,
				asciigraph.Height(8), asciigraph.Width(60),
				asciigraph.Caption("arrow velocity [m/s] over time"))
			io.Pf("\n%s\n", graphStyle.Render(chart))
		}
	}
	io.Pf("\n")
}
