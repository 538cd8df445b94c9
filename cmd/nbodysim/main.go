// Command nbodysim is the CLI entry point for the simulation core: it
// runs scenarios/presets to completion, archives results, and reports
// energy/momentum diagnostics, playing the same role cmd/dynsim played
// for the teacher's dynamical-systems lab.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir         string
	ticks           int
	dt              float64
	gravityConstant float64
	integratorFlag  string
	collisionFlag   string
	solverFlag      string
	presetFlag      string
	scenarioFlag    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nbodysim",
		Short: "2-D N-body gravitational simulation core",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbodysim", "archive directory for saved runs")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario or preset for a number of ticks and archive the result",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&presetFlag, "preset", "", "named preset to load (see 'nbodysim presets')")
	runCmd.Flags().StringVar(&scenarioFlag, "scenario", "", "path to a scenario JSON document to load")
	runCmd.Flags().IntVar(&ticks, "ticks", 1000, "number of integration ticks to run")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "override the loaded config's timestep (0 = keep preset/scenario value)")
	runCmd.Flags().Float64Var(&gravityConstant, "gravity", 0, "override the loaded config's gravitational constant (0 = keep preset/scenario value)")
	runCmd.Flags().StringVar(&integratorFlag, "integrator", "", "override integrator: semiImplicitEuler|velocityVerlet|rk4")
	runCmd.Flags().StringVar(&collisionFlag, "collision", "", "override collision mode: ignore|elastic|inelasticMerge")
	runCmd.Flags().StringVar(&solverFlag, "solver", "", "override gravity solver: pairwise|barnesHut|auto")

	rootCmd.AddCommand(
		runCmd,
		listCmd(),
		plotCmd(),
		exportCmd(),
		presetsCmd(),
		workerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
