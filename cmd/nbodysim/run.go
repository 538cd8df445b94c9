package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/landxcape/nbody-sim-core/internal/archive"
	"github.com/landxcape/nbody-sim-core/internal/config"
	"github.com/landxcape/nbody-sim-core/internal/diagnostics"
	"github.com/landxcape/nbody-sim-core/internal/engine"
	"github.com/landxcape/nbody-sim-core/internal/presets"
	"github.com/landxcape/nbody-sim-core/internal/scenario"
)

func runScenario(cmd *cobra.Command, args []string) error {
	model, err := loadModel()
	if err != nil {
		return err
	}

	applyOverrides(&model.EngineConfig, cmd)
	if err := model.Validate(); err != nil {
		return fmt.Errorf("scenario invalid after overrides: %w", err)
	}

	store := archive.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	e := engine.New()
	if err := e.Initialize(model.EngineConfig, model.Bodies); err != nil {
		return err
	}

	fmt.Printf("running %q for %d ticks (integrator=%s solver=%s collision=%s)\n",
		model.Metadata.Name, ticks, model.EngineConfig.Integrator, model.EngineConfig.GravitySolver, model.EngineConfig.CollisionMode)

	energyTrace := make([]float64, 0, ticks)
	start := time.Now()

	const sampleEvery = 1
	remaining := ticks
	for remaining > 0 {
		batch := sampleEvery
		if batch > remaining {
			batch = remaining
		}
		if _, err := e.Step(batch); err != nil {
			return fmt.Errorf("step failed after %d ticks: %w", ticks-remaining, err)
		}
		remaining -= batch

		state, err := e.GetState()
		if err != nil {
			return err
		}
		energyTrace = append(energyTrace, diagnostics.TotalEnergy(state.Bodies, model.EngineConfig.GravityConstant))
	}

	elapsed := time.Since(start)
	state, err := e.GetState()
	if err != nil {
		return err
	}
	report := diagnostics.Compute(state.Bodies, model.EngineConfig.GravityConstant)

	fmt.Printf("completed in %v (tick=%d simTime=%.4f)\n", elapsed, state.Tick, state.SimTime)
	fmt.Printf("live bodies: %d  total mass: %.4f\n", report.LiveBodyCount, report.TotalMass)
	fmt.Printf("momentum: (%.6f, %.6f)  angular momentum: %.6f\n", report.Momentum.X, report.Momentum.Y, report.AngularMomentum)
	fmt.Printf("energy: kinetic=%.6f potential=%.6f total=%.6f\n", report.KineticEnergy, report.PotentialEnergy, report.TotalEnergy)

	if len(energyTrace) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(energyTrace,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy vs tick"),
		))
	}

	snap, err := e.Snapshot()
	if err != nil {
		return err
	}
	runID, err := store.SaveSnapshot(snap)
	if err != nil {
		return err
	}
	fmt.Printf("\narchived run: %s\n", runID)
	return nil
}

func loadModel() (scenario.Model, error) {
	switch {
	case presetFlag != "" && scenarioFlag != "":
		return scenario.Model{}, fmt.Errorf("specify only one of --preset or --scenario")
	case presetFlag != "":
		return presets.Load(presetFlag, nil)
	case scenarioFlag != "":
		data, err := os.ReadFile(scenarioFlag)
		if err != nil {
			return scenario.Model{}, err
		}
		var model scenario.Model
		if err := json.Unmarshal(data, &model); err != nil {
			return scenario.Model{}, fmt.Errorf("decoding scenario %s: %w", scenarioFlag, err)
		}
		return model, nil
	default:
		return scenario.Model{}, fmt.Errorf("specify --preset or --scenario (see 'nbodysim presets')")
	}
}

func applyOverrides(cfg *config.SimulationConfig, cmd *cobra.Command) {
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("gravity") {
		cfg.GravityConstant = gravityConstant
	}
	if integratorFlag != "" {
		cfg.Integrator = config.IntegratorKind(integratorFlag)
	}
	if collisionFlag != "" {
		cfg.CollisionMode = config.CollisionMode(collisionFlag)
	}
	if solverFlag != "" {
		cfg.GravitySolver = config.GravitySolver(solverFlag)
	}
}
