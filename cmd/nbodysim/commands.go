package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/landxcape/nbody-sim-core/internal/archive"
	"github.com/landxcape/nbody-sim-core/internal/diagnostics"
	"github.com/landxcape/nbody-sim-core/internal/engine"
	"github.com/landxcape/nbody-sim-core/internal/presets"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := archive.New(dataDir)
			runs, err := store.List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN ID")
			for _, run := range runs {
				fmt.Fprintln(w, run)
			}
			return w.Flush()
		},
	}
}

var plotTicks int

func plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "replay an archived snapshot forward and plot its total energy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := archive.New(dataDir)
			snap, err := store.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			e := engine.New()
			if err := e.RestoreSnapshot(snap); err != nil {
				return err
			}

			trace := make([]float64, 0, plotTicks)
			for i := 0; i < plotTicks; i++ {
				if _, err := e.Step(1); err != nil {
					return fmt.Errorf("replay step %d: %w", i, err)
				}
				state, err := e.GetState()
				if err != nil {
					return err
				}
				trace = append(trace, diagnostics.TotalEnergy(state.Bodies, state.Config.GravityConstant))
			}

			fmt.Println(asciigraph.Plot(trace,
				asciigraph.Height(12),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("total energy vs tick, replaying %s", args[0])),
			))
			return nil
		},
	}
	cmd.Flags().IntVar(&plotTicks, "ticks", 200, "number of ticks to replay forward from the snapshot")
	return cmd
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [run-id]",
		Short: "dump an archived snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := archive.New(dataDir)
			snap, err := store.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list named presets shipped with this module",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, p := range presets.List() {
				fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Description)
			}
			return w.Flush()
		},
	}
}
