// Command gravity2d runs a headless 2D n-body gravity simulation.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillaja/gravity2d/physics"
	"github.com/quillaja/gravity2d/simulation"
)

type options struct {
	bodies      int
	frames      int
	dt          float64
	scenario    string
	state       string
	save        bool
	db          string
	theta       float64
	integrator  string
	nocollision bool
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "gravity2d",
		Short:         "headless 2D n-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.bodies, "bodies", "n", 0, "seed a random cluster of n bodies instead of the scenario's")
	f.IntVar(&opts.frames, "frames", 1000, "number of frames to simulate")
	f.Float64Var(&opts.dt, "dt", 1.0/120, "frame timestep in seconds")
	f.StringVar(&opts.scenario, "scenario", "", "scenario file to load (.json or .yaml)")
	f.StringVar(&opts.state, "state", "", "simulation state to resume from")
	f.BoolVar(&opts.save, "save", false, "save the final simulation state")
	f.StringVar(&opts.db, "db", "", "record frames to this sqlite database")
	f.Float64Var(&opts.theta, "theta", 0, "override the Barnes-Hut opening angle")
	f.StringVar(&opts.integrator, "integrator", "", "override the integrator: euler or verlet")
	f.BoolVar(&opts.nocollision, "nocollision", false, "do not perform collision testing")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gravity2d:", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	sim, err := setup(opts)
	if err != nil {
		return err
	}
	cfg := &sim.Config

	var rec *simulation.Recorder
	if opts.db != "" {
		rec, err = simulation.NewRecorder(opts.db)
		if err != nil {
			return err
		}
	}

	// print parameters
	fmt.Printf("scenario: %s\nbodies: %d\ncollisions: %t\nintegrator: %s\nstep: %g sec\nframes: %d\nsimulation time: %s\n",
		sim.Name,
		len(sim.Bodies),
		cfg.Collisions,
		integratorName(cfg.Integrator),
		opts.dt,
		opts.frames,
		time.Duration(float64(opts.frames)*opts.dt*float64(cfg.TimeScale)*float64(time.Second)).Truncate(time.Second))

	start := time.Now()
	startFrame := sim.Frame
	endFrame := startFrame + opts.frames
	for sim.Frame < endFrame {
		if rec != nil {
			rec.Record(sim)
		}
		snap := sim.Step(opts.dt)
		if sim.Paused {
			fmt.Printf("\ndiagnostics went non-finite at frame %d; halting\n", sim.Frame)
			break
		}

		// progress
		done := sim.Frame - startFrame
		avgMS := time.Since(start).Milliseconds() / int64(done)
		remaining := time.Duration(avgMS*int64(endFrame-sim.Frame)) * time.Millisecond
		fmt.Printf("%.1f%%, %d bodies, E=%.6g, %dms/frame, %s remaining, %s elapsed                    \r",
			100*float64(done)/float64(opts.frames),
			len(sim.Bodies),
			snap.Energy,
			avgMS,
			remaining.Truncate(time.Second),
			time.Since(start).Truncate(time.Second))
	}
	fmt.Printf("\nDone. Took %s\n", time.Since(start).Truncate(time.Second))

	d := sim.Diagnostics()
	fmt.Printf("energy: %.6g (kinetic %.6g, potential %.6g)\nmomentum: (%.6g, %.6g)\ncenter of mass: (%.4g, %.4g)\ntotal mass: %.6g\n",
		d.Energy, d.Kinetic, d.Potential,
		d.Momentum[0], d.Momentum[1],
		d.COM[0], d.COM[1],
		d.TotalMass)

	if rec != nil {
		if err := rec.Close(); err != nil {
			return fmt.Errorf("recording frames: %w", err)
		}
	}

	if opts.save {
		path := fmt.Sprintf("%010d.state", sim.Frame)
		if err := simulation.SaveState(sim, path); err != nil {
			return err
		}
		fmt.Println("state saved to", path)
	}
	return nil
}

func setup(opts *options) (*simulation.Simulator, error) {
	var sim *simulation.Simulator
	switch {
	case opts.state != "":
		s, err := simulation.LoadState(opts.state)
		if err != nil {
			return nil, err
		}
		sim = s
	case opts.scenario != "":
		sc, err := simulation.LoadScenario(opts.scenario)
		if err != nil {
			return nil, err
		}
		sim = sc.Simulator()
	default:
		sim = simulation.DefaultScenario().Simulator()
	}

	if opts.bodies > 0 {
		sim.SetBodies(simulation.Cluster(opts.bodies, sim.Config.G, nil))
	}

	cfg := &sim.Config
	cfg.UseFixedDT = true
	cfg.FixedDT = opts.dt
	if opts.theta > 0 {
		cfg.BHTheta = opts.theta
	}
	if opts.nocollision {
		cfg.Collisions = false
	}
	switch opts.integrator {
	case "":
		// keep the scenario's choice
	case "euler":
		cfg.Integrator = physics.SemiImplicitEuler
	case "verlet":
		cfg.Integrator = physics.VelocityVerlet
	default:
		return nil, fmt.Errorf("unknown integrator %q", opts.integrator)
	}
	return sim, nil
}

func integratorName(i physics.Integrator) string {
	if i == physics.SemiImplicitEuler {
		return "semi-implicit euler"
	}
	return "velocity verlet"
}
