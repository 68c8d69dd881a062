package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"honnef.co/go/lattice"
	"honnef.co/go/lattice/internal/config"
	"honnef.co/go/lattice/internal/scene"
)

// app holds the state shared by all subcommands once flags are parsed.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	ctx lattice.Context

	// flag overrides
	logLevel string
	system   string
	flatness float64
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "latticeq",
		Short: "Query shapes on the integer grid",
		Long: `latticeq loads a scene of rectangles, circles, segments, paths and
groups of shapes, and answers containment, intersection and distance queries
about them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides LATTICE_LOG_LEVEL)")
	flags.StringVar(&a.system, "system", "", "coordinate system, y-up or y-down (overrides LATTICE_COORDINATE_SYSTEM)")
	flags.Float64Var(&a.flatness, "flatness", 0, "curve flattening tolerance (overrides LATTICE_FLATNESS)")

	root.AddCommand(
		a.boundsCmd(),
		a.containsCmd(),
		a.intersectsCmd(),
		a.clipCmd(),
		a.svgCmd(),
		a.pointsCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("system") {
		cfg.CoordinateSystem = a.system
	}
	if flags.Changed("flatness") {
		cfg.Flatness = a.flatness
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.ctx = cfg.Context()

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	a.log.SetLevel(cfg.Level())
	lattice.SetLogger(a.log)

	a.log.WithFields(logrus.Fields{
		"system":   a.ctx.System,
		"flatness": a.ctx.Flatness,
	}).Debug("configured")
	return nil
}

func (a *app) load(name string) (*scene.Scene, error) {
	sc, err := scene.Load(name, a.ctx)
	if err != nil {
		return nil, err
	}
	a.ctx = sc.Context
	return sc, nil
}

func (a *app) printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
