package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/crnconj/config"
)

// runFlags are shared by every subcommand; set values override the run file.
type runFlags struct {
	configPath string
	reactions  []string
	eps        float64
	ubound     float64
	solver     string
	timeLimit  time.Duration
	nodeLimit  int
	tolerance  float64
	verify     float64
	debug      bool
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	d := config.Default()
	fs.StringVarP(&f.configPath, "config", "c", "", "run file (YAML)")
	fs.StringArrayVarP(&f.reactions, "reaction", "r", nil, `reaction string, e.g. "X1 + 2 X2 ->(1.5) X1" (repeatable)`)
	fs.Float64Var(&f.eps, "eps", d.Eps, "smallest admissible nonzero value")
	fs.Float64Var(&f.ubound, "ubound", d.UBound, "largest admissible value")
	fs.StringVar(&f.solver, "solver", d.Solver.Name, fmt.Sprintf("MILP back-end %v", solverNames()))
	fs.DurationVar(&f.timeLimit, "time-limit", 0, "solver wall-clock limit (0 = none)")
	fs.IntVar(&f.nodeLimit, "node-limit", 0, "branch-and-bound node limit (0 = back-end default)")
	fs.Float64Var(&f.tolerance, "tolerance", 0, "solver feasibility tolerance (0 = back-end default)")
	fs.Float64Var(&f.verify, "verify", 1e-6, "re-check extracted solutions with this tolerance (0 = off)")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")
}

// load merges the run file, the inline reactions and the changed flags.
func (f *runFlags) load(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}
	if len(f.reactions) > 0 {
		cfg.Network = config.Network{Reactions: f.reactions}
	}
	if fs.Changed("eps") {
		cfg.Eps = f.eps
	}
	if fs.Changed("ubound") {
		cfg.UBound = f.ubound
	}
	if fs.Changed("solver") {
		cfg.Solver.Name = f.solver
	}
	if fs.Changed("time-limit") {
		cfg.Solver.TimeLimit = f.timeLimit
	}
	if fs.Changed("node-limit") {
		cfg.Solver.NodeLimit = f.nodeLimit
	}
	if fs.Changed("tolerance") {
		cfg.Solver.Tolerance = f.tolerance
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	flags := &runFlags{}
	log := logrus.New()
	log.SetOutput(errOut)

	root := &cobra.Command{
		Use:   "weakrev",
		Short: "Find weakly reversible linearly conjugate reaction networks",
		Long: `weakrev builds the mixed-integer program that decides whether a chemical
reaction network has a weakly reversible linear conjugate with the fewest
active transitions, solves it and prints the conjugate kinetic matrix A and
the scaling matrix T.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.debug {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	flags.register(root.PersistentFlags())

	root.AddCommand(newSolveCmd(flags, log), newSweepCmd(flags, log))

	return root
}
