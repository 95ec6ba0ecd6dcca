// Command warikan splits a bill between participants by role from the
// command line, using the same solver and override rules as the API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fkhayef/warikan/internal/config"
	"github.com/fkhayef/warikan/internal/logging"
)

// app carries state shared by all subcommands
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "warikan",
		Short: "Split a bill between participants by role",
		Long: `warikan splits a total between participants in proportion to their
role weights and rounds every share to a convenient unit.

Solver defaults come from the same environment variables as the API
server (SOLVER_ROUNDING_UNIT, SOLVER_MAX_ROUNDS, SOLVER_WEIGHTS_FILE, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			a.cfg = config.Load()

			level := "warn"
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(false, level)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every solver round")

	root.AddCommand(newSolveCmd(a))
	root.AddCommand(newMatchCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
