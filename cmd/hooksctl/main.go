// Command hooksctl drives the fetch hooks from the command line and serves
// a demo API to point them at.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hooks/internal/config"
	"github.com/vango-dev/hooks/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is the state shared by subcommands once the root has loaded config.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "hooksctl",
		Short: "Send requests through the fetch hooks",
		Long: `hooksctl mounts a component that uses the fetch hooks, sends one
request and prints the settled state.

Settings come from HOOKS_* environment variables or .env files:

  HOOKS_BASE_URL     API base URL (default http://localhost:8080)
  HOOKS_AUTH_SCHEME  Authorization scheme (default Token)
  HOOKS_AUTH_TOKEN   Authorization token
  HOOKS_TIMEOUT      Request timeout (default 30s)
  HOOKS_LOG_LEVEL    debug, info, warn or error
  HOOKS_LOG_FORMAT   text or json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Load variables from these files instead of .env")

	rootCmd.AddCommand(
		getCmd(a),
		serveCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// printError prints structured errors with their full report.
func printError(w io.Writer, err error) {
	var e *errors.Error
	if stderrors.As(err, &e) {
		errors.PrintError(w, e)
		return
	}
	fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
}
