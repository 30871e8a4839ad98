package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dshills/lgtm/internal/config"
	"github.com/dshills/lgtm/internal/logging"
)

const version = "0.1.0"

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

var (
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "lgtm",
	Short: "Interactive AI review of the current branch",
	Long: `lgtm reviews the changes on the current branch against a base branch.

It gathers the changed files, the local modules they import and their tests,
then walks through five review steps with an LLM. Between steps you can
continue, ask follow-up questions, skip the next step, or quit.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadDotEnv,
	RunE:              runReview,
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitFailure
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print lgtm version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lgtm version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (default: user cache dir)")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv loads .env from the working directory without overriding
// variables already set.
func loadDotEnv(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// setupLogging installs the process logger described by cfg and returns a
// func that closes its file.
func setupLogging(cfg config.Config) (func(), error) {
	file := cfg.Log.File
	if file == "" {
		file = logging.DefaultFile()
	}
	l, closer, err := logging.New(cfg.Log.Level, file)
	if err != nil {
		return func() {}, err
	}
	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return closer, nil
}

// exitWith records a failure exit code after printing err.
func exitWith(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = ExitFailure
}
