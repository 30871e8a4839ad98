package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/lgtm/internal/config"
	"github.com/dshills/lgtm/internal/gitctx"
	"github.com/dshills/lgtm/internal/redact"
	"github.com/dshills/lgtm/internal/steps"
	"github.com/dshills/lgtm/internal/terminal"
)

var (
	flagContextFiles  bool
	flagContextPrompt bool
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Build and summarize the review context without calling a provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		con := terminal.NewConsole(cmd.OutOrStdout())

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			exitWith(err)
			return nil
		}
		closeLog, err := setupLogging(cfg)
		if err != nil {
			exitWith(err)
			return nil
		}
		defer closeLog()

		p, err := prepare(ctx, gitctx.New(""), cfg, dirFS)
		if err != nil {
			reportStartup(con, err)
			return nil
		}
		printBranch(con, p.Repo)
		printChangedFiles(con, p)
		if p.Context == nil {
			con.Success("No changes detected.")
			return nil
		}

		in := steps.Input{
			Context:   p.Context,
			MergeBase: p.Repo.MergeBase,
			Diff:      p.Diff,
			Redactor:  redact.New(cfg.Privacy.RedactSecrets, cfg.Privacy.RedactPaths),
		}
		section := steps.ContextSection(in)
		printContext(con, p.Context, steps.EstimateTokens(section))
		if flagContextFiles {
			printFiles(con, p.Context)
		}
		if flagContextPrompt {
			con.Info("")
			con.Info(section)
		}
		return nil
	},
}

func init() {
	contextCmd.Flags().BoolVar(&flagContextFiles, "files", false, "List every file in the context")
	contextCmd.Flags().BoolVar(&flagContextPrompt, "prompt", false, "Print the context section exactly as it is sent")
	contextCmd.Flags().StringVar(&flagBase, "base", "", "Base branch to diff against")
	contextCmd.Flags().StringVar(&flagScanner, "scanner", "", "Import scanner (regex, treesitter)")
}
