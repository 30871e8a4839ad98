package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/lgtm/internal/cache"
	"github.com/dshills/lgtm/internal/config"
	"github.com/dshills/lgtm/internal/gitctx"
	"github.com/dshills/lgtm/internal/logging"
	"github.com/dshills/lgtm/internal/output"
	"github.com/dshills/lgtm/internal/providers"
	"github.com/dshills/lgtm/internal/redact"
	"github.com/dshills/lgtm/internal/review"
	"github.com/dshills/lgtm/internal/steps"
	"github.com/dshills/lgtm/internal/terminal"
)

// Review flags
var (
	flagAPIKey   string
	flagBase     string
	flagProvider string
	flagModel    string
	flagScanner  string
	flagOut      string
	flagFormat   string
	flagRules    string
	flagYes      bool
	flagNoCache  bool
	flagNoRedact bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagAPIKey, "api-key", "", "Provider API key (default: provider environment variable)")
	f.StringVar(&flagBase, "base", "", "Base branch to diff against (default: develop)")
	f.StringVar(&flagProvider, "provider", "", "LLM provider (gemini, openai, anthropic, ollama)")
	f.StringVar(&flagModel, "model", "", "Model name")
	f.StringVar(&flagScanner, "scanner", "", "Import scanner (regex, treesitter)")
	f.StringVar(&flagOut, "out", "", "Write the finished session to this file (- for stdout)")
	f.StringVar(&flagFormat, "format", "", "Export format (markdown, json); default from --out extension")
	f.StringVar(&flagRules, "rules", "", "Rules file path")
	f.BoolVarP(&flagYes, "yes", "y", false, "Start without confirmation")
	f.BoolVar(&flagNoCache, "no-cache", false, "Do not read or write the response cache")
	f.BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	return map[string]string{
		"provider":   flagProvider,
		"model":      flagModel,
		"baseBranch": flagBase,
		"scanner":    flagScanner,
		"rulesFile":  flagRules,
		"log.level":  flagLogLevel,
		"log.file":   flagLogFile,
	}
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

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

	sessionID := uuid.NewString()
	ctx = logging.WithSessionID(ctx, sessionID)
	log := logging.Component("cli")
	log.Info().Ctx(ctx).
		Str("provider", cfg.Provider).
		Str("model", cfg.EffectiveModel()).
		Str("base", cfg.BaseBranch).
		Msg("review started")

	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		cfg.Privacy.RedactPaths = nil
		con.Warn("Secret redaction is disabled")
	}

	key := providers.ResolveKey(cfg.Provider, flagAPIKey)
	if err := checkCredential(cfg.Provider, key); err != nil {
		reportStartup(con, err)
		return nil
	}
	rules, err := steps.LoadRules(cfg.RulesFile)
	if err != nil {
		reportStartup(con, &StartupError{Msg: "cannot load rules", Err: err})
		return nil
	}

	p, err := prepare(ctx, gitctx.New(""), cfg, dirFS)
	if err != nil {
		reportStartup(con, err)
		return nil
	}
	printBranch(con, p.Repo)
	printChangedFiles(con, p)
	if p.Context == nil {
		con.Success("No changes detected. Nothing to review.")
		return nil
	}

	in := steps.Input{
		Context:   p.Context,
		MergeBase: p.Repo.MergeBase,
		Diff:      p.Diff,
		Redactor:  redact.New(cfg.Privacy.RedactSecrets, cfg.Privacy.RedactPaths),
		Rules:     rules,
	}
	tokens := steps.EstimateTokens(steps.ContextSection(in))
	printContext(con, p.Context, tokens)

	stdin, stdout := cmd.InOrStdin(), cmd.OutOrStdout()
	if f, ok := stdin.(*os.File); ok && !flagYes && isatty.IsTerminal(f.Fd()) {
		ok, err := confirmStart()
		if err != nil || !ok {
			con.Info("Review cancelled.")
			return nil
		}
	}

	client, err := newClient(ctx, cfg, key)
	if err != nil {
		exitWith(err)
		return nil
	}

	lines := terminal.NewLineReader(stdin, stdout)
	nav := terminal.NewKeyNavigator(stdin, lines, con)
	orch := review.NewOrchestrator(client, nav, lines, con, review.Options{
		Steps:         steps.Pipeline(),
		Input:         in,
		HistoryWindow: cfg.HistoryWindow,
		FailureDelay:  cfg.FailureDelay,
	}, logging.Component("review"))

	started := time.Now()
	session, err := orch.Run(ctx)
	switch {
	case errors.Is(err, terminal.ErrInterrupted), errors.Is(err, context.Canceled):
		con.Info("Review interrupted.")
	case err != nil:
		log.Error().Ctx(ctx).Err(err).Msg("review aborted")
		exitWith(err)
	}
	log.Info().Ctx(ctx).
		Str("state", session.State.String()).
		Int("completed", len(session.Completed)).
		Int("failed", len(session.Failed)).
		Msg("review finished")

	if flagOut != "" {
		report := buildReport(sessionID, cfg, p, tokens, session, started)
		if err := output.WriteReport(report, output.FormatFor(flagFormat, flagOut), flagOut); err != nil {
			exitWith(err)
			return nil
		}
		if flagOut != "-" {
			con.Success(fmt.Sprintf("Review written to %s", flagOut))
		}
	}
	return nil
}

// reportStartup prints a startup failure with its hint and sets the exit
// code.
func reportStartup(con *terminal.Console, err error) {
	var se *StartupError
	if errors.As(err, &se) {
		con.Error(se.Error())
		if se.Hint != "" {
			con.Dim(se.Hint)
		}
	} else {
		con.Error(err.Error())
	}
	exitCode = ExitFailure
}

func confirmStart() (bool, error) {
	ok := true
	err := huh.NewConfirm().
		Title("Start the review?").
		Affirmative("Start").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// newClient builds the provider client, wrapped in the response cache
// unless caching is off.
func newClient(ctx context.Context, cfg config.Config, key string) (providers.Client, error) {
	model := cfg.EffectiveModel()
	client, err := providers.New(ctx, cfg.Provider, providers.Options{
		Model:           model,
		APIKey:          key,
		BaseURL:         cfg.BaseURL,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	if flagNoCache || !cfg.Cache.Enabled {
		return client, nil
	}

	log := logging.Component("cache")
	store, err := cache.Open(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("cache unavailable")
		return client, nil
	}
	return providers.WithCache(client, model, store, cache.Key, log), nil
}

func buildReport(sessionID string, cfg config.Config, p *prepared, tokens int, s *review.Session, started time.Time) *review.Report {
	rc := p.Context
	return &review.Report{
		Tool:      "lgtm",
		Version:   version,
		SessionID: sessionID,
		Provider:  cfg.Provider,
		Model:     cfg.EffectiveModel(),
		Repo: review.RepoInfo{
			Root:      p.Repo.Root,
			Branch:    p.Repo.Branch,
			Base:      p.Repo.Base,
			MergeBase: p.Repo.MergeBase,
		},
		Context: review.ContextInfo{
			ChangedFiles:    paths(rc.ChangedFiles),
			Dependencies:    paths(rc.Dependencies),
			TestFiles:       paths(rc.TestFiles),
			Excluded:        p.Changed.Excluded,
			Warnings:        rc.Warnings,
			EstimatedTokens: tokens,
		},
		State:      s.State.String(),
		Steps:      s.Completed,
		Failed:     s.Failed,
		Skipped:    s.Skipped,
		Total:      s.Total,
		StartedAt:  started,
		DurationMs: time.Since(started).Milliseconds(),
	}
}
