package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lgtm/internal/codectx"
	"github.com/dshills/lgtm/internal/config"
	"github.com/dshills/lgtm/internal/filter"
	"github.com/dshills/lgtm/internal/gitctx"
	"github.com/dshills/lgtm/internal/review"
	"github.com/dshills/lgtm/internal/terminal"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagAPIKey = ""
	flagBase = ""
	flagProvider = ""
	flagModel = ""
	flagScanner = ""
	flagOut = ""
	flagFormat = ""
	flagRules = ""
	flagYes = false
	flagNoCache = false
	flagNoRedact = false
	flagLogLevel = ""
	flagLogFile = ""
	flagContextFiles = false
	flagContextPrompt = false
	flagConfigForce = false
}

// isolate points config, cache and logs at temp dirs and clears the
// environment the commands read.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, env := range []string{
		"LGTM_PROVIDER", "LGTM_MODEL", "LGTM_BASE_BRANCH", "LGTM_BASE_URL",
		"LGTM_SCANNER", "LGTM_LOG_LEVEL", "LGTM_LOG_FILE", "OLLAMA_HOST",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(env, "")
	}
	resetFlags()
	t.Cleanup(resetFlags)
}

// execute runs the root command with args and returns the exit code and the
// captured stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	code := Run()
	return code, out.String(), errOut.String()
}

// setupRepo creates a develop branch with two modules and a test, then a
// feature branch that imports both from src/app.ts and adds a build output.
func setupRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "command %v failed:\n%s", args, out)
	}
	write := func(name, content string) {
		t.Helper()
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	run("git", "init")
	run("git", "checkout", "-b", "develop")
	write("src/app.ts", "export const a = 1;\n")
	write("src/util.ts", "export const u = 1;\n")
	write("src/helper.ts", "export const h = 1;\n")
	write("src/app.test.ts", "import { a } from './app';\n")
	run("git", "add", "-A")
	run("git", "commit", "-m", "init")

	run("git", "checkout", "-b", "feature/login")
	write("src/app.ts", "import { u } from './util';\nimport { h } from '@/helper';\nexport const a = u + h;\n")
	write("dist/bundle.js", "var a=2;\n")
	run("git", "add", "-A")
	run("git", "commit", "-m", "login")
	return dir
}

type fakeVCS struct {
	repo       bool
	root       string
	rootErr    error
	branches   map[string]bool
	current    string
	currentErr error
	mergeBase  string
	mbErr      error
	changed    []string
	diff       string
}

func (f *fakeVCS) IsRepository(context.Context) bool { return f.repo }
func (f *fakeVCS) Root(context.Context) (string, error) {
	return f.root, f.rootErr
}
func (f *fakeVCS) BranchExists(_ context.Context, b string) bool { return f.branches[b] }
func (f *fakeVCS) CurrentBranch(context.Context) (string, error) {
	return f.current, f.currentErr
}
func (f *fakeVCS) MergeBase(context.Context, string) (string, error) {
	return f.mergeBase, f.mbErr
}
func (f *fakeVCS) ChangedFiles(context.Context, string) ([]string, error) {
	return f.changed, nil
}
func (f *fakeVCS) FullDiff(context.Context, string) (string, error) {
	return f.diff, nil
}

func goodVCS() *fakeVCS {
	return &fakeVCS{
		repo:      true,
		root:      "/work",
		branches:  map[string]bool{"develop": true},
		current:   "feature/x",
		mergeBase: "0123456789abcdef",
	}
}

func TestCheckRepository(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		mutate func(*fakeVCS)
		msg    string
	}{
		{"not a repo", func(f *fakeVCS) { f.repo = false }, "not a git repository"},
		{"root failure", func(f *fakeVCS) { f.rootErr = boom }, "cannot locate repository root"},
		{"missing base", func(f *fakeVCS) { f.branches = nil }, `base branch "develop" does not exist`},
		{"detached", func(f *fakeVCS) { f.currentErr = boom }, "cannot determine current branch"},
		{"on base", func(f *fakeVCS) { f.current = "develop" }, `currently on the base branch "develop"`},
		{"no merge base", func(f *fakeVCS) { f.mbErr = boom }, "no common ancestor between feature/x and develop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vcs := goodVCS()
			tt.mutate(vcs)
			_, err := checkRepository(context.Background(), vcs, "develop")
			var se *StartupError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Error(), tt.msg)
		})
	}

	st, err := checkRepository(context.Background(), goodVCS(), "develop")
	require.NoError(t, err)
	assert.Equal(t, repoState{Root: "/work", Branch: "feature/x", Base: "develop", MergeBase: "0123456789abcdef"}, st)
}

func TestStartupError_Unwrap(t *testing.T) {
	boom := errors.New("boom")
	err := &StartupError{Msg: "cannot determine current branch", Err: boom}
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "cannot determine current branch: boom", err.Error())
	assert.Equal(t, "plain", (&StartupError{Msg: "plain"}).Error())
}

func TestCheckCredential(t *testing.T) {
	err := checkCredential("gemini", "")
	var se *StartupError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Hint, "GEMINI_API_KEY")

	assert.Error(t, checkCredential("openai", "short"))
	assert.NoError(t, checkCredential("anthropic", "sk-ant-REDACTED"))
	assert.NoError(t, checkCredential("ollama", ""))
}

func TestBuildOverrides(t *testing.T) {
	isolate(t)
	flagProvider = "openai"
	flagBase = "main"
	flagLogLevel = "debug"

	got := buildOverrides()
	assert.Equal(t, "openai", got["provider"])
	assert.Equal(t, "main", got["baseBranch"])
	assert.Equal(t, "debug", got["log.level"])
	assert.Empty(t, got["model"])

	cfg, err := config.Load(got)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "main", cfg.BaseBranch)
	assert.Equal(t, "regex", cfg.Scanner)
}

func TestPrepare_Repository(t *testing.T) {
	isolate(t)
	dir := setupRepo(t)
	cfg := config.Default()
	cfg.Exclude = []string{"dist/**"}

	p, err := prepare(context.Background(), gitctx.New(dir), cfg, dirFS)
	require.NoError(t, err)

	assert.Equal(t, "feature/login", p.Repo.Branch)
	assert.Equal(t, "develop", p.Repo.Base)
	assert.NotEmpty(t, p.Repo.MergeBase)
	assert.Equal(t, []string{"src/app.ts"}, p.Changed.Kept)
	assert.Equal(t, []string{"dist/bundle.js"}, p.Changed.Excluded)
	assert.Contains(t, p.Diff, "src/app.ts")

	require.NotNil(t, p.Context)
	assert.Equal(t, []string{"src/app.ts"}, paths(p.Context.ChangedFiles))
	assert.ElementsMatch(t, []string{"src/util.ts", "src/helper.ts"}, paths(p.Context.Dependencies))
	assert.Equal(t, []string{"src/app.test.ts"}, paths(p.Context.TestFiles))
	assert.Empty(t, p.Context.Warnings)

	stats := statsByPath(p.Stats)
	assert.Equal(t, 3, stats["src/app.ts"].Added)
	assert.Equal(t, 1, stats["src/app.ts"].Deleted)
}

func TestPrepare_NothingKept(t *testing.T) {
	isolate(t)
	dir := setupRepo(t)
	cfg := config.Default()
	cfg.Exclude = []string{"dist/**", "src/**"}

	p, err := prepare(context.Background(), gitctx.New(dir), cfg, dirFS)
	require.NoError(t, err)
	assert.Nil(t, p.Context)
	assert.Empty(t, p.Diff)
	assert.Len(t, p.Changed.Excluded, 2)
}

func TestPrepare_StartupFailure(t *testing.T) {
	vcs := goodVCS()
	vcs.current = "develop"
	_, err := prepare(context.Background(), vcs, config.Default(), dirFS)
	var se *StartupError
	assert.ErrorAs(t, err, &se)
}

func TestPrepare_UnknownScanner(t *testing.T) {
	vcs := goodVCS()
	vcs.changed = []string{"src/a.ts"}
	cfg := config.Default()
	cfg.Scanner = "ouija"
	_, err := prepare(context.Background(), vcs, cfg, dirFS)
	assert.Error(t, err)
}

func testPrepared() *prepared {
	return &prepared{
		Repo: repoState{Root: "/work", Branch: "feature/x", Base: "develop", MergeBase: "0123456789abcdef"},
		Changed: filter.Result{
			Kept:     []string{"src/a.ts", "src/long/name.ts"},
			Excluded: []string{"package-lock.json"},
		},
		Stats: []gitctx.FileStat{{Path: "src/a.ts", Added: 4, Deleted: 1}},
		Context: &codectx.ReviewContext{
			ChangedFiles: []codectx.FileRecord{{Path: "src/a.ts"}, {Path: "src/long/name.ts"}},
			Dependencies: []codectx.FileRecord{{Path: "src/b.ts"}},
			TestFiles:    []codectx.FileRecord{{Path: "src/a.test.ts"}},
			Warnings:     []string{"could not read src/c.ts: missing"},
			AllPaths: map[string]bool{
				"src/a.ts":         true,
				"src/long/name.ts": true,
				"src/b.ts":         true,
				"src/a.test.ts":    true,
			},
		},
	}
}

func TestPrintFunctions(t *testing.T) {
	var buf bytes.Buffer
	con := terminal.NewConsole(&buf)
	p := testPrepared()

	printBranch(con, p.Repo)
	printChangedFiles(con, p)
	printContext(con, p.Context, 1234)
	printFiles(con, p.Context)

	out := buf.String()
	assert.Contains(t, out, "Reviewing feature/x against develop (merge base 0123456789)")
	assert.Contains(t, out, "Changed files (2):")
	assert.Contains(t, out, "  src/a.ts          +4 -1")
	assert.Contains(t, out, "  src/long/name.ts\n")
	assert.Contains(t, out, "Excluded (1):")
	assert.Contains(t, out, "could not read src/c.ts")
	assert.Contains(t, out, "  Dependencies:  1")
	assert.Contains(t, out, "  Total:         4 files, ~1234 tokens")
	assert.Contains(t, out, "Tests:\n  src/a.test.ts")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc", short("abc"))
	assert.Equal(t, "0123456789", short("0123456789abcdef"))
}

func TestBuildReport(t *testing.T) {
	cfg := config.Default()
	p := testPrepared()
	s := &review.Session{
		Completed: []review.StepResult{{Title: "Overview", Ordinal: 1, Response: "ok"}},
		Skipped:   []string{"Logic"},
		State:     review.StateStopped,
		Total:     5,
	}
	started := time.Now().Add(-time.Second)

	r := buildReport("sid", cfg, p, 99, s, started)
	assert.Equal(t, "lgtm", r.Tool)
	assert.Equal(t, version, r.Version)
	assert.Equal(t, "sid", r.SessionID)
	assert.Equal(t, config.DefaultModels["gemini"], r.Model)
	assert.Equal(t, "feature/x", r.Repo.Branch)
	assert.Equal(t, []string{"src/b.ts"}, r.Context.Dependencies)
	assert.Equal(t, []string{"package-lock.json"}, r.Context.Excluded)
	assert.Equal(t, 99, r.Context.EstimatedTokens)
	assert.Equal(t, "stopped", r.State)
	assert.Equal(t, []string{"Logic"}, r.Skipped)
	assert.Equal(t, 5, r.Total)
	assert.GreaterOrEqual(t, r.DurationMs, int64(1000))
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	code, out, _ := execute(t, "", "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "lgtm version "+version+"\n", out)
}

func TestConfigCommands(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "", "config", "init")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Wrote default config to")
	path, err := config.ConfigPath()
	require.NoError(t, err)
	assert.FileExists(t, path)

	code, out, _ = execute(t, "", "config", "path")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, path+"\n", out)

	code, _, errOut := execute(t, "", "config", "init")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, errOut, "use --force to overwrite")

	code, out, _ = execute(t, "", "config", "set", "baseBranch", "main")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Set baseBranch = main\n", out)
	cfg, err := config.LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.BaseBranch)

	code, _, errOut = execute(t, "", "config", "set", "nope", "x")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "unknown config key")

	code, _, _ = execute(t, "", "config", "set", "provider", "bard")
	assert.Equal(t, ExitFailure, code)

	t.Setenv("LGTM_PROVIDER", "openai")
	code, out, _ = execute(t, "", "config", "show")
	require.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(out, "# "+path+"\n"))
	assert.Contains(t, out, "baseBranch: main")
	assert.Contains(t, out, "provider: openai")

	cfg, err = config.LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider, "env never leaks into the file")

	code, _, _ = execute(t, "", "config", "init", "--force")
	require.Equal(t, ExitSuccess, code)
	cfg, err = config.LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "develop", cfg.BaseBranch)
}

func TestCacheCommands(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "", "cache", "clear")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Cache cleared (0 entries).\n", out)

	code, out, _ = execute(t, "", "cache", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, `"entries": 0`)

	_, _, _ = execute(t, "", "config", "set", "cache.enabled", "false")
	code, out, _ = execute(t, "", "cache", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Cache is disabled.\n", out)
}

func TestModelsList(t *testing.T) {
	isolate(t)
	code, out, _ := execute(t, "", "models", "list")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "gemini (key: GEMINI_API_KEY or GOOGLE_API_KEY):")
	assert.Contains(t, out, "ollama (key: optional):")
	assert.Contains(t, out, "  - "+config.DefaultModels["openai"]+" (default)")
}

// chatServer answers OpenAI-compatible chat completions with reply.
func chatServer(t *testing.T, reply string, prompts *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &req)
		if prompts != nil && len(req.Messages) > 0 {
			*prompts = append(*prompts, req.Messages[0].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   "llama3.1",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": reply}, "finish_reason": "stop"}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestModelsDoctor(t *testing.T) {
	isolate(t)
	srv := chatServer(t, "ok", nil)
	t.Setenv("LGTM_BASE_URL", srv.URL)

	code, out, _ := execute(t, "", "models", "doctor", "--provider", "ollama")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "OK: ollama is configured and responding")

	resetFlags()
	code, _, errOut := execute(t, "", "models", "doctor", "--provider", "openai")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "FAIL")
}

func TestContextCommand(t *testing.T) {
	isolate(t)
	dir := setupRepo(t)
	t.Chdir(dir)

	code, out, _ := execute(t, "", "context", "--files", "--prompt")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Reviewing feature/login against develop")
	assert.Contains(t, out, "Changed files (2):")
	assert.Contains(t, out, "Dependencies:\n  src/")
	assert.Contains(t, out, "# CODE CONTEXT")
	assert.Contains(t, out, "### src/helper.ts")
}

func TestContextCommand_NotARepo(t *testing.T) {
	isolate(t)
	t.Chdir(t.TempDir())

	code, out, _ := execute(t, "", "context")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "not a git repository")
}

func TestReviewCommand_MissingKey(t *testing.T) {
	isolate(t)
	dir := setupRepo(t)
	t.Chdir(dir)

	code, out, _ := execute(t, "", "--provider", "gemini", "--yes")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "invalid credential")
	assert.Contains(t, out, "GEMINI_API_KEY")
}

func TestReviewCommand_EndToEnd(t *testing.T) {
	isolate(t)
	dir := setupRepo(t)
	t.Chdir(dir)
	var prompts []string
	srv := chatServer(t, "## Findings\n\nLooks fine.", &prompts)
	t.Setenv("LGTM_BASE_URL", srv.URL)
	report := filepath.Join(t.TempDir(), "review.json")

	// An empty line continues past the overview; end of input quits at the next menu.
	code, out, _ := execute(t, "\n", "--provider", "ollama", "--yes", "--no-cache", "--out", report)
	require.Equal(t, ExitSuccess, code, out)

	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "src/app.ts")
	assert.Contains(t, prompts[1], "Looks fine.", "second step sees the first response")
	assert.Contains(t, out, "Step 1/5: Overview")
	assert.Contains(t, out, "Review Stopped")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var got review.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "stopped", got.State)
	assert.Len(t, got.Steps, 2)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, "ollama", got.Provider)
	assert.Equal(t, "feature/login", got.Repo.Branch)
}
