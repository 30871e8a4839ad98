package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/lgtm/internal/config"
	"github.com/dshills/lgtm/internal/providers"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Provider and model management",
}

type modelInfo struct {
	Provider string
	Models   []string
}

var knownModels = []modelInfo{
	{
		Provider: "gemini",
		Models: []string{
			"gemini-2.5-pro",
			"gemini-2.5-flash",
			"gemini-1.5-pro-latest",
		},
	},
	{
		Provider: "openai",
		Models: []string{
			"gpt-4o",
			"gpt-4.1",
			"gpt-4.1-mini",
			"o3-mini",
		},
	},
	{
		Provider: "anthropic",
		Models: []string{
			"claude-sonnet-4-20250514",
			"claude-opus-4-20250514",
			"claude-3-5-haiku-latest",
		},
	},
	{
		Provider: "ollama",
		Models: []string{
			"llama3.1",
			"qwen2.5-coder",
			"deepseek-coder-v2",
		},
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known providers and models",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		for _, info := range knownModels {
			fmt.Fprintf(w, "%s (key: %s):\n", info.Provider, keyList(info.Provider))
			for _, m := range info.Models {
				marker := ""
				if config.DefaultModels[info.Provider] == m {
					marker = " (default)"
				}
				fmt.Fprintf(w, "  - %s%s\n", m, marker)
			}
			fmt.Fprintln(w)
		}
	},
}

func keyList(provider string) string {
	if !providers.RequiresKey(provider) {
		return "optional"
	}
	return strings.Join(providers.KeyEnv(provider), " or ")
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate provider credentials with a ping prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Checking %s (%s)...\n", cfg.Provider, cfg.EffectiveModel())

		key := providers.ResolveKey(cfg.Provider, flagAPIKey)
		if err := checkCredential(cfg.Provider, key); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client, err := providers.New(ctx, cfg.Provider, providers.Options{
			Model:           cfg.EffectiveModel(),
			APIKey:          key,
			BaseURL:         cfg.BaseURL,
			MaxOutputTokens: 16,
		})
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		if _, err := client.Call(ctx, "Respond with exactly: ok"); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL (%s): %v\n", providers.Classify(err), err)
			exitCode = ExitFailure
			return nil
		}

		fmt.Fprintf(w, "OK: %s is configured and responding\n", cfg.Provider)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)
	modelsDoctorCmd.Flags().StringVar(&flagProvider, "provider", "", "Provider to check")
	modelsDoctorCmd.Flags().StringVar(&flagModel, "model", "", "Model to check")
	modelsDoctorCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key to check")
}
