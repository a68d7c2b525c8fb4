package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/app"
)

// runApp loads the environment, builds dependencies, and launches the TUI.
// A missing or broken provider does not stop the app: the home screen
// explains how to configure one.
func runApp(cmd *cobra.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	skip, _ := cmd.Flags().GetBool("no-splash")
	opts := app.Options{
		Events:     e.store.EventRepo(),
		Logger:     e.log,
		SkipSplash: skip,
	}

	provider, err := e.provider(cmd.Context())
	if err != nil {
		e.log.Warn("LLM provider not configured", zap.Error(err))
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		opts.ProviderErr = err
	} else {
		gen, err := e.generator(provider)
		if err != nil {
			return err
		}
		opts.Generator = gen
		opts.Evaluator = e.evaluator(provider)
		opts.ModelID = provider.ModelID()
	}

	e.log.Info("starting tui", zap.String("model", opts.ModelID))
	return app.Run(opts)
}

func init() {
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}
