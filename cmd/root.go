package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/prepbot/internal/config"
	"github.com/abhisek/prepbot/internal/grading"
	"github.com/abhisek/prepbot/internal/llm"
	"github.com/abhisek/prepbot/internal/logging"
	"github.com/abhisek/prepbot/internal/questiongen"
	"github.com/abhisek/prepbot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prepbot",
	Short: "AI interview practice in your terminal",
	Long: "PrepBot asks interview questions for a role, scores your answers " +
		"with an LLM and tracks how you are doing across question types.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite audit database (overrides PREPBOT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/prepbot/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "Extra .env files to load")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is everything a command needs: resolved config, the logger and the
// audit store. The provider is connected separately since most failures
// there are recoverable.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
}

// loadEnv resolves .env files, config and logging, then opens the store.
func loadEnv(cmd *cobra.Command) (*env, error) {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	if err := config.LoadDotEnv(append([]string{".env"}, files...)...); err != nil {
		return nil, err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(log))
	if err != nil {
		log.Error("open store", zap.String("db", dbPath), zap.Error(err))
		_ = log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Debug("environment loaded",
		zap.String("config", cfg.File),
		zap.String("db", dbPath),
		zap.String("provider", cfg.LLM.Provider))
	return &env{cfg: cfg, log: log, store: st}, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", zap.Error(err))
	}
	_ = e.log.Sync()
}

// provider builds the configured LLM provider with audit logging.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	return llm.NewProvider(ctx, e.cfg.Provider(), e.store.EventRepo(), e.log)
}

// generator builds a question generator, honoring prompts.file.
func (e *env) generator(p llm.Provider) (*questiongen.LLMGenerator, error) {
	cfg := questiongen.DefaultConfig()
	if e.cfg.Prompts.File != "" {
		cat, err := questiongen.LoadCatalog(e.cfg.Prompts.File)
		if err != nil {
			return nil, err
		}
		cfg.Catalog = cat
	}
	if e.cfg.LLM.MaxTokens > 0 {
		cfg.MaxTokens = e.cfg.LLM.MaxTokens
	}
	if e.cfg.LLM.Temperature != nil {
		cfg.Temperature = e.cfg.LLM.Temperature
	}
	return questiongen.New(p, cfg), nil
}

func (e *env) evaluator(p llm.Provider) *grading.LLMEvaluator {
	cfg := grading.Config{
		MaxTokens:   e.cfg.LLM.MaxTokens,
		Temperature: e.cfg.LLM.Temperature,
	}
	return grading.New(p, cfg, e.log)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key, then PREPBOT_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
