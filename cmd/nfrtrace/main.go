// Package main provides the nfrtrace CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nfrtrace/internal/config"
	"nfrtrace/internal/logger"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	cfgPath string
	appCfg  *config.AppConfig
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "nfrtrace",
	Short: "Trace non-functional requirements to functional requirements",
	Long: `nfrtrace builds NFR-to-FR trace matrices from a requirements file.

Each preprocessing variant (v1 tokenize, v2 stop-word removal, v3 lemmatize)
runs its own TF-IDF / cosine / rank / threshold chain. Ranked candidates,
cross-block scores and binary trace matrices are written as CSV.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config (default ./nfrtrace.yaml or ~/.config/nfrtrace/config.yaml)")
	rootCmd.Version = Version
}

// setup loads the config and attaches a logger to the command context.
func setup(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.AppConfig
		err error
	)
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, cfgPath, err = config.LoadDefault()
	}
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("load config: %w", err))
	}
	appCfg = cfg

	log, err := logger.NewLogger(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	log.Debug("config loaded", zap.String("path", cfgPath))
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}
