// lyriclens analyzes song lyrics for Christian thematic content: positive
// theme detection, content concerns, a weighted 0-100 score, a discrete
// verdict, and supporting scripture.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lyriclens/internal/config"
	"lyriclens/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOut    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lyriclens",
	Short: "lyriclens - Christian content analysis for song lyrics",
	Long: `lyriclens scores song lyrics for Christian thematic content.

It detects positive theological themes and content concerns, combines them
through a theological weighting table into a 0-100 score, derives a discrete
concern verdict, and resolves supporting scripture references.

Providers: keyword (offline, default), openai (any OpenAI-compatible
endpoint), gemini.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if configPath == "" {
			configPath = config.DefaultPath()
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Debug = true
			cfg.Logging.Level = "debug"
		}
		return logging.Initialize(logging.Options{
			Dir:        cfg.Logging.Dir,
			Debug:      cfg.Logging.Debug,
			Level:      cfg.Logging.Level,
			JSONFormat: cfg.Logging.JSONFormat,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+filepath.Join("~", ".lyriclens", "config.yaml")+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(scriptureCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lyriclens version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lyriclens %s\n", version)
	},
}
