package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"speechalign/internal/config"
	"speechalign/internal/metrics"

	"github.com/spf13/cobra"
)

var (
	verbose     bool
	quiet       bool
	cfgFile     string
	envFile     string
	metricsFile string

	cfg *config.Config
	mtr *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "speechalign",
	Short: "Align diarization with recognized words and convert between RTTM, JSR and SRT",
	Long: `SpeechAlign merges speaker diarization segments with word-level speech
recognition output and converts the result between RTTM, JSON replica (JSR)
and SRT subtitle formats. Transcripts of consecutive audio parts can be
shifted and composed onto one timeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv(false, envFile)

		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		c.ApplyEnv()
		if metricsFile != "" {
			c.Metrics.File = metricsFile
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		cfg = c

		setupLogging(cfg.Logging.Level)
		return nil
	},
}

func setupLogging(configured string) {
	level := slog.LevelInfo
	switch strings.ToLower(configured) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// Execute runs the root command and writes the metrics textfile when one
// is configured, whether or not the command succeeded.
func Execute() error {
	err := rootCmd.Execute()
	if cfg != nil && cfg.Metrics.File != "" {
		if werr := mtr.WriteFile(cfg.Metrics.File); werr != nil {
			slog.Warn("failed to write metrics", "path", cfg.Metrics.File, "err", werr)
		} else {
			slog.Debug("metrics written", "path", cfg.Metrics.File)
		}
	}
	return err
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func init() {
	mtr = metrics.NewMetrics()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "shell-style env file loaded before the config")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
}
