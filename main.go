package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhcgn/voicemail-to-mp3/audio"
	"github.com/dhcgn/voicemail-to-mp3/batch"
	"github.com/dhcgn/voicemail-to-mp3/config"
	"github.com/dhcgn/voicemail-to-mp3/dispatcher"
	"github.com/dhcgn/voicemail-to-mp3/sink"
	"github.com/dhcgn/voicemail-to-mp3/transcribe"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "voicemail-to-mp3",
		Short: "Replace the WAV attachment of a voicemail notification email with MP3",
		Long: `Reads one complete voicemail notification email from stdin, transcodes
its WAV attachment to MP3 (optionally adding a speech-to-text transcript)
and hands the rebuilt message to a mail sink. Messages without an audio
attachment are forwarded unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg)
			slog.SetDefault(logger)
			logger.Info("starting voicemail-to-mp3", "sink", cfg.Sink, "transcribe", cfg.EnableTranscribe, "dryRun", cfg.DryRun)

			d, err := buildDispatcher(cfg, logger)
			if err != nil {
				return err
			}

			return d.Run(cmd.Context(), os.Stdin)
		},
	}

	config.RegisterFlags(rootCmd)
	rootCmd.AddCommand(newBatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newBatchCmd() *cobra.Command {
	var (
		includeHeader []string
		excludeHeader []string
	)

	cmd := &cobra.Command{
		Use:   "batch [mbox file]",
		Short: "Convert every voicemail notification in an mbox archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg)
			slog.SetDefault(logger)
			logger.Info("starting batch conversion", "mbox", args[0], "sink", cfg.Sink, "dryRun", cfg.DryRun)

			d, err := buildDispatcher(cfg, logger)
			if err != nil {
				return err
			}

			opts := batch.Options{
				MboxPath:      args[0],
				IncludeHeader: includeHeader,
				ExcludeHeader: excludeHeader,
				// The bar would interleave with dry-run message output.
				ShowProgress: cfg.LogLevel == "info" && !cfg.DryRun && cfg.Sink != config.SinkStdout,
			}

			summary, err := batch.Run(cmd.Context(), opts, d, logger)
			if err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d messages failed", summary.Failed, summary.Scanned)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&includeHeader, "include-header", nil, "Regex allow-list applied to message headers (mutually exclusive with --exclude-header)")
	cmd.Flags().StringArrayVar(&excludeHeader, "exclude-header", nil, "Regex block-list applied to message headers (mutually exclusive with --include-header)")

	return cmd
}

func buildDispatcher(cfg config.Config, logger *slog.Logger) (*dispatcher.Dispatcher, error) {
	normalizer, err := audio.NewSoxNormalizer()
	if err != nil {
		return nil, err
	}
	encoder := &audio.LameEncoder{}

	var transcriber dispatcher.Transcriber
	if cfg.EnableTranscribe {
		client, err := transcribe.NewClient(transcribe.Config{
			Endpoint:             cfg.TranscribeURL,
			APIKey:               cfg.TranscribeAPIKey,
			Model:                cfg.TranscribeModel,
			RateLimitBytesPerSec: cfg.TranscribeRateLimit,
		})
		if err != nil {
			return nil, err
		}
		transcriber = client
	}

	mailSink, err := buildSink(cfg, logger)
	if err != nil {
		return nil, err
	}

	return dispatcher.New(cfg, logger, normalizer, encoder, transcriber, mailSink), nil
}

func buildSink(cfg config.Config, logger *slog.Logger) (sink.MailSink, error) {
	if cfg.DryRun {
		return sink.NewWriter(os.Stdout), nil
	}

	switch cfg.Sink {
	case config.SinkSendmail:
		return sink.NewSendmail(cfg.SendmailPath), nil
	case config.SinkIMAP:
		return sink.NewIMAP(sink.IMAPOptions{
			Host:               cfg.IMAPHost,
			Port:               cfg.IMAPPort,
			Username:           cfg.IMAPUser,
			Password:           cfg.IMAPPass,
			UseTLS:             cfg.UseTLS,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			Folder:             cfg.IMAPFolder,
		}, logger)
	case config.SinkStdout:
		return sink.NewWriter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown sink: %s", cfg.Sink)
	}
}

func setupLogger(cfg config.Config) *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	switch cfg.LogLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}

	// Stdout carries the converted message in dry-run mode, so diagnostics
	// go to stderr.
	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
