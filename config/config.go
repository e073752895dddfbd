package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Sink selection values for the --sink flag.
const (
	SinkSendmail = "sendmail"
	SinkIMAP     = "imap"
	SinkStdout   = "stdout"
)

// Config captures all command-line and environment options for one run.
// It is threaded explicitly through the dispatcher and clients; nothing
// reads the environment after LoadConfig returns.
type Config struct {
	Sink         string
	SendmailPath string

	IMAPHost           string
	IMAPPort           int
	IMAPUser           string
	IMAPPass           string
	UseTLS             bool
	InsecureSkipVerify bool
	IMAPFolder         string

	DryRun   bool
	LogLevel string
	EnvFile  string

	// Environment-sourced transcription settings.
	EnableTranscribe    bool
	TranscribeAPIKey    string
	TranscribeModel     string
	TranscribeURL       string
	TranscribeRateLimit int
	Debug               bool
}

// RegisterFlags attaches all CLI flags to the provided command.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("sink", SinkSendmail, "Mail sink: sendmail, imap or stdout")
	flags.String("sendmail-path", "", "Path of the sendmail binary (default /usr/sbin/sendmail)")
	flags.String("imap-host", "", "IMAP server hostname (sink=imap)")
	flags.Int("imap-port", 993, "IMAP server port")
	flags.String("imap-user", "", "IMAP username")
	flags.String("imap-pass", "", "IMAP password (falls back to IMAP_PASS env var)")
	flags.Bool("use-tls", true, "Use TLS for the IMAP connection")
	flags.Bool("insecure-skip-verify", false, "Skip TLS certificate verification (not recommended)")
	flags.String("imap-folder", "INBOX", "Target IMAP folder for converted mail")
	flags.Bool("dry-run", false, "Write the converted message to stdout instead of the sink")
	flags.String("log-level", "info", "Logging level: debug, info, warn, error")
	flags.String("env-file", "", "Optional .env file with transcription settings")
}

// LoadConfig converts the parsed Cobra flags and the environment into a
// validated Config.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()

	sinkName, err := flags.GetString("sink")
	if err != nil {
		return Config{}, err
	}
	sendmailPath, err := flags.GetString("sendmail-path")
	if err != nil {
		return Config{}, err
	}
	imapHost, err := flags.GetString("imap-host")
	if err != nil {
		return Config{}, err
	}
	imapPort, err := flags.GetInt("imap-port")
	if err != nil {
		return Config{}, err
	}
	imapUser, err := flags.GetString("imap-user")
	if err != nil {
		return Config{}, err
	}
	imapPass, err := flags.GetString("imap-pass")
	if err != nil {
		return Config{}, err
	}
	useTLS, err := flags.GetBool("use-tls")
	if err != nil {
		return Config{}, err
	}
	insecureSkipVerify, err := flags.GetBool("insecure-skip-verify")
	if err != nil {
		return Config{}, err
	}
	imapFolder, err := flags.GetString("imap-folder")
	if err != nil {
		return Config{}, err
	}
	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return Config{}, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return Config{}, err
	}
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return Config{}, err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// A .env next to the working directory is optional.
		_ = godotenv.Load()
	}

	if imapPass == "" {
		imapPass = os.Getenv("IMAP_PASS")
	}

	logLevel = strings.ToLower(logLevel)
	if logLevel == "warning" {
		logLevel = "warn"
	}

	cfg := Config{
		Sink:               strings.ToLower(sinkName),
		SendmailPath:       sendmailPath,
		IMAPHost:           imapHost,
		IMAPPort:           imapPort,
		IMAPUser:           imapUser,
		IMAPPass:           imapPass,
		UseTLS:             useTLS,
		InsecureSkipVerify: insecureSkipVerify,
		IMAPFolder:         imapFolder,
		DryRun:             dryRun,
		LogLevel:           logLevel,
		EnvFile:            envFile,

		EnableTranscribe: envBool("ENABLE_VM_TRANSCRIBE"),
		TranscribeAPIKey: os.Getenv("VM_TRANSCRIBE_APIKEY"),
		TranscribeModel:  os.Getenv("VM_TRANSCRIBE_MODEL"),
		TranscribeURL:    os.Getenv("VM_TRANSCRIBE_URL"),
		Debug:            envBool("VM_DEBUG"),
	}

	if raw := os.Getenv("VM_TRANSCRIBE_RATE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return Config{}, fmt.Errorf("VM_TRANSCRIBE_RATE_LIMIT must be a non-negative integer, got %q", raw)
		}
		cfg.TranscribeRateLimit = limit
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	switch cfg.Sink {
	case SinkSendmail, SinkIMAP, SinkStdout:
	default:
		return fmt.Errorf("invalid --sink: %s", cfg.Sink)
	}

	if cfg.Sink == SinkIMAP && !cfg.DryRun {
		if cfg.IMAPHost == "" {
			return fmt.Errorf("--imap-host is required with --sink=imap")
		}
		if cfg.IMAPUser == "" {
			return fmt.Errorf("--imap-user is required with --sink=imap")
		}
		if cfg.IMAPPass == "" {
			return fmt.Errorf("IMAP password must be provided via --imap-pass or IMAP_PASS env var")
		}
		if cfg.IMAPPort <= 0 || cfg.IMAPPort > 65535 {
			return fmt.Errorf("--imap-port must be between 1 and 65535")
		}
	}

	if cfg.EnableTranscribe && cfg.TranscribeAPIKey == "" {
		return fmt.Errorf("ENABLE_VM_TRANSCRIBE is set but VM_TRANSCRIBE_APIKEY is empty")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.LogLevel)
	}

	return nil
}

func envBool(key string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false
	}
	return value
}
