package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/config"
	"github.com/jackzampolin/markscan/internal/home"
	"github.com/jackzampolin/markscan/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	serverURL    string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "markscan",
	Short: "Extract structured data from marksheets",
	Long: `markscan sends a marksheet image or PDF to an extraction service and
shows what came back: the raw record and a formatted summary with
confidence tiers.

Examples:
  markscan extract sheet.png                 # raw result and summary
  markscan extract sheet.pdf --view summary  # summary only
  markscan preview sheet.png                 # what would be shown before upload
  markscan serve                             # local browser UI`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.markscan/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "markscan home directory (default: ~/.markscan)",
	)
	rootCmd.PersistentFlags().StringVar(
		&serverURL, "server", "", "extraction service URL (default: http://localhost:8000)",
	)
	rootCmd.PersistentFlags().Duration(
		"timeout", 0, "per-request timeout, 0 waits indefinitely",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// flagKeys maps config keys onto the flags that override them.
var flagKeys = map[string]string{
	"server_url": "server",
	"timeout":    "timeout",
	"output":     "output",
	"log_level":  "log-level",
	"ui.host":    "host",
	"ui.port":    "port",
}

// app is what a command needs once config is loaded.
type app struct {
	config *config.Manager
	home   *home.Dir
	logger *slog.Logger
}

// loadApp resolves the home directory, loads config (file, env, then
// flags), and installs the logger.
func loadApp(cmd *cobra.Command) (*app, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}

	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}

	flags := make(map[string]*pflag.Flag, len(flagKeys))
	for key, name := range flagKeys {
		flags[key] = cmd.Flags().Lookup(name)
	}

	mgr, err := config.NewManager(path, flags)
	if err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	format, err := api.ParseOutputFormat(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("invalid output format: %w", err)
	}
	api.SetOutputFormat(string(format))

	logger.Debug("config loaded", "file", mgr.ConfigFile(), "server_url", cfg.ServerURL)

	return &app{config: mgr, home: h, logger: logger}, nil
}
