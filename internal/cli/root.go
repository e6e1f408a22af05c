// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/linkchat-tui/internal/backend"
	"github.com/jeranaias/linkchat-tui/internal/config"
	"github.com/jeranaias/linkchat-tui/internal/conversation"
	"github.com/jeranaias/linkchat-tui/internal/logging"
	"github.com/jeranaias/linkchat-tui/internal/model"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command annotations read by setup.
const (
	// annotationLogStderr marks commands whose diagnostics may go to stderr.
	annotationLogStderr = "log-stderr"
	// annotationConfigOptional lets --config name a file that does not exist yet.
	annotationConfigOptional = "config-optional"
)

// app holds what every command needs after flags are parsed.
type app struct {
	// flags
	configPath string
	endpoint   string
	logLevel   string
	logFile    string
	logFormat  string

	cfg     *config.Config
	logger  zerolog.Logger
	closer  io.Closer
	loadErr error
}

func newApp() *app {
	return &app{logger: zerolog.Nop()}
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute() int {
	a := newApp()
	defer a.teardown()

	root := newRootCommand(a)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
		return ExitCode(err)
	}
	return ExitSuccess
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "linkchat",
		Short: "Chat with the Chainlink assistant from your terminal",
		Long: `linkchat keeps one conversation with an assistant endpoint.

With no subcommand it opens the full-screen chat when run in a terminal
and falls back to line mode when input or output is redirected.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if Interactive() {
				return a.runTUI(cmd.Context())
			}
			return a.runPlain(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.SetVersionTemplate("linkchat version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Reason: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.endpoint, "endpoint", "", "assistant endpoint URL (overrides config)")
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.linkchat/config.toml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.StringVar(&a.logFile, "log-file", "", `diagnostic log file ("-" disables it)`)
	pf.StringVar(&a.logFormat, "log-format", "", "log format: console or json")

	root.AddCommand(
		newChatCommand(a),
		newAskCommand(a),
		newStubCommand(a),
		newConfigCommand(a),
		newDoctorCommand(a),
		newVersionCommand(),
	)
	return root
}

// =============================================================================
// SETUP
// =============================================================================

// setup resolves configuration and installs the logger. Precedence is flags,
// then environment (including .env), then the config file, then defaults.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return &configError{errors.Wrap(err, "load .env")}
	}

	var cfg *config.Config
	_, statErr := os.Stat(a.configPath)
	switch {
	case a.configPath != "" && os.IsNotExist(statErr) && cmd.Annotations[annotationConfigOptional] == "true":
		cfg = config.Default()
		cfg.ApplyEnvOverrides()
	case a.configPath != "":
		loaded, err := config.LoadFromPath(a.configPath)
		if err != nil {
			return &configError{err}
		}
		cfg = loaded
	default:
		cfg, a.loadErr = config.Load()
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint.URL = a.endpoint
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		if a.logFile == "-" {
			cfg.Log.File = ""
		} else {
			cfg.Log.File = a.logFile
		}
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return &configError{errors.Wrap(err, "invalid flags")}
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Stderr = cmd.Annotations[annotationLogStderr] == "true"
	logger, closer, err := logging.Init(logCfg)
	if err != nil {
		// An unwritable log file must not stop the chat.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; diagnostics disabled\n", err)
		logCfg.File = ""
		logger, closer, err = logging.Init(logCfg)
		if err != nil {
			return &configError{err}
		}
	}
	a.logger = logger.With().Str("cmd", cmd.Name()).Logger()
	a.closer = closer

	if a.loadErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using defaults\n", a.loadErr)
		a.logger.Warn().Err(a.loadErr).Msg("config file ignored")
	}
	a.logger.Debug().
		Str("endpoint", cfg.Endpoint.URL).
		Str("config", a.configPath).
		Msg("configuration loaded")

	a.cfg = cfg
	return nil
}

func (a *app) teardown() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

// newController builds a conversation over a fresh log seeded with seed.
func (a *app) newController(seed []model.Turn, showErrors bool) *conversation.Controller {
	client := backend.NewClient(a.clientConfig())
	return conversation.NewController(
		model.NewMessageLog(seed...),
		model.NewDraftBuffer(),
		client,
		conversation.Options{
			Logger:     a.logger,
			ShowErrors: showErrors,
		},
	)
}

// clientConfig stamps the build version onto the default user agent.
func (a *app) clientConfig() *backend.ClientConfig {
	cc := a.cfg.ClientConfig()
	if cc.UserAgent == "linkchat" {
		cc.UserAgent = "linkchat/" + Version
	}
	return cc
}
