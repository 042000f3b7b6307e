// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/biblioteka-tui/internal/config"
	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/logging"
)

// BuildInfo is stamped into the binary at build time.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// options carries the global flags and what PersistentPreRunE derives from
// them. Every command closes over the same value.
type options struct {
	configPath string
	apiURL     string
	lang       string
	logLevel   string
	logFormat  string
	jsonOut    bool

	info   BuildInfo
	cfg    *config.Config
	logger *slog.Logger
	tr     *i18n.Translator
}

// NewRootCmd creates the root cobra command for the biblioteka CLI.
func NewRootCmd(info BuildInfo) *cobra.Command {
	o := &options{info: info}

	root := &cobra.Command{
		Use:   "biblioteka",
		Short: "Terminal client for the library management system",
		Long: "biblioteka is the staff client for the library management API.\n" +
			"Run without a command to start the interactive interface.",
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, o)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Config file (default ~/.biblioteka/config.toml)")
	pf.StringVar(&o.apiURL, "api-url", "", "Library API root (or BIBLIOTEKA_API_URL)")
	pf.StringVar(&o.lang, "lang", "", "Interface language: sr or en (or BIBLIOTEKA_LANG)")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&o.logFormat, "log-format", "", "Log format (text, json)")
	pf.BoolVar(&o.jsonOut, "json", false, "Output in JSON format")

	root.AddCommand(
		newLoginCmd(o),
		newLogoutCmd(o),
		newWhoamiCmd(o),
		newDashboardCmd(o),
		newMembersCmd(o),
		newLoansCmd(o),
		newReservationsCmd(o),
		newOverdueCmd(o),
		newBooksCmd(o),
		newExpiredCmd(o),
		newConfigCmd(o),
		newVersionCmd(o),
	)
	return root
}

// setup loads the configuration and applies the flags on top of it.
// Precedence is defaults, file, environment, flags.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return &ConfigError{Err: err}
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = o.apiURL
	}
	if flags.Changed("lang") {
		cfg.UI.Language = o.lang
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}

	o.cfg = cfg
	o.logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, cmd.ErrOrStderr())
	o.tr = i18n.New(cfg.UI.Language)
	lipgloss.SetColorProfile(colorProfile())
	return nil
}
