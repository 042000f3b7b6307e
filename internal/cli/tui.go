// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/logging"
	"github.com/jeranaias/biblioteka-tui/internal/session"
	"github.com/jeranaias/biblioteka-tui/internal/ui/app"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
)

// configFetchTimeout bounds the startup GET /auth/config.
const configFetchTimeout = 5 * time.Second

// runTUI starts the interactive interface. Logs go to a file because the
// program owns the terminal.
func runTUI(cmd *cobra.Command, o *options) error {
	if !IsTTY() || !IsStdoutTTY() {
		return RequiresTTY("start the interactive interface")
	}

	logPath, err := o.cfg.LogPath()
	if err != nil {
		return err
	}
	logger, logFile, err := logging.NewFileLogger(logPath, logging.ParseLevel(o.cfg.Log.Level), o.cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logFile.Close()

	e, err := o.openEnv(logger)
	if err != nil {
		return err
	}
	defer e.Close()

	tr := o.tr
	if cmd.Flags().Changed("lang") {
		if err := e.store.SetLanguage(i18n.Code(tr.Tag())); err != nil {
			logger.Warn("could not remember language", "error", err)
		}
	} else if lang := e.store.Language(); lang != "" {
		tr = i18n.New(lang)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), configFetchTimeout)
	e.mgr.SetTimeouts(e.timeouts(ctx, o.cfg, logger))
	cancel()

	// Bound before Start: with warning >= timeout the first warning fires
	// at once, before the program exists.
	sender := &session.DeferredSender{}
	session.Bind(e.mgr, sender.Send)
	resumed := e.mgr.Start()
	logger.Info("tui starting", "version", o.info.Version, "api", e.client.BaseURL(), "resumed", resumed)

	model := app.New(app.Options{
		Session:        e.mgr,
		Backend:        e.client,
		Translator:     tr,
		Theme:          styles.NewTheme(o.cfg.UI.Theme),
		Logger:         logger,
		RequestTimeout: o.cfg.RequestTimeout(),
		Version:        o.info.Version,
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if o.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, progOpts...)
	sender.Attach(session.ProgramSender(p))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	logger.Info("tui stopped", "state", e.mgr.State().String())
	return nil
}
