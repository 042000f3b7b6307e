// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/biblioteka-tui/internal/config"
	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/logging"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
)

// configPaths is the JSON shape of "config path".
type configPaths struct {
	Config string `json:"config"`
	State  string `json:"state"`
	Log    string `json:"log"`
}

func newConfigCmd(o *options) *cobra.Command {
	var setupErr error

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the configuration file",
		Args:  cobra.NoArgs,
		// Only show needs a valid configuration; the rest must work on a
		// broken file.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := o.setup(cmd)
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) {
				setupErr = err
				o.cfg = config.Default()
				o.logger = logging.Discard()
				o.tr = i18n.New(o.cfg.UI.Language)
				return nil
			}
			return err
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if setupErr != nil {
				return setupErr
			}
			return emit(o, cmd.OutOrStdout(), "config show", func() (*config.Config, error) {
				return o.cfg, nil
			}, func(cfg *config.Config) {
				fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			})
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config, state and log file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(o, cmd.OutOrStdout(), "config path", func() (configPaths, error) {
				var p configPaths
				var err error
				if p.Config, err = o.configFile(); err != nil {
					return p, err
				}
				if p.State, err = o.cfg.StatePath(); err != nil {
					return p, err
				}
				p.Log, err = o.cfg.LogPath()
				return p, err
			}, func(p configPaths) {
				w := cmd.OutOrStdout()
				printField(w, "config", p.Config)
				printField(w, "state", p.State)
				printField(w, "log", p.Log)
			})
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(o, cmd.OutOrStdout(), "config init", func() (string, error) {
				p, err := o.configFile()
				if err != nil {
					return "", err
				}
				if _, err := os.Stat(p); err == nil && !force {
					return "", &UsageError{Msg: p + " already exists; use --force to overwrite"}
				}
				return p, config.Save(config.Default(), p)
			}, func(p string) {
				fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess("wrote "+p))
			})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one effective setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(o, cmd.OutOrStdout(), "config get", func() (any, error) {
				v, err := o.cfg.Get(args[0])
				if err != nil {
					return nil, &UsageError{Msg: err.Error()}
				}
				return v, nil
			}, func(v any) {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			})
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting in the configuration file",
		Long: "Change one setting in the configuration file. Environment\n" +
			"overrides are not written back.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(o, cmd.OutOrStdout(), "config set", func() (string, error) {
				p, err := o.configFile()
				if err != nil {
					return "", err
				}
				cfg := config.Default()
				if _, statErr := os.Stat(p); statErr == nil {
					if cfg, err = config.ReadFile(p); err != nil {
						return "", &ConfigError{Err: err}
					}
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return "", &UsageError{Msg: err.Error()}
				}
				if err := cfg.Validate(); err != nil {
					return "", &UsageError{Msg: err.Error()}
				}
				return p, config.Save(cfg, p)
			}, func(p string) {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s = %s (%s)\n", args[0], args[1], DimStyle.Render(p))
				if overridden(o.cfg, args[0], args[1]) {
					fmt.Fprintln(w, styles.RenderWarning("an environment variable or flag overrides this setting"))
				}
			})
		},
	}

	keys := &cobra.Command{
		Use:   "keys",
		Short: "List the setting names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(o, cmd.OutOrStdout(), "config keys", func() ([]string, error) {
				return config.Keys(), nil
			}, func(keys []string) {
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
			})
		},
	}

	cmd.AddCommand(show, path, initCmd, get, set, keys)
	return cmd
}

// overridden reports whether the effective value of key differs from the
// value just written, that is an environment variable or flag wins.
func overridden(effective *config.Config, key, written string) bool {
	fresh := config.Default()
	if err := fresh.Set(key, written); err != nil {
		return false
	}
	want, _ := fresh.Get(key)
	got, err := effective.Get(key)
	return err == nil && fmt.Sprint(got) != fmt.Sprint(want)
}

// configFile is the file the config commands read and write: --config, an
// existing default file, or the default TOML location.
func (o *options) configFile() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err != nil {
		if jsonPath, err := config.ConfigPathJSON(); err == nil {
			if _, err := os.Stat(jsonPath); err == nil {
				return jsonPath, nil
			}
		}
	}
	return tomlPath, nil
}
