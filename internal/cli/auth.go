// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
)

// whoamiData is the JSON shape of login and whoami.
type whoamiData struct {
	User   model.User `json:"user"`
	Role   string     `json:"role"`
	APIURL string     `json:"api_url"`
}

func newLoginCmd(o *options) *cobra.Command {
	var username string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: "Sign in with a staff account. The session is stored locally and\n" +
			"shared with the interactive interface until it is signed out or rejected.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := cmd.InOrStdin(), cmd.ErrOrStderr()

			if username == "" {
				if passwordStdin {
					return &UsageError{Msg: "--username is required with --password-stdin"}
				}
				var err error
				if username, err = promptLine(in, out, o.tr.T(i18n.LoginUsername)+": "); err != nil {
					return err
				}
			}
			password, err := readPassword(in, out, o.tr.T(i18n.LoginPassword)+": ")
			if err != nil {
				return err
			}
			username = strings.TrimSpace(username)
			if username == "" || password == "" {
				return &UsageError{Msg: o.tr.T(i18n.LoginMissing)}
			}

			e, err := o.openEnv(o.logger)
			if err != nil {
				return err
			}
			defer e.Close()

			return emit(o, cmd.OutOrStdout(), "login", func() (whoamiData, error) {
				ctx, cancel := context.WithTimeout(cmd.Context(), o.cfg.RequestTimeout())
				defer cancel()
				user, err := e.mgr.Login(ctx, username, password)
				if err != nil {
					return whoamiData{}, err
				}
				return whoamiData{User: user, Role: roleLabel(o.tr, user), APIURL: e.client.BaseURL()}, nil
			}, func(d whoamiData) {
				fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(o.tr.T(i18n.LoggedInAs, d.User.FullName, d.Role)))
			})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted if omitted)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newLogoutCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.openEnv(o.logger)
			if err != nil {
				return err
			}
			defer e.Close()

			return emit(o, cmd.OutOrStdout(), "logout", func() (bool, error) {
				if !e.mgr.Start() {
					return false, nil
				}
				e.mgr.Logout()
				return true, nil
			}, func(signedOut bool) {
				if signedOut {
					fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(o.tr.T(i18n.SessionLoggedOut)))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), styles.RenderInfo(o.tr.T(i18n.SessionNone)))
				}
			})
		},
	}
}

func newWhoamiCmd(o *options) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in staff member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.openEnv(o.logger)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.requireSession(); err != nil {
				return err
			}

			return emit(o, cmd.OutOrStdout(), "whoami", func() (whoamiData, error) {
				user, _ := e.mgr.User()
				if verify {
					ctx, cancel := context.WithTimeout(cmd.Context(), o.cfg.RequestTimeout())
					defer cancel()
					if user, err = e.client.Me(ctx); err != nil {
						return whoamiData{}, err
					}
				}
				return whoamiData{User: user, Role: roleLabel(o.tr, user), APIURL: e.client.BaseURL()}, nil
			}, func(d whoamiData) {
				w := cmd.OutOrStdout()
				printField(w, o.tr.T(i18n.LoginUsername), d.User.Username)
				printField(w, o.tr.T(i18n.ColName), d.User.FullName)
				printField(w, o.tr.T(i18n.ColRole), d.Role)
				printField(w, "API", d.APIURL)
			})
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Ask the server instead of the stored identity")
	return cmd
}

func roleLabel(tr *i18n.Translator, u model.User) string {
	if u.IsAdmin {
		return tr.T(i18n.RoleAdministrator)
	}
	return tr.T(i18n.RoleLibrarian)
}
