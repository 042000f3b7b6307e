// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionData is the JSON shape of "version".
type versionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(o, cmd.OutOrStdout(), "version", func() (versionData, error) {
				return versionData{
					Version:   o.info.Version,
					GitCommit: o.info.GitCommit,
					BuildDate: o.info.BuildDate,
					GoVersion: runtime.Version(),
					Platform:  runtime.GOOS + "/" + runtime.GOARCH,
				}, nil
			}, func(v versionData) {
				w := cmd.OutOrStdout()
				fmt.Fprintln(w, TitleStyle.Render("biblioteka "+v.Version))
				printField(w, "Commit", v.GitCommit)
				printField(w, "Built", v.BuildDate)
				printField(w, "Go", v.GoVersion)
				printField(w, "Platform", v.Platform)
			})
		},
	}
}
