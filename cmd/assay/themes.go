// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Browse cross-document themes",
}

var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the themes computed across your documents",
	RunE:  runThemesList,
}

func runThemesList(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, app.Config)
	if err != nil {
		return err
	}

	list, err := app.newAPIClient().ListThemes(context.Background())
	if err != nil {
		return err
	}

	return render(list, format, func(w io.Writer) {
		if len(list.Themes) == 0 {
			fmt.Fprintln(w, "No themes found.")
			return
		}
		fmt.Fprintf(w, "%-26s  %-30s  %-9s  %s\n", "ID", "Name", "Documents", "Description")
		fmt.Fprintln(w, strings.Repeat("-", 100))
		for _, t := range list.Themes {
			fmt.Fprintf(w, "%-26s  %-30s  %-9d  %s\n",
				t.ID, truncate(t.Name, 30), t.DocumentCount, truncate(t.Description, 40))
		}
	})
}

func init() {
	themesCmd.AddCommand(themesListCmd)
	rootCmd.AddCommand(themesCmd)
}
