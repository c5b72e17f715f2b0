// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assaylabs/assay/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the persisted configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		fmt.Println(app.Store.Path())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a config value, or all values",
	Long: `Get prints the value of one setting, or every setting when no key is
given. Keys: base-url, output-format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("base-url      %s\n", app.Config.BaseURL)
		fmt.Printf("output-format %s\n", app.Config.OutputFormat)
		return nil
	}

	switch args[0] {
	case "base-url":
		fmt.Println(app.Config.BaseURL)
	case "output-format":
		fmt.Println(app.Config.OutputFormat)
	default:
		return fmt.Errorf("unknown config key %q: use base-url or output-format", args[0])
	}
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "base-url":
		app.Config.BaseURL = value
	case "output-format":
		format := types.OutputFormat(value)
		if !format.Valid() {
			return fmt.Errorf("unsupported format %q: use json, table, or yaml", value)
		}
		app.Config.OutputFormat = format
	default:
		return fmt.Errorf("unknown config key %q: use base-url or output-format", key)
	}

	if err := app.Store.Save(app.Config); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(configCmd)
}
