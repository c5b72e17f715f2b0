// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/assaylabs/assay/pkg/types"
)

// outputFormat resolves the rendering format: the --format flag wins over
// the configured default.
func outputFormat(cmd *cobra.Command, cfg types.Config) (types.OutputFormat, error) {
	raw, _ := cmd.Flags().GetString("format")
	if raw == "" {
		return cfg.OutputFormat, nil
	}
	format := types.OutputFormat(raw)
	if !format.Valid() {
		return "", fmt.Errorf("unsupported format %q: use json, table, or yaml", raw)
	}
	return format, nil
}

// render writes v to stdout in the requested format. The table renderer is
// supplied per command since column layout depends on the payload.
func render(v any, format types.OutputFormat, table func(w io.Writer)) error {
	switch format {
	case types.FormatJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case types.FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case types.FormatTable:
		table(os.Stdout)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// truncate shortens s to max bytes for table cells.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
