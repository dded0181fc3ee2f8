package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jslab/labgrade/internal/source"
	"github.com/spf13/cobra"
)

func newStripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strip <file>",
		Short: "Print a file with its comments removed",
		Long: `Print a JavaScript file with its comments removed, exactly as the
grader sees it. Files ending in .html or .htm have their <!-- --> comments
removed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			var out string
			switch strings.ToLower(filepath.Ext(path)) {
			case ".html", ".htm":
				out = source.StripHTML(string(data))
			default:
				out = source.StripJS(string(data))
			}
			fmt.Fprint(cmd.OutOrStdout(), out) //nolint:errcheck
			return nil
		},
	}
}
