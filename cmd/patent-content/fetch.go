// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-content/internal/content"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <patent>",
	Short: "Fetch one patent's content",
	Long: `Fetch resolves a patent URL, publication number, or patent/<number>/<lang>
key and prints a record holding exactly the fields named by --include
(default: ` + strings.Join(fieldNames(content.DefaultFields), ", ") + `).

--max-length bounds every text field on its own. Text is cut at a paragraph,
line, or word boundary and ends with a truncation notice; claims are dropped
whole, never split.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringSlice("include", nil, "fields to include: "+strings.Join(fieldNames(content.Fields), ", "))
	fetchCmd.Flags().Int("max-length", 0, "character budget per field")
	fetchCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	include, _ := cmd.Flags().GetStringSlice("include")
	var maxLength *int
	if cmd.Flags().Changed("max-length") {
		n, _ := cmd.Flags().GetInt("max-length")
		maxLength = &n
	}
	format, _ := cmd.Flags().GetString("format")

	opts, err := content.ParseOptions(include, maxLength)
	if err != nil {
		return err
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	svc := newServices(cfg, logger)
	rec, err := svc.content.Fetch(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", args[0], err)
	}
	return writeOutput(os.Stdout, rec, format)
}

func fieldNames(fields []content.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}
