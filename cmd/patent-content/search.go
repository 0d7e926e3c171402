// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-content/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search patents",
	Long: `Search runs a free-text patent query with optional filters and prints the
upstream result list. With --include-content each result gains a description
excerpt fetched from its document; results whose document cannot be fetched
are marked unavailable.

A query saved with --save can be rerun with --query-file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.Int("page", 0, "result page, starting at 1")
	f.Int("num", 0, "results per page (10-100)")
	f.String("sort", "", "sort by date: new or old")
	f.String("before", "", "only documents dated before YYYY-MM-DD")
	f.String("after", "", "only documents dated after YYYY-MM-DD")
	f.String("date-type", "", "date that --before/--after apply to: priority, filing, publication")
	f.String("inventor", "", "filter by inventor")
	f.String("assignee", "", "filter by assignee")
	f.String("country", "", "comma-separated jurisdiction codes (e.g. US,WO)")
	f.String("language", "", "document language (e.g. ENGLISH)")
	f.String("status", "", "GRANT or APPLICATION")
	f.String("type", "", "PATENT or DESIGN")
	f.Bool("include-content", false, "attach a description excerpt to each result")
	f.String("format", "table", "output format: table, json, or yaml")
	f.String("query-file", "", "load the query from a saved YAML query file")
	f.String("save", "", "save the query and results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	q, err := queryFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if err := requireAPIKey(cfg); err != nil {
		return err
	}

	svc := newServices(cfg, logger)
	out, err := svc.search.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, q, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", path)
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "table" {
		search.FormatTable(out, os.Stdout)
		return nil
	}
	return writeOutput(os.Stdout, out, format)
}

// queryFromFlags builds a query from a saved file, if named, then applies
// the positional query and any flags that were set.
func queryFromFlags(cmd *cobra.Command, args []string) (search.Query, error) {
	var q search.Query
	f := cmd.Flags()

	if path, _ := f.GetString("query-file"); path != "" {
		qf, err := search.ReadQueryFile(path)
		if err != nil {
			return q, err
		}
		q = qf.Query
	}
	if len(args) == 1 {
		q.Text = strings.TrimSpace(args[0])
	}

	ints := map[string]*int{"page": &q.Page, "num": &q.Num}
	for name, dst := range ints {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	strs := map[string]*string{
		"sort":      &q.Sort,
		"before":    &q.Before,
		"after":     &q.After,
		"date-type": &q.DateType,
		"inventor":  &q.Inventor,
		"assignee":  &q.Assignee,
		"country":   &q.Country,
		"language":  &q.Language,
		"status":    &q.Status,
		"type":      &q.Type,
	}
	for name, dst := range strs {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Changed("include-content") {
		q.IncludeContent, _ = f.GetBool("include-content")
	}

	if q.Text == "" {
		return q, fmt.Errorf("provide a search query or --query-file")
	}
	return q, nil
}
