// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assaylabs/assay/internal/api"
	"github.com/assaylabs/assay/pkg/types"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "List, inspect, summarize, and search documents",
}

// --- list ---

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents visible to your key",
	RunE:  runDocumentsList,
}

func runDocumentsList(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, app.Config)
	if err != nil {
		return err
	}

	opts := listOptionsFromFlags(cmd)
	list, err := app.newAPIClient().ListDocuments(context.Background(), opts)
	if err != nil {
		return err
	}

	return render(list, format, func(w io.Writer) {
		documentTable(w, list.Documents)
		fmt.Fprintf(w, "\n%d of %d documents\n", len(list.Documents), list.Total)
	})
}

// listOptionsFromFlags maps CLI flags onto request options. The deprecated
// --visibility flag is accepted as an alias for --filter; when both are
// given, --filter wins.
func listOptionsFromFlags(cmd *cobra.Command) api.ListDocumentsOptions {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	filter, _ := cmd.Flags().GetString("filter")
	visibility, _ := cmd.Flags().GetString("visibility")

	// Cobra prints the deprecation notice; here only the precedence rule.
	if filter == "" && visibility != "" {
		filter = visibility
	}

	return api.ListDocumentsOptions{
		Limit:  limit,
		Offset: offset,
		Filter: filter,
	}
}

func documentTable(w io.Writer, docs []types.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return
	}
	fmt.Fprintf(w, "%-26s  %-40s  %-10s  %-6s  %s\n",
		"ID", "Title", "Status", "Pages", "Created")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, d := range docs {
		fmt.Fprintf(w, "%-26s  %-40s  %-10s  %-6d  %s\n",
			d.ID, truncate(d.Title, 40), d.Status, d.PageCount,
			d.CreatedAt.Format("2006-01-02"))
	}
}

// --- get ---

var documentsGetCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Show one document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsGet,
}

func runDocumentsGet(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, app.Config)
	if err != nil {
		return err
	}

	doc, err := app.newAPIClient().GetDocument(context.Background(), args[0])
	if err != nil {
		return err
	}

	return render(doc, format, func(w io.Writer) {
		fmt.Fprintf(w, "ID:         %s\n", doc.ID)
		fmt.Fprintf(w, "Title:      %s\n", doc.Title)
		if doc.Filename != "" {
			fmt.Fprintf(w, "Filename:   %s\n", doc.Filename)
		}
		if doc.Visibility != "" {
			fmt.Fprintf(w, "Visibility: %s\n", doc.Visibility)
		}
		fmt.Fprintf(w, "Status:     %s\n", doc.Status)
		fmt.Fprintf(w, "Pages:      %d\n", doc.PageCount)
		fmt.Fprintf(w, "Created:    %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))
	})
}

// --- summary ---

var documentsSummaryCmd = &cobra.Command{
	Use:   "summary <document-id>",
	Short: "Show the server-generated summary of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsSummary,
}

func runDocumentsSummary(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, app.Config)
	if err != nil {
		return err
	}

	summary, err := app.newAPIClient().GetDocumentSummary(context.Background(), args[0])
	if err != nil {
		return err
	}

	return render(summary, format, func(w io.Writer) {
		fmt.Fprintln(w, summary.Summary)
		if len(summary.KeyPoints) > 0 {
			fmt.Fprintln(w, "\nKey points:")
			for _, p := range summary.KeyPoints {
				fmt.Fprintf(w, "  - %s\n", p)
			}
		}
	})
}

// --- search ---

var documentsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search documents",
	Long: `Search runs a server-side search across your documents. Ranking and
snippets are computed remotely; results print in server order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentsSearch,
}

func runDocumentsSearch(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, app.Config)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	query := strings.Join(args, " ")
	results, err := app.newAPIClient().SearchDocuments(context.Background(), query, limit)
	if err != nil {
		return err
	}

	return render(results, format, func(w io.Writer) {
		if len(results.Hits) == 0 {
			fmt.Fprintln(w, "No results found.")
			return
		}
		fmt.Fprintf(w, "%-5s  %-26s  %-40s  %s\n", "Score", "ID", "Title", "Snippet")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for _, h := range results.Hits {
			fmt.Fprintf(w, "%-5.2f  %-26s  %-40s  %s\n",
				h.Score, h.Document.ID, truncate(h.Document.Title, 40), truncate(h.Snippet, 40))
		}
		fmt.Fprintf(w, "\n%d of %d results\n", len(results.Hits), results.Total)
	})
}

func init() {
	documentsListCmd.Flags().Int("limit", 0, "maximum documents to return (0 = server default)")
	documentsListCmd.Flags().Int("offset", 0, "listing offset for pagination")
	documentsListCmd.Flags().String("filter", "", "restrict the listing (e.g. shared, private)")
	documentsListCmd.Flags().String("visibility", "", "deprecated alias for --filter")
	documentsListCmd.Flags().MarkDeprecated("visibility", "use --filter")

	documentsSearchCmd.Flags().Int("limit", 0, "maximum results to return (0 = server default)")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsGetCmd)
	documentsCmd.AddCommand(documentsSummaryCmd)
	documentsCmd.AddCommand(documentsSearchCmd)

	rootCmd.AddCommand(documentsCmd)
}
