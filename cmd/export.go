package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pathok/admin-console/internal/export"
	"github.com/pathok/admin-console/internal/platform"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string
	var token string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the platform book catalog to a parquet dataset",
		Long: `Fetches all book records from the platform API and writes them to a
parquet file, plus a YAML summary of the run next to it.

A platform bearer token is required; obtain one by logging in to the console
and pass it via --token or the PATHOK_TOKEN environment variable.`,
		Example: `  # Export to books.parquet with a summary in books.yaml
  PATHOK_TOKEN=... pathok-admin export --out books.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv("PATHOK_TOKEN")
			}
			if token == "" {
				return fmt.Errorf("a platform bearer token is required (--token or PATHOK_TOKEN)")
			}

			client := platform.NewClient(os.Getenv("PATHOK_API_URL"))

			slog.Info("Fetching book catalog", "platform", client.BaseURL)
			books, err := client.ListBooks(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("failed to fetch books: %w", err)
			}
			slog.Info("Catalog fetched", "books", len(books))

			records := export.FromBooks(books)
			if err := export.WriteParquet(out, records); err != nil {
				return err
			}

			summaryPath := strings.TrimSuffix(out, ".parquet") + ".yaml"
			return export.WriteSummary(summaryPath, client.BaseURL, out, records)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "books.parquet", "Output parquet file")
	cmd.Flags().StringVar(&token, "token", "", "Platform bearer token (defaults to PATHOK_TOKEN)")

	return cmd
}
