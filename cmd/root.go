package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pathok-admin",
		Short: "Administrative console for the Pathok publishing platform",
		Long: `pathok-admin is the administrative console for the Pathok religious-text
publishing platform.

It serves the role-gated admin interface (books, annotations, fatwas,
scholars, categories, tags and users) backed by the platform's REST API, and
ships tooling for exporting the book catalog for offline analysis.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
