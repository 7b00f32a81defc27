package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pathok/admin-console/internal/handlers"
	"github.com/pathok/admin-console/internal/nav"
	"github.com/pathok/admin-console/internal/platform"
	"github.com/pathok/admin-console/internal/session"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var navConfig string
	var stateFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin console web server",
		Long: `Starts the Pathok admin console on the specified port.

The console authenticates operators against the platform API, shows each
role its permitted navigation, and proxies book, category, tag and user
management to the platform.`,
		Example: `  # Start the console on the default port 8889
  pathok-admin serve

  # Start against a staging platform with a custom menu
  PATHOK_API_URL=https://staging.pathok.com.bd pathok-admin serve --nav-config nav.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := platform.NewClient(os.Getenv("PATHOK_API_URL"))
			sessions := session.NewStore(client, stateFile)

			navItems := nav.Default()
			if navConfig != "" {
				items, err := nav.Load(navConfig)
				if err != nil {
					return fmt.Errorf("failed to load nav config: %w", err)
				}
				navItems = items
			}

			handler := handlers.New(handlers.Config{
				Sessions: sessions,
				Platform: client,
				NavItems: navItems,
			})

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/login", handler.HandleLogin)
			mux.HandleFunc("/api/logout", handler.HandleLogout)
			mux.HandleFunc("/api/me", handler.HandleMe)
			mux.HandleFunc("/api/me/last-path", handler.HandleLastPath)
			mux.HandleFunc("/api/nav", handler.HandleNav)
			mux.HandleFunc("/api/categories", handler.HandleCategories)
			mux.HandleFunc("/api/books", handler.HandleBooks)
			mux.HandleFunc("/api/books/", handler.HandleBookDetail)
			mux.HandleFunc("/api/book-types", handler.HandleBookTypes)
			mux.HandleFunc("/api/book-types/", handler.HandleBookTypeDetail)
			mux.HandleFunc("/api/tags", handler.HandleTags)
			mux.HandleFunc("/api/tags/", handler.HandleTagDetail)
			mux.HandleFunc("/api/users", handler.HandleUsers)
			mux.HandleFunc("/api/users/", handler.HandleUserDetail)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Pathok admin console available", "addr", addr, "url", "http://localhost"+addr, "platform", client.BaseURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8889", "Port to listen on")
	cmd.Flags().StringVar(&navConfig, "nav-config", "", "Path to a YAML navigation config (defaults to the built-in menu)")
	cmd.Flags().StringVar(&stateFile, "state-file", "", "Path for persisted session state (empty disables persistence)")

	return cmd
}
