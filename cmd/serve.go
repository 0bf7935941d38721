package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/maplebudget/mapleparse/api"
	"github.com/maplebudget/mapleparse/integrations/postgres"
	"github.com/maplebudget/mapleparse/parser/reconcile"
)

var (
	servePort  string
	serveDBURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Starts the HTTP API server that accepts statement PDFs and returns
parsed transactions as JSON. With a database configured, parsed transactions
are checked against stored ones for duplicates.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure logging for server mode
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		cfg := api.DefaultConfig()
		if servePort != "" {
			cfg.Port = ":" + servePort
		}
		cfg.LogPrefix = "SERVER: "

		var store reconcile.Store
		if serveDBURL == "" {
			serveDBURL = os.Getenv("DATABASE_URL")
		}
		if serveDBURL != "" {
			ctx := context.Background()
			db, err := postgres.Connect(ctx, serveDBURL)
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer db.Close()

			if err := db.EnsureSchema(ctx); err != nil {
				log.Fatalf("Failed to ensure schema: %v", err)
			}
			store = db
		} else {
			log.Println("No database configured, duplicate detection disabled")
		}

		server := api.New(cfg, store)
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to run the API server on")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL for duplicate detection (or set DATABASE_URL env)")
}
