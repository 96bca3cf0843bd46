package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tatianab/absurd-path/internal/server"
	"github.com/tatianab/absurd-path/internal/session"
	"github.com/tatianab/absurd-path/internal/storage"
)

var _ session.Persister = (*storage.Store)(nil)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve sessions over HTTP",
	Long: `Starts the JSON API:
	POST   /engine/session
	GET    /engine/{id}/view
	POST   /engine/{id}/choose   {"index": n}
	GET    /engine/{id}/snapshot
	DELETE /engine/{id}
Sessions live in memory unless a database path is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		eng, err := loadEngine(cfg)
		if err != nil {
			return err
		}

		var opts []session.Option
		if cfg.DBPath != "" {
			store, err := storage.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Printf("close snapshot store: %v", err)
				}
			}()
			opts = append(opts, session.WithPersister(store))
			log.Printf("persisting sessions to %s", cfg.DBPath)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := server.NewHandler(session.NewStore(eng, opts...))
		return server.ListenAndServe(ctx, cfg.HTTPAddr, handler)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("http_addr", "", "listen address (default :3001)")
	serveCmd.Flags().String("db_path", "", "SQLite database for session snapshots")
	_ = viper.BindPFlag("http_addr", serveCmd.Flags().Lookup("http_addr"))
	_ = viper.BindPFlag("db_path", serveCmd.Flags().Lookup("db_path"))
}
