// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/loregraph/loregraph/internal/serve"
	"github.com/loregraph/loregraph/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the indexed graph over HTTP",
	Long: `Serve exposes the SQLite-indexed graph: entity pages with Turtle content
negotiation, pattern queries, label search, statistics, and prometheus
metrics. With --watch the store reloads when the database file changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("db", "", "SQLite database file (default data/index/loregraph.db)")
	serveCmd.Flags().Bool("watch", false, "reload the store when the database file changes")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := types.DefaultConfig().Serve
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	cfg.Watch, _ = cmd.Flags().GetBool("watch")

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	srv, err := serve.New(cfg, log)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
