package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/windfab/towerdesk/gateway/sqlite"
	"github.com/windfab/towerdesk/httpapi"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the record backend over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8476", "listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", "towerdesk.db", "sqlite database path")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	gw, err := sqlite.Open(serveDB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer gw.Close()

	server := httpapi.NewServer(gw, logger)
	logger.Info("listening", "addr", serveAddr, "db", serveDB)
	return http.ListenAndServe(serveAddr, server.Handler())
}
