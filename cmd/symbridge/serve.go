package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/symbridge/symbridge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP dispatch server",
	Long: `Run an HTTP server exposing the operation allowlist.

Endpoints:
  POST /call     Dispatch an operation: {"op": "...", "expr": {...}, "args": {...}}
  GET  /ops      Operation manifest with signatures
  GET  /health   Health check`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	serveCmd.Flags().Bool("repair-json", false, "Repair malformed request bodies (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if cmd.Flags().Changed("repair-json") {
		cfg.RepairJSON, _ = cmd.Flags().GetBool("repair-json")
	}

	log, err := buildLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(log, server.Options{
		Addr:       cfg.Addr,
		RepairJSON: cfg.RepairJSON,
	})
	if err := srv.Run(ctx); err != nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}
