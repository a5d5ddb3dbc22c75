package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Load the site content and serve the public site, the admin API and the chat proxy.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report := a.store.Load(ctx)
	a.logger.Info("content loaded",
		zap.String("source", string(report.Source)),
		zap.Strings("warnings", report.Warnings),
	)

	if a.cfg.AdminPassword == "" {
		a.logger.Warn("ADMIN_PASSWORD not set, admin login disabled unless a passphrase override exists")
	}
	if !a.cfg.ChatConfigured() {
		a.logger.Warn("chat API key not set, /api/chat will answer 500")
	}

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:       port,
		CORSOrigin: a.cfg.CORSOrigin,
		ChatAPIKey: a.cfg.ChatAPIKey,
		ChatModel:  a.cfg.ChatModel,
		Store:      a.store,
		Passphrase: a.passphrase,
		Logger:     a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
