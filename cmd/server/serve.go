package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Brownie44l1/curecorn-api/internal/config"
	"github.com/Brownie44l1/curecorn-api/internal/handlers"
	"github.com/Brownie44l1/curecorn-api/internal/logger"
	"github.com/Brownie44l1/curecorn-api/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := logger.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		p, classifier, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer classifier.Close()

		srv := server.NewServer(cfg, handlers.NewHandler(p, log), log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		log.Info("endpoints",
			zap.String("GET /", "upload page"),
			zap.String("GET /docs", "API documentation"),
			zap.String("POST /predict", "predict from image upload (field 'file')"),
			zap.String("POST /predict/raw", "predict from a preprocessed NHWC array"),
		)

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return srv.Stop(context.Background())
		}
	},
}

func init() {
	serveCmd.Flags().Int("port", config.DefaultPort, "Port to run the server on")
	serveCmd.Flags().String("host", config.DefaultHost, "Host to run the server on")

	v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	v.BindPFlag("host", serveCmd.Flags().Lookup("host"))
}
