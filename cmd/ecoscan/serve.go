package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/ecoscan/internal/server"
)

func newServeCmd() *cobra.Command {
	var httpAddr, grpcAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (POST /ocr/) and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootLogger := newLogger(defaultLogConfig(), os.Stdout)
			cfg, err := loadConfig(bootLogger)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("http-addr") {
				cfg.Server.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("grpc-addr") {
				cfg.Server.GRPCAddr = grpcAddr
			}
			logger := newLogger(cfg.Log, os.Stdout)

			proc := buildProcessor(cfg, nil, logger)
			httpSrv := server.NewHTTPServer(server.HTTPConfig{
				Addr:             cfg.Server.HTTPAddr,
				CredentialHeader: cfg.Server.CredentialHeader,
				MaxUploadBytes:   cfg.Server.MaxUploadBytes,
				ShutdownTimeout:  cfg.Server.ShutdownTimeout,
			}, proc, logger)

			logger.Info("ecoscan starting",
				"http_addr", cfg.Server.HTTPAddr,
				"grpc_addr", cfg.Server.GRPCAddr,
				"model", cfg.LLM.Model,
				"tesseract", cfg.OCR.Tesseract,
				"validate_structured", cfg.LLM.ValidateStructured,
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return httpSrv.Run(ctx) })
			if cfg.Server.GRPCAddr != "" {
				grpcSrv := server.NewGRPCServer(cfg.Server.GRPCAddr, logger)
				g.Go(func() error { return grpcSrv.Run(ctx) })
			}
			err = g.Wait()
			logger.Info("ecoscan stopped", "error", err)
			return err
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	cmd.Flags().StringVar(&grpcAddr, "grpc-addr", "", "gRPC health listen address (overrides GRPC_ADDR; empty disables)")
	return cmd
}
