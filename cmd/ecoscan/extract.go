package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/ocr"
	"github.com/joseph-ayodele/ecoscan/internal/pipeline"
	"github.com/joseph-ayodele/ecoscan/internal/server"
)

// runnerOverride lets tests swap tesseract out.
var runnerOverride ocr.Runner

func newExtractCmd() *cobra.Command {
	var imagePath, key string
	cmd := &cobra.Command{
		Use:   "extract --image <path>",
		Short: "Run OCR + structured extraction on one local image and print the JSON result",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(defaultLogConfig(), cmd.ErrOrStderr())
			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}
			logger = newLogger(cfg.Log, cmd.ErrOrStderr())
			if key == "" {
				key = os.Getenv("OPENAI_API_KEY")
			}

			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			proc := buildProcessor(cfg, runnerOverride, logger)
			return runExtract(cmd.Context(), proc, data, key, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "path to the receipt image")
	cmd.Flags().StringVar(&key, "key", "", "chat-completion credential (default $OPENAI_API_KEY)")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

// runExtract prints the same envelope POST /ocr/ would return.
func runExtract(ctx context.Context, proc server.Processor, data []byte, credential string, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	res, err := proc.Process(ctx, pipeline.Request{Image: data, Credential: credential})
	if err != nil {
		_ = enc.Encode(server.ErrorEnvelope{Error: err.Error()})
		return fmt.Errorf("extract failed (%s)", common.KindOf(err))
	}
	return enc.Encode(server.SuccessEnvelope{OCRText: res.OCRText, StructuredData: res.StructuredData})
}

func defaultLogConfig() common.LogConfig {
	return common.LogConfig{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")}
}
