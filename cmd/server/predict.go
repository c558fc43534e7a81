package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Brownie44l1/curecorn-api/internal/logger"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict <image>",
	Short: "Diagnose a local image file and print the JSON result",
	Args:  cobra.ExactArgs(1),
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

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		p, classifier, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer classifier.Close()

		result, err := p.Run(cmd.Context(), data)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
