package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Brownie44l1/curecorn-api/internal/config"
	"github.com/Brownie44l1/curecorn-api/internal/diagnosis"
	"github.com/Brownie44l1/curecorn-api/internal/imageproc"
	"github.com/Brownie44l1/curecorn-api/internal/model"
	"github.com/Brownie44l1/curecorn-api/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "CureCorn leaf diagnosis API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pflags := rootCmd.PersistentFlags()
	pflags.String("config", "", "Path to a YAML config file")
	pflags.String("env-file", ".env", "Path to the env file")
	pflags.String("model", config.DefaultModelPath, "Path to the ONNX model file")
	pflags.String("onnx-lib", "", "Path to the onnxruntime shared library")
	pflags.String("environment", config.EnvDevelopment, "development, production or test")

	v.BindPFlag("model.path", pflags.Lookup("model"))
	v.BindPFlag("model.library_path", pflags.Lookup("onnx-lib"))
	v.BindPFlag("environment", pflags.Lookup("environment"))

	rootCmd.AddCommand(serveCmd, predictCmd)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Load(v, configFile, envFile)
}

// buildPipeline loads the model and wires every stage. The returned
// classifier must be closed by the caller.
func buildPipeline(cfg *config.Config, log *zap.Logger) (*pipeline.Pipeline, *model.Classifier, error) {
	labels, err := diagnosis.NewLabels(cfg.Labels)
	if err != nil {
		return nil, nil, err
	}
	mapper, err := diagnosis.NewMapper(labels)
	if err != nil {
		return nil, nil, err
	}

	pre, err := imageproc.NewPreprocessor(cfg.Image.Width, cfg.Image.Height, cfg.Image.Channels, cfg.Image.Scale)
	if err != nil {
		return nil, nil, err
	}

	modelPath := resolveModelPath(cfg.Model.Path)
	log.Info("loading model", zap.String("path", modelPath))

	classifier, err := model.NewClassifier(model.Options{
		ModelPath:    modelPath,
		LibraryPath:  cfg.Model.LibraryPath,
		InputName:    cfg.Model.InputName,
		OutputName:   cfg.Model.OutputName,
		ApplySoftmax: cfg.Model.ApplySoftmax,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize classifier: %w", err)
	}

	p, err := pipeline.New(pre, classifier, mapper, log)
	if err != nil {
		classifier.Close()
		return nil, nil, err
	}

	log.Info("model loaded",
		zap.String("input", classifier.Metadata.InputName),
		zap.Int64s("input_shape", classifier.Metadata.InputShape),
		zap.String("output", classifier.Metadata.OutputName),
		zap.Int("classes", classifier.Classes()),
	)
	return p, classifier, nil
}

// resolveModelPath lets a relative model path work when the binary is run
// from cmd/server during development.
func resolveModelPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}

	wd, err := os.Getwd()
	if err != nil || filepath.Base(wd) != "server" {
		return path
	}

	candidate := filepath.Join(wd, "..", "..", path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}
