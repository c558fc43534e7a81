package config

import (
	"errors"

	"github.com/Brownie44l1/curecorn-api/internal/diagnosis"
	"github.com/Brownie44l1/curecorn-api/internal/imageproc"
)

const (
	EnvPrefix = "LEAF"

	DefaultHost      = "localhost"
	DefaultPort      = 8000
	DefaultModelPath = "model.onnx"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

var (
	ErrInvalidPort        = errors.New("port must be between 1 and 65535")
	ErrInvalidEnvironment = errors.New("unknown environment")
)

func defaults() map[string]any {
	return map[string]any{
		"host":                DefaultHost,
		"port":                DefaultPort,
		"environment":         EnvDevelopment,
		"model.path":          DefaultModelPath,
		"model.library_path":  "",
		"model.input_name":    "",
		"model.output_name":   "",
		"model.apply_softmax": false,
		"image.width":         imageproc.DefaultSize,
		"image.height":        imageproc.DefaultSize,
		"image.channels":      imageproc.DefaultChannels,
		"image.scale":         1.0,
		"labels":              diagnosis.DefaultLabels,
	}
}
