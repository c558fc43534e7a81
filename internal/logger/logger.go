package logger

import (
	"github.com/Brownie44l1/curecorn-api/internal/config"

	"go.uber.org/zap"
)

// NewLogger picks the zap preset matching the configured environment.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	switch cfg.Environment {
	case config.EnvProduction:
		l, err = zap.NewProduction()
	case config.EnvTest:
		l = zap.NewExample()
	default:
		l, err = zap.NewDevelopment()
	}

	return l, err
}
