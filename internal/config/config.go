package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Brownie44l1/curecorn-api/internal/diagnosis"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Host        string            `mapstructure:"host"`
	Port        int               `mapstructure:"port"`
	Environment string            `mapstructure:"environment"`
	Model       ModelConfig       `mapstructure:"model"`
	Image       ImageConfig       `mapstructure:"image"`
	Labels      []diagnosis.Label `mapstructure:"labels"`
}

type ModelConfig struct {
	Path         string `mapstructure:"path"`
	LibraryPath  string `mapstructure:"library_path"`
	InputName    string `mapstructure:"input_name"`
	OutputName   string `mapstructure:"output_name"`
	ApplySoftmax bool   `mapstructure:"apply_softmax"`
}

type ImageConfig struct {
	Width    int     `mapstructure:"width"`
	Height   int     `mapstructure:"height"`
	Channels int     `mapstructure:"channels"`
	Scale    float32 `mapstructure:"scale"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load resolves the configuration from, in increasing precedence, built-in
// defaults, the optional YAML config file, LEAF_* environment variables
// (after loading envFile when it exists) and flags already bound to v.
func Load(v *viper.Viper, configFile, envFile string) (*Config, error) {
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load env file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat env file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`, `-`, `_`))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEnvironment, c.Environment)
	}

	if c.Model.Path == "" {
		return fmt.Errorf("model path is required")
	}

	if _, err := diagnosis.NewLabels(c.Labels); err != nil {
		return err
	}
	return nil
}
