package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Brownie44l1/curecorn-api/internal/diagnosis"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "", "")
	require.NoError(t, err)

	require.Equal(t, "localhost:8000", cfg.Addr())
	require.Equal(t, EnvDevelopment, cfg.Environment)
	require.Equal(t, DefaultModelPath, cfg.Model.Path)
	require.Equal(t, 150, cfg.Image.Width)
	require.Equal(t, 150, cfg.Image.Height)
	require.Equal(t, 3, cfg.Image.Channels)
	require.Equal(t, float32(1), cfg.Image.Scale)
	require.Equal(t, diagnosis.DefaultLabels, cfg.Labels)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
environment: production
model:
  path: /models/leaf.onnx
  apply_softmax: true
image:
  scale: 0.00392
labels:
  - code: Sehat
    description: Healthy
  - code: Karat
    description: Common Rust
`), 0o644))

	cfg, err := Load(viper.New(), path, "")
	require.NoError(t, err)

	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, EnvProduction, cfg.Environment)
	require.Equal(t, "/models/leaf.onnx", cfg.Model.Path)
	require.True(t, cfg.Model.ApplySoftmax)
	require.InDelta(t, 0.00392, cfg.Image.Scale, 1e-6)
	require.Equal(t, []diagnosis.Label{
		{Code: "Sehat", Description: "Healthy"},
		{Code: "Karat", Description: "Common Rust"},
	}, cfg.Labels)
}

func TestLoadEnvOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LEAF_MODEL_PATH=/srv/from-dotenv.onnx\n"), 0o644))
	t.Setenv("LEAF_PORT", "8123")
	t.Cleanup(func() { os.Unsetenv("LEAF_MODEL_PATH") })

	cfg, err := Load(viper.New(), "", envFile)
	require.NoError(t, err)
	require.Equal(t, 8123, cfg.Port)
	require.Equal(t, "/srv/from-dotenv.onnx", cfg.Model.Path)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(viper.New(), "", filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	v := viper.New()
	v.Set("port", 70000)
	_, err := Load(v, "", "")
	require.ErrorIs(t, err, ErrInvalidPort)

	v = viper.New()
	v.Set("environment", "staging")
	_, err = Load(v, "", "")
	require.ErrorIs(t, err, ErrInvalidEnvironment)

	v = viper.New()
	v.Set("labels", []map[string]string{{"code": "Sehat"}})
	_, err = Load(v, "", "")
	require.ErrorIs(t, err, diagnosis.ErrInvalidLabels)
}
