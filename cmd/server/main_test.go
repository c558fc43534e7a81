package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Brownie44l1/curecorn-api/internal/model"
	"github.com/stretchr/testify/require"
)

func TestPredictFailsWithoutModel(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	imgPath := filepath.Join(dir, "leaf.png")
	require.NoError(t, os.WriteFile(imgPath, buf.Bytes(), 0o644))

	rootCmd.SetArgs([]string{
		"predict", imgPath,
		"--model", filepath.Join(dir, "missing.onnx"),
		"--environment", "test",
		"--env-file", "",
	})
	err := rootCmd.Execute()
	require.ErrorIs(t, err, model.ErrModelNotFound)
}

func TestResolveModelPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "model.onnx")
	require.Equal(t, abs, resolveModelPath(abs))
	require.Equal(t, "does-not-exist.onnx", resolveModelPath("does-not-exist.onnx"))
}
