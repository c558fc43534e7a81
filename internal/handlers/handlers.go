package handlers

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Brownie44l1/curecorn-api/internal/imageproc"
	"github.com/Brownie44l1/curecorn-api/internal/pipeline"
	"github.com/Brownie44l1/curecorn-api/internal/tensor"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	//go:embed assets/index.html
	indexHTML []byte

	//go:embed assets/docs.html
	docsHTML []byte

	//go:embed assets/openapi.json
	openAPISpec []byte
)

const (
	FileField      = "file"
	RequestIDField = "request_id"
)

// RawRequest carries an already preprocessed NHWC batch.
type RawRequest struct {
	Image []float32 `json:"image" binding:"required"`
}

type Handler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

func NewHandler(p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline: p,
		logger:   logger,
	}
}

func (h *Handler) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (h *Handler) Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", docsHTML)
}

func (h *Handler) OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", openAPISpec)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"input_shape": h.pipeline.InputShape().Dims(),
	})
}

func (h *Handler) Predict(c *gin.Context) {
	file, err := c.FormFile(FileField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file provided. Use 'file' as the form field name"})
		return
	}

	content, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to open file"})
		return
	}
	defer content.Close()

	data, err := io.ReadAll(content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read file"})
		return
	}

	log := h.requestLogger(c)
	log.Info("received file",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size),
		zap.String("content_type", imageproc.DetectContentType(data)),
	)

	result, err := h.pipeline.Run(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, imageproc.ErrDecode) {
			log.Info("rejected upload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image format. Supported: JPEG, PNG, GIF, BMP, TIFF, WebP"})
			return
		}

		log.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Prediction failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) PredictRaw(c *gin.Context) {
	var req RawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
		return
	}

	shape := h.pipeline.InputShape()
	if len(req.Image) != shape.Size() {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Expected %d values for shape %s, got %d", shape.Size(), shape, len(req.Image)),
		})
		return
	}

	batch, err := tensor.NewBatch(shape, req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.pipeline.RunBatch(c.Request.Context(), batch)
	if err != nil {
		h.requestLogger(c).Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Prediction failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) requestLogger(c *gin.Context) *zap.Logger {
	if id := c.GetString(RequestIDField); id != "" {
		return h.logger.With(zap.String(RequestIDField, id))
	}
	return h.logger
}
