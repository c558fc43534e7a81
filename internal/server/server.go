package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Brownie44l1/curecorn-api/internal/config"
	"github.com/Brownie44l1/curecorn-api/internal/handlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// AllowedOrigins is the fixed CORS allow-list.
var AllowedOrigins = []string{
	"http://localhost",
	"http://localhost:3000",
}

type Server struct {
	engine *gin.Engine
	inner  *http.Server
	logger *zap.Logger
}

func NewServer(cfg *config.Config, h *handlers.Handler, log *zap.Logger) *Server {
	gin.SetMode(getGinMode(cfg.Environment))
	r := gin.New()

	r.Use(requestID())
	if cfg.Environment != config.EnvTest {
		r.Use(logger.SetLogger(
			logger.WithUTC(true),
			logger.WithSkipPath([]string{"/health"}),
		))
	}

	r.Use(allowListCORS())
	r.Use(gin.Recovery())

	s := &Server{
		engine: r,
		logger: log,
		inner: &http.Server{
			Handler: r,
			Addr:    cfg.Addr(),
		},
	}
	s.setupRoutes(h)

	return s
}

func (s *Server) setupRoutes(h *handlers.Handler) {
	s.engine.GET("/", h.Home)
	s.engine.GET("/docs", h.Docs)
	s.engine.GET("/openapi.json", h.OpenAPI)
	s.engine.GET("/health", h.Health)

	s.engine.POST("/predict", h.Predict)
	s.engine.POST("/predict/raw", h.PredictRaw)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start blocks until the server stops. A shutdown via Stop is not an error.
func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("addr", s.inner.Addr))
	if err := s.inner.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("stopping server")
	return s.inner.Shutdown(ctx)
}

// allowListCORS answers CORS for the allow-listed origins only. Requests
// from other origins are served without CORS headers, and preflights echo
// the requested headers since "*" is not a wildcard for credentialed requests.
func allowListCORS() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(AllowedOrigins))
	for _, origin := range AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	handler := cors.New(
		cors.Config{
			AllowOrigins:     AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			ExposeHeaders:    []string{RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           600 * time.Second,
		},
	)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			return
		}
		if _, ok := allowed[origin]; !ok {
			return
		}

		if c.Request.Method == http.MethodOptions {
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				c.Header("Access-Control-Allow-Headers", requested)
			}
		}
		handler(c)
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(handlers.RequestIDField, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func getGinMode(env string) string {
	switch env {
	case config.EnvDevelopment:
		return gin.DebugMode
	case config.EnvTest:
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
