// Package server exposes the article pipeline and record store over a
// small HTTP API.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// NewRouter constructs the Echo engine with middleware and routes.
func NewRouter(h *ArticleHandler, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	// The API is consumed by browser frontends on other origins.
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/v1/health"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Err(v.Error).
				Msg("request completed")
			return nil
		},
	}))

	api := e.Group("/api/v1")
	api.POST("/articles", h.CreateArticle)
	api.GET("/articles", h.ListArticles)
	api.DELETE("/articles", h.DeleteArticle)
	api.POST("/articles/dedupe", h.DedupeText)
	api.GET("/articles/export", h.ExportPDF)
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	return e
}
