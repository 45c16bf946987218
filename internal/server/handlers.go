package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"newsbrief/internal/dedupe"
	"newsbrief/internal/pipeline"
	"newsbrief/internal/store"
)

// Processor runs the article pipeline for one input string.
type Processor interface {
	Process(ctx context.Context, input string) (pipeline.Article, *pipeline.Error)
}

// Deduper removes redundant passages from a text.
type Deduper interface {
	Dedupe(ctx context.Context, text string) dedupe.Result
}

// ArticleHandler serves the article CRUD and processing endpoints.
type ArticleHandler struct {
	Processor Processor
	Deduper   Deduper
	Store     store.Store
	Logger    zerolog.Logger
}

type urlInput struct {
	URL string `json:"url"`
}

type textInput struct {
	Text string `json:"text"`
}

// CreateArticle fetches, summarizes and stores a new article.
// POST /api/v1/articles
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	ctx := c.Request().Context()

	var in urlInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(in.URL) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	if _, err := h.Store.FindByURL(ctx, in.URL); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Article with this URL already exists.")
	} else if !errors.Is(err, store.ErrNotFound) {
		h.Logger.Error().Err(err).Msg("store lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check for existing article")
	}

	art, perr := h.Processor.Process(ctx, in.URL)
	if perr != nil {
		return c.JSON(statusForKind(perr.Kind), errorBody(perr))
	}

	rec := store.Record{
		URL:     in.URL,
		Summary: art.Summary,
		Image:   art.Image,
		Link:    art.Link,
	}
	if err := h.Store.Insert(ctx, rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Article with this URL already exists.")
		}
		h.Logger.Error().Err(err).Str("url", in.URL).Msg("failed to store article")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store article")
	}

	return c.JSON(http.StatusCreated, rec)
}

// ListArticles returns every stored record.
// GET /api/v1/articles
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	records, err := h.Store.List(c.Request().Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list articles")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve articles")
	}
	return c.JSON(http.StatusOK, records)
}

// DeleteArticle removes a record by URL.
// DELETE /api/v1/articles?url=...
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url query parameter is required")
	}

	err := h.Store.Delete(c.Request().Context(), url)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Article not found.")
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("url", url).Msg("failed to delete article")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete article")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Article deleted successfully."})
}

// DedupeText runs the standalone deduplication stage over raw text.
// POST /api/v1/articles/dedupe
func (h *ArticleHandler) DedupeText(c echo.Context) error {
	var in textInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(in.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	res := h.Deduper.Dedupe(c.Request().Context(), in.Text)
	return c.JSON(http.StatusOK, map[string]any{
		"text":     res.Text,
		"degraded": res.Degraded,
	})
}

// ExportPDF renders the stored summary for a URL as a PDF document.
// GET /api/v1/articles/export?url=...
func (h *ArticleHandler) ExportPDF(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url query parameter is required")
	}

	rec, err := h.Store.FindByURL(c.Request().Context(), url)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Article not found.")
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("url", url).Msg("failed to load article")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load article")
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().WriteHeader(http.StatusOK)
	if err := writeSummaryPDF(rec, c.Response()); err != nil {
		h.Logger.Error().Err(err).Str("url", url).Msg("pdf rendering failed")
		return err
	}
	return nil
}

// statusForKind maps pipeline failure kinds onto HTTP statuses: bad input
// is the client's fault, transport exhaustion is a gateway timeout, and
// everything else is a plain processing failure.
func statusForKind(k pipeline.Kind) int {
	switch k {
	case pipeline.KindInput:
		return http.StatusUnprocessableEntity
	case pipeline.KindTimeout, pipeline.KindConnection:
		return http.StatusGatewayTimeout
	case pipeline.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// errorBody renders the two legacy error shapes: extraction-stage
// failures stay bare, validation and unexpected failures carry the
// processing_status wrapper. Kept intentionally distinct; downstream
// consumers branch on the presence of processing_status.
func errorBody(perr *pipeline.Error) map[string]any {
	body := map[string]any{"error": perr.Message}
	switch perr.Kind {
	case pipeline.KindInput, pipeline.KindInternal:
		body["processing_status"] = "failed"
		body["validation_method"] = "llm"
		if perr.Type != "" {
			body["error_type"] = perr.Type
		}
	}
	return body
}
