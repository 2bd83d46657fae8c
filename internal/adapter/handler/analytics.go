package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/errors"
	querydto "github.com/insightlab/meeting-insights/internal/adapter/dto/query"
	"github.com/insightlab/meeting-insights/internal/adapter/presenter"
	"github.com/insightlab/meeting-insights/internal/domain/repositories"
	"github.com/insightlab/meeting-insights/internal/usecase/insights"
)

// Analytics handles aggregate and export endpoints
type Analytics struct {
	svc    insights.Service
	repo   repositories.MinuteRepository
	logger *zap.Logger
}

// NewAnalytics creates a new analytics handler
func NewAnalytics(svc insights.Service, repo repositories.MinuteRepository, logger *zap.Logger) *Analytics {
	return &Analytics{svc: svc, repo: repo, logger: logger}
}

// Summary returns corpus-level statistics
// @Summary      Corpus summary
// @Description  Returns row count, date coverage and weeks covered for the imported corpus
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  minutesdto.StatsResponse
// @Router       /analytics/summary [get]
func (h *Analytics) Summary(c echo.Context) error {
	stats, err := h.repo.Stats(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToStatsResponse(stats))
}

// Export answers an utterance and stores the result as an XLSX workbook
// @Summary      Export query result
// @Description  Runs the question and writes its result set to object storage, returning a download URL
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      querydto.ExportRequest  true  "Question to export"
// @Success      200      {object}  querydto.ExportResponse
// @Failure      422      {object}  map[string]interface{}  "Question did not produce a result set"
// @Router       /analytics/export [post]
func (h *Analytics) Export(c echo.Context) error {
	var req querydto.ExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidUtterance())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidUtterance())
	}
	if strings.TrimSpace(req.Utterance) == "" {
		return HandleError(h.logger, c, errors.ErrInvalidUtterance())
	}

	objectKey, downloadURL, err := h.svc.Export(c.Request().Context(), req.Utterance)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrExportFailed(err))
	}

	return HandleSuccess(h.logger, c, &querydto.ExportResponse{
		ObjectKey:   objectKey,
		DownloadURL: downloadURL,
	})
}
