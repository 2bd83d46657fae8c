package handler

import (
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/errors"
	minutesdto "github.com/insightlab/meeting-insights/internal/adapter/dto/minutes"
	"github.com/insightlab/meeting-insights/internal/adapter/presenter"
	"github.com/insightlab/meeting-insights/internal/domain/entities"
	"github.com/insightlab/meeting-insights/internal/domain/repositories"
)

// Minutes handles direct read access to the minutes corpus
type Minutes struct {
	repo   repositories.MinuteRepository
	logger *zap.Logger
}

// NewMinutes creates a new minutes handler
func NewMinutes(repo repositories.MinuteRepository, logger *zap.Logger) *Minutes {
	return &Minutes{repo: repo, logger: logger}
}

// List returns a filtered page of minutes rows
// @Summary      List minutes
// @Description  Lists meeting-minutes rows with optional filters and pagination
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        week_number  query     int     false  "Calendar week number"
// @Param        topic        query     string  false  "Topic substring match"
// @Param        attendee     query     string  false  "Attendee name substring match"
// @Param        from         query     string  false  "Earliest meeting date (YYYY-MM-DD)"
// @Param        to           query     string  false  "Latest meeting date (YYYY-MM-DD)"
// @Success      200          {object}  common.ListResponse
// @Router       /minutes [get]
func (h *Minutes) List(c echo.Context) error {
	var req minutesdto.ListMinutesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filters := repositories.MinuteFilters{
		WeekNumber: req.WeekNumber,
		Topic:      req.Topic,
		Attendee:   req.Attendee,
		Limit:      req.PageSize,
		Offset:     (req.Page - 1) * req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	if req.From != "" {
		if t, err := time.Parse("2006-01-02", req.From); err == nil {
			filters.From = &t
		}
	}
	if req.To != "" {
		if t, err := time.Parse("2006-01-02", req.To); err == nil {
			filters.To = &t
		}
	}

	rows, total, err := h.repo.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMinuteListResponse(rows, total, req.Page, req.PageSize))
}

// Get returns a single minutes row by id
// @Summary      Get minute
// @Description  Fetches one meeting-minutes row by its UUID
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Minute ID (UUID)"
// @Success      200  {object}  minutesdto.MinuteResponse
// @Failure      404  {object}  map[string]interface{}  "Minute not found"
// @Router       /minutes/{id} [get]
func (h *Minutes) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid minute id"))
	}

	minute, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMinuteNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("minute"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMinuteResponse(minute))
}

// Values returns the distinct values of a filterable column
// @Summary      Distinct column values
// @Description  Lists distinct values for meeting_topic, responsible or attendees
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        column  path      string  true  "Column name"
// @Success      200     {array}   string
// @Router       /minutes/values/{column} [get]
func (h *Minutes) Values(c echo.Context) error {
	values, err := h.repo.DistinctValues(c.Request().Context(), c.Param("column"))
	if err != nil {
		if stdErrors.Is(err, entities.ErrUnknownColumn) {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, values)
}
