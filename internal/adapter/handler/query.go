package handler

import (
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/errors"
	querydto "github.com/insightlab/meeting-insights/internal/adapter/dto/query"
	"github.com/insightlab/meeting-insights/internal/adapter/presenter"
	"github.com/insightlab/meeting-insights/internal/domain/entities"
	"github.com/insightlab/meeting-insights/internal/usecase/insights"
)

// Query handles natural-language question endpoints
type Query struct {
	svc    insights.Service
	logger *zap.Logger
}

// NewQuery creates a new query handler
func NewQuery(svc insights.Service, logger *zap.Logger) *Query {
	return &Query{svc: svc, logger: logger}
}

// Ask answers a natural-language question against the minutes corpus
// @Summary      Ask a question
// @Description  Routes the utterance, translates it into a constrained query and returns the shaped answer
// @Tags         Query
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      querydto.AskRequest  true  "Question"
// @Success      200      {object}  querydto.AnswerResponse
// @Failure      400      {object}  map[string]interface{}  "Empty or malformed utterance"
// @Failure      422      {object}  map[string]interface{}  "Question outside the supported query subset"
// @Router       /query [post]
func (h *Query) Ask(c echo.Context) error {
	var req querydto.AskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidUtterance())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidUtterance())
	}
	if strings.TrimSpace(req.Utterance) == "" {
		return HandleError(h.logger, c, errors.ErrInvalidUtterance())
	}

	answer, err := h.svc.Ask(c.Request().Context(), req.Utterance)
	if err != nil {
		return HandleError(h.logger, c, mapQueryError(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToAnswerResponse(answer))
}

// History lists recent answered utterances
// @Summary      Query history
// @Description  Returns the most recent audit-trail rows, newest first
// @Tags         Query
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum rows to return"  default(50)
// @Success      200    {array}   querydto.RecordResponse
// @Router       /query/history [get]
func (h *Query) History(c echo.Context) error {
	var req querydto.HistoryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}

	records, err := h.svc.History(c.Request().Context(), req.Limit)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToRecordResponses(records))
}

// mapQueryError translates domain errors from the pipeline into AppErrors so
// callers get the right status code.
func mapQueryError(err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return err
	}

	switch {
	case stdErrors.Is(err, entities.ErrEmptyUtterance):
		return errors.ErrInvalidUtterance()
	case stdErrors.Is(err, entities.ErrNeedsClarification):
		return errors.ErrNeedsClarification(err.Error())
	case stdErrors.Is(err, entities.ErrUnsupportedQuery),
		stdErrors.Is(err, entities.ErrUnknownColumn),
		stdErrors.Is(err, entities.ErrUnknownOperator):
		return errors.ErrUnsupportedQuery(err.Error())
	default:
		return errors.ErrQueryExecution(err)
	}
}
