package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/errors"
	datasetdto "github.com/insightlab/meeting-insights/internal/adapter/dto/dataset"
	"github.com/insightlab/meeting-insights/internal/domain/entities"
	"github.com/insightlab/meeting-insights/internal/usecase/importer"
)

// Dataset handles dataset listing and import endpoints
type Dataset struct {
	svc    importer.Service
	logger *zap.Logger
}

// NewDataset creates a new dataset handler
func NewDataset(svc importer.Service, logger *zap.Logger) *Dataset {
	return &Dataset{svc: svc, logger: logger}
}

// List returns the datasets named by the descriptor
// @Summary      List datasets
// @Description  Fetches and validates the dataset descriptor without importing anything
// @Tags         Datasets
// @Produce      json
// @Security     BearerAuth
// @Param        descriptor  query     string  false  "Descriptor object name (defaults to descriptor.json)"
// @Success      200  {object}  entities.DatasetDescriptor
// @Failure      400  {object}  map[string]interface{}  "Descriptor is invalid"
// @Router       /datasets [get]
func (h *Dataset) List(c echo.Context) error {
	descriptor, err := h.svc.ListDatasets(c.Request().Context(), c.QueryParam("descriptor"))
	if err != nil {
		if stdErrors.Is(err, entities.ErrInvalidDescriptor) {
			return HandleError(h.logger, c, errors.ErrInvalidDescriptor(err))
		}
		return HandleError(h.logger, c, errors.ErrDatasetFetch("descriptor", err))
	}

	return HandleSuccess(h.logger, c, descriptor)
}

// Import runs a full dataset import
// @Summary      Import datasets
// @Description  Fetches, parses and inserts every dataset the descriptor lists, then invalidates cached answers
// @Tags         Datasets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      datasetdto.ImportRequest  false  "Descriptor to import from (defaults to descriptor.json)"
// @Success      200  {object}  importer.ImportReport
// @Failure      400  {object}  map[string]interface{}  "Descriptor is invalid"
// @Router       /datasets/import [post]
func (h *Dataset) Import(c echo.Context) error {
	var req datasetdto.ImportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidDescriptor(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidDescriptor(err))
	}

	report, err := h.svc.ImportAll(c.Request().Context(), req.Descriptor)
	if err != nil {
		if stdErrors.Is(err, entities.ErrInvalidDescriptor) {
			return HandleError(h.logger, c, errors.ErrInvalidDescriptor(err))
		}
		return HandleError(h.logger, c, errors.ErrDatasetImport("all", err))
	}

	return HandleSuccess(h.logger, c, report)
}
