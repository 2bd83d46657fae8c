package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
	domainrepo "github.com/insightlab/meeting-insights/internal/domain/repositories"
	"github.com/insightlab/meeting-insights/pkg/config"
	"github.com/insightlab/meeting-insights/pkg/jobcontext"
)

const defaultDescriptorName = "descriptor.json"

// CacheInvalidator drops answers cached before an import changed the corpus
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// DatasetReport summarizes the import of a single dataset file
type DatasetReport struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Parsed   int      `json:"parsed"`
	Inserted int      `json:"inserted"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportReport summarizes a full import run
type ImportReport struct {
	JobID    string          `json:"job_id"`
	Datasets []DatasetReport `json:"datasets"`
	Inserted int             `json:"inserted"`
	Failed   int             `json:"failed"`
}

// Service loads a dataset descriptor and imports the minutes files it lists.
// An empty descriptor name falls back to descriptor.json.
type Service interface {
	ListDatasets(ctx context.Context, descriptor string) (*entities.DatasetDescriptor, error)
	ImportAll(ctx context.Context, descriptor string) (*ImportReport, error)
}

type importService struct {
	minuteRepo  domainrepo.MinuteRepository
	fetcher     Fetcher
	invalidator CacheInvalidator
	cfg         *config.Config
	logger      *zap.Logger
}

func NewService(
	minuteRepo domainrepo.MinuteRepository,
	fetcher Fetcher,
	invalidator CacheInvalidator,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &importService{
		minuteRepo:  minuteRepo,
		fetcher:     fetcher,
		invalidator: invalidator,
		cfg:         cfg,
		logger:      logger,
	}
}

// ListDatasets fetches and validates the descriptor without importing anything
func (s *importService) ListDatasets(ctx context.Context, name string) (*entities.DatasetDescriptor, error) {
	return s.loadDescriptor(ctx, name)
}

// ImportAll runs a full import: fetch descriptor, then fetch, parse and insert
// every listed dataset. A dataset that fails is reported and skipped; the run
// continues with the rest.
func (s *importService) ImportAll(parent context.Context, name string) (*ImportReport, error) {
	ctx, cancel := jobcontext.JobBegin(parent, "dataset_import", s.cfg.Import.JobTimeout)
	defer cancel()

	jobID, _ := jobcontext.GetJobID(ctx)
	logger := s.logger.With(zap.String("job_id", jobID.String()))
	logger.Info("dataset import started")

	descriptor, err := s.loadDescriptor(ctx, name)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{JobID: jobID.String()}
	for _, ds := range descriptor.Datasets {
		dsCtx := jobcontext.WithDataset(ctx, ds.Name)
		dsReport := s.importDataset(dsCtx, ds, logger)
		report.Datasets = append(report.Datasets, dsReport)
		report.Inserted += dsReport.Inserted
		if len(dsReport.Errors) > 0 && dsReport.Parsed == 0 {
			report.Failed++
		}
	}

	if report.Inserted > 0 && s.invalidator != nil {
		if err := s.invalidator.InvalidateCache(ctx); err != nil {
			logger.Warn("failed to invalidate answer cache", zap.Error(err))
		}
	}

	logger.Info("dataset import finished",
		zap.Int("inserted", report.Inserted),
		zap.Int("failed_datasets", report.Failed),
		zap.Duration("elapsed", jobcontext.Elapsed(ctx)))
	return report, nil
}

func (s *importService) importDataset(ctx context.Context, ds entities.DatasetEntry, logger *zap.Logger) DatasetReport {
	report := DatasetReport{Name: ds.Name, Type: ds.Type}

	data, err := s.fetcher.Fetch(ctx, ds.Name)
	if err != nil {
		logger.Error("dataset fetch failed", zap.String("dataset", ds.Name), zap.Error(err))
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	minutes, parseErrs := ParseDataset(ds.Type, data)
	for _, perr := range parseErrs {
		report.Errors = append(report.Errors, perr.Error())
	}
	report.Parsed = len(minutes)
	if len(minutes) == 0 {
		return report
	}

	batch := s.cfg.Import.BatchSize
	if batch <= 0 {
		batch = 200
	}
	for start := 0; start < len(minutes); start += batch {
		end := start + batch
		if end > len(minutes) {
			end = len(minutes)
		}
		inserted, err := s.minuteRepo.BulkInsert(ctx, minutes[start:end])
		if err != nil {
			logger.Error("dataset batch insert failed",
				zap.String("dataset", ds.Name),
				zap.Int("batch_start", start),
				zap.Error(err))
			report.Errors = append(report.Errors, err.Error())
			return report
		}
		report.Inserted += inserted
	}

	logger.Info("dataset imported",
		zap.String("dataset", ds.Name),
		zap.Int("parsed", report.Parsed),
		zap.Int("inserted", report.Inserted))
	return report
}

func (s *importService) loadDescriptor(ctx context.Context, name string) (*entities.DatasetDescriptor, error) {
	if name == "" {
		name = defaultDescriptorName
	}
	data, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset descriptor %s: %w", name, err)
	}

	var descriptor entities.DatasetDescriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidDescriptor, err)
	}
	if err := descriptor.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidDescriptor, err)
	}
	return &descriptor, nil
}
