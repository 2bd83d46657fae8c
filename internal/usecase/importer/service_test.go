package importer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
	"github.com/insightlab/meeting-insights/internal/domain/repositories"
	"github.com/insightlab/meeting-insights/pkg/config"
)

type mapFetcher struct {
	files map[string][]byte
}

func (f *mapFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", name)
	}
	return data, nil
}

type stubMinuteRepo struct {
	inserted []*entities.Minute
	batches  int
}

func (r *stubMinuteRepo) Execute(context.Context, *entities.QueryPlan) (*entities.ResultSet, error) {
	return nil, nil
}
func (r *stubMinuteRepo) GetByID(context.Context, uuid.UUID) (*entities.Minute, error) {
	return nil, entities.ErrMinuteNotFound
}
func (r *stubMinuteRepo) List(context.Context, repositories.MinuteFilters) ([]*entities.Minute, int64, error) {
	return nil, 0, nil
}
func (r *stubMinuteRepo) Count(context.Context) (int64, error) { return 0, nil }
func (r *stubMinuteRepo) DistinctValues(context.Context, string) ([]string, error) {
	return nil, nil
}
func (r *stubMinuteRepo) Stats(context.Context) (*repositories.CorpusStats, error) {
	return &repositories.CorpusStats{}, nil
}
func (r *stubMinuteRepo) BulkInsert(_ context.Context, rows []*entities.Minute) (int, error) {
	r.inserted = append(r.inserted, rows...)
	r.batches++
	return len(rows), nil
}

type countingInvalidator struct{ calls int }

func (i *countingInvalidator) InvalidateCache(context.Context) error {
	i.calls++
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Import: config.ImportConfig{
			BatchSize:  2,
			JobTimeout: time.Minute,
		},
	}
}

func TestImportAll(t *testing.T) {
	fetcher := &mapFetcher{files: map[string][]byte{
		"descriptor.json": []byte(`{"datasets":[{"type":"csv","name":"minutes.csv"}]}`),
		"minutes.csv": []byte(`week_number,meeting_date,meeting_topic
21,2025-05-19,Planning
21,2025-05-22,Review
22,2025-05-26,Retro
`),
	}}
	repo := &stubMinuteRepo{}
	invalidator := &countingInvalidator{}
	svc := NewService(repo, fetcher, invalidator, testConfig(), zap.NewNop())

	report, err := svc.ImportAll(context.Background(), "")
	require.NoError(t, err)

	require.Equal(t, 3, report.Inserted)
	require.Equal(t, 0, report.Failed)
	require.Len(t, report.Datasets, 1)
	require.Equal(t, "minutes.csv", report.Datasets[0].Name)
	require.Equal(t, 3, report.Datasets[0].Parsed)

	// BatchSize 2 splits three rows into two inserts
	require.Equal(t, 2, repo.batches)
	require.Len(t, repo.inserted, 3)

	// A successful import drops cached answers
	require.Equal(t, 1, invalidator.calls)
}

func TestImportAll_MissingDatasetReportedNotFatal(t *testing.T) {
	fetcher := &mapFetcher{files: map[string][]byte{
		"descriptor.json": []byte(`{"datasets":[
			{"type":"csv","name":"gone.csv"},
			{"type":"json","name":"minutes.json"}
		]}`),
		"minutes.json": []byte(`[{"week_number":23,"meeting_date":"2025-06-02","meeting_topic":"Release"}]`),
	}}
	repo := &stubMinuteRepo{}
	svc := NewService(repo, fetcher, nil, testConfig(), zap.NewNop())

	report, err := svc.ImportAll(context.Background(), "")
	require.NoError(t, err)

	require.Equal(t, 1, report.Inserted)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Datasets, 2)
	require.NotEmpty(t, report.Datasets[0].Errors)
}

func TestImportAll_InvalidDescriptor(t *testing.T) {
	fetcher := &mapFetcher{files: map[string][]byte{
		"descriptor.json": []byte(`{"datasets":[{"type":"yaml","name":"x.yaml"}]}`),
	}}
	svc := NewService(&stubMinuteRepo{}, fetcher, nil, testConfig(), zap.NewNop())

	_, err := svc.ImportAll(context.Background(), "")
	require.ErrorIs(t, err, entities.ErrInvalidDescriptor)
}

func TestListDatasets(t *testing.T) {
	fetcher := &mapFetcher{files: map[string][]byte{
		"descriptor.json": []byte(`{"datasets":[{"type":"csv","name":"a.csv","description":"weekly minutes"}]}`),
	}}
	svc := NewService(&stubMinuteRepo{}, fetcher, nil, testConfig(), zap.NewNop())

	descriptor, err := svc.ListDatasets(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, descriptor.Datasets, 1)
	require.Equal(t, "a.csv", descriptor.Datasets[0].Name)
}

func TestImportAll_NamedDescriptor(t *testing.T) {
	fetcher := &mapFetcher{files: map[string][]byte{
		"staging/descriptor.json": []byte(`{"datasets":[{"type":"json","name":"minutes.json"}]}`),
		"minutes.json":            []byte(`[{"week_number":24,"meeting_date":"2025-06-09","meeting_topic":"Standup"}]`),
	}}
	repo := &stubMinuteRepo{}
	svc := NewService(repo, fetcher, nil, testConfig(), zap.NewNop())

	// The named descriptor is used; the default descriptor.json is absent
	report, err := svc.ImportAll(context.Background(), "staging/descriptor.json")
	require.NoError(t, err)
	require.Equal(t, 1, report.Inserted)

	_, err = svc.ImportAll(context.Background(), "")
	require.Error(t, err)
}
