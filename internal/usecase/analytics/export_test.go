package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

type fakeObjectStore struct {
	uploads map[string][]byte
}

func (f *fakeObjectStore) UploadFile(_ context.Context, objectName string, data []byte, _ string) error {
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[objectName] = data
	return nil
}

func (f *fakeObjectStore) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://storage.local/" + objectName, nil
}

func TestExportXLSX(t *testing.T) {
	store := &fakeObjectStore{}
	exporter := NewExporter(store, "exports", zap.NewNop())

	rs := &entities.ResultSet{
		Columns:  []string{"week_number", "value"},
		Rows:     [][]interface{}{{21, 3}, {22, 5}},
		RowCount: 2,
	}

	key, url, err := exporter.ExportXLSX(context.Background(), rs, "meetings per week")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(key, "exports/"))
	require.True(t, strings.HasSuffix(key, ".xlsx"))
	require.Equal(t, "https://storage.local/"+key, url)

	data, ok := store.uploads[key]
	require.True(t, ok)
	require.NotEmpty(t, data)
	// XLSX workbooks are zip archives
	require.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestExportXLSX_NothingToExport(t *testing.T) {
	exporter := NewExporter(&fakeObjectStore{}, "exports", zap.NewNop())

	_, _, err := exporter.ExportXLSX(context.Background(), nil, "")
	require.Error(t, err)

	_, _, err = exporter.ExportXLSX(context.Background(), &entities.ResultSet{}, "")
	require.Error(t, err)
}
