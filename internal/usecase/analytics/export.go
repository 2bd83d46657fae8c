package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// ObjectStore is the storage surface the exporter needs
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter renders result sets to XLSX workbooks in object storage
type Exporter struct {
	store  ObjectStore
	prefix string
	logger *zap.Logger
}

// NewExporter creates an XLSX exporter writing under the given object prefix
func NewExporter(store ObjectStore, prefix string, logger *zap.Logger) *Exporter {
	return &Exporter{store: store, prefix: prefix, logger: logger}
}

// ExportXLSX writes the result set as a one-sheet workbook and returns the
// object key and a presigned download URL.
func (e *Exporter) ExportXLSX(ctx context.Context, rs *entities.ResultSet, title string) (string, string, error) {
	if rs == nil || len(rs.Columns) == 0 {
		return "", "", fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(rs.Columns))
	for i, c := range rs.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", "", fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rs.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", "", fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	objectName := fmt.Sprintf("%s/%s-%s.xlsx", e.prefix, time.Now().UTC().Format("20060102-150405"), uuid.New().String()[:8])
	if err := e.store.UploadFile(ctx, objectName, buf.Bytes(), xlsxContentType); err != nil {
		return "", "", fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := e.store.PresignedURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign export: %w", err)
	}

	if e.logger != nil {
		e.logger.Info("analytics.export.completed",
			zap.String("object", objectName),
			zap.Int("rows", rs.RowCount),
			zap.String("title", title),
		)
	}

	return objectName, url, nil
}
