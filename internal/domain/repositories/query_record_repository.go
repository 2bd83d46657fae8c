package repositories

import (
	"context"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// QueryRecordRepository persists the query audit trail
type QueryRecordRepository interface {
	Save(ctx context.Context, record *entities.QueryRecord) error
	ListRecent(ctx context.Context, limit int) ([]*entities.QueryRecord, error)
}
