package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
	repo "github.com/insightlab/meeting-insights/internal/domain/repositories"
)

type queryRecordRepository struct {
	db *gorm.DB
}

// NewQueryRecordRepository creates the audit-trail repository backed by GORM
func NewQueryRecordRepository(db *gorm.DB) repo.QueryRecordRepository {
	return &queryRecordRepository{db: db}
}

func (r *queryRecordRepository) Save(ctx context.Context, record *entities.QueryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *queryRecordRepository) ListRecent(ctx context.Context, limit int) ([]*entities.QueryRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var records []*entities.QueryRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
