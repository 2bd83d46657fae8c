package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// MinuteFilters narrows list queries over the minutes table
type MinuteFilters struct {
	WeekNumber *int
	Topic      string
	Attendee   string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
	SortBy     string
	SortOrder  string
}

// CorpusStats summarizes the imported minutes corpus
type CorpusStats struct {
	RowCount      int64     `json:"row_count"`
	FirstMeeting  time.Time `json:"first_meeting"`
	LastMeeting   time.Time `json:"last_meeting"`
	WeeksCovered  int       `json:"weeks_covered"`
	DistinctWeeks []int     `json:"-"`
}

// MinuteRepository defines persistence operations for minutes rows
type MinuteRepository interface {
	// Plan execution
	Execute(ctx context.Context, plan *entities.QueryPlan) (*entities.ResultSet, error)

	// Row access
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Minute, error)
	List(ctx context.Context, filters MinuteFilters) ([]*entities.Minute, int64, error)
	Count(ctx context.Context) (int64, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)
	Stats(ctx context.Context) (*CorpusStats, error)

	// Import (idempotent per row id)
	BulkInsert(ctx context.Context, rows []*entities.Minute) (int, error)
}
