package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
	repo "github.com/insightlab/meeting-insights/internal/domain/repositories"
	"github.com/insightlab/meeting-insights/internal/usecase/nlquery"
)

type minuteRepository struct {
	db   *gorm.DB
	opts nlquery.CompileOptions
}

// NewMinuteRepository creates a minutes repository backed by GORM
func NewMinuteRepository(db *gorm.DB, opts nlquery.CompileOptions) repo.MinuteRepository {
	return &minuteRepository{db: db, opts: opts}
}

// Execute compiles the plan into the constrained SQL subset and runs it. Rows
// are scanned generically because projections and aggregates change the shape
// per plan.
func (r *minuteRepository) Execute(ctx context.Context, plan *entities.QueryPlan) (*entities.ResultSet, error) {
	sqlText, args, err := nlquery.Compile(plan, r.opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := r.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	rs := &entities.ResultSet{
		Columns: columns,
		SQL:     sqlText,
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rs.Rows = append(rs.Rows, normalizeRow(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	rs.RowCount = len(rs.Rows)
	rs.Elapsed = time.Since(start)
	return rs, nil
}

// normalizeRow converts driver types into JSON-friendly values: byte slices
// holding jsonb arrays become string slices, other byte slices become strings,
// dates collapse to YYYY-MM-DD.
func normalizeRow(values []interface{}) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case []byte:
			var arr []string
			if err := json.Unmarshal(val, &arr); err == nil {
				out[i] = arr
				continue
			}
			out[i] = string(val)
		case time.Time:
			out[i] = val.Format("2006-01-02")
		default:
			out[i] = v
		}
	}
	return out
}

func (r *minuteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Minute, error) {
	var m entities.Minute
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, entities.ErrMinuteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *minuteRepository) List(ctx context.Context, filters repo.MinuteFilters) ([]*entities.Minute, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Minute{})

	if filters.WeekNumber != nil {
		q = q.Where("week_number = ?", *filters.WeekNumber)
	}
	if filters.Topic != "" {
		q = q.Where("meeting_topic ILIKE ?", "%"+filters.Topic+"%")
	}
	if filters.Attendee != "" {
		q = q.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(attendees) elem WHERE elem ILIKE ?)", "%"+filters.Attendee+"%")
	}
	if filters.From != nil {
		q = q.Where("meeting_date >= ?", *filters.From)
	}
	if filters.To != nil {
		q = q.Where("meeting_date <= ?", *filters.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	switch sortBy {
	case "meeting_date", "week_number", "meeting_topic", "created_at":
	default:
		sortBy = "meeting_date"
	}
	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}
	q = q.Order(fmt.Sprintf("%s %s", sortBy, order))

	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		q = q.Offset(filters.Offset)
	}

	var minutes []*entities.Minute
	if err := q.Find(&minutes).Error; err != nil {
		return nil, 0, err
	}
	return minutes, total, nil
}

func (r *minuteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Minute{}).Count(&count).Error
	return count, err
}

func (r *minuteRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	var query string
	switch column {
	case "meeting_topic", "responsible":
		query = fmt.Sprintf("SELECT DISTINCT %s FROM minutes WHERE %s <> '' ORDER BY %s", column, column, column)
	case "attendees":
		query = "SELECT DISTINCT elem FROM minutes, jsonb_array_elements_text(attendees) elem ORDER BY elem"
	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownColumn, column)
	}

	var values []string
	if err := r.db.WithContext(ctx).Raw(query).Scan(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *minuteRepository) Stats(ctx context.Context) (*repo.CorpusStats, error) {
	row := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*), COALESCE(MIN(meeting_date), '0001-01-01'), COALESCE(MAX(meeting_date), '0001-01-01'), COUNT(DISTINCT week_number) FROM minutes`,
	).Row()

	stats := &repo.CorpusStats{}
	if err := row.Scan(&stats.RowCount, &stats.FirstMeeting, &stats.LastMeeting, &stats.WeeksCovered); err != nil {
		return nil, fmt.Errorf("failed to read corpus stats: %w", err)
	}
	return stats, nil
}

// BulkInsert writes rows in batches, skipping ids that already exist. Returns
// the number of rows actually inserted.
func (r *minuteRepository) BulkInsert(ctx context.Context, minutes []*entities.Minute) (int, error) {
	if len(minutes) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(minutes, 100)
	if res.Error != nil {
		return 0, fmt.Errorf("bulk insert failed: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
