package entities

import (
	"time"

	"github.com/google/uuid"
)

// QueryRecord is the audit trail row written for every answered utterance
type QueryRecord struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Utterance string    `json:"utterance" gorm:"type:text;not null"`
	Intent    string    `json:"intent" gorm:"type:varchar(32);not null;index"`
	SQL       string    `json:"sql,omitempty" gorm:"column:sql_text;type:text"`
	RowCount  int       `json:"row_count"`
	ElapsedMS int64     `json:"elapsed_ms"`
	CacheHit  bool      `json:"cache_hit"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for QueryRecord
func (QueryRecord) TableName() string {
	return "query_records"
}

// NewQueryRecord creates an audit row for an answered utterance
func NewQueryRecord(utterance string, intent Intent) *QueryRecord {
	return &QueryRecord{
		ID:        uuid.New(),
		Utterance: utterance,
		Intent:    string(intent),
	}
}
