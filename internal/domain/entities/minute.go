package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Minute is one imported meeting-minutes row. Rows are immutable facts: they
// are created by bulk import only and never mutated through the API.
type Minute struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	WeekNumber     int            `json:"week_number" gorm:"not null;index"`
	MeetingDate    time.Time      `json:"meeting_date" gorm:"type:date;not null;index"`
	Details        string         `json:"details,omitempty" gorm:"type:text"`
	Attendees      datatypes.JSON `json:"attendees,omitempty" gorm:"type:jsonb"`
	MeetingTopic   string         `json:"meeting_topic" gorm:"type:varchar(500);index"`
	MeetingPurpose string         `json:"meeting_purpose,omitempty" gorm:"type:text"`
	Summary        string         `json:"summary,omitempty" gorm:"type:text"`
	TargetDate     *time.Time     `json:"target_date,omitempty" gorm:"type:date"`
	FuturePlan     string         `json:"future_plan,omitempty" gorm:"type:text"`
	Decisions      datatypes.JSON `json:"decisions,omitempty" gorm:"type:jsonb"`
	Responsible    string         `json:"responsible,omitempty" gorm:"type:varchar(255);index"`
	Notes          string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Minute
func (Minute) TableName() string {
	return "minutes"
}

// NewMinute creates a minute row with a fresh id
func NewMinute(weekNumber int, meetingDate time.Time, topic string) *Minute {
	return &Minute{
		ID:           uuid.New(),
		WeekNumber:   weekNumber,
		MeetingDate:  meetingDate,
		MeetingTopic: topic,
	}
}

// AttendeeList decodes the attendees jsonb column into a string slice
func (m *Minute) AttendeeList() []string {
	return decodeStringArray(m.Attendees)
}

// DecisionList decodes the decisions jsonb column into a string slice
func (m *Minute) DecisionList() []string {
	return decodeStringArray(m.Decisions)
}

// SetAttendees encodes the given names into the attendees jsonb column
func (m *Minute) SetAttendees(names []string) error {
	b, err := json.Marshal(names)
	if err != nil {
		return err
	}
	m.Attendees = datatypes.JSON(b)
	return nil
}

// SetDecisions encodes the given decisions into the decisions jsonb column
func (m *Minute) SetDecisions(decisions []string) error {
	b, err := json.Marshal(decisions)
	if err != nil {
		return err
	}
	m.Decisions = datatypes.JSON(b)
	return nil
}

func decodeStringArray(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
