package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

const (
	dateLayout     = "2006-01-02"
	multiValueSep  = ";"
	maxParseErrors = 20
)

// rowDocument is the JSON shape of one minutes row in a dataset file
type rowDocument struct {
	WeekNumber     int      `json:"week_number"`
	MeetingDate    string   `json:"meeting_date"`
	Details        string   `json:"details"`
	Attendees      []string `json:"attendees"`
	MeetingTopic   string   `json:"meeting_topic"`
	MeetingPurpose string   `json:"meeting_purpose"`
	Summary        string   `json:"summary"`
	TargetDate     string   `json:"target_date"`
	FuturePlan     string   `json:"future_plan"`
	Decisions      []string `json:"decisions"`
	Responsible    string   `json:"responsible"`
	Notes          string   `json:"notes"`
}

// ParseDataset decodes a dataset payload into minute rows. Rows that fail to
// parse are collected as errors and skipped; the import keeps going unless the
// whole file is unreadable.
func ParseDataset(datasetType string, data []byte) ([]*entities.Minute, []error) {
	switch datasetType {
	case entities.DatasetTypeCSV:
		return parseCSV(data)
	case entities.DatasetTypeJSON:
		return parseJSON(data)
	default:
		return nil, []error{fmt.Errorf("unsupported dataset type %q", datasetType)}
	}
}

func parseJSON(data []byte) ([]*entities.Minute, []error) {
	var docs []rowDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, []error{fmt.Errorf("invalid JSON dataset: %w", err)}
	}

	var minutes []*entities.Minute
	var errs []error
	for i, doc := range docs {
		m, err := doc.toMinute()
		if err != nil {
			errs = appendParseError(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		minutes = append(minutes, m)
	}
	return minutes, errs
}

func parseCSV(data []byte) ([]*entities.Minute, []error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, []error{fmt.Errorf("invalid CSV dataset: %w", err)}
	}
	if len(records) < 2 {
		return nil, []error{fmt.Errorf("CSV dataset has no data rows")}
	}

	index := map[string]int{}
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"week_number", "meeting_date", "meeting_topic"} {
		if _, ok := index[required]; !ok {
			return nil, []error{fmt.Errorf("CSV dataset is missing column %q", required)}
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var minutes []*entities.Minute
	var errs []error
	for n, record := range records[1:] {
		doc := rowDocument{
			MeetingDate:    field(record, "meeting_date"),
			Details:        field(record, "details"),
			Attendees:      splitMulti(field(record, "attendees")),
			MeetingTopic:   field(record, "meeting_topic"),
			MeetingPurpose: field(record, "meeting_purpose"),
			Summary:        field(record, "summary"),
			TargetDate:     field(record, "target_date"),
			FuturePlan:     field(record, "future_plan"),
			Decisions:      splitMulti(field(record, "decisions")),
			Responsible:    field(record, "responsible"),
			Notes:          field(record, "notes"),
		}
		week, err := strconv.Atoi(field(record, "week_number"))
		if err != nil {
			errs = appendParseError(errs, fmt.Errorf("row %d: invalid week_number: %w", n+2, err))
			continue
		}
		doc.WeekNumber = week

		m, err := doc.toMinute()
		if err != nil {
			errs = appendParseError(errs, fmt.Errorf("row %d: %w", n+2, err))
			continue
		}
		minutes = append(minutes, m)
	}
	return minutes, errs
}

func (d rowDocument) toMinute() (*entities.Minute, error) {
	if d.WeekNumber <= 0 {
		return nil, fmt.Errorf("week_number must be positive")
	}
	meetingDate, err := time.Parse(dateLayout, d.MeetingDate)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting_date %q: %w", d.MeetingDate, err)
	}
	if d.MeetingTopic == "" {
		return nil, fmt.Errorf("meeting_topic is empty")
	}

	m := &entities.Minute{
		ID:             uuid.New(),
		WeekNumber:     d.WeekNumber,
		MeetingDate:    meetingDate,
		Details:        d.Details,
		MeetingTopic:   d.MeetingTopic,
		MeetingPurpose: d.MeetingPurpose,
		Summary:        d.Summary,
		FuturePlan:     d.FuturePlan,
		Responsible:    d.Responsible,
		Notes:          d.Notes,
	}

	if d.TargetDate != "" {
		target, err := time.Parse(dateLayout, d.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("invalid target_date %q: %w", d.TargetDate, err)
		}
		m.TargetDate = &target
	}
	if err := m.SetAttendees(cleanList(d.Attendees)); err != nil {
		return nil, err
	}
	if err := m.SetDecisions(cleanList(d.Decisions)); err != nil {
		return nil, err
	}
	return m, nil
}

// splitMulti splits a semicolon-separated CSV cell into values
func splitMulti(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, multiValueSep)
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// appendParseError keeps the error list bounded so a malformed file cannot
// balloon the import report.
func appendParseError(errs []error, err error) []error {
	if len(errs) >= maxParseErrors {
		return errs
	}
	return append(errs, err)
}
