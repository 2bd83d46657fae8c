package analytics

import (
	"sort"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// Aggregator performs the foldings that cannot be pushed into the SQL subset.
// Attendee-level grouping needs the jsonb arrays expanded row by row, so it
// runs here over fetched minutes instead of in the database.
type Aggregator struct{}

// NewAggregator creates an in-memory aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// GroupByAttendee counts meeting participation per attendee
func (a *Aggregator) GroupByAttendee(minutes []*entities.Minute) *entities.ResultSet {
	counts := make(map[string]int)
	for _, m := range minutes {
		for _, name := range m.AttendeeList() {
			counts[name]++
		}
	}

	type bucket struct {
		name  string
		count int
	}
	buckets := make([]bucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, bucket{name, count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].name < buckets[j].name
	})

	rs := &entities.ResultSet{
		Columns: []string{"attendee", "value"},
		Rows:    make([][]interface{}, 0, len(buckets)),
	}
	for _, b := range buckets {
		rs.Rows = append(rs.Rows, []interface{}{b.name, b.count})
	}
	rs.RowCount = len(rs.Rows)
	return rs
}

// AttendeeCounts derives per-meeting headcounts from fetched rows
func (a *Aggregator) AttendeeCounts(minutes []*entities.Minute) *entities.ResultSet {
	rs := &entities.ResultSet{
		Columns: []string{"meeting_date", "meeting_topic", "attendee_count"},
		Rows:    make([][]interface{}, 0, len(minutes)),
	}
	for _, m := range minutes {
		rs.Rows = append(rs.Rows, []interface{}{
			m.MeetingDate.Format("2006-01-02"),
			m.MeetingTopic,
			len(m.AttendeeList()),
		})
	}
	rs.RowCount = len(rs.Rows)
	return rs
}

// ResultTypeFor classifies the shape of an executed plan's result
func ResultTypeFor(plan *entities.QueryPlan, rs *entities.ResultSet) entities.ResultType {
	if plan.IsAggregate() && plan.GroupBy == "" {
		return entities.ResultTypeScalar
	}
	if plan.GroupBy == "week_number" || plan.GroupBy == "month" || plan.GroupBy == "meeting_date" {
		return entities.ResultTypeTimeseries
	}
	return entities.ResultTypeTable
}
