package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

func minuteWith(t *testing.T, topic string, attendees []string) *entities.Minute {
	t.Helper()
	m := entities.NewMinute(21, time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC), topic)
	require.NoError(t, m.SetAttendees(attendees))
	return m
}

func TestGroupByAttendee_CountsAndOrders(t *testing.T) {
	minutes := []*entities.Minute{
		minuteWith(t, "planning", []string{"Alice", "Bob"}),
		minuteWith(t, "review", []string{"Alice", "Charlie"}),
		minuteWith(t, "retro", []string{"Alice", "Bob"}),
	}

	rs := NewAggregator().GroupByAttendee(minutes)

	require.Equal(t, []string{"attendee", "value"}, rs.Columns)
	require.Equal(t, 3, rs.RowCount)
	// Highest count first, ties broken by name
	require.Equal(t, []interface{}{"Alice", 3}, rs.Rows[0])
	require.Equal(t, []interface{}{"Bob", 2}, rs.Rows[1])
	require.Equal(t, []interface{}{"Charlie", 1}, rs.Rows[2])
}

func TestGroupByAttendee_Empty(t *testing.T) {
	rs := NewAggregator().GroupByAttendee(nil)
	require.Equal(t, 0, rs.RowCount)
	require.Empty(t, rs.Rows)
}

func TestAttendeeCounts(t *testing.T) {
	minutes := []*entities.Minute{
		minuteWith(t, "planning", []string{"Alice", "Bob", "Eve"}),
		minuteWith(t, "review", nil),
	}

	rs := NewAggregator().AttendeeCounts(minutes)

	require.Equal(t, 2, rs.RowCount)
	require.Equal(t, 3, rs.Rows[0][2])
	require.Equal(t, 0, rs.Rows[1][2])
}

func TestResultTypeFor(t *testing.T) {
	scalar := &entities.QueryPlan{Aggregation: entities.AggCount}
	require.Equal(t, entities.ResultTypeScalar, ResultTypeFor(scalar, nil))

	weekly := &entities.QueryPlan{GroupBy: "week_number", Aggregation: entities.AggCount}
	require.Equal(t, entities.ResultTypeTimeseries, ResultTypeFor(weekly, nil))

	byTopic := &entities.QueryPlan{GroupBy: "meeting_topic", Aggregation: entities.AggCount}
	require.Equal(t, entities.ResultTypeTable, ResultTypeFor(byTopic, nil))

	plain := &entities.QueryPlan{}
	require.Equal(t, entities.ResultTypeTable, ResultTypeFor(plain, nil))
}
