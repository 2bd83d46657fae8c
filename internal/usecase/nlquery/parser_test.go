package nlquery

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// fixedClock pins relative date phrases to Wednesday 2025-06-11
func fixedClock() time.Time {
	return time.Date(2025, time.June, 11, 10, 30, 0, 0, time.UTC)
}

func newTestParser() *Parser {
	return NewParser().WithClock(fixedClock)
}

func TestParse_WeekNumberFilter(t *testing.T) {
	plan, err := newTestParser().Parse("show meetings from week 23", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	require.Equal(t, "week_number", plan.Filters[0].Column)
	require.Equal(t, entities.OpEq, plan.Filters[0].Operator)
	require.Equal(t, 23, plan.Filters[0].Value)
}

func TestParse_WeekSpan(t *testing.T) {
	plan, err := newTestParser().Parse("list meetings from weeks 20 to 23", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 2)
	require.Equal(t, entities.Filter{Column: "week_number", Operator: entities.OpGte, Value: 20}, plan.Filters[0])
	require.Equal(t, entities.Filter{Column: "week_number", Operator: entities.OpLte, Value: 23}, plan.Filters[1])
}

func TestParse_LastWeekRange(t *testing.T) {
	plan, err := newTestParser().Parse("how many meetings last week", entities.IntentAnalytics)
	require.NoError(t, err)

	require.Equal(t, entities.AggCount, plan.Aggregation)
	require.Len(t, plan.Filters, 2)
	// Monday-based week before the fixed clock
	require.Equal(t, entities.Filter{Column: "meeting_date", Operator: entities.OpGte, Value: "2025-06-02"}, plan.Filters[0])
	require.Equal(t, entities.Filter{Column: "meeting_date", Operator: entities.OpLt, Value: "2025-06-09"}, plan.Filters[1])
}

func TestParse_NamedMonthDefaultsToCurrentYear(t *testing.T) {
	plan, err := newTestParser().Parse("meetings in march", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 2)
	require.Equal(t, "2025-03-01", plan.Filters[0].Value)
	require.Equal(t, "2025-04-01", plan.Filters[1].Value)
}

func TestParse_BetweenDates(t *testing.T) {
	plan, err := newTestParser().Parse("meetings between 2025-01-01 and 2025-03-31", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 2)
	require.Equal(t, entities.OpGte, plan.Filters[0].Operator)
	require.Equal(t, "2025-01-01", plan.Filters[0].Value)
	require.Equal(t, entities.OpLte, plan.Filters[1].Operator)
	require.Equal(t, "2025-03-31", plan.Filters[1].Value)
}

func TestParse_SinceDate(t *testing.T) {
	plan, err := newTestParser().Parse("meetings since 2025-05-01", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	require.Equal(t, entities.Filter{Column: "meeting_date", Operator: entities.OpGte, Value: "2025-05-01"}, plan.Filters[0])
}

func TestParse_GroupByWeekCountsByDefault(t *testing.T) {
	plan, err := newTestParser().Parse("meetings per week", entities.IntentAnalytics)
	require.NoError(t, err)

	require.Equal(t, "week_number", plan.GroupBy)
	require.Equal(t, entities.AggCount, plan.Aggregation)
}

func TestParse_AverageAttendancePerMonth(t *testing.T) {
	plan, err := newTestParser().Parse("average attendance per month", entities.IntentAnalytics)
	require.NoError(t, err)

	require.Equal(t, "month", plan.GroupBy)
	require.Equal(t, entities.AggAverage, plan.Aggregation)
	require.Equal(t, "attendee_count", plan.AggColumn)
}

func TestParse_AverageWithoutTargetAsksBack(t *testing.T) {
	_, err := newTestParser().Parse("what is the average duration of meetings", entities.IntentAnalytics)
	require.Error(t, err)
	require.ErrorIs(t, err, entities.ErrNeedsClarification)

	var clarify *entities.ClarificationError
	require.True(t, errors.As(err, &clarify))
	require.NotEmpty(t, clarify.Question)
}

func TestParse_AttendeeName(t *testing.T) {
	plan, err := newTestParser().Parse("show meetings with Alice", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	require.Equal(t, "attendees", plan.Filters[0].Column)
	require.Equal(t, entities.OpContains, plan.Filters[0].Operator)
	require.Equal(t, "Alice", plan.Filters[0].Value)
}

func TestParse_ResponsibleName(t *testing.T) {
	plan, err := newTestParser().Parse("tasks assigned to Bob Smith", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	require.Equal(t, "responsible", plan.Filters[0].Column)
	require.Equal(t, "Bob Smith", plan.Filters[0].Value)
}

func TestParse_TopicFilter(t *testing.T) {
	plan, err := newTestParser().Parse("meetings about release planning", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	require.Equal(t, "meeting_topic", plan.Filters[0].Column)
	require.Equal(t, entities.OpContains, plan.Filters[0].Operator)
	require.Equal(t, "release planning", plan.Filters[0].Value)
}

func TestParse_DecisionsFilter(t *testing.T) {
	plan, err := newTestParser().Parse("what was decided on caching", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Len(t, plan.Filters, 1)
	require.Equal(t, "decisions", plan.Filters[0].Column)
	require.Equal(t, entities.OpContains, plan.Filters[0].Operator)
}

func TestParse_TopNSetsLimitAndSort(t *testing.T) {
	plan, err := newTestParser().Parse("top 5 meetings", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Equal(t, 5, plan.Limit)
	require.NotNil(t, plan.Sort)
	require.Equal(t, "meeting_date", plan.Sort.Column)
	require.True(t, plan.Sort.Descending)
}

func TestParse_ProjectionSummaries(t *testing.T) {
	plan, err := newTestParser().Parse("show summaries from week 21", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Equal(t, []string{"meeting_date", "meeting_topic", "summary"}, plan.Columns)
}

func TestParse_EarliestMeeting(t *testing.T) {
	plan, err := newTestParser().Parse("when was the first meeting", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Equal(t, entities.AggMin, plan.Aggregation)
	require.Equal(t, "meeting_date", plan.AggColumn)
}

func TestParse_LatestMeetingDropsSortForAggregate(t *testing.T) {
	plan, err := newTestParser().Parse("when was the latest meeting", entities.IntentRetrieve)
	require.NoError(t, err)

	require.Equal(t, entities.AggMax, plan.Aggregation)
	require.Equal(t, "meeting_date", plan.AggColumn)
	require.Nil(t, plan.Sort)
}

func TestParse_GroupedLatestNKeepsLimitDropsSort(t *testing.T) {
	plan, err := newTestParser().Parse("how many meetings per week, latest 5", entities.IntentAnalytics)
	require.NoError(t, err)

	require.Equal(t, "week_number", plan.GroupBy)
	require.Equal(t, entities.AggCount, plan.Aggregation)
	require.Equal(t, 5, plan.Limit)
	require.Nil(t, plan.Sort)
}

func TestParse_DefiniteReferenceWithoutSelector(t *testing.T) {
	_, err := newTestParser().Parse("when was the meeting?", entities.IntentRetrieve)
	require.ErrorIs(t, err, entities.ErrNeedsClarification)
}

func TestParse_EmptyUtterance(t *testing.T) {
	_, err := newTestParser().Parse("   ", entities.IntentRetrieve)
	require.ErrorIs(t, err, entities.ErrEmptyUtterance)
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestParser()
	a, err := p.Parse("how many meetings last week", entities.IntentAnalytics)
	require.NoError(t, err)
	b, err := p.Parse("how many meetings last week", entities.IntentAnalytics)
	require.NoError(t, err)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}
