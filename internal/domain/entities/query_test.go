package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint_FilterOrderInsensitive(t *testing.T) {
	a := &QueryPlan{
		Intent: IntentRetrieve,
		Filters: []Filter{
			{Column: "week_number", Operator: OpEq, Value: 23},
			{Column: "meeting_topic", Operator: OpContains, Value: "budget"},
		},
	}
	b := &QueryPlan{
		Intent: IntentRetrieve,
		Filters: []Filter{
			{Column: "meeting_topic", Operator: OpContains, Value: "budget"},
			{Column: "week_number", Operator: OpEq, Value: 23},
		},
	}

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprint_DistinguishesPlans(t *testing.T) {
	a := &QueryPlan{Intent: IntentAnalytics, Aggregation: AggCount}
	b := &QueryPlan{Intent: IntentAnalytics, Aggregation: AggCount, GroupBy: "week_number"}

	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestClarificationError_MatchesSentinel(t *testing.T) {
	err := &ClarificationError{Question: "Which week?"}

	require.True(t, errors.Is(err, ErrNeedsClarification))
	require.Equal(t, "Which week?", err.Error())

	var clarify *ClarificationError
	require.True(t, errors.As(err, &clarify))
	require.Equal(t, "Which week?", clarify.Question)
}

func TestMinute_AttendeeRoundTrip(t *testing.T) {
	m := &Minute{}
	require.NoError(t, m.SetAttendees([]string{"Alice", "Bob"}))
	require.Equal(t, []string{"Alice", "Bob"}, m.AttendeeList())

	require.Nil(t, (&Minute{}).AttendeeList())
}

func TestDatasetDescriptor_Validate(t *testing.T) {
	require.Error(t, (&DatasetDescriptor{}).Validate())

	bad := &DatasetDescriptor{Datasets: []DatasetEntry{{Type: "yaml", Name: "x"}}}
	require.Error(t, bad.Validate())

	unnamed := &DatasetDescriptor{Datasets: []DatasetEntry{{Type: DatasetTypeCSV}}}
	require.Error(t, unnamed.Validate())

	good := &DatasetDescriptor{Datasets: []DatasetEntry{{Type: DatasetTypeCSV, Name: "minutes.csv"}}}
	require.NoError(t, good.Validate())
}
