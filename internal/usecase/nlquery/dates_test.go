package nlquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekRange_MondayBased(t *testing.T) {
	// Wednesday
	now := time.Date(2025, time.June, 11, 15, 0, 0, 0, time.UTC)

	this := weekRange(now, 0)
	require.Equal(t, "2025-06-09", this.From)
	require.Equal(t, "2025-06-16", this.To)

	last := weekRange(now, -1)
	require.Equal(t, "2025-06-02", last.From)
	require.Equal(t, "2025-06-09", last.To)
}

func TestWeekRange_SundayClosesWeek(t *testing.T) {
	sunday := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

	this := weekRange(sunday, 0)
	require.Equal(t, "2025-06-09", this.From)
	require.Equal(t, "2025-06-16", this.To)
}

func TestMonthRange_Offsets(t *testing.T) {
	now := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	last := monthRange(now, -1)
	require.Equal(t, "2024-12-01", last.From)
	require.Equal(t, "2025-01-01", last.To)
}

func TestNamedMonthRange(t *testing.T) {
	now := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)

	r, err := namedMonthRange(now, "February", 0)
	require.NoError(t, err)
	require.Equal(t, "2025-02-01", r.From)
	require.Equal(t, "2025-03-01", r.To)

	r, err = namedMonthRange(now, "december", 2024)
	require.NoError(t, err)
	require.Equal(t, "2024-12-01", r.From)
	require.Equal(t, "2025-01-01", r.To)

	_, err = namedMonthRange(now, "smarch", 0)
	require.Error(t, err)
}

func TestDayRange_NonUTCClockKeepsLocalDate(t *testing.T) {
	// 00:30 local in UTC+7 is still the previous day in UTC; "today" must
	// resolve to the local calendar date, not the UTC one.
	loc := time.FixedZone("UTC+7", 7*60*60)
	now := time.Date(2025, time.June, 11, 0, 30, 0, 0, loc)

	r := dayRange(now)
	require.Equal(t, "2025-06-11", r.From)
	require.Equal(t, "2025-06-12", r.To)

	yesterday := dayRange(now.AddDate(0, 0, -1))
	require.Equal(t, "2025-06-10", yesterday.From)
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2025, time.June, 11, 18, 0, 0, 0, time.UTC)

	r := lastNDays(now, 30)
	require.Equal(t, "2025-05-12", r.From)
	require.Equal(t, "2025-06-12", r.To)
}
