package nlquery

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// dateRange is a half-open [From, To) interval rendered as date strings
type dateRange struct {
	From string
	To   string
}

func dayRange(day time.Time) dateRange {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return dateRange{From: start.Format(dateLayout), To: start.AddDate(0, 0, 1).Format(dateLayout)}
}

// weekRange returns the Monday-based week containing now, shifted by offset
// weeks (0 = this week, -1 = last week).
func weekRange(now time.Time, offset int) dateRange {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	monday := now.AddDate(0, 0, -(weekday-1)+offset*7)
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
	return dateRange{From: monday.Format(dateLayout), To: monday.AddDate(0, 0, 7).Format(dateLayout)}
}

func monthRange(now time.Time, offset int) dateRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, offset, 0)
	return dateRange{From: first.Format(dateLayout), To: first.AddDate(0, 1, 0).Format(dateLayout)}
}

func yearRange(year int, loc *time.Location) dateRange {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return dateRange{From: first.Format(dateLayout), To: first.AddDate(1, 0, 0).Format(dateLayout)}
}

// namedMonthRange resolves "june" (optionally with a year) against the clock.
// Without a year the current year is assumed.
func namedMonthRange(now time.Time, name string, year int) (dateRange, error) {
	month, ok := monthsByName[strings.ToLower(name)]
	if !ok {
		return dateRange{}, fmt.Errorf("unknown month %q", name)
	}
	if year == 0 {
		year = now.Year()
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	return dateRange{From: first.Format(dateLayout), To: first.AddDate(0, 1, 0).Format(dateLayout)}, nil
}

func lastNDays(now time.Time, n int) dateRange {
	start := now.AddDate(0, 0, -n)
	return dateRange{
		From: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location()).Format(dateLayout),
		To:   now.AddDate(0, 0, 1).Format(dateLayout),
	}
}
