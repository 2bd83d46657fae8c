package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// BuildChart turns a grouped result set into a renderer-agnostic chart spec.
// Returns nil when the result has no chartable shape (not two columns, or no
// rows).
func BuildChart(rs *entities.ResultSet, plan *entities.QueryPlan) *entities.ChartSpec {
	if rs == nil || len(rs.Columns) != 2 || len(rs.Rows) == 0 {
		return nil
	}

	spec := &entities.ChartSpec{
		Type:   chartTypeFor(plan),
		Title:  chartTitle(plan),
		XLabel: rs.Columns[0],
		YLabel: yLabel(plan),
		Series: make([]entities.SeriesPoint, 0, len(rs.Rows)),
	}

	for _, row := range rs.Rows {
		if len(row) != 2 {
			continue
		}
		spec.Series = append(spec.Series, entities.SeriesPoint{
			Label: fmt.Sprintf("%v", row[0]),
			Value: toFloat(row[1]),
		})
	}

	// Time axes read left to right; grouped bars stay sorted by magnitude
	if spec.Type == entities.ChartTypeLine {
		sort.Slice(spec.Series, func(i, j int) bool {
			return lessLabel(spec.Series[i].Label, spec.Series[j].Label)
		})
	}

	return spec
}

func chartTypeFor(plan *entities.QueryPlan) entities.ChartType {
	switch plan.GroupBy {
	case "week_number", "month", "meeting_date":
		return entities.ChartTypeLine
	case "meeting_topic":
		return entities.ChartTypePie
	default:
		return entities.ChartTypeBar
	}
}

func chartTitle(plan *entities.QueryPlan) string {
	verb := "Count"
	switch plan.Aggregation {
	case entities.AggAverage:
		verb = "Average " + plan.AggColumn
	case entities.AggMin:
		verb = "Minimum " + plan.AggColumn
	case entities.AggMax:
		verb = "Maximum " + plan.AggColumn
	}
	if plan.GroupBy == "" {
		return verb
	}
	return fmt.Sprintf("%s of meetings by %s", verb, plan.GroupBy)
}

func yLabel(plan *entities.QueryPlan) string {
	if plan.Aggregation == entities.AggAverage {
		return plan.AggColumn
	}
	return "meetings"
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

// lessLabel orders numeric labels numerically and everything else
// lexicographically, so week numbers do not sort as 1, 10, 2.
func lessLabel(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
