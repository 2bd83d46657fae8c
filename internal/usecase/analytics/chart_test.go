package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

func TestBuildChart_LineSortsNumericLabels(t *testing.T) {
	rs := &entities.ResultSet{
		Columns: []string{"week_number", "value"},
		Rows: [][]interface{}{
			{"10", int64(4)},
			{"2", int64(7)},
			{"1", int64(3)},
		},
		RowCount: 3,
	}
	plan := &entities.QueryPlan{GroupBy: "week_number", Aggregation: entities.AggCount}

	spec := BuildChart(rs, plan)
	require.NotNil(t, spec)
	require.Equal(t, entities.ChartTypeLine, spec.Type)
	// Numeric order, not lexicographic
	require.Equal(t, "1", spec.Series[0].Label)
	require.Equal(t, "2", spec.Series[1].Label)
	require.Equal(t, "10", spec.Series[2].Label)
	require.Equal(t, float64(7), spec.Series[1].Value)
}

func TestBuildChart_PieForTopics(t *testing.T) {
	rs := &entities.ResultSet{
		Columns:  []string{"meeting_topic", "value"},
		Rows:     [][]interface{}{{"planning", int64(5)}, {"retro", int64(2)}},
		RowCount: 2,
	}
	plan := &entities.QueryPlan{GroupBy: "meeting_topic", Aggregation: entities.AggCount}

	spec := BuildChart(rs, plan)
	require.NotNil(t, spec)
	require.Equal(t, entities.ChartTypePie, spec.Type)
	require.Len(t, spec.Series, 2)
}

func TestBuildChart_BarForOtherGroupings(t *testing.T) {
	rs := &entities.ResultSet{
		Columns:  []string{"responsible", "value"},
		Rows:     [][]interface{}{{"Alice", int64(4)}},
		RowCount: 1,
	}
	plan := &entities.QueryPlan{GroupBy: "responsible", Aggregation: entities.AggCount}

	spec := BuildChart(rs, plan)
	require.NotNil(t, spec)
	require.Equal(t, entities.ChartTypeBar, spec.Type)
}

func TestBuildChart_NilForUnchartableShapes(t *testing.T) {
	plan := &entities.QueryPlan{GroupBy: "week_number"}

	require.Nil(t, BuildChart(nil, plan))
	require.Nil(t, BuildChart(&entities.ResultSet{Columns: []string{"value"}}, plan))
	require.Nil(t, BuildChart(&entities.ResultSet{Columns: []string{"a", "b"}}, plan))
}
