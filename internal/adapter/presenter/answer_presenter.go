package presenter

import (
	"github.com/insightlab/meeting-insights/internal/adapter/dto/query"
	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// ToAnswerResponse converts an Answer entity to its API shape
func ToAnswerResponse(a *entities.Answer) *query.AnswerResponse {
	if a == nil {
		return nil
	}

	resp := &query.AnswerResponse{
		Intent:        string(a.Intent),
		ResultType:    string(a.ResultType),
		Message:       a.Message,
		Clarification: a.Clarification,
		Plan:          a.Plan,
		CacheHit:      a.CacheHit,
		ElapsedMS:     a.ElapsedMS,
	}

	if a.Result != nil {
		resp.Result = &query.ResultResponse{
			Columns:  a.Result.Columns,
			Rows:     a.Result.Rows,
			RowCount: a.Result.RowCount,
			SQL:      a.Result.SQL,
		}
	}
	if a.Chart != nil {
		resp.Chart = toChartResponse(a.Chart)
	}
	return resp
}

func toChartResponse(spec *entities.ChartSpec) *query.ChartResponse {
	chart := &query.ChartResponse{
		Type:   string(spec.Type),
		Title:  spec.Title,
		XLabel: spec.XLabel,
		YLabel: spec.YLabel,
		Series: make([]query.PointResponse, len(spec.Series)),
	}
	for i, p := range spec.Series {
		chart.Series[i] = query.PointResponse{Label: p.Label, Value: p.Value}
	}
	return chart
}

// ToRecordResponses converts audit rows to their API shape
func ToRecordResponses(records []*entities.QueryRecord) []*query.RecordResponse {
	out := make([]*query.RecordResponse, len(records))
	for i, r := range records {
		out[i] = &query.RecordResponse{
			ID:        r.ID.String(),
			Utterance: r.Utterance,
			Intent:    r.Intent,
			SQL:       r.SQL,
			RowCount:  r.RowCount,
			ElapsedMS: r.ElapsedMS,
			CacheHit:  r.CacheHit,
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return out
}
