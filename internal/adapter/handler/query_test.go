package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
	pkgvalidator "github.com/insightlab/meeting-insights/pkg/validator"
)

type stubInsights struct {
	answer  *entities.Answer
	err     error
	history []*entities.QueryRecord
}

func (s *stubInsights) Ask(context.Context, string) (*entities.Answer, error) {
	return s.answer, s.err
}
func (s *stubInsights) Export(context.Context, string) (string, string, error) {
	return "exports/test.xlsx", "https://storage.local/exports/test.xlsx", nil
}
func (s *stubInsights) History(context.Context, int) ([]*entities.QueryRecord, error) {
	return s.history, nil
}
func (s *stubInsights) InvalidateCache(context.Context) error { return nil }

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = pkgvalidator.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestQueryAsk_Success(t *testing.T) {
	svc := &stubInsights{answer: &entities.Answer{
		Intent:     entities.IntentAnalytics,
		ResultType: entities.ResultTypeScalar,
		Result: &entities.ResultSet{
			Columns:  []string{"value"},
			Rows:     [][]interface{}{{4}},
			RowCount: 1,
		},
	}}
	h := NewQuery(svc, zap.NewNop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/query", `{"utterance":"how many meetings last week"}`)
	require.NoError(t, h.Ask(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "success", body["message"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "analytics", data["intent"])
	require.Equal(t, "scalar", data["result_type"])
}

func TestQueryAsk_EmptyUtteranceRejected(t *testing.T) {
	h := NewQuery(&stubInsights{}, zap.NewNop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/query", `{"utterance":""}`)
	require.NoError(t, h.Ask(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryAsk_ClarificationSurfaced(t *testing.T) {
	svc := &stubInsights{answer: &entities.Answer{
		Intent:        entities.IntentClarify,
		ResultType:    entities.ResultTypeMessage,
		Clarification: "Which meeting do you mean?",
	}}
	h := NewQuery(svc, zap.NewNop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/query", `{"utterance":"when was the meeting?"}`)
	require.NoError(t, h.Ask(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	require.Equal(t, "clarify", data["intent"])
	require.Equal(t, "Which meeting do you mean?", data["clarification"])
}

func TestQueryAsk_UnsupportedQueryReturns422(t *testing.T) {
	svc := &stubInsights{err: entities.ErrUnsupportedQuery}
	h := NewQuery(svc, zap.NewNop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/query", `{"utterance":"join minutes with payroll"}`)
	require.NoError(t, h.Ask(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQueryHistory(t *testing.T) {
	svc := &stubInsights{history: []*entities.QueryRecord{
		entities.NewQueryRecord("how many meetings", entities.IntentAnalytics),
	}}
	h := NewQuery(svc, zap.NewNop())

	c, rec := newTestContext(t, http.MethodGet, "/v1/query/history?limit=10", "")
	require.NoError(t, h.History(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
}
