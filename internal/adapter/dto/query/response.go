package query

// AnswerResponse is the shaped reply to an utterance. Exactly one of the
// payload fields is populated depending on result_type.
type AnswerResponse struct {
	Intent        string           `json:"intent"`
	ResultType    string           `json:"result_type"`
	Message       string           `json:"message,omitempty"`
	Clarification string           `json:"clarification,omitempty"`
	Result        *ResultResponse  `json:"result,omitempty"`
	Chart         *ChartResponse   `json:"chart,omitempty"`
	Plan          interface{}      `json:"plan,omitempty"`
	CacheHit      bool             `json:"cache_hit"`
	ElapsedMS     int64            `json:"elapsed_ms"`
}

// ResultResponse is a tabular result payload
type ResultResponse struct {
	Columns  []string        `json:"columns"`
	Rows     [][]interface{} `json:"rows"`
	RowCount int             `json:"row_count"`
	SQL      string          `json:"sql,omitempty"`
}

// ChartResponse is a renderer-agnostic chart description
type ChartResponse struct {
	Type   string          `json:"type"`
	Title  string          `json:"title"`
	XLabel string          `json:"x_label,omitempty"`
	YLabel string          `json:"y_label,omitempty"`
	Series []PointResponse `json:"series"`
}

// PointResponse is one labelled chart value
type PointResponse struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ExportResponse carries the stored workbook location
type ExportResponse struct {
	ObjectKey   string `json:"object_key"`
	DownloadURL string `json:"download_url"`
}

// RecordResponse is one audit-trail row
type RecordResponse struct {
	ID        string `json:"id"`
	Utterance string `json:"utterance"`
	Intent    string `json:"intent"`
	SQL       string `json:"sql,omitempty"`
	RowCount  int    `json:"row_count"`
	ElapsedMS int64  `json:"elapsed_ms"`
	CacheHit  bool   `json:"cache_hit"`
	CreatedAt string `json:"created_at"`
}
