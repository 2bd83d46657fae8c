package entities

// ChartType enumerates renderable chart shapes
type ChartType string

const (
	ChartTypeBar  ChartType = "bar"
	ChartTypeLine ChartType = "line"
	ChartTypePie  ChartType = "pie"
)

// SeriesPoint is one labelled value of a chart series
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSpec is a renderer-agnostic chart description returned alongside
// analytics answers. Clients decide how to draw it.
type ChartSpec struct {
	Type   ChartType     `json:"type"`
	Title  string        `json:"title"`
	XLabel string        `json:"x_label,omitempty"`
	YLabel string        `json:"y_label,omitempty"`
	Series []SeriesPoint `json:"series"`
}
