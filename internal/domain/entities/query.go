package entities

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Intent is the routing decision for an utterance
type Intent string

const (
	IntentRetrieve   Intent = "retrieve"
	IntentAnalytics  Intent = "analytics"
	IntentClarify    Intent = "clarify"
	IntentGreeting   Intent = "greeting"
	IntentOutOfScope Intent = "out_of_scope"
)

// Aggregation functions supported by the SQL subset
type Aggregation string

const (
	AggNone    Aggregation = ""
	AggCount   Aggregation = "COUNT"
	AggAverage Aggregation = "AVG"
	AggMin     Aggregation = "MIN"
	AggMax     Aggregation = "MAX"
)

// Filter operators supported by the SQL subset
const (
	OpEq       = "="
	OpNeq      = "!="
	OpGt       = ">"
	OpGte      = ">="
	OpLt       = "<"
	OpLte      = "<="
	OpContains = "CONTAINS" // ILIKE %v% on text, jsonb containment on arrays
)

// Filter is one predicate of a query plan
type Filter struct {
	Column   string      `json:"column"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Sort describes the plan ordering
type Sort struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending"`
}

// QueryPlan is the constrained representation of what an utterance asks for.
// It is the only thing ever compiled to SQL: no utterance text reaches the
// database directly.
type QueryPlan struct {
	Intent      Intent      `json:"intent"`
	Columns     []string    `json:"columns,omitempty"` // empty means all columns
	Filters     []Filter    `json:"filters,omitempty"`
	GroupBy     string      `json:"group_by,omitempty"`
	Aggregation Aggregation `json:"aggregation,omitempty"`
	AggColumn   string      `json:"agg_column,omitempty"`
	Sort        *Sort       `json:"sort,omitempty"`
	Limit       int         `json:"limit"`
}

// Fingerprint returns a stable textual form of the plan, used as cache key
// material. Filters are ordered so equivalent plans hash identically.
func (p *QueryPlan) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "i=%s|c=%s|g=%s|a=%s:%s|l=%d", p.Intent, strings.Join(p.Columns, ","), p.GroupBy, p.Aggregation, p.AggColumn, p.Limit)
	if p.Sort != nil {
		fmt.Fprintf(&b, "|s=%s:%v", p.Sort.Column, p.Sort.Descending)
	}
	filters := make([]string, 0, len(p.Filters))
	for _, f := range p.Filters {
		filters = append(filters, fmt.Sprintf("%s%s%v", f.Column, f.Operator, f.Value))
	}
	sort.Strings(filters)
	fmt.Fprintf(&b, "|f=%s", strings.Join(filters, ";"))
	return b.String()
}

// IsAggregate reports whether the plan computes an aggregate
func (p *QueryPlan) IsAggregate() bool {
	return p.Aggregation != AggNone
}

// ResultType describes the shape of an answer payload
type ResultType string

const (
	ResultTypeTable      ResultType = "table"
	ResultTypeScalar     ResultType = "scalar"
	ResultTypeTimeseries ResultType = "timeseries"
	ResultTypeMessage    ResultType = "message"
)

// ResultSet is the shaped output of executing a query plan
type ResultSet struct {
	Columns  []string        `json:"columns"`
	Rows     [][]interface{} `json:"rows"`
	RowCount int             `json:"row_count"`
	SQL      string          `json:"sql,omitempty"`
	Elapsed  time.Duration   `json:"-"`
}

// Answer is the final response of the insights pipeline
type Answer struct {
	Intent        Intent      `json:"intent"`
	ResultType    ResultType  `json:"result_type"`
	Message       string      `json:"message,omitempty"`
	Clarification string      `json:"clarification,omitempty"`
	Result        *ResultSet  `json:"result,omitempty"`
	Chart         *ChartSpec  `json:"chart,omitempty"`
	Plan          *QueryPlan  `json:"plan,omitempty"`
	CacheHit      bool        `json:"cache_hit"`
	ElapsedMS     int64       `json:"elapsed_ms"`
}
