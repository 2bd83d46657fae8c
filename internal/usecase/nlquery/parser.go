package nlquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// Parser translates a routed utterance into a constrained query plan over the
// minutes schema. It is deterministic: the same utterance and clock always
// produce the same plan.
type Parser struct {
	now func() time.Time
}

// NewParser creates a parser. Row limits are applied at compile time; the
// parser only records an explicit "top N".
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// WithClock overrides the clock used to resolve relative date phrases
func (p *Parser) WithClock(now func() time.Time) *Parser {
	p.now = now
	return p
}

var (
	reLastNUnits   = regexp.MustCompile(`\blast\s+(\d+)\s+(days?|weeks?|months?)\b`)
	reWeekSpan     = regexp.MustCompile(`\bweeks\s+(\d+)\s*(?:to|through|-)\s*(\d+)\b`)
	reWeekNumber   = regexp.MustCompile(`\bweek\s+#?(\d+)\b`)
	reNamedMonth   = regexp.MustCompile(`\b(?:in|during|for)\s+(january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+(\d{4}))?\b`)
	reYear         = regexp.MustCompile(`\b(?:in|during|for)\s+(\d{4})\b`)
	reBetweenDates = regexp.MustCompile(`\bbetween\s+(\d{4}-\d{2}-\d{2})\s+and\s+(\d{4}-\d{2}-\d{2})\b`)
	reBoundedDate  = regexp.MustCompile(`\b(on|since|after|before|until)\s+(\d{4}-\d{2}-\d{2})\b`)
	reTopN         = regexp.MustCompile(`\b(top|first|last|latest)\s+(\d+)\b`)
	reGroupBy      = regexp.MustCompile(`\b(?:per|by|for each|grouped by)\s+(week|month|topic|attendee|attendees|participant|responsible|owner)s?\b`)
	reAverage      = regexp.MustCompile(`\b(?:average|avg|mean)\b`)
	reCount        = regexp.MustCompile(`\b(?:how many|count|number of)\b`)
	reEarliest     = regexp.MustCompile(`\bwhen was the (?:first|earliest) meeting\b`)
	reLatest       = regexp.MustCompile(`\bwhen was the (?:last|latest|most recent) meeting\b`)
	reTopic        = regexp.MustCompile(`\b(?:about|regarding|concerning|related to|on the topic of)\s+([a-z0-9][a-z0-9 \-]*?)(?:\?|$|,| with | in | during | last | this | since | before | after | between | per | by | and )`)
	reDecidedOn    = regexp.MustCompile(`\bdecided\s+(?:about|on|regarding)\s+([a-z0-9][a-z0-9 \-]*?)(?:\?|$|,)`)
	reProjection   = regexp.MustCompile(`\b(?:show|list|give me|get)(?: me)?(?: just| only)?(?: the)?\s+(summaries|summary|topics|decisions|plans|future plans|purposes|notes|attendees|dates)\b`)
	reName         = regexp.MustCompile(`(?:with|attended by|including)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	reOwnerName    = regexp.MustCompile(`(?:assigned to|responsible(?: person)?(?: is)?|owned by|owner is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	reDefiniteRef  = regexp.MustCompile(`\b(?:the|that|this) meeting\b`)
)

// Parse builds a query plan from an utterance already routed to a
// data-bearing intent. It returns ErrNeedsClarification when the utterance is
// in-domain but underdetermined; the error message is the question to ask.
func (p *Parser) Parse(utterance string, intent entities.Intent) (*entities.QueryPlan, error) {
	raw := strings.TrimSpace(utterance)
	if raw == "" {
		return nil, entities.ErrEmptyUtterance
	}

	text := strings.ToLower(raw)
	plan := &entities.QueryPlan{Intent: intent}
	now := p.now()

	text = p.extractDateFilters(text, now, plan)
	text = p.extractWeekFilters(text, plan)
	text = p.extractSortAndLimit(text, plan)
	p.extractGroupBy(text, plan)

	if err := p.extractAggregation(text, plan); err != nil {
		return nil, err
	}
	p.extractNames(raw, plan)
	p.extractTopic(text, plan)
	p.extractProjection(text, plan)

	// Group-by without an explicit aggregate counts rows per bucket
	if plan.GroupBy != "" && !plan.IsAggregate() {
		plan.Aggregation = entities.AggCount
	}

	// "latest"/"earliest" phrasing sets a raw-column sort before the aggregate
	// is known; an aggregate query cannot order by an ungrouped column, so the
	// aggregate wins and the sort is dropped. An explicit limit survives.
	if plan.IsAggregate() {
		plan.Sort = nil
	}

	if err := p.checkDetermined(text, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// extractDateFilters resolves relative and explicit date phrases against the
// clock and strips the matched phrases from the working text.
func (p *Parser) extractDateFilters(text string, now time.Time, plan *entities.QueryPlan) string {
	addRange := func(r dateRange) {
		plan.Filters = append(plan.Filters,
			entities.Filter{Column: "meeting_date", Operator: entities.OpGte, Value: r.From},
			entities.Filter{Column: "meeting_date", Operator: entities.OpLt, Value: r.To},
		)
	}

	if m := reLastNUnits.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch {
		case strings.HasPrefix(m[2], "day"):
			addRange(lastNDays(now, n))
		case strings.HasPrefix(m[2], "week"):
			addRange(lastNDays(now, n*7))
		default:
			addRange(dateRange{From: monthRange(now, -n).From, To: monthRange(now, 0).To})
		}
		text = reLastNUnits.ReplaceAllString(text, " ")
	}

	if m := reBetweenDates.FindStringSubmatch(text); m != nil {
		plan.Filters = append(plan.Filters,
			entities.Filter{Column: "meeting_date", Operator: entities.OpGte, Value: m[1]},
			entities.Filter{Column: "meeting_date", Operator: entities.OpLte, Value: m[2]},
		)
		text = reBetweenDates.ReplaceAllString(text, " ")
	}

	for _, m := range reBoundedDate.FindAllStringSubmatch(text, -1) {
		switch m[1] {
		case "on":
			day, err := time.Parse(dateLayout, m[2])
			if err == nil {
				addRange(dayRange(day))
			}
		case "since", "after":
			plan.Filters = append(plan.Filters, entities.Filter{Column: "meeting_date", Operator: entities.OpGte, Value: m[2]})
		case "before", "until":
			plan.Filters = append(plan.Filters, entities.Filter{Column: "meeting_date", Operator: entities.OpLte, Value: m[2]})
		}
	}
	text = reBoundedDate.ReplaceAllString(text, " ")

	if m := reNamedMonth.FindStringSubmatch(text); m != nil {
		year := 0
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		}
		if r, err := namedMonthRange(now, m[1], year); err == nil {
			addRange(r)
		}
		text = reNamedMonth.ReplaceAllString(text, " ")
	}

	if m := reYear.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		addRange(yearRange(year, now.Location()))
		text = reYear.ReplaceAllString(text, " ")
	}

	relatives := []struct {
		phrase string
		rng    func() dateRange
	}{
		{"last week", func() dateRange { return weekRange(now, -1) }},
		{"this week", func() dateRange { return weekRange(now, 0) }},
		{"last month", func() dateRange { return monthRange(now, -1) }},
		{"this month", func() dateRange { return monthRange(now, 0) }},
		{"last year", func() dateRange { return yearRange(now.Year()-1, now.Location()) }},
		{"this year", func() dateRange { return yearRange(now.Year(), now.Location()) }},
		{"yesterday", func() dateRange { return dayRange(now.AddDate(0, 0, -1)) }},
		{"today", func() dateRange { return dayRange(now) }},
	}
	for _, rel := range relatives {
		if strings.Contains(text, rel.phrase) {
			addRange(rel.rng())
			text = strings.ReplaceAll(text, rel.phrase, " ")
		}
	}

	return text
}

func (p *Parser) extractWeekFilters(text string, plan *entities.QueryPlan) string {
	if m := reWeekSpan.FindStringSubmatch(text); m != nil {
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])
		plan.Filters = append(plan.Filters,
			entities.Filter{Column: "week_number", Operator: entities.OpGte, Value: from},
			entities.Filter{Column: "week_number", Operator: entities.OpLte, Value: to},
		)
		return reWeekSpan.ReplaceAllString(text, " ")
	}
	if m := reWeekNumber.FindStringSubmatch(text); m != nil {
		week, _ := strconv.Atoi(m[1])
		plan.Filters = append(plan.Filters, entities.Filter{Column: "week_number", Operator: entities.OpEq, Value: week})
		return reWeekNumber.ReplaceAllString(text, " ")
	}
	return text
}

func (p *Parser) extractSortAndLimit(text string, plan *entities.QueryPlan) string {
	if m := reTopN.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[2])
		plan.Limit = n
		plan.Sort = &entities.Sort{Column: "meeting_date", Descending: m[1] != "first"}
		text = reTopN.ReplaceAllString(text, " ")
		return text
	}
	if strings.Contains(text, "most recent") || strings.Contains(text, "latest") {
		plan.Sort = &entities.Sort{Column: "meeting_date", Descending: true}
	} else if strings.Contains(text, "earliest") || strings.Contains(text, "oldest") {
		plan.Sort = &entities.Sort{Column: "meeting_date", Descending: false}
	}
	return text
}

var groupByTargets = map[string]string{
	"week":        "week_number",
	"month":       "month",
	"topic":       "meeting_topic",
	"attendee":    "attendees",
	"attendees":   "attendees",
	"participant": "attendees",
	"responsible": "responsible",
	"owner":       "responsible",
}

func (p *Parser) extractGroupBy(text string, plan *entities.QueryPlan) {
	if m := reGroupBy.FindStringSubmatch(text); m != nil {
		plan.GroupBy = groupByTargets[m[1]]
	}
	// "distribution of topics" and "trend" are implicit group-bys
	if plan.GroupBy == "" {
		if strings.Contains(text, "distribution") && strings.Contains(text, "topic") {
			plan.GroupBy = "meeting_topic"
		} else if strings.Contains(text, "trend") {
			plan.GroupBy = "week_number"
		}
	}
}

func (p *Parser) extractAggregation(text string, plan *entities.QueryPlan) error {
	switch {
	case reEarliest.MatchString(text):
		plan.Aggregation = entities.AggMin
		plan.AggColumn = "meeting_date"
	case reLatest.MatchString(text):
		plan.Aggregation = entities.AggMax
		plan.AggColumn = "meeting_date"
	case reCount.MatchString(text):
		plan.Aggregation = entities.AggCount
	case reAverage.MatchString(text):
		plan.Aggregation = entities.AggAverage
		if strings.Contains(text, "attend") || strings.Contains(text, "headcount") || strings.Contains(text, "participant") {
			plan.AggColumn = "attendee_count"
		} else {
			return &entities.ClarificationError{Question: "What should be averaged? Only attendee counts can be averaged."}
		}
	}
	return nil
}

// extractNames runs on the raw (case-preserved) utterance: capitalization is
// the only cue separating person names from ordinary words.
func (p *Parser) extractNames(raw string, plan *entities.QueryPlan) {
	if m := reName.FindStringSubmatch(raw); m != nil {
		plan.Filters = append(plan.Filters, entities.Filter{Column: "attendees", Operator: entities.OpContains, Value: m[1]})
	}
	if m := reOwnerName.FindStringSubmatch(raw); m != nil {
		plan.Filters = append(plan.Filters, entities.Filter{Column: "responsible", Operator: entities.OpContains, Value: m[1]})
	}
}

func (p *Parser) extractTopic(text string, plan *entities.QueryPlan) {
	if m := reDecidedOn.FindStringSubmatch(text); m != nil {
		plan.Filters = append(plan.Filters, entities.Filter{Column: "decisions", Operator: entities.OpContains, Value: strings.TrimSpace(m[1])})
		return
	}
	if m := reTopic.FindStringSubmatch(text); m != nil {
		topic := strings.TrimSpace(m[1])
		if topic != "" {
			plan.Filters = append(plan.Filters, entities.Filter{Column: "meeting_topic", Operator: entities.OpContains, Value: topic})
		}
	}
}

var projectionTargets = map[string][]string{
	"summary":      {"meeting_date", "meeting_topic", "summary"},
	"summaries":    {"meeting_date", "meeting_topic", "summary"},
	"topics":       {"meeting_date", "meeting_topic"},
	"decisions":    {"meeting_date", "meeting_topic", "decisions"},
	"plans":        {"meeting_date", "meeting_topic", "future_plan"},
	"future plans": {"meeting_date", "meeting_topic", "future_plan"},
	"purposes":     {"meeting_date", "meeting_topic", "meeting_purpose"},
	"notes":        {"meeting_date", "meeting_topic", "notes"},
	"attendees":    {"meeting_date", "meeting_topic", "attendees"},
	"dates":        {"meeting_date", "meeting_topic"},
}

func (p *Parser) extractProjection(text string, plan *entities.QueryPlan) {
	if plan.IsAggregate() || plan.GroupBy != "" {
		return
	}
	if m := reProjection.FindStringSubmatch(text); m != nil {
		if cols, ok := projectionTargets[m[1]]; ok {
			plan.Columns = cols
		}
	}
}

// checkDetermined rejects plans that would silently answer a different
// question than the one asked. Definite references to a single meeting with
// nothing to select it by must come back as a question, not a table scan.
func (p *Parser) checkDetermined(text string, plan *entities.QueryPlan) error {
	if len(plan.Filters) == 0 && reDefiniteRef.MatchString(text) && !plan.IsAggregate() && plan.GroupBy == "" {
		return &entities.ClarificationError{Question: "Which meeting do you mean? Add a week number, a date, or a topic."}
	}
	return nil
}
