package nlquery

import "strings"

// TableName is the only table the SQL subset may address
const TableName = "minutes"

// ColumnKind drives how filters and projections compile
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindDate
	KindArray   // jsonb string array
	KindDerived // computed expression, not a physical column
)

// Column is one entry of the schema catalog
type Column struct {
	Name       string
	Kind       ColumnKind
	Expr       string // non-empty for derived columns
	Synonyms   []string
	Filterable bool
	Groupable  bool
	Sortable   bool
}

// Catalog is the fixed minutes schema plus the derived columns the subset
// exposes. Order matters: it is the projection order for SELECT *.
var Catalog = []Column{
	{Name: "id", Kind: KindText, Filterable: false, Sortable: false},
	{Name: "week_number", Kind: KindInt, Synonyms: []string{"week", "weeks", "week number"}, Filterable: true, Groupable: true, Sortable: true},
	{Name: "meeting_date", Kind: KindDate, Synonyms: []string{"date", "day", "held", "when"}, Filterable: true, Groupable: true, Sortable: true},
	{Name: "details", Kind: KindText, Synonyms: []string{"detail", "discussion"}, Filterable: true},
	{Name: "attendees", Kind: KindArray, Synonyms: []string{"attendee", "participants", "participant", "present"}, Filterable: true},
	{Name: "meeting_topic", Kind: KindText, Synonyms: []string{"topic", "topics", "subject", "agenda"}, Filterable: true, Groupable: true, Sortable: true},
	{Name: "meeting_purpose", Kind: KindText, Synonyms: []string{"purpose", "goal", "objective"}, Filterable: true},
	{Name: "summary", Kind: KindText, Synonyms: []string{"summaries", "recap"}, Filterable: true},
	{Name: "target_date", Kind: KindDate, Synonyms: []string{"deadline", "due date", "due"}, Filterable: true, Sortable: true},
	{Name: "future_plan", Kind: KindText, Synonyms: []string{"plan", "plans", "next steps", "follow up"}, Filterable: true},
	{Name: "decisions", Kind: KindArray, Synonyms: []string{"decision", "decided", "resolutions"}, Filterable: true},
	{Name: "responsible", Kind: KindText, Synonyms: []string{"owner", "assignee", "accountable"}, Filterable: true, Groupable: true, Sortable: true},
	{Name: "notes", Kind: KindText, Synonyms: []string{"note", "remarks"}, Filterable: true},

	// Derived columns
	{Name: "attendee_count", Kind: KindDerived, Expr: "jsonb_array_length(attendees)", Synonyms: []string{"number of attendees", "headcount", "attendance"}, Groupable: false, Sortable: true},
	{Name: "month", Kind: KindDerived, Expr: "to_char(meeting_date, 'YYYY-MM')", Synonyms: []string{"months"}, Groupable: true, Sortable: true},
}

var catalogByName = func() map[string]Column {
	m := make(map[string]Column, len(Catalog))
	for _, c := range Catalog {
		m[c.Name] = c
	}
	return m
}()

var synonymIndex = func() map[string]string {
	m := make(map[string]string)
	for _, c := range Catalog {
		m[c.Name] = c.Name
		for _, s := range c.Synonyms {
			m[s] = c.Name
		}
	}
	return m
}()

// LookupColumn returns the catalog entry for a physical or derived column name
func LookupColumn(name string) (Column, bool) {
	c, ok := catalogByName[name]
	return c, ok
}

// ResolveColumn maps a word or phrase from an utterance to a catalog column
func ResolveColumn(word string) (Column, bool) {
	name, ok := synonymIndex[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return Column{}, false
	}
	return catalogByName[name], true
}

// PhysicalColumns returns the projection list for SELECT-all plans
func PhysicalColumns() []string {
	out := make([]string, 0, len(Catalog))
	for _, c := range Catalog {
		if c.Kind != KindDerived {
			out = append(out, c.Name)
		}
	}
	return out
}
