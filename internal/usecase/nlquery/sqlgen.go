package nlquery

import (
	"fmt"
	"strings"

	"github.com/insightlab/meeting-insights/internal/domain/entities"
)

// CompileOptions bounds the generated SQL
type CompileOptions struct {
	DefaultLimit int
	MaxLimit     int
}

// Compile renders a query plan into a single-table SELECT over the minutes
// schema. Every value is a bound argument; the plan can only reference
// allowlisted columns and operators, so no utterance text ever reaches the
// statement itself.
func Compile(plan *entities.QueryPlan, opts CompileOptions) (string, []interface{}, error) {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 100
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 500
	}

	selectList, groupExpr, err := buildSelect(plan)
	if err != nil {
		return "", nil, err
	}

	where, args, err := buildWhere(plan.Filters)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectList)
	b.WriteString(" FROM ")
	b.WriteString(TableName)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if groupExpr != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(groupExpr)
	}

	orderBy, err := buildOrder(plan, groupExpr)
	if err != nil {
		return "", nil, err
	}
	if orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(orderBy)
	}

	// Scalar aggregates return one row; everything else carries a capped LIMIT
	if groupExpr != "" || !plan.IsAggregate() {
		limit := plan.Limit
		if limit <= 0 {
			limit = opts.DefaultLimit
		}
		if limit > opts.MaxLimit {
			limit = opts.MaxLimit
		}
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}

	return b.String(), args, nil
}

func buildSelect(plan *entities.QueryPlan) (selectList, groupExpr string, err error) {
	if plan.GroupBy != "" {
		col, ok := LookupColumn(plan.GroupBy)
		if !ok {
			return "", "", fmt.Errorf("%w: %s", entities.ErrUnknownColumn, plan.GroupBy)
		}
		if !col.Groupable {
			return "", "", fmt.Errorf("%w: cannot group by %s", entities.ErrUnsupportedQuery, plan.GroupBy)
		}
		aggExpr, err := aggregateExpr(plan)
		if err != nil {
			return "", "", err
		}
		expr := columnExpr(col)
		return fmt.Sprintf("%s AS %s, %s AS value", expr, col.Name, aggExpr), expr, nil
	}

	if plan.IsAggregate() {
		aggExpr, err := aggregateExpr(plan)
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("%s AS value", aggExpr), "", nil
	}

	cols := plan.Columns
	if len(cols) == 0 {
		cols = PhysicalColumns()
	}
	parts := make([]string, 0, len(cols))
	for _, name := range cols {
		col, ok := LookupColumn(name)
		if !ok {
			return "", "", fmt.Errorf("%w: %s", entities.ErrUnknownColumn, name)
		}
		if col.Kind == KindDerived {
			parts = append(parts, fmt.Sprintf("%s AS %s", col.Expr, col.Name))
			continue
		}
		parts = append(parts, col.Name)
	}
	return strings.Join(parts, ", "), "", nil
}

func aggregateExpr(plan *entities.QueryPlan) (string, error) {
	switch plan.Aggregation {
	case entities.AggCount:
		return "COUNT(*)", nil
	case entities.AggAverage, entities.AggMin, entities.AggMax:
		if plan.AggColumn == "" {
			return "", fmt.Errorf("%w: %s needs a target column", entities.ErrUnsupportedQuery, plan.Aggregation)
		}
		col, ok := LookupColumn(plan.AggColumn)
		if !ok {
			return "", fmt.Errorf("%w: %s", entities.ErrUnknownColumn, plan.AggColumn)
		}
		if plan.Aggregation == entities.AggAverage && col.Kind != KindInt && col.Name != "attendee_count" {
			return "", fmt.Errorf("%w: cannot average %s", entities.ErrUnsupportedQuery, col.Name)
		}
		return fmt.Sprintf("%s(%s)", plan.Aggregation, columnExpr(col)), nil
	case entities.AggNone:
		return "", fmt.Errorf("%w: no aggregation in plan", entities.ErrUnsupportedQuery)
	default:
		return "", fmt.Errorf("%w: aggregation %s", entities.ErrUnsupportedQuery, plan.Aggregation)
	}
}

func buildWhere(filters []entities.Filter) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters))

	for _, f := range filters {
		col, ok := LookupColumn(f.Column)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", entities.ErrUnknownColumn, f.Column)
		}
		if !col.Filterable && col.Kind != KindDerived {
			return "", nil, fmt.Errorf("%w: cannot filter on %s", entities.ErrUnsupportedQuery, f.Column)
		}

		switch f.Operator {
		case entities.OpEq, entities.OpNeq, entities.OpGt, entities.OpGte, entities.OpLt, entities.OpLte:
			if col.Kind == KindArray {
				return "", nil, fmt.Errorf("%w: %s on array column %s", entities.ErrUnknownOperator, f.Operator, col.Name)
			}
			// Case-insensitive equality on text columns
			if col.Kind == KindText && f.Operator == entities.OpEq {
				clauses = append(clauses, fmt.Sprintf("%s ILIKE ?", columnExpr(col)))
			} else {
				clauses = append(clauses, fmt.Sprintf("%s %s ?", columnExpr(col), f.Operator))
			}
			args = append(args, f.Value)

		case entities.OpContains:
			switch col.Kind {
			case KindArray:
				clauses = append(clauses, fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements_text(%s) elem WHERE elem ILIKE ?)", col.Name))
				args = append(args, "%"+fmt.Sprintf("%v", f.Value)+"%")
			case KindText:
				clauses = append(clauses, fmt.Sprintf("%s ILIKE ?", col.Name))
				args = append(args, "%"+fmt.Sprintf("%v", f.Value)+"%")
			default:
				return "", nil, fmt.Errorf("%w: CONTAINS on %s", entities.ErrUnknownOperator, col.Name)
			}

		default:
			return "", nil, fmt.Errorf("%w: %s", entities.ErrUnknownOperator, f.Operator)
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}

func buildOrder(plan *entities.QueryPlan, groupExpr string) (string, error) {
	if plan.Sort != nil && groupExpr == "" && !plan.IsAggregate() {
		col, ok := LookupColumn(plan.Sort.Column)
		if !ok {
			return "", fmt.Errorf("%w: %s", entities.ErrUnknownColumn, plan.Sort.Column)
		}
		if !col.Sortable {
			return "", fmt.Errorf("%w: cannot sort by %s", entities.ErrUnsupportedQuery, plan.Sort.Column)
		}
		dir := "ASC"
		if plan.Sort.Descending {
			dir = "DESC"
		}
		return fmt.Sprintf("%s %s", columnExpr(col), dir), nil
	}

	// Grouped aggregates come back largest-bucket first. A sort is honored
	// only when it targets the group expression itself; anything else would
	// order by an ungrouped column, which Postgres rejects.
	if groupExpr != "" {
		if plan.Sort != nil {
			if col, ok := LookupColumn(plan.Sort.Column); ok && columnExpr(col) == groupExpr {
				dir := "ASC"
				if plan.Sort.Descending {
					dir = "DESC"
				}
				return fmt.Sprintf("%s %s", groupExpr, dir), nil
			}
		}
		return "value DESC", nil
	}

	// A scalar aggregate returns one row; ordering it is meaningless
	return "", nil
}

func columnExpr(col Column) string {
	if col.Kind == KindDerived {
		return col.Expr
	}
	return col.Name
}
