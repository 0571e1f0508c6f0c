package docstore

import (
	"fmt"
	"strings"

	"github.com/rlaig/ezorder/internal/filter"
)

// columns that live outside the JSON document and can be compared directly.
var columnFields = map[string]bool{"id": true, "created": true, "updated": true}

// jsonPath builds a JSON path literal. Field names are identifiers (checked by
// the filter parser), so inlining them is safe.
func jsonPath(field string) string {
	return fmt.Sprintf(`'$."%s"'`, field)
}

func extract(field string) string {
	return "JSON_EXTRACT(data, " + jsonPath(field) + ")"
}

func textOf(field string) string {
	if columnFields[field] {
		return field
	}
	return "COALESCE(JSON_UNQUOTE(" + extract(field) + "), '')"
}

const numericTypes = "('INTEGER','UNSIGNED INTEGER','DOUBLE','DECIMAL')"

// compileFilter translates a parsed filter into a MySQL boolean expression
// over the records table, with matching bind arguments. The semantics follow
// filter.Match.
func compileFilter(n filter.Node) (string, []any) {
	switch v := n.(type) {
	case nil:
		return "TRUE", nil
	case *filter.Logical:
		l, la := compileFilter(v.Left)
		r, ra := compileFilter(v.Right)
		op := "OR"
		if v.And {
			op = "AND"
		}
		return "(" + l + " " + op + " " + r + ")", append(la, ra...)
	case *filter.Comparison:
		return compileComparison(v)
	}
	return "FALSE", nil
}

func compileComparison(c *filter.Comparison) (string, []any) {
	switch w := c.Value.(type) {
	case nil:
		blank := fmt.Sprintf("(%s IS NULL OR JSON_TYPE(%s) = 'NULL' OR %s = '')", extract(c.Field), extract(c.Field), textOf(c.Field))
		if columnFields[c.Field] {
			blank = fmt.Sprintf("(%s = '')", c.Field)
		}
		switch c.Op {
		case filter.OpEq:
			return blank, nil
		case filter.OpNeq:
			return "NOT " + blank, nil
		}
		return "FALSE", nil
	case string:
		switch c.Op {
		case filter.OpContains:
			return "LOWER(" + textOf(c.Field) + ") LIKE ?", []any{likePattern(w)}
		case filter.OpNotContains:
			return "LOWER(" + textOf(c.Field) + ") NOT LIKE ?", []any{likePattern(w)}
		}
		return textOf(c.Field) + " " + string(c.Op) + " ?", []any{w}
	case float64:
		expr := fmt.Sprintf("COALESCE(JSON_TYPE(%s) IN %s AND CAST(%s AS DOUBLE) %s ?, FALSE)",
			extract(c.Field), numericTypes, extract(c.Field), opEq(c.Op))
		if c.Op == filter.OpNeq {
			return "NOT " + expr, []any{w}
		}
		return expr, []any{w}
	case bool:
		if c.Op != filter.OpEq && c.Op != filter.OpNeq {
			return "FALSE", nil
		}
		isTrue := fmt.Sprintf("COALESCE(%s = CAST('true' AS JSON), FALSE)", extract(c.Field))
		if (c.Op == filter.OpEq) == w {
			return isTrue, nil
		}
		return "NOT " + isTrue, nil
	}
	return "FALSE", nil
}

// opEq maps != to = for expressions that are negated as a whole.
func opEq(op filter.Op) string {
	if op == filter.OpNeq {
		return "="
	}
	return string(op)
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(s)) + "%"
}

// compileSort renders an ORDER BY list. seq keeps insertion order as the
// final tie breaker.
func compileSort(fields []filter.SortField) string {
	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		expr := extract(f.Field)
		if columnFields[f.Field] {
			expr = f.Field
		}
		if f.Desc {
			expr += " DESC"
		}
		parts = append(parts, expr)
	}
	return strings.Join(append(parts, "seq"), ", ")
}
