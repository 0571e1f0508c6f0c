package filter

import (
	"cmp"
	"strings"

	"github.com/tidwall/gjson"
)

// Match evaluates n against a JSON document. A nil node matches everything.
// Missing fields and null compare equal to null and to "".
func Match(n Node, doc gjson.Result) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Logical:
		if v.And {
			return Match(v.Left, doc) && Match(v.Right, doc)
		}
		return Match(v.Left, doc) || Match(v.Right, doc)
	case *Comparison:
		return compare(doc.Get(v.Field), v.Op, v.Value)
	}
	return false
}

func isBlank(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null || (r.Type == gjson.String && r.Str == "")
}

func compare(r gjson.Result, op Op, want any) bool {
	switch w := want.(type) {
	case nil:
		switch op {
		case OpEq:
			return isBlank(r)
		case OpNeq:
			return !isBlank(r)
		}
		return false
	case string:
		got := ""
		if !isBlank(r) {
			got = r.String()
		}
		switch op {
		case OpContains:
			return strings.Contains(strings.ToLower(got), strings.ToLower(w))
		case OpNotContains:
			return !strings.Contains(strings.ToLower(got), strings.ToLower(w))
		}
		return ordered(cmp.Compare(got, w), op)
	case float64:
		if r.Type != gjson.Number {
			return op == OpNeq
		}
		return ordered(cmp.Compare(r.Float(), w), op)
	case bool:
		switch op {
		case OpEq:
			return r.Bool() == w
		case OpNeq:
			return r.Bool() != w
		}
	}
	return false
}

func ordered(c int, op Op) bool {
	switch op {
	case OpEq:
		return c == 0
	case OpNeq:
		return c != 0
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	}
	return false
}

// Compare orders two documents by the sort fields. It returns 0 when they tie.
func Compare(a, b gjson.Result, fields []SortField) int {
	for _, f := range fields {
		x, y := a.Get(f.Field), b.Get(f.Field)
		var c int
		if x.Type == gjson.Number && y.Type == gjson.Number {
			c = cmp.Compare(x.Float(), y.Float())
		} else {
			c = cmp.Compare(x.String(), y.String())
		}
		if f.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
