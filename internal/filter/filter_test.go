package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParse(t *testing.T) {
	n, err := Parse(`merchant_id = "m1" && (status = 'placed' || total_amount >= 100.5)`)
	require.NoError(t, err)

	and, ok := n.(*Logical)
	require.True(t, ok)
	require.True(t, and.And)
	require.Equal(t, &Comparison{Field: "merchant_id", Op: OpEq, Value: "m1"}, and.Left)

	or, ok := and.Right.(*Logical)
	require.True(t, ok)
	require.False(t, or.And)
	require.Equal(t, &Comparison{Field: "status", Op: OpEq, Value: "placed"}, or.Left)
	require.Equal(t, &Comparison{Field: "total_amount", Op: OpGte, Value: 100.5}, or.Right)

	require.Equal(t, []string{"merchant_id", "status", "total_amount"}, Fields(n))
}

func TestParsePrecedence(t *testing.T) {
	// && binds tighter than ||.
	n, err := Parse(`a = 1 || b = 2 && c = 3`)
	require.NoError(t, err)
	or := n.(*Logical)
	require.False(t, or.And)
	require.True(t, or.Right.(*Logical).And)
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		expr string
		want *Comparison
	}{
		{`verified = true`, &Comparison{"verified", OpEq, true}},
		{`verified != false`, &Comparison{"verified", OpNeq, false}},
		{`last_used = null`, &Comparison{"last_used", OpEq, nil}},
		{`price < -2`, &Comparison{"price", OpLt, -2.0}},
		{`name ~ "it\"s"`, &Comparison{"name", OpContains, `it"s`}},
		{`name !~ 'x'`, &Comparison{"name", OpNotContains, "x"}},
		{`sort_order<=3`, &Comparison{"sort_order", OpLte, 3.0}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			n, err := Parse(tt.expr)
			require.NoError(t, err)
			require.Equal(t, tt.want, n)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`status`,
		`status = `,
		`status = "open`,
		`(status = "a"`,
		`status = "a" &&`,
		`status == "a" extra`,
		`price ~ 3`,
		`1 = 1`,
		`status = nullish`,
	}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}

	n, err := Parse("   ")
	require.NoError(t, err)
	require.Nil(t, n)
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("-created, +name,sort_order")
	require.NoError(t, err)
	require.Equal(t, []SortField{{"created", true}, {"name", false}, {"sort_order", false}}, got)

	_, err = ParseSort("-")
	require.ErrorIs(t, err, ErrSyntax)
	_, err = ParseSort("name; drop")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestMatch(t *testing.T) {
	doc := gjson.Parse(`{"merchant_id":"m1","status":"ready","total_amount":250,"enabled":true,"name":"Chicken Adobo","note":null}`)
	tests := []struct {
		expr string
		want bool
	}{
		{``, true},
		{`merchant_id = "m1"`, true},
		{`merchant_id != "m1"`, false},
		{`status = "placed" || status = "ready"`, true},
		{`merchant_id = "m1" && status = "placed"`, false},
		{`total_amount > 200`, true},
		{`total_amount <= 200`, false},
		{`total_amount = "250"`, true},
		{`enabled = true`, true},
		{`missing = false`, true},
		{`name ~ "adobo"`, true},
		{`name !~ "adobo"`, false},
		{`note = null`, true},
		{`missing = null`, true},
		{`name != null`, true},
		{`missing = ""`, true},
		{`name = 3`, false},
		{`name != 3`, true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			n, err := Parse(tt.expr)
			require.NoError(t, err)
			require.Equal(t, tt.want, Match(n, doc))
		})
	}
}

func TestCompare(t *testing.T) {
	a := gjson.Parse(`{"created":"2024-01-02","sort_order":2,"name":"b"}`)
	b := gjson.Parse(`{"created":"2024-01-01","sort_order":10,"name":"a"}`)
	require.Equal(t, 1, Compare(a, b, []SortField{{Field: "created"}}))
	require.Equal(t, -1, Compare(a, b, []SortField{{Field: "created", Desc: true}}))
	require.Equal(t, -1, Compare(a, b, []SortField{{Field: "sort_order"}}))
	require.Equal(t, 0, Compare(a, a, []SortField{{Field: "name"}}))
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, v := range []string{`plain`, `it"s`, `back\slash`, `" || id != "`} {
		n, err := Parse(Eq("name", v))
		require.NoError(t, err)
		require.Equal(t, &Comparison{Field: "name", Op: OpEq, Value: v}, n)
	}
}

func TestAnd(t *testing.T) {
	require.Equal(t, `a = "1"`, And(`a = "1"`, "", "  "))
	require.Equal(t, `(a = "1") && (b = 2 || c = 3)`, And(`a = "1"`, `b = 2 || c = 3`))
	require.Equal(t, "", And())

	n, err := Parse(And(Eq("merchant_id", "m1"), `status = "placed" || status = "ready"`))
	require.NoError(t, err)
	require.True(t, n.(*Logical).And)
}
