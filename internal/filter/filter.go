// Package filter parses the datastore's filter and sort expressions:
//
//	merchant_id = "abc" && (status = "placed" || status = "ready")
//	-created,name
//
// A filter is a boolean combination of `field op literal` comparisons.
// Operators are = != > >= < <= ~ (contains) and !~ (does not contain).
// Literals are quoted strings, numbers, true, false and null.
package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Op string

const (
	OpEq          Op = "="
	OpNeq         Op = "!="
	OpGt          Op = ">"
	OpGte         Op = ">="
	OpLt          Op = "<"
	OpLte         Op = "<="
	OpContains    Op = "~"
	OpNotContains Op = "!~"
)

// Node is either a *Logical or a *Comparison.
type Node interface{ isNode() }

// Logical joins two nodes with && or ||.
type Logical struct {
	And         bool
	Left, Right Node
}

// Comparison tests one field. Value is a string, float64, bool or nil.
type Comparison struct {
	Field string
	Op    Op
	Value any
}

func (*Logical) isNode()    {}
func (*Comparison) isNode() {}

var ErrSyntax = errors.New("filter syntax error")

type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("filter: %s at offset %d", e.Msg, e.Pos) }
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// Parse parses a filter expression. An empty expression yields a nil Node,
// which matches everything.
func Parse(expr string) (Node, error) {
	p := &parser{src: expr}
	p.skipSpace()
	if p.eof() {
		return nil, nil
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return n, nil
}

// Fields lists the field names referenced by n, in order of appearance.
func Fields(n Node) []string {
	switch v := n.(type) {
	case *Logical:
		return append(Fields(v.Left), Fields(v.Right)...)
	case *Comparison:
		return []string{v.Field}
	}
	return nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) accept(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept("||") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Logical{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.accept("&&") {
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Logical{And: true, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	if p.accept("(") {
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, p.errorf("missing )")
		}
		return n, nil
	}
	field, err := p.parseField()
	if err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	val, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if (op == OpContains || op == OpNotContains) && !isString(val) {
		return nil, p.errorf("operator %s needs a string", op)
	}
	return &Comparison{Field: field, Op: op, Value: val}, nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func (p *parser) parseField() (string, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (p.pos > start && c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", p.errorf("expected field name")
	}
	return p.src[start:p.pos], nil
}

// Longest operators first so ">=" is not read as ">".
var ops = []Op{OpNotContains, OpNeq, OpGte, OpLte, OpEq, OpGt, OpLt, OpContains}

func (p *parser) parseOp() (Op, error) {
	for _, op := range ops {
		if p.accept(string(op)) {
			return op, nil
		}
	}
	return "", p.errorf("expected operator")
}

func (p *parser) parseLiteral() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("expected value")
	}
	switch c := p.src[p.pos]; {
	case c == '"' || c == '\'':
		return p.parseString(c)
	case c == '-' || (c >= '0' && c <= '9'):
		start := p.pos
		p.pos++
		for !p.eof() && strings.ContainsRune("0123456789.eE+-", rune(p.src[p.pos])) {
			p.pos++
		}
		f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			p.pos = start
			return nil, p.errorf("bad number")
		}
		return f, nil
	}
	for word, v := range map[string]any{"true": true, "false": false, "null": nil} {
		if p.acceptWord(word) {
			return v, nil
		}
	}
	return nil, p.errorf("expected value")
}

func (p *parser) acceptWord(w string) bool {
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, w) {
		return false
	}
	if len(rest) > len(w) {
		c := rest[len(w)]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return false
		}
	}
	p.pos += len(w)
	return true
}

func (p *parser) parseString(quote byte) (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c == quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}

// Quote renders s as a double-quoted filter literal.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// Eq renders `field = "value"` with value quoted.
func Eq(field, value string) string {
	return field + " = " + Quote(value)
}

// And joins non-empty expressions with &&, parenthesising each.
func And(exprs ...string) string {
	var parts []string
	for _, e := range exprs {
		if strings.TrimSpace(e) != "" {
			parts = append(parts, "("+e+")")
		}
	}
	if len(parts) == 1 {
		return strings.TrimSuffix(strings.TrimPrefix(parts[0], "("), ")")
	}
	return strings.Join(parts, " && ")
}

// SortField is one key of a sort expression.
type SortField struct {
	Field string
	Desc  bool
}

// ParseSort parses "-created,name". A leading - sorts descending, + or no
// prefix ascending.
func ParseSort(expr string) ([]SortField, error) {
	var out []SortField
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f := SortField{}
		switch part[0] {
		case '-':
			f.Desc = true
			part = part[1:]
		case '+':
			part = part[1:]
		}
		if !validField(part) {
			return nil, &SyntaxError{Msg: fmt.Sprintf("bad sort field %q", part)}
		}
		f.Field = part
		out = append(out, f)
	}
	return out, nil
}

func validField(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}
