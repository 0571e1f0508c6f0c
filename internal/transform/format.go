package transform

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Env carries the ambient inputs some computed fields depend on. A zero Now
// means the current instant.
type Env struct {
	Now         time.Time
	MenuBaseURL string
}

func (e Env) now() time.Time {
	if e.Now.IsZero() {
		return time.Now()
	}
	return e.Now
}

const currencySymbol = "₱"

// FormatCurrency renders amount as Philippine pesos with two decimals and
// grouped thousands, e.g. "₱1,234.50".
func FormatCurrency(amount float64) string {
	return FormatDecimal(decimal.NewFromFloat(amount))
}

// FormatDecimal is FormatCurrency for values already held as decimals.
func FormatDecimal(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	return lo.Ternary(neg, "-", "") + currencySymbol + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// timeLayouts are the timestamp formats the datastore is known to emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts any of the datastore timestamp layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimeAgo renders ts relative to now: "Just now", "{n}m ago",
// "{n}h ago", then a M/D/YYYY date. Future timestamps read as "Just now".
// Unparseable input yields "".
func FormatTimeAgo(ts string, now time.Time) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ""
	}
	minutes := int(math.Floor(now.Sub(t).Minutes()))
	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case minutes/60 < 24:
		return fmt.Sprintf("%dh ago", minutes/60)
	}
	return t.In(now.Location()).Format("1/2/2006")
}

// Label upper-cases the first letter and spaces out underscores:
// "in_progress" -> "In progress".
func Label(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// OrderNumber is "#" plus the last six characters of id, upper-cased.
func OrderNumber(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return "#" + strings.ToUpper(id)
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
