package valueobject

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// SalaryRange is the numeric reading of a free-text compensation line.
// It never feeds the risk rules.
type SalaryRange struct {
	Min    decimal.Decimal
	Max    decimal.Decimal
	Period string
}

var salaryFigure = regexp.MustCompile(`\$\s?(\d[\d,]*(?:\.\d+)?)\s*([kK])?`)

var thousand = decimal.NewFromInt(1000)

// ParseSalaryRange extracts up to two dollar amounts from text. A single
// amount yields Min == Max. Text without any amount yields the zero range.
func ParseSalaryRange(text string) SalaryRange {
	matches := salaryFigure.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return SalaryRange{}
	}

	figures := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if m[2] != "" {
			d = d.Mul(thousand)
		}
		figures = append(figures, d)
	}
	if len(figures) == 0 {
		return SalaryRange{}
	}

	r := SalaryRange{Min: figures[0], Max: figures[0], Period: salaryPeriod(text)}
	if len(figures) == 2 {
		r.Min = decimal.Min(figures[0], figures[1])
		r.Max = decimal.Max(figures[0], figures[1])
	}
	return r
}

func salaryPeriod(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, "/hour", "/hr", "per hour", "an hour", "hourly"):
		return "hour"
	case containsAny(lowered, "/month", "/mo", "per month", "a month", "monthly"):
		return "month"
	case containsAny(lowered, "/year", "/yr", "per year", "a year", "annual", "yearly"):
		return "year"
	default:
		return ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IsZero reports whether nothing was parsed.
func (r SalaryRange) IsZero() bool {
	return r.Min.IsZero() && r.Max.IsZero() && r.Period == ""
}
