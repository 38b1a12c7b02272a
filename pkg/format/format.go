package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default locale and currency for display. The store runs in Brazil;
// both are overridable through configuration.
var (
	DefaultLocale   = language.BrazilianPortuguese
	DefaultCurrency = currency.BRL
)

// Currency renders an amount with the locale's currency symbol and
// separators, rounded to 2 decimal places.
func Currency(amount decimal.Decimal, tag language.Tag, unit currency.Unit) string {
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount.Round(2).InexactFloat64())))
}

// BRL renders an amount in the default locale and currency.
func BRL(amount decimal.Decimal) string {
	return Currency(amount, DefaultLocale, DefaultCurrency)
}

// Round2 rounds to the 2 decimal places used at every display
// boundary, including message interpolation.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses the API's ISO date/datetime forms. It never panics:
// garbage yields a zero time and ok=false.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders a calendar date the way the store displays them.
func Date(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("02/01/2006")
}

// ParseAmount parses user-entered money with either a comma or a dot
// as the decimal separator. "1.234,56" and "1234.56" both parse.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots are thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
