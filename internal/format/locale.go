package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/roach88/abacus/internal/operation"
)

// maxFractionDigits bounds the fraction digits shown for plain results.
const maxFractionDigits = 6

// CurrencyStyle selects how the currency is named next to an amount.
type CurrencyStyle int

const (
	// CurrencySymbol uses the locale's symbol, e.g. "zł".
	CurrencySymbol CurrencyStyle = iota
	// CurrencyCode uses the ISO 4217 code, e.g. "PLN".
	CurrencyCode
)

// Locale renders values and messages for one language tag.
// A Locale is immutable and safe for concurrent use.
type Locale struct {
	tag      language.Tag
	printer  *message.Printer
	currency currency.Unit
	style    CurrencyStyle
}

// Option configures a Locale.
type Option func(*Locale)

// WithCurrency overrides the currency derived from the language tag.
func WithCurrency(u currency.Unit) Option {
	return func(l *Locale) { l.currency = u }
}

// WithCurrencyStyle selects symbol or ISO code rendering.
func WithCurrencyStyle(s CurrencyStyle) Option {
	return func(l *Locale) { l.style = s }
}

// New returns a Locale for tag. The currency defaults to the tag's region
// currency.
func New(tag language.Tag, opts ...Option) *Locale {
	cur, _ := currency.FromTag(tag)
	l := &Locale{
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(messages)),
		currency: cur,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Parse builds a Locale from a BCP 47 tag and an optional ISO 4217 code.
func Parse(tag, code string, opts ...Option) (*Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	if code != "" {
		unit, err := currency.ParseISO(strings.ToUpper(code))
		if err != nil {
			return nil, fmt.Errorf("invalid currency %q: %w", code, err)
		}
		opts = append([]Option{WithCurrency(unit)}, opts...)
	}
	return New(t, opts...), nil
}

// Tag returns the language tag.
func (l *Locale) Tag() language.Tag { return l.tag }

// Currency returns the currency used for HintCurrency values.
func (l *Locale) Currency() currency.Unit { return l.currency }

// FormatValue renders v according to hint.
func (l *Locale) FormatValue(v float64, hint operation.Hint) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	switch hint {
	case operation.HintCurrency:
		return l.formatCurrency(v)
	case operation.HintPercent:
		return l.decimal(v, number.Scale(2)) + "%"
	default:
		return l.FormatNumber(v)
	}
}

// FormatNumber renders v with locale grouping and at most 6 fraction
// digits. Integers carry no fraction part.
func (l *Locale) FormatNumber(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	if v == math.Trunc(v) {
		return l.decimal(v, number.MaxFractionDigits(0))
	}
	return l.decimal(v, number.MaxFractionDigits(maxFractionDigits))
}

// FormatBound renders a range bound for error messages.
func (l *Locale) FormatBound(v float64) string {
	return l.FormatNumber(v)
}

// Message renders a catalog message in the locale's language.
func (l *Locale) Message(id MessageID, args ...string) string {
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a
	}
	return l.printer.Sprintf(string(id), vals...)
}

func (l *Locale) formatCurrency(v float64) string {
	scale, _ := currency.Standard.Rounding(l.currency)
	var name string
	if l.style == CurrencyCode {
		name = l.currency.String()
	} else {
		name = l.printer.Sprint(currency.Symbol(l.currency))
	}

	if !l.currencyPrefixed() {
		return l.decimal(v, number.Scale(scale)) + " " + name
	}
	amount := l.decimal(math.Abs(v), number.Scale(scale))
	sep := ""
	if l.style == CurrencyCode {
		sep = " "
	}
	if v < 0 {
		return "-" + name + sep + amount
	}
	return name + sep + amount
}

// prefixedCurrency lists the languages whose currency pattern puts the
// symbol before the amount ("$1,628.89"). Everything else appends it
// ("1628,89 zł").
var prefixedCurrency = map[string]bool{
	"en": true,
	"ja": true,
	"ko": true,
	"zh": true,
	"he": true,
	"th": true,
}

func (l *Locale) currencyPrefixed() bool {
	base, _ := l.tag.Base()
	return prefixedCurrency[base.String()]
}

// minGroupingTwo lists the languages that leave four-digit integers
// ungrouped ("1628,89", while "16289,00" is grouped).
var minGroupingTwo = map[string]bool{
	"pl": true,
	"es": true,
}

// decimal prints v with the locale's separators, applying the minimum
// grouping rule of the language.
func (l *Locale) decimal(v float64, opts ...number.Option) string {
	base, _ := l.tag.Base()
	if minGroupingTwo[base.String()] && math.Abs(v) < 10000 {
		opts = append(opts, number.NoSeparator())
	}
	return l.printer.Sprint(number.Decimal(v, opts...))
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	case math.IsNaN(v):
		return "NaN", true
	}
	return "", false
}

// Round renders v rounded to places fraction digits without locale
// decoration, trailing zeros trimmed. Non-finite values use strconv's
// spelling.
func Round(v float64, places int32) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(places).String()
}
