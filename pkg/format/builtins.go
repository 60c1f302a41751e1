package format

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-presenter/internal/naming"
)

// Built-in formatter names.
const (
	NumberWithPrecision = "number_with_precision"
	NumberToCurrency    = "number_to_currency"
	NumberWithDelimiter = "number_with_delimiter"
	NumberToPercentage  = "number_to_percentage"
	Precision           = "precision"
	Humanize            = "humanize"
	Titleize            = "titleize"
	Truncate            = "truncate"
)

// DefaultTruncateLimit is the truncate length when no argument is given.
const DefaultTruncateLimit = 30

const truncateOmission = "..."

func registerBuiltins(r *Registry) {
	r.MustRegister(NumberWithPrecision, numberWithPrecision)
	r.MustRegister(Precision, numberWithPrecision)
	r.MustRegister(NumberToCurrency, numberToCurrency)
	r.MustRegister(NumberWithDelimiter, numberWithDelimiter)
	r.MustRegister(NumberToPercentage, numberToPercentage)
	r.MustRegister(Humanize, textFormatter(naming.Humanize))
	r.MustRegister(Titleize, textFormatter(naming.Titleize))
	r.MustRegister(Truncate, truncate)
}

func numberWithPrecision(value any, arg string, opts Options) (string, error) {
	f, ok := numeric(value)
	if !ok {
		return passthrough(value), nil
	}
	precision, err := precisionArg(arg, opts.Precision)
	if err != nil {
		return "", err
	}
	p := message.NewPrinter(opts.Locale)
	return p.Sprint(number.Decimal(f, number.Scale(precision), number.NoSeparator())), nil
}

func numberToCurrency(value any, arg string, opts Options) (string, error) {
	f, ok := numeric(value)
	if !ok {
		return passthrough(value), nil
	}
	precision, err := precisionArg(arg, opts.Precision)
	if err != nil {
		return "", err
	}
	p := message.NewPrinter(opts.Locale)
	amount := p.Sprint(number.Decimal(abs(f), number.Scale(precision)))
	if f < 0 {
		return "-" + opts.Unit + amount, nil
	}
	return opts.Unit + amount, nil
}

func numberWithDelimiter(value any, _ string, opts Options) (string, error) {
	f, ok := numeric(value)
	if !ok {
		return passthrough(value), nil
	}
	p := message.NewPrinter(opts.Locale)
	return p.Sprint(number.Decimal(f)), nil
}

func numberToPercentage(value any, arg string, opts Options) (string, error) {
	f, ok := numeric(value)
	if !ok {
		return passthrough(value), nil
	}
	precision, err := precisionArg(arg, opts.Precision)
	if err != nil {
		return "", err
	}
	p := message.NewPrinter(opts.Locale)
	return p.Sprint(number.Decimal(f, number.Scale(precision), number.NoSeparator())) + "%", nil
}

func textFormatter(fn func(string) string) Func {
	return func(value any, _ string, _ Options) (string, error) {
		if value == nil {
			return "", nil
		}
		return fn(fmt.Sprint(value)), nil
	}
}

func truncate(value any, arg string, _ Options) (string, error) {
	if value == nil {
		return "", nil
	}
	limit := DefaultTruncateLimit
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return "", fmt.Errorf("invalid length %q", arg)
		}
		limit = n
	}
	text := fmt.Sprint(value)
	if utf8.RuneCountInString(text) <= limit {
		return text, nil
	}
	keep := limit - utf8.RuneCountInString(truncateOmission)
	if keep <= 0 {
		return string([]rune(truncateOmission)[:limit]), nil
	}
	return string([]rune(text)[:keep]) + truncateOmission, nil
}

func precisionArg(arg string, fallback int) (int, error) {
	if arg == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid precision %q", arg)
	}
	return n, nil
}

// numeric converts value to a float64. Numeric strings are parsed; ok is
// false for nil and non-numbers.
func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case fmt.Stringer:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return numeric(rv.Elem().Interface())
	default:
		return 0, false
	}
}

func passthrough(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
