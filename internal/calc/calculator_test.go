package calc

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/roach88/abacus/internal/format"
	"github.com/roach88/abacus/internal/operation"
)

func newTestCalculator(opts ...Option) *Calculator {
	base := []Option{
		WithPresenter(format.New(language.English, format.WithCurrency(currency.USD), format.WithCurrencyStyle(format.CurrencyCode))),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(operation.Default(), append(base, opts...)...)
}

func fmtFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

func TestCalculateArithmeticProperties(t *testing.T) {
	c := newTestCalculator()
	pairs := [][2]float64{{1, 2}, {-3.5, 7.25}, {1e9, 1e-9}, {0, -0}}

	for _, p := range pairs {
		a, b := fmtFloat(p[0]), fmtFloat(p[1])

		r := c.Evaluate("add", a, b)
		require.True(t, r.OK())
		assert.Equal(t, p[0]+p[1], r.Value)

		r = c.Evaluate("subtract", a, b)
		require.True(t, r.OK())
		assert.Equal(t, p[0]-p[1], r.Value)

		r = c.Evaluate("multiply", a, b)
		require.True(t, r.OK())
		assert.Equal(t, p[0]*p[1], r.Value)
	}
}

func TestCalculateFormatsResult(t *testing.T) {
	c := newTestCalculator()

	r := c.Evaluate("multiply", "1000", "1234.567")
	require.True(t, r.OK())
	assert.Equal(t, "1,234,567", r.Formatted)
	assert.Equal(t, operation.HintPlain, r.Hint)
	assert.Equal(t, "add", c.Evaluate("add", "1", "1").Operation)
}

func TestCalculateDivideByZero(t *testing.T) {
	c := newTestCalculator()
	for _, a := range []string{"0", "1", "-7.5"} {
		r := c.Evaluate("divide", a, "0")
		require.False(t, r.OK())
		assert.Equal(t, KindDomainError, r.Err.Kind)
		assert.Equal(t, "Invalid mathematical operation", r.Err.Message)
		assert.True(t, operation.IsDomainError(r.Err))
	}
}

func TestCalculateInvalidNumber(t *testing.T) {
	c := newTestCalculator()

	reg := operation.Default()
	for _, name := range []string{"add", "sqrt", "factorial", "average", "irr"} {
		op, _ := reg.Lookup(name)
		raw := make([]string, op.MinArgs)
		for i := range raw {
			raw[i] = "1"
		}
		raw = append(raw, "abc")

		r := c.Evaluate(name, raw...)
		require.False(t, r.OK(), name)
		assert.Equal(t, KindInvalidNumber, r.Err.Kind, name)
		assert.Equal(t, len(raw)-1, r.Err.Slot, name)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{" 12.5 ", 12.5, true},
		{"-3e2", -300, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"1,5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.raw)
		assert.Equal(t, tt.ok, ok, "ParseNumber(%q)", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseNumber(%q)", tt.raw)
		}
	}

	v, ok := ParseNumber("-Inf")
	require.True(t, ok)
	assert.True(t, math.IsInf(v, -1))

	v, ok = ParseNumber("1e400")
	require.True(t, ok, "overflow is an infinity, not a bad number")
	assert.True(t, math.IsInf(v, 1))

	v, ok = ParseNumber("-1e400")
	require.True(t, ok)
	assert.True(t, math.IsInf(v, -1))
}

func TestCalculateOverflowingInput(t *testing.T) {
	c := newTestCalculator()

	r := c.Evaluate("add", "1e400", "1")
	require.True(t, r.OK())
	assert.Equal(t, "∞", r.Formatted)

	r = c.Calculate("add", []Input{Bounded("1e400", 0, 100), Unbounded("1")})
	require.False(t, r.OK())
	assert.Equal(t, KindOutOfRange, r.Err.Kind)
}

func TestInputCheck(t *testing.T) {
	assert.True(t, Bounded("5", 0, 170).Check())
	assert.False(t, Bounded("171", 0, 170).Check())
	assert.False(t, Bounded("", 0, 170).Check())
	assert.True(t, Unbounded("1e400").Check())
}

func TestCalculateOutOfRangeBeforeInvocation(t *testing.T) {
	called := false
	reg, err := operation.New(operation.Operation{
		Name: "probe", Arity: operation.Unary, MinArgs: 1, MaxArgs: 1,
		Fn: func(args []float64) (float64, error) {
			called = true
			return args[0], nil
		},
	})
	require.NoError(t, err)

	c := New(reg, WithPresenter(format.New(language.English)), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r := c.Calculate("probe", []Input{Bounded("171", 0, 170)})

	require.False(t, r.OK())
	assert.False(t, called)
	assert.Equal(t, KindOutOfRange, r.Err.Kind)
	assert.Equal(t, 0, r.Err.Slot)
	assert.Equal(t, "Value must be between 0 and 170", r.Err.Message)
	assert.True(t, IsInputError(r.Err))
}

func TestCalculateOutOfRangeInfiniteBound(t *testing.T) {
	c := newTestCalculator()
	r := c.Calculate("sqrt", []Input{Bounded("-1", 0, math.Inf(1))})
	require.False(t, r.OK())
	assert.Equal(t, "Value must be between 0 and ∞", r.Err.Message)
}

func TestCalculateBoundsAreInclusive(t *testing.T) {
	c := newTestCalculator()
	r := c.Calculate("factorial", []Input{Bounded("170", 0, 170)})
	require.True(t, r.OK())

	r = c.Calculate("factorial", []Input{Bounded("0", 0, 170)})
	require.True(t, r.OK())
	assert.Equal(t, 1.0, r.Value)
}

func TestCalculateUnknownOperation(t *testing.T) {
	c := newTestCalculator()
	r := c.Evaluate("modulo", "1", "2")
	require.False(t, r.OK())
	assert.Equal(t, KindUnknownOperation, r.Err.Kind)
	assert.Equal(t, "Unknown operation: modulo", r.Err.Message)
	assert.Equal(t, -1, r.Err.Slot)
}

func TestCalculateInvalidArity(t *testing.T) {
	c := newTestCalculator()
	r := c.Evaluate("add", "1")
	require.False(t, r.OK())
	assert.Equal(t, KindInvalidArity, r.Err.Kind)

	var arityErr *operation.ArityError
	require.ErrorAs(t, r.Err, &arityErr)
	assert.Equal(t, 2, arityErr.Min)
}

func TestCalculateDomainFailures(t *testing.T) {
	c := newTestCalculator()
	tests := []struct {
		name string
		op   string
		raw  []string
	}{
		{"negative sqrt", "sqrt", []string{"-4"}},
		{"negative factorial", "factorial", []string{"-1"}},
		{"fractional factorial", "factorial", []string{"2.5"}},
		{"empty average", "average", nil},
		{"zero logarithm", "logarithm", []string{"0"}},
		{"base one logarithm", "logarithm", []string{"10", "1"}},
		{"non-positive ln", "naturalLog", []string{"-1"}},
		{"zero-rate mortgage", "mortgage", []string{"1000", "0", "10"}},
		{"NaN power", "power", []string{"-8", "0.3333333333333333"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.Evaluate(tt.op, tt.raw...)
			require.False(t, r.OK())
			assert.Equal(t, KindDomainError, r.Err.Kind)
			assert.Equal(t, KindDomainError, KindOf(r.Err))
		})
	}
}

func TestCalculateScenarios(t *testing.T) {
	c := newTestCalculator()

	r := c.Evaluate("average", "4", "5", "6")
	require.True(t, r.OK())
	assert.Equal(t, 5.0, r.Value)

	r = c.Evaluate("irr", "-100", "110")
	require.True(t, r.OK())
	assert.InDelta(t, 10.0, r.Value, 0.01)
	assert.Equal(t, "10.00%", r.Formatted)

	r = c.Evaluate("compoundInterest", "1000", "5", "10")
	require.True(t, r.OK())
	assert.InDelta(t, 1628.89, r.Value, 0.01)
	assert.Equal(t, "USD 1,628.89", r.Formatted)
	assert.Equal(t, operation.HintCurrency, r.Hint)

	r = c.Evaluate("logarithm", "100", "10")
	require.True(t, r.OK())
	assert.InDelta(t, 2.0, r.Value, 1e-12)

	r = c.Evaluate("naturalLog", "1")
	require.True(t, r.OK())
	assert.Equal(t, 0.0, r.Value)
	assert.Equal(t, "0", r.Formatted)
}

func TestCalculateInfiniteResultSucceeds(t *testing.T) {
	c := newTestCalculator()
	r := c.Evaluate("power", "10", "400")
	require.True(t, r.OK())
	assert.True(t, math.IsInf(r.Value, 1))
	assert.Equal(t, "∞", r.Formatted)
}

func TestCalculatePolishMessages(t *testing.T) {
	c := newTestCalculator(WithPresenter(format.New(language.Polish)))

	r := c.Evaluate("add", "abc", "1")
	require.False(t, r.OK())
	assert.Equal(t, "Nieprawidłowa wartość liczbowa", r.Message())

	r = c.Evaluate("divide", "1", "4")
	require.True(t, r.OK())
	assert.Equal(t, "0,25", r.Message())
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: KindOutOfRange, Message: "too big", Slot: 1}
	assert.Equal(t, "OUT_OF_RANGE: too big (input 2)", e.Error())

	e = &Error{Kind: KindDomainError, Message: "bad", Slot: -1}
	assert.Equal(t, "DOMAIN_ERROR: bad", e.Error())

	wrapped := fmt.Errorf("context: %w", e)
	assert.Equal(t, KindDomainError, KindOf(wrapped))
	assert.Equal(t, ErrorKind(""), KindOf(fmt.Errorf("plain")))
}
