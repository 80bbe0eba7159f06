package operation

import "fmt"

// Kind identifies an operation in the closed operation set.
type Kind int

const (
	KindAdd Kind = iota + 1
	KindSubtract
	KindMultiply
	KindDivide
	KindPower
	KindSqrt
	KindFactorial
	KindPercentage
	KindCompoundInterest
	KindLogarithm
	KindNaturalLog
	KindSine
	KindCosine
	KindTangent
	KindAverage
	KindMortgage
	KindIRR
	KindMetersToFeet
	KindFeetToMeters
	KindCelsiusToFahrenheit
	KindFahrenheitToCelsius
	KindCelsiusToKelvin
	KindKelvinToCelsius
	KindKilogramsToPounds
	KindPoundsToKilograms
	KindSquareMetersToAcres
	KindAcresToSquareMeters
)

// ArityClass describes how many arguments an operation accepts.
type ArityClass int

const (
	Unary ArityClass = iota + 1
	Binary
	Ternary
	Variadic
)

// String returns the lowercase class name.
func (a ArityClass) String() string {
	switch a {
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	case Ternary:
		return "ternary"
	case Variadic:
		return "variadic"
	default:
		return fmt.Sprintf("arity(%d)", int(a))
	}
}

// Hint tells the presentation layer how a result should be rendered.
type Hint int

const (
	// HintPlain renders a grouped number with up to 6 fraction digits.
	HintPlain Hint = iota
	// HintCurrency renders a monetary amount in the configured currency.
	HintCurrency
	// HintPercent renders a percentage with 2 fraction digits.
	HintPercent
)

// String returns the hint name used in JSON output and scenario files.
func (h Hint) String() string {
	switch h {
	case HintCurrency:
		return "currency"
	case HintPercent:
		return "percent"
	default:
		return "plain"
	}
}

// Func is a pure numeric handler. Out-of-domain input returns an error
// wrapping ErrDomain.
type Func func(args []float64) (float64, error)

// Operation is a named handler with its arity and display hint.
type Operation struct {
	Kind  Kind
	Name  string
	Arity ArityClass

	// MinArgs and MaxArgs bound the argument count. MaxArgs < 0 means
	// unbounded.
	MinArgs int
	MaxArgs int

	Hint Hint
	Fn   Func
}

// Accepts reports whether n arguments satisfy the operation's arity.
func (op Operation) Accepts(n int) bool {
	if n < op.MinArgs {
		return false
	}
	return op.MaxArgs < 0 || n <= op.MaxArgs
}

// Call invokes the handler after checking the argument count.
func (op Operation) Call(args ...float64) (float64, error) {
	if !op.Accepts(len(args)) {
		return 0, &ArityError{Op: op.Name, Min: op.MinArgs, Max: op.MaxArgs, Got: len(args)}
	}
	return op.Fn(args)
}
