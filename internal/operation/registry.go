package operation

import "fmt"

// Registry maps operation names to operations. It is read-only once built.
type Registry struct {
	ops   map[string]Operation
	order []string
}

// New builds a registry from ops. Names must be unique and non-empty and
// every operation needs a handler.
func New(ops ...Operation) (*Registry, error) {
	r := &Registry{
		ops:   make(map[string]Operation, len(ops)),
		order: make([]string, 0, len(ops)),
	}
	for _, op := range ops {
		if op.Name == "" {
			return nil, fmt.Errorf("operation kind %d has no name", op.Kind)
		}
		if op.Fn == nil {
			return nil, fmt.Errorf("operation %q has no handler", op.Name)
		}
		if _, dup := r.ops[op.Name]; dup {
			return nil, fmt.Errorf("duplicate operation %q", op.Name)
		}
		r.ops[op.Name] = op
		r.order = append(r.order, op.Name)
	}
	return r, nil
}

// Default returns the registry of every built-in operation.
func Default() *Registry {
	r, err := New(builtins()...)
	if err != nil {
		panic(err) // the builtin table is static
	}
	return r
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns operation names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.order)
}

func builtins() []Operation {
	return []Operation{
		binary(KindAdd, "add", HintPlain, total2(Add)),
		binary(KindSubtract, "subtract", HintPlain, total2(Subtract)),
		binary(KindMultiply, "multiply", HintPlain, total2(Multiply)),
		binary(KindDivide, "divide", HintPlain, partial2(Divide)),
		binary(KindPower, "power", HintPlain, total2(Power)),
		unary(KindSqrt, "sqrt", HintPlain, partial1(Sqrt)),
		unary(KindFactorial, "factorial", HintPlain, partial1(Factorial)),
		binary(KindPercentage, "percentage", HintPlain, total2(Percentage)),
		ternary(KindCompoundInterest, "compoundInterest", HintCurrency, total3(CompoundInterest)),
		{
			Kind: KindLogarithm, Name: "logarithm", Arity: Binary,
			MinArgs: 1, MaxArgs: 2, Hint: HintPlain,
			Fn: func(args []float64) (float64, error) {
				base := 10.0
				if len(args) == 2 {
					base = args[1]
				}
				return Logarithm(args[0], base)
			},
		},
		unary(KindNaturalLog, "naturalLog", HintPlain, partial1(NaturalLog)),
		unary(KindSine, "sine", HintPlain, total1(Sine)),
		unary(KindCosine, "cosine", HintPlain, total1(Cosine)),
		unary(KindTangent, "tangent", HintPlain, total1(Tangent)),
		variadic(KindAverage, "average", HintPlain, func(args []float64) (float64, error) {
			return Average(args...)
		}),
		ternary(KindMortgage, "mortgage", HintCurrency, partial3(Mortgage)),
		variadic(KindIRR, "irr", HintPercent, func(args []float64) (float64, error) {
			return IRR(args, DefaultIRRGuess)
		}),
		unary(KindMetersToFeet, "metersToFeet", HintPlain, total1(MetersToFeet)),
		unary(KindFeetToMeters, "feetToMeters", HintPlain, total1(FeetToMeters)),
		unary(KindCelsiusToFahrenheit, "celsiusToFahrenheit", HintPlain, total1(CelsiusToFahrenheit)),
		unary(KindFahrenheitToCelsius, "fahrenheitToCelsius", HintPlain, total1(FahrenheitToCelsius)),
		unary(KindCelsiusToKelvin, "celsiusToKelvin", HintPlain, total1(CelsiusToKelvin)),
		unary(KindKelvinToCelsius, "kelvinToCelsius", HintPlain, total1(KelvinToCelsius)),
		unary(KindKilogramsToPounds, "kilogramsToPounds", HintPlain, total1(KilogramsToPounds)),
		unary(KindPoundsToKilograms, "poundsToKilograms", HintPlain, total1(PoundsToKilograms)),
		unary(KindSquareMetersToAcres, "squareMetersToAcres", HintPlain, total1(SquareMetersToAcres)),
		unary(KindAcresToSquareMeters, "acresToSquareMeters", HintPlain, total1(AcresToSquareMeters)),
	}
}

func unary(k Kind, name string, h Hint, fn Func) Operation {
	return Operation{Kind: k, Name: name, Arity: Unary, MinArgs: 1, MaxArgs: 1, Hint: h, Fn: fn}
}

func binary(k Kind, name string, h Hint, fn Func) Operation {
	return Operation{Kind: k, Name: name, Arity: Binary, MinArgs: 2, MaxArgs: 2, Hint: h, Fn: fn}
}

func ternary(k Kind, name string, h Hint, fn Func) Operation {
	return Operation{Kind: k, Name: name, Arity: Ternary, MinArgs: 3, MaxArgs: 3, Hint: h, Fn: fn}
}

// variadic operations accept zero arguments so the handler can report the
// empty set as a domain error.
func variadic(k Kind, name string, h Hint, fn Func) Operation {
	return Operation{Kind: k, Name: name, Arity: Variadic, MinArgs: 0, MaxArgs: -1, Hint: h, Fn: fn}
}

func total1(f func(float64) float64) Func {
	return func(args []float64) (float64, error) { return f(args[0]), nil }
}

func total2(f func(float64, float64) float64) Func {
	return func(args []float64) (float64, error) { return f(args[0], args[1]), nil }
}

func total3(f func(float64, float64, float64) float64) Func {
	return func(args []float64) (float64, error) { return f(args[0], args[1], args[2]), nil }
}

func partial1(f func(float64) (float64, error)) Func {
	return func(args []float64) (float64, error) { return f(args[0]) }
}

func partial2(f func(float64, float64) (float64, error)) Func {
	return func(args []float64) (float64, error) { return f(args[0], args[1]) }
}

func partial3(f func(float64, float64, float64) (float64, error)) Func {
	return func(args []float64) (float64, error) { return f(args[0], args[1], args[2]) }
}
