package operation

import "math"

// maxFactorial is the largest n whose factorial fits in a float64.
const maxFactorial = 170

func Add(a, b float64) float64      { return a + b }
func Subtract(a, b float64) float64 { return a - b }
func Multiply(a, b float64) float64 { return a * b }

// Divide returns a/b. A zero divisor is a domain error.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, domainErr("divide", "division by zero")
	}
	return a / b, nil
}

// Power follows math.Pow semantics.
func Power(base, exp float64) float64 {
	return math.Pow(base, exp)
}

// Sqrt returns the square root of a non-negative value.
func Sqrt(x float64) (float64, error) {
	if x < 0 || math.IsNaN(x) {
		return 0, domainErr("sqrt", "square root of a negative number")
	}
	return math.Sqrt(x), nil
}

// Factorial returns n! for a non-negative integer n. Values above 170
// overflow to +Inf.
func Factorial(n float64) (float64, error) {
	if n < 0 || math.IsNaN(n) || n != math.Trunc(n) {
		return 0, domainErr("factorial", "factorial requires a non-negative integer")
	}
	if n > maxFactorial {
		return math.Inf(1), nil
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result, nil
}

// Percentage returns percent % of value.
func Percentage(value, percent float64) float64 {
	return value * percent / 100
}

// Logarithm returns log_base(value).
func Logarithm(value, base float64) (float64, error) {
	if !(value > 0) {
		return 0, domainErr("logarithm", "logarithm of a non-positive number")
	}
	if !(base > 0) || base == 1 {
		return 0, domainErr("logarithm", "logarithm base must be positive and not 1")
	}
	return math.Log(value) / math.Log(base), nil
}

// NaturalLog returns ln(value).
func NaturalLog(value float64) (float64, error) {
	if !(value > 0) {
		return 0, domainErr("naturalLog", "logarithm of a non-positive number")
	}
	return math.Log(value), nil
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Sine, Cosine and Tangent take the angle in degrees.
func Sine(degrees float64) float64    { return math.Sin(radians(degrees)) }
func Cosine(degrees float64) float64  { return math.Cos(radians(degrees)) }
func Tangent(degrees float64) float64 { return math.Tan(radians(degrees)) }

// Average returns the arithmetic mean. An empty set is a domain error.
func Average(values ...float64) (float64, error) {
	if len(values) == 0 {
		return 0, domainErr("average", "average of an empty set")
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}
