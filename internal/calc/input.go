package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Input is one raw value together with its inclusive range.
type Input struct {
	Value string
	Min   float64
	Max   float64
}

// Unbounded returns an Input accepting any number.
func Unbounded(value string) Input {
	return Input{Value: value, Min: math.Inf(-1), Max: math.Inf(1)}
}

// Bounded returns an Input restricted to [min, max].
func Bounded(value string, min, max float64) Input {
	return Input{Value: value, Min: min, Max: max}
}

// Values wraps raw strings as unbounded inputs.
func Values(raw ...string) []Input {
	inputs := make([]Input, len(raw))
	for i, r := range raw {
		inputs[i] = Unbounded(r)
	}
	return inputs
}

// ParseNumber parses a trimmed decimal or scientific literal. Empty input
// and NaN are rejected. Infinities are accepted, whether spelled out ("Inf")
// or reached by overflow ("1e400").
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Check reports whether in parses and lies within its range.
func (in Input) Check() bool {
	v, ok := ParseNumber(in.Value)
	return ok && in.inRange(v)
}

func (in Input) inRange(v float64) bool {
	return v >= in.Min && v <= in.Max
}
