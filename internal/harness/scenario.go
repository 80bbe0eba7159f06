package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/abacus/internal/calc"
)

// Scenario is a scripted sequence of calculations with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Locale is the BCP 47 tag used for messages and formatting.
	// Empty means "pl".
	Locale string `yaml:"locale,omitempty"`

	// Currency overrides the locale's currency (ISO 4217).
	Currency string `yaml:"currency,omitempty"`

	// Steps run in order through the calculation pipeline.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the trace after all steps ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one calculation.
type Step struct {
	Operation string    `yaml:"operation"`
	Inputs    InputList `yaml:"inputs"`

	// Expect is optional; without it the step only contributes to the trace.
	Expect *Expect `yaml:"expect,omitempty"`
}

// InputList is the inputs of a step. A null element (~) is kept as an
// empty value so it reaches the pipeline as an empty field.
type InputList []InputValue

// UnmarshalYAML decodes the sequence element by element. yaml.v3 never
// calls an element unmarshaler for a null node, so nulls are mapped here.
func (l *InputList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: inputs must be a list", node.Line)
	}
	out := make(InputList, len(node.Content))
	for i, el := range node.Content {
		if el.Kind == yaml.ScalarNode && el.ShortTag() == "!!null" {
			continue
		}
		if err := out[i].UnmarshalYAML(el); err != nil {
			return err
		}
	}
	*l = out
	return nil
}

// InputValue is a raw value with an optional range. In YAML it is either a
// scalar ("2", 2, "abc") or a mapping {value, min, max}.
type InputValue struct {
	Value string
	Min   *float64
	Max   *float64
}

// UnmarshalYAML accepts both the scalar and mapping forms.
func (in *InputValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			in.Value = ""
			return nil
		}
		in.Value = node.Value
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "value":
				if val.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: input value must be a scalar", val.Line)
				}
				in.Value = val.Value
			case "min", "max":
				var f float64
				if err := val.Decode(&f); err != nil {
					return fmt.Errorf("line %d: input %s: %w", val.Line, key.Value, err)
				}
				if key.Value == "min" {
					in.Min = &f
				} else {
					in.Max = &f
				}
			default:
				return fmt.Errorf("line %d: field %s not found in input", key.Line, key.Value)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: input must be a scalar or a mapping", node.Line)
	}
}

// Input converts the value to a pipeline input. Missing bounds are
// unbounded.
func (in InputValue) Input() calc.Input {
	i := calc.Unbounded(in.Value)
	if in.Min != nil {
		i.Min = *in.Min
	}
	if in.Max != nil {
		i.Max = *in.Max
	}
	return i
}

// Expect describes the expected outcome of a step.
type Expect struct {
	// OK is required: true for success, false for failure.
	OK *bool `yaml:"ok"`

	// Kind is the expected error kind (failures only).
	Kind string `yaml:"kind,omitempty"`

	// Value is the expected numeric result (successes only).
	Value *float64 `yaml:"value,omitempty"`

	// Tolerance is the allowed absolute difference for Value.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Formatted is the expected display string (successes only).
	Formatted *string `yaml:"formatted,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count, failure_count.
	Type string `yaml:"type"`

	// Operation is used by trace_contains and trace_count.
	Operation string `yaml:"operation,omitempty"`

	// Outcome optionally narrows trace_contains to "success" or "failure".
	Outcome string `yaml:"outcome,omitempty"`

	// Kind optionally narrows trace_contains to an error kind.
	Kind string `yaml:"kind,omitempty"`

	// Operations is the expected order (trace_order).
	Operations []string `yaml:"operations,omitempty"`

	// Count is the expected number of matches (trace_count, failure_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFailureCount  = "failure_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected to catch typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Operation == "" {
			return fmt.Errorf("steps[%d]: operation is required", i)
		}
		if step.Expect == nil {
			continue
		}
		if err := validateExpect(i, step.Expect); err != nil {
			return err
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateExpect(index int, e *Expect) error {
	if e.OK == nil {
		return fmt.Errorf("steps[%d].expect: ok is required", index)
	}
	if *e.OK {
		if e.Kind != "" {
			return fmt.Errorf("steps[%d].expect: kind is only valid when ok is false", index)
		}
	} else {
		if e.Value != nil || e.Formatted != nil {
			return fmt.Errorf("steps[%d].expect: value and formatted are only valid when ok is true", index)
		}
		if e.Kind != "" && !knownKind(e.Kind) {
			return fmt.Errorf("steps[%d].expect: unknown kind %q", index, e.Kind)
		}
	}
	if e.Tolerance < 0 {
		return fmt.Errorf("steps[%d].expect: tolerance must be non-negative", index)
	}
	return nil
}

func knownKind(k string) bool {
	switch calc.ErrorKind(k) {
	case calc.KindInvalidNumber, calc.KindOutOfRange, calc.KindDomainError,
		calc.KindUnknownOperation, calc.KindInvalidArity:
		return true
	}
	return false
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Operation == "" {
			return fmt.Errorf("assertions[%d]: operation is required for trace_contains", index)
		}
		switch a.Outcome {
		case "", OutcomeSuccess, OutcomeFailure:
		default:
			return fmt.Errorf("assertions[%d]: outcome must be success or failure", index)
		}
	case AssertTraceOrder:
		if len(a.Operations) == 0 {
			return fmt.Errorf("assertions[%d]: operations list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Operation == "" {
			return fmt.Errorf("assertions[%d]: operation is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFailureCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for failure_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
