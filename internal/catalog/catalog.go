package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/abacus/internal/calc"
)

//go:embed schema.cue
var schemaSource []byte

//go:embed forms.cue
var formsSource []byte

// Slot is one input field of a form.
type Slot struct {
	Label string   `json:"label"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Bounds returns the slot's inclusive range, using infinities for missing
// bounds.
func (s Slot) Bounds() (min, max float64) {
	min, max = math.Inf(-1), math.Inf(1)
	if s.Min != nil {
		min = *s.Min
	}
	if s.Max != nil {
		max = *s.Max
	}
	return min, max
}

// Form binds an operation to its input slots.
type Form struct {
	// Name is the form's label in the catalog.
	Name string `json:"-"`

	// Operation defaults to Name.
	Operation string `json:"operation,omitempty"`

	Title   string `json:"title"`
	Section string `json:"section"`
	Inputs  []Slot `json:"inputs"`

	// List marks a single comma-separated field whose items all use the
	// first slot's range.
	List bool `json:"list,omitempty"`
}

// Descriptors pairs raw values with the form's slot ranges. Values beyond
// the declared slots are unbounded.
//
// List forms split every raw value on commas. A blank value adds nothing and
// one trailing comma is tolerated, but a blank item between commas is kept
// so the pipeline reports it as an invalid number.
func (f Form) Descriptors(raw []string) []calc.Input {
	if f.List {
		var items []string
		for _, r := range raw {
			items = append(items, splitList(r)...)
		}
		raw = items
	}

	inputs := make([]calc.Input, len(raw))
	for i, r := range raw {
		slot := i
		if f.List {
			slot = 0
		}
		if slot < len(f.Inputs) {
			min, max := f.Inputs[slot].Bounds()
			inputs[i] = calc.Bounded(r, min, max)
		} else {
			inputs[i] = calc.Unbounded(r)
		}
	}
	return inputs
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	if items[len(items)-1] == "" {
		items = items[:len(items)-1]
	}
	return items
}

// Catalog is an ordered set of forms.
type Catalog struct {
	forms []Form
	byOp  map[string]int
}

// Forms returns the forms in declaration order.
func (c *Catalog) Forms() []Form {
	out := make([]Form, len(c.forms))
	copy(out, c.forms)
	return out
}

// Form returns the form for an operation.
func (c *Catalog) Form(op string) (Form, bool) {
	i, ok := c.byOp[op]
	if !ok {
		return Form{}, false
	}
	return c.forms[i], true
}

// Len returns the number of forms.
func (c *Catalog) Len() int {
	return len(c.forms)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load("forms.cue", formsSource)
	if err != nil {
		panic(fmt.Sprintf("embedded form catalog: %v", err))
	}
	return c
}

// LoadFile reads and decodes a catalog file.
func LoadFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Field: "file", Message: fmt.Sprintf("reading catalog: %v", err)}
	}
	return Load(path, src)
}

// Load compiles src, unifies it with the schema and decodes every form.
func Load(filename string, src []byte) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	data := ctx.CompileBytes(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	formsVal := schema.Unify(data).LookupPath(cue.ParsePath("form"))
	if !formsVal.Exists() {
		return nil, &LoadError{Field: "form", Message: "no forms defined", Pos: data.Pos()}
	}
	if err := formsVal.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	iter, err := formsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	c := &Catalog{byOp: make(map[string]int)}
	for iter.Next() {
		f, err := decodeForm(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		if _, dup := c.byOp[f.Operation]; dup {
			return nil, &LoadError{
				Field:   "form." + f.Name,
				Message: fmt.Sprintf("operation %q already has a form", f.Operation),
				Pos:     iter.Value().Pos(),
			}
		}
		c.byOp[f.Operation] = len(c.forms)
		c.forms = append(c.forms, f)
	}

	if len(c.forms) == 0 {
		return nil, &LoadError{Field: "form", Message: "no forms defined", Pos: formsVal.Pos()}
	}
	return c, nil
}

func decodeForm(name string, v cue.Value) (Form, error) {
	var f Form
	if err := v.Decode(&f); err != nil {
		return Form{}, formatCUEError(err)
	}
	f.Name = name
	if f.Operation == "" {
		f.Operation = name
	}
	if len(f.Inputs) == 0 {
		return Form{}, &LoadError{Field: "form." + name + ".inputs", Message: "at least one input is required", Pos: v.Pos()}
	}
	return f, nil
}

// LoadError reports a catalog that could not be compiled or decoded.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	loadErr := &LoadError{Field: "cue", Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
