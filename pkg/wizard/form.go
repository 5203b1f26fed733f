package wizard

import (
	"net/url"
	"sort"
	"strings"

	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/validation"
	"github.com/friendsofgo/errors"
)

var (
	ErrFirstStep = errors.New("already at the first step")
	ErrLastStep  = errors.New("already at the final step")
)

type WizardState struct {
	CurrentStep int   `json:"current_step"`
	TotalSteps  int   `json:"total_steps"`
	Completed   []int `json:"completed_steps"`
}

// Form is one profession-specific form instance and its step position.
type Form struct {
	schema    Schema
	values    url.Values
	current   int
	completed map[int]bool
	focused   string
}

func NewForm(provider ProviderType) (*Form, error) {
	schema, ok := SchemaFor(provider)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProvider, "%q", provider)
	}

	return &Form{
		schema:    schema,
		values:    url.Values{},
		current:   1,
		completed: map[int]bool{},
	}, nil
}

func (f *Form) Provider() ProviderType {
	return f.schema.Provider
}

func (f *Form) Schema() Schema {
	return f.schema
}

// Set replaces the values of one field. Setting no values clears it.
func (f *Form) Set(name string, values ...string) {
	if len(values) == 0 {
		delete(f.values, name)
		return
	}

	f.values[name] = append([]string(nil), values...)
}

// Merge sets every field present in values, leaving other fields untouched.
func (f *Form) Merge(values url.Values) {
	for name, vals := range values {
		f.Set(name, vals...)
	}
}

func (f *Form) Get(name string) string {
	return f.values.Get(name)
}

// Values is a copy of every field across all steps.
func (f *Form) Values() url.Values {
	out := make(url.Values, len(f.values))
	for name, vals := range f.values {
		out[name] = append([]string(nil), vals...)
	}

	return out
}

func (f *Form) State() WizardState {
	completed := make([]int, 0, len(f.completed))
	for step := range f.completed {
		completed = append(completed, step)
	}
	sort.Ints(completed)

	return WizardState{
		CurrentStep: f.current,
		TotalSteps:  len(f.schema.Steps),
		Completed:   completed,
	}
}

func (f *Form) CurrentStep() Step {
	return f.schema.Steps[f.current-1]
}

func (f *Form) IsFinalStep() bool {
	return f.current == len(f.schema.Steps)
}

// Focused is the field that failed the last validation, if any.
func (f *Form) Focused() string {
	return f.focused
}

// Next validates the current step and advances. The state is unchanged on a
// validation failure. At the final step it validates and returns ErrLastStep.
func (f *Form) Next() error {
	if err := f.ValidateStep(); err != nil {
		return err
	}

	f.completed[f.current] = true

	if f.IsFinalStep() {
		return ErrLastStep
	}

	f.current++

	return nil
}

// Prev moves back one step without validating.
func (f *Form) Prev() error {
	if f.current <= 1 {
		return ErrFirstStep
	}

	f.current--
	f.focused = ""

	return nil
}

// Reset returns to step 1 and clears completion marks. Values are kept.
func (f *Form) Reset() {
	f.current = 1
	f.completed = map[int]bool{}
	f.focused = ""
}

// ValidateStep checks the required fields of the current step in order and
// focuses the first failing one.
func (f *Form) ValidateStep() error {
	for _, field := range f.CurrentStep().Fields {
		if msg := f.validateField(field); msg != "" {
			f.focused = field.Name
			return &validation.Error{Field: field.Name, Message: msg}
		}
	}

	f.focused = ""

	return nil
}

func (f *Form) validateField(field Field) string {
	if !field.Required {
		return ""
	}

	value := strings.TrimSpace(f.values.Get(field.Name))
	if !validation.Required(value) {
		if field.RequiredMessage != "" {
			return field.RequiredMessage
		}

		return field.label() + " is required"
	}

	switch field.Kind {
	case KindEmail:
		if !validation.ValidateEmail(value) {
			return constants.ErrMsgEmailInvalid
		}
	case KindTel:
		if !validation.ValidatePhone(value) {
			return constants.ErrMsgPhoneInvalid
		}
	case KindPassword:
		return string(validation.ValidatePassword(value))
	}

	return ""
}
