package wizard

import (
	"context"
	"net/url"
	"sync"

	"github.com/ataboo/go-furglo-web/pkg/apiclient"
	"github.com/ataboo/go-furglo-web/pkg/constants"
	"github.com/ataboo/go-furglo-web/pkg/validation"
	"github.com/friendsofgo/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoProfession   = errors.New("no profession selected")
	ErrNotFinalStep   = errors.New("submit is only available from the final step")
	ErrSubmitted      = errors.New("registration already submitted")
	ErrSubmitInFlight = errors.New("registration submit in progress")
)

type Registrar interface {
	RegisterProfessional(ctx context.Context, payload interface{}) (*apiclient.AuthResponse, error)
}

type Notifier interface {
	Error(message string) string
	Critical(message string) string
	Success(message string) string
}

// Registration drives the professional sign-up forms. One form is active at
// a time; a successful submit makes the controller inert.
type Registration struct {
	mu         sync.Mutex
	registrar  Registrar
	notifier   Notifier
	logger     logrus.FieldLogger
	forms      map[ProviderType]*Form
	active     *Form
	submitting bool
	submitted  bool
}

func NewRegistration(registrar Registrar, notifier Notifier, logger logrus.FieldLogger) *Registration {
	return &Registration{
		registrar: registrar,
		notifier:  notifier,
		logger:    logger,
		forms:     map[ProviderType]*Form{},
	}
}

// SelectProfession shows the form for p at step 1 and hides any other.
func (r *Registration) SelectProfession(p ProviderType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitted {
		return ErrSubmitted
	}

	form, ok := r.forms[p]
	if !ok {
		var err error
		if form, err = NewForm(p); err != nil {
			return err
		}
		r.forms[p] = form
	}

	form.Reset()
	form.Set(FieldProfessionType, p.LegacyProfessionType())
	r.active = form

	if p.LegacyProfessionType() != p.ProfessionType() {
		r.logger.WithFields(logrus.Fields{
			"provider":        p,
			"profession_type": p.LegacyProfessionType(),
			"mapped_type":     p.ProfessionType(),
		}).Warn("selected provider maps to a different backend profession type")
	}

	return nil
}

// Active returns the selected provider, if any.
func (r *Registration) Active() (ProviderType, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return "", false
	}

	return r.active.Provider(), true
}

func (r *Registration) activeForm() (*Form, error) {
	if r.submitted {
		return nil, ErrSubmitted
	}

	if r.active == nil {
		return nil, ErrNoProfession
	}

	return r.active, nil
}

func (r *Registration) Set(name string, values ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	form, err := r.activeForm()
	if err != nil {
		return err
	}

	form.Set(name, values...)

	return nil
}

func (r *Registration) Merge(values url.Values) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	form, err := r.activeForm()
	if err != nil {
		return err
	}

	form.Merge(values)

	return nil
}

// SetCity fills the city field of the active form, typically from a
// geolocation lookup.
func (r *Registration) SetCity(city string) error {
	return r.Set("city", city)
}

// Next validates the current step and advances. Validation failures are
// surfaced through the notifier.
func (r *Registration) Next() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	form, err := r.activeForm()
	if err != nil {
		return err
	}

	if err := form.Next(); err != nil {
		if vErr, ok := err.(*validation.Error); ok {
			r.notifier.Error(vErr.Message)
		}

		return err
	}

	return nil
}

func (r *Registration) Prev() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	form, err := r.activeForm()
	if err != nil {
		return err
	}

	return form.Prev()
}

// Cancel hides the active form and discards every entered value.
func (r *Registration) Cancel() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitted {
		return ErrSubmitted
	}

	if r.submitting {
		return ErrSubmitInFlight
	}

	r.active = nil
	r.forms = map[ProviderType]*Form{}

	return nil
}

// Submit gathers every field of the active form, validates the payload and
// registers the professional. On failure the form stays on its final step
// and may be submitted again.
func (r *Registration) Submit(ctx context.Context) (*apiclient.AuthResponse, error) {
	payload, err := r.beginSubmit()
	if err != nil {
		return nil, err
	}

	defer r.endSubmit()

	resp, err := r.registrar.RegisterProfessional(ctx, payload)
	if err != nil {
		r.logger.WithError(err).Warn("professional registration failed")
		r.notifier.Error(apiclient.Message(err))
		return nil, err
	}

	r.mu.Lock()
	r.submitted = true
	r.mu.Unlock()

	r.notifier.Success(constants.MsgRegistrationSuccess)

	return resp, nil
}

func (r *Registration) beginSubmit() (Payload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitted {
		return nil, ErrSubmitted
	}

	if r.submitting {
		return nil, ErrSubmitInFlight
	}

	if r.active == nil {
		r.notifier.Error(constants.ErrMsgSelectProvider)
		return nil, &validation.Error{Field: FieldProfessionType, Message: constants.ErrMsgSelectProvider}
	}

	form := r.active
	if !form.IsFinalStep() {
		return nil, ErrNotFinalStep
	}

	if err := form.ValidateStep(); err != nil {
		r.notifier.Critical(apiclient.Message(err))
		return nil, err
	}

	payload, err := BuildPayload(form.Provider(), form.Values())
	if err != nil {
		return nil, err
	}

	if err := ValidatePayload(payload); err != nil {
		r.notifier.Error(apiclient.Message(err))
		return nil, err
	}

	r.submitting = true

	return payload, nil
}

func (r *Registration) endSubmit() {
	r.mu.Lock()
	r.submitting = false
	r.mu.Unlock()
}

type View struct {
	Providers  []ProviderType `json:"providers"`
	Provider   ProviderType   `json:"provider,omitempty"`
	State      *WizardState   `json:"state,omitempty"`
	Step       *Step          `json:"step,omitempty"`
	Focused    string         `json:"focused,omitempty"`
	Submitting bool           `json:"submitting"`
	Submitted  bool           `json:"submitted"`
}

func (r *Registration) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := View{
		Providers:  AllProviders,
		Submitting: r.submitting,
		Submitted:  r.submitted,
	}

	if r.active != nil {
		state := r.active.State()
		step := r.active.CurrentStep()
		v.Provider = r.active.Provider()
		v.State = &state
		v.Step = &step
		v.Focused = r.active.Focused()
	}

	return v
}
