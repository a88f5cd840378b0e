package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/submit"
	"github.com/goliatone/go-careers/pkg/validation"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission of the same session has not finished.
var ErrSubmissionInFlight = errors.New("application: submission already in progress")

const (
	// MsgFixErrors is the status shown when validation fails.
	MsgFixErrors = "Please fill in the required fields."
	// MsgNotConfigured replaces the form of roles without a form.
	MsgNotConfigured = "Role form not configured. Please contact the administrator."
)

// Submitter sends a validated application.
type Submitter interface {
	Submit(ctx context.Context, role schema.RoleForm, state form.State) submit.Result
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, role schema.RoleForm, state form.State) submit.Result

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, role schema.RoleForm, state form.State) submit.Result {
	return f(ctx, role, state)
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithState seeds the session with previously entered values. The state
// must belong to the same role.
func WithState(state form.State) Option {
	return func(s *Session) {
		if state.Role().RoleID == s.role.RoleID {
			s.state = state
		}
	}
}

// Session drives one applicant's form for one role: it holds the entered
// values, the field errors, and the status line, and runs the submit
// lifecycle.
type Session struct {
	role      schema.RoleForm
	submitter Submitter
	logger    *zap.Logger

	mu       sync.RWMutex
	state    form.State
	errors   validation.Errors
	status   Status
	inFlight atomic.Bool
}

// NewSession activates roleID. Unknown roles return
// schema.ErrRoleNotConfigured.
func NewSession(engine *form.Engine, roleID string, submitter Submitter, opts ...Option) (*Session, error) {
	if engine == nil {
		return nil, errors.New("application: engine is required")
	}
	if submitter == nil {
		return nil, errors.New("application: submitter is required")
	}
	role, err := engine.Role(roleID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		role:      role,
		submitter: submitter,
		logger:    zap.NewNop(),
		state:     form.Initialize(role),
		errors:    validation.Errors{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Role returns the active role form.
func (s *Session) Role() schema.RoleForm {
	return s.role
}

// SetValue updates one field.
func (s *Session) SetValue(name string, value form.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.SetValue(name, value)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// ToggleOption adds or removes one checkbox-group option.
func (s *Session) ToggleOption(name, option string, included bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.ToggleOption(name, option, included)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Values returns the current form state.
func (s *Session) Values() form.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Errors returns a copy of the current field errors.
func (s *Session) Errors() validation.Errors {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(validation.Errors, len(s.errors))
	for name, msg := range s.errors {
		out[name] = msg
	}
	return out
}

// Status returns the current status line.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Submitting reports whether a submission is running.
func (s *Session) Submitting() bool {
	return s.inFlight.Load()
}

// Submit validates the current values and, when they pass, hands them to the
// submitter exactly once. Validation failures never reach the submitter. On
// success the form is reset; on failure entered values are kept so the
// applicant can retry.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	s.status = Status{}
	state := s.state
	errs := validation.Validate(s.role, state)
	if !errs.Empty() {
		s.errors = errs
		s.status = Status{Kind: StatusError, Message: MsgFixErrors}
		s.mu.Unlock()
		s.logger.Debug("application invalid", zap.String("role_id", s.role.RoleID), zap.Strings("fields", errs.Fields()))
		return Outcome{Errors: errs, Status: Status{Kind: StatusError, Message: MsgFixErrors}}, nil
	}
	s.errors = validation.Errors{}
	s.mu.Unlock()

	result := s.submitter.Submit(ctx, s.role, state)

	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := Outcome{Result: result, Errors: validation.Errors{}}
	if result.Success {
		s.state = s.state.Reset()
		s.status = Status{Kind: StatusSuccess, Message: SuccessTitle}
		outcome.Dialog = NewSuccessDialog(s.role)
	} else {
		s.status = Status{Kind: StatusError, Message: result.Message}
		if result.Err != nil {
			s.logger.Warn("application submission failed", zap.String("role_id", s.role.RoleID), zap.Error(result.Err))
		}
	}
	outcome.Status = s.status
	return outcome, nil
}

// Outcome reports what a Submit call did.
type Outcome struct {
	Result submit.Result
	Errors validation.Errors
	Status Status
	// Dialog is set after a successful submission.
	Dialog *SuccessDialog
}

// Submitted reports whether the endpoint accepted the application.
func (o Outcome) Submitted() bool {
	return o.Result.Success
}

// Invalid reports whether validation stopped the submission.
func (o Outcome) Invalid() bool {
	return !o.Errors.Empty()
}

// StatusKind classifies the status line.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the message shown below the form.
type Status struct {
	Kind    StatusKind `json:"type,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Empty reports whether there is nothing to show.
func (s Status) Empty() bool {
	return s.Kind == StatusNone
}

// SuccessTitle heads the confirmation shown after a successful submission.
const SuccessTitle = "Application submitted successfully"

// SuccessDialog is the confirmation shown after a successful submission.
type SuccessDialog struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewSuccessDialog builds the confirmation text for role.
func NewSuccessDialog(role schema.RoleForm) *SuccessDialog {
	return &SuccessDialog{
		Title: SuccessTitle,
		Body: fmt.Sprintf("Thank you for applying for the %s role. Our team will review your application and get back to you if there is a good fit.",
			role.RoleLabel),
	}
}
