// Package inquiry implements the consultation request form: field validation,
// the idle → submitting → success | error status machine and the pluggable
// submitter that delivers a request.
package inquiry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Status is the lifecycle state of the form.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

var statusNames = [...]string{"idle", "submitting", "success", "error"}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// ParseStatus is the inverse of String. Unknown names are idle.
func ParseStatus(v string) Status {
	for i, n := range statusNames {
		if n == v {
			return Status(i)
		}
	}
	return StatusIdle
}

// Terminal reports whether s only leaves via Reset.
func (s Status) Terminal() bool { return s == StatusSuccess || s == StatusError }

var (
	// ErrInvalid is wrapped by ValidationError.
	ErrInvalid = errors.New("inquiry: invalid form")
	// ErrBusy is returned when Submit is called outside the idle status.
	ErrBusy = errors.New("inquiry: submission not idle")
)

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("inquiry: invalid fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Submitter delivers a validated form somewhere.
type Submitter interface {
	Submit(ctx context.Context, f Form) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, f Form) error

func (fn SubmitterFunc) Submit(ctx context.Context, f Form) error { return fn(ctx, f) }

// DefaultDelay is how long the simulated submitter pretends to work.
const DefaultDelay = 2 * time.Second

// Simulated waits for Delay and succeeds. Cancelling ctx ends the wait early
// with the context error.
type Simulated struct {
	Delay time.Duration
}

func (s Simulated) Submit(ctx context.Context, _ Form) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receipt acknowledges a successful submission.
type Receipt struct {
	Reference  string    `json:"ref"`
	ReceivedAt time.Time `json:"at"`
}

// Snapshot is the persisted view of an Intake, carried between requests.
type Snapshot struct {
	Status  string  `json:"status"`
	Form    Form    `json:"form,omitempty"`
	Receipt Receipt `json:"receipt,omitempty"`
	Failure string  `json:"failure,omitempty"`
}

// Deps wires an Intake.
type Deps struct {
	Submitter   Submitter
	Clock       func() time.Time
	IDGenerator func() string
	Logger      *zap.Logger
}

// Intake is the form state machine. It is safe for concurrent use.
type Intake struct {
	mu      sync.Mutex
	status  Status
	form    Form
	receipt Receipt
	failure error

	submitter Submitter
	now       func() time.Time
	newID     func() string
	log       *zap.Logger
}

// New returns an idle Intake. A nil Submitter defaults to Simulated with
// DefaultDelay.
func New(deps Deps) *Intake {
	in := &Intake{
		submitter: deps.Submitter,
		now:       deps.Clock,
		newID:     deps.IDGenerator,
		log:       deps.Logger,
	}
	if in.submitter == nil {
		in.submitter = Simulated{Delay: DefaultDelay}
	}
	if in.now == nil {
		in.now = time.Now
	}
	if in.newID == nil {
		in.newID = func() string { return ulid.Make().String() }
	}
	if in.log == nil {
		in.log = zap.NewNop()
	}
	return in
}

// Restore loads persisted state. A snapshot caught mid-submission is treated
// as idle: the request that owned it is gone.
func (in *Intake) Restore(s Snapshot) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.status = ParseStatus(s.Status)
	if in.status == StatusSubmitting {
		in.status = StatusIdle
	}
	in.form = s.Form
	in.receipt = s.Receipt
	in.failure = nil
	if s.Failure != "" {
		in.failure = errors.New(s.Failure)
	}
}

// Snapshot returns the state to persist.
func (in *Intake) Snapshot() Snapshot {
	in.mu.Lock()
	defer in.mu.Unlock()
	s := Snapshot{Status: in.status.String(), Form: in.form, Receipt: in.receipt}
	if in.failure != nil {
		s.Failure = Clip(in.failure.Error(), MaxFailureLen)
	}
	return s
}

func (in *Intake) Status() Status {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.status
}

// Form returns the current field values. They are empty after a success and
// kept after an error.
func (in *Intake) Form() Form {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.form
}

// Receipt returns the receipt of the last success.
func (in *Intake) Receipt() (Receipt, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.receipt, in.status == StatusSuccess
}

// Err returns the submitter failure behind an error status.
func (in *Intake) Err() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.failure
}

// Submit validates f and delivers it. An invalid form leaves the status idle
// and returns a *ValidationError. On success the fields are cleared; on
// failure they are kept for correction. Submit outside idle returns ErrBusy.
func (in *Intake) Submit(ctx context.Context, f Form) (Receipt, error) {
	in.mu.Lock()
	if in.status != StatusIdle {
		st := in.status
		in.mu.Unlock()
		return Receipt{}, fmt.Errorf("%w: status %s", ErrBusy, st)
	}
	in.form = f
	if errs := f.Validate(); errs != nil {
		in.mu.Unlock()
		return Receipt{}, &ValidationError{Fields: errs}
	}
	in.status = StatusSubmitting
	in.mu.Unlock()

	start := in.now()
	err := in.submitter.Submit(ctx, f)

	in.mu.Lock()
	defer in.mu.Unlock()
	if err != nil {
		in.status = StatusError
		in.failure = err
		in.log.Warn("inquiry submission failed",
			zap.String("service", string(f.Service)),
			zap.String("budget", string(f.Budget)),
			zap.Error(err),
		)
		return Receipt{}, fmt.Errorf("inquiry: submit: %w", err)
	}
	in.status = StatusSuccess
	in.form = Form{}
	in.failure = nil
	in.receipt = Receipt{Reference: in.newID(), ReceivedAt: in.now().UTC()}
	in.log.Info("inquiry received",
		zap.String("ref", in.receipt.Reference),
		zap.String("service", string(f.Service)),
		zap.String("budget", string(f.Budget)),
		zap.Bool("has_email", f.Email != ""),
		zap.Duration("took", in.now().Sub(start)),
	)
	return in.receipt, nil
}

// Reset returns a terminal form to idle. Fields kept after an error stay so
// the visitor can retry; a success already cleared them.
func (in *Intake) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.status == StatusSubmitting {
		return
	}
	in.status = StatusIdle
	in.receipt = Receipt{}
	in.failure = nil
}
