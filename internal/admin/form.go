// Package admin implements the admin pages' behavior on top of the
// resource client: a create/edit/delete form per collection and the
// dashboard aggregation. Rendering is up to the caller; this package
// owns the state transitions.
package admin

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/TechXplorers1/comagend-website/internal/client"
	"github.com/TechXplorers1/comagend-website/internal/schema"
	"github.com/TechXplorers1/comagend-website/internal/validation"
)

// Form states. Creating and Editing are mutually exclusive: an id bound
// to the open form means Editing.
type State int

const (
	StateIdle State = iota
	StateCreating
	StateEditing
	StateSubmitting
	StateDeleting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateDeleting:
		return "deleting"
	}
	return "unknown"
}

var (
	// ErrSubmitInFlight guards against double submission while a
	// mutation is outstanding.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	// ErrStaleResponse marks a mutation response that arrived after the
	// form had moved on; its result was discarded.
	ErrStaleResponse = errors.New("response discarded: form state superseded")
	// ErrFormClosed is returned when Submit is called with no open form.
	ErrFormClosed = errors.New("no form is open")
)

// Form drives the create/edit dialog of one admin collection page.
// In is the writable-field input type for the collection, Patch the
// partial-update type sent on edit.
type Form[In any, Patch any] struct {
	client *client.Client
	val    *validation.Validator
	key    string

	mu          sync.Mutex
	state       State
	editingID   string
	input       In
	fieldErrors map[string]string
	errMessage  string
	generation  uint64
}

func NewForm[In any, Patch any](c *client.Client, val *validation.Validator, resourceKey string) *Form[In, Patch] {
	return &Form[In, Patch]{
		client: c,
		val:    val,
		key:    resourceKey,
		state:  StateIdle,
	}
}

// OpenCreate opens a blank form. Any prior error state is reset and an
// in-flight mutation from an earlier form generation will be discarded.
func (f *Form[In, Patch]) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	var blank In
	f.state = StateCreating
	f.editingID = ""
	f.input = blank
	f.fieldErrors = nil
	f.errMessage = ""
	f.generation++
}

// OpenEdit opens the form pre-filled from the selected row.
func (f *Form[In, Patch]) OpenEdit(id string, prefill In) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateEditing
	f.editingID = id
	f.input = prefill
	f.fieldErrors = nil
	f.errMessage = ""
	f.generation++
}

// Close abandons the open form. A mutation still in flight for the old
// generation is discarded when it resolves.
func (f *Form[In, Patch]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateIdle
	f.editingID = ""
	f.fieldErrors = nil
	f.errMessage = ""
	f.generation++
}

// SetInput binds the current form field values.
func (f *Form[In, Patch]) SetInput(input In) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = input
}

// SubmitCreate validates the bound input and POSTs it. Validation
// failures keep the form open with field-scoped errors and never reach
// the network. On success the collection key is invalidated and the
// form returns to idle.
func (f *Form[In, Patch]) SubmitCreate(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if f.state != StateCreating {
		f.mu.Unlock()
		return ErrFormClosed
	}

	if details := schema.Validate(f.val, f.input); details != nil {
		f.fieldErrors = details
		f.mu.Unlock()
		return nil
	}

	input := f.input
	gen := f.generation
	f.state = StateSubmitting
	f.fieldErrors = nil
	f.errMessage = ""
	f.mu.Unlock()

	_, err := f.client.Write(ctx, http.MethodPost, f.key, input)
	return f.settleSubmit(gen, StateCreating, err)
}

// SubmitEdit validates the bound patch and PATCHes the row the form was
// opened for.
func (f *Form[In, Patch]) SubmitEdit(ctx context.Context, patch Patch) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if f.state != StateEditing || f.editingID == "" {
		f.mu.Unlock()
		return ErrFormClosed
	}

	if details := schema.Validate(f.val, patch); details != nil {
		f.fieldErrors = details
		f.mu.Unlock()
		return nil
	}

	id := f.editingID
	gen := f.generation
	f.state = StateSubmitting
	f.fieldErrors = nil
	f.errMessage = ""
	f.mu.Unlock()

	_, err := f.client.Write(ctx, http.MethodPatch, f.key+"/"+id, patch)
	return f.settleSubmit(gen, StateEditing, err)
}

// Delete issues the destructive call only when confirmed; declining
// leaves every piece of state untouched and sends nothing.
func (f *Form[In, Patch]) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}

	f.mu.Lock()
	if f.state == StateSubmitting || f.state == StateDeleting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	gen := f.generation
	f.state = StateDeleting
	f.mu.Unlock()

	_, err := f.client.Write(ctx, http.MethodDelete, f.key+"/"+id, nil)

	f.mu.Lock()
	defer f.mu.Unlock()

	// The row is gone server-side even if the form moved on, so the
	// cached list must be refreshed regardless.
	if err == nil {
		f.client.Invalidate(f.key)
	}

	if f.generation != gen {
		return ErrStaleResponse
	}

	f.state = StateIdle
	if err != nil {
		f.errMessage = errMessage(err)
		return err
	}
	return nil
}

func (f *Form[In, Patch]) settleSubmit(gen uint64, reopen State, err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A successful POST/PATCH is committed server-side whether or not
	// the dialog moved on, so the cached list is always invalidated.
	if err == nil {
		f.client.Invalidate(f.key)
	}

	// The dialog was closed or reopened while the request was in
	// flight; whatever came back no longer applies to the form state.
	if f.generation != gen {
		return ErrStaleResponse
	}

	if err != nil {
		f.state = reopen
		f.errMessage = errMessage(err)
		return err
	}

	f.state = StateIdle
	f.editingID = ""
	f.generation++
	return nil
}

func (f *Form[In, Patch]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form[In, Patch]) EditingID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

// FieldErrors returns the validation errors of the last blocked submit,
// keyed by field name.
func (f *Form[In, Patch]) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors
}

// ErrMessage returns the last transport/API failure message, surfaced
// verbatim from the server where available.
func (f *Form[In, Patch]) ErrMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMessage
}

func errMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
