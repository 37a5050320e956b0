package domain

import (
	"context"

	"github.com/google/uuid"
)

// genericErrorMessage replaces anything that is not a string or an error when
// a flow is rejected, so raw internal shapes never reach the UI.
const genericErrorMessage = "An unexpected error occured."

const (
	// FlowStatusConfirm is the initial status, awaiting user confirmation.
	FlowStatusConfirm = iota
	// FlowStatusPending means the underlying action was started and runs to
	// completion or failure; a pending flow cannot be cancelled.
	FlowStatusPending
	// FlowStatusComplete is the terminal status of a resolved action.
	FlowStatusComplete
	// FlowStatusRejected is the terminal status of a failed action or a
	// failed pre-flight validation.
	FlowStatusRejected
)

// FlowStatus represents the different statuses a confirmation flow can
// assume.
type FlowStatus struct {
	Code int
}

// ConfirmationFlow drives one fallible asynchronous action through the
// confirm -> pending -> complete|rejected lifecycle shared by every
// money-moving operation. A flow instance belongs to one open dialog;
// reopening re-arms it to Confirm and discards any terminal state.
type ConfirmationFlow struct {
	Id     string
	Status FlowStatus
	Error  string
}

// NewConfirmationFlow returns a flow with a new id in the Confirm status.
func NewConfirmationFlow() *ConfirmationFlow {
	return &ConfirmationFlow{Id: uuid.New().String(), Status: FlowStatus{Code: FlowStatusConfirm}}
}

// Begin brings the flow from Confirm to Pending. Begin on an already pending
// flow reports true without re-transitioning.
func (f *ConfirmationFlow) Begin() (bool, error) {
	if f.Status.Code == FlowStatusPending {
		return true, nil
	}
	if f.Status.Code != FlowStatusConfirm {
		return false, ErrFlowMustBeConfirm
	}
	f.Status.Code = FlowStatusPending
	return true, nil
}

// Complete brings the flow from Pending to Complete.
func (f *ConfirmationFlow) Complete() (bool, error) {
	if f.Status.Code == FlowStatusComplete {
		return true, nil
	}
	if f.Status.Code != FlowStatusPending {
		return false, ErrFlowMustBePending
	}
	f.Status.Code = FlowStatusComplete
	return true, nil
}

// Reject marks the flow as Rejected with a normalized error message. It is
// valid from Pending (the action failed) and from Confirm (a validation
// failure short-circuits without ever entering Pending).
func (f *ConfirmationFlow) Reject(cause interface{}) {
	if f.Status.Code == FlowStatusComplete {
		return
	}
	f.Status.Code = FlowStatusRejected
	f.Error = normalizeError(cause)
}

// Reopen re-arms the flow to Confirm, clearing any prior terminal state so
// nothing leaks across invocations. Reopening a pending flow is not allowed.
func (f *ConfirmationFlow) Reopen() (bool, error) {
	if f.Status.Code == FlowStatusPending {
		return false, ErrFlowStillPending
	}
	f.Status.Code = FlowStatusConfirm
	f.Error = ""
	return true, nil
}

// CanCancel reports whether the dialog may be dismissed: always, except while
// the action is in flight. No cancellation token is threaded through, a
// started action runs to completion or failure.
func (f *ConfirmationFlow) CanCancel() bool {
	return f.Status.Code != FlowStatusPending
}

// IsComplete ...
func (f *ConfirmationFlow) IsComplete() bool {
	return f.Status.Code == FlowStatusComplete
}

// IsRejected ...
func (f *ConfirmationFlow) IsRejected() bool {
	return f.Status.Code == FlowStatusRejected
}

// Run drives the flow through one invocation of action. Validation failures
// surfaced as errors and panics escaping the action are both captured as a
// rejection; Run itself never propagates them.
func (f *ConfirmationFlow) Run(ctx context.Context, action func(ctx context.Context) error) {
	if _, err := f.Begin(); err != nil {
		f.Reject(err)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			f.Reject(r)
		}
	}()

	if err := action(ctx); err != nil {
		f.Reject(err)
		return
	}
	f.Complete()
}

func normalizeError(cause interface{}) string {
	switch v := cause.(type) {
	case string:
		if v != "" {
			return v
		}
	case error:
		if v != nil && v.Error() != "" {
			return v.Error()
		}
	}
	return genericErrorMessage
}
