package deploy

import (
	"fmt"
)

// ApplyError reports a document the control plane rejected or failed to
// process. It is fatal to the run: later sources are not attempted, and
// earlier successfully-applied sources are left in place for the operator to
// remediate.
type ApplyError struct {
	// Source is the manifest file the document came from.
	Source string
	Kind   string
	Name   string
	Err    error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("applying %s %q from %s: %v", e.Kind, e.Name, e.Source, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a resource that was accepted by the control plane but
// never reached readiness within its budget. Distinct from ApplyError: this
// usually points at an application-level problem, not a manifest error.
type TimeoutError struct {
	Source string
	Kind   string
	Name   string
	// LastStatus is the last observed status, for diagnostics.
	LastStatus string
	Err        error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf(
		"timed out waiting for %s %q from %s (last status: %s): %v",
		e.Kind, e.Name, e.Source, e.LastStatus, e.Err,
	)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// DeleteError reports a failed clean-start deletion. It is logged, not
// fatal: applying over a resource still being deleted is reconciled by the
// control plane's own name-uniqueness handling.
type DeleteError struct {
	Kind string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("deleting %s resources: %v", e.Kind, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}
