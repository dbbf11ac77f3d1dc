package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// FetchError reports a transport failure or a non-success response from
// one of the remote sources.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MalformedDataError reports a remote payload that is missing expected
// fields or cannot be decoded.
type MalformedDataError struct {
	Source string
	Field  string
	Err    error
}

func (e *MalformedDataError) Error() string {
	msg := "malformed data from " + e.Source
	if e.Field != "" {
		msg += ": missing " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// StoreWriteError reports a failure persisting a single document.
type StoreWriteError struct {
	Doc string // e.g. "courseData/CS"
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Doc, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// Reconciliation phases.
const (
	PhaseClear = "clear"
	PhaseWrite = "write"
)

// SubjectFailure is one failed document write during reconciliation.
type SubjectFailure struct {
	Subject string
	Phase   string
	Err     error
}

// PartialFailure is returned by the reconciler when one or more subject
// documents could not be written. Every other document was still attempted.
type PartialFailure struct {
	Failures []SubjectFailure
	Written  int
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("reconcile: %d subject write(s) failed (%d written): %s",
		len(e.Failures), e.Written, strings.Join(e.Subjects(), ", "))
}

// Subjects lists the failing subjects in the order they were recorded.
func (e *PartialFailure) Subjects() []string {
	out := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f.Subject
	}
	return out
}

func (e *PartialFailure) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
