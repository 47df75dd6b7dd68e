// Package status exports errors produced by the core package.
//
// NOTE: such constants are located in a separate package so that
// API clients and storage backends may produce them without
// importing core.
package status

import (
	"fmt"

	"github.com/oneconcern/l10nsync/pkg/errors"
)

var (
	// ErrConfiguration indicates that a required setting (API token, project id) is missing.
	// It is always returned before any I/O takes place.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrRateLimited indicates that the remote service refused a call because too many requests were sent.
	// Such errors are retried with an exponential backoff.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRetryExhausted indicates that an operation kept being rate limited after all allowed retries
	ErrRetryExhausted = errors.New("retries exhausted")

	// ErrTransfer indicates a network or connection failure while talking to the remote service
	// or fetching a bundle
	ErrTransfer = errors.New("transfer failed")

	// ErrBundleFormat indicates that a downloaded bundle is not a valid archive
	ErrBundleFormat = errors.New("invalid bundle format")

	// ErrEntryProcessing indicates that an entry of a bundle could not be decoded or written
	ErrEntryProcessing = errors.New("cannot process bundle entry")

	// ErrFileRead indicates that a local file could not be read for export
	ErrFileRead = errors.New("cannot read file")

	// ErrLangInference indicates that no language code could be inferred for a file
	ErrLangInference = errors.New("cannot infer language")
)

// RetryExhaustedError is returned when an operation has been retried the maximum number of times.
//
// It matches ErrRetryExhausted and unwraps to the last error returned by the operation.
type RetryExhaustedError struct {
	Operation string
	Retries   int
	Err       error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s: gave up after %d retries: %v", e.Operation, e.Retries, e.Err)
}

// Unwrap the last error returned by the operation
func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// Is ErrRetryExhausted?
func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrRetryExhausted
}
