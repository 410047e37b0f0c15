package certificates

import "errors"

var (
	// ErrReferenceNotFound means the trainee or training referenced by an
	// issuance request does not exist. Not retryable.
	ErrReferenceNotFound = errors.New("referenced trainee or training not found")

	// ErrNotFound is the normal outcome of looking up an unknown certificate.
	ErrNotFound = errors.New("certificate not found")

	// ErrDuplicateID means the ledger already holds the allocated identifier.
	// The orchestrator retries allocation a bounded number of times.
	ErrDuplicateID = errors.New("certificate id already exists")

	// ErrStoreUnavailable means the ledger could not be reached. Retryable by
	// the caller; the atomic insert guarantees no partial record.
	ErrStoreUnavailable = errors.New("certificate store unavailable")

	// ErrRenderingFailed means the document could not be composed. Nothing is
	// recorded in the ledger when rendering fails.
	ErrRenderingFailed = errors.New("certificate rendering failed")

	// ErrIssuanceFailed is surfaced when identifier allocation keeps colliding
	// after the bounded retries.
	ErrIssuanceFailed = errors.New("certificate issuance failed")
)
