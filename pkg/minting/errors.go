package minting

import (
	"errors"
	"fmt"
)

var (
	// ErrTransientContention marks an issuance failure caused by the network
	// being busy. Issuers wrap it so that errors.Is matches.
	ErrTransientContention = errors.New("transient contention")

	// ErrRetriesExhausted is the cause of a FatalIssuanceError raised when
	// consecutive batches made no progress.
	ErrRetriesExhausted = errors.New("issuance retries exhausted")

	// ErrSerialMismatch is the cause of a FatalIssuanceError raised when the
	// ledger assigned serials other than the expected contiguous range.
	ErrSerialMismatch = errors.New("issued serials do not match batch")
)

// FatalIssuanceError aborts a minting run. Start is the counter value of the
// batch that failed.
type FatalIssuanceError struct {
	Start    int
	Attempts int
	Cause    error
}

func (e *FatalIssuanceError) Error() string {
	if e == nil {
		return "fatal issuance error"
	}
	if e.Cause == nil {
		return fmt.Sprintf("fatal issuance error at serial %d", e.Start+1)
	}
	return fmt.Sprintf("fatal issuance error at serial %d: %v", e.Start+1, e.Cause)
}

func (e *FatalIssuanceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
