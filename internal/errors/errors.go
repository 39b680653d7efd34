package gerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindComputation
	KindStoreAccess
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindComputation:
		return "computation"
	case KindStoreAccess:
		return "store_access"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Op names the operation that failed, if any.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidReportType = Validation("invalid report type")
	ErrInvalidExportType = Validation("invalid export type")
)

// Validation reports a malformed request parameter.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf(format, args...)}
}

// Computation reports an internal inconsistency while computing a report.
func Computation(format string, args ...any) error {
	return &Error{Kind: KindComputation, Err: fmt.Errorf(format, args...)}
}

// StoreAccess wraps a record store failure with the operation name.
func StoreAccess(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStoreAccess, Op: op, Err: err}
}

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err was caused by bad input.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsCanceled reports whether err comes from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
