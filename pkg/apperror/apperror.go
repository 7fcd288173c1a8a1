package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUnauthenticated     Kind = "UNAUTHENTICATED"
	KindValidationFailed    Kind = "VALIDATION_FAILED"
	KindDuplicateSKU        Kind = "DUPLICATE_SKU"
	KindNotFoundOrForbidden Kind = "NOT_FOUND_OR_FORBIDDEN"
	KindCapacityExceeded    Kind = "CAPACITY_EXCEEDED"
	KindInvalidCredentials  Kind = "INVALID_CREDENTIALS"
	KindDuplicateUser       Kind = "DUPLICATE_USER"
	KindNotFound            Kind = "NOT_FOUND"
	KindInternal            Kind = "INTERNAL"
)

// Error is a user-facing failure with a machine-readable kind.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions is read by the GraphQL error formatter.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Kind)}
	for k, v := range e.Details {
		ext[k] = v
	}
	return ext
}

func (e *Error) With(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated() *Error {
	return New(KindUnauthenticated, "user must be authenticated")
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidationFailed, format, args...)
}

func DuplicateSKU(sku string) *Error {
	return New(KindDuplicateSKU, "item with SKU '%s' already exists", sku).With("sku", sku)
}

func NotFoundOrForbidden(entity string, id int64) *Error {
	return New(KindNotFoundOrForbidden, "%s with id %d not found or access denied", entity, id)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, "invalid email or password")
}

func DuplicateUser(email string) *Error {
	return New(KindDuplicateUser, "user with email '%s' already exists", email)
}

// CapacityExceeded reports the location that would overflow and by how much.
func CapacityExceeded(location string, overflow, available int) *Error {
	return New(KindCapacityExceeded,
		"storage location '%s' capacity exceeded by %d (available %d)", location, overflow, available).
		With("location", location).
		With("overflow", overflow).
		With("available", available)
}

func Internal(message string) *Error {
	return New(KindInternal, "%s", message)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}
