package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies store failures. Controllers translate kinds to HTTP
// status codes; none of these are retried.
type ErrorKind string

const (
	ErrorNotFound   ErrorKind = "not_found"
	ErrorValidation ErrorKind = "validation"
	ErrorDuplicate  ErrorKind = "duplicate"
	ErrorStorage    ErrorKind = "storage"
	ErrorUpstream   ErrorKind = "upstream"
)

type StoreError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(message string) *StoreError {
	return &StoreError{Kind: ErrorNotFound, Message: message}
}

func NewValidationError(message string) *StoreError {
	return &StoreError{Kind: ErrorValidation, Message: message}
}

func NewDuplicateError(message string) *StoreError {
	return &StoreError{Kind: ErrorDuplicate, Message: message}
}

func NewStorageError(message string, err error) *StoreError {
	return &StoreError{Kind: ErrorStorage, Message: message, Err: err}
}

func NewUpstreamError(message string, err error) *StoreError {
	return &StoreError{Kind: ErrorUpstream, Message: message, Err: err}
}

// IsKind reports whether err is a StoreError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == kind
}
