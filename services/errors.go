package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so the HTTP layer can map them
// without inspecting messages.
type ErrorKind int

const (
	// KindNotFound: a referenced entity id does not resolve.
	KindNotFound ErrorKind = iota + 1
	// KindValidation: a schema constraint was violated; Fields carries
	// per-field detail.
	KindValidation
	// KindBusinessRule: the request is well-formed but the workflow forbids
	// it (payment over balance, duplicate LPO number, bad transition).
	KindBusinessRule
	// KindConflict: a retryable concurrent-update or unique-key collision.
	KindConflict
)

type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(fields map[string]string, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Fields: fields}
}

func BusinessRulef(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// businessRule wraps a model transition error, keeping it matchable with
// errors.Is.
func businessRule(err error) *Error {
	return &Error{Kind: KindBusinessRule, Message: err.Error(), Err: err}
}

func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
