package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the caller-visible failures of user operations.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindMissingField
	KindDuplicateEmail
	KindDuplicatePhone
	KindDuplicateID
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMissingField:
		return "missing_field"
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindDuplicatePhone:
		return "duplicate_phone"
	case KindDuplicateID:
		return "duplicate_id"
	default:
		return "unknown"
	}
}

// Error is a classified user operation failure.
type Error struct {
	Kind  ErrorKind
	Field string
	ID    string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("user %q not found", e.ID)
	case KindMissingField:
		return fmt.Sprintf("field %q is required", e.Field)
	case KindDuplicateEmail:
		return "email is already in use"
	case KindDuplicatePhone:
		return "phone is already in use"
	case KindDuplicateID:
		return fmt.Sprintf("a user with id %q already exists", e.ID)
	default:
		return "user operation failed"
	}
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: KindNotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func NotFound(id string) error        { return &Error{Kind: KindNotFound, ID: id} }
func MissingField(field string) error { return &Error{Kind: KindMissingField, Field: field} }
func DuplicateEmail() error           { return &Error{Kind: KindDuplicateEmail, Field: FieldEmail} }
func DuplicatePhone() error           { return &Error{Kind: KindDuplicatePhone, Field: FieldPhone} }
func DuplicateID(id string) error     { return &Error{Kind: KindDuplicateID, Field: FieldID, ID: id} }

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether err rejects the caller's input.
func IsValidation(err error) bool {
	switch KindOf(err) {
	case KindMissingField, KindDuplicateEmail, KindDuplicatePhone, KindDuplicateID:
		return true
	}
	return false
}
