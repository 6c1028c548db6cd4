package diagnostic

import (
	"errors"
	"fmt"

	"contract-generator/internal/common"
)

// Kind classifies a fatal generation failure.
type Kind int

const (
	KindInvalidRoot Kind = iota
	KindReservedName
	KindUnsupportedVerb
	KindAnonymousService
	KindDuplicateService
	KindDuplicatePath
	KindDuplicateOperation
	KindConflictingSecurity
	KindUnsupportedSignature
	KindGenericService
)

// String returns the kebab-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidRoot:
		return "invalid-root"
	case KindReservedName:
		return "reserved-name"
	case KindUnsupportedVerb:
		return "unsupported-verb"
	case KindAnonymousService:
		return "anonymous-service"
	case KindDuplicateService:
		return "duplicate-service"
	case KindDuplicatePath:
		return "duplicate-path"
	case KindDuplicateOperation:
		return "duplicate-operation"
	case KindConflictingSecurity:
		return "conflicting-security"
	case KindUnsupportedSignature:
		return "unsupported-signature"
	case KindGenericService:
		return "generic-service"
	default:
		return common.UnknownStr
	}
}

// Error is a fatal generation failure. No document is produced when one is returned.
type Error struct {
	Kind    Kind
	Subject string
	Message string
}

// Errorf builds a fatal error of the given kind about subject.
func Errorf(kind Kind, subject, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Subject, e.Message)
}

// IsKind reports whether err wraps a fatal *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fatal *Error
	if errors.As(err, &fatal) {
		return fatal.Kind == kind
	}

	return false
}
