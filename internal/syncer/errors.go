package syncer

import (
	"strings"

	"github.com/nikmy/fleetsync/pkg/errors"
)

type Kind int

const (
	ValidationFailed Kind = iota + 1
	RemoteReadFailed
	RemoteWriteFailed
	RemoteDeleteFailed
)

func (k Kind) String() string {
	switch k {
	case ValidationFailed:
		return "validation failed"
	case RemoteReadFailed:
		return "remote read failed"
	case RemoteWriteFailed:
		return "remote write failed"
	case RemoteDeleteFailed:
		return "remote delete failed"
	default:
		return "unknown"
	}
}

// Error is the failure of a single engine operation. It is reported through
// the notifier, kept as the engine's last error and returned by the Try
// variants of the operations.
type Error struct {
	Kind    Kind
	Reasons []string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == ValidationFailed && len(e.Reasons) > 0 {
		return strings.Join(e.Reasons, ", ")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of an engine error, or zero for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationFailed(reasons ...string) *Error {
	return &Error{Kind: ValidationFailed, Reasons: reasons}
}
