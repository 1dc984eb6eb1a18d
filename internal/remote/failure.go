package remote

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nikmy/fleetsync/pkg/errors"
)

const (
	CodeNotFound  = "not_found"
	CodeDuplicate = "duplicate"
	CodeTimeout   = "timeout"
	CodeNetwork   = "network"
)

// Failure is the structured error of a remote call.
type Failure struct {
	Message string
	Code    string

	cause error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// Fail wraps err with the failed action and classifies it. A *Failure passed
// in is returned as is.
func Fail(err error, whatFailed string) error {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	return &Failure{
		Message: errors.WrapFail(err, whatFailed).Error(),
		Code:    classify(err),
		cause:   err,
	}
}

func notFound(table string, id string) *Failure {
	return &Failure{
		Message: errors.Errorf("no row %q in %q", id, table).Error(),
		Code:    CodeNotFound,
	}
}

func classify(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), pgconn.Timeout(err):
		return CodeTimeout
	case mongo.IsDuplicateKeyError(err):
		return CodeDuplicate
	case mongo.IsNetworkError(err):
		return CodeNetwork
	case errors.Is(err, mongo.ErrNoDocuments):
		return CodeNotFound
	}

	return ""
}
