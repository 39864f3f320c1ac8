package graph

import (
	"context"
	stderrors "errors"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/c360/memberhub/errors"
)

// resolverError carries a machine-readable code alongside the message.
// graphql-go surfaces the extensions through the gqlerrors.ExtendedError
// interface when formatting the response error list.
type resolverError struct {
	err       error
	code      string
	operation string
}

func (e *resolverError) Error() string {
	return e.err.Error()
}

func (e *resolverError) Unwrap() error {
	return e.err
}

// Extensions implements gqlerrors.ExtendedError
func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":      e.code,
		"operation": e.operation,
	}
}

// wrapResolverError maps domain errors to coded GraphQL errors. The
// classification drives the code; unclassified errors are reported as
// internal without leaking detail beyond the message.
func wrapResolverError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var re *resolverError
	if stderrors.As(err, &re) {
		return err
	}

	var parseErr *gqlerror.Error

	code := "INTERNAL_ERROR"
	switch {
	case errors.IsNotFound(err):
		code = "NOT_FOUND"
	case errors.IsConflict(err):
		code = "CONFLICT"
	case stderrors.Is(err, errors.ErrDepthExceeded):
		code = "DEPTH_LIMIT_EXCEEDED"
	case stderrors.As(err, &parseErr):
		code = "GRAPHQL_PARSE_FAILED"
	case errors.IsInvalid(err):
		code = "INVALID_INPUT"
	case stderrors.Is(err, context.DeadlineExceeded):
		code = "DEADLINE_EXCEEDED"
	case stderrors.Is(err, context.Canceled):
		code = "CANCELLED"
	}

	return &resolverError{err: err, code: code, operation: operation}
}
