package wrap

import (
	"context"
	"errors"
)

// capturedError carries the LogCtx that was current where the error happened.
type capturedError struct {
	err    error
	logCtx LogCtx
}

func (e *capturedError) Error() string { return e.err.Error() }

func (e *capturedError) Unwrap() error { return e.err }

// Error attaches the LogCtx of ctx to err so it can be restored with ErrorCtx
// where the error is finally logged. A nil err stays nil.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var e *capturedError
	if errors.As(err, &e) {
		// keep the outer message, refresh the context snapshot
		return &capturedError{
			err:    err,
			logCtx: WithLogCtxValue(e.logCtx, FromContext(ctx)),
		}
	}

	return &capturedError{
		err:    err,
		logCtx: FromContext(ctx),
	}
}

// WithLogCtxValue merges two LogCtx values, non-empty fields of next win.
func WithLogCtxValue(prev, next LogCtx) LogCtx {
	if next.Action == "" {
		next.Action = prev.Action
	}
	if next.RequestID == "" {
		next.RequestID = prev.RequestID
	}
	if next.DatasetID == "" {
		next.DatasetID = prev.DatasetID
	}
	if next.SessionID == "" {
		next.SessionID = prev.SessionID
	}
	return next
}

// ErrorCtx returns ctx enriched with the LogCtx captured by Error, if any.
// Fields captured in the error take precedence over the ones already in ctx.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *capturedError
	if !errors.As(err, &e) || e == nil {
		return ctx
	}
	return context.WithValue(ctx, LogCtxKey, WithLogCtxValue(FromContext(ctx), e.logCtx))
}
