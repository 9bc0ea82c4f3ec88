package gateway

import "errors"

// upstreamError marks a failed provider call. Its text is the underlying
// error's text; op only labels metrics and logs.
type upstreamError struct {
	op  string
	err error
}

func (e *upstreamError) Error() string { return e.err.Error() }

func (e *upstreamError) Unwrap() error { return e.err }

func upstreamFailure(op string, err error) error { return &upstreamError{op: op, err: err} }

// IsUpstreamFailure reports whether err came from a provider call.
func IsUpstreamFailure(err error) bool {
	var ue *upstreamError
	return errors.As(err, &ue)
}

// Op returns the failed operation name, or "" when err is not an upstream failure.
func Op(err error) string {
	var ue *upstreamError
	if errors.As(err, &ue) {
		return ue.op
	}
	return ""
}
