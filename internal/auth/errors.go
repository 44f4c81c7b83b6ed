package auth

import (
	"errors"
	"fmt"
)

// FailureKind classifies terminal login-flow failures. The corrective action
// differs per kind (re-run login vs. check network), so callers and log
// output must be able to tell them apart.
type FailureKind string

const (
	// KindSecurity means the callback state did not match the one we sent.
	// This can indicate a forged redirect and is never reported as a
	// generic failure.
	KindSecurity FailureKind = "security"

	// KindTimeout means no callback arrived before the deadline.
	KindTimeout FailureKind = "timeout"

	// KindProviderError means the authorization server itself reported a
	// denial or fault via the redirect's error parameter.
	KindProviderError FailureKind = "provider_error"

	// KindMissingParameters means the redirect lacked the code or state
	// parameter.
	KindMissingParameters FailureKind = "missing_parameters"

	// KindListenerFailure means the loopback listener could not bind or
	// failed at the transport level.
	KindListenerFailure FailureKind = "listener_failure"
)

// FlowError is a classified login-flow failure.
type FlowError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("login failed (%s): %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("login failed (%s): %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("login failed (%s): %s", e.Kind, e.Message)
	}
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err, or an empty kind if err is
// not a FlowError.
func KindOf(err error) FailureKind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
