package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies the outcome of a dispatch attempt or of a whole dispatch.
type Kind string

const (
	// KindInvalidCredential is recovered inside the dispatcher by removing the key.
	KindInvalidCredential Kind = "INVALID_CREDENTIAL"
	// KindTransientFailure is recovered inside the dispatcher by trying the next key.
	KindTransientFailure Kind = "TRANSIENT_FAILURE"
	// KindRequestFailed is surfaced when every attempt failed.
	KindRequestFailed Kind = "REQUEST_FAILED"
	// KindConfiguration is surfaced when neither keys nor a fixed endpoint exist.
	KindConfiguration Kind = "CONFIGURATION_ERROR"
)

// Reasons attached to surfaced failures.
const (
	ReasonAllCredentialsInvalid = "all_credentials_invalid"
	ReasonAllCredentialsFailed  = "all_credentials_failed"
	ReasonMixed                 = "mixed"
	ReasonFixedEndpointFailed   = "fixed_endpoint_failed"
	ReasonInvalidPayload        = "invalid_payload"
	ReasonNoUpstream            = "no_upstream_configured"
)

// DispatchError is the only error type the dispatcher returns to callers.
// It never carries secrets, URLs, or upstream bodies.
type DispatchError struct {
	Kind   Kind
	Reason string
	// Attempts is the number of outbound calls made before giving up.
	Attempts int
	// Removed is the number of credentials dropped as invalid during the call.
	Removed int
}

func (e *DispatchError) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Is matches on Kind so callers can use errors.Is(err, ErrRequestFailed).
func (e *DispatchError) Is(target error) bool {
	t, ok := target.(*DispatchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
}

// Sentinels for errors.Is comparisons.
var (
	ErrRequestFailed = &DispatchError{Kind: KindRequestFailed}
	ErrConfiguration = &DispatchError{Kind: KindConfiguration}
)

// NewRequestFailed builds a REQUEST_FAILED error.
func NewRequestFailed(reason string, attempts, removed int) *DispatchError {
	return &DispatchError{Kind: KindRequestFailed, Reason: reason, Attempts: attempts, Removed: removed}
}

// NewConfiguration builds a CONFIGURATION_ERROR.
func NewConfiguration(reason string) *DispatchError {
	return &DispatchError{Kind: KindConfiguration, Reason: reason}
}

// KindOf extracts the Kind of err, or "" when err is not a DispatchError.
func KindOf(err error) Kind {
	var de *DispatchError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return ""
}
