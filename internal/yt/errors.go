package yt

import (
	"errors"
	"fmt"
)

// AuthError means the credential is missing, invalid, or expired. It is fatal
// for the invocation: no partial results are attempted.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// RemoteKind classifies a failed remote call.
type RemoteKind string

const (
	// KindQuota: the server signaled daily budget exhaustion. Retrying within
	// the exhausted window is futile, so it is surfaced immediately.
	KindQuota RemoteKind = "quota_exceeded"
	// KindNotFound: the requested record does not exist.
	KindNotFound RemoteKind = "not_found"
	// KindTransient: timeout or 5xx/429, safe for the caller to retry.
	KindTransient RemoteKind = "transient"
	// KindRejected: any other 4xx, e.g. a malformed field value. Not retried.
	KindRejected RemoteKind = "rejected"
)

// RemoteError is a classified failure from the remote service.
type RemoteError struct {
	Kind       RemoteKind
	StatusCode int
	Reason     string
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("remote %s (status %d)", e.Kind, e.StatusCode)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsQuotaExceeded reports whether err carries a quota-exhaustion signal.
func IsQuotaExceeded(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == KindQuota
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == KindNotFound
}

// IsAuth reports whether err is fatal to the authenticated session.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// classifyStatus maps an HTTP status plus the API's error reason string onto
// the taxonomy. The reason strings come from the error body's errors[0].reason.
func classifyStatus(status int, reason, message string) error {
	switch {
	case status == 401:
		return &AuthError{Reason: "session expired or revoked, run 'tubectl login' to re-authenticate"}
	case status == 403 && (reason == "quotaExceeded" || reason == "dailyLimitExceeded"):
		return &RemoteError{Kind: KindQuota, StatusCode: status, Reason: reason, Message: message}
	case status == 404:
		return &RemoteError{Kind: KindNotFound, StatusCode: status, Reason: reason, Message: message}
	case status == 408 || status == 429 || status >= 500:
		return &RemoteError{Kind: KindTransient, StatusCode: status, Reason: reason, Message: message}
	default:
		return &RemoteError{Kind: KindRejected, StatusCode: status, Reason: reason, Message: message}
	}
}

// classifyTransport wraps a transport-level failure. Timeouts, resets, and
// DNS hiccups are all retryable from the caller's point of view.
func classifyTransport(err error) error {
	return &RemoteError{Kind: KindTransient, Err: err}
}
