package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure. Handlers translate kinds to HTTP
// statuses in exactly one place; services never touch status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindAuth
	KindConflict
	KindNotFound
	KindInvalidCode
)

// Error is a business error carrying a Kind and a caller-safe message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Auth reports an unresolvable or invalid credential.
func Auth(msg string) error {
	return &Error{Kind: KindAuth, Msg: msg}
}

// Conflict reports a uniqueness violation (duplicate email, duplicate
// active code).
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// NotFound reports a missing record.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// InvalidCode reports a referral code unusable at redemption time. The
// message is deliberately generic: expired, deactivated and nonexistent
// codes are indistinguishable to the caller.
func InvalidCode() error {
	return &Error{Kind: KindInvalidCode, Msg: "invalid or expired referral code"}
}

// Internal wraps an unexpected storage or infrastructure failure.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Msg: "internal error", Err: err}
}

// KindOf extracts the Kind from err, or KindInternal if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
