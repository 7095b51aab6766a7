package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{Conflict("dup"), KindConflict},
		{NotFound("gone"), KindNotFound},
		{InvalidCode(), KindInvalidCode},
		{Auth("nope"), KindAuth},
		{Internal(errors.New("boom")), KindInternal},
		{errors.New("plain"), KindInternal},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), KindNotFound},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestInvalidCodeMessageIsGeneric(t *testing.T) {
	// Expired, deactivated and nonexistent codes must be
	// indistinguishable to the caller.
	if InvalidCode().Error() != "invalid or expired referral code" {
		t.Errorf("unexpected message: %q", InvalidCode().Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)
	if !errors.Is(err, cause) {
		t.Error("Internal should wrap its cause")
	}
}
