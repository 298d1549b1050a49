package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestRunErrorMessage(t *testing.T) {
	t.Run("step and underlying error", func(t *testing.T) {
		err := Wrap(CodeSessionError, "submit certificate", stderrors.New("context deadline exceeded"))
		msg := err.Error()
		if !strings.Contains(msg, "submit certificate") {
			t.Errorf("message should contain step: %s", msg)
		}
		if !strings.Contains(msg, "context deadline exceeded") {
			t.Errorf("message should contain cause: %s", msg)
		}
	})

	t.Run("message only", func(t *testing.T) {
		err := InvalidInput("private key PEM is empty")
		if err.Error() != "private key PEM is empty" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})
}

func TestSentinelMatching(t *testing.T) {
	err := Wrap(CodeOtpRejected, "verify one-time password", stderrors.New("code refused"))

	if !Is(err, ErrOtpRejected) {
		t.Error("wrapped OTP_REJECTED should match ErrOtpRejected")
	}
	if Is(err, ErrLoginRejected) {
		t.Error("OTP_REJECTED must not match ErrLoginRejected")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("element not found")
	err := Wrap(CodeTargetNotFound, "resolve product", cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}

	var runErr *RunError
	if !As(err, &runErr) {
		t.Fatal("As should find RunError in chain")
	}
	if runErr.Code != CodeTargetNotFound {
		t.Errorf("expected TARGET_NOT_FOUND, got %s", runErr.Code)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitOK},
		{"invalid input", InvalidInput("empty seed"), ExitInvalidInput},
		{"login rejected", ErrLoginRejected, ExitLoginRejected},
		{"otp rejected", Wrap(CodeOtpRejected, "verify one-time password", nil), ExitOtpRejected},
		{"session error", ErrSessionError, ExitSessionError},
		{"target not found", ErrTargetNotFound, ExitTargetNotFound},
		{"verification timeout", ErrVerificationTimeout, ExitVerificationTimeout},
		{"rejected", ErrRejected, ExitRejected},
		{"unclassified", stderrors.New("boom"), ExitFailure},
		{"wrapped classified", fmt.Errorf("run failed: %w", ErrRejected), ExitRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
