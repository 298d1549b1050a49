// Package errors provides standardized error types for the certpanel CLI tool.
//
// Every failure that leaves the authentication or upload workflows is
// classified into exactly one error code before it reaches the CLI layer.
// Raw browser-automation errors are always wrapped with the step that
// produced them, so operators can tell a rejected login apart from a flaky
// page load without reading chromedp internals.
//
// # Error Codes
//
// RunError is the primary error type, containing:
//   - Code: categorizes the failure (INVALID_INPUT, OTP_REJECTED, etc.)
//   - Message: human-readable description
//   - Step: the workflow step that failed (if applicable)
//   - Err: the underlying wrapped error (if any)
//
// # Usage
//
// Creating classified errors:
//
//	// Bad input, detected before any network activity
//	return errors.InvalidInput("private key PEM is empty")
//
//	// Wrapping a low-level automation error with step context
//	return errors.Wrap(errors.CodeSessionError, "submit certificate", err)
//
// Checking:
//
//	if errors.Is(err, errors.ErrOtpRejected) {
//	    // two codes were refused, do not try again
//	}
//
// ExitCode maps any error to the process exit status the orchestrator
// reports, so exit-status policy lives in one place.
package errors

import (
	"errors"
	"fmt"
)

// Code categorizes run failures for programmatic handling.
type Code string

// Failure categories. Each terminal failure of a run carries exactly one.
const (
	CodeInvalidInput        Code = "INVALID_INPUT"        // Malformed seed or certificate material
	CodeLoginRejected       Code = "LOGIN_REJECTED"       // Credentials not accepted
	CodeOtpRejected         Code = "OTP_REJECTED"         // 2FA code rejected after retry
	CodeSessionError        Code = "SESSION_ERROR"        // Transient navigation/network failure, retry budget spent
	CodeTargetNotFound      Code = "TARGET_NOT_FOUND"     // Product/domain does not resolve to a settings page
	CodeVerificationTimeout Code = "VERIFICATION_TIMEOUT" // Submission not observably applied in time
	CodeRejected            Code = "REJECTED"             // Panel explicitly refused the submission
	CodeInternal            Code = "INTERNAL"             // Unexpected internal error
)

// RunError represents a classified failure with context about the step
// that produced it.
type RunError struct {
	Code    Code   // Failure category
	Message string // Human-readable message
	Step    string // Workflow step (if applicable)
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Step != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Step, e.Message, e.Err)
	}
	if e.Step != "" {
		return fmt.Sprintf("%s: %s", e.Step, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *RunError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *RunError) Is(target error) bool {
	t, ok := target.(*RunError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for the failure taxonomy.
// Use these with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates malformed OTP seed or certificate material.
	ErrInvalidInput = &RunError{Code: CodeInvalidInput, Message: "invalid input"}

	// ErrLoginRejected indicates the panel refused the credentials.
	ErrLoginRejected = &RunError{Code: CodeLoginRejected, Message: "login rejected"}

	// ErrOtpRejected indicates the 2FA code was refused twice.
	ErrOtpRejected = &RunError{Code: CodeOtpRejected, Message: "one-time password rejected"}

	// ErrSessionError indicates a transient failure that outlived the retry budget.
	ErrSessionError = &RunError{Code: CodeSessionError, Message: "browser session error"}

	// ErrTargetNotFound indicates the product or domain could not be resolved.
	ErrTargetNotFound = &RunError{Code: CodeTargetNotFound, Message: "target product or domain not found"}

	// ErrVerificationTimeout indicates the new certificate was never observed installed.
	ErrVerificationTimeout = &RunError{Code: CodeVerificationTimeout, Message: "certificate installation not confirmed"}

	// ErrRejected indicates the panel explicitly refused the certificate.
	ErrRejected = &RunError{Code: CodeRejected, Message: "certificate submission rejected"}
)

// InvalidInput creates an input validation error with a custom message.
func InvalidInput(msg string) error {
	return &RunError{
		Code:    CodeInvalidInput,
		Message: msg,
	}
}

// New creates an error with the specified code and message.
func New(code Code, msg string) error {
	return &RunError{
		Code:    code,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, step context, and
// underlying error. The message is the canonical one for the code, so
// wrapped errors match their sentinels under errors.Is.
func Wrap(code Code, step string, err error) error {
	return &RunError{
		Code:    code,
		Message: messageFor(code),
		Step:    step,
		Err:     err,
	}
}

func messageFor(code Code) string {
	switch code {
	case CodeInvalidInput:
		return ErrInvalidInput.Message
	case CodeLoginRejected:
		return ErrLoginRejected.Message
	case CodeOtpRejected:
		return ErrOtpRejected.Message
	case CodeSessionError:
		return ErrSessionError.Message
	case CodeTargetNotFound:
		return ErrTargetNotFound.Message
	case CodeVerificationTimeout:
		return ErrVerificationTimeout.Message
	case CodeRejected:
		return ErrRejected.Message
	default:
		return "internal error"
	}
}

// Exit statuses reported by the orchestrator. 0 is reserved for the
// Applied and AlreadyCurrent outcomes, 1 for unclassified errors.
const (
	ExitOK                  = 0
	ExitFailure             = 1
	ExitInvalidInput        = 2
	ExitLoginRejected       = 3
	ExitOtpRejected         = 4
	ExitSessionError        = 5
	ExitTargetNotFound      = 6
	ExitVerificationTimeout = 7
	ExitRejected            = 8
)

// ExitCode maps an error to the process exit status. A nil error maps to
// ExitOK; errors without a RunError in their chain map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var runErr *RunError
	if !errors.As(err, &runErr) {
		return ExitFailure
	}
	switch runErr.Code {
	case CodeInvalidInput:
		return ExitInvalidInput
	case CodeLoginRejected:
		return ExitLoginRejected
	case CodeOtpRejected:
		return ExitOtpRejected
	case CodeSessionError:
		return ExitSessionError
	case CodeTargetNotFound:
		return ExitTargetNotFound
	case CodeVerificationTimeout:
		return ExitVerificationTimeout
	case CodeRejected:
		return ExitRejected
	default:
		return ExitFailure
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
