// Package errors provides consistent error types for Career OS.
// It defines the main categories: UserError (fixable by user), SystemError (a backing
// store failed), RecoverableError (can be retried) and SeedError (bootstrap stopped part way).
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common conditions.
var (
	ErrNotFound              = errors.New("not found")
	ErrKPINotFound           = fmt.Errorf("kpi %w", ErrNotFound)
	ErrCompanyNotFound       = fmt.Errorf("company %w", ErrNotFound)
	ErrScheduleBlockNotFound = fmt.Errorf("schedule block %w", ErrNotFound)
	ErrNonNegotiableNotFound = fmt.Errorf("checklist item %w", ErrNotFound)
	ErrCompletionNotFound    = fmt.Errorf("completion %w", ErrNotFound)
	ErrMarkerNotFound        = fmt.Errorf("seed marker %w", ErrNotFound)

	ErrAccountRequired = errors.New("account is required")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrInvalidTier     = errors.New("invalid tier")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDay      = errors.New("invalid day")
	ErrUnknownTable    = errors.New("unknown table")
	ErrRemoteConfig    = errors.New("invalid remote configuration")
	ErrConflict        = errors.New("write conflict")
	ErrDiskFull        = errors.New("disk full")
	ErrStoreCorrupted  = errors.New("local store corrupted")
	ErrLocalOnly       = errors.New("only available for the local store")
)

// IsNotFound reports whether err means a record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// UserError represents an error that the user can fix.
// Examples: invalid input, missing required arguments, incorrect format.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel for errors.Is (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// WithCause attaches a sentinel so callers can match the error with errors.Is.
func (e *UserError) WithCause(cause error) *UserError {
	e.Cause = cause
	return e
}

// SystemError represents a failure of a backing store that the user cannot directly fix.
// Examples: disk full, network failure, malformed rows.
type SystemError struct {
	Message string       // What happened
	Cause   error        // The underlying error
	Op      string       // The operation that failed (optional)
	Stack   []StackFrame // Where StoreError wrapped the failure (optional)
}

func (e *SystemError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// StoreError wraps a backing-store failure for op. Not-found and already
// classified errors pass through unchanged; nil stays nil.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) || IsUserError(err) || IsSystemError(err) || IsRecoverableError(err) {
		return err
	}
	se := NewSystemErrorWithOp(op, "storage failure", err)
	se.Stack = captureStack(2)
	return se
}

// RecoverableError represents an error that can be retried.
// Examples: a transaction conflict that outlived its retry budget.
type RecoverableError struct {
	Message    string // What happened
	Cause      error  // The underlying error
	RetryCount int    // Number of retries attempted so far
	MaxRetries int    // Maximum number of retries allowed
	CanRetry   bool   // Whether retry is still possible
}

func (e *RecoverableError) Error() string {
	if e.RetryCount > 0 {
		return fmt.Sprintf("%s (attempt %d/%d)", e.Message, e.RetryCount, e.MaxRetries)
	}
	return e.Message
}

func (e *RecoverableError) Unwrap() error {
	return e.Cause
}

// NewRecoverableError creates a new RecoverableError.
func NewRecoverableError(message string, cause error, maxRetries int) *RecoverableError {
	return &RecoverableError{
		Message:    message,
		Cause:      cause,
		MaxRetries: maxRetries,
		CanRetry:   true,
	}
}

// IncrementRetry increments the retry count and updates CanRetry.
func (e *RecoverableError) IncrementRetry() {
	e.RetryCount++
	e.CanRetry = e.RetryCount < e.MaxRetries
}

// SeedError reports a bootstrap that inserted some default tables but not all.
// The seed marker keeps Done, so a retry resumes with the remaining tables.
type SeedError struct {
	AccountID string
	Done      []string
	Failed    string
	Cause     error
}

func (e *SeedError) Error() string {
	done := "none"
	if len(e.Done) > 0 {
		done = strings.Join(e.Done, ", ")
	}
	return fmt.Sprintf("seeding account %s stopped at %s (seeded: %s): %v", e.AccountID, e.Failed, done, e.Cause)
}

func (e *SeedError) Unwrap() error {
	return e.Cause
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// IsRecoverableError checks if an error is a RecoverableError.
func IsRecoverableError(err error) bool {
	var re *RecoverableError
	return errors.As(err, &re)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// AsSystemError extracts a SystemError from an error chain.
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	ok := errors.As(err, &se)
	return se, ok
}

// AsSeedError extracts a SeedError from an error chain.
func AsSeedError(err error) (*SeedError, bool) {
	var se *SeedError
	ok := errors.As(err, &se)
	return se, ok
}

// Is is re-exported from the standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard errors package for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is re-exported from the standard errors package for convenience.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
