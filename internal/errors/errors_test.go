package errors

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// UserError Tests
// =============================================================================

func TestNewUserError(t *testing.T) {
	err := NewUserError("invalid input", "try again")
	assert.NotNil(t, err)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "try again", err.Suggestion)
}

func TestUserErrorError(t *testing.T) {
	t.Run("without_field", func(t *testing.T) {
		err := NewUserError("invalid input", "")
		assert.Equal(t, "invalid input", err.Error())
	})

	t.Run("with_field", func(t *testing.T) {
		err := NewUserErrorWithField("tier", "T9", "invalid tier", "")
		assert.Equal(t, "invalid tier: 'T9'", err.Error())
	})
}

func TestUserErrorWithCause(t *testing.T) {
	err := NewUserError("bad tier", "").WithCause(ErrInvalidTier)
	assert.True(t, errors.Is(err, ErrInvalidTier))
	assert.True(t, IsUserError(fmt.Errorf("wrapped: %w", err)))
}

// =============================================================================
// NotFound Tests
// =============================================================================

func TestEntityNotFoundMatchesSentinel(t *testing.T) {
	for _, err := range []error{
		ErrKPINotFound, ErrCompanyNotFound, ErrScheduleBlockNotFound,
		ErrNonNegotiableNotFound, ErrCompletionNotFound, ErrMarkerNotFound,
	} {
		assert.True(t, IsNotFound(err), err.Error())
		assert.True(t, IsNotFound(fmt.Errorf("get: %w", err)))
	}
	assert.False(t, IsNotFound(errors.New("plain")))
}

// =============================================================================
// SystemError Tests
// =============================================================================

func TestSystemErrorError(t *testing.T) {
	cause := errors.New("disk gone")

	t.Run("with_op", func(t *testing.T) {
		err := NewSystemErrorWithOp("kpis.list", "storage failure", cause)
		assert.Equal(t, "storage failure during kpis.list: disk gone", err.Error())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("without_op", func(t *testing.T) {
		err := NewSystemError("storage failure", nil)
		assert.Equal(t, "storage failure", err.Error())
	})
}

func TestStoreError(t *testing.T) {
	t.Run("nil_stays_nil", func(t *testing.T) {
		assert.NoError(t, StoreError("op", nil))
	})

	t.Run("not_found_passes_through", func(t *testing.T) {
		err := StoreError("op", ErrKPINotFound)
		assert.Same(t, ErrKPINotFound, err)
	})

	t.Run("io_failure_is_wrapped", func(t *testing.T) {
		err := StoreError("companies.insert", errors.New("connection refused"))
		se, ok := AsSystemError(err)
		assert.True(t, ok)
		assert.Equal(t, "companies.insert", se.Op)
	})

	t.Run("system_error_not_double_wrapped", func(t *testing.T) {
		inner := NewSystemErrorWithOp("a", "storage failure", errors.New("x"))
		assert.Same(t, inner, StoreError("b", inner))
	})

	t.Run("user_error_passes_through", func(t *testing.T) {
		ue := NewUserError("bad input", "")
		assert.Same(t, ue, StoreError("op", ue))
	})
}

// =============================================================================
// RecoverableError Tests
// =============================================================================

func TestRecoverableErrorRetry(t *testing.T) {
	err := NewRecoverableError("conflict", ErrConflict, 2)
	assert.True(t, err.CanRetry)
	err.IncrementRetry()
	assert.True(t, err.CanRetry)
	assert.Equal(t, "conflict (attempt 1/2)", err.Error())
	err.IncrementRetry()
	assert.False(t, err.CanRetry)
	assert.True(t, errors.Is(err, ErrConflict))
}

// =============================================================================
// SeedError Tests
// =============================================================================

func TestSeedError(t *testing.T) {
	cause := errors.New("insert failed")
	err := &SeedError{AccountID: "acct", Done: []string{"kpis"}, Failed: "companies", Cause: cause}

	assert.Contains(t, err.Error(), "acct")
	assert.Contains(t, err.Error(), "companies")
	assert.Contains(t, err.Error(), "seeded: kpis")
	assert.True(t, errors.Is(err, cause))

	got, ok := AsSeedError(fmt.Errorf("bootstrap: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "companies", got.Failed)

	empty := &SeedError{AccountID: "a", Failed: "kpis", Cause: cause}
	assert.Contains(t, empty.Error(), "seeded: none")
}

// =============================================================================
// Classify Tests
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryUnknown},
		{"user", NewUserError("x", ""), CategoryUser},
		{"not_found", fmt.Errorf("get: %w", ErrCompanyNotFound), CategoryUser},
		{"system", NewSystemError("x", nil), CategorySystem},
		{"seed", &SeedError{Cause: errors.New("x")}, CategorySystem},
		{"recoverable", NewRecoverableError("x", nil, 1), CategoryRecoverable},
		{"conflict", ErrConflict, CategoryRecoverable},
		{"deadline", context.DeadlineExceeded, CategoryRecoverable},
		{"enospc", syscall.ENOSPC, CategorySystem},
		{"econnrefused", syscall.ECONNREFUSED, CategoryRecoverable},
		{"remote_config", ErrRemoteConfig, CategorySystem},
		{"plain", errors.New("plain"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "system", CategorySystem.String())
	assert.Equal(t, "recoverable", CategoryRecoverable.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestFormatByCategory(t *testing.T) {
	assert.Equal(t, "", FormatByCategory(nil))
	assert.Contains(t, FormatByCategory(ErrKPINotFound), "Try: Use 'careeros kpi'")
	assert.Contains(t, FormatByCategory(NewSystemError("boom", nil)), "System error: boom")
	assert.Contains(t, FormatByCategory(ErrConflict), "(try again)")
}

// =============================================================================
// Suggestion Tests
// =============================================================================

func TestGetSuggestion(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", GetSuggestion(nil))
	})

	t.Run("user_error_suggestion_wins", func(t *testing.T) {
		err := NewUserError("x", "do this").WithCause(ErrInvalidTier)
		assert.Equal(t, "do this", GetSuggestion(err))
	})

	t.Run("sentinel", func(t *testing.T) {
		assert.Contains(t, GetSuggestion(fmt.Errorf("x: %w", ErrInvalidDay)), "Monday is 1")
	})

	t.Run("seed_error", func(t *testing.T) {
		err := &SeedError{Cause: errors.New("x")}
		assert.Contains(t, GetSuggestion(err), "careeros seed")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Equal(t, "", GetSuggestion(errors.New("plain")))
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))
	assert.Nil(t, Wrapf(nil, "ctx %d", 1))

	base := errors.New("base")
	assert.Equal(t, "ctx: base", Wrap(base, "ctx").Error())
	assert.Equal(t, "ctx 1: base", Wrapf(base, "ctx %d", 1).Error())
	assert.True(t, Is(Wrap(base, "ctx"), base))
}

// =============================================================================
// Debug Formatting Tests
// =============================================================================

func TestChainAndRootCause(t *testing.T) {
	root := errors.New("connection refused")
	err := Wrap(Wrap(root, "open remote"), "start")

	assert.Equal(t, []string{
		"start: open remote: connection refused",
		"open remote: connection refused",
		"connection refused",
	}, Chain(err))
	assert.Equal(t, root, RootCause(err))
	assert.Nil(t, RootCause(nil))
	assert.Empty(t, Chain(nil))
}

func TestStoreErrorCapturesStack(t *testing.T) {
	err := StoreError("list kpis", errors.New("disk on fire"))

	stack := GetStack(err)
	assert.NotEmpty(t, stack)
	assert.Contains(t, stack[0].Function, "TestStoreErrorCapturesStack")
	assert.Empty(t, GetStack(errors.New("plain")))
}

func TestFormatDebugError(t *testing.T) {
	assert.Equal(t, "", FormatDebugError(nil))

	err := StoreError("list kpis", fmt.Errorf("read: %w", ErrConflict))
	out := FormatDebugError(err)
	assert.Contains(t, out, "Error: storage failure during list kpis")
	assert.Contains(t, out, "Error chain:")
	assert.Contains(t, out, "Category: recoverable")
	assert.Contains(t, out, "Stack trace:")
	assert.Contains(t, out, "Root cause: write conflict")

	user := NewUserError("bad tier", "Use T1A").WithCause(ErrInvalidTier)
	out = FormatDebugError(user)
	assert.Contains(t, out, "Category: user")
	assert.Contains(t, out, "Suggestion: Use T1A")
	assert.NotContains(t, out, "Stack trace:")
}
