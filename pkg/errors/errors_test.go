// Package errors_test exercises the AppError type, factory functions, and
// error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/molsim/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"invalid argument", errors.CodeInvalidArgument, "tolerance must be positive"},
		{"incompatible", errors.CodeIncompatible, "fingerprints differ"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestNew_StackIsPopulated(t *testing.T) {
	ae := errors.New(errors.CodeInternal, "test")
	assert.Contains(t, ae.Stack, "errors_test.go")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilErrReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "should not matter"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	root := stderrors.New("short read")
	wrapped := errors.Wrap(root, errors.CodeParse, "xyz header")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeParse, wrapped.Code)
	assert.Equal(t, root, stderrors.Unwrap(wrapped))
	assert.True(t, stderrors.Is(wrapped, root))
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	inner := errors.MissingProperty("coordinates")
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	assert.Equal(t, errors.CodeMissingProperty, outer.Code)
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	inner := errors.MissingProperty("coordinates")
	outer := errors.Wrap(inner, errors.CodeInternal, "unexpected state")

	assert.Equal(t, errors.CodeInternal, outer.Code)
	assert.True(t, errors.IsCode(outer, errors.CodeMissingProperty), "inner code stays reachable")
}

// ─────────────────────────────────────────────────────────────────────────────
// Error() formatting
// ─────────────────────────────────────────────────────────────────────────────

func TestError_FormatWithoutDetail(t *testing.T) {
	ae := errors.New(errors.CodeNotFound, "no atom named CA")
	assert.Equal(t, "[COMMON_NOT_FOUND] no atom named CA", ae.Error())
}

func TestError_FormatWithDetail(t *testing.T) {
	ae := errors.InvalidArgument("bad tolerance").WithDetail("tolerance=-1")
	assert.Equal(t, "[COMMON_INVALID_ARGUMENT] bad tolerance: tolerance=-1", ae.Error())
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	original := errors.NotFound("missing")
	detailed := original.WithDetail("id=42")

	assert.Empty(t, original.Detail)
	assert.Equal(t, "id=42", detailed.Detail)
}

func TestWithDetail_NilReceiver(t *testing.T) {
	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

func TestWithCause(t *testing.T) {
	cause := stderrors.New("io")
	ae := errors.Internal("boom").WithCause(cause)
	assert.Same(t, cause, ae.Cause)
}

// ─────────────────────────────────────────────────────────────────────────────
// Kind factories
// ─────────────────────────────────────────────────────────────────────────────

func TestMissingProperty_NamesProperty(t *testing.T) {
	ae := errors.MissingProperty("element")
	assert.Equal(t, errors.CodeMissingProperty, ae.Code)
	assert.Contains(t, ae.Detail, `"element"`)
}

func TestInvalidCast_DescribesTypes(t *testing.T) {
	ae := errors.InvalidCast("coordinates", "molecule.Coordinates", 42)
	assert.Equal(t, errors.CodeInvalidCast, ae.Code)
	assert.Contains(t, ae.Detail, "want=molecule.Coordinates")
	assert.Contains(t, ae.Detail, "got=int")
}

func TestParse_LineDetail(t *testing.T) {
	assert.Equal(t, "line=3", errors.Parse(3, "bad count").Detail)
	assert.Empty(t, errors.Parse(0, "bad count").Detail)
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain inspection
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode_ThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("hunt: %w", errors.Incompatible("mismatch"))
	assert.True(t, errors.IsCode(err, errors.CodeIncompatible))
	assert.False(t, errors.IsCode(err, errors.CodeInvalidCast))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, errors.IsNotFound(errors.NotFound("x")))
	assert.False(t, errors.IsNotFound(errors.Internal("x")))
	assert.False(t, errors.IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(errors.InvalidArgument("x")))
}

func TestError_ImplementsErrorInterface(t *testing.T) {
	var err error = errors.New(errors.CodeInternal, "boom")
	assert.True(t, strings.HasPrefix(err.Error(), "[COMMON_INTERNAL]"))
}
