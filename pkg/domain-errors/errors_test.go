package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New(t *testing.T) {
	err := New(CodeNotFound, "alert not found")
	assert.Equal(t, "not_found: alert not found", err.Error())
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func Test_Wrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "store unreachable")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.Contains(t, err.Error(), "connection refused")

	assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
}

func Test_Is_MatchesCodeAndMessage(t *testing.T) {
	err := New(CodeUnauthorized, "token has expired")
	assert.ErrorIs(t, err, New(CodeUnauthorized, "token has expired"))
	assert.NotErrorIs(t, err, New(CodeUnauthorized, "invalid token"))
	assert.NotErrorIs(t, err, New(CodeInternal, "token has expired"))
}

func Test_CodeOf_Unclassified(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func Test_CodeOf_WrappedChain(t *testing.T) {
	inner := New(CodeNotFound, "user missing")
	outer := fmt.Errorf("resolve admin: %w", inner)
	assert.Equal(t, CodeNotFound, CodeOf(outer))
	assert.True(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(outer, CodeUnavailable))
}
