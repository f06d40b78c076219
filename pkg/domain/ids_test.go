package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "trackwatch/pkg/domain-errors"
)

func Test_ParseUserID(t *testing.T) {
	t.Run("accepts any non-empty identifier", func(t *testing.T) {
		userID, err := ParseUserID("firebase-uid-123")
		require.NoError(t, err)
		assert.Equal(t, "firebase-uid-123", userID.String())
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func Test_ParseAlertID(t *testing.T) {
	t.Run("round-trips a valid UUID", func(t *testing.T) {
		raw := uuid.NewString()
		alertID, err := ParseAlertID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, alertID.String())
		assert.False(t, alertID.IsNil())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := ParseAlertID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := ParseAlertID(uuid.Nil.String())
		require.Error(t, err)
	})
}

func Test_NewIDs_Unique(t *testing.T) {
	assert.NotEqual(t, NewAlertID(), NewAlertID())
	assert.NotEqual(t, NewEventID(), NewEventID())
}
