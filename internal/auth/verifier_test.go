package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/auth"
)

func TestStaticVerifier_Verify(t *testing.T) {
	v := auth.NewStaticVerifier(map[string]auth.Identity{
		"tok-a": {UserID: "user-a"},
	})

	id, err := v.Verify(context.Background(), "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "user-a", id.UserID)

	_, err = v.Verify(context.Background(), "unknown")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestStaticVerifier_CopiesTable(t *testing.T) {
	tokens := map[string]auth.Identity{"tok-a": {UserID: "user-a"}}
	v := auth.NewStaticVerifier(tokens)

	// Mutating the caller's map after construction must not change behavior.
	tokens["tok-b"] = auth.Identity{UserID: "user-b"}
	delete(tokens, "tok-a")

	_, err := v.Verify(context.Background(), "tok-b")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	id, err := v.Verify(context.Background(), "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "user-a", id.UserID)
}
