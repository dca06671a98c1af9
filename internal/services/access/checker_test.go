package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/access"
)

func TestResolveCurrentUser(t *testing.T) {
	checker := access.NewStaticChecker(nil)

	_, err := checker.ResolveCurrentUser(context.Background())
	assert.True(t, apperr.IsPermissionDenied(err))

	ctx := access.WithUser(context.Background(), &access.User{ID: "u1", Name: "Mestre"})
	user, err := checker.ResolveCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestCheckWorldAccess(t *testing.T) {
	open := access.NewStaticChecker(&access.StaticConfig{})
	assert.NoError(t, open.CheckWorldAccess(context.Background(), &access.User{ID: "anyone"}, "world-1"))

	restricted := access.NewStaticChecker(&access.StaticConfig{AllowedUsers: []string{" gm-1 ", ""}})
	assert.NoError(t, restricted.CheckWorldAccess(context.Background(), &access.User{ID: "gm-1"}, "world-1"))

	err := restricted.CheckWorldAccess(context.Background(), &access.User{ID: "player-2"}, "world-1")
	assert.True(t, apperr.IsPermissionDenied(err))
	assert.Equal(t, "world-1", apperr.GetMeta(err)["world_id"])

	assert.True(t, apperr.IsValidation(restricted.CheckWorldAccess(context.Background(), &access.User{ID: "gm-1"}, "")))
	assert.True(t, apperr.IsPermissionDenied(restricted.CheckWorldAccess(context.Background(), nil, "world-1")))
}
