package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarhost/portal/internal/model"
)

func TestWithUserAndUserFromContext(t *testing.T) {
	user := &model.User{ID: 7, Role: model.RoleCustomer}

	ctx := WithUser(context.Background(), user)

	got, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), got.ID)
}

func TestUserFromContextMissing(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}
