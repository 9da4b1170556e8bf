package user_test

import (
	"context"
	"testing"

	"go-timeclock/internal/testutil"
	"go-timeclock/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCompany(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, db.Exec(
		"INSERT INTO companies (id, name, owner_id, created_at) VALUES (?, ?, 'system', CURRENT_TIMESTAMP)", id, name,
	).Error)
	return id
}

func TestRepository_TenantScoping(t *testing.T) {
	db := testutil.NewDB(t)
	repo := user.NewRepository(db)
	ctx := context.Background()

	acme := seedCompany(t, db, "Acme")
	globex := seedCompany(t, db, "Globex")

	u := &user.User{ID: uuid.NewString(), Username: "alice", Email: "a@acme.test", PasswordHash: "x", Role: "user", CompanyID: acme}
	require.NoError(t, repo.Create(ctx, u))

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByID(ctx, globex, u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, globex, u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := repo.FindAllByCompany(ctx, acme)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, acme, u.ID))
	assert.Equal(t, int64(0), testutil.Count(t, db, "users", ""))
}

func TestRepository_ExistsByUsernameCoversOwners(t *testing.T) {
	db := testutil.NewDB(t)
	repo := user.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Exec(
		"INSERT INTO owners (id, username, email, password_hash, created_at) VALUES (?, 'owner', 'owner@system.com', 'x', CURRENT_TIMESTAMP)",
		uuid.NewString(),
	).Error)

	exists, err := repo.ExistsByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}
