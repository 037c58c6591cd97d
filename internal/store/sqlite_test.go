package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateUserWithProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUserWithProfile(ctx, "ada@example.com", "hash", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	byEmail, err := s.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	profile, err := s.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUserWithProfile(ctx, "ada@example.com", "hash", "Ada")
	require.NoError(t, err)

	_, err = s.CreateUserWithProfile(ctx, "ada@example.com", "other", "Ada Again")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMissingRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetPrompt(ctx, "missing", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromptLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner, err := s.CreateUserWithProfile(ctx, "owner@example.com", "hash", "Owner")
	require.NoError(t, err)
	other, err := s.CreateUserWithProfile(ctx, "other@example.com", "hash", "Other")
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		p := &Prompt{
			UserID:          owner.ID,
			UserIdea:        fmt.Sprintf("idea %d", i),
			GeneratedPrompt: fmt.Sprintf("generated %d", i),
			Category:        "generic",
			Title:           fmt.Sprintf("title %d", i),
		}
		require.NoError(t, s.CreatePrompt(ctx, p))
		assert.NotEmpty(t, p.ID)
	}
	require.NoError(t, s.CreatePrompt(ctx, &Prompt{UserID: other.ID, UserIdea: "theirs", GeneratedPrompt: "g", Category: "generic"}))

	recent, err := s.ListRecentPrompts(ctx, owner.ID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "idea 6", recent[0].UserIdea)
	assert.Equal(t, "idea 2", recent[4].UserIdea)

	target := recent[0]

	// Other users cannot see or delete it.
	_, err = s.GetPrompt(ctx, target.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeletePrompt(ctx, target.ID, other.ID), ErrNotFound)

	got, err := s.GetPrompt(ctx, target.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "generated 6", got.GeneratedPrompt)
	assert.Equal(t, "title 6", got.Title)

	require.NoError(t, s.DeletePrompt(ctx, target.ID, owner.ID))
	assert.ErrorIs(t, s.DeletePrompt(ctx, target.ID, owner.ID), ErrNotFound)

	recent, err = s.ListRecentPrompts(ctx, owner.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "idea 5", recent[0].UserIdea)
}

func TestListRecentPromptsEmpty(t *testing.T) {
	s := newTestStore(t)

	prompts, err := s.ListRecentPrompts(context.Background(), "nobody", 5)
	require.NoError(t, err)
	assert.NotNil(t, prompts)
	assert.Empty(t, prompts)
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"promptforge.db", "promptforge.db?_foreign_keys=on"},
		{"file:test.db?cache=shared", "file:test.db?cache=shared&_foreign_keys=on"},
		{"test.db?_foreign_keys=off", "test.db?_foreign_keys=off"},
		{"test.db?_fk=1", "test.db?_fk=1"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, withForeignKeys(tt.dsn))
		})
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var enabled int
	require.NoError(t, s.db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)

	err := s.CreatePrompt(ctx, &Prompt{UserID: "no-such-user", UserIdea: "idea", GeneratedPrompt: "g", Category: "generic"})
	assert.Error(t, err)

	owner, err := s.CreateUserWithProfile(ctx, "owner@example.com", "hash", "Owner")
	require.NoError(t, err)
	require.NoError(t, s.CreatePrompt(ctx, &Prompt{UserID: owner.ID, UserIdea: "idea", GeneratedPrompt: "g", Category: "generic"}))

	_, err = s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", owner.ID)
	require.NoError(t, err)

	prompts, err := s.ListRecentPrompts(ctx, owner.ID, 5)
	require.NoError(t, err)
	assert.Empty(t, prompts)
	_, err = s.GetProfile(ctx, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePromptFailureIsNotNotFound(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.DeletePrompt(context.Background(), "id", "user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
