package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/enhance"
	"github.com/promptforge/promptforge/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "core.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestAuth(t *testing.T, s *store.SQLiteStore) *AuthService {
	t.Helper()
	return NewAuthService(s, auth.NewTokenManager("test_secret", time.Hour), auth.NewMemoryDenylist(), auth.NewBroker())
}

type stubTitler struct {
	title string
	err   error
	calls int
}

func (s *stubTitler) Title(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.title, s.err
}

type countingRecorder map[enhance.Category]int

func (c countingRecorder) PromptGenerated(category enhance.Category) { c[category]++ }

func TestSignUpSignInSignOut(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuth(t, s)
	ctx := context.Background()

	var events []auth.EventType
	unsubscribe := svc.OnAuthStateChange(func(ev auth.Event) { events = append(events, ev.Type) })
	defer unsubscribe()

	user, err := svc.SignUp(ctx, " Ada@Example.com ", "secret1", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = svc.SignUp(ctx, "ada@example.com", "secret2", "Ada")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.SignInWithPassword(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignInWithPassword(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := svc.SignInWithPassword(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)

	current, err := svc.GetSession(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.User.ID)

	require.NoError(t, svc.SignOut(ctx, current))

	_, err = svc.GetSession(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	assert.Equal(t, []auth.EventType{auth.SignedUp, auth.SignedIn, auth.SignedOut}, events)
}

func TestGetSessionInvalidToken(t *testing.T) {
	svc := newTestAuth(t, newTestStore(t))

	_, err := svc.GetSession(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPromptServiceCreate(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUserWithProfile(context.Background(), "u@example.com", "h", "U")
	require.NoError(t, err)

	recorder := countingRecorder{}
	svc := NewPromptService(s, nil, recorder, 5)
	ctx := context.Background()

	p, err := svc.Create(ctx, user.ID, "Write a blog post about coffee")
	require.NoError(t, err)

	_, want := enhance.Enhance("Write a blog post about coffee")
	assert.Equal(t, want, p.GeneratedPrompt)
	assert.Equal(t, "content", p.Category)
	assert.Equal(t, "Content: Write a blog post about coffee", p.Title)
	assert.Equal(t, 1, recorder[enhance.Content])

	_, err = svc.Create(ctx, user.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyIdea)

	got, err := svc.Get(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.UserIdea, got.UserIdea)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "U", profile.Name)
}

func TestPromptServiceListRecentHonoursLimit(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUserWithProfile(context.Background(), "u@example.com", "h", "U")
	require.NoError(t, err)
	svc := NewPromptService(s, nil, nil, 2)
	ctx := context.Background()

	for _, idea := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, user.ID, idea)
		require.NoError(t, err)
	}

	recent, err := svc.ListRecent(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].UserIdea)

	require.NoError(t, svc.Delete(ctx, user.ID, recent[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID, recent[0].ID), store.ErrNotFound)
}

func TestPromptServiceTitler(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUserWithProfile(context.Background(), "u@example.com", "h", "U")
	require.NoError(t, err)
	ctx := context.Background()

	titler := &stubTitler{title: "Coffee Blog Plan"}
	p, err := NewPromptService(s, titler, nil, 5).Create(ctx, user.ID, "Write a blog post about coffee")
	require.NoError(t, err)
	assert.Equal(t, "Coffee Blog Plan", p.Title)
	assert.Equal(t, 1, titler.calls)

	failing := &stubTitler{err: errors.New("quota exceeded")}
	p, err = NewPromptService(s, failing, nil, 5).Create(ctx, user.ID, "describe a sunset")
	require.NoError(t, err)
	assert.Equal(t, "General: describe a sunset", p.Title)
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Coffee Blog", cleanTitle("\"Coffee Blog.\"\n"))
}
