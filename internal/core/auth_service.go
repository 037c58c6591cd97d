package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/logger"
	"github.com/promptforge/promptforge/internal/store"
	"github.com/promptforge/promptforge/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type UserStore interface {
	CreateUserWithProfile(ctx context.Context, email, passwordHash, name string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	GetUserByID(ctx context.Context, id string) (*store.User, error)
}

// Session is an authenticated user plus the token that proves it.
type Session struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *store.User `json:"user"`
	tokenID     string
}

type AuthService struct {
	users    UserStore
	tokens   *auth.TokenManager
	denylist auth.Denylist
	events   *auth.Broker
}

func NewAuthService(users UserStore, tokens *auth.TokenManager, denylist auth.Denylist, events *auth.Broker) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		denylist: denylist,
		events:   events,
	}
}

// SignUp creates the account and its profile. It does not sign the user in.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*store.User, error) {
	email = utils.NormalizeEmail(email)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUserWithProfile(ctx, email, hash, name)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.events.Publish(auth.Event{Type: auth.SignedUp, UserID: user.ID})
	return user, nil
}

func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetUserByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	s.events.Publish(auth.Event{Type: auth.SignedIn, UserID: user.ID})
	return &Session{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetSession resolves a bearer token to its live session.
func (s *AuthService) GetSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.Contains(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token status: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}

	return &Session{AccessToken: token, ExpiresAt: claims.ExpiresAt, User: user, tokenID: claims.TokenID}, nil
}

// SignOut revokes the session's token for the rest of its lifetime.
func (s *AuthService) SignOut(ctx context.Context, session *Session) error {
	if err := s.denylist.Add(ctx, session.tokenID, time.Until(session.ExpiresAt)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	logger.Log.Info("User signed out", zap.String("user_id", session.User.ID))
	s.events.Publish(auth.Event{Type: auth.SignedOut, UserID: session.User.ID})
	return nil
}

// OnAuthStateChange subscribes fn to session events and returns the
// function that releases the subscription.
func (s *AuthService) OnAuthStateChange(fn func(auth.Event)) (unsubscribe func()) {
	return s.events.Subscribe(fn)
}
