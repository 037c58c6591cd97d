package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/promptforge/promptforge/internal/enhance"
	"github.com/promptforge/promptforge/internal/logger"
	"github.com/promptforge/promptforge/internal/store"
	"github.com/promptforge/promptforge/internal/utils"
)

const titleTimeout = 5 * time.Second

var ErrEmptyIdea = errors.New("user idea is required")

type PromptStore interface {
	CreatePrompt(ctx context.Context, p *store.Prompt) error
	GetPrompt(ctx context.Context, id, userID string) (*store.Prompt, error)
	ListRecentPrompts(ctx context.Context, userID string, limit int) ([]store.Prompt, error)
	DeletePrompt(ctx context.Context, id, userID string) error
	GetProfile(ctx context.Context, userID string) (*store.Profile, error)
}

// Titler produces a short label for a saved prompt.
type Titler interface {
	Title(ctx context.Context, idea string) (string, error)
}

type GenerationRecorder interface {
	PromptGenerated(category enhance.Category)
}

type PromptService struct {
	store    PromptStore
	titler   Titler             // optional
	recorder GenerationRecorder // optional
	limit    int
}

func NewPromptService(s PromptStore, titler Titler, recorder GenerationRecorder, recentLimit int) *PromptService {
	return &PromptService{
		store:    s,
		titler:   titler,
		recorder: recorder,
		limit:    recentLimit,
	}
}

// Generate runs the enhancement pipeline without persisting anything.
func (s *PromptService) Generate(idea string) (enhance.Category, string) {
	category, text := enhance.Enhance(idea)
	if s.recorder != nil {
		s.recorder.PromptGenerated(category)
	}
	return category, text
}

// Create generates a prompt for idea and saves the pair for userID.
func (s *PromptService) Create(ctx context.Context, userID, idea string) (*store.Prompt, error) {
	if utils.IsBlank(idea) {
		return nil, ErrEmptyIdea
	}

	category, text := s.Generate(idea)
	p := &store.Prompt{
		UserID:          userID,
		UserIdea:        idea,
		GeneratedPrompt: text,
		Category:        string(category),
		Title:           s.title(ctx, category, idea),
	}
	if err := s.store.CreatePrompt(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save prompt: %w", err)
	}
	return p, nil
}

func (s *PromptService) title(ctx context.Context, category enhance.Category, idea string) string {
	fallback := FallbackTitle(category, idea)
	if s.titler == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()

	title, err := s.titler.Title(ctx, idea)
	if err != nil {
		logger.Log.Warn("Title generation failed, using fallback",
			zap.String("idea", utils.Preview(idea, 50)), zap.Error(err))
		return fallback
	}
	return title
}

// FallbackTitle is the deterministic title used when no LLM is configured.
func FallbackTitle(category enhance.Category, idea string) string {
	return category.Label() + ": " + utils.Preview(idea, 40)
}

func (s *PromptService) ListRecent(ctx context.Context, userID string) ([]store.Prompt, error) {
	return s.store.ListRecentPrompts(ctx, userID, s.limit)
}

func (s *PromptService) Get(ctx context.Context, userID, promptID string) (*store.Prompt, error) {
	return s.store.GetPrompt(ctx, promptID, userID)
}

func (s *PromptService) Delete(ctx context.Context, userID, promptID string) error {
	return s.store.DeletePrompt(ctx, promptID, userID)
}

func (s *PromptService) GetProfile(ctx context.Context, userID string) (*store.Profile, error) {
	return s.store.GetProfile(ctx, userID)
}
