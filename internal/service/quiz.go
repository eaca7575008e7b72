package service

import (
	"context"
	"encoding/json"
	"time"

	"kviss/internal/cache"
	"kviss/internal/domain"
	"kviss/internal/dto"
	"kviss/internal/logger"
	"kviss/internal/validation"

	"go.uber.org/zap"
)

// QuizService is the quiz generation and retrieval pipeline.
type QuizService interface {
	// GenerateQuiz runs the full pipeline: input validation, prompt
	// construction, LLM invocation, response extraction, structural
	// validation and persistence. It fails fast at every stage; no partial
	// quiz is ever persisted or returned.
	GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)

	// GetQuizByID returns the persisted quiz, or (nil, nil) when no quiz
	// with that identifier exists.
	GetQuizByID(ctx context.Context, id string) (*dto.QuizResponse, error)
}

type quizService struct {
	completions domain.CompletionService
	repo        domain.QuizRepository
	cache       domain.Cache
	validator   *validation.Validator
	cacheTTL    time.Duration
}

// NewQuizService creates a new QuizService. cache may be nil, in which case
// retrieval always hits the store.
func NewQuizService(
	completions domain.CompletionService,
	repo domain.QuizRepository,
	cacheAdapter domain.Cache,
	validator *validation.Validator,
	cacheTTL time.Duration,
) QuizService {
	return &quizService{
		completions: completions,
		repo:        repo,
		cache:       cacheAdapter,
		validator:   validator,
		cacheTTL:    cacheTTL,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	validated, verrs := s.validator.ValidateGenerateQuizRequest(req)
	if len(verrs) > 0 {
		return nil, verrs
	}

	prompt := BuildPrompt(validated)

	rawOutput, err := s.completions.Complete(ctx, prompt)
	if err != nil {
		logger.Get().Error("LLM completion failed",
			zap.String("theme", validated.Theme),
			zap.Int("num_questions", validated.NumQuestions),
			zap.Error(err))
		return nil, err
	}
	logger.Get().Debug("Raw provider output", zap.String("raw_output", rawOutput))

	candidate := extractJSONArray(rawOutput)

	questions, err := parseQuestions(candidate)
	if err != nil {
		// The raw text goes to the log for operator diagnosis; the caller
		// only sees the opaque error message.
		logger.Get().Error("Provider output rejected",
			zap.String("theme", validated.Theme),
			zap.String("raw_output", rawOutput),
			zap.Error(err))
		return nil, err
	}

	quiz := domain.NewQuiz(validated.Theme, validated.Difficulty, questions)
	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		logger.Get().Error("Failed to persist quiz",
			zap.String("theme", validated.Theme),
			zap.Error(err))
		return nil, domain.NewPersistenceError(err)
	}

	s.putQuizToCache(ctx, quiz)

	return &dto.GenerateQuizResponse{
		QuizID:    quiz.ID,
		Questions: dto.ToQuestionResponses(quiz.Questions),
	}, nil
}

func (s *quizService) GetQuizByID(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if verrs := s.validator.ValidateQuizID(id); len(verrs) > 0 {
		return nil, verrs
	}

	if cached := s.getQuizFromCache(ctx, id); cached != nil {
		return cached, nil
	}

	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		logger.Get().Error("Failed to load quiz", zap.String("quiz_id", id), zap.Error(err))
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, nil
	}

	s.putQuizToCache(ctx, quiz)

	return toQuizResponse(quiz), nil
}

// putQuizToCache is best effort: a cache failure is logged and never fails
// the request.
func (s *quizService) putQuizToCache(ctx context.Context, quiz *domain.Quiz) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(toQuizResponse(quiz))
	if err != nil {
		logger.Get().Warn("Failed to marshal quiz for cache", zap.String("quiz_id", quiz.ID), zap.Error(err))
		return
	}
	key := cache.QuizKey(quiz.ID)
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to cache quiz", zap.String("key", key), zap.Error(err))
	}
}

func (s *quizService) getQuizFromCache(ctx context.Context, id string) *dto.QuizResponse {
	if s.cache == nil {
		return nil
	}
	key := cache.QuizKey(id)
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var resp dto.QuizResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		logger.Get().Warn("Corrupt cache entry, ignoring", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &resp
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:         quiz.ID,
		Theme:      quiz.Theme,
		Difficulty: quiz.Difficulty,
		Questions:  dto.ToQuestionResponses(quiz.Questions),
	}
}
