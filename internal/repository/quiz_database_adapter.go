package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"kviss/internal/domain"
	"kviss/internal/repository/models"
	"kviss/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository. The identifier is assigned
// here, on a successful single-row insert only; on failure quiz.ID stays
// empty so a caller can never observe a fabricated identifier.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	modelQuiz, err := toModelQuiz(quiz)
	if err != nil {
		return err
	}
	modelQuiz.ID = util.NewQuizID()
	modelQuiz.CreatedAt = time.Now()
	modelQuiz.UpdatedAt = time.Now()

	query := `INSERT INTO quizzes (
		id, theme, difficulty, questions, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6
	)`

	_, err = a.db.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.Theme,
		modelQuiz.Difficulty,
		modelQuiz.Questions,
		modelQuiz.CreatedAt,
		modelQuiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	quiz.ID = modelQuiz.ID
	quiz.CreatedAt = modelQuiz.CreatedAt
	quiz.UpdatedAt = modelQuiz.UpdatedAt
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var modelQuiz models.Quiz
	query := `SELECT
		id "id",
		theme "theme",
		difficulty "difficulty",
		questions "questions",
		created_at "created_at",
		updated_at "updated_at"
	FROM quizzes
	WHERE id = :1
	AND deleted_at IS NULL`

	err := a.db.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&modelQuiz)
}

// Helper functions for model conversion

func toDomainQuiz(m *models.Quiz) (*domain.Quiz, error) {
	if m == nil {
		return nil, fmt.Errorf("cannot convert nil models.Quiz to domain.Quiz")
	}
	var questions []domain.Question
	if err := json.Unmarshal([]byte(m.Questions), &questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions for quiz %s: %w", m.ID, err)
	}
	return &domain.Quiz{
		ID:         m.ID,
		Theme:      m.Theme,
		Difficulty: m.Difficulty,
		Questions:  questions,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

func toModelQuiz(d *domain.Quiz) (*models.Quiz, error) {
	if d == nil {
		return nil, fmt.Errorf("cannot save nil quiz")
	}
	questions, err := json.Marshal(d.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	return &models.Quiz{
		ID:         d.ID,
		Theme:      d.Theme,
		Difficulty: d.Difficulty,
		Questions:  string(questions),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}
