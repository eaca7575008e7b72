package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"kviss/internal/cache"
	"kviss/internal/config"
	"kviss/internal/domain"
	"kviss/internal/dto"
	"kviss/internal/logger"
	"kviss/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockCompletionService struct {
	mock.Mock
}

func (m *MockCompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Fixtures ---

const testQuizID = "5f1b7a2c9d3e4f5a6b7c8d9e"

func validRequest() dto.GenerateQuizRequest {
	return dto.GenerateQuizRequest{
		Theme:        "Space Exploration",
		NumQuestions: 5,
		Difficulty:   4,
	}
}

func providerOutput(numQuestions int) string {
	questions := make([]domain.Question, 0, numQuestions)
	for i := 0; i < numQuestions; i++ {
		questions = append(questions, domain.Question{
			Question:      "Question?",
			Options:       domain.Options{A: "a", B: "b", C: "c", D: "d"},
			CorrectAnswer: "A",
		})
	}
	payload, _ := json.Marshal(questions)
	return "Sure, here is your quiz!\n" + string(payload) + "\nEnjoy!"
}

func newService(completions *MockCompletionService, repo *MockQuizRepository, c domain.Cache) QuizService {
	return NewQuizService(completions, repo, c, validation.NewValidator(), time.Hour)
}

// --- GenerateQuiz ---

func TestGenerateQuiz_Success(t *testing.T) {
	completions := new(MockCompletionService)
	repo := new(MockQuizRepository)
	mockCache := new(MockCache)

	expectedPrompt := BuildPrompt(&domain.QuizRequest{Theme: "Space Exploration", NumQuestions: 5, Difficulty: 4})
	completions.On("Complete", mock.Anything, expectedPrompt).Return(providerOutput(5), nil)
	repo.On("SaveQuiz", mock.Anything, mock.AnythingOfType("*domain.Quiz")).Run(func(args mock.Arguments) {
		quiz := args.Get(1).(*domain.Quiz)
		quiz.ID = testQuizID
		assert.Equal(t, "Space Exploration", quiz.Theme)
		assert.Equal(t, 4, quiz.Difficulty)
		assert.Len(t, quiz.Questions, 5)
	}).Return(nil)
	mockCache.On("Set", mock.Anything, cache.QuizKey(testQuizID), mock.AnythingOfType("string"), time.Hour).Return(nil)

	svc := newService(completions, repo, mockCache)
	resp, err := svc.GenerateQuiz(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, testQuizID, resp.QuizID)
	assert.Len(t, resp.Questions, 5)

	completions.AssertExpectations(t)
	repo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGenerateQuiz_InvalidInputNeverReachesProvider(t *testing.T) {
	completions := new(MockCompletionService)
	repo := new(MockQuizRepository)

	req := validRequest()
	req.Theme = ""
	svc := newService(completions, repo, nil)
	resp, err := svc.GenerateQuiz(context.Background(), req)
	assert.Nil(t, resp)

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "theme", verrs[0].Field)

	completions.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_ProviderUnavailable(t *testing.T) {
	completions := new(MockCompletionService)
	repo := new(MockQuizRepository)

	providerErr := domain.NewGenerationUnavailableError(errors.New("connection refused"))
	completions.On("Complete", mock.Anything, mock.Anything).Return("", providerErr)

	svc := newService(completions, repo, nil)
	resp, err := svc.GenerateQuiz(context.Background(), validRequest())
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeGenerationUnavailable, domainCode(t, err))

	repo.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_PlainProseIsNotPersisted(t *testing.T) {
	completions := new(MockCompletionService)
	repo := new(MockQuizRepository)

	completions.On("Complete", mock.Anything, mock.Anything).
		Return("I'm sorry, I cannot generate a quiz about that.", nil)

	svc := newService(completions, repo, nil)
	resp, err := svc.GenerateQuiz(context.Background(), validRequest())
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInvalidProviderOutput, domainCode(t, err))

	// Nothing may be written to the store for a failed generation.
	repo.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_StructurallyInvalidBatchIsNotPersisted(t *testing.T) {
	completions := new(MockCompletionService)
	repo := new(MockQuizRepository)

	completions.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"question": "q?", "options": {"A":"a","B":"b","C":"c","D":"d"}}]`, nil)

	svc := newService(completions, repo, nil)
	resp, err := svc.GenerateQuiz(context.Background(), validRequest())
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInvalidQuestionStructure, domainCode(t, err))

	repo.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_PersistenceFailure(t *testing.T) {
	completions := new(MockCompletionService)
	repo := new(MockQuizRepository)

	completions.On("Complete", mock.Anything, mock.Anything).Return(providerOutput(2), nil)
	repo.On("SaveQuiz", mock.Anything, mock.Anything).Return(errors.New("ORA-12170: connect timeout"))

	svc := newService(completions, repo, nil)
	resp, err := svc.GenerateQuiz(context.Background(), validRequest())
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodePersistence, domainCode(t, err))
}

func TestGenerateQuiz_CacheFailureDoesNotFailRequest(t *testing.T) {
	completions := new(MockCompletionService)
	repo := new(MockQuizRepository)
	mockCache := new(MockCache)

	completions.On("Complete", mock.Anything, mock.Anything).Return(providerOutput(1), nil)
	repo.On("SaveQuiz", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Quiz).ID = testQuizID
	}).Return(nil)
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("redis down"))

	svc := newService(completions, repo, mockCache)
	resp, err := svc.GenerateQuiz(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, testQuizID, resp.QuizID)
}

// --- GetQuizByID ---

func TestGetQuizByID_InvalidIDNeverReachesStore(t *testing.T) {
	repo := new(MockQuizRepository)

	svc := newService(new(MockCompletionService), repo, nil)
	resp, err := svc.GetQuizByID(context.Background(), "abc")
	assert.Nil(t, resp)

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "id", verrs[0].Field)

	repo.AssertNotCalled(t, "GetQuizByID", mock.Anything, mock.Anything)
}

func TestGetQuizByID_Found(t *testing.T) {
	repo := new(MockQuizRepository)
	quiz := domain.NewQuiz("Space Exploration", 4, []domain.Question{
		{Question: "q?", Options: domain.Options{A: "a", B: "b", C: "c", D: "d"}, CorrectAnswer: "A"},
	})
	quiz.ID = testQuizID
	repo.On("GetQuizByID", mock.Anything, testQuizID).Return(quiz, nil)

	svc := newService(new(MockCompletionService), repo, nil)
	resp, err := svc.GetQuizByID(context.Background(), testQuizID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, testQuizID, resp.ID)
	assert.Equal(t, "Space Exploration", resp.Theme)
	assert.Equal(t, 4, resp.Difficulty)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "A", resp.Questions[0].CorrectAnswer)
}

func TestGetQuizByID_NotFound(t *testing.T) {
	repo := new(MockQuizRepository)
	repo.On("GetQuizByID", mock.Anything, testQuizID).Return(nil, nil)

	svc := newService(new(MockCompletionService), repo, nil)
	resp, err := svc.GetQuizByID(context.Background(), testQuizID)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestGetQuizByID_CacheHitSkipsStore(t *testing.T) {
	repo := new(MockQuizRepository)
	mockCache := new(MockCache)

	cached := dto.QuizResponse{
		ID:         testQuizID,
		Theme:      "Space Exploration",
		Difficulty: 4,
		Questions: []dto.QuestionResponse{
			{Question: "q?", Options: domain.Options{A: "a", B: "b", C: "c", D: "d"}, CorrectAnswer: "A"},
		},
	}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	mockCache.On("Get", mock.Anything, cache.QuizKey(testQuizID)).Return(string(payload), nil)

	svc := newService(new(MockCompletionService), repo, mockCache)
	resp, err := svc.GetQuizByID(context.Background(), testQuizID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, cached, *resp)

	repo.AssertNotCalled(t, "GetQuizByID", mock.Anything, mock.Anything)
}

func TestGetQuizByID_CacheMissFallsThroughAndBackfills(t *testing.T) {
	repo := new(MockQuizRepository)
	mockCache := new(MockCache)

	quiz := domain.NewQuiz("Space Exploration", 4, []domain.Question{
		{Question: "q?", Options: domain.Options{A: "a", B: "b", C: "c", D: "d"}, CorrectAnswer: "A"},
	})
	quiz.ID = testQuizID

	mockCache.On("Get", mock.Anything, cache.QuizKey(testQuizID)).Return("", domain.ErrCacheMiss)
	repo.On("GetQuizByID", mock.Anything, testQuizID).Return(quiz, nil)
	mockCache.On("Set", mock.Anything, cache.QuizKey(testQuizID), mock.AnythingOfType("string"), time.Hour).Return(nil)

	svc := newService(new(MockCompletionService), repo, mockCache)
	resp, err := svc.GetQuizByID(context.Background(), testQuizID)
	require.NoError(t, err)
	assert.Equal(t, testQuizID, resp.ID)

	mockCache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestGetQuizByID_StoreFailure(t *testing.T) {
	repo := new(MockQuizRepository)
	repo.On("GetQuizByID", mock.Anything, testQuizID).Return(nil, errors.New("ORA-03113"))

	svc := newService(new(MockCompletionService), repo, nil)
	resp, err := svc.GetQuizByID(context.Background(), testQuizID)
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInternal, domainCode(t, err))
}
