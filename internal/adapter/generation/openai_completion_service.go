package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"kviss/internal/config"
	"kviss/internal/domain"
	"kviss/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAICompletionService implements domain.CompletionService on top of a
// langchaingo chat model. The model is injected so tests can substitute a
// double; there is no package-level client.
type OpenAICompletionService struct {
	llm       llms.Model
	maxTokens int
}

// NewOpenAILLM builds the langchaingo OpenAI client from configuration.
// The HTTP client carries the only timeout the pipeline has; a hung
// provider call is bounded by it and nothing else.
func NewOpenAILLM(cfg config.OpenAIConfig) (*openai.LLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(httpClient),
	)
}

// NewOpenAICompletionService creates a CompletionService around an already
// constructed model.
func NewOpenAICompletionService(llm llms.Model, maxTokens int) domain.CompletionService {
	return &OpenAICompletionService{
		llm:       llm,
		maxTokens: maxTokens,
	}
}

// Complete sends the prompt and returns the first completion's raw text.
// Transport or service failures surface as GENERATION_UNAVAILABLE; a
// response with no choices or empty content surfaces as
// UNEXPECTED_PROVIDER_RESPONSE. No retry is attempted.
func (s *OpenAICompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		logger.Get().Error("Provider call failed", zap.Error(err))
		return "", domain.NewGenerationUnavailableError(err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		logger.Get().Error("Provider returned no choices")
		return "", domain.NewUnexpectedProviderResponseError(fmt.Errorf("response contains no choices"))
	}

	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		logger.Get().Error("Provider returned empty message content")
		return "", domain.NewUnexpectedProviderResponseError(fmt.Errorf("first choice has empty content"))
	}

	return content, nil
}

var _ domain.CompletionService = (*OpenAICompletionService)(nil)
