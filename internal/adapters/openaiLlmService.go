package adapters

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/morgansundqvist/musecase/internal/domain"
	"github.com/morgansundqvist/musecase/internal/logger"
	"github.com/morgansundqvist/musecase/internal/metrics"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBaseURL is Groq's OpenAI-compatible API root.
const DefaultBaseURL = "https://api.groq.com/openai/v1/"

type CompletionOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Log        *logger.Logger
}

// OpenAILLMService sends chat completions to an OpenAI-compatible endpoint.
// It keeps no per-request state and is safe for concurrent use.
type OpenAILLMService struct {
	client openai.Client
	model  string
	log    *logger.Logger
}

// NewOpenAILLMService fails with a ConfigurationError when no API key is set.
func NewOpenAILLMService(opts CompletionOptions) (*OpenAILLMService, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, &domain.ConfigurationError{Setting: "GROQ_API_KEY", Reason: "an API key is required to construct the completion client"}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	model := opts.Model
	if model == "" {
		model = domain.DefaultModel
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &OpenAILLMService{
		client: openai.NewClient(reqOpts...),
		model:  model,
		log:    log,
	}, nil
}

func (s *OpenAILLMService) Model() string {
	return s.model
}

func (s *OpenAILLMService) Complete(ctx context.Context, userContent, instruction string) (string, error) {
	req := domain.CompletionRequest{Instruction: instruction, UserContent: userContent}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	for _, m := range req.Messages() {
		if m.Role == domain.RoleSystem {
			messages = append(messages, openai.SystemMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	start := time.Now()
	chatCompletion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(s.model),
		Messages:            messages,
		Temperature:         openai.Float(domain.DefaultTemperature),
		TopP:                openai.Float(domain.DefaultTopP),
		MaxCompletionTokens: openai.Int(domain.DefaultMaxTokens),
	})
	elapsed := time.Since(start)

	if err != nil {
		metrics.CompletionDuration.WithLabelValues("error").Observe(elapsed.Seconds())
		upstreamErr := &domain.UpstreamError{Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			upstreamErr.StatusCode = apiErr.StatusCode
		}
		s.log.Warn("chat completion failed", "model", s.model, "status", upstreamErr.StatusCode, "elapsed", elapsed, "error", err)
		return "", upstreamErr
	}
	if len(chatCompletion.Choices) == 0 {
		metrics.CompletionDuration.WithLabelValues("error").Observe(elapsed.Seconds())
		s.log.Warn("chat completion returned no choices", "model", s.model)
		return "", &domain.UpstreamError{Err: domain.ErrNoChoices}
	}

	metrics.CompletionDuration.WithLabelValues("success").Observe(elapsed.Seconds())
	s.log.Debug("chat completion done", "model", s.model, "elapsed", elapsed, "chars", len(chatCompletion.Choices[0].Message.Content))
	return chatCompletion.Choices[0].Message.Content, nil
}
