package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/morgansundqvist/musecase/internal/domain"
)

type capturedRequest struct {
	Model               string           `json:"model"`
	Messages            []domain.Message `json:"messages"`
	Temperature         *float64         `json:"temperature"`
	TopP                *float64         `json:"top_p"`
	MaxCompletionTokens *int64           `json:"max_completion_tokens"`
	Stream              *bool            `json:"stream"`
	Stop                json.RawMessage  `json:"stop"`
}

func newFakeGroq(t *testing.T, status int, body string, captured *capturedRequest, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, baseURL string) *OpenAILLMService {
	t.Helper()
	svc, err := NewOpenAILLMService(CompletionOptions{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewOpenAILLMService() error = %v", err)
	}
	return svc
}

const okCompletion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "llama-3.3-70b-versatile",
  "choices": [
    {"index": 0, "finish_reason": "stop", "logprobs": null,
     "message": {"role": "assistant", "content": "Positive: the author loves it."}}
  ]
}`

func TestCompleteSendsTwoMessagesWithFixedSampling(t *testing.T) {
	var captured capturedRequest
	var hits int32
	srv := newFakeGroq(t, http.StatusOK, okCompletion, &captured, &hits)

	svc := newTestService(t, srv.URL)
	got, err := svc.Complete(context.Background(), "I love this product", "Classify the sentiment.")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "Positive: the author loves it." {
		t.Errorf("Complete() = %q", got)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("requests = %d, want 1", hits)
	}

	if captured.Model != domain.DefaultModel {
		t.Errorf("model = %q, want %q", captured.Model, domain.DefaultModel)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "Classify the sentiment." {
		t.Errorf("system message = %+v", captured.Messages[0])
	}
	if captured.Messages[1].Role != "user" || captured.Messages[1].Content != "I love this product" {
		t.Errorf("user message = %+v", captured.Messages[1])
	}
	if captured.Temperature == nil || *captured.Temperature != 1 {
		t.Errorf("temperature = %v, want 1", captured.Temperature)
	}
	if captured.TopP == nil || *captured.TopP != 1 {
		t.Errorf("top_p = %v, want 1", captured.TopP)
	}
	if captured.MaxCompletionTokens == nil || *captured.MaxCompletionTokens != 1024 {
		t.Errorf("max_completion_tokens = %v, want 1024", captured.MaxCompletionTokens)
	}
	if captured.Stream != nil && *captured.Stream {
		t.Error("stream must not be enabled")
	}
	if len(captured.Stop) != 0 && string(captured.Stop) != "null" {
		t.Errorf("stop = %s, want none", captured.Stop)
	}
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantIs     error
	}{
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error": {"message": "rate limit reached", "type": "tokens"}}`,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "bad credentials",
			status:     http.StatusUnauthorized,
			body:       `{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`,
			wantIs: domain.ErrNoChoices,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := newFakeGroq(t, tt.status, tt.body, nil, &hits)
			svc := newTestService(t, srv.URL)

			_, err := svc.Complete(context.Background(), "hello", "")
			var upErr *domain.UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("Complete() error = %v, want *domain.UpstreamError", err)
			}
			if upErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", upErr.StatusCode, tt.wantStatus)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantIs)
			}
			if atomic.LoadInt32(&hits) != 1 {
				t.Errorf("requests = %d, want exactly 1 (no retries)", hits)
			}
		})
	}
}

func TestCompleteNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := newTestService(t, url)
	_, err := svc.Complete(context.Background(), "hello", "")
	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("Complete() error = %v, want *domain.UpstreamError", err)
	}
	if upErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", upErr.StatusCode)
	}
}

func TestNewOpenAILLMServiceRequiresKey(t *testing.T) {
	_, err := NewOpenAILLMService(CompletionOptions{APIKey: "  "})
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewOpenAILLMService() error = %v, want *domain.ConfigurationError", err)
	}
}

func TestNewOpenAILLMServiceDefaults(t *testing.T) {
	svc, err := NewOpenAILLMService(CompletionOptions{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewOpenAILLMService() error = %v", err)
	}
	if svc.Model() != domain.DefaultModel {
		t.Errorf("Model() = %q", svc.Model())
	}
}
