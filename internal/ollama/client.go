package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultBaseURL is where Ollama listens unless OLLAMA_HOST says otherwise.
const DefaultBaseURL = "http://localhost:11434"

const userAgent = "paper-renamer"

// Config configures a Client.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Temperature float32
}

// DefaultConfig returns the configuration for a stock local install.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 60 * time.Second,
	}
}

// Client lists and runs models on an Ollama server.
type Client struct {
	httpClient  *http.Client
	llm         *openai.Client
	baseURL     string
	temperature float32
	log         *zap.Logger
}

// NewClient creates a Client. A nil logger disables logging.
func NewClient(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	base := NormalizeBaseURL(cfg.BaseURL)
	httpClient := &http.Client{Timeout: cfg.Timeout}

	// Ollama ignores the key, but the OpenAI client insists on one.
	oc := openai.DefaultConfig("ollama")
	oc.BaseURL = base + "/v1"
	oc.HTTPClient = httpClient

	return &Client{
		httpClient:  httpClient,
		llm:         openai.NewClientWithConfig(oc),
		baseURL:     base,
		temperature: cfg.Temperature,
		log:         log,
	}
}

// NormalizeBaseURL accepts the forms OLLAMA_HOST is commonly given in
// ("localhost:11434", "http://host:11434/") and returns scheme://host:port.
func NormalizeBaseURL(raw string) string {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return DefaultBaseURL
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	return s
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// ListRunning returns the models currently loaded in memory.
func (c *Client) ListRunning(ctx context.Context) ([]string, error) {
	return c.listModels(ctx, "/api/ps")
}

// ListInstalled returns every model pulled onto the server.
func (c *Client) ListInstalled(ctx context.Context) ([]string, error) {
	return c.listModels(ctx, "/api/tags")
}

func (c *Client) listModels(ctx context.Context, path string) ([]string, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp tagsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.Wrap(apperr.KindBackendUnreachable, "decode "+path, err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	reqID := uuid.NewString()
	start := time.Now()
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBackendUnreachable, "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug("ollama.request", zap.String("id", reqID), zap.String("method", req.Method), zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(ctx, "GET "+path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("ollama.response",
		zap.String("id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.KindBackendUnreachable, "GET %s: HTTP %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classify(ctx, "read "+path, err)
	}
	return body, nil
}

// Generate sends prompt to modelName and returns the raw completion text.
// The server is asked for a JSON object response.
func (c *Client) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	reqID := uuid.NewString()
	start := time.Now()
	c.log.Debug("ollama.request",
		zap.String("id", reqID),
		zap.String("model", modelName),
		zap.Int("prompt_chars", len(prompt)),
	)

	resp, err := c.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       modelName,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.log.Debug("ollama.error", zap.String("id", reqID), zap.Error(err))
		return "", c.classifyModel(ctx, modelName, err)
	}

	c.log.Debug("ollama.response",
		zap.String("id", reqID),
		zap.Int("choices", len(resp.Choices)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) classifyModel(ctx context.Context, modelName string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
		return apperr.Wrap(apperr.KindBackendUnreachable, fmt.Sprintf("model %q not found", modelName), err).
			WithRemedy("ollama pull " + modelName)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusNotFound {
		return apperr.Wrap(apperr.KindBackendUnreachable, fmt.Sprintf("model %q not found", modelName), err).
			WithRemedy("ollama pull " + modelName)
	}
	return c.classify(ctx, "generate", err)
}

// classify keeps caller cancellation distinguishable from backend trouble.
func (c *Client) classify(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return apperr.Wrap(apperr.KindBackendUnreachable, op+": timed out", err)
	}
	return apperr.Wrap(apperr.KindBackendUnreachable, op, err)
}
