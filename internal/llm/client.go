package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://api.deepseek.com"

// Config holds the process-wide pieces of the gateway. DefaultAPIKey is the
// fallback credential loaded once at startup; it is read-only afterwards.
type Config struct {
	BaseURL       string
	DefaultAPIKey string
	HTTPClient    *http.Client
	Logger        *logrus.Logger
}

// Client performs chat-completion calls against an OpenAI-compatible
// endpoint. It holds no per-request state; the credential is resolved fresh
// on every call because each request may carry its own key.
type Client struct {
	baseURL    string
	defaultKey string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		defaultKey: cfg.DefaultAPIKey,
		httpClient: cfg.HTTPClient,
		log:        cfg.Logger,
	}
}

// resolveKey applies the credential precedence: per-request override first,
// process default second. The resolved key is never logged.
func (c *Client) resolveKey(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if c.defaultKey != "" {
		return c.defaultKey, nil
	}
	return "", ErrCredentialMissing
}

func (c *Client) providerClient(override string) (openai.Client, error) {
	key, err := c.resolveKey(override)
	if err != nil {
		return openai.Client{}, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithBaseURL(c.baseURL),
		// The pipeline reports a failed call once; retry policy belongs to
		// the caller's transport layer.
		option.WithMaxRetries(0),
	}
	if c.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(c.httpClient))
	}
	return openai.NewClient(opts...), nil
}

func buildParams(req Request) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    req.Model,
		Messages: messages,
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.MaxTokens != nil {
		params.MaxTokens = openai.Int(*req.MaxTokens)
	}
	return params
}

// Complete performs one blocking chat-completion call and returns the
// extracted result. An empty choices array yields a Completion with empty
// content; deciding whether that is fatal is the normalizer's job.
func (c *Client) Complete(ctx context.Context, req Request) (*Completion, error) {
	provider, err := c.providerClient(req.APIKey)
	if err != nil {
		return nil, err
	}

	resp, err := provider.Chat.Completions.New(ctx, buildParams(req))
	if err != nil {
		return nil, c.wrapCallError(req.Model, err)
	}

	completion := &Completion{}
	if len(resp.Choices) > 0 {
		completion.Content = resp.Choices[0].Message.Content
		completion.FinishReason = string(resp.Choices[0].FinishReason)
	}
	if resp.Usage.TotalTokens > 0 || resp.Usage.PromptTokens > 0 {
		completion.Usage = &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	return completion, nil
}

func (c *Client) wrapCallError(model string, err error) error {
	ce := &CompletionError{Model: model, Cause: err}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		ce.StatusCode = apiErr.StatusCode
	}

	c.log.WithFields(logrus.Fields{
		"model":  model,
		"status": ce.StatusCode,
	}).WithError(err).Error("chat completion call failed")

	return ce
}
