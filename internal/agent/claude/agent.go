package claude

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/promoreport/internal/model"
	"github.com/maxbolgarin/promoreport/internal/model/interfaces"
)

const (
	defaultModel     = "claude-3-5-haiku-20241022"
	defaultBaseURL   = "https://api.anthropic.com"
	messagesPath     = "/v1/messages"
	anthropicVersion = "2023-06-01"
	contentTypeText  = "text"
	roleUser         = "user"
)

var _ interfaces.AgentAPI = (*Agent)(nil)

// Agent calls the Anthropic messages API
type Agent struct {
	cfg model.ModelConfig
	cli *cliex.HTTP
}

func New(ctx context.Context, cli *cliex.HTTP, cfg model.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.New("Claude API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)
	cfg.URL = messagesURL(cfg.URL)

	cli.C().SetHeader("x-api-key", cfg.APIKey)
	cli.C().SetHeader("anthropic-version", anthropicVersion)

	agent := &Agent{
		cfg: cfg,
		cli: cli,
	}

	if cfg.IsTest {
		if err := agent.testConnection(ctx); err != nil {
			return nil, errm.Wrap(err, "failed to connect to Claude API")
		}
	}

	return agent, nil
}

func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	reqBody := messagesRequest{
		Model:       a.cfg.Model,
		System:      req.SystemPrompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []message{
			{Role: roleUser, Content: req.Prompt},
		},
	}

	var respBody messagesResponse
	_, err := a.cli.Post(ctx, lang.Check(req.URL, a.cfg.URL), reqBody, &respBody)
	if err != nil {
		return model.APIResponse{}, errm.Wrap(err, "failed to make API request")
	}

	if respBody.Error != nil {
		return model.APIResponse{}, errm.Errorf("Claude API error (%s): %s", respBody.Error.Type, respBody.Error.Message)
	}

	var responseText strings.Builder
	for _, c := range respBody.Content {
		if c.Type == contentTypeText {
			responseText.WriteString(c.Text)
		}
	}

	return model.APIResponse{
		CreateTime:       time.Now(),
		Content:          strings.TrimSpace(responseText.String()),
		PromptTokens:     respBody.Usage.InputTokens,
		CompletionTokens: respBody.Usage.OutputTokens,
		TotalTokens:      respBody.Usage.InputTokens + respBody.Usage.OutputTokens,
	}, nil
}

// messagesURL turns a configured base URL into the messages endpoint.
// A URL already pointing at the endpoint is kept as is.
func messagesURL(base string) string {
	base = strings.TrimSuffix(lang.Check(strings.TrimSpace(base), defaultBaseURL), "/")
	switch {
	case strings.HasSuffix(base, messagesPath):
		return base
	case strings.HasSuffix(base, "/v1"):
		return base + strings.TrimPrefix(messagesPath, "/v1")
	default:
		return base + messagesPath
	}
}

func (a *Agent) testConnection(ctx context.Context) error {
	_, err := a.CallAPI(ctx, model.APIRequest{
		Prompt:      "Respond with 'OK' if you can understand this message.",
		MaxTokens:   10,
		Temperature: 0.5,
	})
	if err != nil {
		return errm.Wrap(err, "connection test failed")
	}
	return nil
}
