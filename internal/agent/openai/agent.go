package openai

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/promoreport/internal/model"
	"github.com/maxbolgarin/promoreport/internal/model/interfaces"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel = "gpt-4o-mini"
)

var _ interfaces.AgentAPI = (*Agent)(nil)

// Agent calls OpenAI chat completions or any compatible endpoint
type Agent struct {
	client *goopenai.Client
	cfg    model.ModelConfig
}

func New(ctx context.Context, cfg model.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.New("OpenAI API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.URL != "" {
		clientCfg.BaseURL = cfg.URL
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to parse proxy URL")
		}
		clientCfg.HTTPClient = &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)}}
	}

	agent := &Agent{
		client: goopenai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}

	// Test connection if needed (may take tokens)
	if cfg.IsTest {
		if err := agent.testConnection(ctx); err != nil {
			return nil, errm.Wrap(err, "failed to connect to OpenAI API")
		}
	}

	return agent, nil
}

func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       a.cfg.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return model.APIResponse{}, errm.Wrap(err, "OpenAI API error")
	}

	var content string
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}

	return model.APIResponse{
		CreateTime:       time.Unix(resp.Created, 0),
		Content:          content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
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
