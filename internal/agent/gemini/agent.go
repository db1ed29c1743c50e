package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/promoreport/internal/model"
	"github.com/maxbolgarin/promoreport/internal/model/interfaces"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"
)

var _ interfaces.AgentAPI = (*Agent)(nil)

// Agent calls Google Gemini models
type Agent struct {
	client *genai.Client
	config model.ModelConfig
}

func New(ctx context.Context, cfg model.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, erro.New("Gemini API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)

	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, erro.Wrap(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: transport},
	}
	if cfg.URL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.URL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create Gemini client")
	}

	agent := &Agent{
		client: client,
		config: cfg,
	}

	if cfg.IsTest {
		if err := agent.testConnection(ctx); err != nil {
			return nil, erro.Wrap(err, "failed to connect to Gemini API")
		}
	}

	return agent, nil
}

func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: lang.Check(req.ResponseType, "text/plain"),
		Temperature:      &req.Temperature,
		MaxOutputTokens:  int32(req.MaxTokens),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemPrompt}}}
	}

	result, err := a.client.Models.GenerateContent(ctx,
		a.config.Model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: req.Prompt}}}},
		config,
	)
	if err != nil {
		return model.APIResponse{}, a.handleAPIError(err)
	}

	var content strings.Builder
	if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			content.WriteString(part.Text)
		}
	}

	out := model.APIResponse{
		CreateTime: result.CreateTime,
		Content:    strings.TrimSpace(content.String()),
	}
	if usage := result.UsageMetadata; usage != nil {
		out.PromptTokens = int(usage.PromptTokenCount)
		out.CompletionTokens = int(usage.CandidatesTokenCount)
		out.TotalTokens = int(usage.TotalTokenCount)
	}

	return out, nil
}

// handleAPIError classifies genai failures, keeping the original error as the cause
func (a *Agent) handleAPIError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return erro.Wrap(err, "Gemini API error")
	}

	switch {
	case strings.Contains(apiErr.Message, "location is not supported"):
		return erro.Wrap(err, "region not supported by Gemini API")
	case apiErr.Code == http.StatusTooManyRequests:
		return erro.Wrap(err, "rate limit exceeded")
	case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
		return erro.Wrap(err, "authentication failed")
	case apiErr.Code >= http.StatusInternalServerError:
		return erro.Wrap(err, "Gemini API service unavailable")
	default:
		return erro.Wrap(err, "Gemini API error")
	}
}

func (a *Agent) testConnection(ctx context.Context) error {
	_, err := a.CallAPI(ctx, model.APIRequest{
		Prompt:      "Respond with 'OK' if you can understand this message.",
		MaxTokens:   10,
		Temperature: 0.5,
	})
	return err
}
