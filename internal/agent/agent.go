package agent

import (
	"context"
	"strings"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/promoreport/internal/agent/claude"
	"github.com/maxbolgarin/promoreport/internal/agent/gemini"
	"github.com/maxbolgarin/promoreport/internal/agent/openai"
	"github.com/maxbolgarin/promoreport/internal/agent/prompts"
	"github.com/maxbolgarin/promoreport/internal/model"
	"github.com/maxbolgarin/promoreport/internal/model/interfaces"
)

// MaxSummaryCommits is the number of commits sent to the AI service, the rest is dropped
const MaxSummaryCommits = 50

type Agent struct {
	cfg Config
	log logze.Logger
	pb  *prompts.Builder
	api interfaces.AgentAPI
}

func New(ctx context.Context, cfg Config) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	modelCfg := model.ModelConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		URL:      cfg.BaseURL,
		ProxyURL: cfg.ProxyURL,
		IsTest:   cfg.IsTest,
	}

	var (
		api interfaces.AgentAPI
		err error
	)
	switch cfg.Type {
	case Gemini:
		api, err = gemini.New(ctx, modelCfg)
	case OpenAI:
		api, err = openai.New(ctx, modelCfg)
	case Claude:
		var cli *cliex.HTTP
		// The Claude agent resolves the full messages URL from BaseURL itself
		cli, err = cliex.NewWithConfig(cliex.Config{
			UserAgent:      cfg.UserAgent,
			ProxyAddress:   cfg.ProxyURL,
			RequestTimeout: cfg.Timeout,
		})
		if err != nil {
			return nil, errm.Wrap(err, "failed to create HTTP client")
		}
		api, err = claude.New(ctx, cli, modelCfg)
	default:
		return nil, errm.Errorf("unsupported agent type: %s", cfg.Type)
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to create agent")
	}

	return NewWithAPI(cfg, api), nil
}

// NewWithAPI creates an agent on top of an already constructed model API.
// The config is expected to be prepared.
func NewWithAPI(cfg Config, api interfaces.AgentAPI) *Agent {
	return &Agent{
		cfg: cfg,
		log: logze.With("component", "agent", "type", cfg.Type),
		pb:  prompts.NewBuilder(cfg.Language),
		api: api,
	}
}

// SummarizeCommits generates a markdown summary of promoted commits.
// Only the first MaxSummaryCommits commits are sent.
func (a *Agent) SummarizeCommits(ctx context.Context, commits []model.Commit, promotionType string) (string, error) {
	if len(commits) > MaxSummaryCommits {
		a.log.Warn("too many commits, truncating", "total", len(commits), "limit", MaxSummaryCommits)
		commits = commits[:MaxSummaryCommits]
	}

	timer := abstract.StartTimer()
	summary, err := a.apiCall(ctx, a.pb.BuildSummaryPrompt(commits, promotionType))
	if err != nil {
		return "", errm.Wrap(err, "failed to generate summary")
	}

	a.log.Info("generated summary", "commits", len(commits), "length", len(summary), "elapsed_time", timer.ElapsedTime().String())

	return summary, nil
}

func (a *Agent) apiCall(ctx context.Context, prompt model.Prompt) (string, error) {
	response, err := a.api.CallAPI(ctx, model.APIRequest{
		Prompt:       prompt.UserPrompt,
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    a.cfg.MaxTokens,
		Temperature:  a.cfg.Temperature,
		ResponseType: "text/plain",
	})
	if err != nil {
		return "", errm.Wrap(err, "failed to call API")
	}

	if strings.TrimSpace(response.Content) == "" {
		return "", errEmptyResponse
	}

	a.log.Debug("API call finished",
		"prompt_tokens", response.PromptTokens,
		"completion_tokens", response.CompletionTokens,
		"total_tokens", response.TotalTokens,
	)

	return response.Content, nil
}
