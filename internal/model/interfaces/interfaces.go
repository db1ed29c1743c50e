package interfaces

import (
	"context"

	"github.com/maxbolgarin/promoreport/internal/model"
)

// AgentAPI defines the interface for calling LLM AI models
type AgentAPI interface {
	CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error)
}

// CommitCollector lists the commits of a promotion
type CommitCollector interface {
	Collect(ctx context.Context, from, to, commitRange string) ([]model.Commit, error)
	RepoURL() string
}

// Summarizer writes a markdown summary of promoted commits
type Summarizer interface {
	SummarizeCommits(ctx context.Context, commits []model.Commit, promotionType string) (string, error)
}

// ImpactMatcher maps changed components to the pipelines using them
type ImpactMatcher interface {
	Match(ctx context.Context, components []model.ChangedComponent) (model.ImpactMap, error)
	TasksDir() string
	PipelinesDir() string
}

// Mailer delivers a rendered report
type Mailer interface {
	Enabled() bool
	Subject(promotionType, from, to string) string
	Send(ctx context.Context, subject string, html []byte) error
}
