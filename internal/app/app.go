package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/promoreport/internal/agent"
	"github.com/maxbolgarin/promoreport/internal/collector"
	"github.com/maxbolgarin/promoreport/internal/config"
	"github.com/maxbolgarin/promoreport/internal/impact"
	"github.com/maxbolgarin/promoreport/internal/model"
	"github.com/maxbolgarin/promoreport/internal/model/interfaces"
	"github.com/maxbolgarin/promoreport/internal/notifier"
	"github.com/maxbolgarin/promoreport/internal/report"
)

const (
	DefaultOutputPath = "promotion_report.html"

	noChangesSummary = "No changes to promote: every commit between the branches was filtered out or the branches are even."
)

// Options describe a single promotion report run
type Options struct {
	From          string
	To            string
	CommitRange   string
	PromotionType string // derived from To if empty
	OutputPath    string
	JSONPath      string
	NoEmail       bool
}

// PromoReport orchestrates report generation for a branch promotion
type PromoReport struct {
	collector  interfaces.CommitCollector
	summarizer interfaces.Summarizer
	matcher    interfaces.ImpactMatcher
	renderer   *report.Renderer
	mailer     interfaces.Mailer

	now func() time.Time
	log logze.Logger
}

// New creates all components from the configuration
func New(ctx context.Context, cfg config.Config) (*PromoReport, error) {
	s := &PromoReport{
		now: time.Now,
		log: logze.With("component", "app"),
	}

	if err := s.init(ctx, cfg); err != nil {
		return nil, errm.Wrap(err, "failed to initialize service")
	}

	return s, nil
}

func (s *PromoReport) init(ctx context.Context, cfg config.Config) (err error) {
	if err := cfg.Collector.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "failed to prepare collector config")
	}
	if err := cfg.Impact.PrepareAndValidate(); err != nil {
		return errm.Wrap(err, "failed to prepare impact config")
	}

	s.collector, err = collector.New(cfg.Collector, collector.NewExecRunner(cfg.Collector.RepoDir))
	if err != nil {
		return errm.Wrap(err, "failed to create commit collector")
	}

	pipelinesRoot := filepath.Join(cfg.Collector.RepoDir, filepath.FromSlash(cfg.Impact.PipelinesDir))
	s.matcher, err = impact.New(cfg.Impact, os.DirFS(pipelinesRoot))
	if err != nil {
		return errm.Wrap(err, "failed to create impact matcher")
	}

	s.summarizer, err = agent.New(ctx, cfg.Agent)
	if err != nil {
		return errm.Wrap(err, "failed to create AI agent")
	}

	s.renderer, err = report.New(cfg.Report)
	if err != nil {
		return errm.Wrap(err, "failed to create report renderer")
	}

	s.mailer, err = notifier.New(cfg.Notifier)
	if err != nil {
		return errm.Wrap(err, "failed to create notifier")
	}

	return nil
}

// Run generates the report, writes it to disk and emails it if configured.
// A delivery failure is logged and does not fail the run.
func (s *PromoReport) Run(ctx context.Context, opts Options) error {
	if opts.From == "" || opts.To == "" {
		return errm.New("source and destination branches are required")
	}
	opts.OutputPath = lang.Check(opts.OutputPath, DefaultOutputPath)
	promotionType := lang.Check(opts.PromotionType, model.PromotionType(opts.To))

	log := s.log.WithFields("from", opts.From, "to", opts.To, "type", promotionType)
	timer := abstract.StartTimer()

	commits, err := s.collector.Collect(ctx, opts.From, opts.To, opts.CommitRange)
	if err != nil {
		return errm.Wrap(err, "failed to collect commits")
	}

	components := impact.ExtractComponents(commits, s.matcher.TasksDir())
	impactMap, err := s.matcher.Match(ctx, components)
	if err != nil {
		return errm.Wrap(err, "failed to match pipelines")
	}
	log.Info("analyzed changes", "commits", len(commits), "components", len(components),
		"pipelines", impactMap.AffectedPipelines())

	summary := noChangesSummary
	if len(commits) > 0 {
		summary, err = s.summarizer.SummarizeCommits(ctx, commits, promotionType)
		if err != nil {
			return errm.Wrap(err, "failed to summarize commits")
		}
	}

	rep, err := s.renderer.Build(report.Input{
		PromotionType: promotionType,
		From:          opts.From,
		To:            opts.To,
		Summary:       summary,
		Commits:       commits,
		Components:    components,
		Impact:        impactMap,
		GeneratedAt:   s.now(),
		RepoURL:       s.collector.RepoURL(),
		TasksDir:      s.matcher.TasksDir(),
		PipelinesDir:  s.matcher.PipelinesDir(),
	})
	if err != nil {
		return errm.Wrap(err, "failed to build report")
	}

	html, err := s.renderer.Render(rep)
	if err != nil {
		return errm.Wrap(err, "failed to render report")
	}
	if err := os.WriteFile(opts.OutputPath, html, 0o644); err != nil {
		return errm.Wrap(err, "failed to write report")
	}
	log.Info("report written", "path", opts.OutputPath)

	if opts.JSONPath != "" {
		if err := writeJSON(opts.JSONPath, rep); err != nil {
			return err
		}
		log.Info("report data written", "path", opts.JSONPath)
	}

	switch {
	case opts.NoEmail:
		log.Debug("email disabled by flag")
	case !s.mailer.Enabled():
		log.Info("smtp is not configured, skipping email")
	default:
		subject := s.mailer.Subject(promotionType, opts.From, opts.To)
		if err := s.mailer.Send(ctx, subject, html); err != nil {
			log.Warn("failed to send report", "error", err)
		}
	}

	log.Info("promotion report done", "elapsed_time", timer.ElapsedTime().String())
	return nil
}

func writeJSON(path string, rep *report.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errm.Wrap(err, "failed to create json file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errm.Wrap(cerr, "failed to close json file")
		}
	}()
	return report.WriteJSON(f, rep)
}
