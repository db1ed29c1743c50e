package collector

import (
	"context"
	"strings"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/promoreport/internal/model"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	logFormat = "--format=%H%x1f%s%x1f%an%x1f%ae%x1f%aI%x1e"
)

// Collector gathers the commits being promoted between two branches
type Collector struct {
	git    Runner
	filter *Filter

	cfg Config
	log logze.Logger
}

// New creates a new collector
func New(cfg Config, git Runner) (*Collector, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "failed to prepare and validate config")
	}

	c := &Collector{
		git:    git,
		filter: NewFilter(cfg.SkipMarkers),
		cfg:    cfg,
		log:    logze.With("component", "collector"),
	}

	if c.cfg.RepoURL == "" {
		webURL, err := RemoteWebURL(cfg.RepoDir, cfg.Remote)
		if err != nil {
			c.log.Warn("cannot derive repository web URL, commit links are disabled", "error", err)
		}
		c.cfg.RepoURL = webURL
	}

	return c, nil
}

// RepoURL returns the repository web URL, empty if unknown
func (c *Collector) RepoURL() string {
	return c.cfg.RepoURL
}

// Collect returns the commits present in the source branch and missing in the
// destination one, or the commits of commitRange when it is not empty.
// commitRange may be a git range (a..b), a single commit or a space-separated list of commits.
func (c *Collector) Collect(ctx context.Context, from, to, commitRange string) ([]model.Commit, error) {
	log := c.log.WithFields("from", from, "to", to)
	timer := abstract.StartTimer()

	listed, err := c.list(ctx, from, to, commitRange, log)
	if err != nil {
		return nil, err
	}

	commits := make([]model.Commit, 0, len(listed))
	for _, commit := range listed {
		if marker, skip := c.filter.Skip(commit.Subject); skip {
			log.DebugIf(c.cfg.Verbose, "skipping routine commit", "sha", commit.ShortSHA(), "marker", marker)
			continue
		}

		if err := c.enrich(ctx, &commit); err != nil {
			return nil, errm.Wrap(err, "failed to analyze commit "+commit.ShortSHA())
		}

		commits = append(commits, commit)
	}

	log.Info("collected commits",
		"listed", len(listed),
		"retained", len(commits),
		"elapsed_time", timer.ElapsedTime().String(),
	)

	return commits, nil
}

func (c *Collector) list(ctx context.Context, from, to, commitRange string, log logze.Logger) ([]model.Commit, error) {
	commitRange = strings.TrimSpace(commitRange)

	switch {
	case commitRange == "":
		if from == "" || to == "" {
			return nil, errEmptyBranch
		}
		if c.cfg.Fetch {
			c.fetch(ctx)
		}
		rng := c.resolveRange(ctx, from, to)
		log.Info("listing commits", "range", rng)
		return c.logRange(ctx, rng)

	case strings.Contains(commitRange, ".."):
		log.Info("listing commits of explicit range", "range", commitRange)
		return c.logRange(ctx, commitRange)

	default:
		ids := strings.Fields(commitRange)
		log.Info("listing explicit commits", "count", len(ids))
		out := make([]model.Commit, 0, len(ids))
		for _, id := range ids {
			commits, err := c.logRange(ctx, "-1", id)
			if err != nil {
				return nil, err
			}
			out = append(out, commits...)
		}
		return out, nil
	}
}

// fetch refreshes remote-tracking references, a failure leaves the current ones in place
func (c *Collector) fetch(ctx context.Context) {
	timer := abstract.StartTimer()
	if _, err := c.git.Run(ctx, "fetch", "--no-tags", c.cfg.Remote); err != nil {
		c.log.Warn("cannot fetch remote, using existing references", "remote", c.cfg.Remote, "error", err)
		return
	}
	c.log.Debug("fetched remote", "remote", c.cfg.Remote, "elapsed_time", timer.ElapsedTime().String())
}

// resolveRange prefers remote-tracking references and falls back to local branches
func (c *Collector) resolveRange(ctx context.Context, from, to string) string {
	remoteFrom := c.cfg.Remote + "/" + from
	remoteTo := c.cfg.Remote + "/" + to
	if c.refExists(ctx, remoteFrom) && c.refExists(ctx, remoteTo) {
		return remoteTo + ".." + remoteFrom
	}
	c.log.Warn("remote references not found, using local branches", "remote", c.cfg.Remote)
	return to + ".." + from
}

func (c *Collector) refExists(ctx context.Context, ref string) bool {
	_, err := c.git.Run(ctx, "rev-parse", "--verify", "--quiet", ref)
	return err == nil
}

func (c *Collector) logRange(ctx context.Context, args ...string) ([]model.Commit, error) {
	out, err := c.git.Run(ctx, append([]string{"log", logFormat}, args...)...)
	if err != nil {
		return nil, errm.Wrap(err, "failed to list commits")
	}
	return parseLog(out)
}

func (c *Collector) enrich(ctx context.Context, commit *model.Commit) error {
	message, err := c.git.Run(ctx, "log", "-1", "--format=%B", commit.SHA)
	if err != nil {
		return errm.Wrap(err, "failed to get commit message")
	}
	commit.Message = strings.TrimSpace(message)

	files, err := c.git.Run(ctx, "diff-tree", "--no-commit-id", "--name-only", "-r", "--root", commit.SHA)
	if err != nil {
		return errm.Wrap(err, "failed to get changed files")
	}
	commit.Files = splitLines(files)

	stats, err := c.git.Run(ctx, "show", "--stat", "--format=", commit.SHA)
	if err != nil {
		return errm.Wrap(err, "failed to get diff stats")
	}
	commit.Stats = strings.TrimSpace(stats)

	if c.cfg.RepoURL != "" {
		commit.URL = c.cfg.RepoURL + "/commit/" + commit.SHA
	}

	return nil
}

func parseLog(out string) ([]model.Commit, error) {
	var commits []model.Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.Trim(record, "\r\n")
		if record == "" {
			continue
		}

		fields := strings.Split(record, fieldSep)
		if len(fields) != 5 {
			return nil, errm.Wrap(errMalformedLog, record)
		}

		date, err := time.Parse(time.RFC3339, fields[4])
		if err != nil {
			return nil, errm.Wrap(err, "failed to parse commit date")
		}

		commits = append(commits, model.Commit{
			SHA:         fields[0],
			Subject:     fields[1],
			AuthorName:  fields[2],
			AuthorEmail: fields[3],
			Date:        date,
		})
	}
	return commits, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
