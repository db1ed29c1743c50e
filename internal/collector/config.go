package collector

import (
	"strings"

	"github.com/maxbolgarin/lang"
)

const (
	defaultRepoDir = "."
	defaultRemote  = "origin"
)

// DefaultSkipMarkers are subject fragments of routine commits left out of promotion reports
var DefaultSkipMarkers = []string{
	"chore:", "docs:", "test:", "ci:", "style:", "refactor:",
	"bump", "merge", "revert", "wip",
}

// Config represents commit collection configuration
type Config struct {
	RepoDir     string   `yaml:"repo_dir" env:"REPO_DIR"`
	RepoURL     string   `yaml:"repo_url" env:"REPO_URL"` // web URL of the repository, derived from the remote if empty
	Remote      string   `yaml:"remote" env:"GIT_REMOTE"`
	Fetch       bool     `yaml:"fetch" env:"GIT_FETCH"` // fetch the remote before resolving branch references
	SkipMarkers []string `yaml:"skip_markers" env:"SKIP_MARKERS" env-separator:","`
	Verbose     bool     `yaml:"verbose" env:"COLLECTOR_VERBOSE"`
}

func (c *Config) PrepareAndValidate() error {
	c.RepoDir = lang.Check(c.RepoDir, defaultRepoDir)
	c.Remote = lang.Check(c.Remote, defaultRemote)
	c.RepoURL = strings.TrimSuffix(c.RepoURL, "/")
	if len(c.SkipMarkers) == 0 {
		c.SkipMarkers = DefaultSkipMarkers
	}
	return nil
}
