package impact

import (
	"path"
	"strings"

	"github.com/maxbolgarin/lang"
)

const (
	defaultPipelinesDir = "pipelines"
	defaultTasksDir     = "tasks"

	definitionExt = ".yaml"
)

// Config represents pipeline impact analysis configuration.
// Both directories are repository-relative slash paths.
type Config struct {
	PipelinesDir string `yaml:"pipelines_dir" env:"PIPELINES_DIR"`
	TasksDir     string `yaml:"tasks_dir" env:"TASKS_DIR"`
	Verbose      bool   `yaml:"verbose" env:"IMPACT_VERBOSE"`
}

func (c *Config) PrepareAndValidate() error {
	c.PipelinesDir = cleanDir(lang.Check(c.PipelinesDir, defaultPipelinesDir))
	c.TasksDir = cleanDir(lang.Check(c.TasksDir, defaultTasksDir))
	return nil
}

func cleanDir(dir string) string {
	return strings.Trim(path.Clean(strings.ReplaceAll(dir, "\\", "/")), "/")
}
