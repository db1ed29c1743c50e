package report

import "github.com/maxbolgarin/lang"

const (
	defaultTemplateDir = "templates"
	templateFile       = "report.html"
)

// Config represents report rendering configuration
type Config struct {
	TemplateDir string `yaml:"template_dir" env:"TEMPLATE_DIR"` // created at startup, may hold a report.html override
	Title       string `yaml:"title" env:"REPORT_TITLE"`
	LinkBranch  string `yaml:"link_branch" env:"REPORT_LINK_BRANCH"` // branch used in component and pipeline links, source branch if empty
}

func (c *Config) PrepareAndValidate() error {
	c.TemplateDir = lang.Check(c.TemplateDir, defaultTemplateDir)
	c.Title = lang.Check(c.Title, "Promotion Report")
	return nil
}
