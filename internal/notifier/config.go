package notifier

import (
	"strings"

	"github.com/maxbolgarin/lang"
)

const (
	defaultPort          = 587
	defaultSubjectPrefix = "Promotion report"
)

// Config represents SMTP delivery configuration
type Config struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`

	From          string `yaml:"from" env:"EMAIL_FROM"`
	To            string `yaml:"to" env:"EMAIL_TO"` // comma or semicolon separated
	SubjectPrefix string `yaml:"subject_prefix" env:"EMAIL_SUBJECT_PREFIX"`
}

func (c *Config) PrepareAndValidate() error {
	c.Host = strings.TrimSpace(c.Host)
	c.Port = lang.Check(c.Port, defaultPort)
	c.SubjectPrefix = lang.Check(c.SubjectPrefix, defaultSubjectPrefix)
	return nil
}

// Recipients returns the parsed list of addresses from To
func (c Config) Recipients() []string {
	fields := strings.FieldsFunc(c.To, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
