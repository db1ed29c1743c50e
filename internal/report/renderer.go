package report

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/yuin/goldmark"
)

//go:embed templates/report.html
var defaultTemplates embed.FS

const generatedAtLayout = "2006-01-02 15:04:05 MST"

// Renderer turns promotion data into a self-contained HTML document
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown

	cfg Config
	log logze.Logger
}

// New creates the template directory if needed and loads the report template,
// preferring a report.html placed there over the built-in one.
func New(cfg Config) (*Renderer, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "failed to prepare and validate config")
	}

	r := &Renderer{
		md:  newMarkdown(),
		cfg: cfg,
		log: logze.With("component", "report"),
	}

	if err := os.MkdirAll(cfg.TemplateDir, 0o755); err != nil {
		return nil, errm.Wrap(err, "failed to create template directory")
	}

	tmpl, err := r.loadTemplate()
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl

	return r, nil
}

func (r *Renderer) loadTemplate() (*template.Template, error) {
	base := template.New(templateFile).Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string { return t.Format(generatedAtLayout) },
	})

	custom := filepath.Join(r.cfg.TemplateDir, templateFile)
	data, err := os.ReadFile(custom)
	switch {
	case err == nil:
		r.log.Info("using custom report template", "path", custom)
		tmpl, err := base.Parse(string(data))
		if err != nil {
			return nil, errm.Wrap(err, "failed to parse template "+custom)
		}
		return tmpl, nil

	case errors.Is(err, fs.ErrNotExist):
		tmpl, err := base.ParseFS(defaultTemplates, "templates/"+templateFile)
		if err != nil {
			return nil, errm.Wrap(err, "failed to parse default template")
		}
		return tmpl, nil

	default:
		return nil, errm.Wrap(err, "failed to read template "+custom)
	}
}

// Build prepares the report view model
func (r *Renderer) Build(in Input) (*Report, error) {
	rep := r.build(in)

	summaryHTML, err := r.markdownToHTML(in.Summary)
	if err != nil {
		return nil, err
	}
	rep.SummaryHTML = summaryHTML

	return rep, nil
}

// Render executes the template on the report
func (r *Renderer) Render(rep *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, rep); err != nil {
		return nil, errm.Wrap(err, "failed to execute template")
	}
	return buf.Bytes(), nil
}
