package impact

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/promoreport/internal/model"
	"gopkg.in/yaml.v3"
)

// Matcher finds the pipelines referencing changed components
type Matcher struct {
	fsys fs.FS

	cfg Config
	log logze.Logger
}

// New creates a matcher reading pipeline definitions from fsys,
// which must be rooted at the pipelines directory.
func New(cfg Config, fsys fs.FS) (*Matcher, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "failed to prepare and validate config")
	}
	if fsys == nil {
		return nil, errm.New("pipelines filesystem is nil")
	}
	return &Matcher{
		fsys: fsys,
		cfg:  cfg,
		log:  logze.With("component", "impact"),
	}, nil
}

// TasksDir returns the repository-relative components root
func (m *Matcher) TasksDir() string {
	return m.cfg.TasksDir
}

// PipelinesDir returns the repository-relative pipelines root
func (m *Matcher) PipelinesDir() string {
	return m.cfg.PipelinesDir
}

// Match builds the impact map of the components. Every component is present
// in the result, with an empty set if no pipeline references it.
// Unreadable or malformed definitions are logged and skipped.
func (m *Matcher) Match(ctx context.Context, components []model.ChangedComponent) (model.ImpactMap, error) {
	result := make(model.ImpactMap, len(components))
	if len(components) == 0 {
		return result, nil
	}
	for _, c := range components {
		result[c.ComponentKey] = model.NewPipelineSet()
	}

	var (
		timer     = abstract.StartTimer()
		files     int
		pipelines int
	)

	err := fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			m.log.Warn("cannot read pipelines path, skipping", "path", p, "error", err)
			return nil
		}
		if d.IsDir() || path.Ext(p) != definitionExt {
			return nil
		}

		files++
		for _, def := range m.readDefinitions(p) {
			if !def.IsPipeline() {
				continue
			}
			pipelines++
			m.matchPipeline(def, p, components, result)
		}
		return nil
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to scan pipelines")
	}

	m.log.Info("matched components to pipelines",
		"components", len(components),
		"files", files,
		"pipelines", pipelines,
		"affected_pipelines", result.AffectedPipelines(),
		"elapsed_time", timer.ElapsedTime().String(),
	)

	return result, nil
}

func (m *Matcher) matchPipeline(def model.PipelineDefinition, p string, components []model.ChangedComponent, result model.ImpactMap) {
	id := pipelineID(p, def)
	for _, step := range def.Steps() {
		ref := step.TaskRef
		if ref == nil {
			continue
		}

		if ref.IsBare() {
			// Bare references are recorded under the declared name, not the path-derived id
			m.matchName(ref.Bare, lang.Check(def.Metadata.Name, fileStem(p)), components, result)
			continue
		}

		if gitPath, ok := ref.GitPath(); ok {
			for _, c := range components {
				expected := ComponentPath(m.cfg.TasksDir, c.ComponentKey)
				if gitPath == expected || strings.HasSuffix(gitPath, expected) {
					m.log.DebugIf(m.cfg.Verbose, "git reference matched", "pipeline", id, "step", step.Name, "component", c.ComponentKey.String())
					result.Add(c.ComponentKey, id)
				}
			}
			continue
		}

		if ref.Name != "" {
			// Folder is not part of name references
			m.matchName(ref.Name, id, components, result)
		}
	}
}

func (m *Matcher) matchName(name, id string, components []model.ChangedComponent, result model.ImpactMap) {
	for _, c := range components {
		if c.Name == name {
			m.log.DebugIf(m.cfg.Verbose, "name reference matched", "pipeline", id, "component", c.ComponentKey.String())
			result.Add(c.ComponentKey, id)
		}
	}
}

// readDefinitions parses every document of a definition file. A document that
// does not fit the pipeline shape is skipped; a syntax error ends the file.
func (m *Matcher) readDefinitions(p string) []model.PipelineDefinition {
	data, err := fs.ReadFile(m.fsys, p)
	if err != nil {
		m.log.Warn("cannot read pipeline definition, skipping", "path", p, "error", err)
		return nil
	}

	var (
		out []model.PipelineDefinition
		dec = yaml.NewDecoder(bytes.NewReader(data))
	)
	for i := 0; ; i++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			m.log.Warn("malformed pipeline definition, skipping rest of file", "path", p, "document", i, "error", err)
			break
		}

		var def model.PipelineDefinition
		if err := node.Decode(&def); err != nil {
			m.log.Warn("invalid pipeline document, skipping", "path", p, "document", i, "error", err)
			continue
		}
		out = append(out, def)
	}

	return out
}

// pipelineID is the definition's directory relative to the pipelines root,
// or its declared name for definitions placed in the root itself.
func pipelineID(p string, def model.PipelineDefinition) string {
	dir := path.Dir(p)
	if dir != "." {
		return dir
	}
	return lang.Check(def.Metadata.Name, fileStem(p))
}

func fileStem(p string) string {
	return strings.TrimSuffix(path.Base(p), definitionExt)
}
