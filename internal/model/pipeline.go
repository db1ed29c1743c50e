package model

import (
	"github.com/maxbolgarin/errm"
	"gopkg.in/yaml.v3"
)

const (
	// KindPipeline is the declared kind of pipeline documents
	KindPipeline = "Pipeline"
	// ResolverGit is the resolver type that locates a task by repository path
	ResolverGit = "git"
	// ParamPathInRepo is the git resolver parameter holding the task path
	ParamPathInRepo = "pathInRepo"
)

// PipelineDefinition is a declarative pipeline document
type PipelineDefinition struct {
	Kind     string           `yaml:"kind"`
	Metadata PipelineMetadata `yaml:"metadata"`
	Spec     PipelineSpec     `yaml:"spec"`
}

type PipelineMetadata struct {
	Name string `yaml:"name"`
}

type PipelineSpec struct {
	Tasks   []PipelineStep `yaml:"tasks"`
	Finally []PipelineStep `yaml:"finally"`
}

// IsPipeline reports whether the document declares the pipeline kind
func (p PipelineDefinition) IsPipeline() bool {
	return p.Kind == KindPipeline
}

// Steps returns main steps followed by finally steps
func (p PipelineDefinition) Steps() []PipelineStep {
	out := make([]PipelineStep, 0, len(p.Spec.Tasks)+len(p.Spec.Finally))
	out = append(out, p.Spec.Tasks...)
	return append(out, p.Spec.Finally...)
}

// PipelineStep is a single step of a pipeline
type PipelineStep struct {
	Name    string   `yaml:"name"`
	TaskRef *TaskRef `yaml:"taskRef"`
}

// TaskRef references the task run by a step, either as a bare name
// or as a structured reference with an optional resolver.
type TaskRef struct {
	Bare     string
	Name     string
	Resolver string
	Params   []Param
}

// Param is a resolver parameter
type Param struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// IsBare reports whether the reference was given as a plain string
func (r *TaskRef) IsBare() bool {
	return r.Bare != ""
}

// GitPath returns the pathInRepo parameter of a git resolver reference
func (r *TaskRef) GitPath() (string, bool) {
	if r.Resolver != ResolverGit {
		return "", false
	}
	for _, p := range r.Params {
		if p.Name != ParamPathInRepo {
			continue
		}
		path, ok := p.Value.(string)
		if !ok || path == "" {
			return "", false
		}
		return path, true
	}
	return "", false
}

func (r *TaskRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Bare = node.Value
		return nil
	case yaml.MappingNode:
		var raw struct {
			Name     string  `yaml:"name"`
			Resolver string  `yaml:"resolver"`
			Params   []Param `yaml:"params"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		r.Name = raw.Name
		r.Resolver = raw.Resolver
		r.Params = raw.Params
		return nil
	default:
		return errm.Errorf("line %d: unexpected taskRef node", node.Line)
	}
}
