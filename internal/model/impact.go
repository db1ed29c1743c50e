package model

import "slices"

// PipelineSet is a set of pipeline identifiers
type PipelineSet map[string]struct{}

// NewPipelineSet creates a set holding the given identifiers
func NewPipelineSet(ids ...string) PipelineSet {
	s := make(PipelineSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s PipelineSet) Add(id string) {
	s[id] = struct{}{}
}

func (s PipelineSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s PipelineSet) Len() int {
	return len(s)
}

// Sorted returns identifiers in lexical order
func (s PipelineSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// ImpactMap maps a changed component to the pipelines referencing it
type ImpactMap map[ComponentKey]PipelineSet

// Add records that the pipeline references the component
func (m ImpactMap) Add(key ComponentKey, pipelineID string) {
	set, ok := m[key]
	if !ok {
		set = NewPipelineSet()
		m[key] = set
	}
	set.Add(pipelineID)
}

// Pipelines returns the sorted identifiers for the component, nil-safe
func (m ImpactMap) Pipelines(key ComponentKey) []string {
	return m[key].Sorted()
}

// AffectedPipelines returns the number of distinct pipelines over all components
func (m ImpactMap) AffectedPipelines() int {
	all := NewPipelineSet()
	for _, set := range m {
		for id := range set {
			all.Add(id)
		}
	}
	return all.Len()
}
