package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitTypeAndDescription(t *testing.T) {
	c := Commit{Subject: "feat(build): add retry: with backoff"}
	assert.Equal(t, "feat(build)", c.Type())
	assert.Equal(t, "add retry: with backoff", c.Description())

	c = Commit{Subject: "Add deploy task"}
	assert.Equal(t, "change", c.Type())
	assert.Equal(t, "Add deploy task", c.Description())
}

func TestCommitAuthor(t *testing.T) {
	assert.Equal(t, "jane@example.com", Commit{AuthorName: "Jane", AuthorEmail: "Jane@Example.com"}.Author())
	assert.Equal(t, "Jane", Commit{AuthorName: "Jane"}.Author())
}

func TestPromotionType(t *testing.T) {
	cases := map[string]string{
		"production":  "Production",
		"prod":        "Production",
		"main":        "Production",
		"staging":     "Staging",
		"Stage":       "Staging",
		"development": "Development",
		"qa":          "qa",
	}
	for branch, want := range cases {
		assert.Equal(t, want, PromotionType(branch), branch)
	}
}

func TestImpactMap(t *testing.T) {
	m := ImpactMap{}
	a := ComponentKey{Name: "compile", Folder: "build"}
	b := ComponentKey{Name: "helm", Folder: "deploy"}
	m.Add(a, "build/java")
	m.Add(a, "build/go")
	m.Add(a, "build/java")
	m.Add(b, "build/go")

	assert.Equal(t, []string{"build/go", "build/java"}, m.Pipelines(a))
	assert.Empty(t, m.Pipelines(ComponentKey{Name: "missing"}))
	assert.Equal(t, 2, m.AffectedPipelines())
	assert.Equal(t, "build/compile", a.String())
}
