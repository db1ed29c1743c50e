package prompts

import (
	"strings"
	"testing"
	"time"

	"github.com/maxbolgarin/promoreport/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryPromptMandatesHeaders(t *testing.T) {
	commits := []model.Commit{{
		SHA:        "0123456789abcdef",
		Subject:    "feat: add retry logic",
		Message:    "feat: add retry logic\n\nRetries failed pushes three times.",
		AuthorName: "Jane Doe",
		Date:       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Files:      []string{"tasks/build/compile/compile.yaml"},
		Stats:      "1 file changed, 3 insertions(+)",
		URL:        "https://git.example.com/org/catalog/commit/0123456789abcdef",
	}, {
		SHA:        "fedcba9876543210",
		Subject:    "fix: typo",
		AuthorName: "John Roe",
	}}

	p := NewBuilder(model.LanguageEnglish).BuildSummaryPrompt(commits, "Staging")

	assert.Equal(t, model.LanguageEnglish, p.Language)
	assert.Contains(t, p.SystemPrompt, "professional English")

	title := strings.Index(p.UserPrompt, "# Staging Promotion Summary")
	overview := strings.Index(p.UserPrompt, "## Overview")
	features := strings.Index(p.UserPrompt, "## Features & Improvements")
	fixes := strings.Index(p.UserPrompt, "## Fixes & Maintenance")
	assert.True(t, title >= 0 && title < overview && overview < features && features < fixes, p.UserPrompt)

	assert.Contains(t, p.UserPrompt, "Commit 01234567 by Jane Doe (2025-03-01)")
	assert.Contains(t, p.UserPrompt, "Retries failed pushes three times.")
	assert.Contains(t, p.UserPrompt, "- tasks/build/compile/compile.yaml")
	assert.Contains(t, p.UserPrompt, "1 file changed")
	assert.Contains(t, p.UserPrompt, "URL: https://git.example.com/org/catalog/commit/0123456789abcdef\n")
	assert.Equal(t, 1, strings.Count(p.UserPrompt, "URL: "))
	assert.Contains(t, p.SystemPrompt, "hyperlink")
}

func TestNewBuilderFallsBackToEnglish(t *testing.T) {
	b := NewBuilder(model.Language("xx"))
	assert.Equal(t, DefaultLanguages[model.LanguageEnglish].SummaryHeaders, b.Headers())
}
