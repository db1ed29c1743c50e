package prompts

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/promoreport/internal/model"
)

// Builder provides methods to build prompts with language support
type Builder struct {
	language LanguageConfig
}

// NewBuilder creates a new template builder with language configuration
func NewBuilder(language model.Language) *Builder {
	lang, exists := DefaultLanguages[language]
	if !exists {
		lang = DefaultLanguages[model.LanguageEnglish]
	}
	return &Builder{
		language: lang,
	}
}

// Headers returns the summary headers of the configured language
func (tb *Builder) Headers() SummaryHeaders {
	return tb.language.SummaryHeaders
}

// BuildSummaryPrompt creates a prompt for summarizing promoted commits
func (tb *Builder) BuildSummaryPrompt(commits []model.Commit, promotionType string) model.Prompt {
	h := tb.language.SummaryHeaders

	systemPrompt := fmt.Sprintf(summarySystemPromptTemplate, tb.language.Instructions)
	userPrompt := fmt.Sprintf(summaryUserPromptTemplate,
		promotionType,
		len(commits),
		fmt.Sprintf(h.Title, promotionType),
		h.Overview,
		h.Features,
		h.FixesAndUpkeep,
		buildCommitsSection(commits),
	)

	return model.Prompt{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Language:     tb.language.Language,
	}
}

func buildCommitsSection(commits []model.Commit) string {
	var b strings.Builder
	for i, c := range commits {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Commit %s by %s (%s)\n", c.ShortSHA(), c.AuthorName, c.Date.Format("2006-01-02"))
		fmt.Fprintf(&b, "Subject: %s\n", c.Subject)
		if c.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", c.URL)
		}

		if body := strings.TrimSpace(strings.TrimPrefix(c.Message, c.Subject)); body != "" {
			b.WriteString("Message:\n")
			b.WriteString(body)
			b.WriteString("\n")
		}
		if len(c.Files) > 0 {
			b.WriteString("Files:\n")
			for _, f := range c.Files {
				b.WriteString("- ")
				b.WriteString(f)
				b.WriteString("\n")
			}
		}
		if c.Stats != "" {
			b.WriteString("Stats:\n")
			b.WriteString(c.Stats)
			b.WriteString("\n")
		}
	}
	return b.String()
}
