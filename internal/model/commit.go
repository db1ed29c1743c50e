package model

import (
	"strings"
	"time"

	"github.com/maxbolgarin/lang"
)

const defaultCommitType = "change"

// Commit represents a git commit selected for promotion
type Commit struct {
	SHA         string    `json:"sha"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Date        time.Time `json:"date"`
	URL         string    `json:"url"`

	Files []string `json:"files"`
	Stats string   `json:"stats"`
}

// ShortSHA returns the abbreviated commit hash
func (c Commit) ShortSHA() string {
	return lang.TruncateString(c.SHA, 8)
}

// Author returns the author identity used for distinct author counting
func (c Commit) Author() string {
	return lang.Check(strings.ToLower(c.AuthorEmail), c.AuthorName)
}

// Type returns the conventional-commit type of the subject,
// the text before the first colon, or "change" if there is no colon.
func (c Commit) Type() string {
	typ, _, found := strings.Cut(c.Subject, ":")
	if !found {
		return defaultCommitType
	}
	return strings.TrimSpace(typ)
}

// Description returns the subject text after the first colon.
func (c Commit) Description() string {
	_, desc, found := strings.Cut(c.Subject, ":")
	if !found {
		return strings.TrimSpace(c.Subject)
	}
	return strings.TrimSpace(desc)
}
