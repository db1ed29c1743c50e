package report

import (
	"cmp"
	"html/template"
	"path"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maxbolgarin/promoreport/internal/model"
)

const (
	maxDescriptionLength = 50
	ellipsis             = "..."
)

// Input is everything a report is rendered from
type Input struct {
	PromotionType string
	From          string
	To            string
	Summary       string // markdown
	Commits       []model.Commit
	Components    []model.ChangedComponent
	Impact        model.ImpactMap
	GeneratedAt   time.Time

	RepoURL      string
	TasksDir     string
	PipelinesDir string
}

// Report is the view model of a rendered report
type Report struct {
	Title         string        `json:"title"`
	PromotionType string        `json:"promotion_type"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Stats         Stats         `json:"stats"`
	Summary       string        `json:"summary"`
	SummaryHTML   template.HTML `json:"-"`
	Components    []Row         `json:"components"`
	Commits       []CommitEntry `json:"commits"`
}

type Stats struct {
	Commits           int `json:"commits"`
	Authors           int `json:"authors"`
	FilesChanged      int `json:"files_changed"`
	Components        int `json:"components"`
	AffectedPipelines int `json:"affected_pipelines"`
}

// Row is a changed component with the pipelines it affects
type Row struct {
	Component     Link          `json:"component"`
	Folder        string        `json:"folder"`
	Pipelines     []Link        `json:"pipelines"`
	PipelineCount int           `json:"pipeline_count"`
	Commits       []CommitEntry `json:"commits"`
}

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type CommitEntry struct {
	SHA         string `json:"sha"`
	URL         string `json:"url,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	Author      string `json:"author"`
	Date        string `json:"date"`
}

func (r *Renderer) build(in Input) *Report {
	branch := r.cfg.LinkBranch
	if branch == "" {
		branch = in.From
	}
	links := linker{repoURL: strings.TrimSuffix(in.RepoURL, "/"), branch: branch}

	rep := &Report{
		Title:         r.cfg.Title,
		PromotionType: in.PromotionType,
		From:          in.From,
		To:            in.To,
		GeneratedAt:   in.GeneratedAt,
		Summary:       in.Summary,
		Stats:         computeStats(in),
		Commits:       make([]CommitEntry, 0, len(in.Commits)),
		Components:    make([]Row, 0, len(in.Components)),
	}

	for _, c := range in.Commits {
		rep.Commits = append(rep.Commits, commitEntry(c))
	}

	components := slices.Clone(in.Components)
	slices.SortFunc(components, func(a, b model.ChangedComponent) int {
		return cmp.Or(cmp.Compare(a.Folder, b.Folder), cmp.Compare(a.Name, b.Name))
	})

	for _, c := range components {
		ids := in.Impact.Pipelines(c.ComponentKey)
		row := Row{
			Component: Link{
				Name: c.Name,
				URL:  links.tree(path.Join(in.TasksDir, c.Folder, c.Name)),
			},
			Folder:        c.Folder,
			Pipelines:     make([]Link, 0, len(ids)),
			PipelineCount: len(ids),
			Commits:       make([]CommitEntry, 0, len(c.Commits)),
		}
		for _, id := range ids {
			row.Pipelines = append(row.Pipelines, Link{
				Name: path.Base(id),
				URL:  links.tree(path.Join(in.PipelinesDir, id)),
			})
		}
		slices.SortStableFunc(row.Pipelines, func(a, b Link) int {
			return cmp.Compare(a.Name, b.Name)
		})
		for _, commit := range c.Commits {
			row.Commits = append(row.Commits, commitEntry(commit))
		}
		rep.Components = append(rep.Components, row)
	}

	return rep
}

func computeStats(in Input) Stats {
	authors := make(map[string]struct{}, len(in.Commits))
	files := 0
	for _, c := range in.Commits {
		authors[c.Author()] = struct{}{}
		files += len(c.Files)
	}
	return Stats{
		Commits:           len(in.Commits),
		Authors:           len(authors),
		FilesChanged:      files,
		Components:        len(in.Components),
		AffectedPipelines: in.Impact.AffectedPipelines(),
	}
}

func commitEntry(c model.Commit) CommitEntry {
	return CommitEntry{
		SHA:         c.ShortSHA(),
		URL:         c.URL,
		Type:        c.Type(),
		Description: truncate(c.Description(), maxDescriptionLength),
		Subject:     c.Subject,
		Author:      c.AuthorName,
		Date:        c.Date.Format(time.DateOnly),
	}
}

// truncate limits s to n runes, the ellipsis included
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:max(n-len(ellipsis), 0)]) + ellipsis
}

type linker struct {
	repoURL string
	branch  string
}

func (l linker) tree(p string) string {
	if l.repoURL == "" || l.branch == "" {
		return ""
	}
	return l.repoURL + "/tree/" + l.branch + "/" + strings.TrimPrefix(p, "/")
}
