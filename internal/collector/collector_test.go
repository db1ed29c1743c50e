package collector

import (
	"context"
	"strings"
	"testing"

	"github.com/maxbolgarin/errm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGit struct {
	responses map[string]string
	failures  map[string]error
	calls     []string
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		responses: map[string]string{},
		failures:  map[string]error{},
	}
}

func (f *fakeGit) Run(_ context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if err, ok := f.failures[key]; ok {
		return "", err
	}
	out, ok := f.responses[key]
	if !ok {
		return "", errm.New("unexpected git call: %s", key)
	}
	return out, nil
}

func (f *fakeGit) addCommit(sha, subject, body string, files ...string) {
	f.responses["log -1 --format=%B "+sha] = subject + "\n\n" + body + "\n"
	f.responses["diff-tree --no-commit-id --name-only -r --root "+sha] = strings.Join(files, "\n") + "\n"
	f.responses["show --stat --format= "+sha] = " " + strings.Join(files, " | 1 +\n ") + " | 1 +\n"
}

func logLine(sha, subject string) string {
	return strings.Join([]string{sha, subject, "Jane Doe", "jane@example.com", "2025-03-01T10:00:00+00:00"}, fieldSep) + recordSep + "\n"
}

func newTestCollector(t *testing.T, git Runner) *Collector {
	t.Helper()
	c, err := New(Config{RepoDir: t.TempDir(), RepoURL: "https://github.com/org/catalog/"}, git)
	require.NoError(t, err)
	return c
}

func TestCollectFiltersRoutineCommitsInOrder(t *testing.T) {
	git := newFakeGit()
	git.responses["rev-parse --verify --quiet origin/dev"] = "abc\n"
	git.responses["rev-parse --verify --quiet origin/staging"] = "def\n"
	git.responses["log "+logFormat+" origin/staging..origin/dev"] = logLine("c1", "feat: add retry logic") +
		logLine("c2", "chore: bump dep") +
		logLine("c3", "fix: correct timeout")
	git.addCommit("c1", "feat: add retry logic", "Retries failed pushes.", "tasks/build/compile/compile.yaml")
	git.addCommit("c3", "fix: correct timeout", "", "tasks/deploy/helm/helm.yaml", "README.md")

	c := newTestCollector(t, git)
	commits, err := c.Collect(context.Background(), "dev", "staging", "")
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "feat: add retry logic", commits[0].Subject)
	assert.Equal(t, "fix: correct timeout", commits[1].Subject)

	assert.Equal(t, "feat: add retry logic\n\nRetries failed pushes.", commits[0].Message)
	assert.Equal(t, []string{"tasks/build/compile/compile.yaml"}, commits[0].Files)
	assert.Equal(t, []string{"tasks/deploy/helm/helm.yaml", "README.md"}, commits[1].Files)
	assert.NotEmpty(t, commits[1].Stats)
	assert.Equal(t, "Jane Doe", commits[0].AuthorName)
	assert.Equal(t, "jane@example.com", commits[0].AuthorEmail)
	assert.Equal(t, 2025, commits[0].Date.Year())
	assert.Equal(t, "https://github.com/org/catalog/commit/c1", commits[0].URL)

	for _, call := range git.calls {
		assert.NotContains(t, call, " c2", "skipped commit must not be analyzed")
	}
}

func TestCollectFallsBackToLocalBranches(t *testing.T) {
	git := newFakeGit()
	git.failures["rev-parse --verify --quiet origin/dev"] = errm.New("exit status 1")
	git.responses["rev-parse --verify --quiet origin/main"] = "def\n"
	git.responses["log "+logFormat+" main..dev"] = logLine("c1", "feat: local only")
	git.addCommit("c1", "feat: local only", "", "tasks/a/b/b.yaml")

	c := newTestCollector(t, git)
	commits, err := c.Collect(context.Background(), "dev", "main", "")
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "c1", commits[0].SHA)
}

func TestCollectFetchesRemoteWhenEnabled(t *testing.T) {
	newGit := func() *fakeGit {
		git := newFakeGit()
		git.responses["rev-parse --verify --quiet origin/dev"] = "abc\n"
		git.responses["rev-parse --verify --quiet origin/main"] = "def\n"
		git.responses["log "+logFormat+" origin/main..origin/dev"] = logLine("c1", "feat: fresh")
		git.responses["log "+logFormat+" c0..c1"] = logLine("c1", "feat: fresh")
		git.addCommit("c1", "feat: fresh", "", "tasks/a/b/b.yaml")
		return git
	}
	newCollector := func(t *testing.T, git Runner, fetch bool) *Collector {
		c, err := New(Config{RepoDir: t.TempDir(), RepoURL: "https://github.com/org/catalog", Fetch: fetch}, git)
		require.NoError(t, err)
		return c
	}
	ctx := context.Background()

	git := newGit()
	git.responses["fetch --no-tags origin"] = ""
	_, err := newCollector(t, git, true).Collect(ctx, "dev", "main", "")
	require.NoError(t, err)
	require.NotEmpty(t, git.calls)
	assert.Equal(t, "fetch --no-tags origin", git.calls[0])

	git = newGit()
	git.failures["fetch --no-tags origin"] = errm.New("could not read from remote repository")
	commits, err := newCollector(t, git, true).Collect(ctx, "dev", "main", "")
	require.NoError(t, err)
	assert.Len(t, commits, 1)

	git = newGit()
	_, err = newCollector(t, git, true).Collect(ctx, "dev", "main", "c0..c1")
	require.NoError(t, err)
	assert.NotContains(t, git.calls, "fetch --no-tags origin")

	git = newGit()
	_, err = newCollector(t, git, false).Collect(ctx, "dev", "main", "")
	require.NoError(t, err)
	assert.NotContains(t, git.calls, "fetch --no-tags origin")
}

func TestCollectExplicitRangeForms(t *testing.T) {
	git := newFakeGit()
	git.responses["log "+logFormat+" c0..c2"] = logLine("c2", "fix: two") + logLine("c1", "feat: one")
	git.responses["log "+logFormat+" -1 c2"] = logLine("c2", "fix: two")
	git.responses["log "+logFormat+" -1 c1"] = logLine("c1", "feat: one")
	git.addCommit("c1", "feat: one", "", "tasks/a/one/one.yaml")
	git.addCommit("c2", "fix: two", "", "tasks/a/two/two.yaml")

	c := newTestCollector(t, git)
	ctx := context.Background()

	byRange, err := c.Collect(ctx, "dev", "main", "c0..c2")
	require.NoError(t, err)

	byList, err := c.Collect(ctx, "dev", "main", "c2 c1")
	require.NoError(t, err)
	assert.Equal(t, byRange, byList)

	single, err := c.Collect(ctx, "dev", "main", " c1 ")
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, byRange[1], single[0])
}

func TestCollectPropagatesGitFailure(t *testing.T) {
	git := newFakeGit()
	git.responses["rev-parse --verify --quiet origin/dev"] = "abc\n"
	git.responses["rev-parse --verify --quiet origin/main"] = "def\n"
	git.responses["log "+logFormat+" origin/main..origin/dev"] = logLine("c1", "feat: one") + logLine("c2", "fix: two")
	git.addCommit("c1", "feat: one", "", "tasks/a/one/one.yaml")
	git.failures["diff-tree --no-commit-id --name-only -r --root c2"] = errm.New("fatal: bad object c2")

	c := newTestCollector(t, git)
	commits, err := c.Collect(context.Background(), "dev", "main", "")
	require.ErrorContains(t, err, "bad object c2")
	assert.Nil(t, commits)
}

func TestCollectListFailure(t *testing.T) {
	git := newFakeGit()
	git.failures["log "+logFormat+" a..b"] = errm.New("fatal: ambiguous argument")

	c := newTestCollector(t, git)
	_, err := c.Collect(context.Background(), "dev", "main", "a..b")
	require.ErrorContains(t, err, "ambiguous argument")
}

func TestCollectRequiresBranches(t *testing.T) {
	c := newTestCollector(t, newFakeGit())
	_, err := c.Collect(context.Background(), "", "main", "")
	require.Error(t, err)
}

func TestParseLogMalformed(t *testing.T) {
	_, err := parseLog("abc" + fieldSep + "subject" + recordSep)
	require.Error(t, err)

	commits, err := parseLog("\n")
	require.NoError(t, err)
	assert.Empty(t, commits)
}
