package impact

import (
	"path"
	"strings"

	"github.com/maxbolgarin/promoreport/internal/model"
)

// ExtractComponents returns the components touched by commits. A component is
// recognized from paths shaped <tasksDir>/<folder>/<name>/<file>.yaml; other
// paths are ignored. Components come in first-seen order, each carrying its
// contributing commits in input order.
func ExtractComponents(commits []model.Commit, tasksDir string) []model.ChangedComponent {
	tasksDir = cleanDir(tasksDir)

	var (
		out   []model.ChangedComponent
		index = make(map[model.ComponentKey]int)
	)

	for _, commit := range commits {
		for _, file := range commit.Files {
			key, ok := componentFromPath(file, tasksDir)
			if !ok {
				continue
			}

			i, seen := index[key]
			if !seen {
				i = len(out)
				index[key] = i
				out = append(out, model.ChangedComponent{ComponentKey: key})
			}

			if !out[i].HasCommit(commit.SHA) {
				out[i].Commits = append(out[i].Commits, commit)
			}
		}
	}

	return out
}

func componentFromPath(file, tasksDir string) (model.ComponentKey, bool) {
	rest, ok := strings.CutPrefix(path.Clean(file), tasksDir+"/")
	if !ok {
		return model.ComponentKey{}, false
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 || path.Ext(parts[2]) != definitionExt {
		return model.ComponentKey{}, false
	}
	if parts[0] == "" || parts[1] == "" || parts[2] == definitionExt {
		return model.ComponentKey{}, false
	}

	return model.ComponentKey{Name: parts[1], Folder: parts[0]}, true
}

// ComponentPath returns the repository path of the component definition
func ComponentPath(tasksDir string, key model.ComponentKey) string {
	return path.Join(cleanDir(tasksDir), key.Folder, key.Name, key.Name+definitionExt)
}
