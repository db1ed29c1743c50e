package model

// ComponentKey identifies a component by its name and containing folder
type ComponentKey struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
}

func (k ComponentKey) String() string {
	return k.Folder + "/" + k.Name
}

// ChangedComponent is a component touched by one or more promoted commits
type ChangedComponent struct {
	ComponentKey
	Commits []Commit `json:"commits"`
}

// HasCommit reports whether the commit is already recorded for the component
func (c *ChangedComponent) HasCommit(sha string) bool {
	for _, commit := range c.Commits {
		if commit.SHA == sha {
			return true
		}
	}
	return false
}
