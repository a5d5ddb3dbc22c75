// Package catalog holds the compiled-in default site content.
//
// The catalog seeds the content store, backs resets, and owns the asset
// fields (iconImage, aiImage, script) that persisted content can never
// override. Every accessor returns a deep copy.
package catalog

import "github.com/vibetank/vibetank/internal/types"

// Profile returns the default profile.
func Profile() types.ProfileInfo {
	return defaultProfile
}

// Projects returns the default project list in display order.
func Projects() []types.Project {
	return types.CloneProjects(defaultProjects)
}

// Goals returns the default goal list.
func Goals() []types.Goal {
	return types.CloneGoals(defaultGoals)
}

// ProjectByID looks up a default project by id.
func ProjectByID(id int) (types.Project, bool) {
	for i := range defaultProjects {
		if defaultProjects[i].ID == id {
			return defaultProjects[i].Clone(), true
		}
	}
	return types.Project{}, false
}

// Document returns the full default document with every field present.
func Document() types.StoredDocument {
	profile := Profile()
	return types.StoredDocument{
		Projects:    Projects(),
		ProfileInfo: &profile,
		Goals2026:   Goals(),
	}
}
