package content

import (
	"github.com/vibetank/vibetank/internal/types"
)

// NewProjectColor is the accent color of a freshly added project.
const NewProjectColor = "#7cb342"

// SetProfileInfo replaces the profile.
func (s *Store) SetProfileInfo(p types.ProfileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// UpdateProfileInfo replaces the profile with fn applied to the current one.
func (s *Store) UpdateProfileInfo(fn func(types.ProfileInfo) types.ProfileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = fn(s.profile)
}

// SetProjects replaces the project list.
func (s *Store) SetProjects(projects []types.Project) {
	projects = types.CloneProjects(projects)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
}

// UpdateProjects replaces the project list with fn applied to a copy of
// the current one.
func (s *Store) UpdateProjects(fn func([]types.Project) []types.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = types.CloneProjects(fn(types.CloneProjects(s.projects)))
}

// SetGoals2026 replaces the goal list.
func (s *Store) SetGoals2026(goals []types.Goal) {
	goals = types.CloneGoals(goals)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = goals
}

// UpdateGoals2026 replaces the goal list with fn applied to a copy of the
// current one.
func (s *Store) UpdateGoals2026(fn func([]types.Goal) []types.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = types.CloneGoals(fn(types.CloneGoals(s.goals)))
}

// AddProject appends a placeholder project and returns it.
// Its id is one more than the largest existing id.
func (s *Store) AddProject() types.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, p := range s.projects {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	p := types.Project{
		ID:          maxID + 1,
		Name:        "New Project",
		Period:      "TBD",
		Timeline:    "TBD",
		Description: "Project description",
		Tags:        []string{"New"},
		Icon:        "🆕",
		Color:       NewProjectColor,
		StartMonth:  0,
		EndMonth:    0,
	}
	s.projects = append(s.projects, p)
	return p.Clone()
}

// UpdateProject applies fn to the project with the given id. The id itself
// cannot be changed.
func (s *Store) UpdateProject(id int, fn func(types.Project) types.Project) (types.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		updated := fn(s.projects[i].Clone()).Clone()
		updated.ID = id
		s.projects[i] = updated
		return updated.Clone(), nil
	}
	return types.Project{}, ErrProjectNotFound
}

// DeleteProject removes the project with the given id.
func (s *Store) DeleteProject(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i:i], s.projects[i+1:]...)
			return nil
		}
	}
	return ErrProjectNotFound
}

// UpdateGoal applies fn to the goal with the given id. The id itself
// cannot be changed.
func (s *Store) UpdateGoal(id int, fn func(types.Goal) types.Goal) (types.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != id {
			continue
		}
		updated := fn(s.goals[i].Clone()).Clone()
		updated.ID = id
		s.goals[i] = updated
		return updated.Clone(), nil
	}
	return types.Goal{}, ErrGoalNotFound
}
