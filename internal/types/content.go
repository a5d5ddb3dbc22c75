// Package types provides type definitions for the site content, admin and chat payloads.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DocumentVersion is the version tag written into exported documents.
const DocumentVersion = "1.0"

// OutputKind is the icon tag of a project output link.
type OutputKind string

// Output kinds rendered by the site.
const (
	OutputWeb     OutputKind = "web"
	OutputAdmin   OutputKind = "admin"
	OutputApp     OutputKind = "app"
	OutputIOS     OutputKind = "ios"
	OutputAndroid OutputKind = "android"
	OutputLanding OutputKind = "landing"
)

// ProfileInfo is the singleton profile shown in the hero and footer.
type ProfileInfo struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role"`
	Year    int    `json:"year"`
	Tagline string `json:"tagline"`
	Footer  string `json:"footer"`
}

// Stat is a value/label pair shown on a project card.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProjectDetails holds the long-form project write-up.
type ProjectDetails struct {
	Overview         string   `json:"overview,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
	Challenges       []string `json:"challenges,omitempty"`
}

// Output is a deliverable link attached to a project.
type Output struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Icon        OutputKind `json:"icon" validate:"oneof=web admin app ios android landing"`
}

// Project is one portfolio entry. Slice order is display order.
type Project struct {
	ID                 int             `json:"id" validate:"min=1"`
	Name               string          `json:"name" validate:"required"`
	Period             string          `json:"period"`
	Timeline           string          `json:"timeline"`
	Description        string          `json:"description"`
	Tags               []string        `json:"tags"`
	Stats              []Stat          `json:"stats,omitempty"`
	Features           []string        `json:"features,omitempty"`
	Icon               string          `json:"icon"`
	IconImage          string          `json:"iconImage,omitempty"`
	AIImage            string          `json:"aiImage,omitempty"`
	Script             string          `json:"script,omitempty"`
	Color              string          `json:"color" validate:"omitempty,hexcolor"`
	StartMonth         int             `json:"startMonth" validate:"min=0,max=11"`
	EndMonth           int             `json:"endMonth" validate:"min=0,max=11"`
	IntermittentMonths []int           `json:"intermittentMonths,omitempty" validate:"omitempty,dive,min=0,max=11"`
	Details            *ProjectDetails `json:"details,omitempty"`
	Outputs            []Output        `json:"outputs,omitempty" validate:"omitempty,dive"`
}

// Goal is one of the yearly goals.
type Goal struct {
	ID          int      `json:"id" validate:"min=1,max=4"`
	Title       string   `json:"title" validate:"required"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color" validate:"omitempty,hexcolor"`
	Features    []string `json:"features"`
}

// StoredDocument is the envelope written to both persistence backends.
// A nil field means the field was absent from the source document.
type StoredDocument struct {
	Projects    []Project    `json:"projects"`
	ProfileInfo *ProfileInfo `json:"profileInfo"`
	Goals2026   []Goal       `json:"goals2026"`
}

// ExportDocument is the StoredDocument plus the export metadata.
type ExportDocument struct {
	StoredDocument
	ExportedAt string `json:"exportedAt"`
	Version    string `json:"version"`
}

// MonthRangeError reports a contiguous project range that runs backwards.
type MonthRangeError struct {
	ProjectID  int
	StartMonth int
	EndMonth   int
}

func (e *MonthRangeError) Error() string {
	return fmt.Sprintf("project %d: startMonth %d is after endMonth %d", e.ProjectID, e.StartMonth, e.EndMonth)
}

// Validate checks field constraints and the month range.
// The range order is only enforced when IntermittentMonths is empty.
func (p *Project) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return err
	}
	if len(p.IntermittentMonths) == 0 && p.StartMonth > p.EndMonth {
		return &MonthRangeError{ProjectID: p.ID, StartMonth: p.StartMonth, EndMonth: p.EndMonth}
	}
	return nil
}

// Validate validates the ProfileInfo using the validator.
func (p *ProfileInfo) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates the Goal using the validator.
func (g *Goal) Validate() error {
	validate := validator.New()
	return validate.Struct(g)
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	c := p
	c.Tags = cloneStrings(p.Tags)
	c.Features = cloneStrings(p.Features)
	c.IntermittentMonths = cloneInts(p.IntermittentMonths)
	if p.Stats != nil {
		c.Stats = append([]Stat(nil), p.Stats...)
	}
	if p.Outputs != nil {
		c.Outputs = append([]Output(nil), p.Outputs...)
	}
	if p.Details != nil {
		d := *p.Details
		d.Responsibilities = cloneStrings(p.Details.Responsibilities)
		d.Technologies = cloneStrings(p.Details.Technologies)
		d.Achievements = cloneStrings(p.Details.Achievements)
		d.Challenges = cloneStrings(p.Details.Challenges)
		c.Details = &d
	}
	return c
}

// Clone returns a deep copy of the goal.
func (g Goal) Clone() Goal {
	c := g
	c.Features = cloneStrings(g.Features)
	return c
}

// CloneProjects deep-copies a project list, preserving nil.
func CloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// CloneGoals deep-copies a goal list, preserving nil.
func CloneGoals(in []Goal) []Goal {
	if in == nil {
		return nil
	}
	out := make([]Goal, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append([]int(nil), in...)
}
