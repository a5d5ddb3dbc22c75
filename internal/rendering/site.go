package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sync"

	"github.com/vibetank/vibetank/internal/timeline"
	"github.com/vibetank/vibetank/internal/types"
)

//go:embed templates/site.html.tmpl
var templateFS embed.FS

const siteTemplate = "templates/site.html.tmpl"

// PageData is the data passed to the page template
type PageData struct {
	Profile  types.ProfileInfo
	Projects []ProjectView
	Goals    []GoalView
	Months   []string
}

// ProjectView is a project with its precomputed timeline shapes
type ProjectView struct {
	types.Project
	Accent template.CSS
	Bars   []BarView
}

// GoalView is a goal with its accent style
type GoalView struct {
	types.Goal
	Accent template.CSS
}

// BarView is one positioned timeline shape
type BarView struct {
	Kind  timeline.BarKind
	Style template.CSS
	Label string
}

var (
	pageOnce sync.Once
	pageTmpl *template.Template
	pageErr  error
)

func parseTemplate() (*template.Template, error) {
	pageOnce.Do(func() {
		pageTmpl, pageErr = template.ParseFS(templateFS, siteTemplate)
		if pageErr != nil {
			pageErr = &TemplateError{Message: "failed to parse template", Cause: pageErr}
		}
	})
	return pageTmpl, pageErr
}

// BuildPageData converts a site document into template data. A nil
// profile renders as empty.
func BuildPageData(doc types.StoredDocument) PageData {
	data := PageData{Months: timeline.Months[:]}
	if doc.ProfileInfo != nil {
		data.Profile = *doc.ProfileInfo
	}

	for _, p := range doc.Projects {
		view := ProjectView{Project: p, Accent: accentStyle(p.Color)}
		for _, bar := range timeline.Bars(p) {
			label := ""
			if bar.Lead {
				label = p.Icon + " " + p.Name
			} else if bar.Kind == timeline.BarMarker {
				label = p.Icon
			}
			view.Bars = append(view.Bars, BarView{
				Kind:  bar.Kind,
				Style: barStyle(bar.LeftPercent, bar.WidthPercent, p.Color),
				Label: label,
			})
		}
		data.Projects = append(data.Projects, view)
	}

	for _, g := range doc.Goals2026 {
		data.Goals = append(data.Goals, GoalView{Goal: g, Accent: accentStyle(g.Color)})
	}
	return data
}

// RenderSite writes the portfolio page for doc to w. Nothing is written
// when rendering fails.
func RenderSite(w io.Writer, doc types.StoredDocument) error {
	tmpl, err := parseTemplate()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "site.html.tmpl", BuildPageData(doc)); err != nil {
		return &TemplateError{Message: "failed to execute template", Cause: err}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write page", Cause: err}
	}
	return nil
}
