// Package web renders the dashboard page from a content snapshot.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/gridpage/gridpage/internal/domain"
	"github.com/gridpage/gridpage/internal/index"
	"github.com/gridpage/gridpage/internal/version"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer produces the HTML dashboard page.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("page").Funcs(template.FuncMap{
		"columnsClass": columnsClass,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// groupView is a service or bookmark group with its resolved layout.
type groupView struct {
	Name    string
	Style   string // "row" | "column"
	Columns int    // meaningful when Style == "row"

	Services  []domain.Service
	Bookmarks []domain.Bookmark
}

// versionView is the footer's version indicator.
type versionView struct {
	Version         string
	ShortCommit     string
	BuildDate       string
	UpdateAvailable bool
	LatestTag       string
	LatestURL       string
}

// pageData is everything the page template needs, precomputed so the
// template stays declarative.
type pageData struct {
	Title             string
	Base              string
	Favicon           string
	Background        string
	BackgroundOpacity float64
	Theme             string
	Color             string
	Language          string

	// A pinned theme/color removes the corresponding toggle.
	ThemeLocked bool
	ColorLocked bool

	Hash string

	Errors []domain.ValidationError

	Services  []groupView
	Bookmarks []groupView

	WidgetsLeft  []domain.Widget
	WidgetsRight []domain.Widget

	Release versionView
}

// RenderPage writes the full dashboard page for the given snapshot.
// When the snapshot carries validation errors only the diagnostic panel
// is rendered; the main layout is suppressed until the next good reload.
func (r *Renderer) RenderPage(w io.Writer, snap index.Snapshot, rel *domain.ReleaseInfo) error {
	data := buildPageData(snap, rel)
	return r.tmpl.ExecuteTemplate(w, "page.html.tmpl", data)
}

func buildPageData(snap index.Snapshot, rel *domain.ReleaseInfo) pageData {
	s := snap.Settings

	title := s.Title
	if title == "" {
		title = "Gridpage"
	}

	left, right := domain.PartitionWidgets(snap.Widgets)

	d := pageData{
		Title:             title,
		Base:              s.Base,
		Favicon:           s.Favicon,
		Background:        s.Background,
		BackgroundOpacity: s.BackgroundOpacity,
		Theme:             s.EffectiveTheme(),
		Color:             s.EffectiveColor(),
		Language:          s.EffectiveLanguage(),
		ThemeLocked:       s.Theme != "",
		ColorLocked:       s.Color != "",
		Hash:              snap.Hash,
		Errors:            snap.Errors,
		WidgetsLeft:       left,
		WidgetsRight:      right,
		Release:           buildVersionView(rel, s.EffectiveLanguage()),
	}

	for _, g := range snap.Services {
		gv := groupView{Name: g.Name, Services: g.Services}
		gv.Style, gv.Columns = resolveLayout(s, g.Name)
		d.Services = append(d.Services, gv)
	}
	for _, g := range snap.Bookmarks {
		gv := groupView{Name: g.Name, Bookmarks: g.Bookmarks}
		gv.Style, gv.Columns = resolveLayout(s, g.Name)
		d.Bookmarks = append(d.Bookmarks, gv)
	}

	return d
}

func resolveLayout(s domain.Settings, group string) (style string, columns int) {
	l, ok := s.LayoutFor(group)
	if !ok || l.Style != "row" {
		return "column", 0
	}
	columns = l.Columns
	if columns < 1 {
		columns = 4
	}
	return "row", columns
}

func buildVersionView(rel *domain.ReleaseInfo, lang string) versionView {
	v := versionView{
		Version:   version.Version,
		BuildDate: version.FormatBuildDate(version.BuildDate, lang),
	}
	if version.Commit != "" && version.Commit != "none" {
		v.ShortCommit = version.ShortCommit(version.Commit)
	}
	if rel != nil {
		v.LatestTag = rel.TagName
		v.LatestURL = rel.HTMLURL
		v.UpdateAvailable = version.UpdateAvailable(version.Version, rel.TagName)
	}
	return v
}

// columnsClass caps row layouts at the widest supported grid.
func columnsClass(n int) string {
	if n < 1 {
		n = 1
	}
	if n > 8 {
		n = 8
	}
	return fmt.Sprintf("columns-%d", n)
}
