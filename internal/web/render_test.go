package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gridpage/gridpage/internal/domain"
	"github.com/gridpage/gridpage/internal/index"
)

func render(t *testing.T, snap index.Snapshot, rel *domain.ReleaseInfo) string {
	t.Helper()

	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	var buf bytes.Buffer
	if err := r.RenderPage(&buf, snap, rel); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	return buf.String()
}

func TestRenderPage_PinnedThemeHidesToggle(t *testing.T) {
	snap := index.Snapshot{
		Settings: domain.Settings{Theme: "dark"},
		Hash:     "abc123",
	}

	out := render(t, snap, nil)

	if !strings.Contains(out, `class="theme-dark color-slate"`) {
		t.Errorf("expected pinned dark theme with default color on <html>, got:\n%s", out)
	}
	if strings.Contains(out, `id="theme-toggle"`) {
		t.Error("theme toggle should be hidden when the theme is pinned")
	}
	if !strings.Contains(out, `id="color-toggle"`) {
		t.Error("color toggle should remain when the color is not pinned")
	}
	if !strings.Contains(out, `<meta name="build-hash" content="abc123">`) {
		t.Error("build hash meta tag missing")
	}
}

func TestRenderPage_DefaultsWhenSettingsEmpty(t *testing.T) {
	out := render(t, index.Snapshot{}, nil)

	if !strings.Contains(out, "theme-dark") || !strings.Contains(out, "color-slate") {
		t.Error("empty settings should fall back to the dark/slate defaults")
	}
	if !strings.Contains(out, `<html lang="en"`) {
		t.Error("empty settings should default to English")
	}
	if !strings.Contains(out, "<title>Gridpage</title>") {
		t.Error("empty title should fall back to the application name")
	}
	if !strings.Contains(out, `id="theme-toggle"`) || !strings.Contains(out, `id="color-toggle"`) {
		t.Error("both toggles should render when nothing is pinned")
	}
}

func TestRenderPage_DiagnosticsSuppressMainLayout(t *testing.T) {
	snap := index.Snapshot{
		Services: []domain.ServiceGroup{
			{Name: "Media", Services: []domain.Service{{Name: "Jellyfin", Href: "https://jf.local"}}},
		},
		Errors: []domain.ValidationError{
			{
				Config: "services.yaml",
				Reason: "bad syntax",
				Mark:   domain.Mark{Line: 3, Snippet: "- foo:"},
			},
		},
		Hash: "deadbeef",
	}

	out := render(t, snap, nil)

	if !strings.Contains(out, `id="diagnostics"`) {
		t.Fatal("diagnostic panel missing")
	}
	if !strings.Contains(out, "services.yaml") || !strings.Contains(out, "bad syntax") {
		t.Error("diagnostic should name the file and the reason")
	}
	if !strings.Contains(out, "line 3: - foo:") {
		t.Error("diagnostic should show the marked line")
	}
	if strings.Contains(out, `id="page"`) || strings.Contains(out, "Jellyfin") {
		t.Error("main layout must be suppressed while diagnostics are present")
	}
	if !strings.Contains(out, `content="deadbeef"`) {
		t.Error("build hash should still render with diagnostics")
	}
}

func TestRenderPage_GroupsAndLayout(t *testing.T) {
	snap := index.Snapshot{
		Settings: domain.Settings{
			Layout: map[string]domain.GroupLayout{
				"Media": {Style: "row", Columns: 3},
			},
		},
		Services: []domain.ServiceGroup{
			{Name: "Media", Services: []domain.Service{{Name: "Jellyfin", Href: "https://jf.local", Description: "movies"}}},
			{Name: "Infra", Services: []domain.Service{{Name: "Proxmox"}}},
		},
		Bookmarks: []domain.BookmarkGroup{
			{Name: "Dev", Bookmarks: []domain.Bookmark{{Name: "GitHub", Href: "https://github.com", Abbr: "GH"}}},
		},
	}

	out := render(t, snap, nil)

	if !strings.Contains(out, `class="group group-row columns-3"`) {
		t.Error("Media group should use the row layout with 3 columns")
	}
	if !strings.Contains(out, `class="group group-column"`) {
		t.Error("Infra group should fall back to the column layout")
	}
	if strings.Index(out, "Media") > strings.Index(out, "Infra") {
		t.Error("group order must follow the snapshot order")
	}
	if !strings.Contains(out, "Jellyfin") || !strings.Contains(out, "movies") {
		t.Error("service name and description missing")
	}
	if !strings.Contains(out, ">GH</span>") {
		t.Error("bookmark abbreviation missing")
	}
}

func TestRenderPage_WidgetPartition(t *testing.T) {
	snap := index.Snapshot{
		Widgets: []domain.Widget{
			{Type: "logo"},
			{Type: "search"},
			{Type: "greeting"},
			{Type: "datetime"},
		},
	}

	out := render(t, snap, nil)

	leftIdx := strings.Index(out, `class="widgets-left"`)
	rightIdx := strings.Index(out, `class="widgets-right"`)
	if leftIdx < 0 || rightIdx < 0 {
		t.Fatal("widget bar sections missing")
	}

	left := out[leftIdx:rightIdx]
	right := out[rightIdx:]

	for _, typ := range []string{"logo", "greeting"} {
		if !strings.Contains(left, `data-widget="`+typ+`"`) {
			t.Errorf("widget %q should render in the leading group", typ)
		}
	}
	for _, typ := range []string{"search", "datetime"} {
		if !strings.Contains(right, `data-widget="`+typ+`"`) {
			t.Errorf("widget %q should render in the trailing group", typ)
		}
	}
}

func TestRenderPage_UpdateIndicator(t *testing.T) {
	rel := &domain.ReleaseInfo{TagName: "v99.0.0", HTMLURL: "https://example.com/rel"}

	out := render(t, index.Snapshot{}, rel)

	// A rolling build ("main") never shows the update link.
	if strings.Contains(out, "v99.0.0 available") {
		t.Error("rolling build must not advertise updates")
	}
	if !strings.Contains(out, `class="tag"`) {
		t.Error("version tag missing from footer")
	}
}

func TestRenderPage_BackgroundAndBase(t *testing.T) {
	snap := index.Snapshot{
		Settings: domain.Settings{
			Base:              "/dash/",
			Background:        "https://img.local/bg.png",
			BackgroundOpacity: 0.4,
			Favicon:           "https://img.local/fav.png",
		},
	}

	out := render(t, snap, nil)

	if !strings.Contains(out, `<base href="/dash/">`) {
		t.Error("base href missing")
	}
	if !strings.Contains(out, "bg.png") || !strings.Contains(out, "opacity: 0.4") {
		t.Error("background image with opacity missing")
	}
	if !strings.Contains(out, `href="https://img.local/fav.png"`) {
		t.Error("favicon override missing")
	}
}
