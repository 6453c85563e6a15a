package configdir

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoaderLoadFullDirectory(t *testing.T) {
	dir := t.TempDir()

	writeConfig(t, dir, "settings.yaml", `
title: Home Lab
theme: dark
language: de
layout:
  Media:
    style: row
    columns: 4
`)
	writeConfig(t, dir, "services.yaml", `
- Infrastructure:
    - AdGuard Home:
        href: https://adguard.domain.ext
        icon: adguard-home.svg
        description: Network-wide ads blocking
    - Traefik:
        href: https://traefik.domain.ext
        icon: traefik.svg
- Media:
    - Jellyfin:
        href: https://jellyfin.domain.ext
`)
	writeConfig(t, dir, "bookmarks.yaml", `
- Developer:
    - GitHub:
        - abbr: GH
          href: https://github.com
- News:
    - Hacker News:
        - abbr: HN
          href: https://news.ycombinator.com
`)
	writeConfig(t, dir, "widgets.yaml", `
- resources:
    cpu: true
    memory: true
- search:
    provider: duckduckgo
- datetime:
    text_size: xl
`)

	c := NewLoader(dir).Load()

	if len(c.Errors) != 0 {
		t.Fatalf("Load() produced %d validation errors: %+v", len(c.Errors), c.Errors)
	}

	if c.Settings.Title != "Home Lab" || c.Settings.Theme != "dark" || c.Settings.Language != "de" {
		t.Errorf("settings = %+v, unexpected values", c.Settings)
	}
	if l, ok := c.Settings.LayoutFor("Media"); !ok || l.Style != "row" || l.Columns != 4 {
		t.Errorf("layout override = %+v (found=%v), want row/4", l, ok)
	}

	if len(c.Services) != 2 {
		t.Fatalf("got %d service groups, want 2", len(c.Services))
	}
	if c.Services[0].Name != "Infrastructure" || len(c.Services[0].Services) != 2 {
		t.Errorf("first group = %+v, want Infrastructure with 2 services", c.Services[0])
	}
	if c.Services[1].Name != "Media" {
		t.Errorf("second group = %q, want Media", c.Services[1].Name)
	}

	if len(c.Bookmarks) != 2 {
		t.Fatalf("got %d bookmark groups, want 2", len(c.Bookmarks))
	}
	if c.Bookmarks[0].Name != "Developer" || c.Bookmarks[0].Bookmarks[0].Abbr != "GH" {
		t.Errorf("first bookmark group = %+v", c.Bookmarks[0])
	}

	if len(c.Widgets) != 3 {
		t.Fatalf("got %d widgets, want 3", len(c.Widgets))
	}
	if c.Widgets[0].Type != "resources" || c.Widgets[1].Type != "search" || c.Widgets[2].Type != "datetime" {
		t.Errorf("widget order = %v", c.Widgets)
	}

	if len(c.Raw) != 4 {
		t.Fatalf("Raw holds %d entries, want 4", len(c.Raw))
	}
	for i, raw := range c.Raw {
		if len(raw) == 0 {
			t.Errorf("Raw[%d] is empty", i)
		}
	}
}

func TestLoaderMissingFilesAreEmptyDefaults(t *testing.T) {
	c := NewLoader(t.TempDir()).Load()

	if len(c.Errors) != 0 {
		t.Errorf("missing files produced validation errors: %+v", c.Errors)
	}
	if len(c.Services) != 0 || len(c.Bookmarks) != 0 || len(c.Widgets) != 0 {
		t.Errorf("missing files produced non-empty content: %+v", c)
	}
	if c.Settings.Title != "" || c.Settings.Theme != "" {
		t.Errorf("missing settings.yaml produced non-zero settings: %+v", c.Settings)
	}
	if c.Settings.EffectiveTheme() == "" {
		t.Error("empty settings lost render-time defaults")
	}
	if len(c.Raw) != 4 {
		t.Errorf("Raw holds %d entries, want 4", len(c.Raw))
	}
}

func TestLoaderBrokenYAMLProducesDiagnostic(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "services.yaml", "- Infrastructure:\n- foo: [unclosed\n")

	c := NewLoader(dir).Load()

	if len(c.Errors) != 1 {
		t.Fatalf("got %d validation errors, want 1: %+v", len(c.Errors), c.Errors)
	}
	ve := c.Errors[0]
	if ve.Config != "services.yaml" {
		t.Errorf("error Config = %q, want services.yaml", ve.Config)
	}
	if ve.Reason == "" {
		t.Error("error Reason is empty")
	}

	// The broken file must not leak partial data.
	if len(c.Services) != 0 {
		t.Errorf("broken services.yaml still produced %d groups", len(c.Services))
	}
}

func TestLoaderBrokenFileKeepsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "settings.yaml", "title: Still Works\n")
	writeConfig(t, dir, "widgets.yaml", ":\n  - not valid widget yaml::\n -")

	c := NewLoader(dir).Load()

	if c.Settings.Title != "Still Works" {
		t.Errorf("settings.Title = %q, want Still Works", c.Settings.Title)
	}
	if len(c.Errors) == 0 {
		t.Error("broken widgets.yaml produced no diagnostic")
	}
}

func TestStripTemplateVariables(t *testing.T) {
	in := []byte("api_key: {{GRIDPAGE_VAR_KEY}}\nplain: value\n")
	out := string(stripTemplateVariables(in))

	want := "api_key: \"\"\nplain: value\n"
	if out != want {
		t.Errorf("stripTemplateVariables() = %q, want %q", out, want)
	}
}

func TestMarkFromErrorExtractsSnippet(t *testing.T) {
	data := []byte("line one\nline two broken\nline three\n")
	err := errWithLine{"yaml: line 2: did not find expected key"}

	ve := markFromError("services.yaml", data, err)

	if ve.Mark.Line != 2 {
		t.Errorf("Mark.Line = %d, want 2", ve.Mark.Line)
	}
	if ve.Mark.Snippet != "line two broken" {
		t.Errorf("Mark.Snippet = %q, want %q", ve.Mark.Snippet, "line two broken")
	}
}

func TestMarkFromErrorNoLine(t *testing.T) {
	ve := markFromError("widgets.yaml", nil, errWithLine{"yaml: unknown failure"})

	if ve.Mark.Line != 0 || ve.Mark.Snippet != "" {
		t.Errorf("Mark = %+v, want empty", ve.Mark)
	}
	if ve.Config != "widgets.yaml" {
		t.Errorf("Config = %q", ve.Config)
	}
}

type errWithLine struct{ msg string }

func (e errWithLine) Error() string { return e.msg }
