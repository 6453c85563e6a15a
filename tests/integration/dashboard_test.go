package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gridpage/gridpage/internal/client"
	"github.com/gridpage/gridpage/internal/domain"
	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/httpserver/routes"
	"github.com/gridpage/gridpage/internal/index"
	"github.com/gridpage/gridpage/internal/logger"
	"github.com/gridpage/gridpage/internal/scheduler"
	"github.com/gridpage/gridpage/internal/version"
	"github.com/gridpage/gridpage/internal/web"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// newDashboard spins up a full stack: config dir, reloader, renderer,
// routes. Returns the test server and the shared index.
func newDashboard(t *testing.T, dir string) (*httptest.Server, *index.MemoryIndex, chan struct{}) {
	t.Helper()

	log := logger.Nop()
	memIndex := index.NewMemoryIndex()
	trigger := make(chan struct{}, 1)

	reloader := scheduler.NewContentReloader(dir, nil, memIndex, log, time.Hour, false, 0, trigger)
	reloader.Reload(context.Background())

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Version:       version.Version,
		TimeNow:       time.Now,
		MemoryIndex:   memIndex,
		Renderer:      renderer,
		ReloadTrigger: trigger,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, memIndex, trigger
}

func TestDashboard_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "settings.yaml", "title: Homelab\ntheme: dark\n")
	writeConfig(t, dir, "services.yaml", `
- Media:
    - Jellyfin:
        href: https://jf.local
        description: movies
`)
	writeConfig(t, dir, "bookmarks.yaml", `
- Dev:
    - GitHub:
        - href: https://github.com
          abbr: GH
`)
	writeConfig(t, dir, "widgets.yaml", `
- search:
    provider: duckduckgo
- datetime:
    format: 24h
`)

	srv, memIndex, _ := newDashboard(t, dir)

	// Page renders the configured content.
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", resp.StatusCode)
	}
	var sb strings.Builder
	if _, err := copyBody(&sb, resp); err != nil {
		t.Fatalf("read body: %v", err)
	}
	body := sb.String()
	for _, want := range []string{"<title>Homelab</title>", "Jellyfin", "GitHub", `data-widget="search"`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, `id="theme-toggle"`) {
		t.Error("theme toggle should be hidden, theme is pinned")
	}

	// Content endpoints serve the same snapshot as JSON.
	var groups []domain.ServiceGroup
	getJSON(t, srv.URL+"/api/services", &groups)
	if len(groups) != 1 || groups[0].Name != "Media" {
		t.Fatalf("services = %+v, want one Media group", groups)
	}

	var diags []domain.ValidationError
	getJSON(t, srv.URL+"/api/validate", &diags)
	if len(diags) != 0 {
		t.Fatalf("validate = %+v, want empty", diags)
	}

	// Hash endpoint agrees with the index.
	var hash struct {
		Hash string `json:"hash"`
	}
	getJSON(t, srv.URL+"/api/hash", &hash)
	if hash.Hash == "" || hash.Hash != memIndex.Hash() {
		t.Fatalf("hash = %q, index = %q", hash.Hash, memIndex.Hash())
	}

	// Readiness follows the first successful reload.
	resp2, err := http.Get(srv.URL + "/api/readyz")
	if err != nil {
		t.Fatalf("GET /api/readyz: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Errorf("readyz status = %d, want 200", resp2.StatusCode)
	}
}

func TestDashboard_BrokenConfigShowsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "services.yaml", "- Media:\n\t\t- broken")

	srv, _, _ := newDashboard(t, dir)

	var diags []domain.ValidationError
	getJSON(t, srv.URL+"/api/validate", &diags)
	if len(diags) != 1 || diags[0].Config != "services.yaml" {
		t.Fatalf("validate = %+v, want one services.yaml diagnostic", diags)
	}

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	var sb strings.Builder
	if _, err := copyBody(&sb, resp); err != nil {
		t.Fatalf("read body: %v", err)
	}
	body := sb.String()
	if !strings.Contains(body, `id="diagnostics"`) || !strings.Contains(body, "services.yaml") {
		t.Error("page should render the diagnostic panel")
	}
	if strings.Contains(body, `id="page"`) {
		t.Error("main layout must be suppressed while the config is broken")
	}
}

func TestDashboard_RevalidateAndStalenessFlow(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "settings.yaml", "title: V1\n")

	srv, memIndex, trigger := newDashboard(t, dir)
	firstHash := memIndex.Hash()

	// Drain manual triggers the way the reloader loop would.
	reloader := scheduler.NewContentReloader(dir, nil, memIndex, logger.Nop(), time.Hour, false, 0, trigger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range trigger {
			reloader.Reload(context.Background())
		}
	}()

	// A client that rendered with the current hash is not stale.
	var reloads int
	store := client.NewHashStore(filepath.Join(t.TempDir(), "hash"))
	watcher := client.NewStalenessWatcher(srv.URL, firstHash, store, logger.Nop(), func() {
		reloads++
	})
	if err := watcher.OnFocus(context.Background()); err != nil {
		t.Fatalf("OnFocus: %v", err)
	}
	if watcher.Stale() || reloads != 0 {
		t.Fatal("client must not be stale while content is unchanged")
	}

	// Content changes on disk; the server reloads.
	writeConfig(t, dir, "settings.yaml", "title: V2\n")
	reloader.Reload(context.Background())
	if memIndex.Hash() == firstHash {
		t.Fatal("hash should change with the content")
	}

	// Next focus detects the mismatch, revalidates, reloads once.
	if err := watcher.OnFocus(context.Background()); err != nil {
		t.Fatalf("OnFocus: %v", err)
	}
	if !watcher.Stale() {
		t.Fatal("client should be stale after the content change")
	}
	if reloads != 1 {
		t.Fatalf("reloads = %d, want 1", reloads)
	}

	close(trigger)
	<-done
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func copyBody(sb *strings.Builder, resp *http.Response) (int64, error) {
	data, err := io.ReadAll(resp.Body)
	sb.Write(data)
	return int64(len(data)), err
}
