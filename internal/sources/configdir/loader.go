package configdir

import (
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/gridpage/gridpage/internal/domain"
)

// Content is the result of loading the whole config directory.
//
// A file that fails to load contributes empty data plus a
// ValidationError record; Load itself never fails. Raw holds the raw
// bytes of every file (missing files contribute nil) in a fixed order
// so the build hash stays deterministic.
type Content struct {
	Settings  domain.Settings
	Services  []domain.ServiceGroup
	Bookmarks []domain.BookmarkGroup
	Widgets   []domain.Widget
	Errors    []domain.ValidationError
	Raw       [][]byte
}

// Loader reads and parses the dashboard's YAML configuration files.
type Loader struct {
	settingsFile  string
	servicesFile  string
	bookmarksFile string
	widgetsFile   string
	mapper        *Mapper
}

// NewLoader creates a loader for the standard file names inside dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		settingsFile:  filepath.Join(dir, "settings.yaml"),
		servicesFile:  filepath.Join(dir, "services.yaml"),
		bookmarksFile: filepath.Join(dir, "bookmarks.yaml"),
		widgetsFile:   filepath.Join(dir, "widgets.yaml"),
		mapper:        NewMapper(),
	}
}

// Load reads all config files and maps them into domain content.
func (l *Loader) Load() *Content {
	c := &Content{}

	settingsRaw := l.loadSettings(c)
	servicesRaw := l.loadServices(c)
	bookmarksRaw := l.loadBookmarks(c)
	widgetsRaw := l.loadWidgets(c)

	c.Raw = [][]byte{settingsRaw, servicesRaw, bookmarksRaw, widgetsRaw}
	return c
}

func (l *Loader) loadSettings(c *Content) []byte {
	data, ok := l.readFile(l.settingsFile, c)
	if !ok {
		return nil
	}

	var settings domain.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		c.Errors = append(c.Errors, markFromError(filepath.Base(l.settingsFile), data, err))
		return data
	}
	c.Settings = settings
	return data
}

func (l *Loader) loadServices(c *Content) []byte {
	data, ok := l.readFile(l.servicesFile, c)
	if !ok {
		return nil
	}

	var cfg ServicesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		c.Errors = append(c.Errors, markFromError(filepath.Base(l.servicesFile), data, err))
		return data
	}
	c.Services = l.mapper.MapServices(cfg)
	return data
}

func (l *Loader) loadBookmarks(c *Content) []byte {
	data, ok := l.readFile(l.bookmarksFile, c)
	if !ok {
		return nil
	}

	var cfg BookmarksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		c.Errors = append(c.Errors, markFromError(filepath.Base(l.bookmarksFile), data, err))
		return data
	}
	c.Bookmarks = l.mapper.MapBookmarks(cfg)
	return data
}

func (l *Loader) loadWidgets(c *Content) []byte {
	data, ok := l.readFile(l.widgetsFile, c)
	if !ok {
		return nil
	}

	var cfg WidgetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		c.Errors = append(c.Errors, markFromError(filepath.Base(l.widgetsFile), data, err))
		return data
	}
	c.Widgets = l.mapper.MapWidgets(cfg)
	return data
}

// readFile reads a config file. A missing file is not an error: every
// file is optional and contributes empty data. Any other read failure
// becomes a diagnostic.
func (l *Loader) readFile(path string, c *Content) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.Errors = append(c.Errors, domain.ValidationError{
				Config: filepath.Base(path),
				Reason: err.Error(),
			})
		}
		return nil, false
	}
	return stripTemplateVariables(data), true
}

// stripTemplateVariables removes substitution placeholders from YAML.
// Example: {{GRIDPAGE_VAR_API_KEY}} -> ""
func stripTemplateVariables(data []byte) []byte {
	re := regexp.MustCompile(`\{\{[^}]+\}\}`)
	return re.ReplaceAll(data, []byte(`""`))
}
