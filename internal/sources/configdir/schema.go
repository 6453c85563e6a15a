package configdir

// ServicesConfig represents the top-level structure of services.yaml.
// Groups use dynamic keys, so we parse as []map[groupName][]map[serviceName]ServiceProps.
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps contains the actual service properties.
type ServiceProps struct {
	Href        string         `yaml:"href"`
	Icon        string         `yaml:"icon,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Target      string         `yaml:"target,omitempty"`
	SiteMonitor string         `yaml:"siteMonitor,omitempty"`
	Widget      map[string]any `yaml:"widget,omitempty"`
}

// BookmarkEntry represents a single bookmark entry in the YAML.
type BookmarkEntry struct {
	Icon        string `yaml:"icon,omitempty"`
	Abbr        string `yaml:"abbr,omitempty"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}

// BookmarksConfig is the root structure for bookmarks.yaml.
// The structure is: - GroupName: [ - BookmarkName: [{ icon, abbr, href }] ]
// Each bookmark name maps to a list with a single entry containing the properties.
type BookmarksConfig []map[string][]map[string][]BookmarkEntry

// WidgetsConfig is the root structure for widgets.yaml: a list of
// single-key maps from widget type to its options.
type WidgetsConfig []map[string]map[string]any
