package domain

// Service is a single display item in a service group.
type Service struct {
	Name        string `json:"name"`
	Href        string `json:"href,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Target      string `json:"target,omitempty"`
	SiteMonitor string `json:"siteMonitor,omitempty"`
}

// ServiceGroup is a named collection of services.
// The group name is unique within its list and serves as the stable
// rendering key.
type ServiceGroup struct {
	Name     string    `json:"name"`
	Services []Service `json:"services"`
}

// Bookmark is a single display item in a bookmark group.
type Bookmark struct {
	Name        string `json:"name"`
	Abbr        string `json:"abbr,omitempty"`
	Href        string `json:"href"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// BookmarkGroup is a named collection of bookmarks.
type BookmarkGroup struct {
	Name      string     `json:"name"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// Widget is a typed display unit on the widget bar.
type Widget struct {
	Type    string         `json:"type"`
	Options map[string]any `json:"options,omitempty"`
}

// rightAlignedTypes is the fixed allow-list of widget types rendered in
// the trailing (right) widget group.
var rightAlignedTypes = map[string]bool{
	"search":         true,
	"datetime":       true,
	"weather":        true,
	"openweathermap": true,
	"openmeteo":      true,
	"weatherapi":     true,
}

// RightAligned reports whether the widget belongs to the trailing group.
func (w Widget) RightAligned() bool {
	return rightAlignedTypes[w.Type]
}

// PartitionWidgets splits widgets into the leading and trailing groups.
// Relative order within each group matches the input order, and every
// input widget lands in exactly one group.
func PartitionWidgets(widgets []Widget) (left, right []Widget) {
	for _, w := range widgets {
		if w.RightAligned() {
			right = append(right, w)
		} else {
			left = append(left, w)
		}
	}
	return left, right
}
