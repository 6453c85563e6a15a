package configdir

import (
	"github.com/gridpage/gridpage/internal/domain"
)

// Mapper converts parsed YAML config into domain content.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapServices converts ServicesConfig to []domain.ServiceGroup.
// Group order and service order within a group follow the file. A
// duplicate group name keeps the first occurrence so group names stay
// unique rendering keys.
func (m *Mapper) MapServices(cfg ServicesConfig) []domain.ServiceGroup {
	var groups []domain.ServiceGroup
	seen := make(map[string]bool)

	for _, groupMap := range cfg {
		for groupName, servicesList := range groupMap {
			if seen[groupName] {
				continue
			}
			seen[groupName] = true

			group := domain.ServiceGroup{Name: groupName}
			for _, serviceMap := range servicesList {
				for serviceName, props := range serviceMap {
					group.Services = append(group.Services, domain.Service{
						Name:        serviceName,
						Href:        props.Href,
						Icon:        props.Icon,
						Description: props.Description,
						Target:      props.Target,
						SiteMonitor: props.SiteMonitor,
					})
				}
			}
			groups = append(groups, group)
		}
	}

	return groups
}

// MapBookmarks converts BookmarksConfig to []domain.BookmarkGroup.
func (m *Mapper) MapBookmarks(cfg BookmarksConfig) []domain.BookmarkGroup {
	var groups []domain.BookmarkGroup
	seen := make(map[string]bool)

	for _, groupMap := range cfg {
		for groupName, bookmarksList := range groupMap {
			if seen[groupName] {
				continue
			}
			seen[groupName] = true

			group := domain.BookmarkGroup{Name: groupName}
			for _, bookmarkMap := range bookmarksList {
				for bookmarkName, entries := range bookmarkMap {
					for _, entry := range entries {
						// Entries without a target URL are display noise, skip them.
						if entry.Href == "" {
							continue
						}
						group.Bookmarks = append(group.Bookmarks, domain.Bookmark{
							Name:        bookmarkName,
							Abbr:        entry.Abbr,
							Href:        entry.Href,
							Icon:        entry.Icon,
							Description: entry.Description,
						})
					}
				}
			}
			groups = append(groups, group)
		}
	}

	return groups
}

// MapWidgets converts WidgetsConfig to []domain.Widget, preserving
// file order. Placement (left vs right group) is decided at render
// time by the widget type.
func (m *Mapper) MapWidgets(cfg WidgetsConfig) []domain.Widget {
	var widgets []domain.Widget

	for _, widgetMap := range cfg {
		for widgetType, options := range widgetMap {
			widgets = append(widgets, domain.Widget{
				Type:    widgetType,
				Options: options,
			})
		}
	}

	return widgets
}
