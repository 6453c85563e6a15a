package domain

// ReleaseInfo describes the most recent entry of the release feed.
type ReleaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}
