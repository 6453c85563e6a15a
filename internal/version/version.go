package version

import (
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var (
	Version   = "main"                          // ex: v0.1.0, or a rolling build name
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()               // go version
)

// rollingBuilds are version strings that identify non-release builds.
// They are exempt from the update check entirely.
var rollingBuilds = map[string]bool{
	"main":    true,
	"dev":     true,
	"nightly": true,
}

// IsRolling reports whether v names a rolling (non-release) build.
func IsRolling(v string) bool {
	return rollingBuilds[strings.TrimPrefix(v, "v")]
}

// ShortCommit returns the abbreviated commit hash for display.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// UpdateAvailable reports whether latest denotes a strictly newer
// release than current under semantic-version ordering.
// Rolling builds never report an available update. Tags that do not
// parse as semantic versions compare as "not newer".
func UpdateAvailable(current, latest string) bool {
	if IsRolling(current) {
		return false
	}

	cur := canonical(current)
	lat := canonical(latest)
	if !semver.IsValid(cur) || !semver.IsValid(lat) {
		return false
	}

	return semver.Compare(cur, lat) < 0
}

// canonical normalizes a tag like "1.0.0" or "v1.0.0" into the "v"-prefixed
// form golang.org/x/mod/semver expects.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// dateLayouts maps interface languages to the layout used to display
// the build date. Unknown languages fall back to English.
var dateLayouts = map[string]string{
	"en": "Jan 2, 2006",
	"de": "02.01.2006",
	"fr": "02/01/2006",
	"es": "02/01/2006",
	"it": "02/01/2006",
	"nl": "02-01-2006",
	"pt": "02/01/2006",
	"sv": "2006-01-02",
	"ja": "2006/01/02",
	"zh": "2006/01/02",
}

// FormatBuildDate renders an RFC3339 build date for the given interface
// language. Unparseable input is returned unchanged.
func FormatBuildDate(date, lang string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}

	layout, ok := dateLayouts[normalizeLang(lang)]
	if !ok {
		layout = dateLayouts["en"]
	}
	return t.Format(layout)
}

// normalizeLang reduces a language tag like "de-DE" to its base language.
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
