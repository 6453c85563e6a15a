package redis

const (
	// KeySnapshot holds the latest content snapshot as JSON.
	KeySnapshot = "gridpage:snapshot"
	// KeyRelease holds the latest release feed entry as JSON.
	KeyRelease = "gridpage:release"
)
