package domain

// ValidationError is a configuration diagnostic, not an exception.
// The presence of any such error suppresses normal page rendering
// until the underlying file is fixed and the content reloaded.
type ValidationError struct {
	// Config names the offending configuration file, ex: "services.yaml".
	Config string `json:"config"`

	// Reason is a human-readable description of what is wrong.
	Reason string `json:"reason"`

	// Mark points at the offending source location.
	Mark Mark `json:"mark"`
}

// Mark carries the source excerpt shown alongside a diagnostic.
type Mark struct {
	Line    int    `json:"line,omitempty"`
	Snippet string `json:"snippet"`
}
