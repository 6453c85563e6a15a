package configdir

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gridpage/gridpage/internal/domain"
)

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// markFromError builds a diagnostic for a failed config file: the
// file name, the parser's reason, and a source snippet pointing at the
// first line the parser complained about.
func markFromError(file string, data []byte, err error) domain.ValidationError {
	ve := domain.ValidationError{
		Config: file,
		Reason: err.Error(),
	}

	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return ve
	}

	line, convErr := strconv.Atoi(m[1])
	if convErr != nil || line < 1 {
		return ve
	}

	ve.Mark.Line = line
	lines := strings.Split(string(data), "\n")
	if line <= len(lines) {
		ve.Mark.Snippet = strings.TrimRight(lines[line-1], " \t\r")
	}
	return ve
}
