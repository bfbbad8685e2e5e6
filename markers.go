package astdocs

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker patterns emitted by the astdocs generator. The grammar is fixed:
//
//	%%%SOURCE <path>:<start>[:<end>]
//	%%%START <KIND> <qualified.dotted.name>
//	%%%END <KIND> <qualified.dotted.name>
//
// Capture groups: path (non-colon text), start/end (decimal, end optional),
// kind (uppercase token), qualified name (rest of line).
var (
	sourcePattern = regexp.MustCompile(`%%%SOURCE ([^:]+):([0-9]+)(?::([0-9]+))?`)
	startPattern  = regexp.MustCompile(`^%%%START ([A-Z]+) (.+)$`)
	endPattern    = regexp.MustCompile(`^%%%END ([A-Z]+) (.+)$`)
)

// sourceRef is a parsed %%%SOURCE marker. Lines are 1-based and inclusive;
// End == 0 means "to end of file".
type sourceRef struct {
	Path  string
	Start int
	End   int
}

// parseSourceRef extracts the first %%%SOURCE marker in line. The matched
// substring is returned so callers can splice the replacement in place.
// Malformed ranges (start < 1, end < start) are treated as non-matches.
func parseSourceRef(line string) (ref sourceRef, matched string, ok bool) {
	m := sourcePattern.FindStringSubmatch(line)
	if m == nil {
		return sourceRef{}, "", false
	}

	start, err := strconv.Atoi(m[2])
	if err != nil || start < 1 {
		return sourceRef{}, "", false
	}
	ref = sourceRef{Path: m[1], Start: start}

	if m[3] != "" {
		end, err := strconv.Atoi(m[3])
		if err != nil || end < start {
			return sourceRef{}, "", false
		}
		ref.End = end
	}

	return ref, m[0], true
}

// delimiter is a parsed %%%START or %%%END marker.
type delimiter struct {
	Kind string
	Name string
}

// parseStart matches a whole line against the %%%START pattern.
func parseStart(line string) (delimiter, bool) {
	m := startPattern.FindStringSubmatch(line)
	if m == nil {
		return delimiter{}, false
	}
	return delimiter{Kind: m[1], Name: m[2]}, true
}

// parseEnd matches a whole line against the %%%END pattern.
func parseEnd(line string) (delimiter, bool) {
	m := endPattern.FindStringSubmatch(line)
	if m == nil {
		return delimiter{}, false
	}
	return delimiter{Kind: m[1], Name: m[2]}, true
}

// objectClass derives the wrapper CSS class from a marker kind,
// e.g. FUNCTIONDEF -> "functiondef-object".
func objectClass(kind string) string {
	return strings.ToLower(kind) + "-object"
}
