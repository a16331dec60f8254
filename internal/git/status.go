package git

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// trackingPattern captures the trailing "[...]" annotation of a
	// "## branch...upstream [ahead N, behind M]" summary line.
	trackingPattern = regexp.MustCompile(`\[([^\[\]]*)\]\s*$`)

	aheadPattern    = regexp.MustCompile(`^ahead (\d+)$`)
	behindPattern   = regexp.MustCompile(`^behind (\d+)$`)
	divergedPattern = regexp.MustCompile(`^ahead (\d+), behind (\d+)$`)
)

// ParseDirty reports whether short-form status output lists any change.
func ParseDirty(output string) bool {
	return strings.TrimSpace(output) != ""
}

// unmergedCodes are the porcelain XY codes of paths with unresolved conflicts.
var unmergedCodes = map[string]bool{
	"DD": true, "AU": true, "UD": true, "UA": true,
	"DU": true, "AA": true, "UU": true,
}

// ParseUnmerged reports whether short-form status output lists a path with
// an unresolved conflict.
func ParseUnmerged(output string) bool {
	for line := range strings.Lines(output) {
		if len(line) >= 2 && unmergedCodes[line[:2]] {
			return true
		}
	}
	return false
}

// ParseDivergence classifies the branch summary line of
// "git status --porcelain --branch" output into a signed distance:
//
//	[behind N]            -> +N  (pull)
//	[ahead N]             -> -N  (push)
//	[ahead N, behind M]   -> +M  (diverged: integrate remote history first)
//	anything else         ->  0  (in sync, no upstream, gone, empty)
//
// Only the first line is inspected.
func ParseDivergence(output string) int {
	line, _, _ := strings.Cut(output, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return 0
	}

	match := trackingPattern.FindStringSubmatch(line)
	if match == nil {
		return 0
	}
	token := strings.TrimSpace(match[1])

	hasAhead := strings.Contains(token, "ahead")
	hasBehind := strings.Contains(token, "behind")

	switch {
	case hasBehind && !hasAhead:
		return countOf(behindPattern, token, 1)
	case hasAhead && !hasBehind:
		return -countOf(aheadPattern, token, 1)
	case hasAhead && hasBehind:
		// The ahead count is deliberately ignored on a diverged branch
		return countOf(divergedPattern, token, 2)
	default:
		return 0
	}
}

// countOf returns the integer captured by group in token, or 0 when the
// token does not have the expected shape.
func countOf(pattern *regexp.Regexp, token string, group int) int {
	match := pattern.FindStringSubmatch(token)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[group])
	if err != nil {
		return 0
	}
	return n
}
