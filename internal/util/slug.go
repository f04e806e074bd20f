// Package util provides small shared helpers.
package util

import (
	"regexp"
	"strings"
)

var (
	separatorRe = regexp.MustCompile(`[\s_/]+`)
	strippedRe  = regexp.MustCompile(`[^a-z0-9-]`)
	dashRunRe   = regexp.MustCompile(`-+`)
)

// Slugify converts free text to a canonical slug. Slugs identify
// encyclopedia entries and tags, so the same input must always produce the
// same slug.
//
//	"Venetian Glass"  → "venetian-glass"
//	"seed_beads"      → "seed-beads"
//	"Czech  Beads!"   → "czech-beads"
//	"--trimmed--"     → "trimmed"
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = separatorRe.ReplaceAllString(s, "-")
	s = strippedRe.ReplaceAllString(s, "")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
