// Package id generates prefixed NanoID identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes used across the service. The prefix makes an ID self-describing
// in logs and database rows.
const (
	PrefixIdentification = "idn"
	PrefixRequest        = "req"
)

// Generate creates an ID of the form "prefix-V1StGXR8_Z5jdHi6B-myT".
// NanoIDs are URL-safe and shorter than UUIDs at comparable entropy.
func Generate(prefix string) (string, error) {
	raw, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + raw, nil
}

// MustGenerate panics when entropy is unavailable. Reserved for
// initialization paths where that should crash the program.
func MustGenerate(prefix string) string {
	generated, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("generate id: %v", err))
	}
	return generated
}

// HasPrefix reports whether the ID carries the given prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-")
}
