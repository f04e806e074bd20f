package content

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadfanatic/server/internal/validation"
)

const venetianEntry = `---
title: Venetian Glass Beads
description: Traditional Italian glass beads with distinctive patterns.
category: glass
materials:
  - glass
  - gold leaf
colours:
  - blue
  - gold
shapes:
  - round
  - oval
tags:
  - venetian
  - murano
  - luxury
featured: true
lastUpdated: 2025-11-02
---

# Venetian Glass

Hand-made on the island of Murano since the thirteenth century.
`

func writeEntry(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newLoader(t *testing.T, dir string) *Loader {
	t.Helper()
	return NewLoader(dir, validation.New(), slog.New(slog.DiscardHandler))
}

func TestLoader_ParsesEntry(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "venetian-glass.md", venetianEntry)

	entries, err := newLoader(t, dir).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "venetian-glass", e.Slug)
	assert.Equal(t, "Venetian Glass Beads", e.Title)
	assert.Equal(t, "glass", e.Category)
	assert.Equal(t, []string{"glass", "gold leaf"}, e.Materials)
	assert.Equal(t, []string{"venetian", "murano", "luxury"}, e.Tags)
	assert.True(t, e.Featured)
	assert.True(t, e.Published, "published should default to true")
	assert.Contains(t, e.Body, "island of Murano")
	assert.Equal(t, 2025, e.LastUpdated.Year())
}

func TestLoader_SkipsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "venetian-glass.md", venetianEntry)
	writeEntry(t, dir, "no-frontmatter.md", "# Just markdown\n")
	writeEntry(t, dir, "bad-category.md", `---
title: Mystery Beads
description: Unknown category.
category: mystery
lastUpdated: 2025-01-01
---
body
`)
	writeEntry(t, dir, "notes.txt", "not an entry")

	entries, err := newLoader(t, dir).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "venetian-glass", entries[0].Slug)
}

func TestLoader_SkipsUnpublished(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "draft.md", `---
title: Draft Entry
description: Not ready yet.
category: glass
published: false
lastUpdated: 2025-01-01
---
draft body
`)

	entries, err := newLoader(t, dir).Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoader_EmptyDirConfigured(t *testing.T) {
	entries, err := newLoader(t, "").Load()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body, err := splitFrontmatter([]byte("---\ntitle: X\n---\nbody text\n"))
	require.NoError(t, err)
	assert.Equal(t, "\ntitle: X", string(fm))
	assert.Equal(t, "\nbody text\n", string(body))

	_, _, err = splitFrontmatter([]byte("no frontmatter here"))
	assert.Error(t, err)

	_, _, err = splitFrontmatter([]byte("---\ntitle: X\n"))
	assert.Error(t, err)
}

func TestCollection_ReplaceAndLookup(t *testing.T) {
	c := NewCollection()
	c.Replace([]*Entry{
		{Slug: "stone-beads", Title: "Stone Beads", Category: "stone"},
		{Slug: "agate-beads", Title: "Agate Beads", Category: "stone"},
		{Slug: "venetian-glass", Title: "Venetian Glass", Category: "glass"},
	})

	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Has("agate-beads"))
	assert.False(t, c.Has("missing"))

	entry, ok := c.Get("venetian-glass")
	require.True(t, ok)
	assert.Equal(t, "Venetian Glass", entry.Title)

	// Listings are title-sorted.
	all := c.List("")
	require.Len(t, all, 3)
	assert.Equal(t, "agate-beads", all[0].Slug)
	assert.Equal(t, "stone-beads", all[1].Slug)
	assert.Equal(t, "venetian-glass", all[2].Slug)

	stone := c.List("stone")
	require.Len(t, stone, 2)
	for _, s := range stone {
		assert.Equal(t, "stone", s.Category)
	}
}

func TestCollection_ReplaceDropsDuplicates(t *testing.T) {
	c := NewCollection()
	c.Replace([]*Entry{
		{Slug: "dup", Title: "First"},
		{Slug: "dup", Title: "Second"},
	})
	assert.Equal(t, 1, c.Len())

	entry, _ := c.Get("dup")
	assert.Equal(t, "First", entry.Title)
}
