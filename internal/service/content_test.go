package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadfanatic/server/internal/content"
	"github.com/beadfanatic/server/internal/errors"
	"github.com/beadfanatic/server/internal/search"
	"github.com/beadfanatic/server/internal/validation"
)

const jasperEntry = `---
title: Jasper Beads
description: Opaque natural jasper with earthy banding.
category: stone
tags:
  - jasper
  - natural
---

Jasper is an opaque variety of chalcedony, prized for its banding.
`

const seedEntry = `---
title: Seed Beads
description: Small uniform beads for detailed beadwork.
category: glass
tags:
  - seed
---

Tiny glass beads sized for loom and needle work.
`

func newContentService(t *testing.T) *ContentService {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Jasper Beads.md"), []byte(jasperEntry), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed-beads.md"), []byte(seedEntry), 0o644))

	logger := slog.New(slog.DiscardHandler)
	loader := content.NewLoader(dir, validation.New(), logger)

	index, err := search.Open(filepath.Join(t.TempDir(), "search.bleve"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return NewContentService(loader, index, logger)
}

func TestContentService_LoadAndGet(t *testing.T) {
	svc := newContentService(t)
	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, 2, svc.Count())

	entry, err := svc.Get("jasper-beads")
	require.NoError(t, err)
	assert.Equal(t, "Jasper Beads", entry.Title)
	assert.Equal(t, "stone", entry.Category)
}

func TestContentService_GetMissing(t *testing.T) {
	svc := newContentService(t)
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Get("no-such-entry")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestContentService_ListByCategory(t *testing.T) {
	svc := newContentService(t)
	require.NoError(t, svc.Load(context.Background()))

	stone := svc.List("stone")
	require.Len(t, stone, 1)
	assert.Equal(t, "jasper-beads", stone[0].Slug)

	all := svc.List("")
	assert.Len(t, all, 2)
}

func TestContentService_Search(t *testing.T) {
	svc := newContentService(t)
	require.NoError(t, svc.Load(context.Background()))

	params := search.DefaultParams()
	params.Query = "jasper"
	result, err := svc.Search(context.Background(), params)
	require.NoError(t, err)

	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "jasper-beads", result.Hits[0].Slug)
}

func TestContentService_Reindex(t *testing.T) {
	svc := newContentService(t)
	require.NoError(t, svc.Load(context.Background()))

	count, err := svc.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	params := search.DefaultParams()
	params.Query = "seed"
	result, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Hits)
}
