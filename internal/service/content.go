package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beadfanatic/server/internal/content"
	"github.com/beadfanatic/server/internal/errors"
	"github.com/beadfanatic/server/internal/search"
)

// ContentService serves encyclopedia entries and keeps the search index in
// step with the content directory.
type ContentService struct {
	loader     *content.Loader
	collection *content.Collection
	index      *search.Index
	logger     *slog.Logger
}

// NewContentService creates a content service with an empty collection.
// Call Load to populate it.
func NewContentService(loader *content.Loader, index *search.Index, logger *slog.Logger) *ContentService {
	return &ContentService{
		loader:     loader,
		collection: content.NewCollection(),
		index:      index,
		logger:     logger,
	}
}

// Load reads the content directory into the collection and indexes every
// entry. Safe to call repeatedly; the collection is swapped atomically.
func (s *ContentService) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	s.collection.Replace(entries)

	docs := make([]*search.Document, len(entries))
	for i, entry := range entries {
		docs[i] = search.FromEntry(entry)
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index content: %w", err)
	}

	s.logger.Info("content loaded", "entries", len(entries))
	return nil
}

// Reload is the watcher callback: reload everything, log on failure.
func (s *ContentService) Reload() {
	if err := s.Load(context.Background()); err != nil {
		s.logger.Error("content reload failed", "error", err)
	}
}

// Get returns one entry by slug.
func (s *ContentService) Get(slug string) (*content.Entry, error) {
	entry, ok := s.collection.Get(slug)
	if !ok {
		return nil, errors.NotFoundf("no entry with slug %q", slug)
	}
	return entry, nil
}

// List returns entry summaries, optionally filtered by category.
func (s *ContentService) List(category string) []content.Summary {
	return s.collection.List(category)
}

// Count returns how many entries are loaded.
func (s *ContentService) Count() int {
	return s.collection.Len()
}

// Search queries the index.
func (s *ContentService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// Reindex drops the search index and rebuilds it from the loaded
// collection. Returns the number of documents indexed.
func (s *ContentService) Reindex(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	entries := s.collection.All()
	docs := make([]*search.Document, len(entries))
	for i, entry := range entries {
		docs[i] = search.FromEntry(entry)
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return 0, fmt.Errorf("reindex content: %w", err)
	}

	s.logger.Info("search index rebuilt", "documents", len(docs))
	return len(docs), nil
}
