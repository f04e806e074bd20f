package search

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// mappingVersion is bumped whenever the index mapping changes; a mismatch on
// startup triggers an automatic rebuild from the content source.
const mappingVersion = "1"

// Index wraps a Bleve index over encyclopedia entries.
//
// All public methods are safe for concurrent use; the mutex guards the index
// handle during rebuilds.
type Index struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Open creates or opens the index at path. A corrupt index or an outdated
// mapping version is discarded and recreated empty; the caller is expected
// to reindex from the content collection afterwards.
func Open(path string, logger *slog.Logger) (*Index, error) {
	versionPath := path + ".version"

	var index bleve.Index
	rebuild := false

	if _, err := os.Stat(path); err == nil {
		version, readErr := os.ReadFile(versionPath) //#nosec G304 -- Derived from the validated index path
		if readErr != nil || string(version) != mappingVersion {
			logger.Info("search index mapping changed, rebuilding",
				"old_version", string(version), "new_version", mappingVersion)
			rebuild = true
		} else {
			index, err = bleve.Open(path)
			if err != nil {
				logger.Warn("failed to open search index, recreating", "path", path, "error", err)
				rebuild = true
			}
		}
	}

	if rebuild {
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
		index = nil
	}

	if index == nil {
		var err error
		index, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			logger.Warn("failed to write index version file", "error", err)
		}
		logger.Info("created search index", "path", path, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened search index", "path", path)
	}

	return &Index{index: index, path: path, logger: logger}, nil
}

// Close releases the index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexDocuments indexes documents in batches.
func (s *Index) IndexDocuments(docs []*Document) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 200
	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))

		batch := s.index.NewBatch()
		for _, doc := range docs[i:end] {
			if err := batch.Index(doc.Slug, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.Slug, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// Delete removes a document by slug.
func (s *Index) Delete(slug string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(slug)
}

// Count returns the number of indexed documents.
func (s *Index) Count() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the index and recreates it empty. It takes the exclusive
// lock, so concurrent searches block for the duration.
func (s *Index) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index
	s.logger.Info("rebuilt search index", "path", s.path)
	return nil
}
