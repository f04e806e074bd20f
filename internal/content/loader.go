package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beadfanatic/server/internal/util"
	"github.com/beadfanatic/server/internal/validation"
)

var frontmatterDelimiter = []byte("---")

// Loader reads entry files from a directory.
type Loader struct {
	dir       string
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLoader creates a loader for the given content directory.
func NewLoader(dir string, validator *validation.Validator, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, validator: validator, logger: logger}
}

// Load parses every .md file under the directory. Files that fail to parse
// or validate are logged and skipped so one bad entry cannot take down the
// whole catalogue. Unpublished entries are dropped here.
func (l *Loader) Load() ([]*Entry, error) {
	if l.dir == "" {
		return nil, nil
	}

	var entries []*Entry
	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		entry, parseErr := l.loadFile(path)
		if parseErr != nil {
			l.logger.Warn("skipping invalid entry", "path", path, "error", parseErr)
			return nil
		}
		if !entry.Published {
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content dir: %w", err)
	}

	l.logger.Info("loaded encyclopedia entries", "count", len(entries), "dir", l.dir)
	return entries, nil
}

func (l *Loader) loadFile(path string) (*Entry, error) {
	raw, err := os.ReadFile(path) //#nosec G304 -- Paths come from walking the configured content dir
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	frontmatter, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, err
	}

	// Published defaults to true; frontmatter may override.
	entry := &Entry{Published: true}
	if err := yaml.Unmarshal(frontmatter, entry); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	entry.Slug = util.Slugify(strings.TrimSuffix(filepath.Base(path), ".md"))
	entry.Body = strings.TrimSpace(string(body))

	if entry.Slug == "" {
		return nil, fmt.Errorf("filename produces empty slug")
	}
	if err := l.validator.Validate(entry); err != nil {
		return nil, fmt.Errorf("validate entry: %w", err)
	}
	return entry, nil
}

// splitFrontmatter separates the YAML block between the leading "---" pair
// from the markdown body.
func splitFrontmatter(raw []byte) (frontmatter, body []byte, err error) {
	trimmed := bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")) // strip UTF-8 BOM
	trimmed = bytes.TrimLeft(trimmed, " \t\r\n")
	if !bytes.HasPrefix(trimmed, frontmatterDelimiter) {
		return nil, nil, fmt.Errorf("missing frontmatter delimiter")
	}

	rest := trimmed[len(frontmatterDelimiter):]
	end := bytes.Index(rest, append([]byte("\n"), frontmatterDelimiter...))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated frontmatter")
	}

	frontmatter = rest[:end]
	body = rest[end+1+len(frontmatterDelimiter):]
	return frontmatter, body, nil
}
