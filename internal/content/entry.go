// Package content loads the bead encyclopedia from markdown files with YAML
// frontmatter and serves it from memory. Entries are the catalogue the
// identification suggestions link into.
package content

import (
	"time"
)

// Entry is one encyclopedia article about a bead type.
type Entry struct {
	// Slug is the entry identity, derived from the filename.
	Slug        string    `json:"slug" yaml:"-" validate:"required,slug"`
	Title       string    `json:"title" yaml:"title" validate:"required,max=200"`
	Description string    `json:"description" yaml:"description" validate:"required"`
	Category    string    `json:"category" yaml:"category" validate:"required,oneof=glass metal stone ceramic wood plastic findings vintage"`
	Subcategory string    `json:"subcategory,omitempty" yaml:"subcategory"`
	Materials   []string  `json:"materials" yaml:"materials"`
	Colours     []string  `json:"colours" yaml:"colours"`
	Shapes      []string  `json:"shapes" yaml:"shapes"`
	Sizes       []string  `json:"sizes,omitempty" yaml:"sizes"`
	Origin      string    `json:"origin,omitempty" yaml:"origin"`
	Techniques  []string  `json:"techniques,omitempty" yaml:"techniques"`
	Uses        []string  `json:"uses,omitempty" yaml:"uses"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Featured    bool      `json:"featured" yaml:"featured"`
	Published   bool      `json:"published" yaml:"published"`
	LastUpdated time.Time `json:"last_updated" yaml:"lastUpdated"`

	// Body is the markdown article below the frontmatter.
	Body string `json:"body,omitempty" yaml:"-"`
}

// Summary is the listing shape: everything except the article body.
type Summary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
}

// Summarize strips the body for list responses.
func (e *Entry) Summarize() Summary {
	return Summary{
		Slug:        e.Slug,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Tags:        e.Tags,
		Featured:    e.Featured,
	}
}
