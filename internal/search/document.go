// Package search provides full-text search over the bead encyclopedia using
// Bleve, with fuzzy matching and category/tag faceting.
package search

import (
	"strings"

	"github.com/beadfanatic/server/internal/content"
)

// Document is the indexed shape of an encyclopedia entry.
type Document struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Materials   []string `json:"materials,omitempty"`
	Colours     []string `json:"colours,omitempty"`
	Shapes      []string `json:"shapes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Featured    bool     `json:"featured"`
	UpdatedAt   int64    `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names so they
// line up with the index mapping.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"slug":       d.Slug,
		"title":      d.Title,
		"category":   d.Category,
		"featured":   d.Featured,
		"updated_at": d.UpdatedAt,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Body != "" {
		m["body"] = d.Body
	}
	if d.Subcategory != "" {
		m["subcategory"] = d.Subcategory
	}
	if len(d.Materials) > 0 {
		m["materials"] = lowered(d.Materials)
	}
	if len(d.Colours) > 0 {
		m["colours"] = lowered(d.Colours)
	}
	if len(d.Shapes) > 0 {
		m["shapes"] = lowered(d.Shapes)
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	return m
}

// FromEntry converts an encyclopedia entry to its search document.
func FromEntry(e *content.Entry) *Document {
	return &Document{
		Slug:        e.Slug,
		Title:       e.Title,
		Description: e.Description,
		Body:        e.Body,
		Category:    e.Category,
		Subcategory: e.Subcategory,
		Materials:   e.Materials,
		Colours:     e.Colours,
		Shapes:      e.Shapes,
		Tags:        e.Tags,
		Featured:    e.Featured,
		UpdatedAt:   e.LastUpdated.UnixMilli(),
	}
}

func lowered(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
