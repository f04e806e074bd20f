package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for entry documents.
//
// Titles and descriptions get English stemming for natural-language queries;
// category, tags, materials, colours, and shapes use the keyword analyzer so
// filters and facets match exact values (and compound slugs like
// "silver-foil" stay intact).
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = en.AnalyzerName
	titleField.Store = true
	titleField.IncludeTermVectors = true // for highlighting
	docMapping.AddFieldMappingsAt("title", titleField)

	descField := bleve.NewTextFieldMapping()
	descField.Analyzer = en.AnalyzerName
	descField.Store = true
	descField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("description", descField)

	// Article bodies are searchable but too large to store.
	bodyField := bleve.NewTextFieldMapping()
	bodyField.Analyzer = en.AnalyzerName
	bodyField.Store = false
	docMapping.AddFieldMappingsAt("body", bodyField)

	for _, name := range []string{"slug", "category", "subcategory", "materials", "colours", "shapes", "tags"} {
		field := bleve.NewTextFieldMapping()
		field.Analyzer = keyword.Name
		field.Store = true
		docMapping.AddFieldMappingsAt(name, field)
	}

	featuredField := bleve.NewBooleanFieldMapping()
	featuredField.Store = true
	docMapping.AddFieldMappingsAt("featured", featuredField)

	updatedField := bleve.NewNumericFieldMapping()
	updatedField.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedField)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
