package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query    string
	Category string   // exact category filter
	Tags     []string // any-of tag filter

	Limit  int
	Offset int

	IncludeFacets bool
	Highlight     bool
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:         20,
		IncludeFacets: true,
		Highlight:     true,
	}
}

// Result is a page of search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
	Facets Facets `json:"facets,omitzero"`
}

// Hit is one matching entry.
type Hit struct {
	Slug        string            `json:"slug"`
	Score       float64           `json:"score"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// Facets holds facet counts for filtering UIs.
type Facets struct {
	Categories []FacetCount `json:"categories,omitempty"`
	Tags       []FacetCount `json:"tags,omitempty"`
}

// FacetCount is one facet value with its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a query against the index.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.Fields = []string{"slug", "title", "description", "category", "tags"}
	req.SortBy([]string{"-_score"})

	if params.IncludeFacets {
		req.AddFacet("category", bleve.NewFacetRequest("category", 10))
		req.AddFacet("tags", bleve.NewFacetRequest("tags", 20))
	}
	if params.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("title")
		req.Highlight.AddField("description")
	}

	raw, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  raw.Total,
		TookMs: raw.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(raw.Hits)),
	}

	for _, hit := range raw.Hits {
		h := Hit{Slug: hit.ID, Score: hit.Score}
		if t, ok := hit.Fields["title"].(string); ok {
			h.Title = t
		}
		if d, ok := hit.Fields["description"].(string); ok {
			h.Description = d
		}
		if c, ok := hit.Fields["category"].(string); ok {
			h.Category = c
		}
		h.Tags = stringsField(hit.Fields["tags"])

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string, len(hit.Fragments))
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, h)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(raw)
	}
	return result, nil
}

// buildQuery constructs the Bleve query: a disjunction of title (boosted),
// description, body, fuzzy title, and title prefix matches, AND-ed with any
// filters.
func buildQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		descMatch.SetBoost(1.5)

		bodyMatch := bleve.NewMatchQuery(params.Query)
		bodyMatch.SetField("body")

		textQueries := []query.Query{titleMatch, descMatch, bodyMatch}

		// Typo tolerance on the title.
		fuzzy := bleve.NewFuzzyQuery(params.Query)
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("title")
		fuzzy.SetBoost(0.8)
		textQueries = append(textQueries, fuzzy)

		if len(params.Query) >= 2 {
			prefix := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefix.SetField("title")
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Category != "" {
		tq := bleve.NewTermQuery(params.Category)
		tq.SetField("category")
		queries = append(queries, tq)
	}

	if len(params.Tags) > 0 {
		tagQueries := make([]query.Query, len(params.Tags))
		for i, tag := range params.Tags {
			tq := bleve.NewTermQuery(tag)
			tq.SetField("tags")
			tagQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(tagQueries...))
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

func extractFacets(raw *bleve.SearchResult) Facets {
	facets := Facets{}
	if f, ok := raw.Facets["category"]; ok {
		for _, term := range f.Terms.Terms() {
			facets.Categories = append(facets.Categories, FacetCount{Value: term.Term, Count: term.Count})
		}
	}
	if f, ok := raw.Facets["tags"]; ok {
		for _, term := range f.Terms.Terms() {
			facets.Tags = append(facets.Tags, FacetCount{Value: term.Term, Count: term.Count})
		}
	}
	return facets
}

func stringsField(v any) []string {
	switch value := v.(type) {
	case string:
		return []string{value}
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
