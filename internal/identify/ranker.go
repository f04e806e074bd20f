package identify

import (
	"sort"
	"strings"
)

// Suggestion is one ranked product suggestion. Suggestions are value
// objects built fresh per request; the slug points at the matching
// encyclopedia entry.
type Suggestion struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// maxSuggestions caps the ranked output.
const maxSuggestions = 3

// Rank turns an analysis plus the raw caption into at most maxSuggestions
// suggestions, ordered by descending confidence. The rules are evaluated as
// ordered tiers: named-variety overrides first, then shape specialties, then
// material and multi-colour fallbacks gated on how much the earlier tiers
// produced, and finally an unconditional floor so the result is never empty.
//
// The tier gates are load-bearing. In particular the material fallback only
// fires when the override tiers produced at most one suggestion, and the
// multi-colour fallback is suppressed entirely when jasper or agate matched,
// regardless of how many colours were seen.
func Rank(analysis Analysis, description string) []Suggestion {
	desc := strings.ToLower(description)
	var suggestions []Suggestion

	// Tier 1: named-variety overrides. Independent rules; several may fire.
	foilFired := false
	venetianFired := false

	if strings.Contains(desc, "jasper") {
		suggestions = append(suggestions, Suggestion{
			Title:       "Jasper Beads",
			Slug:        "jasper-beads",
			Description: "Opaque natural jasper with earthy banding, a staple of gemstone jewellery.",
			Confidence:  0.94,
			Category:    "stone",
			Tags:        buildTags([]string{"jasper", "stone", "natural"}, analysis.TopLabel(CategoryColors)),
		})
	}

	if strings.Contains(desc, "agate") {
		suggestions = append(suggestions, Suggestion{
			Title:       "Agate Beads",
			Slug:        "agate-beads",
			Description: "Banded agate beads, often dyed, prized for their layered translucent patterns.",
			Confidence:  0.94,
			Category:    "stone",
			Tags:        buildTags([]string{"agate", "stone", "banded"}, analysis.TopLabel(CategoryColors)),
		})
	}

	if strings.Contains(desc, "quartz") {
		suggestions = append(suggestions, Suggestion{
			Title:       "Quartz Beads",
			Slug:        "quartz-beads",
			Description: "Clear or tinted quartz beads with a glassy lustre.",
			Confidence:  0.92,
			Category:    "stone",
			Tags:        buildTags([]string{"quartz", "stone", "crystal"}, analysis.TopLabel(CategoryColors)),
		})
	}

	if strings.Contains(desc, "venetian") || strings.Contains(desc, "murano") {
		venetianFired = true
		suggestions = append(suggestions, Suggestion{
			Title:       "Venetian Glass Beads",
			Slug:        "venetian-glass",
			Description: "Traditional Italian glass beads with distinctive patterns and inclusions.",
			Confidence:  0.93,
			Category:    "glass",
			Tags:        buildTags([]string{"venetian", "murano", "glass", "luxury"}, analysis.TopLabel(CategoryColors)),
		})
	}

	if strings.Contains(desc, "lampwork") {
		suggestions = append(suggestions, Suggestion{
			Title:       "Lampwork Glass Beads",
			Slug:        "lampwork-beads",
			Description: "Artisan glass beads shaped one at a time over a torch flame.",
			Confidence:  0.92,
			Category:    "glass",
			Tags:        buildTags([]string{"lampwork", "artisan", "glass"}, analysis.TopLabel(CategoryColors)),
		})
	}

	// Foil rules require the top material to be glass so a plain metal bead
	// described with "silver" does not masquerade as foil glass.
	if analysis.TopLabel(CategoryMaterials) == "glass" {
		if strings.Contains(desc, "silver foil") || strings.Contains(desc, "silver leaf") {
			foilFired = true
			suggestions = append(suggestions, Suggestion{
				Title:       "Silver Foil Glass Beads",
				Slug:        "silver-foil-glass",
				Description: "Glass beads with genuine silver foil suspended inside the glass.",
				Confidence:  0.95,
				Category:    "glass",
				Tags:        buildTags([]string{"silver-foil", "foil", "glass"}, analysis.TopLabel(CategoryColors)),
			})
		}
		if strings.Contains(desc, "gold foil") || strings.Contains(desc, "gold leaf") {
			foilFired = true
			suggestions = append(suggestions, Suggestion{
				Title:       "Gold Foil Glass Beads",
				Slug:        "gold-foil-glass",
				Description: "Glass beads with gold foil or leaf worked into the glass body.",
				Confidence:  0.95,
				Category:    "glass",
				Tags:        buildTags([]string{"gold-foil", "foil", "glass"}, analysis.TopLabel(CategoryColors)),
			})
		}
	}

	// Tier 2: distinctive shapes. Heart stands down when a foil or venetian
	// suggestion fired; those beads are usually hearts already and the
	// duplicate reads as noise.
	if analysis.Has(CategoryShapes, "heart") && !foilFired && !venetianFired {
		suggestions = append(suggestions, Suggestion{
			Title:       "Heart Shaped Beads",
			Slug:        "heart-beads",
			Description: "Heart silhouette beads for pendants and charm work.",
			Confidence:  0.89,
			Category:    "novelty",
			Tags:        buildTags([]string{"heart", "novelty"}, analysis.TopLabel(CategoryMaterials), analysis.TopLabel(CategoryColors)),
		})
	}

	if analysis.Has(CategoryShapes, "star") {
		suggestions = append(suggestions, Suggestion{
			Title:       "Star Shaped Beads",
			Slug:        "star-beads",
			Description: "Star silhouette beads, popular for celestial themed designs.",
			Confidence:  0.89,
			Category:    "novelty",
			Tags:        buildTags([]string{"star", "novelty"}, analysis.TopLabel(CategoryMaterials), analysis.TopLabel(CategoryColors)),
		})
	}

	// Tier 3: generic material fallback, only when the override tiers left
	// room (0 or 1 suggestions so far).
	if len(suggestions) <= 1 {
		if s, ok := materialFallback(analysis); ok {
			suggestions = append(suggestions, s)
		}
	}

	// Tier 4: multi-colour fallback. Jasper and agate beads are naturally
	// multi-coloured, so the rule stands down when either matched.
	jasperOrAgate := strings.Contains(desc, "jasper") || strings.Contains(desc, "agate")
	if len(suggestions) < 2 && len(analysis[CategoryColors]) > 3 && !jasperOrAgate {
		suggestions = append(suggestions, Suggestion{
			Title:       "Mixed Colour Bead Collection",
			Slug:        "mixed-bead-collections",
			Description: "Assorted beads in a spread of colours, sold as mixed lots.",
			Confidence:  0.75,
			Category:    "mixed",
			Tags:        buildTags([]string{"mixed", "multicolour", "assortment"}),
		})
	}

	// Tier 5: universal floor. The caller always gets at least one answer.
	if len(suggestions) == 0 {
		suggestions = append(suggestions, Suggestion{
			Title:       "Craft Beads",
			Slug:        "craft-beads",
			Description: "General purpose craft beads for jewellery making and decoration.",
			Confidence:  0.75,
			Category:    "general",
			Tags:        buildTags([]string{"beads", "craft", "jewellery-making"}),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// materialFallback builds the tier-3 suggestion from the strongest material
// signal. Seed beads live in the types category but compete here as if they
// were a material, matching how suppliers catalogue them.
func materialFallback(analysis Analysis) (Suggestion, bool) {
	type candidate struct {
		label      string
		confidence float64
	}

	var candidates []candidate
	for _, m := range analysis[CategoryMaterials] {
		switch m.Label {
		case "stone", "glass", "pearl", "metal":
			candidates = append(candidates, candidate{m.Label, m.Confidence})
		}
	}
	for _, m := range analysis[CategoryTypes] {
		if m.Label == "seed" {
			candidates = append(candidates, candidate{"seed", m.Confidence})
		}
	}
	if len(candidates) == 0 {
		return Suggestion{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.confidence > best.confidence {
			best = c
		}
	}

	color := analysis.TopLabel(CategoryColors)
	shape := analysis.TopLabel(CategoryShapes)

	switch best.label {
	case "stone":
		return Suggestion{
			Title:       "Natural Stone Beads",
			Slug:        "stone-beads",
			Description: describeWith("Natural stone beads", color, shape),
			Confidence:  0.88,
			Category:    "stone",
			Tags:        buildTags([]string{"stone", "natural", "gemstone"}, color, shape),
		}, true
	case "glass":
		return Suggestion{
			Title:       "Glass Beads",
			Slug:        "glass-beads",
			Description: describeWith("Classic glass beads", color, shape),
			Confidence:  0.87,
			Category:    "glass",
			Tags:        buildTags([]string{"glass", "beads"}, color, shape),
		}, true
	case "seed":
		return Suggestion{
			Title:       "Seed Beads",
			Slug:        "seed-beads",
			Description: describeWith("Small uniform seed beads for detailed beadwork", color, ""),
			Confidence:  0.86,
			Category:    "glass",
			Tags:        buildTags([]string{"seed", "small", "beadwork"}, color),
		}, true
	case "pearl":
		return Suggestion{
			Title:       "Pearl Beads",
			Slug:        "pearl-beads",
			Description: describeWith("Lustrous pearl beads", color, shape),
			Confidence:  0.86,
			Category:    "pearl",
			Tags:        buildTags([]string{"pearl", "lustrous", "classic"}, color, shape),
		}, true
	case "metal":
		return Suggestion{
			Title:       "Metal Beads",
			Slug:        "metal-beads",
			Description: describeWith("Metal beads and spacers", color, shape),
			Confidence:  0.85,
			Category:    "metal",
			Tags:        buildTags([]string{"metal", "findings"}, color, shape),
		}, true
	}
	return Suggestion{}, false
}

// describeWith interpolates the top colour and shape into a base description.
func describeWith(base, color, shape string) string {
	var b strings.Builder
	b.WriteString(base)
	if color != "" {
		b.WriteString(" in ")
		b.WriteString(color)
	}
	if shape != "" {
		b.WriteString(" with a ")
		b.WriteString(shape)
		b.WriteString(" profile")
	}
	b.WriteString(".")
	return b.String()
}

// buildTags appends the optional extras to the base tag set, dropping empty
// entries. The returned list never contains empty values.
func buildTags(base []string, extras ...string) []string {
	tags := make([]string, 0, len(base)+len(extras))
	tags = append(tags, base...)
	for _, e := range extras {
		if e != "" {
			tags = append(tags, e)
		}
	}
	return tags
}
