package identify

import (
	"sort"
	"strings"
)

// CategoryMatch is one scored label within a category.
type CategoryMatch struct {
	Label          string   `json:"label"`
	Confidence     float64  `json:"confidence"`
	MatchedPhrases []string `json:"matched_phrases"`
}

// Analysis maps each lexicon category to its matches, sorted by descending
// confidence. Every lexicon category is present; a category with no matches
// maps to an empty (non-nil) slice.
type Analysis map[string][]CategoryMatch

// confidenceBoost is applied to the raw matched/total phrase ratio.
// Captions rarely hit every phrase of a label, so the ratio alone
// underestimates; 1.2 was tuned against real BLIP captions.
const confidenceBoost = 1.2

// Disambiguation constants for the glass-vs-metal correction.
// Generic captioners routinely describe foil-inclusion glass beads as
// "metal"; when a metallic-inclusion signal phrase is present we push the
// glass material up and the metal material down.
const (
	glassSignalBoost   = 0.3
	metalSignalPenalty = 0.4
	signalBoostCap     = 0.95
	signalPenaltyFloor = 0.1
)

// glassMetalSignals are the phrases that indicate metallic effects inside
// glass rather than a metal bead.
//
//nolint:gochecknoglobals // Static lookup table, never mutated.
var glassMetalSignals = []string{
	"venetian glass",
	"murano",
	"silver leafing",
	"gold leafing",
	"silver leaf",
	"gold leaf",
	"silver foil",
	"gold foil",
	"foil inclusion",
	"metallic effect within the glass",
	"aventurine sparkle",
}

// Analyze scores a caption against the default lexicon.
func Analyze(description string) Analysis {
	return AnalyzeWith(DefaultLexicon, description)
}

// AnalyzeWith scores a caption against the given lexicon.
//
// Matching is case-insensitive substring containment: multi-word phrases
// must appear contiguously, and a single word may count toward any number
// of labels across categories. The result covers exactly the lexicon's
// categories. Pure function: identical inputs yield identical output.
func AnalyzeWith(lexicon Lexicon, description string) Analysis {
	desc := strings.ToLower(description)

	analysis := make(Analysis, len(lexicon))
	for _, category := range lexicon {
		matches := make([]CategoryMatch, 0, 4)
		for _, label := range category.Labels {
			var matched []string
			for _, phrase := range label.Phrases {
				if strings.Contains(desc, phrase) {
					matched = append(matched, phrase)
				}
			}
			if len(matched) == 0 {
				continue
			}
			confidence := float64(len(matched)) / float64(len(label.Phrases)) * confidenceBoost
			if confidence > 1.0 {
				confidence = 1.0
			}
			matches = append(matches, CategoryMatch{
				Label:          label.Name,
				Confidence:     confidence,
				MatchedPhrases: matched,
			})
		}
		analysis[category.Name] = matches
	}

	applyGlassMetalSignals(analysis, desc)

	// Stable sort keeps lexicon order for equal confidences.
	for name := range analysis {
		sort.SliceStable(analysis[name], func(i, j int) bool {
			return analysis[name][i].Confidence > analysis[name][j].Confidence
		})
	}

	return analysis
}

// applyGlassMetalSignals runs the disambiguation pass over the materials
// category. When any signal phrase is present the glass label gains
// glassSignalBoost (capped) and the metal label loses metalSignalPenalty
// (floored). If no glass match exists yet, one is created from the signal
// phrases so the correction is visible to the ranker.
func applyGlassMetalSignals(analysis Analysis, desc string) {
	materials, ok := analysis[CategoryMaterials]
	if !ok {
		return
	}

	var found []string
	for _, signal := range glassMetalSignals {
		if strings.Contains(desc, signal) {
			found = append(found, signal)
		}
	}
	if len(found) == 0 {
		return
	}

	glassSeen := false
	for i := range materials {
		switch materials[i].Label {
		case "glass":
			glassSeen = true
			materials[i].Confidence += glassSignalBoost
			if materials[i].Confidence > signalBoostCap {
				materials[i].Confidence = signalBoostCap
			}
		case "metal":
			materials[i].Confidence -= metalSignalPenalty
			if materials[i].Confidence < signalPenaltyFloor {
				materials[i].Confidence = signalPenaltyFloor
			}
		}
	}

	if !glassSeen {
		materials = append(materials, CategoryMatch{
			Label:          "glass",
			Confidence:     glassSignalBoost,
			MatchedPhrases: found,
		})
	}

	analysis[CategoryMaterials] = materials
}

// Top returns the highest-confidence match for a category, or false when
// the category is empty or absent.
func (a Analysis) Top(category string) (CategoryMatch, bool) {
	matches := a[category]
	if len(matches) == 0 {
		return CategoryMatch{}, false
	}
	return matches[0], true
}

// TopLabel returns the highest-confidence label name for a category, or ""
// when the category has no matches.
func (a Analysis) TopLabel(category string) string {
	if top, ok := a.Top(category); ok {
		return top.Label
	}
	return ""
}

// Has reports whether the category contains a match for the given label.
func (a Analysis) Has(category, label string) bool {
	for _, m := range a[category] {
		if m.Label == label {
			return true
		}
	}
	return false
}
