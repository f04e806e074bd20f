package identify

import (
	"reflect"
	"testing"
)

func TestAnalyze_CoversEveryCategory(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"empty description", ""},
		{"no matches", "xylophone zebra"},
		{"typical caption", "a round blue glass bead, shiny and smooth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := Analyze(tt.description)

			if len(analysis) != len(DefaultLexicon) {
				t.Fatalf("expected %d categories, got %d", len(DefaultLexicon), len(analysis))
			}
			for _, name := range DefaultLexicon.Categories() {
				matches, ok := analysis[name]
				if !ok {
					t.Errorf("category %q missing from analysis", name)
				}
				if matches == nil {
					t.Errorf("category %q is nil, want empty slice", name)
				}
			}
		})
	}
}

func TestAnalyze_EmptyDescription(t *testing.T) {
	analysis := Analyze("")
	for name, matches := range analysis {
		if len(matches) != 0 {
			t.Errorf("category %q: expected no matches for empty description, got %d", name, len(matches))
		}
	}
}

func TestAnalyze_TypicalCaption(t *testing.T) {
	analysis := Analyze("a round blue glass bead, shiny and smooth")

	glass := findMatch(t, analysis, CategoryMaterials, "glass")
	for _, want := range []string{"glass", "shiny", "smooth"} {
		if !contains(glass.MatchedPhrases, want) {
			t.Errorf("glass matched phrases %v missing %q", glass.MatchedPhrases, want)
		}
	}

	if !analysis.Has(CategoryColors, "blue") {
		t.Error("expected blue colour match")
	}
	if !analysis.Has(CategoryShapes, "round") {
		t.Error("expected round shape match")
	}
}

func TestAnalyze_ConfidenceInRange(t *testing.T) {
	descriptions := []string{
		"",
		"glass crystal transparent clear shiny smooth glossy",
		"venetian glass murano silver leafing metallic bead",
		"a silver metal spacer bead",
		"jasper agate quartz stone marble granite",
	}

	for _, desc := range descriptions {
		analysis := Analyze(desc)
		for name, matches := range analysis {
			for _, m := range matches {
				if m.Confidence < 0 || m.Confidence > 1 {
					t.Errorf("desc %q category %q label %q: confidence %f out of [0,1]", desc, name, m.Label, m.Confidence)
				}
			}
		}
	}
}

func TestAnalyze_SortedByConfidence(t *testing.T) {
	analysis := Analyze("a blue navy cobalt bead with a hint of red, glass and stone")
	for name, matches := range analysis {
		for i := 1; i < len(matches); i++ {
			if matches[i].Confidence > matches[i-1].Confidence {
				t.Errorf("category %q not sorted: %f after %f", name, matches[i].Confidence, matches[i-1].Confidence)
			}
		}
	}
}

func TestAnalyze_FullLabelMatchCapsAtOne(t *testing.T) {
	// All four wood phrases present: 4/4 * 1.2 must clamp to 1.0.
	wood := findMatch(t, Analyze("wood wooden grain bamboo"), CategoryMaterials, "wood")
	if wood.Confidence != 1.0 {
		t.Errorf("expected clamped confidence 1.0, got %f", wood.Confidence)
	}
}

func TestAnalyze_MultiWordPhraseMatchesContiguously(t *testing.T) {
	if !Analyze("a bead with gold leaf inside").Has(CategoryTypes, "venetian") {
		t.Error("contiguous multi-word phrase should match")
	}
	if Analyze("a gold bead next to a leaf").Has(CategoryTypes, "venetian") {
		t.Error("split multi-word phrase should not match")
	}
}

func TestAnalyze_PhraseSharedAcrossCategories(t *testing.T) {
	// "pearl" triggers both the pearl material and the white colour.
	analysis := Analyze("a pearl bead")
	if !analysis.Has(CategoryMaterials, "pearl") {
		t.Error("expected pearl material match")
	}
	if !analysis.Has(CategoryColors, "white") {
		t.Error("expected white colour match via 'pearl' phrase")
	}
}

func TestAnalyze_GlassMetalDisambiguation(t *testing.T) {
	// Signals present: glass boosted, metal penalized.
	with := Analyze("a metal looking bead of venetian glass with silver leafing")
	without := Analyze("a metal looking bead of glass")

	boosted := findMatch(t, with, CategoryMaterials, "glass")
	plain := findMatch(t, without, CategoryMaterials, "glass")
	if boosted.Confidence <= plain.Confidence {
		t.Errorf("expected boosted glass confidence, got %f <= %f", boosted.Confidence, plain.Confidence)
	}
	if boosted.Confidence > 0.95 {
		t.Errorf("boosted glass confidence %f exceeds 0.95 cap", boosted.Confidence)
	}

	penalized := findMatch(t, with, CategoryMaterials, "metal")
	if penalized.Confidence < 0.1 {
		t.Errorf("penalized metal confidence %f below 0.1 floor", penalized.Confidence)
	}
	unpenalized := findMatch(t, without, CategoryMaterials, "metal")
	if penalized.Confidence >= unpenalized.Confidence {
		t.Errorf("expected metal penalty, got %f >= %f", penalized.Confidence, unpenalized.Confidence)
	}
}

func TestAnalyze_DisambiguationCreatesGlassMatch(t *testing.T) {
	// "murano" alone carries no glass lexicon phrase, but the signal still
	// surfaces a glass material entry for the ranker.
	analysis := Analyze("murano bead")
	glass := findMatch(t, analysis, CategoryMaterials, "glass")
	if glass.Confidence != glassSignalBoost {
		t.Errorf("expected synthesized glass confidence %f, got %f", glassSignalBoost, glass.Confidence)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	const desc = "a round blue venetian glass bead with gold leaf"
	first := Analyze(desc)
	second := Analyze(desc)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of the same description differs")
	}
}

// findMatch fails the test when the label is absent.
func findMatch(t *testing.T, analysis Analysis, category, label string) CategoryMatch {
	t.Helper()
	for _, m := range analysis[category] {
		if m.Label == label {
			return m
		}
	}
	t.Fatalf("category %q has no %q match: %+v", category, label, analysis[category])
	return CategoryMatch{}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
