// Package identify turns free-text image captions into scored bead category
// matches and ranked product suggestions. The analyzer and ranker are pure
// functions over their inputs; all network and storage concerns live elsewhere.
package identify

// Label is one recognizable value within a category, together with the
// phrases that trigger it. Phrases are lowercase and may be multi-word;
// multi-word phrases match as contiguous substrings.
type Label struct {
	Name    string
	Phrases []string
}

// Category is an ordered group of labels (materials, colors, ...).
// Label order is significant: equal-confidence matches keep this order.
type Category struct {
	Name   string
	Labels []Label
}

// Lexicon is the full ordered trigger-phrase table.
type Lexicon []Category

// Category names used by the default lexicon.
const (
	CategoryMaterials = "materials"
	CategoryColors    = "colors"
	CategoryShapes    = "shapes"
	CategoryFinishes  = "finishes"
	CategoryTypes     = "types"
)

// Categories returns the category names in lexicon order.
func (l Lexicon) Categories() []string {
	names := make([]string, len(l))
	for i, c := range l {
		names[i] = c.Name
	}
	return names
}

// DefaultLexicon is the trigger-phrase table used in production.
// A phrase may appear under several labels ("pearl" is both a material and
// a colour cue); labels are unique within a category.
//
//nolint:gochecknoglobals // Static lookup table, never mutated.
var DefaultLexicon = Lexicon{
	{
		Name: CategoryMaterials,
		Labels: []Label{
			{Name: "glass", Phrases: []string{"glass", "crystal", "transparent", "clear", "shiny", "smooth", "glossy"}},
			{Name: "metal", Phrases: []string{"metal", "silver", "gold", "copper", "bronze", "brass", "metallic", "pewter"}},
			{Name: "stone", Phrases: []string{"stone", "marble", "granite", "jasper", "agate", "quartz", "gemstone", "mineral"}},
			{Name: "wood", Phrases: []string{"wood", "wooden", "grain", "bamboo"}},
			{Name: "ceramic", Phrases: []string{"ceramic", "porcelain", "clay", "glazed", "terracotta"}},
			{Name: "plastic", Phrases: []string{"plastic", "acrylic", "resin", "synthetic"}},
			{Name: "pearl", Phrases: []string{"pearl", "nacre", "mother of pearl", "lustrous"}},
		},
	},
	{
		Name: CategoryColors,
		Labels: []Label{
			{Name: "blue", Phrases: []string{"blue", "navy", "cobalt", "azure", "sapphire", "turquoise"}},
			{Name: "red", Phrases: []string{"red", "crimson", "ruby", "burgundy", "scarlet"}},
			{Name: "green", Phrases: []string{"green", "emerald", "jade", "olive"}},
			{Name: "yellow", Phrases: []string{"yellow", "amber", "citrine", "golden"}},
			{Name: "purple", Phrases: []string{"purple", "violet", "amethyst", "lavender"}},
			{Name: "orange", Phrases: []string{"orange", "coral", "peach"}},
			{Name: "pink", Phrases: []string{"pink", "rose", "fuchsia"}},
			{Name: "white", Phrases: []string{"white", "cream", "ivory", "pearl"}},
			{Name: "black", Phrases: []string{"black", "onyx", "jet"}},
			{Name: "brown", Phrases: []string{"brown", "tan", "chocolate"}},
			{Name: "clear", Phrases: []string{"clear", "transparent", "colourless"}},
		},
	},
	{
		Name: CategoryShapes,
		Labels: []Label{
			{Name: "round", Phrases: []string{"round", "sphere", "spherical", "ball", "circular"}},
			{Name: "oval", Phrases: []string{"oval", "elliptical", "egg shaped"}},
			{Name: "cylinder", Phrases: []string{"cylinder", "tube", "barrel"}},
			{Name: "disc", Phrases: []string{"disc", "flat", "coin"}},
			{Name: "cube", Phrases: []string{"cube", "square"}},
			{Name: "bicone", Phrases: []string{"bicone", "double cone"}},
			{Name: "heart", Phrases: []string{"heart", "heart shaped", "heart-shaped"}},
			{Name: "star", Phrases: []string{"star", "star shaped", "star-shaped"}},
			{Name: "teardrop", Phrases: []string{"teardrop", "drop shaped", "briolette"}},
			{Name: "irregular", Phrases: []string{"irregular", "organic", "freeform", "nugget"}},
		},
	},
	{
		Name: CategoryFinishes,
		Labels: []Label{
			{Name: "shiny", Phrases: []string{"shiny", "glossy", "polished", "reflective"}},
			{Name: "matte", Phrases: []string{"matte", "frosted", "satin"}},
			{Name: "iridescent", Phrases: []string{"iridescent", "aurora borealis", "rainbow sheen"}},
			{Name: "metallic", Phrases: []string{"metallic", "foil", "leafing"}},
			{Name: "faceted", Phrases: []string{"faceted", "fire polished", "cut surface"}},
			{Name: "smooth", Phrases: []string{"smooth", "even surface"}},
		},
	},
	{
		Name: CategoryTypes,
		Labels: []Label{
			{Name: "venetian", Phrases: []string{"venetian", "murano", "italian glass", "gold leaf", "aventurine"}},
			{Name: "seed", Phrases: []string{"seed bead", "seed", "tiny", "uniform"}},
			{Name: "czech", Phrases: []string{"czech", "bohemian", "fire polished"}},
			{Name: "pearl", Phrases: []string{"pearl", "freshwater pearl", "nacre"}},
			{Name: "lampwork", Phrases: []string{"lampwork", "handmade glass", "artisan", "swirl pattern"}},
			{Name: "crystal", Phrases: []string{"swarovski", "austrian crystal", "crystal bead"}},
			{Name: "jasper", Phrases: []string{"jasper"}},
			{Name: "agate", Phrases: []string{"agate"}},
			{Name: "quartz", Phrases: []string{"quartz", "rose quartz"}},
		},
	},
}
