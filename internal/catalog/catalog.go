// Package catalog provides the static template, color, and tier catalogs
// that document data references by id.
package catalog

// DocumentKind distinguishes the two document types the builder produces.
type DocumentKind string

const (
	KindResume      DocumentKind = "resume"
	KindCoverLetter DocumentKind = "cover_letter"
)

// Tier identifies a billing tier.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Template describes a selectable visual layout.
type Template struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Kind    DocumentKind `json:"kind"`
	MinTier Tier         `json:"min_tier"`
}

// Color describes a named accent color swatch.
type Color struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Default ids used when a stored reference is stale or absent.
const (
	DefaultResumeTemplateID      = "clean"
	DefaultCoverLetterTemplateID = "formal"
	DefaultColorID               = "slate"
)

var resumeTemplates = []Template{
	{ID: "clean", Name: "Clean", Kind: KindResume, MinTier: TierFree},
	{ID: "modern", Name: "Modern", Kind: KindResume, MinTier: TierFree},
	{ID: "classic", Name: "Classic", Kind: KindResume, MinTier: TierFree},
	{ID: "minimal", Name: "Minimal", Kind: KindResume, MinTier: TierPro},
	{ID: "bold", Name: "Bold", Kind: KindResume, MinTier: TierPro},
}

var coverLetterTemplates = []Template{
	{ID: "formal", Name: "Formal", Kind: KindCoverLetter, MinTier: TierFree},
	{ID: "simple", Name: "Simple", Kind: KindCoverLetter, MinTier: TierFree},
	{ID: "accent", Name: "Accent", Kind: KindCoverLetter, MinTier: TierPro},
}

var colors = []Color{
	{ID: "slate", Name: "Slate", Hex: "#475569"},
	{ID: "blue", Name: "Blue", Hex: "#2563eb"},
	{ID: "emerald", Name: "Emerald", Hex: "#059669"},
	{ID: "crimson", Name: "Crimson", Hex: "#dc2626"},
	{ID: "amber", Name: "Amber", Hex: "#d97706"},
	{ID: "violet", Name: "Violet", Hex: "#7c3aed"},
}

var tierRank = map[Tier]int{
	TierFree:       0,
	TierPro:        1,
	TierEnterprise: 2,
}

// Templates returns the templates available for a document kind, in catalog order.
func Templates(kind DocumentKind) []Template {
	switch kind {
	case KindCoverLetter:
		return append([]Template(nil), coverLetterTemplates...)
	default:
		return append([]Template(nil), resumeTemplates...)
	}
}

// Colors returns all color swatches in catalog order.
func Colors() []Color {
	return append([]Color(nil), colors...)
}

// LookupTemplate returns the template with the given id, if it exists for the kind.
func LookupTemplate(kind DocumentKind, id string) (Template, bool) {
	for _, t := range Templates(kind) {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ResolveTemplate returns the template for id, falling back to the kind's
// default when the reference is stale or absent. It never fails.
func ResolveTemplate(kind DocumentKind, id string) Template {
	if t, ok := LookupTemplate(kind, id); ok {
		return t
	}
	def := DefaultResumeTemplateID
	if kind == KindCoverLetter {
		def = DefaultCoverLetterTemplateID
	}
	t, _ := LookupTemplate(kind, def)
	return t
}

// ResolveColor returns the color for id, falling back to the default swatch
// when the reference is stale or absent. It never fails.
func ResolveColor(id string) Color {
	for _, c := range colors {
		if c.ID == id {
			return c
		}
	}
	c, _ := lookupColor(DefaultColorID)
	return c
}

func lookupColor(id string) (Color, bool) {
	for _, c := range colors {
		if c.ID == id {
			return c, true
		}
	}
	return Color{}, false
}

// ParseTier converts a stored tier string into a Tier, defaulting to free
// for unknown values.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierPro:
		return TierPro
	case TierEnterprise:
		return TierEnterprise
	default:
		return TierFree
	}
}

// TierAllows reports whether a tier may use the given template.
func TierAllows(tier Tier, tmpl Template) bool {
	return tierRank[tier] >= tierRank[tmpl.MinTier]
}

// TierPrice returns the monthly price for a paid tier in the provider's
// decimal string format, and whether the tier is purchasable.
func TierPrice(tier Tier) (string, bool) {
	switch tier {
	case TierPro:
		return "9.00", true
	case TierEnterprise:
		return "29.00", true
	default:
		return "", false
	}
}
