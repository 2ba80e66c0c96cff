package models

import "encoding/json"

// ContentType tags a document shape the CMS can return.
type ContentType string

const (
	ContentTypeUnknown      ContentType = ""
	ContentTypeHomepage     ContentType = "homepage"
	ContentTypeSiteSettings ContentType = "siteSettings"
	ContentTypeFeaturesPage ContentType = "featuresPage"
	ContentTypePricingPage  ContentType = "pricingPage"
	ContentTypePage         ContentType = "page"
)

// ContentTypes lists every known content type in dispatch order.
var ContentTypes = []ContentType{
	ContentTypeHomepage,
	ContentTypeSiteSettings,
	ContentTypeFeaturesPage,
	ContentTypePricingPage,
	ContentTypePage,
}

// ParseContentType resolves a content type tag. The second return is false for unknown tags.
func ParseContentType(raw string) (ContentType, bool) {
	for _, ct := range ContentTypes {
		if string(ct) == raw {
			return ct, true
		}
	}
	return ContentTypeUnknown, false
}

// Query is a typed content request. GROQ is sent to the live backend; Type drives fallback routing.
type Query struct {
	Type ContentType
	GROQ string
}

// QueryParams are bound as GROQ parameters ($name) on the live path.
type QueryParams map[string]interface{}

// Slug returns the "slug" parameter when it is a string.
func (p QueryParams) Slug() string {
	if p == nil {
		return ""
	}
	if slug, ok := p["slug"].(string); ok {
		return slug
	}
	return ""
}

// FetchSource records where a content payload came from.
type FetchSource string

const (
	SourceLive     FetchSource = "live"
	SourceCache    FetchSource = "cache"
	SourceFallback FetchSource = "fallback"
)

// NullJSON is the safe empty payload.
var NullJSON = json.RawMessage("null")

// EmptyArrayJSON is returned for unrecognised queries.
var EmptyArrayJSON = json.RawMessage("[]")

// SEO is shared search metadata.
type SEO struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Image       json.RawMessage `json:"image,omitempty"`
	Keywords    []string        `json:"keywords,omitempty"`
}

// CTA is a call-to-action link.
type CTA struct {
	Text    string `json:"text" validate:"required"`
	URL     string `json:"url" validate:"required"`
	Variant string `json:"variant,omitempty"`
	Size    string `json:"size,omitempty"`
}

// Hero is the top section of the homepage.
type Hero struct {
	Headline        string          `json:"headline" validate:"required"`
	HighlightText   string          `json:"highlightText,omitempty"`
	Subheadline     string          `json:"subheadline"`
	PrimaryCTA      *CTA            `json:"primaryCta,omitempty"`
	SecondaryCTA    *CTA            `json:"secondaryCta,omitempty"`
	BackgroundImage json.RawMessage `json:"backgroundImage,omitempty"`
}

// PageHero is the simpler hero used by the features and pricing pages.
type PageHero struct {
	Headline    string `json:"headline" validate:"required"`
	Subheadline string `json:"subheadline"`
}

// Stat is an animated figure on the homepage.
type Stat struct {
	Key               string  `json:"_key"`
	Value             float64 `json:"value"`
	Suffix            string  `json:"suffix,omitempty"`
	Prefix            string  `json:"prefix,omitempty"`
	Label             string  `json:"label"`
	AnimationDuration int     `json:"animationDuration,omitempty"`
}

// Feature is a feature card.
type Feature struct {
	Key         string   `json:"_key"`
	IconName    string   `json:"iconName"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits,omitempty"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Key     string          `json:"_key"`
	Quote   string          `json:"quote"`
	Author  string          `json:"author"`
	Role    string          `json:"role,omitempty"`
	Company string          `json:"company,omitempty"`
	Avatar  json.RawMessage `json:"avatar,omitempty"`
	Rating  int             `json:"rating,omitempty"`
}

// Section is a headline/subheadline pair.
type Section struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
}

// Homepage is the "homepage" document.
type Homepage struct {
	ID                   string        `json:"_id" validate:"required"`
	Type                 ContentType   `json:"_type" validate:"eq=homepage"`
	Title                string        `json:"title"`
	Hero                 *Hero         `json:"hero" validate:"required"`
	Stats                []Stat        `json:"stats"`
	Features             []Feature     `json:"features"`
	FeaturesHeadline     string        `json:"featuresHeadline"`
	FeaturesSubheadline  string        `json:"featuresSubheadline"`
	Testimonials         []Testimonial `json:"testimonials"`
	TestimonialsHeadline string        `json:"testimonialsHeadline"`
	SecuritySection      Section       `json:"securitySection"`
	FinalCTA             Section       `json:"finalCta"`
	SEO                  *SEO          `json:"seo,omitempty"`
}

// SocialMedia holds profile links.
type SocialMedia struct {
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// SiteSettings is the "siteSettings" document.
type SiteSettings struct {
	ID          string          `json:"_id" validate:"required"`
	Type        ContentType     `json:"_type" validate:"eq=siteSettings"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Logo        json.RawMessage `json:"logo,omitempty"`
	Favicon     json.RawMessage `json:"favicon,omitempty"`
	SocialMedia *SocialMedia    `json:"socialMedia,omitempty"`
	SEO         *SEO            `json:"seo,omitempty"`
}

// FeaturesPage is the "featuresPage" document.
type FeaturesPage struct {
	ID                 string      `json:"_id" validate:"required"`
	Type               ContentType `json:"_type" validate:"eq=featuresPage"`
	Title              string      `json:"title"`
	Hero               *PageHero   `json:"hero" validate:"required"`
	MainFeatures       []Feature   `json:"mainFeatures"`
	AdditionalFeatures []Feature   `json:"additionalFeatures"`
	SEO                *SEO        `json:"seo,omitempty"`
}

// PricingPlan is one plan on the pricing page.
type PricingPlan struct {
	Key         string   `json:"_key"`
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	CTA         *CTA     `json:"cta,omitempty"`
	CTAVariant  string   `json:"ctaVariant,omitempty"`
	Popular     bool     `json:"popular,omitempty"`
}

// FAQ is a question/answer pair.
type FAQ struct {
	Key      string `json:"_key"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PricingPage is the "pricingPage" document.
type PricingPage struct {
	ID    string        `json:"_id" validate:"required"`
	Type  ContentType   `json:"_type" validate:"eq=pricingPage"`
	Title string        `json:"title"`
	Hero  *PageHero     `json:"hero" validate:"required"`
	Plans []PricingPlan `json:"plans" validate:"dive"`
	FAQs  []FAQ         `json:"faqs"`
	SEO   *SEO          `json:"seo,omitempty"`
}

// Slug is the CMS slug object.
type Slug struct {
	Current string `json:"current" validate:"required"`
}

// Page is a generic "page" document addressed by slug.
type Page struct {
	ID      string          `json:"_id" validate:"required"`
	Type    ContentType     `json:"_type" validate:"eq=page"`
	Title   string          `json:"title" validate:"required"`
	Slug    Slug            `json:"slug"`
	Content json.RawMessage `json:"content"`
	SEO     *SEO            `json:"seo,omitempty"`
}
