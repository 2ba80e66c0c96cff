package service

import (
	"regexp"
	"strings"

	"github.com/noah-isme/spendtrails-site/internal/models"
)

const homepageGROQ = `*[_type == "homepage"][0]{
  _id,
  _type,
  title,
  hero{headline, highlightText, subheadline, primaryCta, secondaryCta, backgroundImage},
  stats[]{_key, value, suffix, prefix, label, animationDuration},
  features[]{_key, iconName, title, description, benefits},
  featuresHeadline,
  featuresSubheadline,
  testimonials[]{_key, quote, author, role, company, avatar, rating},
  testimonialsHeadline,
  securitySection,
  finalCta,
  seo
}`

const siteSettingsGROQ = `*[_type == "siteSettings"][0]{
  _id,
  _type,
  title,
  description,
  logo,
  favicon,
  socialMedia,
  seo
}`

const featuresPageGROQ = `*[_type == "featuresPage"][0]{
  _id,
  _type,
  title,
  hero,
  mainFeatures[]{_key, iconName, title, description, benefits},
  additionalFeatures[]{_key, iconName, title, description, benefits},
  seo
}`

const pricingPageGROQ = `*[_type == "pricingPage"][0]{
  _id,
  _type,
  title,
  hero,
  plans[]{_key, name, price, period, description, features, cta, ctaVariant, popular},
  faqs[]{_key, question, answer},
  seo
}`

const pageGROQ = `*[_type == "page" && slug.current == $slug][0]{
  _id,
  _type,
  title,
  slug,
  content,
  seo
}`

// Typed queries for every content type.
var (
	HomepageQuery     = models.Query{Type: models.ContentTypeHomepage, GROQ: homepageGROQ}
	SiteSettingsQuery = models.Query{Type: models.ContentTypeSiteSettings, GROQ: siteSettingsGROQ}
	FeaturesPageQuery = models.Query{Type: models.ContentTypeFeaturesPage, GROQ: featuresPageGROQ}
	PricingPageQuery  = models.Query{Type: models.ContentTypePricingPage, GROQ: pricingPageGROQ}
	PageQuery         = models.Query{Type: models.ContentTypePage, GROQ: pageGROQ}
)

// QueryFor returns the typed query for a content type.
func QueryFor(contentType models.ContentType) (models.Query, bool) {
	switch contentType {
	case models.ContentTypeHomepage:
		return HomepageQuery, true
	case models.ContentTypeSiteSettings:
		return SiteSettingsQuery, true
	case models.ContentTypeFeaturesPage:
		return FeaturesPageQuery, true
	case models.ContentTypePricingPage:
		return PricingPageQuery, true
	case models.ContentTypePage:
		return PageQuery, true
	default:
		return models.Query{}, false
	}
}

var slugLiteralPattern = regexp.MustCompile(`slug\.current\s*==\s*(?:"([^"]+)"|'([^']+)')`)

// InferContentType classifies an untagged GROQ string. The first matching signature wins, in the
// order homepage, siteSettings, featuresPage, pricingPage, page.
func InferContentType(groq string) models.ContentType {
	switch {
	case strings.Contains(groq, "homepage"):
		return models.ContentTypeHomepage
	case strings.Contains(groq, "siteSettings"):
		return models.ContentTypeSiteSettings
	case strings.Contains(groq, "featuresPage"):
		return models.ContentTypeFeaturesPage
	case strings.Contains(groq, "pricingPage"):
		return models.ContentTypePricingPage
	case strings.Contains(groq, `_type == "page"`), strings.Contains(groq, "slug.current"):
		return models.ContentTypePage
	default:
		return models.ContentTypeUnknown
	}
}

// ExtractSlugFromQuery returns a slug written as a string literal in the query. Parameter
// references such as $slug yield an empty string.
func ExtractSlugFromQuery(groq string) string {
	match := slugLiteralPattern.FindStringSubmatch(groq)
	if match == nil {
		return ""
	}
	if match[1] != "" {
		return match[1]
	}
	return match[2]
}
