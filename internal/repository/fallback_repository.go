package repository

import (
	"fmt"
	"strings"

	"github.com/noah-isme/spendtrails-site/internal/models"
)

// FallbackRepository serves the statically authored content records. Every accessor is total;
// only GetPage may return nil, for slugs outside the known set.
type FallbackRepository struct{}

// NewFallbackRepository constructs the fallback content store.
func NewFallbackRepository() *FallbackRepository {
	return &FallbackRepository{}
}

// GetHomepage returns the fallback homepage.
func (r *FallbackRepository) GetHomepage() *models.Homepage {
	doc := fallbackHomepage()
	return &doc
}

// GetSiteSettings returns the fallback site settings.
func (r *FallbackRepository) GetSiteSettings() *models.SiteSettings {
	doc := fallbackSiteSettings()
	return &doc
}

// GetFeaturesPage returns the fallback features page.
func (r *FallbackRepository) GetFeaturesPage() *models.FeaturesPage {
	doc := fallbackFeaturesPage()
	return &doc
}

// GetPricingPage returns the fallback pricing page.
func (r *FallbackRepository) GetPricingPage() *models.PricingPage {
	doc := fallbackPricingPage()
	return &doc
}

// GetPage synthesises a generic page for a known slug and returns nil otherwise.
func (r *FallbackRepository) GetPage(slug string) *models.Page {
	title, ok := knownPages[slug]
	if !ok {
		return nil
	}
	return &models.Page{
		ID:    "fallback-page-" + slug,
		Type:  models.ContentTypePage,
		Title: title,
		Slug:  models.Slug{Current: slug},
		SEO: &models.SEO{
			Title:       title + " - Spendtrails",
			Description: fmt.Sprintf("Learn more about %s at Spendtrails.", strings.ToLower(title)),
			Keywords:    []string{strings.ToLower(title), "spendtrails"},
		},
	}
}

// KnownSlugs lists the slugs GetPage resolves.
func (r *FallbackRepository) KnownSlugs() []string {
	slugs := make([]string, 0, len(knownPages))
	for slug := range knownPages {
		slugs = append(slugs, slug)
	}
	return slugs
}

// Lookup dispatches to the accessor for the content type. Unknown types yield an empty list,
// and an unknown page slug yields a nil document.
func (r *FallbackRepository) Lookup(contentType models.ContentType, slug string) interface{} {
	switch contentType {
	case models.ContentTypeHomepage:
		return r.GetHomepage()
	case models.ContentTypeSiteSettings:
		return r.GetSiteSettings()
	case models.ContentTypeFeaturesPage:
		return r.GetFeaturesPage()
	case models.ContentTypePricingPage:
		return r.GetPricingPage()
	case models.ContentTypePage:
		if page := r.GetPage(slug); page != nil {
			return page
		}
		return nil
	default:
		return []interface{}{}
	}
}
