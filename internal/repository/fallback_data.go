package repository

import "github.com/noah-isme/spendtrails-site/internal/models"

// Static content served whenever the CMS is not configured or unreachable. Every record mirrors
// the CMS document shape so consumers cannot tell the two sources apart. Records are built per call
// so no caller can mutate what another caller receives.

func fallbackHomepage() models.Homepage {
	return models.Homepage{
		ID:    "fallback-homepage",
		Type:  models.ContentTypeHomepage,
		Title: "Homepage",
		Hero: &models.Hero{
			Headline:      "Take control of your financial future",
			HighlightText: "financial future",
			Subheadline:   "Spendtrails helps you track expenses, set budgets, and make smarter financial decisions with beautiful, intuitive tools.",
			PrimaryCTA:    &models.CTA{Text: "Download Free", URL: "/download", Variant: "default", Size: "lg"},
			SecondaryCTA:  &models.CTA{Text: "Learn More", URL: "/how-it-works", Variant: "outline", Size: "lg"},
		},
		Stats: []models.Stat{
			{Key: "stat-1", Value: 2, Suffix: "M+", Label: "Active Users", AnimationDuration: 2000},
			{Key: "stat-2", Value: 4.8, Label: "App Store Rating", AnimationDuration: 1500},
			{Key: "stat-3", Value: 50, Suffix: "B+", Prefix: "$", Label: "Tracked Annually", AnimationDuration: 2500},
		},
		Features: []models.Feature{
			{Key: "feature-1", IconName: "PiggyBank", Title: "Smart Budgeting", Description: "Set personalized budgets that adapt to your spending patterns and help you save more effectively."},
			{Key: "feature-2", IconName: "CreditCard", Title: "Expense Tracking", Description: "Automatically categorize and track all your expenses across multiple accounts and cards."},
			{Key: "feature-3", IconName: "TrendingUp", Title: "Investment Insights", Description: "Monitor your investment portfolio and get insights to optimize your financial growth."},
			{Key: "feature-4", IconName: "Bell", Title: "Smart Alerts", Description: "Get notified about unusual spending, bill reminders, and budget milestones."},
			{Key: "feature-5", IconName: "BarChart3", Title: "Financial Reports", Description: "Generate detailed reports and visualizations to understand your financial health."},
			{Key: "feature-6", IconName: "Target", Title: "Goal Setting", Description: "Set and track financial goals with personalized recommendations and progress tracking."},
		},
		FeaturesHeadline:    "Everything you need for financial clarity",
		FeaturesSubheadline: "From budgeting to investments, Spendtrails brings all your finances together.",
		Testimonials: []models.Testimonial{
			{Key: "testimonial-1", Quote: "Spendtrails completely changed how I manage my money. I finally understand where every dollar goes.", Author: "Sarah Chen", Role: "Marketing Manager", Company: "TechCorp", Rating: 5},
			{Key: "testimonial-2", Quote: "The budgeting features are incredible. I've saved more in 6 months than I did in the previous 2 years.", Author: "Michael Rodriguez", Role: "Software Engineer", Company: "StartupXYZ", Rating: 5},
			{Key: "testimonial-3", Quote: "Simple, beautiful, and powerful. This app makes financial planning actually enjoyable.", Author: "Emily Johnson", Role: "Freelance Designer", Rating: 5},
			{Key: "testimonial-4", Quote: "The investment tracking feature helped me optimize my portfolio and increase returns by 15%.", Author: "David Park", Role: "Financial Analyst", Company: "InvestCo", Rating: 5},
			{Key: "testimonial-5", Quote: "Finally, a finance app that doesn't overwhelm me with complexity. Perfect for beginners.", Author: "Lisa Thompson", Role: "Teacher", Rating: 5},
		},
		TestimonialsHeadline: "Trusted by millions",
		SecuritySection: models.Section{
			Headline:    "Your security is our priority",
			Subheadline: "We use bank-level encryption and never sell your data. Your financial information stays private.",
		},
		FinalCTA: models.Section{
			Headline:    "Start your journey to financial clarity",
			Subheadline: "Download Spendtrails free and take the first step toward understanding your spending.",
		},
		SEO: &models.SEO{
			Title:       "Spendtrails - Take Control of Your Financial Future",
			Description: "Track expenses, set budgets, and make smarter financial decisions with Spendtrails. Join 2M+ users managing their money better.",
			Keywords:    []string{"expense tracking", "budgeting app", "financial planning", "money management", "personal finance"},
		},
	}
}

func fallbackSiteSettings() models.SiteSettings {
	return models.SiteSettings{
		ID:          "fallback-site-settings",
		Type:        models.ContentTypeSiteSettings,
		Title:       "Spendtrails",
		Description: "Take control of your financial future with smart budgeting and expense tracking.",
		SocialMedia: &models.SocialMedia{
			Twitter:   "https://twitter.com/spendtrails",
			Facebook:  "https://facebook.com/spendtrails",
			LinkedIn:  "https://linkedin.com/company/spendtrails",
			Instagram: "https://instagram.com/spendtrails",
		},
		SEO: &models.SEO{
			Title:       "Spendtrails - Smart Financial Management",
			Description: "Take control of your financial future with smart budgeting and expense tracking.",
			Keywords:    []string{"expense tracking", "budgeting", "financial planning", "money management"},
		},
	}
}

func fallbackFeaturesPage() models.FeaturesPage {
	return models.FeaturesPage{
		ID:    "fallback-features-page",
		Type:  models.ContentTypeFeaturesPage,
		Title: "Features",
		Hero: &models.PageHero{
			Headline:    "Powerful features for complete financial control",
			Subheadline: "Everything you need to track, budget, and optimize your finances in one beautiful app.",
		},
		MainFeatures: []models.Feature{
			{
				Key:         "main-feature-1",
				IconName:    "PiggyBank",
				Title:       "Smart Budgeting",
				Description: "Create personalized budgets that adapt to your spending patterns and lifestyle changes.",
				Benefits: []string{
					"Automatic budget adjustments based on spending patterns",
					"Category-based budget allocation",
					"Real-time budget tracking and alerts",
					"Monthly and yearly budget planning",
				},
			},
			{
				Key:         "main-feature-2",
				IconName:    "CreditCard",
				Title:       "Expense Tracking",
				Description: "Automatically categorize and track expenses across all your accounts and payment methods.",
				Benefits: []string{
					"Automatic transaction categorization",
					"Multi-account synchronization",
					"Receipt scanning and storage",
					"Custom category creation",
				},
			},
			{
				Key:         "main-feature-3",
				IconName:    "TrendingUp",
				Title:       "Investment Monitoring",
				Description: "Track your investment portfolio performance and get insights for better decisions.",
				Benefits: []string{
					"Real-time portfolio tracking",
					"Performance analytics and insights",
					"Asset allocation recommendations",
					"Market trend analysis",
				},
			},
		},
		AdditionalFeatures: []models.Feature{
			{Key: "additional-feature-1", IconName: "Bell", Title: "Smart Notifications", Description: "Get timely alerts about spending limits, bill due dates, and financial opportunities."},
			{Key: "additional-feature-2", IconName: "BarChart3", Title: "Financial Reports", Description: "Generate comprehensive reports with beautiful visualizations of your financial data."},
			{Key: "additional-feature-3", IconName: "Target", Title: "Goal Tracking", Description: "Set and monitor financial goals with progress tracking and achievement milestones."},
			{Key: "additional-feature-4", IconName: "Shield", Title: "Bank-Level Security", Description: "Your data is protected with 256-bit encryption and multi-factor authentication."},
			{Key: "additional-feature-5", IconName: "Smartphone", Title: "Mobile & Web Access", Description: "Access your financial data anywhere with our mobile app and web dashboard."},
			{Key: "additional-feature-6", IconName: "RefreshCw", Title: "Real-Time Sync", Description: "All your data syncs instantly across devices so you're always up to date."},
		},
		SEO: &models.SEO{
			Title:       "Features - Spendtrails Financial Management",
			Description: "Discover all the powerful features that make Spendtrails the best choice for managing your finances.",
			Keywords:    []string{"budgeting features", "expense tracking", "investment monitoring", "financial reports"},
		},
	}
}

func fallbackPricingPage() models.PricingPage {
	return models.PricingPage{
		ID:    "fallback-pricing-page",
		Type:  models.ContentTypePricingPage,
		Title: "Pricing",
		Hero: &models.PageHero{
			Headline:    "Simple, transparent pricing",
			Subheadline: "Choose the plan that works best for your financial goals. All plans include our core features.",
		},
		Plans: []models.PricingPlan{
			{
				Key:         "plan-free",
				Name:        "Free",
				Price:       0,
				Period:      "month",
				Description: "Perfect for getting started with basic financial tracking.",
				Features: []string{
					"Track up to 3 accounts",
					"Basic expense categorization",
					"Monthly budget planning",
					"Mobile app access",
					"Email support",
				},
				CTA: &models.CTA{Text: "Get Started Free", URL: "/download", Variant: "outline"},
			},
			{
				Key:         "plan-pro",
				Name:        "Pro",
				Price:       9.99,
				Period:      "month",
				Description: "Advanced features for serious financial management.",
				Features: []string{
					"Unlimited accounts",
					"Advanced categorization & rules",
					"Investment portfolio tracking",
					"Custom financial reports",
					"Goal setting & tracking",
					"Priority support",
					"Data export",
				},
				CTA:     &models.CTA{Text: "Start Pro Trial", URL: "/download", Variant: "default"},
				Popular: true,
			},
			{
				Key:         "plan-family",
				Name:        "Family",
				Price:       19.99,
				Period:      "month",
				Description: "Comprehensive financial management for families.",
				Features: []string{
					"Everything in Pro",
					"Up to 6 family members",
					"Shared budgets & goals",
					"Family spending insights",
					"Allowance management",
					"Parental controls",
					"Family financial education",
				},
				CTA: &models.CTA{Text: "Start Family Trial", URL: "/download", Variant: "default"},
			},
		},
		FAQs: []models.FAQ{
			{Key: "faq-1", Question: "Can I change my plan at any time?", Answer: "Yes, you can upgrade or downgrade your plan at any time. Changes take effect immediately and we'll prorate any billing adjustments."},
			{Key: "faq-2", Question: "Is my financial data secure?", Answer: "Absolutely. We use bank-level 256-bit encryption and never store your banking credentials. Your data is protected with the same security standards used by major financial institutions."},
			{Key: "faq-3", Question: "Do you offer refunds?", Answer: "We offer a 30-day money-back guarantee for all paid plans. If you're not satisfied, contact our support team for a full refund."},
			{Key: "faq-4", Question: "Can I use Spendtrails offline?", Answer: "Yes, the mobile app works offline for viewing your data and adding manual transactions. Changes sync automatically when you're back online."},
		},
		SEO: &models.SEO{
			Title:       "Pricing - Spendtrails Plans & Features",
			Description: "Choose the perfect Spendtrails plan for your needs. Free plan available with premium features starting at $9.99/month.",
			Keywords:    []string{"spendtrails pricing", "budgeting app cost", "financial planning subscription"},
		},
	}
}

// knownPages maps the slugs served in fallback mode to their titles.
var knownPages = map[string]string{
	"about":        "About Us",
	"privacy":      "Privacy Policy",
	"terms":        "Terms of Service",
	"contact":      "Contact Us",
	"security":     "Security",
	"how-it-works": "How It Works",
}
