package fab

import "strings"

// Template holds example statement fragments for one industry. Templates
// seed the web UI examples and give fallback copy ideas for thin pages.
type Template struct {
	FeatureExamples   []string
	AdvantageExamples []string
	BenefitExamples   []string
}

var templates = map[string]Template{
	"saas": {
		FeatureExamples: []string{
			"Cloud storage",
			"Process automation",
			"API integration",
		},
		AdvantageExamples: []string{
			"Access from anywhere",
			"Saves time",
			"Single ecosystem",
		},
		BenefitExamples: []string{
			"Work from wherever you are",
			"Focus on what matters",
			"All your tools in one place",
		},
	},
	"ecommerce": {
		FeatureExamples: []string{
			"Fast delivery",
			"Wide assortment",
			"Money-back guarantee",
		},
		AdvantageExamples: []string{
			"Delivery in 1-2 days",
			"Choice of 10000+ products",
			"30 days to return",
		},
		BenefitExamples: []string{
			"Get your order tomorrow",
			"Find exactly what you need",
			"Shop without risk",
		},
	},
	"services": {
		FeatureExamples: []string{
			"Team of experts",
			"Individual approach",
			"Guaranteed result",
		},
		AdvantageExamples: []string{
			"Over 10 years of experience",
			"Solutions tailored to your goals",
			"Accountability for the outcome",
		},
		BenefitExamples: []string{
			"Trust the professionals",
			"Get exactly what you need",
			"Reach your goals with confidence",
		},
	},
}

// GetTemplate returns the template for an industry, falling back to the
// services template for unknown industries.
func GetTemplate(industry string) Template {
	if t, ok := templates[strings.ToLower(industry)]; ok {
		return t
	}
	return templates["services"]
}
