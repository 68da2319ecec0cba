// internal/fab/prompts_test.go
package fab

import (
	"strings"
	"testing"

	"adcraft/internal/common/config"
	"adcraft/internal/models"

	"github.com/stretchr/testify/assert"
)

func testAnalysis() *models.Analysis {
	return &models.Analysis{
		ProductName:            "Acme Cloud Hosting",
		TargetAudience:         "small online businesses",
		UniqueValueProposition: "hosting that scales without surprises",
		FABStatements: []models.FABStatement{
			{
				Feature:   "one-click deployment",
				Advantage: "no devops knowledge required",
				Benefit:   "your store is online in minutes",
			},
		},
	}
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt()

	assert.Contains(t, prompt, "FAB method (Features, Advantages, Benefits)")
	assert.Contains(t, prompt, "BAB Method (Reverse FAB)")
	assert.Contains(t, prompt, "People buy on EMOTIONS")
}

func TestAnalysisPrompt(t *testing.T) {
	content := &models.WebsiteContent{
		URL:         "https://acme.example",
		Domain:      "acme.example",
		Title:       "Acme Cloud Hosting",
		Description: "Managed hosting for online stores",
		Headings: map[string][]string{
			"h1": {"Hosting that grows with you"},
		},
		MainContent: "Acme hosts online stores of any size.",
	}

	prompt := AnalysisPrompt(content)

	assert.Contains(t, prompt, "Title: Acme Cloud Hosting")
	assert.Contains(t, prompt, "Description: Managed hosting for online stores")
	assert.Contains(t, prompt, "Domain: acme.example")
	assert.Contains(t, prompt, "Hosting that grows with you")
	assert.Contains(t, prompt, "Acme hosts online stores of any size.")
	assert.Contains(t, prompt, "Keep the original language of the website content")
	assert.Contains(t, prompt, `"fab_statements"`)
}

func TestAnalysisPrompt_EmptyFieldsDefaulted(t *testing.T) {
	prompt := AnalysisPrompt(&models.WebsiteContent{})

	assert.Contains(t, prompt, "Title: Not specified")
	assert.Contains(t, prompt, "Description: Not specified")
	assert.Contains(t, prompt, "Domain: Not specified")
}

func TestAnalysisPrompt_TruncatesLongContent(t *testing.T) {
	content := &models.WebsiteContent{
		Title:       "Acme",
		MainContent: strings.Repeat("a", maxContentChars) + "OVERFLOW",
	}

	prompt := AnalysisPrompt(content)

	assert.NotContains(t, prompt, "OVERFLOW")
	assert.Contains(t, prompt, strings.Repeat("a", maxContentChars))
}

func TestKeywordPrompt(t *testing.T) {
	prompt := KeywordPrompt(testAnalysis())

	assert.Contains(t, prompt, "Name: Acme Cloud Hosting")
	assert.Contains(t, prompt, "Target audience: small online businesses")
	assert.Contains(t, prompt, "your store is online in minutes")
	assert.Contains(t, prompt, "Broad match")
	assert.Contains(t, prompt, "Exact match")
}

func TestAdsPrompt(t *testing.T) {
	limits := config.LimitsConfig{HeadlineMax: 30, DescriptionMax: 90, PathMax: 15}

	prompt := AdsPrompt(testAnalysis(), []string{"cloud hosting", "managed hosting"}, limits, "Mention the free trial")

	assert.Contains(t, prompt, "Headlines: max 30 characters each")
	assert.Contains(t, prompt, "Descriptions: max 90 characters each")
	assert.Contains(t, prompt, "Paths: max 15 characters each")
	assert.Contains(t, prompt, "cloud hosting, managed hosting")
	assert.Contains(t, prompt, "Mention the free trial")
	assert.Contains(t, prompt, "BAB method (Benefit-Advantage-Feature)")
}

func TestAdsPrompt_CapsKeywordList(t *testing.T) {
	limits := config.LimitsConfig{HeadlineMax: 30, DescriptionMax: 90, PathMax: 15}

	keywords := make([]string, 0, maxPromptKeywords+5)
	for i := 0; i < maxPromptKeywords+5; i++ {
		keywords = append(keywords, "kw"+strings.Repeat("x", i+1))
	}

	prompt := AdsPrompt(testAnalysis(), keywords, limits, "")

	assert.Contains(t, prompt, keywords[maxPromptKeywords-1])
	assert.NotContains(t, prompt, keywords[maxPromptKeywords])
}

func TestGetTemplate(t *testing.T) {
	tests := []struct {
		name     string
		industry string
		unique   string
	}{
		{name: "saas", industry: "saas", unique: templates["saas"].FeatureExamples[0]},
		{name: "case insensitive", industry: "SaaS", unique: templates["saas"].FeatureExamples[0]},
		{name: "unknown falls back to services", industry: "aerospace", unique: templates["services"].FeatureExamples[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := GetTemplate(tt.industry)
			assert.Contains(t, tpl.FeatureExamples, tt.unique)
		})
	}
}
