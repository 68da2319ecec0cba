// Package fab builds the methodology prompts that drive content analysis,
// keyword generation and ad copy generation.
package fab

import (
	"encoding/json"
	"fmt"
	"strings"

	"adcraft/internal/common/config"
	"adcraft/internal/models"
)

// maxContentChars caps how much page body text is embedded into the
// analysis prompt.
const maxContentChars = 2000

// maxPromptKeywords caps how many keywords are listed in the ads prompt.
const maxPromptKeywords = 10

// SystemPrompt returns the methodology description used as the system
// prompt for website analysis.
func SystemPrompt() string {
	return `
The FAB method (Features, Advantages, Benefits) is a key sales and marketing tool.

**Important principles:**
- People buy NOT features or advantages, they buy the FINAL BENEFIT
- People buy on EMOTIONS, then justify with logic

**FAB Components:**

1. **FEATURE:**
   - This is a special property, aspect, or specification of your product/service
   - "What you're selling" or "bare facts"
   - Often technical in nature
   - Examples: "5-module online course", "High-speed printer", "24-megapixel camera"

2. **ADVANTAGE:**
   - Positive effect or result brought by the feature
   - Explains why the product is convenient and needed
   - Bridge between feature and benefit
   - Examples: "High print speed ensures more printing volume per day", "24 megapixels mean clearer images"

3. **BENEFIT:**
   - Personal advantages, improvements, or values for the customer
   - "What benefit will your customer get"
   - Answers the question: how does this help the customer, what can it do for them
   - Speaks about what customers really want
   - Solves their problems, brings joy, convenience, or relief
   - Examples: "Less waiting time, increased productivity", "Your child will be safe", "You drink delicious coffee"

**BAB Method (Reverse FAB):**
Start with BENEFIT to emotionally attract the customer, then support with advantages and features.

Example: "Don't miss any moment of your life when there's no light (Benefit). Lens lets in more light (Advantage). F 1.2 aperture (Feature)."

**Writing rules:**
- Use simple and clear language
- Avoid overly general or complex phrases
- Focus on unique value
- Consider target audience needs
`
}

// AnalysisPrompt builds the user prompt asking the model to break the
// fetched page down into FAB statements. Body text beyond maxContentChars
// is dropped to keep the prompt bounded.
func AnalysisPrompt(content *models.WebsiteContent) string {
	body := content.MainContent
	if len(body) > maxContentChars {
		body = body[:maxContentChars]
	}

	headings, _ := json.Marshal(content.Headings)

	return fmt.Sprintf(`
Analyze the following website content and apply the FAB methodology.

**Website data:**
Title: %s
Description: %s
Domain: %s

**Headings:**
%s

**Main content:**
%s

**Task:**
1. Identify the main product or service being offered
2. Extract or determine at least 3-5 FAB statements
3. For each statement determine:
   - Feature - what is specifically offered
   - Advantage - why this is good
   - Benefit - what value the customer will get

4. Formulate each statement in BAB format (starting with benefit)

IMPORTANT: Keep the original language of the website content. If the website is in Ukrainian, respond in Ukrainian. If in English, respond in English. If in Russian, respond in Russian. Only the analysis structure should be consistent.

Return result in JSON format:
{
    "product_name": "product/service name",
    "target_audience": "target audience description",
    "fab_statements": [
        {
            "feature": "feature",
            "advantage": "advantage",
            "benefit": "benefit",
            "bab_format": "benefit. advantage. feature."
        }
    ],
    "unique_value_proposition": "brief unique value proposition"
}
`, orDefault(content.Title), orDefault(content.Description), orDefault(content.Domain), string(headings), body)
}

// KeywordPrompt builds the user prompt for search keyword generation from
// a completed analysis.
func KeywordPrompt(analysis *models.Analysis) string {
	statements, _ := json.Marshal(analysis.FABStatements)

	return fmt.Sprintf(`
Based on the FAB analysis of the product/service, generate keywords for Google Ads.

**Product data:**
Name: %s
Target audience: %s
Unique value proposition: %s

**FAB statements:**
%s

**Requirements:**
1. Create keywords for 4 match types:
   - Broad match
   - Phrase match
   - Exact match
   - Modified broad match

2. Include:
   - Informational queries (how, what, why)
   - Transactional queries (buy, order, price)
   - Brand queries
   - Competitor queries (if applicable)
   - Long-tail keywords

3. For each keyword specify:
   - Match type
   - Approximate search volume (high/medium/low)
   - Commercial intent (high/medium/low)

IMPORTANT: Generate keywords in the same language as the website content. If the website is in Ukrainian, generate Ukrainian keywords. If in English, generate English keywords. If in Russian, generate Russian keywords.

Return result in JSON format:
{
    "keywords": [
        {
            "keyword": "keyword",
            "match_type": "broad|phrase|exact|modified_broad",
            "search_volume": "high|medium|low",
            "commercial_intent": "high|medium|low",
            "category": "informational|transactional|navigational"
        }
    ]
}
`, analysis.ProductName, analysis.TargetAudience, analysis.UniqueValueProposition, string(statements))
}

// KeywordSystemPrompt frames the model as a search advertising specialist.
func KeywordSystemPrompt() string {
	return `
You are an expert in SEO and Google Ads contextual advertising.
Your task is to generate high-quality keywords for advertising campaigns.
Consider commercial intent, relevance, and search volume.

IMPORTANT: Generate keywords in the same language as the website content. If the website is in Ukrainian, generate Ukrainian keywords. If in English, generate English keywords. If in Russian, generate Russian keywords.

Return result in JSON format:
{
    "keywords": [
        {
            "keyword": "keyword",
            "match_type": "broad|phrase|exact|modified_broad",
            "search_volume": "high|medium|low",
            "commercial_intent": "high|medium|low",
            "category": "informational|transactional|navigational"
        }
    ]
}
`
}

// AdsPrompt builds the user prompt for ad copy generation. Only the first
// maxPromptKeywords keywords are listed.
func AdsPrompt(analysis *models.Analysis, keywords []string, limits config.LimitsConfig, additionalRequirements string) string {
	statements, _ := json.MarshalIndent(analysis.FABStatements, "", "  ")

	if len(keywords) > maxPromptKeywords {
		keywords = keywords[:maxPromptKeywords]
	}

	return fmt.Sprintf(`
Create Google Ads based on FAB analysis and keywords.

**Product data:**
Name: %s
Target audience: %s
Unique value proposition: %s

**FAB statements:**
%s

**Keywords:**
%s

**Google Ads technical requirements:**
- Headlines: max %d characters each
- Descriptions: max %d characters each
- Paths: max %d characters each

**Content requirements:**
1. Use BAB method (Benefit-Advantage-Feature) - start with benefit
2. Include emotional trigger
3. Add call-to-action (CTA)
4. Use unique value proposition
5. Consider target audience

Create at least 5-7 ad variations with different approaches:
- Emotional
- Rational
- With offer/promotion
- With social proof
- Problem-solving

For each ad create:
- 3-5 headline variations
- 2-3 description variations
- 2 path variations
- List of suitable keywords from the provided list

%s

IMPORTANT: Generate ads in the same language as the website content. If the website is in Ukrainian, generate Ukrainian ads. If in English, generate English ads. If in Russian, generate Russian ads.

Return result in JSON format:
{
    "ads": [
        {
            "type": "approach_type",
            "headlines": ["headline1", "headline2", ...],
            "descriptions": ["description1", "description2"],
            "paths": ["path1", "path2"],
            "keywords": ["keyword1", ...],
            "notes": "approach notes"
        }
    ]
}
`, analysis.ProductName, analysis.TargetAudience, analysis.UniqueValueProposition,
		string(statements), strings.Join(keywords, ", "),
		limits.HeadlineMax, limits.DescriptionMax, limits.PathMax,
		additionalRequirements)
}

// AdsSystemPrompt frames the model as a senior ad copywriter.
func AdsSystemPrompt() string {
	return `
You are an expert in creating Google Ads with over 10 years of experience.
You know all technical limitations and best practices.
Your ads always convert and attract target audience.
You are a copywriting master and know buyer psychology.

IMPORTANT: Generate ads in the same language as the website content. If the website is in Ukrainian, generate Ukrainian ads. If in English, generate English ads. If in Russian, generate Russian ads.

Return result in JSON format.
`
}

func orDefault(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
