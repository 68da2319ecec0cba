// internal/models/content.go
package models

// WebsiteContent holds the structured fields extracted from a single page.
type WebsiteContent struct {
	URL          string              `json:"url"`
	Domain       string              `json:"domain"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	MetaKeywords []string            `json:"keywords,omitempty"`
	Headings     map[string][]string `json:"headings,omitempty"`
	MainContent  string              `json:"main_content"`
	Links        []string            `json:"links,omitempty"`
}
