// internal/models/ads.go
package models

// AdVariant is one generated ad approach with its copy variations.
// Lengths are validated, never silently truncated; see internal/validation.
type AdVariant struct {
	ApproachType string   `json:"type"`
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
	Paths        []string `json:"paths"`
	Keywords     []string `json:"keywords"`
	Notes        string   `json:"notes"`
}

// Report bundles the output of one full pipeline run.
type Report struct {
	Website    *WebsiteContent `json:"website"`
	Analysis   *Analysis       `json:"analysis"`
	Keywords   []KeywordRecord `json:"keywords"`
	Ads        []AdVariant     `json:"ads,omitempty"`
	OutputPath string          `json:"output_path,omitempty"`
}
