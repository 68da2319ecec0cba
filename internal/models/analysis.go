// internal/models/analysis.go
package models

import "fmt"

// FABStatement is one feature/advantage/benefit claim extracted from a page.
type FABStatement struct {
	Feature   string `json:"feature"`
	Advantage string `json:"advantage"`
	Benefit   string `json:"benefit"`
	BABFormat string `json:"bab_format,omitempty"`
}

// BAB returns the statement reordered benefit-first for emotional emphasis.
// The model usually supplies bab_format itself; this is the deterministic
// fallback when it does not.
func (s FABStatement) BAB() string {
	if s.BABFormat != "" {
		return s.BABFormat
	}
	return fmt.Sprintf("%s. %s. %s.", s.Benefit, s.Advantage, s.Feature)
}

// Analysis is the FAB breakdown of a website produced by the generation
// adapter. FABStatements is never empty on a successful analysis.
type Analysis struct {
	ProductName            string         `json:"product_name"`
	TargetAudience         string         `json:"target_audience"`
	UniqueValueProposition string         `json:"unique_value_proposition"`
	FABStatements          []FABStatement `json:"fab_statements"`
}
