// Package validation enforces the ad platform character limits on
// generated copy.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"adcraft/internal/common/config"
	"adcraft/internal/models"
)

// Validator checks and repairs ad copy against configured limits.
type Validator struct {
	limits config.LimitsConfig
}

// New builds a Validator from the configured limits.
func New(limits config.LimitsConfig) *Validator {
	return &Validator{limits: limits}
}

// ValidateHeadline reports whether a headline fits the limit.
func (v *Validator) ValidateHeadline(headline string) error {
	return checkLength("headline", headline, v.limits.HeadlineMax)
}

// ValidateDescription reports whether a description fits the limit.
func (v *Validator) ValidateDescription(description string) error {
	return checkLength("description", description, v.limits.DescriptionMax)
}

// ValidatePath reports whether a display path fits the limit and uses
// only letters, digits, dashes and underscores.
func (v *Validator) ValidatePath(path string) error {
	if err := checkLength("path", path, v.limits.PathMax); err != nil {
		return err
	}
	for _, r := range path {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("path contains invalid character %q: %q", r, path)
		}
	}
	return nil
}

func checkLength(field, value string, max int) error {
	if length := len([]rune(value)); length > max {
		return fmt.Errorf("%s is %d characters, limit is %d: %q", field, length, max, value)
	}
	return nil
}

// TruncateHeadline shortens an over-limit headline, marking the cut with
// an ellipsis. Compliant input is returned unchanged, so the operation is
// idempotent.
func (v *Validator) TruncateHeadline(headline string) string {
	return truncateWithEllipsis(headline, v.limits.HeadlineMax)
}

// TruncateDescription shortens an over-limit description.
func (v *Validator) TruncateDescription(description string) string {
	return truncateWithEllipsis(description, v.limits.DescriptionMax)
}

// TruncatePath shortens an over-limit display path. Paths get no ellipsis
// since punctuation is not allowed there.
func (v *Validator) TruncatePath(path string) string {
	runes := []rune(path)
	if len(runes) <= v.limits.PathMax {
		return path
	}
	return string(runes[:v.limits.PathMax])
}

func truncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return strings.TrimRight(string(runes[:max-3]), " ") + "..."
}

// ValidateAd reports every limit violation within one ad variant.
func (v *Validator) ValidateAd(ad models.AdVariant) []error {
	var errs []error
	for _, h := range ad.Headlines {
		if err := v.ValidateHeadline(h); err != nil {
			errs = append(errs, err)
		}
	}
	for _, d := range ad.Descriptions {
		if err := v.ValidateDescription(d); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range ad.Paths {
		if err := v.ValidatePath(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// RepairAd returns a copy of the ad with every over-limit field truncated.
func (v *Validator) RepairAd(ad models.AdVariant) models.AdVariant {
	repaired := ad

	repaired.Headlines = make([]string, len(ad.Headlines))
	for i, h := range ad.Headlines {
		repaired.Headlines[i] = v.TruncateHeadline(h)
	}

	repaired.Descriptions = make([]string, len(ad.Descriptions))
	for i, d := range ad.Descriptions {
		repaired.Descriptions[i] = v.TruncateDescription(d)
	}

	repaired.Paths = make([]string, len(ad.Paths))
	for i, p := range ad.Paths {
		repaired.Paths[i] = v.TruncatePath(p)
	}

	return repaired
}
