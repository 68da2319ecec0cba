// internal/validation/adcopy_test.go
package validation

import (
	"testing"

	"adcraft/internal/common/config"
	"adcraft/internal/models"

	"github.com/stretchr/testify/assert"
)

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		HeadlineMax:    30,
		DescriptionMax: 90,
		PathMax:        15,
	}
}

func TestValidator_ValidateHeadline(t *testing.T) {
	v := New(testLimits())

	tests := []struct {
		name     string
		headline string
		wantErr  bool
	}{
		{
			name:     "within limit",
			headline: "Fast Cloud Hosting",
			wantErr:  false,
		},
		{
			name:     "exactly at limit",
			headline: "123456789012345678901234567890",
			wantErr:  false,
		},
		{
			name:     "one over limit",
			headline: "1234567890123456789012345678901",
			wantErr:  true,
		},
		{
			name:     "multibyte runes counted once",
			headline: "Быстрый хостинг для бизнеса!!!",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateHeadline(tt.headline)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_TruncateHeadline(t *testing.T) {
	v := New(testLimits())

	tests := []struct {
		name     string
		headline string
		expected string
	}{
		{
			name:     "short input unchanged",
			headline: "Fast Cloud Hosting",
			expected: "Fast Cloud Hosting",
		},
		{
			name:     "over limit gets ellipsis",
			headline: "This headline is way too long for the limit",
			expected: "This headline is way too lo...",
		},
		{
			name:     "trailing spaces trimmed before ellipsis",
			headline: "ABCDEFGHIJKLMNOPQRSTUVWXYZ    X",
			expected: "ABCDEFGHIJKLMNOPQRSTUVWXYZ...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.TruncateHeadline(tt.headline)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len([]rune(got)), testLimits().HeadlineMax)
		})
	}
}

func TestValidator_TruncateHeadline_Idempotent(t *testing.T) {
	v := New(testLimits())

	once := v.TruncateHeadline("This headline is way too long for the limit")
	twice := v.TruncateHeadline(once)

	assert.Equal(t, once, twice)
}

func TestValidator_TruncatePath_NoEllipsis(t *testing.T) {
	v := New(testLimits())

	got := v.TruncatePath("special-offers-and-deals")

	assert.Equal(t, "special-offers-", got)
	assert.NotContains(t, got, "...")
}

func TestValidator_TruncateWithEllipsis_TinyLimit(t *testing.T) {
	v := New(config.LimitsConfig{HeadlineMax: 3, DescriptionMax: 90, PathMax: 15})

	// Limits of three or fewer cut plainly, the ellipsis would not fit.
	assert.Equal(t, "abc", v.TruncateHeadline("abcdef"))
}

func TestValidator_ValidatePath(t *testing.T) {
	v := New(testLimits())

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "letters and dashes",
			path:    "special-offers",
			wantErr: false,
		},
		{
			name:    "digits and underscores",
			path:    "promo_2026",
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: false,
		},
		{
			name:    "space rejected",
			path:    "bad path",
			wantErr: true,
		},
		{
			name:    "punctuation rejected",
			path:    "deals!",
			wantErr: true,
		},
		{
			name:    "slash rejected",
			path:    "a/b",
			wantErr: true,
		},
		{
			name:    "over limit",
			path:    "way-too-long-path-segment",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ValidateAd(t *testing.T) {
	v := New(testLimits())

	ad := models.AdVariant{
		ApproachType: "benefit_focused",
		Headlines:    []string{"Good headline", "This headline is way too long for the limit"},
		Descriptions: []string{"Fine description within the configured description limit."},
		Paths:        []string{"deals", "way-too-long-path-segment"},
	}

	errs := v.ValidateAd(ad)

	assert.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "headline")
	assert.Contains(t, errs[1].Error(), "path")
}

func TestValidator_RepairAd(t *testing.T) {
	v := New(testLimits())

	ad := models.AdVariant{
		Headlines:    []string{"Good headline", "This headline is way too long for the limit"},
		Descriptions: []string{"Fine description within the configured description limit."},
		Paths:        []string{"way-too-long-path-segment"},
		Keywords:     []string{"hosting"},
	}

	repaired := v.RepairAd(ad)

	assert.Empty(t, v.ValidateAd(repaired))
	assert.Equal(t, "Good headline", repaired.Headlines[0])
	assert.Equal(t, ad.Keywords, repaired.Keywords)
	// Input must not be mutated.
	assert.Equal(t, "This headline is way too long for the limit", ad.Headlines[1])
}
