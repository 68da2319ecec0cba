// internal/models/keywords.go
package models

import "encoding/json"

// Closed keyword enumerations. Values coming back from a text model are
// coerced to the defaults instead of rejected (lenient parsing policy).
type (
	MatchType        string
	SearchVolume     string
	CommercialIntent string
	KeywordCategory  string
)

const (
	MatchBroad         MatchType = "broad"
	MatchPhrase        MatchType = "phrase"
	MatchExact         MatchType = "exact"
	MatchModifiedBroad MatchType = "modified_broad"

	VolumeHigh   SearchVolume = "high"
	VolumeMedium SearchVolume = "medium"
	VolumeLow    SearchVolume = "low"

	IntentHigh   CommercialIntent = "high"
	IntentMedium CommercialIntent = "medium"
	IntentLow    CommercialIntent = "low"

	CategoryInformational KeywordCategory = "informational"
	CategoryTransactional KeywordCategory = "transactional"
	CategoryNavigational  KeywordCategory = "navigational"
)

// ParseMatchType coerces arbitrary input to a valid match type, defaulting
// to broad.
func ParseMatchType(s string) MatchType {
	switch MatchType(s) {
	case MatchBroad, MatchPhrase, MatchExact, MatchModifiedBroad:
		return MatchType(s)
	}
	return MatchBroad
}

// ParseSearchVolume coerces arbitrary input, defaulting to medium.
func ParseSearchVolume(s string) SearchVolume {
	switch SearchVolume(s) {
	case VolumeHigh, VolumeMedium, VolumeLow:
		return SearchVolume(s)
	}
	return VolumeMedium
}

// ParseCommercialIntent coerces arbitrary input, defaulting to medium.
func ParseCommercialIntent(s string) CommercialIntent {
	switch CommercialIntent(s) {
	case IntentHigh, IntentMedium, IntentLow:
		return CommercialIntent(s)
	}
	return IntentMedium
}

// ParseKeywordCategory coerces arbitrary input, defaulting to transactional.
func ParseKeywordCategory(s string) KeywordCategory {
	switch KeywordCategory(s) {
	case CategoryInformational, CategoryTransactional, CategoryNavigational:
		return KeywordCategory(s)
	}
	return CategoryTransactional
}

// KeywordRecord is one advertising keyword suggestion.
type KeywordRecord struct {
	Keyword          string           `json:"keyword"`
	MatchType        MatchType        `json:"match_type"`
	SearchVolume     SearchVolume     `json:"search_volume"`
	CommercialIntent CommercialIntent `json:"commercial_intent"`
	Category         KeywordCategory  `json:"category"`
}

// UnmarshalJSON applies the lenient coercion policy so that unknown enum
// values from a backend land on the defaults.
func (k *KeywordRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Keyword          string `json:"keyword"`
		MatchType        string `json:"match_type"`
		SearchVolume     string `json:"search_volume"`
		CommercialIntent string `json:"commercial_intent"`
		Category         string `json:"category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	k.Keyword = raw.Keyword
	k.MatchType = ParseMatchType(raw.MatchType)
	k.SearchVolume = ParseSearchVolume(raw.SearchVolume)
	k.CommercialIntent = ParseCommercialIntent(raw.CommercialIntent)
	k.Category = ParseKeywordCategory(raw.Category)
	return nil
}
