package ai

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// analysisSchema describes the shape the analysis reply must take before
// it is trusted.
var analysisSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"product_name", "fab_statements"},
	"properties": map[string]interface{}{
		"product_name":             map[string]interface{}{"type": "string"},
		"target_audience":          map[string]interface{}{"type": "string"},
		"unique_value_proposition": map[string]interface{}{"type": "string"},
		"fab_statements": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"feature", "advantage", "benefit"},
				"properties": map[string]interface{}{
					"feature":    map[string]interface{}{"type": "string"},
					"advantage":  map[string]interface{}{"type": "string"},
					"benefit":    map[string]interface{}{"type": "string"},
					"bab_format": map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

// keywordsSchema describes the keyword reply envelope. The attribute
// values are left open here; the model layer coerces unknown strings onto
// documented defaults.
var keywordsSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"keywords"},
	"properties": map[string]interface{}{
		"keywords": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"keyword"},
				"properties": map[string]interface{}{
					"keyword":           map[string]interface{}{"type": "string"},
					"match_type":        map[string]interface{}{"type": "string"},
					"search_volume":     map[string]interface{}{"type": "string"},
					"commercial_intent": map[string]interface{}{"type": "string"},
					"category":          map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

// adsSchema describes the ad generation reply envelope.
var adsSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"ads"},
	"properties": map[string]interface{}{
		"ads": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"headlines", "descriptions"},
				"properties": map[string]interface{}{
					"type":         map[string]interface{}{"type": "string"},
					"headlines":    map[string]interface{}{"type": "array"},
					"descriptions": map[string]interface{}{"type": "array"},
					"paths":        map[string]interface{}{"type": "array"},
					"keywords":     map[string]interface{}{"type": "array"},
					"notes":        map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

func validateDocument(schemaMap map[string]interface{}, document []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("document validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
