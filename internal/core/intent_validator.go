package core

import (
	"fmt"

	"kustomate/internal/cli/output"
	"kustomate/internal/core/domain"
)

// requiredIntentFields must be present and not "unknown" for an intent to be
// usable. The parser backfills missing fields with the unknown sentinel, so
// both absence and the sentinel mean the same thing here.
var requiredIntentFields = []string{"action", "resource_type", "target_field"}

// ValidateIntent reports whether an intent carries every required field.
// Invalid intents are dropped by the caller; validation never fails a batch.
func ValidateIntent(intent domain.Intent) bool {
	values := map[string]string{
		"action":        intent.Action,
		"resource_type": intent.ResourceType,
		"target_field":  intent.TargetField,
	}

	for _, field := range requiredIntentFields {
		if values[field] == "" || values[field] == domain.UnknownField {
			output.PrintWarning(fmt.Sprintf("invalid intent: missing %s (%s)", field, intent))
			return false
		}
	}

	return true
}
