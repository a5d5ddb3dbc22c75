package schemas

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/vibetank/vibetank/internal/types"
)

// DecodeDocument parses, coerces and validates a stored or exported site document.
// Absent top-level fields come back nil so callers can adopt fields independently.
func DecodeDocument(raw []byte) (*types.StoredDocument, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	root, ok := generic.(map[string]any)
	if !ok {
		return nil, &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document must be a JSON object"}}}
	}

	if coerceLegacyShapes(root) {
		var err error
		raw, err = json.Marshal(root)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode document: %w", err)
		}
	}

	if err := ValidateSiteDocument(raw); err != nil {
		return nil, err
	}

	var doc types.StoredDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// coerceLegacyShapes normalizes older document shapes before validation:
// null fields inside projects and goals are treated as absent, and project
// outputs stored as a keyed object become a list ordered by key
// (numerically when both keys are integers). Reports whether anything changed.
func coerceLegacyShapes(root map[string]any) bool {
	changed := false

	if goals, ok := root["goals2026"].([]any); ok {
		for _, item := range goals {
			if goal, ok := item.(map[string]any); ok && dropNulls(goal) {
				changed = true
			}
		}
	}

	projects, ok := root["projects"].([]any)
	if !ok {
		return changed
	}

	for _, item := range projects {
		project, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if dropNulls(project) {
			changed = true
		}
		if details, ok := project["details"].(map[string]any); ok && dropNulls(details) {
			changed = true
		}

		keyed, ok := project["outputs"].(map[string]any)
		if !ok {
			continue
		}

		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

		list := make([]any, 0, len(keys))
		for _, k := range keys {
			list = append(list, keyed[k])
		}
		project["outputs"] = list
		changed = true
	}
	return changed
}

// dropNulls deletes keys whose value is JSON null.
func dropNulls(m map[string]any) bool {
	changed := false
	for k, v := range m {
		if v == nil {
			delete(m, k)
			changed = true
		}
	}
	return changed
}

func keyLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
