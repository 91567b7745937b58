package jsonx

import "github.com/goccy/go-json"

// ToDynamicJSON round-trips val through JSON and returns the resulting object.
// It is how reflected schemas are handed to APIs that expect plain maps.
func ToDynamicJSON(val any) (map[string]any, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	result := make(map[string]any)
	if err = json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	return result, nil
}
