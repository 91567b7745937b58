package codeexample

import (
	"log/slog"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Manifest is the published index of code examples.
type Manifest struct {
	Categories []Category `json:"categories"`
}

// Category groups related examples.
type Category struct {
	Examples []Entry `json:"examples"`
}

// Entry is one example. RelativePath is relative to the repository root.
type Entry struct {
	Description  string `json:"description"`
	RelativePath string `json:"relative_path"`
}

// ParseManifest decodes a manifest document. Missing keys decode to empty values.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Flatten maps description to relative path across all categories. Keys are
// ordered by first encounter; a repeated description keeps its position and
// takes the later path.
func (m Manifest) Flatten(log *slog.Logger) *orderedmap.OrderedMap[string, string] {
	if log == nil {
		log = slog.Default()
	}

	out := orderedmap.New[string, string]()
	for _, c := range m.Categories {
		for _, e := range c.Examples {
			if prev, present := out.Set(e.Description, e.RelativePath); present {
				log.Debug("duplicate example description",
					slog.String("description", e.Description),
					slog.String("previous_path", prev),
					slog.String("path", e.RelativePath),
				)
			}
		}
	}
	return out
}

// Descriptions returns the keys of a flattened manifest in order.
func Descriptions(items *orderedmap.OrderedMap[string, string]) []string {
	out := make([]string, 0, items.Len())
	for pair := items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
