// Package prompts holds the enhancement style catalog. Styles are compiled
// into the binary so the server never trusts a client-supplied prompt for a
// style it does not know.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed prompts.json
var promptsFS embed.FS

type Style struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

type Catalog struct {
	styles map[string]Style
}

func NewCatalog() (*Catalog, error) {
	data, err := promptsFS.ReadFile("prompts.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt catalog: %w", err)
	}

	var doc struct {
		Styles []Style `json:"styles"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}
	if len(doc.Styles) == 0 {
		return nil, fmt.Errorf("prompt catalog is empty")
	}

	styles := make(map[string]Style, len(doc.Styles))
	for _, s := range doc.Styles {
		styles[s.ID] = s
	}

	return &Catalog{styles: styles}, nil
}

// Lookup resolves a style id to its preset. The boolean follows the map
// idiom; unknown styles are an expected caller error, not a failure.
func (c *Catalog) Lookup(styleID string) (Style, bool) {
	s, ok := c.styles[styleID]
	return s, ok
}

func (c *Catalog) Styles() []Style {
	out := make([]Style, 0, len(c.styles))
	for _, s := range c.styles {
		out = append(out, s)
	}
	return out
}
