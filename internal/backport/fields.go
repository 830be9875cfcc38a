package backport

import (
	"context"
	"fmt"
	"strings"
)

// customFieldPrefix is how the tracker names custom field identifiers in
// its field schema.
const customFieldPrefix = "customfield_"

// customFieldIDs builds the display-name-to-id map for custom fields,
// lazily, once per Cloner. Only schema entries whose id carries the custom
// field prefix are retained; everything else is a built-in field.
func (c *Cloner) customFieldIDs(ctx context.Context) (map[string]string, error) {
	if c.fieldIDs != nil {
		return c.fieldIDs, nil
	}
	fields, err := c.client.Fields(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string)
	for _, f := range fields {
		if strings.HasPrefix(f.ID, customFieldPrefix) {
			m[f.Name] = f.ID
		}
	}
	c.fieldIDs = m
	return m, nil
}

// CustomFieldID resolves a custom field's display name to its tracker
// internal identifier. Names absent from the schema resolve to ok=false,
// never to an error.
func (c *Cloner) CustomFieldID(ctx context.Context, displayName string) (string, bool, error) {
	ids, err := c.customFieldIDs(ctx)
	if err != nil {
		return "", false, fmt.Errorf("resolve custom field %q: %w", displayName, err)
	}
	id, ok := ids[displayName]
	return id, ok, nil
}

// copyFieldValue normalizes a custom field value read from one issue for
// writing onto another. The tracker returns option-style fields (single
// select and friends) as objects with a value member plus bookkeeping, but
// expects a bare {value: ...} on write. Scalars and lists pass through
// unchanged.
func copyFieldValue(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		if inner, ok := v["value"]; ok {
			return map[string]any{"value": inner}
		}
		return v
	default:
		return v
	}
}
