package backport

import (
	"reflect"
	"testing"
)

func TestCopyFieldValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{
			"option object keeps only value",
			map[string]any{"value": "X", "other": "Y", "self": "http://..."},
			map[string]any{"value": "X"},
		},
		{
			"object without value passes through",
			map[string]any{"name": "X"},
			map[string]any{"name": "X"},
		},
		{"string", "plain text", "plain text"},
		{"number", float64(7), float64(7)},
		{"bool", true, true},
		{"list", []any{"a", "b"}, []any{"a", "b"}},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := copyFieldValue(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("copyFieldValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
