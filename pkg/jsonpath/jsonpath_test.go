package jsonpath

import (
	"errors"
	"reflect"
	"testing"
)

const result = `{
	"label": "homepage",
	"timestamp": "2024-01-02 10:00:00",
	"full_load_time": 1200,
	"total_size": 512.5,
	"requests": null,
	"ps_scores": {"Total Score": 87, "Avoid bad requests": 100},
	"weird.name": 3
}`

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		fields   []string
		expected map[string]any
	}{
		{
			name:   "Selected fields",
			fields: []string{"full_load_time", "total_size"},
			expected: map[string]any{
				"full_load_time": 1200.0,
				"total_size":     512.5,
			},
		},
		{
			name:   "Nested object kept whole",
			fields: []string{"ps_scores"},
			expected: map[string]any{
				"ps_scores": map[string]any{"Total Score": 87.0, "Avoid bad requests": 100.0},
			},
		},
		{
			name:     "Absent fields are dropped, null fields kept",
			fields:   []string{"missing", "requests"},
			expected: map[string]any{"requests": nil},
		},
		{
			name:     "Path syntax in field names is literal",
			fields:   []string{"weird.name"},
			expected: map[string]any{"weird.name": 3.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Project([]byte(result), tt.fields)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Project(%v) = %v, want %v", tt.fields, got, tt.expected)
			}
		})
	}
}

func TestProjectAllFields(t *testing.T) {
	got, err := Project([]byte(result), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 7 {
		t.Errorf("Expected 7 fields, got %d", len(got))
	}
}

func TestProjectErrors(t *testing.T) {
	if _, err := Project([]byte(`{"a":`), nil); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Expected ErrInvalidJSON, got %v", err)
	}
	if _, err := Project([]byte(`[1, 2]`), []string{"a"}); !errors.Is(err, ErrNotObject) {
		t.Errorf("Expected ErrNotObject, got %v", err)
	}
}

func TestGetAndString(t *testing.T) {
	if got := String([]byte(result), "label"); got != "homepage" {
		t.Errorf("String(label) = %q, want %q", got, "homepage")
	}
	if got := String([]byte(result), "full_load_time"); got != "" {
		t.Errorf("String(full_load_time) = %q, want empty", got)
	}

	v, ok := Get([]byte(result), "full_load_time")
	if !ok || v != 1200.0 {
		t.Errorf("Get(full_load_time) = %v, %v", v, ok)
	}
	if _, ok := Get([]byte(result), "nope"); ok {
		t.Errorf("Expected missing field to report false")
	}
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"full_load_time": "full_load_time",
		"weird.name":     `weird\.name`,
		"a*b?":           `a\*b\?`,
	}
	for in, want := range tests {
		if got := Escape(in); got != want {
			t.Errorf("Escape(%q) = %q, want %q", in, got, want)
		}
	}
}
