package jsonschema

import (
	"errors"
	"strings"
	"testing"
)

const resultSchema = `{
	"type": "object",
	"properties": {
		"label": { "type": "string", "minLength": 1 },
		"timestamp": { "type": "string" },
		"full_load_time": { "type": "number" }
	},
	"required": ["label", "timestamp"]
}`

func TestValidator(t *testing.T) {
	v, err := Compile("result.json", resultSchema)
	if err != nil {
		t.Fatalf("Expected schema to compile, got %v", err)
	}

	tests := []struct {
		name        string
		json        string
		expectValid bool
		contains    []string
	}{
		{
			name:        "Valid document",
			json:        `{"label": "homepage", "timestamp": "2024-01-02 10:00:00", "full_load_time": 1200}`,
			expectValid: true,
		},
		{
			name:        "Missing timestamp",
			json:        `{"label": "homepage"}`,
			expectValid: false,
			contains:    []string{"timestamp"},
		},
		{
			name:        "Several problems are all reported",
			json:        `{"label": "", "timestamp": 5, "full_load_time": "slow"}`,
			expectValid: false,
			contains:    []string{"/label", "/timestamp", "/full_load_time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]byte(tt.json))
			if tt.expectValid {
				if err != nil {
					t.Errorf("Expected valid document, got %v", err)
				}
				return
			}

			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Expected ValidationErrors, got %T: %v", err, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(errs.Error(), want) {
					t.Errorf("Expected errors to mention %q, got %q", want, errs.Error())
				}
			}
		})
	}
}

func TestValidatorInvalidJSON(t *testing.T) {
	v := MustCompile("result.json", resultSchema)

	err := v.Validate([]byte(`{"label":`))
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("Expected invalid JSON error, got %v", err)
	}
}

func TestCompileInvalidSchema(t *testing.T) {
	if _, err := Compile("bad.json", `{"type": 12}`); err == nil {
		t.Errorf("Expected error for invalid schema")
	}
	if _, err := Compile("bad.json", `{not json`); err == nil {
		t.Errorf("Expected error for malformed schema")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(`{"label": "a", "timestamp": "b"}`, resultSchema); err != nil {
		t.Errorf("Expected valid, got %v", err)
	}
	if err := Validate(`{"label": "a"}`, resultSchema); err == nil {
		t.Errorf("Expected error for missing timestamp")
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{errors.New("first"), errors.New("second")}
	if got := errs.Error(); got != "first; second" {
		t.Errorf("Error() = %q", got)
	}
	if got := (ValidationErrors{}).Error(); got != "" {
		t.Errorf("Expected empty message, got %q", got)
	}
}
