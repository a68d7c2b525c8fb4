package llm

import (
	"errors"
	"testing"
)

func feedbackSchema() *Schema {
	return &Schema{
		Name: "test-feedback",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score":       map[string]any{"type": "number"},
				"feedback":    map[string]any{"type": "string"},
				"improvement": map[string]any{"type": "string"},
				"level":       map[string]any{"type": "string", "enum": []any{"junior", "senior"}},
			},
			"required": []any{"score", "feedback", "improvement"},
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"score":85,"feedback":"Good.","improvement":"More depth."}`, false},
		{"extra optional field", `{"score":85,"feedback":"","improvement":"","level":"junior"}`, false},
		{"fractional score", `{"score":72.5,"feedback":"ok","improvement":"ok"}`, false},
		{"missing required", `{"score":85,"feedback":"Good."}`, true},
		{"wrong type", `{"score":"85","feedback":"Good.","improvement":"x"}`, true},
		{"bad enum", `{"score":1,"feedback":"a","improvement":"b","level":"staff"}`, true},
		{"malformed", `{"score":`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(feedbackSchema(), []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
			if inv.Content != tt.raw {
				t.Fatalf("Content = %q, want %q", inv.Content, tt.raw)
			}
		})
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, []byte("not json")); err != nil {
		t.Fatalf("expected nil error without schema, got %v", err)
	}
}
