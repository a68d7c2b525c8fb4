package questiongen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/prepbot/internal/llm"
)

func TestGenerate_KnownRolesUseRoleTemplate(t *testing.T) {
	catalog := DefaultCatalog()
	for _, role := range Roles {
		t.Run(role, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.Reply("  Reverse a linked list.\n"))
			gen := New(mock, DefaultConfig())

			q, err := gen.Generate(context.Background(), role, Coding)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Text != "Reverse a linked list." {
				t.Errorf("text not trimmed: %q", q.Text)
			}
			if q.Role != role || q.Type != Coding {
				t.Errorf("unexpected question %+v", q)
			}

			sent := mock.LastPrompt()
			if sent != catalog.Coding[role] {
				t.Errorf("prompt = %q, want role template %q", sent, catalog.Coding[role])
			}
			if sent == strings.ReplaceAll(catalog.Generic, RolePlaceholder, role) {
				t.Errorf("role %q fell back to the generic template", role)
			}
		})
	}
}

func TestGenerate_UnknownRoleUsesGenericTemplate(t *testing.T) {
	mock := llm.NewMockProvider(llm.Reply("Write a goroutine pool."))
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), "Go Backend", Coding); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Generate a unique Go Backend coding interview question for 1-3 years experience. Output only the question."
	if got := mock.LastPrompt(); got != want {
		t.Fatalf("prompt = %q, want %q", got, want)
	}
}

func TestGenerate_RoleLookupIsExact(t *testing.T) {
	mock := llm.NewMockProvider(llm.Reply("q"))
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), "python", Coding); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(mock.LastPrompt(), "Generate a unique python coding interview question for") {
		t.Fatalf("expected generic template for lowercase role, got %q", mock.LastPrompt())
	}
}

func TestGenerate_PlacementTypesIgnoreRole(t *testing.T) {
	catalog := DefaultCatalog()
	tests := []struct {
		qtype QuestionType
		want  string
	}{
		{Technical, catalog.Technical},
		{Behavioral, catalog.Behavioral},
	}
	for _, tt := range tests {
		for _, role := range []string{"Python", "Unknown"} {
			mock := llm.NewMockProvider(llm.Reply("q"))
			if _, err := New(mock, DefaultConfig()).Generate(context.Background(), role, tt.qtype); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mock.LastPrompt() != tt.want {
				t.Errorf("%s/%s prompt = %q", role, tt.qtype, mock.LastPrompt())
			}
		}
	}
}

func TestGenerate_TagsPurposeAndSampling(t *testing.T) {
	mock := llm.NewMockProvider(llm.Reply("q"))
	gen := New(mock, Config{MaxTokens: 200, Temperature: llm.Temp(0.9)})

	if _, err := gen.Generate(context.Background(), "SQL", Coding); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := mock.Calls[0]
	if req.MaxTokens != 200 || req.Temperature == nil || *req.Temperature != 0.9 {
		t.Fatalf("sampling not forwarded: %+v", req)
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.Fail(errors.New("quota exceeded")))
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), "Java", Coding)
	if err == nil {
		t.Fatal("expected error")
	}
	if q != nil {
		t.Fatalf("expected nil question, got %+v", q)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected a single attempt, got %d", mock.CallCount())
	}

	text := SentinelText(err)
	if !strings.HasPrefix(text, "[AI error: ") || !strings.HasSuffix(text, "]") || !strings.Contains(text, "quota exceeded") {
		t.Fatalf("unexpected sentinel %q", text)
	}
}

func TestGenerate_UnknownType(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock, DefaultConfig()).Generate(context.Background(), "Python", "trivia")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("no remote call expected for an invalid type")
	}
}

func TestParseTypeAndLabel(t *testing.T) {
	tests := []struct {
		in    string
		want  QuestionType
		label string
	}{
		{"coding", Coding, "Coding"},
		{" Technical ", Technical, "Technical"},
		{"behavioral/aptitude", Behavioral, "Behavioral/Aptitude"},
		{"aptitude", Behavioral, "Behavioral/Aptitude"},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tt.in, err)
		}
		if got != tt.want || got.Label() != tt.label {
			t.Errorf("ParseType(%q) = %q (%q)", tt.in, got, got.Label())
		}
	}

	if _, err := ParseType("system design"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	err := os.WriteFile(path, []byte(`
coding:
  Go: "Generate a unique Go concurrency question. Output only the question."
  Python: "Ask about Python generators."
generic: "Ask a {role} question."
`), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if p, _ := c.Prompt("Go", Coding); p != "Generate a unique Go concurrency question. Output only the question." {
		t.Errorf("Go prompt = %q", p)
	}
	if p, _ := c.Prompt("Python", Coding); p != "Ask about Python generators." {
		t.Errorf("Python prompt = %q", p)
	}
	if p, _ := c.Prompt("SQL", Coding); p != DefaultCatalog().Coding["SQL"] {
		t.Errorf("SQL prompt should keep its default, got %q", p)
	}
	if p, _ := c.Prompt("Rust", Coding); p != "Ask a Rust question." {
		t.Errorf("generic prompt = %q", p)
	}
	if p, _ := c.Prompt("Rust", Technical); p != DefaultCatalog().Technical {
		t.Errorf("technical prompt should keep its default, got %q", p)
	}
}

func TestLoadCatalog_GenericNeedsPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("generic: \"Ask anything.\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for generic template without placeholder")
	}
}
