package llm

import (
	"context"
	"net/http"
	"testing"
)

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, chatReply("Describe a time you disagreed with a teammate.", "stop"))

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.0-flash-001",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := p.Generate(context.Background(), Prompt("Generate a behavioral question."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Describe a time you disagreed with a teammate." {
		t.Fatalf("content = %q", resp.Content)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if got := srv.headers.Get("X-Title"); got != openRouterTitle {
		t.Errorf("X-Title = %q, want %q", got, openRouterTitle)
	}
	if got := srv.headers.Get("HTTP-Referer"); got != openRouterReferer {
		t.Errorf("HTTP-Referer = %q, want %q", got, openRouterReferer)
	}
	if got := srv.headers.Get("Authorization"); got != "Bearer sk-or-test" {
		t.Errorf("Authorization = %q", got)
	}
	if srv.last.Model != "google/gemini-2.0-flash-001" {
		t.Errorf("model = %q, want vendor-prefixed ID passed through", srv.last.Model)
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "openai/gpt-4o-mini"}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "openai/gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "openai/gpt-4o-mini" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
