package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepbot/internal/screen"
)

type stubScreen struct {
	title string
	inits int
	next  screen.Screen
	seen  []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	if s.next != nil {
		return s.next, nil
	}
	return s, nil
}

func (s *stubScreen) View(int, int) string { return "view:" + s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestNavigationMessages(t *testing.T) {
	home := &stubScreen{title: "Home"}
	practice := &stubScreen{title: "Practice"}
	progress := &stubScreen{title: "Progress"}

	tests := []struct {
		name      string
		msg       tea.Msg
		wantDepth int
		wantTrail string
	}{
		{"push practice", PushScreenMsg{Screen: practice}, 2, "Home › Practice"},
		{"replace with progress", ReplaceScreenMsg{Screen: progress}, 2, "Home › Progress"},
		{"pop back home", PopScreenMsg{}, 1, "Home"},
		{"pop at bottom is a no-op", PopScreenMsg{}, 1, "Home"},
		{"push nil is ignored", PushScreenMsg{}, 1, "Home"},
		{"practice reopened", PushScreenMsg{Screen: practice}, 2, "Home › Practice"},
	}

	r := New(home)
	for _, tt := range tests {
		r.Update(tt.msg)
		if r.Depth() != tt.wantDepth {
			t.Fatalf("%s: depth = %d, want %d", tt.name, r.Depth(), tt.wantDepth)
		}
		if r.Trail() != tt.wantTrail {
			t.Fatalf("%s: trail = %q, want %q", tt.name, r.Trail(), tt.wantTrail)
		}
	}

	if practice.inits != 2 {
		t.Errorf("practice Init ran %d times, want once per push", practice.inits)
	}
	if progress.inits != 1 {
		t.Errorf("progress Init ran %d times, want 1", progress.inits)
	}
	if len(home.seen) != 0 {
		t.Errorf("navigation messages leaked to the screen: %v", home.seen)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "Home"}
	practice := &stubScreen{title: "Practice"}
	r := New(home)
	r.Push(practice)

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	if len(practice.seen) != 1 || len(home.seen) != 0 {
		t.Errorf("messages: practice %d, home %d", len(practice.seen), len(home.seen))
	}
	if got := r.View(80, 24); got != "view:Practice" {
		t.Errorf("View = %q", got)
	}
}

func TestUpdateAdoptsReturnedScreen(t *testing.T) {
	home := &stubScreen{title: "Home"}
	splash := &stubScreen{title: "", next: home}
	r := New(splash)

	if r.Trail() != "" {
		t.Errorf("untitled screen trail = %q", r.Trail())
	}
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if r.Active() != screen.Screen(home) {
		t.Errorf("active = %q, want Home", r.Active().Title())
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}
