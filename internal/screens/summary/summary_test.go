package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepbot/internal/questiongen"
	"github.com/abhisek/prepbot/internal/router"
	"github.com/abhisek/prepbot/internal/session"
)

func testLedger() *session.Ledger {
	l := session.NewLedger()
	l.Append(questiongen.Coding, 80)
	l.Append(questiongen.Technical, 40)
	l.Append(questiongen.Coding, 60)
	return l
}

func TestViewShowsAverages(t *testing.T) {
	s := New(testLedger())
	view := s.View(100, 40)

	if !strings.Contains(view, "Answered: 3") {
		t.Error("view should show the attempt count")
	}
	if !strings.Contains(view, "Overall average: 60.0") {
		t.Error("view should show the overall average")
	}
	if !strings.Contains(view, "Technical | Score: 40") {
		t.Error("view should list attempts")
	}
}

func TestViewEmptyLedger(t *testing.T) {
	s := New(session.NewLedger())
	if !strings.Contains(s.View(100, 40), "No attempts yet") {
		t.Error("empty ledger should show the hint")
	}
}

func TestEscPops(t *testing.T) {
	s := New(testLedger())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestScrollIsBounded(t *testing.T) {
	s := New(testLedger())
	for i := 0; i < 10; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.offset != 2 {
		t.Errorf("offset = %d, want 2", s.offset)
	}
	for i := 0; i < 10; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
}
