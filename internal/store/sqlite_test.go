package store

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndList(t *testing.T) {
	s := openTestStore(t)

	if err := s.Create("snippets", "cmd+shift+1"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	regs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("List returned %d registers, want 1", len(regs))
	}
	got := regs[0]
	if got.Name != "snippets" || got.Content != "" || got.Shortcut != "cmd+shift+1" {
		t.Errorf("unexpected register: %+v", got)
	}
}

func TestCreateConflict(t *testing.T) {
	s := openTestStore(t)

	if err := s.Create("a", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create("a", "ctrl+x"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate Create = %v, want ErrConflict", err)
	}
}

func TestContentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	if err := s.Create("r", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Includes the empty string and content containing the shortcut separator.
	for _, content := range []string{"foo", "", "a+b+c", "line1\nline2", "héllo 🙂"} {
		if err := s.UpdateContent("r", content); err != nil {
			t.Fatalf("UpdateContent(%q): %v", content, err)
		}
		got, err := s.Read("r")
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if got != content {
			t.Errorf("Read = %q, want %q", got, content)
		}
	}
}

func TestUpdateShortcut(t *testing.T) {
	s := openTestStore(t)
	if err := s.Create("r", "cmd+1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.UpdateShortcut("r", "ctrl+f5"); err != nil {
		t.Fatalf("UpdateShortcut: %v", err)
	}
	regs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if regs[0].Shortcut != "ctrl+f5" {
		t.Errorf("shortcut = %q, want %q", regs[0].Shortcut, "ctrl+f5")
	}
}

func TestNotFound(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Read("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read = %v, want ErrNotFound", err)
	}
	if err := s.UpdateContent("ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateContent = %v, want ErrNotFound", err)
	}
	if err := s.UpdateShortcut("ghost", "cmd+1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateShortcut = %v, want ErrNotFound", err)
	}
	if err := s.Delete("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	if err := s.Create("r", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete("r"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("r"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read after Delete = %v, want ErrNotFound", err)
	}
	regs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(regs) != 0 {
		t.Errorf("List after Delete returned %d registers", len(regs))
	}
}
