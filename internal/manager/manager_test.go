package manager

import (
	"errors"
	"sync"
	"testing"
	"time"

	"clipreg/internal/hotkeys"
	"clipreg/internal/keybind"
	"clipreg/internal/store"
)

// stubFacility is an in-process Facility; tests fire bindings by hand.
type stubFacility struct {
	mu     sync.Mutex
	next   hotkeys.Handle
	live   map[hotkeys.Handle]keybind.Binding
	events chan hotkeys.Handle
}

func newStubFacility() *stubFacility {
	return &stubFacility{
		live:   make(map[hotkeys.Handle]keybind.Binding),
		events: make(chan hotkeys.Handle, 16),
	}
}

func (f *stubFacility) Install(b keybind.Binding) (hotkeys.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.live[f.next] = b
	return f.next, nil
}

func (f *stubFacility) Uninstall(h hotkeys.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, h)
}

func (f *stubFacility) Events() <-chan hotkeys.Handle { return f.events }

// fire simulates the OS delivering a key-down for binding. Returns false if
// the binding has no live OS registration.
func (f *stubFacility) fire(b keybind.Binding) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, installed := range f.live {
		if installed == b {
			f.events <- h
			return true
		}
	}
	return false
}

func (f *stubFacility) installs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// fakeClipboard is an in-memory system clipboard with a change token.
type fakeClipboard struct {
	mu      sync.Mutex
	text    string
	hasText bool
	token   uint64
}

func (c *fakeClipboard) ReadText() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.hasText
}

func (c *fakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.hasText = true
	c.token++
	return nil
}

func (c *fakeClipboard) ChangeToken() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// external simulates a copy performed by another application.
func (c *fakeClipboard) external(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.hasText = true
	c.token++
}

func (c *fakeClipboard) current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

type fixture struct {
	m    *Manager
	st   store.Store
	fac  *stubFacility
	clip *fakeClipboard
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	fac := newStubFacility()
	cb := &fakeClipboard{}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}
	m, err := New(st, fac, cb, cfg)
	if err != nil {
		t.Fatalf("manager.New: %v", err)
	}
	t.Cleanup(func() {
		m.Close()
		st.Close()
	})
	return &fixture{m: m, st: st, fac: fac, clip: cb}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestAddRegister(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.AddRegister("snippets", "cmd+shift+1"); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}

	regs := fx.m.Registers()
	if len(regs) != 1 {
		t.Fatalf("Registers returned %d entries, want 1", len(regs))
	}
	if regs[0].Name != "snippets" || regs[0].Content != "" {
		t.Errorf("unexpected register: %+v", regs[0])
	}
	if fx.fac.installs() != 1 {
		t.Errorf("facility has %d installs, want 1", fx.fac.installs())
	}
}

func TestAddRegisterRejections(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.AddRegister("", ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name = %v, want ErrEmptyName", err)
	}
	if err := fx.m.AddRegister("a", ""); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if err := fx.m.AddRegister("a", ""); !errors.Is(err, store.ErrConflict) {
		t.Errorf("duplicate = %v, want ErrConflict", err)
	}
}

func TestAddRegisterWithoutShortcut(t *testing.T) {
	fx := newFixture(t, Config{})

	// No shortcut and an unparseable shortcut both leave the hotkey map alone.
	if err := fx.m.AddRegister("plain", ""); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if err := fx.m.AddRegister("garbled", "cmd+shift"); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if fx.fac.installs() != 0 {
		t.Errorf("facility has %d installs, want 0", fx.fac.installs())
	}
}

func TestUpdateContentRoundTrip(t *testing.T) {
	fx := newFixture(t, Config{})
	if err := fx.m.AddRegister("r", ""); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}

	for _, content := range []string{"foo", "a+b", ""} {
		if err := fx.m.UpdateContent("r", content); err != nil {
			t.Fatalf("UpdateContent(%q): %v", content, err)
		}
		got, err := fx.st.Read("r")
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if got != content {
			t.Errorf("Read = %q, want %q", got, content)
		}
	}

	if err := fx.m.UpdateContent("ghost", "x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown register = %v, want ErrNotFound", err)
	}
}

func TestHotkeyCopiesRegister(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.AddRegister("snippets", "cmd+shift+1"); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if err := fx.m.UpdateContent("snippets", "foo"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	b, _ := keybind.Parse("cmd+shift+1")
	if !fx.fac.fire(b) {
		t.Fatal("binding not installed")
	}
	waitFor(t, func() bool { return fx.clip.current() == "foo" },
		"clipboard never became \"foo\"")
}

func TestUpdateShortcutRebinds(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.AddRegister("n", "cmd+1"); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if err := fx.m.UpdateContent("n", "payload"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if err := fx.m.UpdateShortcut("n", "ctrl+f5"); err != nil {
		t.Fatalf("UpdateShortcut: %v", err)
	}

	old, _ := keybind.Parse("cmd+1")
	if fx.fac.fire(old) {
		t.Error("old binding still installed after UpdateShortcut")
	}

	nw, _ := keybind.Parse("ctrl+f5")
	if !fx.fac.fire(nw) {
		t.Fatal("new binding not installed")
	}
	waitFor(t, func() bool { return fx.clip.current() == "payload" },
		"new binding never copied the register")
}

func TestUpdateShortcutClear(t *testing.T) {
	fx := newFixture(t, Config{})
	if err := fx.m.AddRegister("n", "cmd+1"); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if err := fx.m.UpdateShortcut("n", ""); err != nil {
		t.Fatalf("UpdateShortcut: %v", err)
	}
	if fx.fac.installs() != 0 {
		t.Errorf("facility has %d installs after clearing, want 0", fx.fac.installs())
	}
	if err := fx.m.UpdateShortcut("ghost", "cmd+2"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown register = %v, want ErrNotFound", err)
	}
}

func TestSharedBindingLastWriterWins(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.AddRegister("x", "ctrl+k"); err != nil {
		t.Fatalf("AddRegister x: %v", err)
	}
	if err := fx.m.AddRegister("y", "ctrl+k"); err != nil {
		t.Fatalf("AddRegister y: %v", err)
	}
	if err := fx.m.UpdateContent("x", "from-x"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if err := fx.m.UpdateContent("y", "from-y"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	b, _ := keybind.Parse("ctrl+k")
	if !fx.fac.fire(b) {
		t.Fatal("binding not installed")
	}
	waitFor(t, func() bool { return fx.clip.current() == "from-y" },
		"binding did not resolve to the last writer")
}

func TestRemoveRegister(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.AddRegister("snippets", "cmd+shift+1"); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if err := fx.m.RemoveRegister("snippets"); err != nil {
		t.Fatalf("RemoveRegister: %v", err)
	}

	b, _ := keybind.Parse("cmd+shift+1")
	if fx.fac.fire(b) {
		t.Error("binding still installed after RemoveRegister")
	}
	if _, err := fx.st.Read("snippets"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Read after remove = %v, want ErrNotFound", err)
	}
	if err := fx.m.RemoveRegister("snippets"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second remove = %v, want ErrNotFound", err)
	}
}

func TestCopyFromRegister(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.AddRegister("r", ""); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}

	// Empty register behaves like a missing one.
	if err := fx.m.CopyFromRegister("r"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("empty register = %v, want ErrNotFound", err)
	}
	if err := fx.m.CopyFromRegister("ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing register = %v, want ErrNotFound", err)
	}

	if err := fx.m.UpdateContent("r", "hello"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if err := fx.m.CopyFromRegister("r"); err != nil {
		t.Fatalf("CopyFromRegister: %v", err)
	}
	if got := fx.clip.current(); got != "hello" {
		t.Errorf("clipboard = %q, want hello", got)
	}
}

func TestCopyToClipboard(t *testing.T) {
	fx := newFixture(t, Config{})

	if err := fx.m.CopyToClipboard("raw text"); err != nil {
		t.Fatalf("CopyToClipboard: %v", err)
	}
	if got := fx.clip.current(); got != "raw text" {
		t.Errorf("clipboard = %q, want %q", got, "raw text")
	}
}

func TestStartupRebuildsBindings(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	if err := st.Create("a", "cmd+1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := st.Create("b", "ctrl+f2"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := st.Create("plain", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	fac := newStubFacility()
	m, err := New(st, fac, &fakeClipboard{}, Config{PollInterval: time.Hour})
	if err != nil {
		t.Fatalf("manager.New: %v", err)
	}
	defer m.Close()

	if fac.installs() != 2 {
		t.Errorf("startup installed %d hotkeys, want 2", fac.installs())
	}
	if st := m.Status(); st.Registers != 3 || st.Bound != 2 {
		t.Errorf("Status = %+v, want 3 registers, 2 bound", st)
	}
}

// flakyStore fails writes on demand to verify store-first semantics.
type flakyStore struct {
	store.Store
	fail bool
}

var errDisk = errors.New("disk full")

func (f *flakyStore) Create(name, shortcut string) error {
	if f.fail {
		return errDisk
	}
	return f.Store.Create(name, shortcut)
}

func (f *flakyStore) UpdateContent(name, content string) error {
	if f.fail {
		return errDisk
	}
	return f.Store.UpdateContent(name, content)
}

func TestStoreFailureLeavesStateUntouched(t *testing.T) {
	inner, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer inner.Close()
	fs := &flakyStore{Store: inner}

	fac := newStubFacility()
	m, err := New(fs, fac, &fakeClipboard{}, Config{PollInterval: time.Hour})
	if err != nil {
		t.Fatalf("manager.New: %v", err)
	}
	defer m.Close()

	if err := m.AddRegister("r", ""); err != nil {
		t.Fatalf("AddRegister: %v", err)
	}
	if err := m.UpdateContent("r", "kept"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	fs.fail = true

	if err := m.AddRegister("new", "cmd+9"); !errors.Is(err, errDisk) {
		t.Fatalf("AddRegister = %v, want store error", err)
	}
	if fac.installs() != 0 {
		t.Errorf("hotkey installed despite store failure")
	}
	if err := m.UpdateContent("r", "lost"); !errors.Is(err, errDisk) {
		t.Fatalf("UpdateContent = %v, want store error", err)
	}

	regs := m.Registers()
	if len(regs) != 1 || regs[0].Content != "kept" {
		t.Errorf("cache changed despite store failure: %+v", regs)
	}
}
