package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/kbukum/reactive/errors"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestHydratesFromInitialWhenAbsent(t *testing.T) {
	store := newTestStore(t)

	c, err := NewCell(store, "theme", "dark")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Read(); got != "dark" {
		t.Errorf("Read() = %q, want %q", got, "dark")
	}
}

func TestWriteMirrorsAndHydrates(t *testing.T) {
	store := newTestStore(t)

	c, err := NewCell(store, "count", 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Write(42); err != nil {
		t.Fatal(err)
	}

	// A fresh cell over the same key sees the mirrored value.
	again, err := NewCell(store, "count", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Read(); got != 42 {
		t.Errorf("rehydrated Read() = %d, want 42", got)
	}
}

func TestWriteNotifiesObservers(t *testing.T) {
	store := newTestStore(t)

	c, err := NewCell(store, "query", "")
	if err != nil {
		t.Fatal(err)
	}

	var seen []string
	if _, err := c.Subscribe(func(v string) { seen = append(seen, v) }); err != nil {
		t.Fatal(err)
	}

	c.Write("a")
	c.Write("ab")

	if len(seen) != 2 || seen[1] != "ab" {
		t.Errorf("seen = %v, want [a ab]", seen)
	}
}

func TestCorruptPayloadFallsBackToInitial(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "limit.json"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewCell(store, "limit", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Read(); got != 10 {
		t.Errorf("Read() = %d, want fallback 10", got)
	}
}

func TestStructValuesRoundTrip(t *testing.T) {
	type prefs struct {
		Theme string `json:"theme"`
		Size  int    `json:"size"`
	}
	store := newTestStore(t)

	c, err := NewCell(store, "prefs", prefs{Theme: "light", Size: 12})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Write(prefs{Theme: "dark", Size: 14}); err != nil {
		t.Fatal(err)
	}

	again, err := NewCell(store, "prefs", prefs{})
	if err != nil {
		t.Fatal(err)
	}
	got := again.Read()
	if got.Theme != "dark" || got.Size != 14 {
		t.Errorf("rehydrated = %+v, want {dark 14}", got)
	}
}

func TestClearRemovesStoredKey(t *testing.T) {
	store := newTestStore(t)

	c, err := NewCell(store, "session", "abc")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Write("xyz"); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}

	again, err := NewCell(store, "session", "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Read(); got != "fresh" {
		t.Errorf("Read() = %q after clear, want %q", got, "fresh")
	}
}

// failingStore simulates a broken persistence backend.
type failingStore struct {
	loadErr error
	saveErr error
}

func (s *failingStore) Load(string) ([]byte, bool, error) { return nil, false, s.loadErr }
func (s *failingStore) Save(string, []byte) error         { return s.saveErr }
func (s *failingStore) Delete(string) error               { return nil }

func TestLoadFailureSurfacesStorageError(t *testing.T) {
	store := &failingStore{loadErr: errors.New("disk gone")}

	_, err := NewCell(store, "k", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeStorage) {
		t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeStorage)
	}
}

func TestSaveFailureLeavesValueUntouched(t *testing.T) {
	store := &failingStore{saveErr: errors.New("read-only fs")}

	c, err := NewCell(store, "k", 1)
	if err != nil {
		t.Fatal(err)
	}

	notified := false
	c.Subscribe(func(int) { notified = true })

	if err := c.Write(2); err == nil {
		t.Fatal("expected storage error")
	}
	if got := c.Read(); got != 1 {
		t.Errorf("Read() = %d after failed write, want 1", got)
	}
	if notified {
		t.Error("observers notified despite failed write")
	}
}

func TestFileStoreKeyEscaping(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("path/with/slashes", []byte(`"v"`)); err != nil {
		t.Fatal(err)
	}
	data, found, err := store.Load("path/with/slashes")
	if err != nil || !found {
		t.Fatalf("Load failed: found=%v err=%v", found, err)
	}
	if string(data) != `"v"` {
		t.Errorf("data = %s, want \"v\"", data)
	}
}
