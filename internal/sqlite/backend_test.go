package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	b, dir := attachTemp(t)

	if _, err := os.Stat(filepath.Join(dir, DatabaseFile)); os.IsNotExist(err) {
		t.Errorf("%s not created", DatabaseFile)
	}

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	if err := b.Attach(types.Config{DataDir: t.TempDir()}); err != types.ErrBackendEmpty {
		t.Errorf("expected ErrBackendEmpty, got %v", err)
	}
	if err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()}); err != types.ErrBackendUnknown {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}
	if _, err := b.GetRecord("alice"); err != types.ErrDetached {
		t.Errorf("expected ErrDetached, got %v", err)
	}
	if err := b.SaveSelection("alice", []byte("{}")); err != types.ErrDetached {
		t.Errorf("expected ErrDetached, got %v", err)
	}
}

func TestBackend_ReattachKeepsData(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	if err := b.Attach(cfg); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if _, err := b.EnsureRecord("alice"); err != nil {
		t.Fatalf("EnsureRecord failed: %v", err)
	}
	if _, err := b.Adjust("alice", 10, 20, nil); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	b.Detach()

	b2 := NewBackend()
	if err := b2.Attach(cfg); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b2.Detach()

	rec, err := b2.GetRecord("alice")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if rec.XP != 10 || rec.Credits != 20 {
		t.Errorf("expected xp=10 credits=20, got xp=%d credits=%d", rec.XP, rec.Credits)
	}
}
