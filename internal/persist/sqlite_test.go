package persist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "menucraft.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	if err := s.Put(ctx, "menucraft_project_a", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "menucraft_project_a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"v":1}` {
		t.Fatalf("got %q", got)
	}

	// Put on an existing key overwrites.
	if err := s.Put(ctx, "menucraft_project_a", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = s.Get(ctx, "menucraft_project_a")
	if string(got) != `{"v":2}` {
		t.Fatalf("after overwrite got %q", got)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	s := openTestDB(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteKeysPrefix(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	for _, key := range []string{"menucraft_project_a", "menucraft_project_b", "other_x"} {
		if err := s.Put(ctx, key, []byte("v")); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	keys, err := s.Keys(ctx, "menucraft_project_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 prefixed keys, got %v", keys)
	}
}

func TestSQLiteDelete(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()
	s.Put(ctx, "menucraft_project_a", []byte("v"))
	if err := s.Delete(ctx, "menucraft_project_a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "menucraft_project_a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting a missing key is not an error.
	if err := s.Delete(ctx, "menucraft_project_a"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
