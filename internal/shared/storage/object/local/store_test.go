package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"legal-backend/internal/shared/storage/object"
)

func TestPutOpenExists(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	ok, err := store.Exists(ctx, "documents/u/a.html")
	if err != nil || ok {
		t.Fatalf("expected missing object, got ok=%v err=%v", ok, err)
	}

	n, err := store.Put(ctx, "documents/u/a.html", "text/html", strings.NewReader("<p>hi</p>"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n != 9 {
		t.Fatalf("expected 9 bytes written, got %d", n)
	}

	ok, err = store.Exists(ctx, "documents/u/a.html")
	if err != nil || !ok {
		t.Fatalf("expected object to exist, got ok=%v err=%v", ok, err)
	}

	rc, err := store.Open(ctx, "documents/u/a.html")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "<p>hi</p>" {
		t.Fatalf("unexpected body: %q", data)
	}
}

func TestOpenMissingIsNotFound(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "uploads/none.pdf")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	if _, err := store.Put(ctx, "../escape.txt", "text/plain", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal rejected on put")
	}
	if _, err := store.Open(ctx, "/etc/passwd"); err == nil {
		t.Fatalf("expected absolute key rejected on open")
	}
}
