package storefs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quizkit/go-assessment-export/export"
)

func TestStore_PutOpenDelete(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	ref, err := store.Put(context.Background(), "exams/Midterm_Version_A.pdf", bytes.NewBufferString("%PDF-1.4 body"), export.ArtifactMeta{
		ContentType: "application/pdf",
		Filename:    "Midterm_Version_A.pdf",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if ref.Meta.Size != int64(len("%PDF-1.4 body")) {
		t.Fatalf("unexpected size %d", ref.Meta.Size)
	}
	if ref.Meta.CreatedAt.IsZero() {
		t.Fatalf("expected created_at set")
	}

	reader, meta, err := store.Open(context.Background(), "exams/Midterm_Version_A.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(reader)
	_ = reader.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 body" {
		t.Fatalf("expected payload, got %q", string(data))
	}
	if meta.Filename != "Midterm_Version_A.pdf" {
		t.Fatalf("expected filename, got %q", meta.Filename)
	}
	if meta.ContentType != "application/pdf" {
		t.Fatalf("expected content type, got %q", meta.ContentType)
	}

	if err := store.Delete(context.Background(), "exams/Midterm_Version_A.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Open(context.Background(), "exams/Midterm_Version_A.pdf"); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestStore_PutDefaultsFilename(t *testing.T) {
	store := NewStore(t.TempDir())
	store.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	ref, err := store.Put(context.Background(), "exams/quiz.zip", bytes.NewBufferString("PK"), export.ArtifactMeta{})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if ref.Meta.Filename != "quiz.zip" {
		t.Fatalf("expected filename derived from key, got %q", ref.Meta.Filename)
	}
	if !ref.Meta.CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected injected clock, got %v", ref.Meta.CreatedAt)
	}
}

func TestStore_OpenNotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	_, _, err := store.Open(context.Background(), "exams/missing.pdf")
	if err == nil {
		t.Fatalf("expected error")
	}
	exportErr, ok := err.(*export.ExportError)
	if !ok || exportErr.Kind != export.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStore_TraversalKeyStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if _, err := store.Put(context.Background(), "../outside.pdf", bytes.NewBufferString("x"), export.ArtifactMeta{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "outside.pdf")); err != nil {
		t.Fatalf("expected artifact under root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "outside.pdf")); !os.IsNotExist(err) {
		t.Fatalf("artifact escaped root")
	}
}

func TestStore_EmptyKey(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Put(context.Background(), "", bytes.NewBufferString("x"), export.ArtifactMeta{}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, _, err := store.Open(context.Background(), ""); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := store.Delete(context.Background(), ""); err == nil {
		t.Fatalf("expected validation error")
	}
}
