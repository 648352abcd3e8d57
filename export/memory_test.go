package export

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	ref, err := store.Put(context.Background(), "exams/a.pdf", bytes.NewBufferString("payload"), ArtifactMeta{ContentType: "application/pdf"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if ref.Meta.Size != int64(len("payload")) {
		t.Fatalf("unexpected size %d", ref.Meta.Size)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 object, got %d", store.Len())
	}

	reader, meta, err := store.Open(context.Background(), "exams/a.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(reader)
	_ = reader.Close()
	if string(data) != "payload" {
		t.Fatalf("unexpected payload %q", data)
	}
	if meta.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", meta.ContentType)
	}

	if err := store.Delete(context.Background(), "exams/a.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Open(context.Background(), "exams/a.pdf"); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestMemoryStore_EmptyKey(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Put(context.Background(), "", bytes.NewBufferString("x"), ArtifactMeta{}); err == nil {
		t.Fatalf("expected validation error")
	}
}
