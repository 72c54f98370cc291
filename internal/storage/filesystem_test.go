package storage

import (
	"bytes"
	"context"
	"testing"
)

func TestFileStoreWriteRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	data := []byte{0x89, 0x50, 0x4e, 0x47}
	key, err := store.Write(context.Background(), "sessions/alpha/img.png", data)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if key != "sessions/alpha/img.png" {
		t.Fatalf("unexpected key: %q", key)
	}

	got, err := store.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("read bytes differ from written bytes")
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if _, err := store.Write(context.Background(), "../escape.png", []byte{1}); err == nil {
		t.Fatal("expected invalid key error")
	}
	if _, err := store.Read(context.Background(), ""); err == nil {
		t.Fatal("expected key required error")
	}
}
