package kvcache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"
)

func TestFileCache_GetSet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
	}{
		{"simple key", "pubmed:12345", []byte(`{"title":"x"}`)},
		{"key with slashes", "pubmed/odd/key", []byte("data")},
		{"empty value", "empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(ctx, tt.key, tt.value, 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := c.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !ok {
				t.Fatal("Get reported a miss after Set")
			}
			if !bytes.Equal(got, tt.value) {
				t.Errorf("Get = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())

	_, ok, err := c.Get(context.Background(), "never-set")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get reported a hit for a never-set key")
	}
}

func TestFileCache_Expiry(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	if err := c.Set(ctx, "short-lived", []byte("data"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "short-lived")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expired entry still reported as a hit")
	}

	// The expired file is cleaned up, so a second read is a plain miss.
	if _, ok, _ := c.Get(ctx, "short-lived"); ok {
		t.Error("expired entry resurrected")
	}
}

func TestFileCache_Corrupt(t *testing.T) {
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(c.path("key"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("corrupt entry reported as a hit")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("deleted entry still present")
	}

	// Deleting an absent key is fine.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

func TestKey(t *testing.T) {
	a := Key("pubmed", "12345")
	b := Key("pubmed", "12345")
	other := Key("pubmed", "54321")

	if a != b {
		t.Error("Key is not deterministic")
	}
	if a == other {
		t.Error("different ids produced the same key")
	}
}
