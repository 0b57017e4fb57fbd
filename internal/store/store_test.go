package store

import (
	"context"
	"testing"
)

func TestInMemoryStoreGetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, err := s.Get(ctx, "a")
	if err != nil || string(v) != "1" {
		t.Fatalf("Get = (%q, %v), want (1, nil)", v, err)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "a"); err != ErrNotFound {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStoreScan(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	s.Put(ctx, "shielded_pool/spent_nullifiers/aa", []byte{1})
	s.Put(ctx, "shielded_pool/spent_nullifiers/bb", []byte{2})
	s.Put(ctx, "dex/claimed_swap_outputs/1", []byte{3})

	keys, err := s.Scan(ctx, "shielded_pool/spent_nullifiers/")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Scan returned %d keys, want 2", len(keys))
	}
	if keys[0] > keys[1] {
		t.Error("Scan must return keys in lexicographic order")
	}
}

func TestKeyLayoutHelpers(t *testing.T) {
	if got := CompactBlockKey(5); got != "shielded_pool/compact_block/5" {
		t.Errorf("CompactBlockKey = %q", got)
	}
	if got := DexClaimedSwapOutputsKey(5); got != "dex/claimed_swap_outputs/5" {
		t.Errorf("DexClaimedSwapOutputsKey = %q", got)
	}
}
