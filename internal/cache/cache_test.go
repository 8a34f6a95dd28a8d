package cache

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("classify", "some methods text")
	k2 := Key("classify", "some methods text")
	if k1 != k2 {
		t.Error("same operation and text must produce the same key")
	}

	if Key("classify", "text") == Key("assess", "text") {
		t.Error("different operations over the same text must not collide")
	}
	if Key("classify", "text a") == Key("classify", "text b") {
		t.Error("different texts must not collide")
	}

	if !strings.HasPrefix(k1, "rigor:v1:classify:") {
		t.Errorf("key = %q, want rigor:v1:classify: prefix", k1)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expected miss after TTL expiry")
	}
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Minute)

	if _, found := c.Get(Key("classify", "text")); found {
		t.Error("expected miss on empty cache")
	}

	key := Key("classify", "text")
	if err := c.Set(key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, found := c.Get(key)
	if !found || !bytes.Equal(val, []byte("payload")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	// A fresh instance over the same directory sees the entry
	c2 := NewDiskCache(dir, time.Minute)
	if _, found := c2.Get(key); !found {
		t.Error("expected persisted entry to survive restart")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss after clear")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(filepath.Join(t.TempDir(), "cache"), time.Minute)

	key := Key("assess", "text")
	if err := c.Set(key, []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("expected expired entry to be a miss")
	}
}

func TestLayeredCachePromotesFromDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	key := Key("classify", "text")

	// Seed disk only
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set(key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := layered.Get(key)
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("Get = %q, %v", val, found)
	}

	// After promotion the memory layer alone serves the key
	if _, found := layered.memory.Get(key); !found {
		t.Error("expected disk hit to be promoted to memory")
	}
}

func TestLayeredCacheSetAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	key := Key("assess", "text")

	if err := layered.Set(key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("expected hit after set")
	}

	if err := layered.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := layered.Get(key); found {
		t.Error("expected miss after delete")
	}
}
