package cache

import (
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()

	if _, err := m.Get("missing"); err != ErrNotFound {
		t.Errorf("Get() on empty cache = %v, want ErrNotFound", err)
	}

	if err := m.Set("key", "value", 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := m.Get("key")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "value" {
		t.Errorf("Get() = %q, want %q", got, "value")
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()

	if err := m.Set("short", "value", time.Millisecond); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := m.Get("short"); err != ErrNotFound {
		t.Errorf("Get() after expiry = %v, want ErrNotFound", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()

	m.Set("key", "value", 0)
	if err := m.Delete("key"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := m.Get("key"); err != ErrNotFound {
		t.Errorf("Get() after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory()

	m.Set("key", "first", 0)
	m.Set("key", "second", 0)

	got, err := m.Get("key")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "second" {
		t.Errorf("Get() after overwrite = %q, want %q", got, "second")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}
