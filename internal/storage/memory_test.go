package storage

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

var _ fiber.Storage = (*MemoryStorage)(nil)
var _ fiber.Storage = (*RedisStorage)(nil)

func TestMemoryStorage(t *testing.T) {
	s := NewMemory()

	if v, err := s.Get("missing"); err != nil || v != nil {
		t.Fatalf("expected nil for missing key, got %q %v", v, err)
	}

	val := []byte("1")
	if err := s.Set("ip", val, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	val[0] = '9'
	got, _ := s.Get("ip")
	if string(got) != "1" {
		t.Fatalf("expected stored copy, got %q", got)
	}

	if err := s.Delete("ip"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.Get("ip"); got != nil {
		t.Fatalf("expected deleted key, got %q", got)
	}
}

func TestMemoryStorageExpiry(t *testing.T) {
	s := NewMemory()
	s.Set("short", []byte("x"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if got, _ := s.Get("short"); got != nil {
		t.Fatalf("expected expired key, got %q", got)
	}
}

func TestMemoryStorageReset(t *testing.T) {
	s := NewMemory()
	s.Set("a", []byte("1"), 0)
	s.Set("b", []byte("2"), time.Minute)
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if got, _ := s.Get(k); got != nil {
			t.Fatalf("expected %s cleared, got %q", k, got)
		}
	}
}
