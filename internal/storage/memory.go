package storage

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStorage is the single-instance fallback when no Redis is
// configured.
type MemoryStorage struct {
	cache *cache.Cache
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{cache: cache.New(time.Minute, 5*time.Minute)}
}

func (s *MemoryStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}
	return val.([]byte), nil
}

func (s *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	// Callers may reuse val after Set returns.
	buf := make([]byte, len(val))
	copy(buf, val)
	if exp <= 0 {
		exp = cache.NoExpiration
	}
	s.cache.Set(key, buf, exp)
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *MemoryStorage) Reset() error {
	s.cache.Flush()
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
