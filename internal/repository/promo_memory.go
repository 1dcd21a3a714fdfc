package repository

import (
	"context"
	"sync"
	"time"
)

type memoryPromo struct {
	mu    sync.Mutex
	now   func() time.Time
	codes map[string]time.Time
}

// NewMemoryPromoRepository keeps codes in process memory; they are lost on restart.
func NewMemoryPromoRepository() PromoRepository {
	return newMemoryPromo(time.Now)
}

func newMemoryPromo(now func() time.Time) *memoryPromo {
	return &memoryPromo{
		now:   now,
		codes: make(map[string]time.Time),
	}
}

func (that *memoryPromo) Save(_ context.Context, code string, ttl time.Duration) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = that.now().Add(ttl)
	}

	that.codes[code] = expiresAt

	return nil
}

func (that *memoryPromo) Exists(_ context.Context, code string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	expiresAt, ok := that.codes[code]
	if !ok {
		return false, nil
	}

	if that.expired(expiresAt) {
		delete(that.codes, code)
		return false, nil
	}

	return true, nil
}

func (that *memoryPromo) evictExpired() {
	for code, expiresAt := range that.codes {
		if that.expired(expiresAt) {
			delete(that.codes, code)
		}
	}
}

func (that *memoryPromo) expired(expiresAt time.Time) bool {
	return !expiresAt.IsZero() && !that.now().Before(expiresAt)
}
