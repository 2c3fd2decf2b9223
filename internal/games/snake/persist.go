package snake

import (
	"strconv"
	"sync"
)

// BestScoreKey is the key under which the best score is persisted.
const BestScoreKey = "snakeHighScore"

// BestStore is the narrow key/value contract the engine needs to keep the
// best score between sessions. Get reports ok=false for an absent key.
type BestStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MaxStore is a BestStore that can raise a numeric value atomically. Engines
// sharing one store use it so the stored best never goes down.
type MaxStore interface {
	BestStore
	// SetMax stores value if it is higher than the stored number and returns
	// the number stored afterwards.
	SetMax(key string, value int) (int, error)
}

// MemoryStore is an in-process BestStore. It is used when no database is
// available and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get implements BestStore.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements BestStore.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// SetMax implements MaxStore. A missing or malformed value counts as 0.
func (m *MemoryStore) SetMax(key string, value int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, err := strconv.Atoi(m.data[key]); err == nil && current >= value {
		return current, nil
	}
	m.data[key] = strconv.Itoa(value)
	return value, nil
}

var _ MaxStore = (*MemoryStore)(nil)
