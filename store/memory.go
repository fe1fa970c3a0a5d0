package store

import (
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

// MemoryStore keeps records in an in-process map. Suitable for tests and
// single-process simulations.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[solanago.PublicKey][]byte
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[solanago.PublicKey][]byte)}
}

func (m *MemoryStore) Get(addr solanago.PublicKey) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, false, ErrClosed
	}
	data, ok := m.records[addr]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *MemoryStore) Apply(batch Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, rec := range batch.Puts {
		data := make([]byte, len(rec.Data))
		copy(data, rec.Data)
		m.records[rec.Address] = data
	}
	for _, addr := range batch.Deletes {
		delete(m.records, addr)
	}
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.records = nil
	return nil
}
