package docstore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryBackend keeps the structure in process as encoded JSON, so every Load
// returns a private copy exactly as a persistent backend would.
type MemoryBackend struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(context.Context) (Data, error) {
	m.mu.Lock()
	raw := m.raw
	m.mu.Unlock()

	return decodeData(raw)
}

func (m *MemoryBackend) Save(_ context.Context, data Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
	return nil
}

func decodeData(raw []byte) (Data, error) {
	data := Data{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = Data{}
	}
	return data, nil
}
