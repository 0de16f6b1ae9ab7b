package docstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// barrierBackend holds every Save until all writers have loaded, forcing two
// load-modify-save cycles to interleave.
type barrierBackend struct {
	*MemoryBackend
	loaded sync.WaitGroup
}

func (b *barrierBackend) Load(ctx context.Context) (Data, error) {
	data, err := b.MemoryBackend.Load(ctx)
	b.loaded.Done()
	return data, err
}

func (b *barrierBackend) Save(ctx context.Context, data Data) error {
	b.loaded.Wait()
	return b.MemoryBackend.Save(ctx, data)
}

func TestConcurrentWritersLoseUpdates(t *testing.T) {
	backend := &barrierBackend{MemoryBackend: NewMemoryBackend()}
	backend.loaded.Add(2)

	store, err := New(backend)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, number := range []string{"BW-A", "BW-B"} {
		wg.Add(1)
		go func(number string) {
			defer wg.Done()
			_, err := store.Create(context.Background(), "bowsers", Document{"number": number})
			errs <- err
		}(number)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := backend.MemoryBackend.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, stored["bowsers"], 1, "the later save overwrites the earlier one")
}
