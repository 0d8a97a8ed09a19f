package attribution

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refparse/attribution/referrers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_Swap(t *testing.T) {
	first, err := referrers.Parse([]byte("search:\n  Google:\n    domains: [google.com]\n"))
	require.NoError(t, err)
	second, err := referrers.Parse([]byte("social:\n  Facebook:\n    domains: [facebook.com]\n"))
	require.NoError(t, err)

	store := NewStore(first, discardLogger())
	firstID := store.SnapshotID()
	assert.NotEmpty(t, firstID)
	assert.Same(t, first, store.Current())

	secondID := store.Swap(second)
	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, secondID, store.SnapshotID())
	assert.Same(t, second, store.Current())

	// The old snapshot is untouched: callers holding it keep a working
	// knowledge base.
	_, ok := first.Classify("google.com")
	assert.True(t, ok)
}

func TestStore_SwapChangesClassification(t *testing.T) {
	first, err := referrers.Parse([]byte("search:\n  OldEngine:\n    domains: [engine.example]\n"))
	require.NoError(t, err)
	second, err := referrers.Parse([]byte("social:\n  NewNet:\n    domains: [engine.example]\n"))
	require.NoError(t, err)

	store := NewStore(first, discardLogger())
	clf, err := New(WithStore(store), WithLogger(discardLogger()))
	require.NoError(t, err)

	res := clf.Classify("https://site.com/", "https://engine.example/")
	assert.Equal(t, "OldEngine", res.Source)
	assert.Equal(t, "search", res.Medium)

	store.Swap(second)

	res = clf.Classify("https://site.com/", "https://engine.example/")
	assert.Equal(t, "NewNet", res.Source)
	assert.Equal(t, "social", res.Medium)
}

func TestStore_ConcurrentReadersAndSwaps(t *testing.T) {
	kb, err := referrers.Parse([]byte("search:\n  Google:\n    domains: [google.com]\n"))
	require.NoError(t, err)

	store := NewStore(kb, discardLogger())
	clf, err := New(WithStore(store), WithLogger(discardLogger()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				res := clf.Classify("https://site.com/", "https://google.com/search?q=x")
				if res.Source == "" || res.Medium == "" {
					t.Error("classification produced unset fields")
					return
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		store.Swap(kb)
	}
	wg.Wait()
}
