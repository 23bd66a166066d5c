package localstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreGetMissingKey(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	data, ok, err := s.Get("contact_submissions")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, data)
}

func TestStoreSetThenGet(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`[{"id":"1"}]`)
	require.NoError(t, s.Set("contact_submissions", payload))

	data, ok, err := s.Get("contact_submissions")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, payload, data)
}

func TestStoreSetOverwritesWholeDocument(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("k", []byte(`{"version":1,"padding":"xxxxxxxxxxxxxxxx"}`)))
	require.NoError(t, s.Set("k", []byte(`{"version":2}`)))

	data, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"version":2}`, string(data))
}

func TestStoreDelete(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("k", []byte(`[]`)))
	require.NoError(t, s.Delete("k"))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	// 删除不存在的 key 不报错
	require.NoError(t, s.Delete("k"))
}

func TestStoreRejectsBadKeys(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "a/b", "../escape", "a b", "k.json"} {
		require.Error(t, s.Set(key, []byte(`[]`)), "key %q should be rejected", key)
	}
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("k", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "k.json", filepath.Base(entries[0].Name()))
}

func TestStoreConcurrentWriters(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16*20)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if err := s.Set("k", []byte(`[{"id":"x"}]`)); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	data, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"x"}]`, string(data))
}
