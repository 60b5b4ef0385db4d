package testsupport

import (
	"testing"

	"asrscore/internal/config"
	"asrscore/internal/splitstore"
)

// MustOpenStore opens a splitstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *splitstore.Store {
	t.Helper()

	store, err := splitstore.Open(cfg)
	if err != nil {
		t.Fatalf("splitstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
