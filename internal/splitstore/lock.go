package splitstore

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrBuildLocked reports a reference build already in progress for the cache
// directory.
var ErrBuildLocked = errors.New("another reference build holds the cache lock")

// AcquireBuildLock takes the exclusive build lock for a cache directory so
// concurrent invocations cannot interleave writes to the same split. The
// returned release function is safe to call once.
func AcquireBuildLock(cacheDir string) (func() error, error) {
	lock := flock.New(filepath.Join(cacheDir, "build.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !ok {
		return nil, ErrBuildLocked
	}
	return lock.Unlock, nil
}
