package memstore

import (
	"sort"

	"github.com/moby/locker"
)

// keyedMutex takes several named locks at once. Names are acquired in sorted
// order so two units sharing keys cannot deadlock.
type keyedMutex struct {
	names *locker.Locker
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{names: locker.New()}
}

// lock acquires every key and returns the release func.
func (k *keyedMutex) lock(keys []string) func() {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	held := make([]string, 0, len(sorted))
	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		k.names.Lock(key)
		held = append(held, key)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			// Only fails for a name that is not held.
			_ = k.names.Unlock(held[i])
		}
	}
}
