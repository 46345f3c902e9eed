package store

import (
	"context"
	"sync"
	"time"

	"github.com/roach88/contactlens/internal/provider"
)

// Watch registers onChange for changes to r.
//
// onChange runs on the writing goroutine while the watcher table is
// read-locked: it must not block and must not call Watch or unregister.
func (s *Store) Watch(r provider.Resource, onChange func()) (unregister func()) {
	s.watchMu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = watcher{resource: r, onChange: onChange}
	s.watchMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.watchMu.Lock()
			delete(s.watchers, id)
			s.watchMu.Unlock()
		})
	}
}

// WatcherCount returns the number of registered watchers.
func (s *Store) WatcherCount() int {
	s.watchMu.RLock()
	defer s.watchMu.RUnlock()
	return len(s.watchers)
}

// notifyChange calls every watcher whose resource overlaps changed.
// Writes pass provider.Authority: any row change can alter an aggregate, so
// every watcher hears about it.
func (s *Store) notifyChange(changed provider.Resource) {
	s.watchMu.RLock()
	defer s.watchMu.RUnlock()

	for _, w := range s.watchers {
		if w.resource.Under(changed) || changed.Under(w.resource) {
			w.onChange()
		}
	}
}

// PollExternal notifies every watcher when another connection commits to
// the database, checking PRAGMA data_version every interval until ctx
// ends. Writes through this Store notify on their own and do not change
// data_version.
func (s *Store) PollExternal(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last, err := s.dataVersion(ctx)
	if err != nil {
		last = -1
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		v, err := s.dataVersion(ctx)
		if err != nil {
			continue
		}
		if v != last {
			last = v
			s.notifyChange(provider.Authority)
		}
	}
}

func (s *Store) dataVersion(ctx context.Context) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, "PRAGMA data_version").Scan(&v)
	return v, err
}
