package store

import "sync/atomic"

// Store holds the current snapshot of one floor for an editing session.
// Readers call Load; writers build the next snapshot and Swap it in.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// New returns a store positioned at s.
func New(s *Snapshot) *Store {
	st := &Store{}
	st.current.Store(s)
	return st
}

// Load returns the current snapshot.
func (st *Store) Load() *Snapshot {
	return st.current.Load()
}

// Swap installs next and returns the snapshot it replaced.
func (st *Store) Swap(next *Snapshot) *Snapshot {
	return st.current.Swap(next)
}

// CompareAndSwap installs next only if old is still current. Compensation
// uses it so a rollback never clobbers a newer edit.
func (st *Store) CompareAndSwap(old, next *Snapshot) bool {
	return st.current.CompareAndSwap(old, next)
}
