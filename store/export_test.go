package store

import "time"

// SetClock replaces the store clock in tests.
func SetClock(s *Store, now func() time.Time) { s.now = now }
