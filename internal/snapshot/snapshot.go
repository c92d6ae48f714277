// Package snapshot provides durable whole-document key-value persistence
// for the candidate mirror and sync configuration.
package snapshot

import "errors"

// Storage keys used by the application.
const (
	KeyCandidates = "talenttrack_candidates"
	KeySyncConfig = "talenttrack_sync_config"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("snapshot: key not found")

// Store is a whole-document key-value persistence port. Writes overwrite
// the full value; there are no incremental updates.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
}
