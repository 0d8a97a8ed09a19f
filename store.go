package attribution

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/refparse/attribution/referrers"
)

// snapshot pairs a knowledge base with the identifier it was published
// under.
type snapshot struct {
	id string
	kb *referrers.KnowledgeBase
}

// Store publishes immutable knowledge-base snapshots for classifiers to
// read. Swap installs a new snapshot atomically; classifications already
// running keep the snapshot they started with, so readers never take a
// lock. There are exactly two mutation points: construction and Swap.
type Store struct {
	cur    atomic.Pointer[snapshot]
	logger *slog.Logger
}

// NewStore creates a Store publishing kb as the initial snapshot.
func NewStore(kb *referrers.KnowledgeBase, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{logger: logger}
	s.install(kb)
	return s
}

func (s *Store) install(kb *referrers.KnowledgeBase) string {
	snap := &snapshot{id: uuid.NewString(), kb: kb}
	s.cur.Store(snap)
	return snap.id
}

// Swap replaces the published snapshot with a new knowledge base and
// returns the new snapshot's ID. kb must not be mutated after the call.
func (s *Store) Swap(kb *referrers.KnowledgeBase) string {
	id := s.install(kb)
	s.logger.Info("knowledge base snapshot published",
		"snapshot_id", id,
		"domains", kb.Len(),
	)
	return id
}

// Current returns the knowledge base of the currently published snapshot.
func (s *Store) Current() *referrers.KnowledgeBase {
	return s.cur.Load().kb
}

// SnapshotID returns the ID of the currently published snapshot.
func (s *Store) SnapshotID() string {
	return s.cur.Load().id
}
