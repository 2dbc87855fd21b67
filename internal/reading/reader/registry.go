package reader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dothai/truyenthong/internal/platform/apperr"
	"github.com/dothai/truyenthong/internal/reading/book"
	"github.com/dothai/truyenthong/pkg/uuidv7"
)

// sweepInterval is how often the registry evicts idle sessions.
const sweepInterval = 5 * time.Minute

// Registry holds the open reading sessions in memory, keyed by an
// unguessable session id. Sessions are node-local state: a session opened on
// one instance is not visible to another, and idle sessions are evicted
// after the configured TTL.
//
// A signed-in reader holds at most one open session; opening a second book
// silently closes the first. Anonymous sessions are keyed only by id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	owners   map[string]string
	epochs   map[string]uint64

	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

type registryEntry struct {
	session  *book.Session
	ownerID  string
	lastSeen time.Time
}

func NewRegistry(ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*registryEntry),
		owners:   make(map[string]string),
		epochs:   make(map[string]uint64),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// NextEpoch marks the start of an open attempt for a signed-in reader. The
// returned value must be handed back to [Registry.Put]; only the latest
// attempt per owner may register. Anonymous attempts share epoch zero.
func (registry *Registry) NextEpoch(ownerID string) uint64 {
	if ownerID == "" {
		return 0
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.epochs[ownerID]++
	return registry.epochs[ownerID]
}

// Put stores a freshly opened session and returns its id. ownerID may be
// empty for anonymous readers.
//
// A Put whose epoch has been superseded by a newer open attempt closes the
// session and returns an empty id: the slow open loses, not the fresh one.
func (registry *Registry) Put(session *book.Session, ownerID string, epoch uint64) string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if ownerID != "" {
		if registry.epochs[ownerID] != epoch {
			session.Close()
			return ""
		}
		if staleID, ok := registry.owners[ownerID]; ok {
			registry.dropLocked(staleID)
		}
	}

	id := uuidv7.New()
	registry.sessions[id] = &registryEntry{
		session:  session,
		ownerID:  ownerID,
		lastSeen: registry.now(),
	}
	if ownerID != "" {
		registry.owners[ownerID] = id
	}
	return id
}

// Acquire returns the session for id and refreshes its idle deadline.
//
// A missing or expired id yields a not-found error; presenting someone
// else's session id yields the same not-found rather than confirming the id
// exists.
func (registry *Registry) Acquire(id, callerID string) (*book.Session, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry, ok := registry.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Reading session")
	}

	if registry.now().Sub(entry.lastSeen) > registry.ttl {
		registry.dropLocked(id)
		return nil, apperr.NotFound("Reading session")
	}

	if entry.ownerID != "" && entry.ownerID != callerID {
		return nil, apperr.NotFound("Reading session")
	}

	entry.lastSeen = registry.now()
	return entry.session, nil
}

// Remove closes and discards a session. Removing an unknown id is a no-op.
func (registry *Registry) Remove(id, callerID string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry, ok := registry.sessions[id]
	if !ok {
		return
	}
	if entry.ownerID != "" && entry.ownerID != callerID {
		return
	}
	registry.dropLocked(id)
}

// Len reports the number of open sessions.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.sessions)
}

// StartSweeper runs the idle-session janitor until appContext is cancelled.
func (registry *Registry) StartSweeper(appContext context.Context) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-appContext.Done():
				return
			case <-ticker.C:
				registry.sweep()
			}
		}
	}()
}

func (registry *Registry) sweep() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	cutoff := registry.now().Add(-registry.ttl)
	evicted := 0
	for id, entry := range registry.sessions {
		if entry.lastSeen.Before(cutoff) {
			registry.dropLocked(id)
			evicted++
		}
	}

	if evicted > 0 {
		registry.logger.Info("reading_sessions_evicted",
			slog.Int("count", evicted),
			slog.Int("remaining", len(registry.sessions)),
		)
	}
}

// dropLocked closes and deletes a session. Callers hold registry.mu.
func (registry *Registry) dropLocked(id string) {
	entry, ok := registry.sessions[id]
	if !ok {
		return
	}
	entry.session.Close()
	delete(registry.sessions, id)
	if entry.ownerID != "" && registry.owners[entry.ownerID] == id {
		delete(registry.owners, entry.ownerID)
	}
}
