package reader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dothai/truyenthong/internal/platform/apperr"
	"github.com/dothai/truyenthong/internal/reading/book"
)

func newTestSession() *book.Session {
	document := book.Document{
		ID:        "m-1945",
		Title:     "Ngày thành lập",
		StoryHTML: "<p>Một chặng đường vẻ vang của đơn vị.</p>",
	}
	return book.NewSession(document, nil, book.Config{}, nil, nil, nil)
}

func TestRegistry_PutAndAcquire(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)

	session := newTestSession()
	id := registry.Put(session, "user-1", registry.NextEpoch("user-1"))
	require.NotEmpty(t, id)

	got, err := registry.Acquire(id, "user-1")
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestRegistry_Acquire_WrongOwner(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)
	id := registry.Put(newTestSession(), "user-1", registry.NextEpoch("user-1"))

	_, err := registry.Acquire(id, "user-2")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

func TestRegistry_Acquire_AnonymousSessionIsBearer(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)
	id := registry.Put(newTestSession(), "", 0)

	_, err := registry.Acquire(id, "")
	require.NoError(t, err)

	// Anyone holding the id may drive an anonymous session.
	_, err = registry.Acquire(id, "user-2")
	require.NoError(t, err)
}

func TestRegistry_SecondOpenReplacesFirst(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)

	firstID := registry.Put(newTestSession(), "user-1", registry.NextEpoch("user-1"))
	secondID := registry.Put(newTestSession(), "user-1", registry.NextEpoch("user-1"))

	_, err := registry.Acquire(firstID, "user-1")
	require.Error(t, err)

	_, err = registry.Acquire(secondID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_StaleOpenLoses(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)

	// Two open attempts start; the older one's fetch finishes last.
	oldEpoch := registry.NextEpoch("user-1")
	newEpoch := registry.NextEpoch("user-1")

	newID := registry.Put(newTestSession(), "user-1", newEpoch)
	require.NotEmpty(t, newID)

	staleID := registry.Put(newTestSession(), "user-1", oldEpoch)
	assert.Empty(t, staleID)

	// The newer session survives.
	_, err := registry.Acquire(newID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_ExpiredSessionIsGone(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)

	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return current }

	id := registry.Put(newTestSession(), "user-1", registry.NextEpoch("user-1"))

	current = current.Add(2 * time.Hour)

	_, err := registry.Acquire(id, "user-1")
	require.Error(t, err)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)

	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return current }

	registry.Put(newTestSession(), "user-1", registry.NextEpoch("user-1"))
	registry.Put(newTestSession(), "", 0)
	require.Equal(t, 2, registry.Len())

	current = current.Add(90 * time.Minute)
	registry.sweep()

	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_Remove(t *testing.T) {
	registry := NewRegistry(time.Hour, nil)
	id := registry.Put(newTestSession(), "user-1", registry.NextEpoch("user-1"))

	// A stranger cannot close someone else's session.
	registry.Remove(id, "user-2")
	assert.Equal(t, 1, registry.Len())

	registry.Remove(id, "user-1")
	assert.Equal(t, 0, registry.Len())

	// Removing an unknown id is a no-op.
	registry.Remove(id, "user-1")
}
