package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadlib11/arbolitics-dashboard/internal/domain/auth"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
)

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testUser() *auth.User {
	return &auth.User{
		ID:          42,
		IsActive:    true,
		Name:        "Ada",
		Email:       "ada@example.com",
		Role:        "admin",
		Lang:        "en",
		CreatedAt:   "2024-01-15T10:00:00.000Z",
		AccessToken: "profile-token",
		Company: auth.Company{
			ID:       7,
			Name:     "Arbolitics",
			IsActive: true,
		},
	}
}

func TestManagerLoginThenRead(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), discardLogger())

	require.NoError(t, m.Login(ctx, "tok-123", testUser()))

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-123", m.Token())

	user := m.User()
	require.NotNil(t, user)
	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Arbolitics", user.Company.Name)
}

func TestManagerLogoutAlwaysEndsLoggedOut(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), discardLogger())

	// Logout from LoggedOut is a no-op that stays LoggedOut.
	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())

	require.NoError(t, m.Login(ctx, "tok-123", testUser()))
	require.NoError(t, m.Logout(ctx))

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())
}

func TestManagerRestoreSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := NewManager(store, discardLogger())
	require.NoError(t, first.Login(ctx, "tok-123", testUser()))

	second := NewManager(store, discardLogger())
	require.NoError(t, second.Restore(ctx))

	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "tok-123", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, 42, second.User().ID)
}

func TestManagerRestoreCorruptProfileTearsDownSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "tok-123", []byte("{not json")))

	m := NewManager(store, discardLogger())
	require.NoError(t, m.Restore(ctx))

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())

	// The corrective logout must clear both stored entries.
	token, userData, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, userData)
}

func TestManagerRestoreWithMissingEntriesStaysLoggedOut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "tok-only", nil))

	m := NewManager(store, discardLogger())
	require.NoError(t, m.Restore(ctx))

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())

	// A merely incomplete session is not torn down, only ignored.
	token, _, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-only", token)
}

func TestManagerRunConvergesOnStoreChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewMemoryStore()
	writer := NewManager(store, discardLogger())
	watcher := NewManager(store, discardLogger())

	go func() { _ = watcher.Run(ctx) }()

	// Give the watcher time to subscribe before the first write.
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, writer.Login(ctx, "tok-123", testUser()))
	require.Eventually(t, watcher.IsAuthenticated, time.Second, 10*time.Millisecond)

	require.NoError(t, writer.Logout(ctx))
	require.Eventually(t, func() bool { return !watcher.IsAuthenticated() }, time.Second, 10*time.Millisecond)
}

func TestMemoryStoreWatchStopsOnContextCancel(t *testing.T) {
	store := NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	_, err := store.Watch(ctx)
	require.NoError(t, err)

	cancel()
	time.Sleep(20 * time.Millisecond)

	// A write after unsubscription must not block or panic.
	require.NoError(t, store.Set(context.Background(), "tok", []byte("{}")))
}
