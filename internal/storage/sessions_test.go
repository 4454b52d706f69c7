package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/config"
	"github.com/easeaico/chat-coach/internal/types"
)

var _ coach.SessionRepo = (*sessionRepo)(nil)
var _ DocumentStore = (*documentRepo)(nil)
var _ DocumentStore = (*memoryDocuments)(nil)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Config{
		StoreDriver: config.DriverSQLite,
		DBPath:      filepath.Join(t.TempDir(), "coach.db"),
	}
	store, err := NewStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func forEachStore(t *testing.T, fn func(t *testing.T, store *Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteStore(t)) })
}

func TestSessionRepoRoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, store *Store) {
		ctx := context.Background()
		repo := store.Sessions

		first := types.ChatSession{
			ID:              "a",
			ContactName:     "Lilly",
			History:         []string{"said hi"},
			Goal:            types.GoalGetNumber,
			Language:        "en",
			PersonalContext: "new crush",
			FeedbackLog:     []types.FeedbackEntry{{Reply: "hey", Rating: types.RatingPositive}},
		}
		second := types.ChatSession{ID: "b", ContactName: types.NewChatName, IsBossMode: true, Goal: types.GoalRapport}

		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, repo.Save(ctx, second))

		sessions, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, "b", sessions[0].ID, "new sessions are prepended")
		assert.Equal(t, first, sessions[1])

		got, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})
}

func TestSessionRepoReplaceKeepsPositionAndUniqueIDs(t *testing.T) {
	forEachStore(t, func(t *testing.T, store *Store) {
		ctx := context.Background()
		repo := store.Sessions
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, repo.Save(ctx, types.ChatSession{ID: id, ContactName: types.NewChatName}))
		}

		require.NoError(t, repo.Save(ctx, types.ChatSession{ID: "b", ContactName: "Mel Ros"}))

		sessions, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 3)
		assert.Equal(t, []string{"c", "b", "a"}, ids(sessions))
		assert.Equal(t, "Mel Ros", sessions[1].ContactName)
	})
}

func TestSessionRepoDeleteLeavesOthersUntouched(t *testing.T) {
	forEachStore(t, func(t *testing.T, store *Store) {
		ctx := context.Background()
		repo := store.Sessions
		current := types.ChatSession{ID: "open", ContactName: "Lilly", History: []string{"one", "two"}}
		require.NoError(t, repo.Save(ctx, current))
		require.NoError(t, repo.Save(ctx, types.ChatSession{ID: "other", ContactName: "Ana"}))

		require.NoError(t, repo.Delete(ctx, "other"))

		got, err := repo.Get(ctx, "open")
		require.NoError(t, err)
		assert.Equal(t, current, got)

		_, err = repo.Get(ctx, "other")
		assert.ErrorIs(t, err, types.ErrSessionNotFound)
	})
}

func TestSessionRepoCorruptDocumentReadsEmpty(t *testing.T) {
	forEachStore(t, func(t *testing.T, store *Store) {
		ctx := context.Background()
		require.NoError(t, store.Documents.Put(ctx, SessionsKey, "{not json"))

		sessions, err := store.Sessions.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}

func TestDocumentRepoUpsert(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	_, ok, err := store.Documents.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Documents.Put(ctx, "k", "v1"))
	require.NoError(t, store.Documents.Put(ctx, "k", "v2"))

	value, ok, err := store.Documents.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Documents.Delete(ctx, "k"))
	_, ok, err = store.Documents.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func ids(sessions []types.ChatSession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}
