package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/rpggio/projectboard/internal/repository"
	"github.com/stretchr/testify/require"
)

// openTestStore connects to the database named by PROJECTBOARD_TEST_POSTGRES_DSN.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("PROJECTBOARD_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PROJECTBOARD_TEST_POSTGRES_DSN not set")
	}

	store, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_PutGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	key := "test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = store.db.ExecContext(context.Background(), `DELETE FROM state WHERE bucket = $1`, key)
	})

	_, err := store.Get(ctx, key)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Put(ctx, key, []byte(`[{"id":"p1"}]`)))
	require.NoError(t, store.Put(ctx, key, []byte(`[{"id":"p2"}]`)))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"p2"}]`, string(got))
}

func TestStore_EmptyKey(t *testing.T) {
	store := NewWithDB(nil)
	_, err := store.Get(context.Background(), "")
	require.ErrorIs(t, err, repository.ErrInvalidInput)
	require.ErrorIs(t, store.Put(context.Background(), "", nil), repository.ErrInvalidInput)
}
