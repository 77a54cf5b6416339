package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSlotRepository(db)

	_, err := repo.Get(context.Background(), "@projects_v4")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestSlotRepository_PutOverwrites(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSlotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, "k", []byte(`[2]`)))

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `[2]`, string(got))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM state`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestSlotRepository_EmptyKey(t *testing.T) {
	repo := NewSlotRepository(NewTestDB(t))
	require.ErrorIs(t, repo.Put(context.Background(), "", []byte("x")), repository.ErrInvalidInput)
}

// TestSlotRepository_ProjectRoundTrip stores a collection through the query service and reads it back
func TestSlotRepository_ProjectRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSlotRepository(db)
	ctx := context.Background()

	svc := project.NewService(repo, project.Options{}, nil)
	seeded, err := svc.List(ctx)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "p2", project.StatusActive)
	require.NoError(t, err)

	raw, err := repo.Get(ctx, project.DefaultStorageKey)
	require.NoError(t, err)
	stored, err := project.Decode(raw)
	require.NoError(t, err)
	require.Len(t, stored, len(seeded))
	require.Equal(t, project.StatusActive, stored[1].Status)
	for i := range seeded {
		require.Equal(t, seeded[i].ID, stored[i].ID)
	}
}
