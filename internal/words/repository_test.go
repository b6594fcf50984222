package words_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/db"
	"github.com/robalobadob/hangman/internal/words"
)

func openRepo(t *testing.T) *words.Repository {
	t.Helper()
	sqlDB, err := db.OpenAndMigrate(context.Background(), filepath.Join(t.TempDir(), "words.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return words.NewRepository(sqlDB)
}

func TestRepositoryImportAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	added, err := repo.Import(ctx, []string{"alien", "rocky", "up", "ALIEN", "x-men"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = repo.Import(ctx, []string{"Rocky", "batman"})
	require.NoError(t, err)
	assert.Equal(t, 1, added, "known words are ignored")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ALIEN", "ROCKY", "BATMAN"}, list)

	c, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Stats().Total)

	w, err := c.PickWord(6, 7)
	require.NoError(t, err)
	assert.Equal(t, "BATMAN", w)
}

func TestRepositoryLoadEmpty(t *testing.T) {
	_, err := openRepo(t).Load(context.Background())
	assert.ErrorIs(t, err, words.ErrEmptyCorpus)
}
