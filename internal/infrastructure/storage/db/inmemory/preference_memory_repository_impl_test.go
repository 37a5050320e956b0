package inmemory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakedicp/wallet-client/internal/infrastructure/storage/db/inmemory"
)

func TestPreferenceRepositoryImpl(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewPreferenceRepositoryImpl()

	name, err := repo.GetLastConnector(ctx)
	require.NoError(t, err)
	require.Empty(t, name)

	require.NoError(t, repo.SetLastConnector(ctx, "Plug"))
	name, err = repo.GetLastConnector(ctx)
	require.NoError(t, err)
	require.Equal(t, "Plug", name)

	require.NoError(t, repo.DeleteLastConnector(ctx))
	name, err = repo.GetLastConnector(ctx)
	require.NoError(t, err)
	require.Empty(t, name)
	require.NoError(t, repo.Close())
}
