// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bib2tree/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "index", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	refs := []types.Reference{
		{
			CiteKey: "zeta2020",
			Title:   "Zeta Functions",
			Authors: []string{"Ada Lovelace"},
			Date:    "2020-01-01",
			Path:    "trees/references/zeta2020.tree",
		},
		{
			CiteKey: "alpha2021",
			Title:   "Alpha Particles",
			Path:    "trees/references/alpha2021.tree",
		},
	}
	for _, ref := range refs {
		require.NoError(t, store.Record(ctx, ref))
	}

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Listing is in citekey order regardless of insertion order.
	assert.Equal(t, "alpha2021", got[0].CiteKey)
	assert.Equal(t, "zeta2020", got[1].CiteKey)
	assert.Equal(t, []string{"Ada Lovelace"}, got[1].Authors)
	assert.Equal(t, "2020-01-01", got[1].Date)
	assert.Equal(t, "trees/references/zeta2020.tree", got[1].Path)
}

func TestRecordUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ref := types.Reference{CiteKey: "doe2021", Title: "First Title", Path: "a.tree"}
	require.NoError(t, store.Record(ctx, ref))

	ref.Title = "Revised Title"
	ref.Path = "b.tree"
	require.NoError(t, store.Record(ctx, ref))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Revised Title", got[0].Title)
	assert.Equal(t, "b.tree", got[0].Path)
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)

	got, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
