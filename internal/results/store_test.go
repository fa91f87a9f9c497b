// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashowardhanspatil/cognemailAI/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows, err := s.Rows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStoreAppendKeepsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := []types.ResultRow{
		{Entity: "Acme Corp", ExtractedEmail: "acme@acmecorp.com (source: official site)"},
		{Entity: "Globex", ExtractedEmail: "info@globex.example"},
		{Entity: "Acme Corp", ExtractedEmail: "acme@acmecorp.com (source: official site)"},
	}
	for _, r := range want {
		require.NoError(t, s.Append(ctx, r))
	}

	got, err := s.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got, "duplicates are kept and order is preserved")

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStoresAreIndependent(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, a.Append(ctx, types.ResultRow{Entity: "A", ExtractedEmail: "a@a.com"}))

	n, err := b.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStoreAppendAfterClose(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Append(context.Background(), types.ResultRow{Entity: "x", ExtractedEmail: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `inserting result for "x"`)
}
