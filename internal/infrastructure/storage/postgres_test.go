package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()

	b, err := NewPostgresBackend(ctx, dsn, []string{"courses", "modules"})
	require.NoError(t, err)
	defer b.Close()

	err = b.Write(ctx,
		Document{Collection: "courses", Data: []byte(`[{"id":"c"}]`)},
		Document{Collection: "modules", Data: []byte(`[]`)},
	)
	require.NoError(t, err)

	data, err := b.Read(ctx, "courses")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c"}]`, string(data))

	_, err = b.Read(ctx, "does_not_exist")
	assert.ErrorIs(t, err, ErrMissingCollection)
}
