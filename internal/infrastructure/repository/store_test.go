package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := storage.NewFileBackend(dir, Collections)
	require.NoError(t, err)
	return NewStore(backend), dir
}

func TestStoreCommitAndLoad(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	err := store.Commit(ctx,
		Courses([]domain.Course{{ID: "c1", Title: "Go", Description: "d", ModuleIDs: []string{"m1"}}}),
		Modules([]domain.Module{{ID: "m1", Title: "Basics", CourseID: "c1", LessonIDs: []string{}}}),
	)
	require.NoError(t, err)

	courses, err := store.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, []string{"m1"}, courses[0].ModuleIDs)

	modules, err := store.Modules(ctx)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "c1", modules[0].CourseID)

	lessons, err := store.Lessons(ctx)
	require.NoError(t, err)
	assert.Empty(t, lessons)
}

func TestStoreEncodesNilAsEmptyArray(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)

	require.NoError(t, store.Commit(ctx, Lessons(nil)))

	data, err := os.ReadFile(filepath.Join(dir, "lessons.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestStoreNormalizesNullReferenceLists(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)
	raw := `[{"id":"c1","title":"t","description":"d","moduleIds":null}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courses.json"), []byte(raw), 0o644))

	courses, err := store.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.NotNil(t, courses[0].ModuleIDs)
	assert.Empty(t, courses[0].ModuleIDs)
}

func TestStoreMalformedDocument(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modules.json"), []byte(`{not json`), 0o644))

	_, err := store.Modules(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode modules")
}
