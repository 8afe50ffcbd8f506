package usecase

import (
	"context"
	"testing"

	"coursehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModule(t *testing.T, catalog *Catalog) *domain.Module {
	t.Helper()
	ctx := context.Background()
	course, err := catalog.Courses.Create(ctx, "c", "d")
	require.NoError(t, err)
	module, err := catalog.Modules.Create(ctx, course.ID, "m")
	require.NoError(t, err)
	return module
}

func TestLessonCreateRejectsUnknownModule(t *testing.T) {
	catalog, backend := newTestCatalog(t)

	_, err := catalog.Lessons.Create(context.Background(), "nope", LessonInput{Title: "t", Description: "d"})
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
	assert.Zero(t, backend.writes.Load())
}

func TestLessonCreateLinksModule(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)
	module := newModule(t, catalog)

	in := LessonInput{
		Title:       "Intro",
		Description: "d",
		Topics:      []string{"a", "b"},
		Content:     []domain.LessonContent{{Type: domain.ContentAudio, Data: "file.mp3"}},
	}
	lesson, err := catalog.Lessons.Create(ctx, module.ID, in)
	require.NoError(t, err)
	assert.Equal(t, module.ID, lesson.ModuleID)

	got, err := catalog.Lessons.Get(ctx, module.ID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Topics, got.Topics)
	assert.Equal(t, in.Content, got.Content)

	m, err := catalog.Modules.Get(ctx, module.CourseID, module.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{lesson.ID}, m.LessonIDs)
}

func TestLessonGetRequiresBothIDs(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)
	module := newModule(t, catalog)

	lesson, err := catalog.Lessons.Create(ctx, module.ID, LessonInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = catalog.Lessons.Get(ctx, "other-module", lesson.ID)
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
}

func TestLessonListFiltersByModule(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)
	a := newModule(t, catalog)
	b := newModule(t, catalog)

	for i := 0; i < 3; i++ {
		_, err := catalog.Lessons.Create(ctx, a.ID, LessonInput{Title: "a", Description: "d"})
		require.NoError(t, err)
	}
	_, err := catalog.Lessons.Create(ctx, b.ID, LessonInput{Title: "b", Description: "d"})
	require.NoError(t, err)

	page, err := catalog.Lessons.List(ctx, a.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)
}

func TestLessonUpdateReplacesFields(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)
	module := newModule(t, catalog)

	lesson, err := catalog.Lessons.Create(ctx, module.ID, LessonInput{
		Title:       "old",
		Description: "old",
		Topics:      []string{"x"},
		Content:     []domain.LessonContent{{Type: domain.ContentText, Data: "x"}},
	})
	require.NoError(t, err)

	updated, err := catalog.Lessons.Update(ctx, module.ID, lesson.ID, LessonInput{
		Title:       "new",
		Description: "new desc",
		Topics:      []string{"y", "z"},
		Content:     []domain.LessonContent{{Type: domain.ContentVideo, Data: "v"}},
	})
	require.NoError(t, err)
	assert.Equal(t, lesson.ID, updated.ID)
	assert.Equal(t, module.ID, updated.ModuleID)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, []string{"y", "z"}, updated.Topics)
	assert.Equal(t, domain.ContentVideo, updated.Content[0].Type)

	_, err = catalog.Lessons.Update(ctx, "other", lesson.ID, LessonInput{Title: "t"})
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
}

func TestLessonDeleteUnlinksModule(t *testing.T) {
	ctx := context.Background()
	catalog, backend := newTestCatalog(t)
	module := newModule(t, catalog)

	keep, err := catalog.Lessons.Create(ctx, module.ID, LessonInput{Title: "keep", Description: "d"})
	require.NoError(t, err)
	drop, err := catalog.Lessons.Create(ctx, module.ID, LessonInput{Title: "drop", Description: "d"})
	require.NoError(t, err)

	ok, err := catalog.Lessons.Delete(ctx, module.ID, drop.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	m, err := catalog.Modules.Get(ctx, module.CourseID, module.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, m.LessonIDs)

	writes := backend.writes.Load()
	ok, err = catalog.Lessons.Delete(ctx, module.ID, drop.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, backend.writes.Load())
}
