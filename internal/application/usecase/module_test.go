package usecase

import (
	"context"
	"testing"

	"coursehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleCreateRejectsUnknownCourse(t *testing.T) {
	ctx := context.Background()
	catalog, backend := newTestCatalog(t)

	_, err := catalog.Modules.Create(ctx, "no-such-course", "m")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	assert.Zero(t, backend.writes.Load())

	modules, err := catalog.Modules.List(ctx, "no-such-course", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, modules.Total)
}

func TestModuleCreateLinksCourse(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)

	course, err := catalog.Courses.Create(ctx, "c", "d")
	require.NoError(t, err)
	first, err := catalog.Modules.Create(ctx, course.ID, "first")
	require.NoError(t, err)
	second, err := catalog.Modules.Create(ctx, course.ID, "second")
	require.NoError(t, err)

	assert.Equal(t, course.ID, first.CourseID)
	assert.NotNil(t, first.LessonIDs)
	assert.Empty(t, first.LessonIDs)

	got, err := catalog.Courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, got.ModuleIDs)
}

func TestModuleListFiltersByCourse(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)

	a, err := catalog.Courses.Create(ctx, "a", "d")
	require.NoError(t, err)
	b, err := catalog.Courses.Create(ctx, "b", "d")
	require.NoError(t, err)
	for _, title := range []string{"a1", "a2", "a3"} {
		_, err := catalog.Modules.Create(ctx, a.ID, title)
		require.NoError(t, err)
	}
	_, err = catalog.Modules.Create(ctx, b.ID, "b1")
	require.NoError(t, err)

	page, err := catalog.Modules.List(ctx, a.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a3", page.Items[0].Title)
}

func TestModuleUpdateRequiresBothIDs(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)

	course, err := catalog.Courses.Create(ctx, "c", "d")
	require.NoError(t, err)
	other, err := catalog.Courses.Create(ctx, "other", "d")
	require.NoError(t, err)
	module, err := catalog.Modules.Create(ctx, course.ID, "before")
	require.NoError(t, err)

	_, err = catalog.Modules.Update(ctx, other.ID, module.ID, "after")
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)

	updated, err := catalog.Modules.Update(ctx, course.ID, module.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, module.LessonIDs, updated.LessonIDs)
}

func TestModuleDeleteUnlinksAndCascades(t *testing.T) {
	ctx := context.Background()
	catalog, backend := newTestCatalog(t)

	course, err := catalog.Courses.Create(ctx, "c", "d")
	require.NoError(t, err)
	module, err := catalog.Modules.Create(ctx, course.ID, "m")
	require.NoError(t, err)
	lesson, err := catalog.Lessons.Create(ctx, module.ID, LessonInput{Title: "l", Description: "d"})
	require.NoError(t, err)

	ok, err := catalog.Modules.Delete(ctx, "wrong-course", module.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = catalog.Modules.Delete(ctx, course.ID, module.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := catalog.Courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ModuleIDs)

	_, err = catalog.Lessons.Get(ctx, module.ID, lesson.ID)
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)

	writes := backend.writes.Load()
	ok, err = catalog.Modules.Delete(ctx, course.ID, module.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, backend.writes.Load())
}
