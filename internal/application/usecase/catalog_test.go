package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/repository"
	"coursehub/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingBackend records Write calls and can be told to fail.
type countingBackend struct {
	storage.Backend
	writes   atomic.Int32
	failRead error

	// beforeWrite runs at the start of every Write.
	beforeWrite func()
}

func (b *countingBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	if b.failRead != nil {
		return nil, b.failRead
	}
	return b.Backend.Read(ctx, collection)
}

func (b *countingBackend) Write(ctx context.Context, docs ...storage.Document) error {
	b.writes.Add(1)
	if b.beforeWrite != nil {
		b.beforeWrite()
	}
	return b.Backend.Write(ctx, docs...)
}

func newTestCatalog(t *testing.T) (*Catalog, *countingBackend) {
	t.Helper()
	fb, err := storage.NewFileBackend(t.TempDir(), repository.Collections)
	require.NoError(t, err)

	backend := &countingBackend{Backend: fb}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCatalog(repository.NewStore(backend), log), backend
}

func TestCatalogConcurrentCreatesKeepEveryCourse(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := catalog.Courses.Create(ctx, "t", "d")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	page, err := catalog.Courses.List(ctx, 1, 100)
	require.NoError(t, err)
	require.Equal(t, n, page.Total)
}

func TestCatalogPropagatesStorageErrors(t *testing.T) {
	ctx := context.Background()
	catalog, backend := newTestCatalog(t)
	boom := errors.New("disk on fire")
	backend.failRead = boom

	_, err := catalog.Courses.Create(ctx, "t", "d")
	require.ErrorIs(t, err, boom)

	_, err = catalog.Modules.List(ctx, "c", 1, 10)
	require.ErrorIs(t, err, boom)

	_, err = catalog.Lessons.Delete(ctx, "m", "l")
	require.ErrorIs(t, err, boom)
	require.Zero(t, backend.writes.Load())
}

func TestCatalogScenarioReactBasics(t *testing.T) {
	ctx := context.Background()
	catalog, _ := newTestCatalog(t)

	course, err := catalog.Courses.Create(ctx, "React Basics", "Learn React")
	require.NoError(t, err)

	module, err := catalog.Modules.Create(ctx, course.ID, "JSX")
	require.NoError(t, err)

	got, err := catalog.Courses.Get(ctx, course.ID)
	require.NoError(t, err)
	require.Equal(t, []string{module.ID}, got.ModuleIDs)

	lesson, err := catalog.Lessons.Create(ctx, module.ID, LessonInput{
		Title:       "Intro",
		Description: "d",
		Topics:      []string{"jsx"},
		Content:     []domain.LessonContent{{Type: domain.ContentText, Data: "..."}},
	})
	require.NoError(t, err)

	gotModule, err := catalog.Modules.Get(ctx, course.ID, module.ID)
	require.NoError(t, err)
	require.Equal(t, []string{lesson.ID}, gotModule.LessonIDs)

	deleted, err := catalog.Courses.Delete(ctx, course.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = catalog.Courses.Get(ctx, course.ID)
	require.ErrorIs(t, err, domain.ErrCourseNotFound)
	_, err = catalog.Modules.Get(ctx, course.ID, module.ID)
	require.ErrorIs(t, err, domain.ErrModuleNotFound)
	_, err = catalog.Lessons.Get(ctx, module.ID, lesson.ID)
	require.ErrorIs(t, err, domain.ErrLessonNotFound)
}
