// Package usecase implements course, module and lesson operations on top of
// whole-collection storage. Every mutation loads the collections it touches,
// changes them in memory and commits them back together.
package usecase

import (
	"sync"

	"coursehub/internal/infrastructure/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Catalog groups the three entity use cases. They share one lock, so
// load-modify-commit cycles inside this process never interleave. Other
// processes writing the same storage are not coordinated with.
type Catalog struct {
	Courses *CourseUseCase
	Modules *ModuleUseCase
	Lessons *LessonUseCase
}

type catalogState struct {
	store *repository.Store
	mu    *sync.RWMutex
	newID func() string
	log   *logrus.Logger
}

func NewCatalog(store *repository.Store, log *logrus.Logger) *Catalog {
	if log == nil {
		log = logrus.New()
	}
	st := catalogState{
		store: store,
		mu:    &sync.RWMutex{},
		newID: uuid.NewString,
		log:   log,
	}
	return &Catalog{
		Courses: &CourseUseCase{st},
		Modules: &ModuleUseCase{st},
		Lessons: &LessonUseCase{st},
	}
}
