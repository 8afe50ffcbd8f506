package usecase

import (
	"context"
	"slices"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/repository"
	"coursehub/internal/pagination"

	"github.com/sirupsen/logrus"
)

type ModuleUseCase struct {
	catalogState
}

// Create adds a module to an existing course and links it from the course.
// Nothing is written when the course does not exist.
func (uc *ModuleUseCase) Create(ctx context.Context, courseID, title string) (*domain.Module, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return nil, err
	}
	ci := slices.IndexFunc(courses, func(c domain.Course) bool { return c.ID == courseID })
	if ci < 0 {
		return nil, domain.ErrCourseNotFound
	}

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return nil, err
	}

	module := domain.Module{
		ID:        uc.newID(),
		Title:     title,
		CourseID:  courseID,
		LessonIDs: []string{},
	}
	modules = append(modules, module)
	courses[ci].ModuleIDs = append(courses[ci].ModuleIDs, module.ID)

	if err := uc.store.Commit(ctx, repository.Modules(modules), repository.Courses(courses)); err != nil {
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{"course_id": courseID, "module_id": module.ID}).Info("module created")
	return &module, nil
}

func (uc *ModuleUseCase) List(ctx context.Context, courseID string, page, limit int) (pagination.Page[domain.Module], error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return pagination.Page[domain.Module]{}, err
	}
	owned := slices.DeleteFunc(modules, func(m domain.Module) bool { return m.CourseID != courseID })
	return pagination.Paginate(owned, page, limit), nil
}

func (uc *ModuleUseCase) Get(ctx context.Context, courseID, moduleID string) (*domain.Module, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(modules, matchModule(courseID, moduleID))
	if i < 0 {
		return nil, domain.ErrModuleNotFound
	}
	return &modules[i], nil
}

func (uc *ModuleUseCase) Update(ctx context.Context, courseID, moduleID, title string) (*domain.Module, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(modules, matchModule(courseID, moduleID))
	if i < 0 {
		return nil, domain.ErrModuleNotFound
	}

	modules[i].Title = title
	if err := uc.store.Commit(ctx, repository.Modules(modules)); err != nil {
		return nil, err
	}

	module := modules[i]
	return &module, nil
}

// Delete removes the module, unlinks it from its course and removes the
// module's lessons.
func (uc *ModuleUseCase) Delete(ctx context.Context, courseID, moduleID string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(modules, matchModule(courseID, moduleID))
	if i < 0 {
		return false, nil
	}
	modules = slices.Delete(modules, i, i+1)
	sets := []repository.Set{repository.Modules(modules)}

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return false, err
	}
	if ci := slices.IndexFunc(courses, func(c domain.Course) bool { return c.ID == courseID }); ci >= 0 {
		courses[ci].ModuleIDs = removeID(courses[ci].ModuleIDs, moduleID)
		sets = append(sets, repository.Courses(courses))
	}

	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return false, err
	}
	before := len(lessons)
	lessons = slices.DeleteFunc(lessons, func(l domain.Lesson) bool { return l.ModuleID == moduleID })
	if len(lessons) != before {
		sets = append(sets, repository.Lessons(lessons))
	}

	if err := uc.store.Commit(ctx, sets...); err != nil {
		return false, err
	}

	uc.log.WithFields(logrus.Fields{
		"course_id":       courseID,
		"module_id":       moduleID,
		"lessons_removed": before - len(lessons),
	}).Info("module deleted")
	return true, nil
}

func matchModule(courseID, moduleID string) func(domain.Module) bool {
	return func(m domain.Module) bool {
		return m.CourseID == courseID && m.ID == moduleID
	}
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
