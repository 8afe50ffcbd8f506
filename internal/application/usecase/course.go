package usecase

import (
	"context"
	"slices"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/repository"
	"coursehub/internal/pagination"

	"github.com/sirupsen/logrus"
)

type CourseUseCase struct {
	catalogState
}

func (uc *CourseUseCase) Create(ctx context.Context, title, description string) (*domain.Course, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return nil, err
	}

	course := domain.Course{
		ID:          uc.newID(),
		Title:       title,
		Description: description,
		ModuleIDs:   []string{},
	}
	courses = append(courses, course)

	if err := uc.store.Commit(ctx, repository.Courses(courses)); err != nil {
		return nil, err
	}

	uc.log.WithField("course_id", course.ID).Info("course created")
	return &course, nil
}

func (uc *CourseUseCase) List(ctx context.Context, page, limit int) (pagination.Page[domain.Course], error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return pagination.Page[domain.Course]{}, err
	}
	return pagination.Paginate(courses, page, limit), nil
}

// ListWithDetails pages through courses and resolves their modules and
// lessons. Ids that no longer resolve are skipped.
func (uc *CourseUseCase) ListWithDetails(ctx context.Context, page, limit int) (pagination.Page[domain.CourseDetails], error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return pagination.Page[domain.CourseDetails]{}, err
	}
	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return pagination.Page[domain.CourseDetails]{}, err
	}
	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return pagination.Page[domain.CourseDetails]{}, err
	}

	moduleByID := make(map[string]domain.Module, len(modules))
	for _, m := range modules {
		moduleByID[m.ID] = m
	}
	lessonByID := make(map[string]domain.Lesson, len(lessons))
	for _, l := range lessons {
		lessonByID[l.ID] = l
	}

	p := pagination.Paginate(courses, page, limit)
	details := make([]domain.CourseDetails, 0, len(p.Items))
	for _, c := range p.Items {
		cd := domain.CourseDetails{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Modules:     []domain.ModuleDetails{},
		}
		for _, moduleID := range c.ModuleIDs {
			m, ok := moduleByID[moduleID]
			if !ok {
				continue
			}
			md := domain.ModuleDetails{
				ModuleID: m.ID,
				Title:    m.Title,
				Lessons:  []domain.LessonDetails{},
			}
			for _, lessonID := range m.LessonIDs {
				l, ok := lessonByID[lessonID]
				if !ok {
					continue
				}
				md.Lessons = append(md.Lessons, domain.LessonDetails{
					LessonID:    l.ID,
					Title:       l.Title,
					Description: l.Description,
					Topics:      l.Topics,
					Content:     l.Content,
				})
			}
			cd.Modules = append(cd.Modules, md)
		}
		details = append(details, cd)
	}

	return pagination.Page[domain.CourseDetails]{
		Items:      details,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}, nil
}

func (uc *CourseUseCase) Get(ctx context.Context, id string) (*domain.Course, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(courses, func(c domain.Course) bool { return c.ID == id })
	if i < 0 {
		return nil, domain.ErrCourseNotFound
	}
	return &courses[i], nil
}

// Update replaces title and description. ModuleIDs are left as they are.
func (uc *CourseUseCase) Update(ctx context.Context, id, title, description string) (*domain.Course, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(courses, func(c domain.Course) bool { return c.ID == id })
	if i < 0 {
		return nil, domain.ErrCourseNotFound
	}

	courses[i].Title = title
	courses[i].Description = description
	if err := uc.store.Commit(ctx, repository.Courses(courses)); err != nil {
		return nil, err
	}

	course := courses[i]
	return &course, nil
}

// Delete removes the course together with its modules and their lessons.
// It reports false, without writing anything, when the course does not exist.
func (uc *CourseUseCase) Delete(ctx context.Context, id string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	courses, err := uc.store.Courses(ctx)
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(courses, func(c domain.Course) bool { return c.ID == id })
	if i < 0 {
		return false, nil
	}
	courses = slices.Delete(courses, i, i+1)

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return false, err
	}
	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return false, err
	}

	removed := make(map[string]struct{})
	modules = slices.DeleteFunc(modules, func(m domain.Module) bool {
		if m.CourseID != id {
			return false
		}
		removed[m.ID] = struct{}{}
		return true
	})
	before := len(lessons)
	lessons = slices.DeleteFunc(lessons, func(l domain.Lesson) bool {
		_, gone := removed[l.ModuleID]
		return gone
	})

	err = uc.store.Commit(ctx,
		repository.Courses(courses),
		repository.Modules(modules),
		repository.Lessons(lessons),
	)
	if err != nil {
		return false, err
	}

	uc.log.WithFields(logrus.Fields{
		"course_id":       id,
		"modules_removed": len(removed),
		"lessons_removed": before - len(lessons),
	}).Info("course deleted")
	return true, nil
}
