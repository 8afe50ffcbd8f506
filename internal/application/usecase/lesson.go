package usecase

import (
	"context"
	"slices"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/repository"
	"coursehub/internal/pagination"

	"github.com/sirupsen/logrus"
)

type LessonUseCase struct {
	catalogState
}

type LessonInput struct {
	Title       string
	Description string
	Topics      []string
	Content     []domain.LessonContent
}

// Create adds a lesson to an existing module and links it from the module.
// Nothing is written when the module does not exist.
func (uc *LessonUseCase) Create(ctx context.Context, moduleID string, in LessonInput) (*domain.Lesson, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return nil, err
	}
	mi := slices.IndexFunc(modules, func(m domain.Module) bool { return m.ID == moduleID })
	if mi < 0 {
		return nil, domain.ErrModuleNotFound
	}

	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return nil, err
	}

	lesson := domain.Lesson{ID: uc.newID(), ModuleID: moduleID}
	in.apply(&lesson)
	lessons = append(lessons, lesson)
	modules[mi].LessonIDs = append(modules[mi].LessonIDs, lesson.ID)

	if err := uc.store.Commit(ctx, repository.Lessons(lessons), repository.Modules(modules)); err != nil {
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{"module_id": moduleID, "lesson_id": lesson.ID}).Info("lesson created")
	return &lesson, nil
}

func (uc *LessonUseCase) List(ctx context.Context, moduleID string, page, limit int) (pagination.Page[domain.Lesson], error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return pagination.Page[domain.Lesson]{}, err
	}
	owned := slices.DeleteFunc(lessons, func(l domain.Lesson) bool { return l.ModuleID != moduleID })
	return pagination.Paginate(owned, page, limit), nil
}

func (uc *LessonUseCase) Get(ctx context.Context, moduleID, lessonID string) (*domain.Lesson, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(lessons, matchLesson(moduleID, lessonID))
	if i < 0 {
		return nil, domain.ErrLessonNotFound
	}
	return &lessons[i], nil
}

// Update replaces title, description, topics and content.
func (uc *LessonUseCase) Update(ctx context.Context, moduleID, lessonID string, in LessonInput) (*domain.Lesson, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(lessons, matchLesson(moduleID, lessonID))
	if i < 0 {
		return nil, domain.ErrLessonNotFound
	}

	in.apply(&lessons[i])
	if err := uc.store.Commit(ctx, repository.Lessons(lessons)); err != nil {
		return nil, err
	}

	lesson := lessons[i]
	return &lesson, nil
}

func (uc *LessonUseCase) Delete(ctx context.Context, moduleID, lessonID string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	lessons, err := uc.store.Lessons(ctx)
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(lessons, matchLesson(moduleID, lessonID))
	if i < 0 {
		return false, nil
	}
	lessons = slices.Delete(lessons, i, i+1)
	sets := []repository.Set{repository.Lessons(lessons)}

	modules, err := uc.store.Modules(ctx)
	if err != nil {
		return false, err
	}
	if mi := slices.IndexFunc(modules, func(m domain.Module) bool { return m.ID == moduleID }); mi >= 0 {
		modules[mi].LessonIDs = removeID(modules[mi].LessonIDs, lessonID)
		sets = append(sets, repository.Modules(modules))
	}

	if err := uc.store.Commit(ctx, sets...); err != nil {
		return false, err
	}

	uc.log.WithFields(logrus.Fields{"module_id": moduleID, "lesson_id": lessonID}).Info("lesson deleted")
	return true, nil
}

func (in LessonInput) apply(l *domain.Lesson) {
	l.Title = in.Title
	l.Description = in.Description
	l.Topics = in.Topics
	if l.Topics == nil {
		l.Topics = []string{}
	}
	l.Content = in.Content
	if l.Content == nil {
		l.Content = []domain.LessonContent{}
	}
}

func matchLesson(moduleID, lessonID string) func(domain.Lesson) bool {
	return func(l domain.Lesson) bool {
		return l.ModuleID == moduleID && l.ID == lessonID
	}
}
