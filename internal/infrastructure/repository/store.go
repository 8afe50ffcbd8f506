package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/storage"
)

const (
	CoursesCollection = "courses"
	ModulesCollection = "modules"
	LessonsCollection = "lessons"
)

// Collections lists every collection the store reads and writes.
var Collections = []string{CoursesCollection, ModulesCollection, LessonsCollection}

// Store decodes and encodes whole collections on top of a storage backend.
type Store struct {
	backend storage.Backend
}

func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) Courses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if err := s.load(ctx, CoursesCollection, &courses); err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ModuleIDs == nil {
			courses[i].ModuleIDs = []string{}
		}
	}
	return courses, nil
}

func (s *Store) Modules(ctx context.Context) ([]domain.Module, error) {
	var modules []domain.Module
	if err := s.load(ctx, ModulesCollection, &modules); err != nil {
		return nil, err
	}
	for i := range modules {
		if modules[i].LessonIDs == nil {
			modules[i].LessonIDs = []string{}
		}
	}
	return modules, nil
}

func (s *Store) Lessons(ctx context.Context) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	if err := s.load(ctx, LessonsCollection, &lessons); err != nil {
		return nil, err
	}
	for i := range lessons {
		if lessons[i].Topics == nil {
			lessons[i].Topics = []string{}
		}
		if lessons[i].Content == nil {
			lessons[i].Content = []domain.LessonContent{}
		}
	}
	return lessons, nil
}

func (s *Store) load(ctx context.Context, collection string, dst any) error {
	data, err := s.backend.Read(ctx, collection)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Set is one collection scheduled for a Commit.
type Set struct {
	collection string
	value      any
}

func Courses(courses []domain.Course) Set {
	if courses == nil {
		courses = []domain.Course{}
	}
	return Set{collection: CoursesCollection, value: courses}
}

func Modules(modules []domain.Module) Set {
	if modules == nil {
		modules = []domain.Module{}
	}
	return Set{collection: ModulesCollection, value: modules}
}

func Lessons(lessons []domain.Lesson) Set {
	if lessons == nil {
		lessons = []domain.Lesson{}
	}
	return Set{collection: LessonsCollection, value: lessons}
}

// Commit encodes every set and hands them to the backend in one Write. The
// write ignores cancellation of ctx, so a caller that goes away mid-commit
// cannot leave some collections updated and others not.
func (s *Store) Commit(ctx context.Context, sets ...Set) error {
	docs := make([]storage.Document, 0, len(sets))
	for _, set := range sets {
		data, err := json.MarshalIndent(set.value, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", set.collection, err)
		}
		docs = append(docs, storage.Document{Collection: set.collection, Data: data})
	}
	return s.backend.Write(context.WithoutCancel(ctx), docs...)
}
