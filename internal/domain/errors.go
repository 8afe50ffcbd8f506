package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

var (
	ErrCourseNotFound = fmt.Errorf("course %w", ErrNotFound)
	ErrModuleNotFound = fmt.Errorf("module %w", ErrNotFound)
	ErrLessonNotFound = fmt.Errorf("lesson %w", ErrNotFound)
)
