package domain

type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ModuleIDs   []string `json:"moduleIds"`
}

// CourseDetails is the nested read model served by /courses/details.
type CourseDetails struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Modules     []ModuleDetails `json:"modules"`
}

type ModuleDetails struct {
	ModuleID string          `json:"moduleId"`
	Title    string          `json:"title"`
	Lessons  []LessonDetails `json:"lessons"`
}

type LessonDetails struct {
	LessonID    string          `json:"lessonId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Topics      []string        `json:"topics"`
	Content     []LessonContent `json:"content"`
}
