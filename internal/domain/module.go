package domain

// Module belongs to exactly one course and owns an ordered list of lessons.
type Module struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	CourseID  string   `json:"courseId"`
	LessonIDs []string `json:"lessonIds"`
}
