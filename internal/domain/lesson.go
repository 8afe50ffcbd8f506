package domain

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
)

type LessonContent struct {
	Type ContentType `json:"type"`
	Data string      `json:"data"`
}

type Lesson struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Topics      []string        `json:"topics"`
	Content     []LessonContent `json:"content"`
	ModuleID    string          `json:"moduleId"`
}
