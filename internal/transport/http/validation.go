package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"coursehub/internal/pagination"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators makes field errors carry the `label` tag and adds the
// pagenum rule for page/limit query values.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
		_ = v.RegisterValidation("pagenum", func(fl validator.FieldLevel) bool {
			_, err := parsePageNumber(fl.Field().String())
			return err == nil
		})
	})
}

var (
	errNotNumber  = errors.New("not a number")
	errNotInteger = errors.New("not an integer")
	errBelowOne   = errors.New("below one")
)

func parsePageNumber(raw string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	if f != math.Trunc(f) {
		return 0, errNotInteger
	}
	if f < 1 {
		return 0, errBelowOne
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(f), nil
}

type pageQuery struct {
	Page  string `form:"page" binding:"omitempty,pagenum" label:"Page"`
	Limit string `form:"limit" binding:"omitempty,pagenum" label:"Limit"`
}

// values returns page and limit with defaults applied. Only call after the
// query passed validation.
func (q pageQuery) values() (int, int) {
	page, limit := pagination.DefaultPage, pagination.DefaultLimit
	if p, err := parsePageNumber(q.Page); err == nil {
		page = p
	}
	if l, err := parsePageNumber(q.Limit); err == nil {
		limit = l
	}
	return page, limit
}

// bindJSON treats an empty body as an empty object so that missing fields are
// reported one by one.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// validate runs every binder and answers 400 with all collected messages.
func validate(c *gin.Context, binders ...func() error) bool {
	var messages []string
	for _, bind := range binders {
		if err := bind(); err != nil {
			messages = append(messages, validationMessages(err)...)
		}
	}
	if len(messages) == 0 {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  statusError,
		"message": "Validation failed",
		"errors":  messages,
	})
	return false
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldMessage(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{typeMessage(typeErr)}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []string{"Request body must be valid JSON."}
	}
	return []string{err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		if label == "Topics" {
			return "Topics are required."
		}
		return label + " is required."
	case "min":
		return label + " cannot be empty."
	case "uuid", "uuid4":
		return label + " must be a valid UUID."
	case "oneof":
		return label + " must be one of 'text', 'video', or 'audio'."
	case "pagenum":
		raw, _ := fe.Value().(string)
		_, perr := parsePageNumber(raw)
		switch perr {
		case errNotInteger:
			return label + " must be an integer."
		case errBelowOne:
			return label + " must be at least 1."
		default:
			return label + " must be a number."
		}
	}
	return fmt.Sprintf("%s is invalid (%s).", label, fe.Tag())
}

var jsonLabels = map[string]string{
	"title":       "Title",
	"description": "Description",
	"courseId":    "Course ID",
	"moduleId":    "Module ID",
	"topics":      "Topics",
	"content":     "Content",
	"type":        "Content type",
	"data":        "Content data",
}

func typeMessage(e *json.UnmarshalTypeError) string {
	path := e.Field
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	label, ok := jsonLabels[path]
	if !ok {
		label = "Field " + e.Field
	}

	switch path {
	case "topics":
		return "Topics must be an array of strings."
	case "content":
		return "Content must be an array of LessonContent."
	}
	if e.Type != nil && e.Type.Kind() == reflect.String {
		return label + " must be a string."
	}
	return label + " has the wrong type."
}
