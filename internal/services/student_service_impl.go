package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Belphemur/StudentService/internal/client"
	"github.com/Belphemur/StudentService/internal/config"
	"github.com/Belphemur/StudentService/internal/metrics"
	"github.com/Belphemur/StudentService/internal/models"
)

const messagePrefix = "StudentService: "

// errEmptyResponse is reported when the server acknowledges a create without echoing the record
var errEmptyResponse = errors.New("empty response body")

// studentService implements StudentService on top of a Transport
type studentService struct {
	transport   client.Transport
	sink        NotificationSink
	studentsURL string
	logger      zerolog.Logger
}

// NewStudentService creates a service for the collection at studentsURL (e.g. "http://host/api/students")
func NewStudentService(transport client.Transport, sink NotificationSink, studentsURL string) StudentService {
	return &studentService{
		transport:   transport,
		sink:        sink,
		studentsURL: strings.TrimRight(studentsURL, "/"),
		logger:      config.GetLogger(),
	}
}

func (s *studentService) GetStudents() *models.Deferred[[]models.Student] {
	// Sent when the operation is requested, before any response
	s.sink.Add(messagePrefix + "fetched students")

	return models.Defer(func(ctx context.Context) []models.Student {
		var students []models.Student
		err := s.request("getStudents", func() error {
			return s.transport.Get(ctx, s.studentsURL, &students)
		})
		if err != nil {
			return handleError(s, "getStudents", err, []models.Student{})
		}

		s.log("fetched students")
		return orEmpty(students)
	})
}

func (s *studentService) GetStudentByID(id int) *models.Deferred[models.Optional[models.Student]] {
	endpoint := fmt.Sprintf("%s/?id=%d", s.studentsURL, id)

	return models.Defer(func(ctx context.Context) models.Optional[models.Student] {
		var students []models.Student
		err := s.request("getStudentById", func() error {
			return s.transport.Get(ctx, endpoint, &students)
		})
		if err != nil {
			return handleError(s, fmt.Sprintf("getStudent id=%d", id), err, models.None[models.Student]())
		}

		// The filter yields zero or one element
		if len(students) == 0 {
			s.log(fmt.Sprintf("did not find student id=%d", id))
			return models.None[models.Student]()
		}
		s.log(fmt.Sprintf("fetched student id=%d", id))
		return models.Some(students[0])
	})
}

func (s *studentService) GetStudent(id int) *models.Deferred[models.Optional[models.Student]] {
	endpoint := fmt.Sprintf("%s/%d", s.studentsURL, id)

	return models.Defer(func(ctx context.Context) models.Optional[models.Student] {
		var student *models.Student
		err := s.request("getStudent", func() error {
			return s.transport.Get(ctx, endpoint, &student)
		})
		if err != nil {
			return handleError(s, fmt.Sprintf("getStudent id=%d", id), err, models.None[models.Student]())
		}

		s.log(fmt.Sprintf("fetched student id=%d", id))
		return fromPointer(student)
	})
}

func (s *studentService) SearchStudents(term string) *models.Deferred[[]models.Student] {
	if strings.TrimSpace(term) == "" {
		metrics.StudentRequestsTotal.WithLabelValues("searchStudents", metrics.StatusSkipped).Inc()
		return models.Resolved([]models.Student{})
	}
	endpoint := fmt.Sprintf("%s/?name=%s", s.studentsURL, url.QueryEscape(term))

	return models.Defer(func(ctx context.Context) []models.Student {
		var students []models.Student
		err := s.request("searchStudents", func() error {
			return s.transport.Get(ctx, endpoint, &students)
		})
		if err != nil {
			return handleError(s, "searchStudents", err, []models.Student{})
		}

		s.log(fmt.Sprintf(`found students matching "%s"`, term))
		return orEmpty(students)
	})
}

func (s *studentService) AddStudent(student models.Student) *models.Deferred[models.Optional[models.Student]] {
	return models.Defer(func(ctx context.Context) models.Optional[models.Student] {
		var created *models.Student
		err := s.request("addStudent", func() error {
			if err := s.transport.Post(ctx, s.studentsURL, student, &created); err != nil {
				return err
			}
			if created == nil {
				return errEmptyResponse
			}
			return nil
		})
		if err != nil {
			return handleError(s, "addStudent", err, models.None[models.Student]())
		}

		s.log(fmt.Sprintf("added student w/ id=%d", created.ID))
		return models.Some(*created)
	})
}

func (s *studentService) DeleteStudent(ref models.StudentRef) *models.Deferred[models.Optional[models.Student]] {
	id := ref.ID()
	endpoint := fmt.Sprintf("%s/%d", s.studentsURL, id)

	return models.Defer(func(ctx context.Context) models.Optional[models.Student] {
		var deleted *models.Student
		err := s.request("deleteStudent", func() error {
			return s.transport.Delete(ctx, endpoint, &deleted)
		})
		if err != nil {
			return handleError(s, "deleteStudent", err, models.None[models.Student]())
		}

		s.log(fmt.Sprintf("deleted student id=%d", id))
		return fromPointer(deleted)
	})
}

func (s *studentService) UpdateStudent(student models.Student) *models.Deferred[models.Optional[json.RawMessage]] {
	return models.Defer(func(ctx context.Context) models.Optional[json.RawMessage] {
		var raw json.RawMessage
		err := s.request("updateStudent", func() error {
			return s.transport.Put(ctx, s.studentsURL, student, &raw)
		})
		if err != nil {
			return handleError(s, "updateStudent", err, models.None[json.RawMessage]())
		}

		s.log(fmt.Sprintf("updated student id=%d", student.ID))
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return models.None[json.RawMessage]()
		}
		return models.Some(raw)
	})
}

// request runs one transport call and records its outcome under op
func (s *studentService) request(op string, call func() error) error {
	start := time.Now()
	err := call()
	metrics.StudentRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.StudentRequestsTotal.WithLabelValues(op, status).Inc()
	return err
}

func (s *studentService) log(message string) {
	s.sink.Add(messagePrefix + message)
}

// handleError reports a failed operation and lets the caller carry on with fallback
func handleError[T any](s *studentService, operation string, err error, fallback T) T {
	s.logger.Error().Err(err).Str("operation", operation).Msg("Student request failed")
	s.log(fmt.Sprintf("%s failed: %s", operation, err.Error()))
	return fallback
}

func fromPointer(student *models.Student) models.Optional[models.Student] {
	if student == nil {
		return models.None[models.Student]()
	}
	return models.Some(*student)
}

func orEmpty(students []models.Student) []models.Student {
	if students == nil {
		return []models.Student{}
	}
	return students
}
