package services

import (
	"encoding/json"

	"github.com/Belphemur/StudentService/internal/models"
)

// NotificationSink receives the one-line operation messages shown to the user
type NotificationSink interface {
	Add(message string)
}

// StudentService forwards CRUD operations on the students collection to the REST API.
//
// Every operation returns a Deferred that starts the request when awaited or
// subscribed. Failures never reach the caller: they are logged, reported to the
// NotificationSink and replaced by a fallback (empty slice or absent value).
type StudentService interface {
	// GetStudents lists the whole collection
	GetStudents() *models.Deferred[[]models.Student]
	// GetStudentByID filters the collection by id and is absent when nothing matches
	GetStudentByID(id int) *models.Deferred[models.Optional[models.Student]]
	// GetStudent looks a student up by path; a 404 is handled like any other failure
	GetStudent(id int) *models.Deferred[models.Optional[models.Student]]
	// SearchStudents returns students whose name matches term; a blank term sends no request
	SearchStudents(term string) *models.Deferred[[]models.Student]
	// AddStudent creates a student and returns the record echoed by the server
	AddStudent(student models.Student) *models.Deferred[models.Optional[models.Student]]
	// DeleteStudent removes the referenced student
	DeleteStudent(ref models.StudentRef) *models.Deferred[models.Optional[models.Student]]
	// UpdateStudent replaces a student; the response body is server-defined
	UpdateStudent(student models.Student) *models.Deferred[models.Optional[json.RawMessage]]
}
