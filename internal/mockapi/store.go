package mockapi

import (
	"slices"
	"strings"
	"sync"

	"github.com/Belphemur/StudentService/internal/apperrors"
	"github.com/Belphemur/StudentService/internal/models"
)

// SeedStudents is the collection the dev backend starts with.
var SeedStudents = []models.Student{
	{ID: 11, Name: "Mr. Nice"},
	{ID: 12, Name: "Narco"},
	{ID: 13, Name: "Bombasto"},
	{ID: 14, Name: "Celeritas"},
	{ID: 15, Name: "Magneta"},
	{ID: 16, Name: "RubberMan"},
	{ID: 17, Name: "Dynama"},
	{ID: 18, Name: "Dr IQ"},
	{ID: 19, Name: "Magma"},
	{ID: 20, Name: "Tornado"},
}

// Store is the in-memory students collection, ordered by insertion.
type Store struct {
	mu       sync.RWMutex
	students []models.Student
}

// NewStore creates a store holding a copy of seed.
func NewStore(seed []models.Student) *Store {
	return &Store{students: slices.Clone(seed)}
}

// List returns the students matching the optional filters.
// id matches exactly; name matches case-insensitively anywhere in the name.
func (s *Store) List(id *int, name string) []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	result := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		if id != nil && st.ID != *id {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(st.Name), needle) {
			continue
		}
		result = append(result, st)
	}
	return result
}

// Get returns the student with the given id.
func (s *Store) Get(id int) (models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.students[i], nil
	}
	return models.Student{}, apperrors.NewStudentNotFoundError(id)
}

// Upsert stores student, assigning the next id when it has none.
// It returns the stored record and whether it was newly created.
func (s *Store) Upsert(student models.Student) (models.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if student.ID == 0 {
		student.ID = s.nextID()
	}
	if i := s.indexOf(student.ID); i >= 0 {
		s.students[i] = student
		return student, false
	}
	s.students = append(s.students, student)
	return student, true
}

// Delete removes the student with the given id and reports whether it existed.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.students = slices.Delete(s.students, i, i+1)
	return true
}

// nextID returns one more than the highest id, or 11 for an empty collection.
func (s *Store) nextID() int {
	if len(s.students) == 0 {
		return 11
	}
	highest := 0
	for _, st := range s.students {
		highest = max(highest, st.ID)
	}
	return highest + 1
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.students, func(st models.Student) bool { return st.ID == id })
}
