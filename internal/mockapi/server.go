// Package mockapi serves an in-memory students collection with the REST
// conventions the student service expects, for local development and tests.
package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Belphemur/StudentService/internal/apperrors"
	"github.com/Belphemur/StudentService/internal/config"
	"github.com/Belphemur/StudentService/internal/models"
)

// CollectionPath is where the students collection is mounted.
const CollectionPath = "/api/students"

// Server exposes a Store over HTTP.
type Server struct {
	store  *Store
	engine *gin.Engine
}

// NewServer builds the gin engine serving store.
func NewServer(store *Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{store: store, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLogger())

	students := s.engine.Group(CollectionPath)
	{
		students.GET("", s.listStudents)
		students.POST("", s.createStudent)
		students.PUT("", s.updateStudent)
		students.GET("/:id", s.getStudent)
		students.DELETE("/:id", s.deleteStudent)
	}

	return s
}

// Handler returns the HTTP handler. A trailing slash on any path is ignored,
// so "/api/students/?id=1" reaches the collection.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimRight(r.URL.Path, "/")
			r.URL.RawPath = ""
		}
		s.engine.ServeHTTP(w, r)
	})
}

// listStudents handles GET /api/students with optional ?id= and ?name= filters
func (s *Server) listStudents(c *gin.Context) {
	var id *int
	if raw, ok := c.GetQuery("id"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
			return
		}
		id = &parsed
	}

	c.JSON(http.StatusOK, s.store.List(id, c.Query("name")))
}

// getStudent handles GET /api/students/:id
func (s *Server) getStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	student, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, &apperrors.ErrNotFound{}) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve student"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// createStudent handles POST /api/students
func (s *Server) createStudent(c *gin.Context) {
	student, ok := bindStudent(c)
	if !ok {
		return
	}

	stored, created := s.store.Upsert(student)
	if !created {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// updateStudent handles PUT /api/students; the id comes from the body
func (s *Server) updateStudent(c *gin.Context) {
	student, ok := bindStudent(c)
	if !ok {
		return
	}
	if student.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing student id"})
		return
	}

	stored, created := s.store.Upsert(student)
	if created {
		c.JSON(http.StatusCreated, stored)
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteStudent handles DELETE /api/students/:id; deleting an unknown id succeeds
func (s *Server) deleteStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.store.Delete(id)
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

func bindStudent(c *gin.Context) (models.Student, bool) {
	var student models.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student payload"})
		return models.Student{}, false
	}
	return student, true
}

// requestLogger logs every request through the application logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger := config.GetLogger()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Str("requestID", c.GetHeader("X-Request-ID")).
			Int("status", c.Writer.Status()).
			Msg("Handled request")
	}
}
