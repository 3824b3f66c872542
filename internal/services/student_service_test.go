package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Belphemur/StudentService/internal/models"
	"github.com/Belphemur/StudentService/internal/testutil"
)

const testBaseURL = "http://api.test/api/students"

func newTestService(respond testutil.Responder) (*studentService, *testutil.FakeTransport, *testutil.RecordingSink, *bytes.Buffer) {
	transport := &testutil.FakeTransport{Respond: respond}
	sink := &testutil.RecordingSink{}
	svc := NewStudentService(transport, sink, testBaseURL+"/").(*studentService)

	diagnostics := &bytes.Buffer{}
	svc.logger = zerolog.New(diagnostics)
	return svc, transport, sink, diagnostics
}

func failWith(message string) testutil.Responder {
	return func(context.Context, testutil.Call) (any, error) {
		return nil, errors.New(message)
	}
}

func respondWith(payload any) testutil.Responder {
	return func(context.Context, testutil.Call) (any, error) {
		return payload, nil
	}
}

var heroes = []models.Student{
	{ID: 12, Name: "Narco"},
	{ID: 11, Name: "Dr Nice"},
	{ID: 13, Name: "Bombasto"},
}

func TestGetStudents_ReturnsTransportPayloadUnchanged(t *testing.T) {
	svc, transport, sink, _ := newTestService(respondWith(heroes))

	got := svc.GetStudents().Await(context.Background())

	assert.Equal(t, heroes, got)
	require.Len(t, transport.Calls(), 1)
	assert.Equal(t, testutil.Call{Method: "GET", URL: testBaseURL}, transport.Calls()[0])
	assert.Equal(t, []string{
		"StudentService: fetched students",
		"StudentService: fetched students",
	}, sink.Messages())
}

func TestGetStudents_NotifiesBeforeSubscription(t *testing.T) {
	svc, transport, sink, _ := newTestService(respondWith(heroes))

	deferred := svc.GetStudents()

	assert.Empty(t, transport.Calls(), "no request before Await")
	assert.Equal(t, []string{"StudentService: fetched students"}, sink.Messages())

	<-deferred.Subscribe(context.Background())
	assert.Len(t, transport.Calls(), 1)
}

func TestGetStudents_FailureYieldsEmptySlice(t *testing.T) {
	svc, _, sink, diagnostics := newTestService(failWith("boom"))

	got := svc.GetStudents().Await(context.Background())

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, []string{
		"StudentService: fetched students",
		"StudentService: getStudents failed: boom",
	}, sink.Messages())
	assert.Contains(t, diagnostics.String(), "boom")
}

func TestGetStudents_NullBodyYieldsEmptySlice(t *testing.T) {
	svc, _, _, _ := newTestService(respondWith(nil))

	got := svc.GetStudents().Await(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetStudentByID_Found(t *testing.T) {
	svc, transport, sink, _ := newTestService(respondWith([]models.Student{{ID: 11, Name: "Dr Nice"}}))

	got := svc.GetStudentByID(11).Await(context.Background())

	student, ok := got.Get()
	require.True(t, ok)
	assert.Equal(t, "Dr Nice", student.Name)
	assert.Equal(t, testBaseURL+"/?id=11", transport.Calls()[0].URL)
	assert.Equal(t, []string{"StudentService: fetched student id=11"}, sink.Messages())
}

func TestGetStudentByID_NotFound(t *testing.T) {
	svc, _, sink, _ := newTestService(respondWith([]models.Student{}))

	got := svc.GetStudentByID(404).Await(context.Background())

	assert.False(t, got.Present)
	assert.Equal(t, []string{"StudentService: did not find student id=404"}, sink.Messages())
}

func TestGetStudentByID_Failure(t *testing.T) {
	svc, _, sink, _ := newTestService(failWith("offline"))

	got := svc.GetStudentByID(3).Await(context.Background())

	assert.False(t, got.Present)
	assert.Equal(t, []string{"StudentService: getStudent id=3 failed: offline"}, sink.Messages())
}

func TestGetStudent_Found(t *testing.T) {
	svc, transport, sink, _ := newTestService(respondWith(models.Student{ID: 15, Name: "Magneta"}))

	got := svc.GetStudent(15).Await(context.Background())

	assert.Equal(t, models.Some(models.Student{ID: 15, Name: "Magneta"}), got)
	assert.Equal(t, testutil.Call{Method: "GET", URL: testBaseURL + "/15"}, transport.Calls()[0])
	assert.Equal(t, []string{"StudentService: fetched student id=15"}, sink.Messages())
}

func TestGetStudent_NotFoundIsAGenericFailure(t *testing.T) {
	svc, _, sink, diagnostics := newTestService(failWith("Not Found"))

	got := svc.GetStudent(99).Await(context.Background())

	assert.False(t, got.Present)
	assert.Equal(t, []string{"StudentService: getStudent id=99 failed: Not Found"}, sink.Messages())
	assert.Contains(t, diagnostics.String(), "Not Found")
	assert.Contains(t, diagnostics.String(), "getStudent id=99")
}

func TestSearchStudents_BlankTermSendsNothing(t *testing.T) {
	for _, term := range []string{"", "   ", "\t\n"} {
		svc, transport, sink, _ := newTestService(respondWith(heroes))

		got := svc.SearchStudents(term).Await(context.Background())

		assert.NotNil(t, got)
		assert.Empty(t, got, "term %q", term)
		assert.Empty(t, transport.Calls(), "term %q", term)
		assert.Empty(t, sink.Messages(), "term %q", term)
	}
}

func TestSearchStudents_ReturnsMatches(t *testing.T) {
	matches := []models.Student{{ID: 13, Name: "Bombasto"}, {ID: 14, Name: "Celeritas"}}
	svc, transport, sink, _ := newTestService(respondWith(matches))

	got := svc.SearchStudents("as").Await(context.Background())

	assert.Equal(t, matches, got)
	assert.Equal(t, testBaseURL+"/?name=as", transport.Calls()[0].URL)
	assert.Equal(t, []string{`StudentService: found students matching "as"`}, sink.Messages())
}

func TestSearchStudents_EscapesTerm(t *testing.T) {
	svc, transport, _, _ := newTestService(respondWith([]models.Student{}))

	svc.SearchStudents("Dr Nice&x").Await(context.Background())

	assert.Equal(t, testBaseURL+"/?name=Dr+Nice%26x", transport.Calls()[0].URL)
}

func TestSearchStudents_FailureYieldsEmptySlice(t *testing.T) {
	svc, _, sink, _ := newTestService(failWith("timeout"))

	got := svc.SearchStudents("x").Await(context.Background())

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, []string{"StudentService: searchStudents failed: timeout"}, sink.Messages())
}

func TestAddStudent_UsesServerEcho(t *testing.T) {
	svc, transport, sink, _ := newTestService(respondWith(models.Student{ID: 7, Name: "Ann"}))

	got := svc.AddStudent(models.Student{Name: "Ann"}).Await(context.Background())

	assert.Equal(t, models.Some(models.Student{ID: 7, Name: "Ann"}), got)
	require.Len(t, transport.Calls(), 1)
	call := transport.Calls()[0]
	assert.Equal(t, "POST", call.Method)
	assert.Equal(t, testBaseURL, call.URL)
	assert.Equal(t, models.Student{Name: "Ann"}, call.Body)
	assert.Equal(t, []string{"StudentService: added student w/ id=7"}, sink.Messages())
}

func TestAddStudent_Failure(t *testing.T) {
	svc, _, sink, _ := newTestService(failWith("conflict"))

	got := svc.AddStudent(models.Student{Name: "Ann"}).Await(context.Background())

	assert.False(t, got.Present)
	assert.Equal(t, []string{"StudentService: addStudent failed: conflict"}, sink.Messages())
}

func TestAddStudent_EmptyEchoIsAFailure(t *testing.T) {
	svc, _, sink, _ := newTestService(respondWith(nil))

	got := svc.AddStudent(models.Student{Name: "Ann"}).Await(context.Background())

	assert.False(t, got.Present)
	assert.Equal(t, []string{"StudentService: addStudent failed: empty response body"}, sink.Messages())
}

func TestDeleteStudent_ByIDAndByRecordHitSameURL(t *testing.T) {
	svc, transport, sink, _ := newTestService(nil)

	svc.DeleteStudent(models.RefID(42)).Await(context.Background())
	svc.DeleteStudent(models.RefStudent(models.Student{ID: 42, Name: "X"})).Await(context.Background())

	calls := transport.Calls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.Equal(t, "DELETE", call.Method)
		assert.Equal(t, testBaseURL+"/42", call.URL)
	}
	assert.Equal(t, []string{
		"StudentService: deleted student id=42",
		"StudentService: deleted student id=42",
	}, sink.Messages())
}

func TestDeleteStudent_ReturnsEchoedRecord(t *testing.T) {
	svc, _, _, _ := newTestService(respondWith(models.Student{ID: 42, Name: "X"}))

	got := svc.DeleteStudent(models.RefID(42)).Await(context.Background())
	assert.Equal(t, models.Some(models.Student{ID: 42, Name: "X"}), got)
}

func TestDeleteStudent_Failure(t *testing.T) {
	svc, _, sink, _ := newTestService(failWith("gone"))

	got := svc.DeleteStudent(models.RefID(1)).Await(context.Background())

	assert.False(t, got.Present)
	assert.Equal(t, []string{"StudentService: deleteStudent failed: gone"}, sink.Messages())
}

func TestUpdateStudent(t *testing.T) {
	svc, transport, sink, _ := newTestService(nil)

	student := models.Student{ID: 12, Name: "Narco II"}
	got := svc.UpdateStudent(student).Await(context.Background())

	assert.False(t, got.Present, "204 carries no body")
	call := transport.Calls()[0]
	assert.Equal(t, "PUT", call.Method)
	assert.Equal(t, testBaseURL, call.URL)
	assert.Equal(t, student, call.Body)
	assert.Equal(t, []string{"StudentService: updated student id=12"}, sink.Messages())
}

func TestUpdateStudent_KeepsServerBody(t *testing.T) {
	svc, _, _, _ := newTestService(respondWith(map[string]int{"updated": 1}))

	got := svc.UpdateStudent(models.Student{ID: 12}).Await(context.Background())

	require.True(t, got.Present)
	assert.JSONEq(t, `{"updated":1}`, string(got.Value))
}

func TestUpdateStudent_Failure(t *testing.T) {
	svc, _, sink, _ := newTestService(failWith("bad gateway"))

	got := svc.UpdateStudent(models.Student{ID: 12}).Await(context.Background())

	assert.Equal(t, models.None[json.RawMessage](), got)
	assert.Equal(t, []string{"StudentService: updateStudent failed: bad gateway"}, sink.Messages())
}

func TestOperations_AreColdAndIndependent(t *testing.T) {
	var calls atomic.Int32
	svc, transport, _, _ := newTestService(func(context.Context, testutil.Call) (any, error) {
		calls.Add(1)
		return nil, nil
	})

	deferred := svc.DeleteStudent(models.RefID(5))
	assert.Zero(t, calls.Load(), "nothing runs before Await")

	first := deferred.Subscribe(context.Background())
	second := deferred.Subscribe(context.Background())
	<-first
	<-second

	assert.EqualValues(t, 2, calls.Load(), "every subscription issues its own request")
	assert.Len(t, transport.Calls(), 2)
}

func TestOperations_NeverSurfaceErrorsThroughSubscribe(t *testing.T) {
	svc, _, _, _ := newTestService(failWith("down"))

	ch := svc.GetStudent(1).Subscribe(context.Background())
	got, ok := <-ch
	require.True(t, ok)
	assert.False(t, got.Present)

	_, ok = <-ch
	assert.False(t, ok, "channel is closed after the single value")
}
