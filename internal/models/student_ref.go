package models

// RefKind tells which member of a StudentRef is set.
type RefKind int

const (
	// RefByID references a student by bare id.
	RefByID RefKind = iota
	// RefByRecord references a student through a full record.
	RefByRecord
)

// StudentRef is either a bare student id or a full Student record.
type StudentRef struct {
	Kind    RefKind
	id      int
	student Student
}

// RefID references a student by id.
func RefID(id int) StudentRef {
	return StudentRef{Kind: RefByID, id: id}
}

// RefStudent references a student through its record.
func RefStudent(s Student) StudentRef {
	return StudentRef{Kind: RefByRecord, student: s}
}

// ID resolves the referenced student's id.
func (r StudentRef) ID() int {
	switch r.Kind {
	case RefByRecord:
		return r.student.ID
	default:
		return r.id
	}
}
