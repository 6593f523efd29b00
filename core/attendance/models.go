package attendance

import (
	"time"

	"github.com/trezcool/mahudhurio/core"
)

// Record statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Pending account statuses
const (
	AccountPending  = "pending"
	AccountApproved = "approved"
	AccountRejected = "rejected"
)

// Account roles
const (
	RoleLecturer = "lecturer"
	RoleStudent  = "student"
	RoleAdmin    = "admin"
)

// Wall-clock layouts; session dates and start times carry no timezone.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RegNo      string `json:"reg_no"`
	Email      string `json:"email"`
	Year       int    `json:"year"`
	Department string `json:"department"`
	ClassID    string `json:"class_id"`
}

type Lecturer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Classes    []string `json:"classes"`
}

// Class membership is normalized: Students is derived from the students
// collection (Student.ClassID) on read, never stored.
type Class struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	LecturerID string    `json:"lecturer_id"`
	Year       int       `json:"year"`
	Department string    `json:"department"`
	Students   []Student `json:"students"`
}

type Record struct {
	ID         string `json:"id"`
	ClassID    string `json:"class_id"`
	Date       string `json:"date"`
	StudentID  string `json:"student_id"`
	Status     string `json:"status"`
	LecturerID string `json:"lecturer_id"`
}

func (r Record) IsPresent() bool { return r.Status == StatusPresent }

type Session struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	CourseCode  string    `json:"course_code"`
	CourseTitle string    `json:"course_title"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Duration    int       `json:"duration"` // minutes
	LecturerID  string    `json:"lecturer_id"`
	IsActive    bool      `json:"is_active"`
	Records     []Record  `json:"records"` // insertion order = marking order
	CreatedAt   time.Time `json:"created_at"`
}

// RecordFor returns the student's record in this session, if any.
func (s Session) RecordFor(studentID string) (Record, bool) {
	for _, r := range s.Records {
		if r.StudentID == studentID {
			return r, true
		}
	}
	return Record{}, false
}

type PendingAccount struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       string    `json:"role"` // lecturer | student
	Status     string    `json:"status"`
	Documents  []string  `json:"documents,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CurrentUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name       string `json:"name" validate:"required"`
	RegNo      string `json:"reg_no" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Year       int    `json:"year" validate:"omitempty,min=1"`
	Department string `json:"department"`
	ClassID    string `json:"class_id"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.RegNo = core.CleanString(ns.RegNo)
	ns.Email = core.CleanString(ns.Email, true)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Zero values leave the field unchanged.
type UpdateStudent struct {
	Name       string  `json:"name"`
	RegNo      string  `json:"reg_no"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Year       *int    `json:"year"`
	Department string  `json:"department"`
	ClassID    *string `json:"class_id"`
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.RegNo = core.CleanString(us.RegNo)
	us.Email = core.CleanString(us.Email, true)
	return core.Validate.Struct(us)
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name       string `json:"name" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	LecturerID string `json:"lecturer_id" validate:"required"`
	Year       int    `json:"year" validate:"omitempty,min=1"`
	Department string `json:"department"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)
	return core.Validate.Struct(nc)
}

// NewSession contains information needed to open a new attendance session.
type NewSession struct {
	ClassID     string `json:"class_id" validate:"required"`
	CourseCode  string `json:"course_code" validate:"required"`
	CourseTitle string `json:"course_title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	Duration    int    `json:"duration" validate:"required,min=1"` // minutes
	LecturerID  string `json:"lecturer_id" validate:"required"`
}

func (ns *NewSession) Validate() error {
	ns.CourseCode = core.CleanString(ns.CourseCode)
	ns.CourseTitle = core.CleanString(ns.CourseTitle)
	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	if _, err := time.ParseInLocation(DateLayout, ns.Date, time.Local); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date, expected YYYY-MM-DD"})
	}
	if _, err := time.ParseInLocation(TimeLayout, ns.StartTime, time.Local); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "start_time", Error: "invalid time, expected HH:MM"})
	}
	return nil
}

// UpdateSession defines what information may be provided to modify an existing Session.
// Zero values leave the field unchanged.
type UpdateSession struct {
	CourseCode  string `json:"course_code"`
	CourseTitle string `json:"course_title"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	Duration    *int   `json:"duration" validate:"omitempty,min=1"`
	IsActive    *bool  `json:"is_active"`
}

func (us *UpdateSession) Validate() error {
	us.CourseCode = core.CleanString(us.CourseCode)
	us.CourseTitle = core.CleanString(us.CourseTitle)
	return core.Validate.Struct(us)
}

// MarkRequest is one student's present/absent call for a session.
type MarkRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent"`
}

func (mr *MarkRequest) Validate() error {
	mr.Status = core.CleanString(mr.Status, true)
	return core.Validate.Struct(mr)
}
