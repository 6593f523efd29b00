package attendance

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trezcool/mahudhurio/core"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_sessions_created_total",
		Help: "Number of attendance sessions opened.",
	})
	marksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_marks_total",
		Help: "Number of attendance marks recorded, by status.",
	}, []string{"status"})
	accountDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_account_decisions_total",
		Help: "Number of pending account decisions, by decision.",
	}, []string{"decision"})
)

type (
	// Repository is the domain store contract. It owns all collections;
	// consumers receive read snapshots and must go through the mutation
	// methods. Mutations are synchronous and atomic, and degrade to silent
	// no-ops on unmatched identifiers.
	Repository interface {
		QueryStudents() []Student
		GetStudent(id string) (Student, bool)
		QueryLecturers() []Lecturer
		GetLecturer(id string) (Lecturer, bool)
		QueryClasses() []Class
		GetClass(id string) (Class, bool)
		QuerySessions() []Session
		GetSession(id string) (Session, bool)
		QueryPendingAccounts() []PendingAccount
		GetPendingAccount(id string) (PendingAccount, bool)
		CurrentUser() (CurrentUser, bool)

		AddStudent(s Student)
		UpdateStudent(id string, up UpdateStudent)
		DeleteStudent(id string)
		// AddStudentsToClass assigns each student to the class and appends them
		// to the students collection; the class's derived student list picks
		// them up on the next read.
		AddStudentsToClass(classID string, students []Student)
		AddClass(c Class)
		CreateSession(s Session)
		UpdateSession(id string, up UpdateSession)
		// MarkAttendance upserts the one record per (session, student) pair:
		// a prior record for the student is replaced, never duplicated.
		MarkAttendance(sessionID, studentID, status string)
		ApprovePendingAccount(id string)
		RejectPendingAccount(id string)
		SetCurrentUser(u CurrentUser)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// Reads

func (svc *Service) QueryStudents() []Student               { return svc.repo.QueryStudents() }
func (svc *Service) GetStudent(id string) (Student, bool)   { return svc.repo.GetStudent(id) }
func (svc *Service) QueryLecturers() []Lecturer             { return svc.repo.QueryLecturers() }
func (svc *Service) GetLecturer(id string) (Lecturer, bool) { return svc.repo.GetLecturer(id) }
func (svc *Service) QueryClasses() []Class                  { return svc.repo.QueryClasses() }
func (svc *Service) GetClass(id string) (Class, bool)       { return svc.repo.GetClass(id) }
func (svc *Service) QuerySessions() []Session               { return svc.repo.QuerySessions() }
func (svc *Service) GetSession(id string) (Session, bool)   { return svc.repo.GetSession(id) }
func (svc *Service) QueryPendingAccounts() []PendingAccount {
	return svc.repo.QueryPendingAccounts()
}
func (svc *Service) CurrentUser() (CurrentUser, bool) { return svc.repo.CurrentUser() }

// Mutations

func (svc *Service) AddStudent(ns NewStudent) Student {
	stu := Student{
		ID:         uuid.New().String(),
		Name:       ns.Name,
		RegNo:      ns.RegNo,
		Email:      ns.Email,
		Year:       ns.Year,
		Department: ns.Department,
		ClassID:    ns.ClassID,
	}
	svc.repo.AddStudent(stu)
	return stu
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, bool) {
	svc.repo.UpdateStudent(id, us)
	return svc.repo.GetStudent(id)
}

func (svc *Service) DeleteStudent(id string) {
	svc.repo.DeleteStudent(id)
}

// EnrollStudents creates the given students and assigns them to the class in
// one action.
func (svc *Service) EnrollStudents(classID string, nss []NewStudent) []Student {
	students := make([]Student, 0, len(nss))
	for _, ns := range nss {
		students = append(students, Student{
			ID:         uuid.New().String(),
			Name:       ns.Name,
			RegNo:      ns.RegNo,
			Email:      ns.Email,
			Year:       ns.Year,
			Department: ns.Department,
			ClassID:    classID,
		})
	}
	svc.repo.AddStudentsToClass(classID, students)
	return students
}

func (svc *Service) AddClass(nc NewClass) Class {
	c := Class{
		ID:         uuid.New().String(),
		Name:       nc.Name,
		Subject:    nc.Subject,
		LecturerID: nc.LecturerID,
		Year:       nc.Year,
		Department: nc.Department,
	}
	svc.repo.AddClass(c)
	return c
}

// CreateSession opens a session: the end time is derived from start time and
// duration, the session starts out active with no records.
func (svc *Service) CreateSession(ns NewSession) Session {
	var endTime string
	if start, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, ns.Date+"T"+ns.StartTime, time.Local); err == nil {
		endTime = start.Add(time.Duration(ns.Duration) * time.Minute).Format(TimeLayout)
	}

	s := Session{
		ID:          uuid.New().String(),
		ClassID:     ns.ClassID,
		CourseCode:  ns.CourseCode,
		CourseTitle: ns.CourseTitle,
		Date:        ns.Date,
		StartTime:   ns.StartTime,
		EndTime:     endTime,
		Duration:    ns.Duration,
		LecturerID:  ns.LecturerID,
		IsActive:    true,
		Records:     []Record{},
		CreatedAt:   time.Now().UTC(),
	}
	svc.repo.CreateSession(s)
	sessionsCreated.Inc()
	return s
}

func (svc *Service) UpdateSession(id string, us UpdateSession) (Session, bool) {
	svc.repo.UpdateSession(id, us)
	return svc.repo.GetSession(id)
}

// Mark upserts the student's record for the session and returns it.
// ok is false when the session does not exist (the mark was a no-op).
func (svc *Service) Mark(sessionID string, mr MarkRequest) (Record, bool) {
	svc.repo.MarkAttendance(sessionID, mr.StudentID, mr.Status)

	s, ok := svc.repo.GetSession(sessionID)
	if !ok {
		return Record{}, false
	}
	rec, ok := s.RecordFor(mr.StudentID)
	if ok {
		marksTotal.WithLabelValues(rec.Status).Inc()
	}
	return rec, ok
}

func (svc *Service) ApproveAccount(id string) (PendingAccount, bool) {
	svc.repo.ApprovePendingAccount(id)
	acct, ok := svc.repo.GetPendingAccount(id)
	if ok {
		accountDecisions.WithLabelValues(AccountApproved).Inc()
		svc.sendDecisionEmail(acct)
	}
	return acct, ok
}

func (svc *Service) RejectAccount(id string) (PendingAccount, bool) {
	svc.repo.RejectPendingAccount(id)
	acct, ok := svc.repo.GetPendingAccount(id)
	if ok {
		accountDecisions.WithLabelValues(AccountRejected).Inc()
		svc.sendDecisionEmail(acct)
	}
	return acct, ok
}

func (svc *Service) SetCurrentUser(u CurrentUser) {
	svc.repo.SetCurrentUser(u)
}

func (svc *Service) sendDecisionEmail(acct PendingAccount) {
	if svc.mailSvc == nil || acct.Email == "" {
		return
	}
	var body string
	switch acct.Status {
	case AccountApproved:
		body = fmt.Sprintf("Hello %s,\n\nYour %s account registration has been approved.", acct.Name, acct.Role)
	case AccountRejected:
		body = fmt.Sprintf("Hello %s,\n\nYour %s account registration has been rejected.", acct.Name, acct.Role)
	default:
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject: "Account registration " + acct.Status,
		BodyStr: body,
	})
}
