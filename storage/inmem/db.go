package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/attendance"
)

// Repository is the in-memory domain store. A single process owns it; all
// mutations run to completion under the lock before the next read is
// observed. Reads hand out snapshot copies.
type Repository struct {
	mu              sync.RWMutex
	students        []attendance.Student
	lecturers       []attendance.Lecturer
	classes         []attendance.Class
	sessions        []attendance.Session
	pendingAccounts []attendance.PendingAccount
	currentUser     *attendance.CurrentUser
}

var _ attendance.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{}
}

// Reads

func (repo *Repository) QueryStudents() []attendance.Student {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]attendance.Student, len(repo.students))
	copy(out, repo.students)
	return out
}

func (repo *Repository) GetStudent(id string) (attendance.Student, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, s := range repo.students {
		if s.ID == id {
			return s, true
		}
	}
	return attendance.Student{}, false
}

func (repo *Repository) QueryLecturers() []attendance.Lecturer {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]attendance.Lecturer, 0, len(repo.lecturers))
	for _, l := range repo.lecturers {
		out = append(out, copyLecturer(l))
	}
	return out
}

func (repo *Repository) GetLecturer(id string) (attendance.Lecturer, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, l := range repo.lecturers {
		if l.ID == id {
			return copyLecturer(l), true
		}
	}
	return attendance.Lecturer{}, false
}

func (repo *Repository) QueryClasses() []attendance.Class {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]attendance.Class, 0, len(repo.classes))
	for _, c := range repo.classes {
		out = append(out, repo.deriveClass(c))
	}
	return out
}

func (repo *Repository) GetClass(id string) (attendance.Class, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, c := range repo.classes {
		if c.ID == id {
			return repo.deriveClass(c), true
		}
	}
	return attendance.Class{}, false
}

func (repo *Repository) QuerySessions() []attendance.Session {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]attendance.Session, 0, len(repo.sessions))
	for _, s := range repo.sessions {
		out = append(out, copySession(s))
	}
	return out
}

func (repo *Repository) GetSession(id string) (attendance.Session, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, s := range repo.sessions {
		if s.ID == id {
			return copySession(s), true
		}
	}
	return attendance.Session{}, false
}

func (repo *Repository) QueryPendingAccounts() []attendance.PendingAccount {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]attendance.PendingAccount, 0, len(repo.pendingAccounts))
	for _, a := range repo.pendingAccounts {
		out = append(out, copyAccount(a))
	}
	return out
}

func (repo *Repository) GetPendingAccount(id string) (attendance.PendingAccount, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, a := range repo.pendingAccounts {
		if a.ID == id {
			return copyAccount(a), true
		}
	}
	return attendance.PendingAccount{}, false
}

func (repo *Repository) CurrentUser() (attendance.CurrentUser, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if repo.currentUser == nil {
		return attendance.CurrentUser{}, false
	}
	return *repo.currentUser, true
}

// Mutations

func (repo *Repository) AddStudent(s attendance.Student) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.students = append(repo.students, s)
}

func (repo *Repository) UpdateStudent(id string, up attendance.UpdateStudent) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i := range repo.students {
		if repo.students[i].ID != id {
			continue
		}
		s := &repo.students[i]
		if up.Name != "" {
			s.Name = up.Name
		}
		if up.RegNo != "" {
			s.RegNo = up.RegNo
		}
		if up.Email != "" {
			s.Email = up.Email
		}
		if up.Department != "" {
			s.Department = up.Department
		}
		if up.Year != nil {
			s.Year = *up.Year
		}
		if up.ClassID != nil {
			s.ClassID = *up.ClassID
		}
		return
	}
}

func (repo *Repository) DeleteStudent(id string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, s := range repo.students {
		if s.ID == id {
			repo.students = append(repo.students[:i], repo.students[i+1:]...)
			return
		}
	}
}

func (repo *Repository) AddStudentsToClass(classID string, students []attendance.Student) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, s := range students {
		s.ClassID = classID
		repo.students = append(repo.students, s)
	}
}

func (repo *Repository) AddClass(c attendance.Class) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	c.Students = nil // derived on read
	repo.classes = append(repo.classes, c)
}

func (repo *Repository) CreateSession(s attendance.Session) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.sessions = append(repo.sessions, copySession(s))
}

func (repo *Repository) UpdateSession(id string, up attendance.UpdateSession) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i := range repo.sessions {
		if repo.sessions[i].ID != id {
			continue
		}
		s := &repo.sessions[i]
		if up.CourseCode != "" {
			s.CourseCode = up.CourseCode
		}
		if up.CourseTitle != "" {
			s.CourseTitle = up.CourseTitle
		}
		if up.Date != "" {
			s.Date = up.Date
		}
		if up.StartTime != "" {
			s.StartTime = up.StartTime
		}
		if up.Duration != nil {
			s.Duration = *up.Duration
		}
		if up.IsActive != nil {
			s.IsActive = *up.IsActive
		}
		return
	}
}

func (repo *Repository) MarkAttendance(sessionID, studentID, status string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i := range repo.sessions {
		if repo.sessions[i].ID != sessionID {
			continue
		}
		s := &repo.sessions[i]

		// replace any prior record for this student, then append afresh
		kept := s.Records[:0]
		for _, r := range s.Records {
			if r.StudentID != studentID {
				kept = append(kept, r)
			}
		}
		s.Records = append(kept, attendance.Record{
			ID:         uuid.New().String(),
			ClassID:    s.ClassID,
			Date:       s.Date,
			StudentID:  studentID,
			Status:     status,
			LecturerID: s.LecturerID,
		})
		return
	}
}

func (repo *Repository) ApprovePendingAccount(id string) {
	repo.setAccountStatus(id, attendance.AccountApproved)
}

func (repo *Repository) RejectPendingAccount(id string) {
	repo.setAccountStatus(id, attendance.AccountRejected)
}

// setAccountStatus re-transitions terminal states without complaint:
// approve-after-reject (and vice versa) simply overwrites.
func (repo *Repository) setAccountStatus(id, status string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i := range repo.pendingAccounts {
		if repo.pendingAccounts[i].ID == id {
			repo.pendingAccounts[i].Status = status
			return
		}
	}
}

func (repo *Repository) SetCurrentUser(u attendance.CurrentUser) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.currentUser = &u
}

// deriveClass fills the class's student list from the students collection.
// Callers must hold at least the read lock.
func (repo *Repository) deriveClass(c attendance.Class) attendance.Class {
	students := make([]attendance.Student, 0)
	for _, s := range repo.students {
		if s.ClassID == c.ID {
			students = append(students, s)
		}
	}
	c.Students = students
	return c
}

func copyLecturer(l attendance.Lecturer) attendance.Lecturer {
	l.Classes = append([]string(nil), l.Classes...)
	return l
}

func copySession(s attendance.Session) attendance.Session {
	records := make([]attendance.Record, len(s.Records))
	copy(records, s.Records)
	s.Records = records
	return s
}

func copyAccount(a attendance.PendingAccount) attendance.PendingAccount {
	a.Documents = append([]string(nil), a.Documents...)
	return a
}
