package inmemdb

import (
	"time"

	"github.com/trezcool/mahudhurio/core/attendance"
)

// Seed loads the static fixture data set. Fixtures are indistinguishable from
// data the store operations could have produced; all state resets to them on
// process restart.
func (repo *Repository) Seed() {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.students = seedStudents()
	repo.lecturers = seedLecturers()
	repo.classes = seedClasses()
	repo.sessions = seedSessions()
	repo.pendingAccounts = seedPendingAccounts()
	repo.currentUser = nil
}

// NewSeededRepository returns a store pre-loaded with the fixture data set.
func NewSeededRepository() *Repository {
	repo := NewRepository()
	repo.Seed()
	return repo
}

func seedStudents() []attendance.Student {
	return []attendance.Student{
		{ID: "1", Name: "John Doe", RegNo: "CS2021001", Email: "john.doe@university.edu", Year: 3, Department: "Computer Science", ClassID: "1"},
		{ID: "2", Name: "Jane Smith", RegNo: "CS2021002", Email: "jane.smith@university.edu", Year: 3, Department: "Computer Science", ClassID: "1"},
		{ID: "3", Name: "Mike Johnson", RegNo: "CS2021003", Email: "mike.johnson@university.edu", Year: 3, Department: "Computer Science", ClassID: "1"},
		{ID: "4", Name: "Sarah Wilson", RegNo: "EE2021001", Email: "sarah.wilson@university.edu", Year: 2, Department: "Electrical Engineering", ClassID: "2"},
		{ID: "5", Name: "David Brown", RegNo: "EE2021002", Email: "david.brown@university.edu", Year: 2, Department: "Electrical Engineering", ClassID: "2"},
	}
}

func seedLecturers() []attendance.Lecturer {
	return []attendance.Lecturer{
		{ID: "1", Name: "Dr. Alice Cooper", Email: "alice.cooper@university.edu", Department: "Computer Science", Classes: []string{"1", "3"}},
		{ID: "2", Name: "Prof. Bob Martin", Email: "bob.martin@university.edu", Department: "Electrical Engineering", Classes: []string{"2"}},
	}
}

func seedClasses() []attendance.Class {
	return []attendance.Class{
		{ID: "1", Name: "Advanced Web Development", Subject: "Computer Science", LecturerID: "1", Year: 3, Department: "Computer Science"},
		{ID: "2", Name: "Circuit Analysis", Subject: "Electrical Engineering", LecturerID: "2", Year: 2, Department: "Electrical Engineering"},
		{ID: "3", Name: "Data Structures", Subject: "Computer Science", LecturerID: "1", Year: 2, Department: "Computer Science"},
	}
}

func seedSessions() []attendance.Session {
	return []attendance.Session{
		{
			ID:          "1",
			ClassID:     "1",
			CourseCode:  "CS301",
			CourseTitle: "Advanced Web Development",
			Date:        "2024-01-15",
			StartTime:   "09:00",
			EndTime:     "10:30",
			Duration:    90,
			LecturerID:  "1",
			IsActive:    false,
			CreatedAt:   time.Date(2024, time.January, 15, 8, 30, 0, 0, time.UTC),
			Records: []attendance.Record{
				{ID: "1", ClassID: "1", Date: "2024-01-15", StudentID: "1", Status: attendance.StatusPresent, LecturerID: "1"},
				{ID: "2", ClassID: "1", Date: "2024-01-15", StudentID: "2", Status: attendance.StatusPresent, LecturerID: "1"},
				{ID: "3", ClassID: "1", Date: "2024-01-15", StudentID: "3", Status: attendance.StatusAbsent, LecturerID: "1"},
			},
		},
		{
			ID:          "2",
			ClassID:     "1",
			CourseCode:  "CS301",
			CourseTitle: "Advanced Web Development",
			Date:        "2024-01-16",
			StartTime:   "09:00",
			EndTime:     "10:30",
			Duration:    90,
			LecturerID:  "1",
			IsActive:    true,
			CreatedAt:   time.Date(2024, time.January, 16, 8, 30, 0, 0, time.UTC),
			Records:     []attendance.Record{},
		},
	}
}

func seedPendingAccounts() []attendance.PendingAccount {
	return []attendance.PendingAccount{
		{
			ID:         "pending-1",
			Name:       "Dr. Emily Johnson",
			Email:      "emily.johnson@university.edu",
			Department: "Mathematics",
			Role:       attendance.RoleLecturer,
			Status:     attendance.AccountPending,
			Documents:  []string{"cv.pdf", "certificates.pdf"},
			CreatedAt:  time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         "pending-2",
			Name:       "Prof. Michael Chen",
			Email:      "michael.chen@university.edu",
			Department: "Physics",
			Role:       attendance.RoleLecturer,
			Status:     attendance.AccountPending,
			CreatedAt:  time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         "pending-3",
			Name:       "Lisa Anderson",
			Email:      "lisa.anderson@student.edu",
			Department: "Computer Science",
			Role:       attendance.RoleStudent,
			Status:     attendance.AccountPending,
			CreatedAt:  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}
