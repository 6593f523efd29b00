package attendance

import "math"

// Performance tiers.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierAtRisk    = "At Risk"
)

// Rate returns the rounded percentage of present over total, and 0 when
// total is 0. It never divides by zero and never yields NaN.
func Rate(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// Tier maps a rate to a performance tier as shown in the lecturer and
// student views: >= 90 Excellent, >= 75 Good, otherwise At Risk.
func Tier(rate int) string {
	switch {
	case rate >= 90:
		return TierExcellent
	case rate >= 75:
		return TierGood
	}
	return TierAtRisk
}

// AdminTier uses the admin tables' boundary: >= 85 Excellent, >= 75 Good.
func AdminTier(rate int) string {
	switch {
	case rate >= 85:
		return TierExcellent
	case rate >= 75:
		return TierGood
	}
	return TierAtRisk
}

// SessionsForClass keeps the sessions belonging to the given class,
// preserving order.
func SessionsForClass(sessions []Session, classID string) []Session {
	var out []Session
	for _, s := range sessions {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out
}

// SessionsForLecturer keeps the sessions opened by the given lecturer,
// preserving order.
func SessionsForLecturer(sessions []Session, lecturerID string) []Session {
	var out []Session
	for _, s := range sessions {
		if s.LecturerID == lecturerID {
			out = append(out, s)
		}
	}
	return out
}

// StudentRecords collects the student's records across the given sessions.
func StudentRecords(sessions []Session, studentID string) []Record {
	var out []Record
	for _, s := range sessions {
		for _, r := range s.Records {
			if r.StudentID == studentID {
				out = append(out, r)
			}
		}
	}
	return out
}

func presentCount(records []Record) int {
	var n int
	for _, r := range records {
		if r.IsPresent() {
			n++
		}
	}
	return n
}

// SessionRate is the session's own rate: present records over all records
// stored for the session. Students who never marked hold no record and are
// excluded from this denominator.
func SessionRate(s Session) int {
	return Rate(presentCount(s.Records), len(s.Records))
}

// GroupRate sums present and total records across the given sessions.
// Used for class, lecturer and department rollups.
func GroupRate(sessions []Session) int {
	var present, total int
	for _, s := range sessions {
		present += presentCount(s.Records)
		total += len(s.Records)
	}
	return Rate(present, total)
}

type StudentPerformance struct {
	StudentID        string `json:"student_id"`
	ClassID          string `json:"class_id"`
	TotalSessions    int    `json:"total_sessions"`
	AttendedSessions int    `json:"attended_sessions"`
	AttendanceRate   int    `json:"attendance_rate"`
	LastAttended     string `json:"last_attended,omitempty"`
	Tier             string `json:"tier"`
}

// StudentClassPerformance computes a student's rate within a class as the
// lecturer views show it: the denominator is the class's session count, so a
// student who never marked for N sessions shows 0/N, not 0/0.
func StudentClassPerformance(studentID, classID string, classSessions []Session) StudentPerformance {
	records := StudentRecords(classSessions, studentID)
	attended := presentCount(records)
	rate := Rate(attended, len(classSessions))

	var lastAttended string
	for _, r := range records {
		if r.IsPresent() && r.Date > lastAttended {
			lastAttended = r.Date
		}
	}

	return StudentPerformance{
		StudentID:        studentID,
		ClassID:          classID,
		TotalSessions:    len(classSessions),
		AttendedSessions: attended,
		AttendanceRate:   rate,
		LastAttended:     lastAttended,
		Tier:             Tier(rate),
	}
}

// StudentRecordRate computes a student's rate over their own records only
// (the denominator the student dashboard and the admin class detail use,
// as opposed to StudentClassPerformance's session-count denominator).
func StudentRecordRate(sessions []Session, studentID string) (attended, total, rate int) {
	records := StudentRecords(sessions, studentID)
	attended = presentCount(records)
	total = len(records)
	return attended, total, Rate(attended, total)
}

// ClassAverage is the integer-rounded mean of per-student rates.
func ClassAverage(perfs []StudentPerformance) int {
	var sum int
	for _, p := range perfs {
		sum += p.AttendanceRate
	}
	n := len(perfs)
	if n == 0 {
		n = 1
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// TierCounts tallies performances per tier at the 90/75 boundaries.
func TierCounts(perfs []StudentPerformance) (excellent, good, atRisk int) {
	for _, p := range perfs {
		switch {
		case p.AttendanceRate >= 90:
			excellent++
		case p.AttendanceRate >= 75:
			good++
		default:
			atRisk++
		}
	}
	return excellent, good, atRisk
}

type ClassPerformance struct {
	ClassID           string `json:"class_id"`
	LecturerID        string `json:"lecturer_id"`
	TotalSessions     int    `json:"total_sessions"`
	TotalStudents     int    `json:"total_students"`
	AverageAttendance int    `json:"average_attendance"`
	LastSession       string `json:"last_session,omitempty"`
}

// ClassGroupPerformance rolls a class's sessions up into a record-count rate.
func ClassGroupPerformance(c Class, sessions []Session) ClassPerformance {
	classSessions := SessionsForClass(sessions, c.ID)

	var lastSession string
	if n := len(classSessions); n > 0 {
		lastSession = classSessions[n-1].Date
	}

	return ClassPerformance{
		ClassID:           c.ID,
		LecturerID:        c.LecturerID,
		TotalSessions:     len(classSessions),
		TotalStudents:     len(c.Students),
		AverageAttendance: GroupRate(classSessions),
		LastSession:       lastSession,
	}
}
