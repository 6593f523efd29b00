package echoapi

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

// portal lists cap their "recent" sections
const recentLimit = 5

type portalApi struct {
	svc   *attendance.Service
	clock attendance.Clock
}

func registerPortalAPI(g *echo.Group, svc *attendance.Service, clock attendance.Clock) {
	api := portalApi{svc: svc, clock: clock}

	g.GET("/lecturers", api.lecturerQuery)
	g.GET("/lecturers/:id", api.lecturerRetrieve)

	g.GET("/student/:id/dashboard", api.studentDashboard)
	g.GET("/student/:id/sessions", api.studentSessions)

	g.GET("/lecturer/:id/performance", api.lecturerPerformance)
	g.GET("/lecturer/:id/classes/:classID/performance", api.lecturerClassPerformance)

	g.GET("/admin/overview", api.adminOverview)
	g.GET("/admin/performance", api.adminPerformance)
}

func (api *portalApi) lecturerQuery(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryLecturers())
}

func (api *portalApi) lecturerRetrieve(ctx echo.Context) error {
	lec, ok := api.svc.GetLecturer(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, lec)
}

// sessionView is a session as the portals show it: the window bucket and
// countdown are evaluated against the request's reference instant.
type sessionView struct {
	attendance.Session
	Bucket        string             `json:"bucket"`
	TimeRemaining string             `json:"time_remaining"`
	MyRecord      *attendance.Record `json:"my_record,omitempty"`
}

func newSessionView(s attendance.Session, at At, studentID string) sessionView {
	view := sessionView{
		Session:       s,
		Bucket:        attendance.Classify(s, at.Time).String(),
		TimeRemaining: attendance.TimeRemaining(s, at.Time),
	}
	if studentID != "" {
		if rec, ok := s.RecordFor(studentID); ok {
			view.MyRecord = &rec
		}
	}
	return view
}

type studentDashboardResponse struct {
	Student          attendance.Student `json:"student"`
	Class            *attendance.Class  `json:"class,omitempty"`
	TotalSessions    int                `json:"total_sessions"`
	AttendedSessions int                `json:"attended_sessions"`
	AttendanceRate   int                `json:"attendance_rate"`
	Tier             string             `json:"tier"`
	ActiveSessions   []sessionView      `json:"active_sessions"`
	RecentRecords    []attendance.Record `json:"recent_records"`
}

// studentDashboard summarizes a student's own standing. The rate here counts
// only the sessions the student holds a record for: an unmarked session does
// not lower it, unlike the lecturer views.
func (api *portalApi) studentDashboard(ctx echo.Context) error {
	stu, ok := api.svc.GetStudent(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}

	at := new(At)
	if err := at.Bind(ctx, api.clock); err != nil {
		return err
	}

	classSessions := attendance.SessionsForClass(api.svc.QuerySessions(), stu.ClassID)
	attended, total, rate := attendance.StudentRecordRate(classSessions, stu.ID)

	recent := attendance.StudentRecords(classSessions, stu.ID)
	if recent == nil {
		recent = []attendance.Record{}
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	resp := studentDashboardResponse{
		Student:          stu,
		TotalSessions:    total,
		AttendedSessions: attended,
		AttendanceRate:   rate,
		Tier:             attendance.Tier(rate),
		ActiveSessions:   []sessionView{},
		RecentRecords:    recent,
	}
	if c, ok := api.svc.GetClass(stu.ClassID); ok {
		resp.Class = &c
	}
	for _, s := range classSessions {
		if attendance.Classify(s, at.Time) == attendance.BucketActive {
			resp.ActiveSessions = append(resp.ActiveSessions, newSessionView(s, *at, stu.ID))
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

// studentSessions lists the student's class sessions with their window bucket
// and countdown, most useful for the "mark attendance" page.
func (api *portalApi) studentSessions(ctx echo.Context) error {
	stu, ok := api.svc.GetStudent(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}

	at := new(At)
	if err := at.Bind(ctx, api.clock); err != nil {
		return err
	}

	classSessions := attendance.SessionsForClass(api.svc.QuerySessions(), stu.ClassID)
	views := make([]sessionView, 0, len(classSessions))
	for _, s := range classSessions {
		views = append(views, newSessionView(s, *at, stu.ID))
	}
	return ctx.JSON(http.StatusOK, views)
}

type classCard struct {
	Class             attendance.Class `json:"class"`
	TotalSessions     int              `json:"total_sessions"`
	AverageAttendance int              `json:"average_attendance"`
	Tier              string           `json:"tier"`
	Excellent         int              `json:"excellent"`
	Good              int              `json:"good"`
	AtRisk            int              `json:"at_risk"`
}

type lecturerPerformanceResponse struct {
	Lecturer attendance.Lecturer `json:"lecturer"`
	Classes  []classCard         `json:"classes"`
}

// lecturerPerformance builds one card per class the lecturer teaches. The
// card average pools recorded marks across the class's sessions; the tier
// counts come from per-student rates over the class's session count, so
// students who never marked land in the at-risk bucket.
func (api *portalApi) lecturerPerformance(ctx echo.Context) error {
	lec, ok := api.svc.GetLecturer(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}

	sessions := api.svc.QuerySessions()
	cards := []classCard{}
	for _, c := range api.svc.QueryClasses() {
		if c.LecturerID != lec.ID {
			continue
		}
		classSessions := attendance.SessionsForClass(sessions, c.ID)
		perfs := make([]attendance.StudentPerformance, 0, len(c.Students))
		for _, stu := range c.Students {
			perfs = append(perfs, attendance.StudentClassPerformance(stu.ID, c.ID, classSessions))
		}
		avg := attendance.GroupRate(classSessions)
		excellent, good, atRisk := attendance.TierCounts(perfs)
		cards = append(cards, classCard{
			Class:             c,
			TotalSessions:     len(classSessions),
			AverageAttendance: avg,
			Tier:              attendance.AdminTier(avg),
			Excellent:         excellent,
			Good:              good,
			AtRisk:            atRisk,
		})
	}

	return ctx.JSON(http.StatusOK, lecturerPerformanceResponse{Lecturer: lec, Classes: cards})
}

type studentPerformanceRow struct {
	attendance.StudentPerformance
	Name  string `json:"name"`
	RegNo string `json:"reg_no"`
}

type classPerformanceResponse struct {
	Class             attendance.Class        `json:"class"`
	TotalSessions     int                     `json:"total_sessions"`
	AverageAttendance int                     `json:"average_attendance"`
	Excellent         int                     `json:"excellent"`
	Good              int                     `json:"good"`
	AtRisk            int                     `json:"at_risk"`
	Students          []studentPerformanceRow `json:"students"`
}

// lecturerClassPerformance is the drill-down behind a class card: one row per
// enrolled student, session-count denominators.
func (api *portalApi) lecturerClassPerformance(ctx echo.Context) error {
	lec, ok := api.svc.GetLecturer(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	c, ok := api.svc.GetClass(ctx.Param("classID"))
	if !ok || c.LecturerID != lec.ID {
		return errHttpNotFound
	}

	classSessions := attendance.SessionsForClass(api.svc.QuerySessions(), c.ID)
	rows := make([]studentPerformanceRow, 0, len(c.Students))
	perfs := make([]attendance.StudentPerformance, 0, len(c.Students))
	for _, stu := range c.Students {
		perf := attendance.StudentClassPerformance(stu.ID, c.ID, classSessions)
		perfs = append(perfs, perf)
		rows = append(rows, studentPerformanceRow{StudentPerformance: perf, Name: stu.Name, RegNo: stu.RegNo})
	}
	excellent, good, atRisk := attendance.TierCounts(perfs)

	return ctx.JSON(http.StatusOK, classPerformanceResponse{
		Class:             c,
		TotalSessions:     len(classSessions),
		AverageAttendance: attendance.ClassAverage(perfs),
		Excellent:         excellent,
		Good:              good,
		AtRisk:            atRisk,
		Students:          rows,
	})
}

type adminOverviewResponse struct {
	TotalStudents     int           `json:"total_students"`
	TotalLecturers    int           `json:"total_lecturers"`
	TotalClasses      int           `json:"total_classes"`
	TotalSessions     int           `json:"total_sessions"`
	TotalRecords      int           `json:"total_records"`
	ActiveSessions    int           `json:"active_sessions"`
	PendingAccounts   int           `json:"pending_accounts"`
	OverallAttendance int           `json:"overall_attendance"`
	RecentSessions    []sessionView `json:"recent_sessions"`
}

func (api *portalApi) adminOverview(ctx echo.Context) error {
	at := new(At)
	if err := at.Bind(ctx, api.clock); err != nil {
		return err
	}

	sessions := api.svc.QuerySessions()
	var active, records int
	for _, s := range sessions {
		if attendance.Classify(s, at.Time) == attendance.BucketActive {
			active++
		}
		records += len(s.Records)
	}
	var pending int
	for _, acct := range api.svc.QueryPendingAccounts() {
		if acct.Status == attendance.AccountPending {
			pending++
		}
	}

	byDate := make([]attendance.Session, len(sessions))
	copy(byDate, sessions)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date > byDate[j].Date })
	if len(byDate) > recentLimit {
		byDate = byDate[:recentLimit]
	}
	recent := make([]sessionView, 0, len(byDate))
	for _, s := range byDate {
		recent = append(recent, newSessionView(s, *at, ""))
	}

	return ctx.JSON(http.StatusOK, adminOverviewResponse{
		TotalStudents:     len(api.svc.QueryStudents()),
		TotalLecturers:    len(api.svc.QueryLecturers()),
		TotalClasses:      len(api.svc.QueryClasses()),
		TotalSessions:     len(sessions),
		TotalRecords:      records,
		ActiveSessions:    active,
		PendingAccounts:   pending,
		OverallAttendance: attendance.GroupRate(sessions),
		RecentSessions:    recent,
	})
}

type adminClassRow struct {
	attendance.ClassPerformance
	Name     string                  `json:"name"`
	Subject  string                  `json:"subject"`
	Tier     string                  `json:"tier"`
	Students []studentPerformanceRow `json:"students"`
}

type adminLecturerRow struct {
	Lecturer          attendance.Lecturer `json:"lecturer"`
	TotalClasses      int                 `json:"total_classes"`
	TotalSessions     int                 `json:"total_sessions"`
	AverageAttendance int                 `json:"average_attendance"`
	Tier              string              `json:"tier"`
}

type adminDepartmentRow struct {
	Department        string `json:"department"`
	TotalLecturers    int    `json:"total_lecturers"`
	TotalSessions     int    `json:"total_sessions"`
	AverageAttendance int    `json:"average_attendance"`
	Tier              string `json:"tier"`
}

type adminPerformanceResponse struct {
	Classes     []adminClassRow      `json:"classes"`
	Lecturers   []adminLecturerRow   `json:"lecturers"`
	Departments []adminDepartmentRow `json:"departments"`
}

// adminPerformance rolls attendance up for the whole institution. Class,
// lecturer and department rates pool recorded marks (GroupRate); the
// per-student rows inside a class use each student's own record count, the
// same way the student dashboard does.
func (api *portalApi) adminPerformance(ctx echo.Context) error {
	sessions := api.svc.QuerySessions()
	lecturers := api.svc.QueryLecturers()

	classes := []adminClassRow{}
	for _, c := range api.svc.QueryClasses() {
		classSessions := attendance.SessionsForClass(sessions, c.ID)
		perf := attendance.ClassGroupPerformance(c, sessions)

		rows := make([]studentPerformanceRow, 0, len(c.Students))
		for _, stu := range c.Students {
			attended, total, rate := attendance.StudentRecordRate(classSessions, stu.ID)
			rows = append(rows, studentPerformanceRow{
				StudentPerformance: attendance.StudentPerformance{
					StudentID:        stu.ID,
					ClassID:          c.ID,
					TotalSessions:    total,
					AttendedSessions: attended,
					AttendanceRate:   rate,
					Tier:             attendance.Tier(rate),
				},
				Name:  stu.Name,
				RegNo: stu.RegNo,
			})
		}

		classes = append(classes, adminClassRow{
			ClassPerformance: perf,
			Name:             c.Name,
			Subject:          c.Subject,
			Tier:             attendance.AdminTier(perf.AverageAttendance),
			Students:         rows,
		})
	}

	lecturerRows := []adminLecturerRow{}
	deptSessions := map[string][]attendance.Session{}
	deptLecturers := map[string]int{}
	var deptOrder []string
	for _, lec := range lecturers {
		lecSessions := attendance.SessionsForLecturer(sessions, lec.ID)
		rate := attendance.GroupRate(lecSessions)
		lecturerRows = append(lecturerRows, adminLecturerRow{
			Lecturer:          lec,
			TotalClasses:      len(lec.Classes),
			TotalSessions:     len(lecSessions),
			AverageAttendance: rate,
			Tier:              attendance.AdminTier(rate),
		})

		if _, seen := deptSessions[lec.Department]; !seen {
			deptOrder = append(deptOrder, lec.Department)
		}
		deptSessions[lec.Department] = append(deptSessions[lec.Department], lecSessions...)
		deptLecturers[lec.Department]++
	}

	departments := []adminDepartmentRow{}
	for _, dept := range deptOrder {
		rate := attendance.GroupRate(deptSessions[dept])
		departments = append(departments, adminDepartmentRow{
			Department:        dept,
			TotalLecturers:    deptLecturers[dept],
			TotalSessions:     len(deptSessions[dept]),
			AverageAttendance: rate,
			Tier:              attendance.AdminTier(rate),
		})
	}

	return ctx.JSON(http.StatusOK, adminPerformanceResponse{
		Classes:     classes,
		Lecturers:   lecturerRows,
		Departments: departments,
	})
}
