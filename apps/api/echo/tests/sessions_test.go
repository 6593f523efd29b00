package tests

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/trezcool/mahudhurio/core/attendance"
)

func sessionsPath(classID, lecturerID, bucket string, at ...time.Time) string {
	v := make(url.Values)
	if classID != "" {
		v.Add("class_id", classID)
	}
	if lecturerID != "" {
		v.Add("lecturer_id", lecturerID)
	}
	if bucket != "" {
		v.Add("bucket", bucket)
	}
	if len(at) > 0 {
		v.Add("at", at[0].Format(time.RFC3339))
	}
	return "/v1/sessions?" + v.Encode()
}

func querySessions(t *testing.T, path string) []attendance.Session {
	t.Helper()
	req, rec := newRequest(http.MethodGet, path)
	app.ServeHTTP(rec, req)
	checkCode(t, http.StatusOK, rec)

	var sessions []attendance.Session
	unmarchal(t, rec, &sessions)
	return sessions
}

func Test_sessionApi_sessionQuery(t *testing.T) {
	resetState(t)

	if got := querySessions(t, "/v1/sessions"); len(got) != 2 {
		t.Errorf("all sessions len = %d, want 2", len(got))
	}
	if got := querySessions(t, sessionsPath("1", "", "")); len(got) != 2 {
		t.Errorf("class 1 sessions len = %d, want 2", len(got))
	}
	if got := querySessions(t, sessionsPath("2", "", "")); len(got) != 0 {
		t.Errorf("class 2 sessions len = %d, want 0", len(got))
	}
	if got := querySessions(t, sessionsPath("", "2", "")); len(got) != 0 {
		t.Errorf("lecturer 2 sessions len = %d, want 0", len(got))
	}

	// the clock is pinned inside session 2's window
	active := querySessions(t, sessionsPath("", "", "active"))
	if len(active) != 1 || active[0].ID != "2" {
		t.Errorf("active sessions = %+v, want just session 2", active)
	}
	past := querySessions(t, sessionsPath("", "", "past"))
	if len(past) != 1 || past[0].ID != "1" {
		t.Errorf("past sessions = %+v, want just session 1", past)
	}

	// replaying the day before: session 2 is future-dated and matches no bucket
	dayBefore := refTime.Add(-24 * time.Hour)
	if got := querySessions(t, sessionsPath("", "", "active", dayBefore)); len(got) != 0 {
		t.Errorf("active sessions a day early = %d, want 0", len(got))
	}
	if got := querySessions(t, sessionsPath("", "", "none", dayBefore)); len(got) != 1 {
		t.Errorf("unbucketed sessions a day early = %d, want 1", len(got))
	}

	t.Run("bad at param", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/sessions?bucket=active&at=yesterday-ish")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid `at` parameter, expected RFC 3339"}),
		}, rec)
	})
}

func Test_sessionApi_sessionCreate(t *testing.T) {
	resetState(t)

	t.Run("ok", func(t *testing.T) {
		body := []byte(`{"class_id":"1","course_code":"CS302","course_title":"Databases","date":"2024-01-20","start_time":"14:00","duration":60,"lecturer_id":"1"}`)
		req, rec := newRequest(http.MethodPost, "/v1/sessions", body)
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusCreated, rec)

		var s attendance.Session
		unmarchal(t, rec, &s)
		if s.ID == "" {
			t.Error("created session should get an id")
		}
		if s.EndTime != "15:00" {
			t.Errorf("EndTime = %q, want derived %q", s.EndTime, "15:00")
		}
		if !s.IsActive {
			t.Error("new session should start active")
		}
		if s.Records == nil || len(s.Records) != 0 {
			t.Errorf("Records = %+v, want empty", s.Records)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		body := []byte(`{"class_id":"1","course_code":"CS302","course_title":"Databases","date":"20/01/2024","start_time":"14:00","duration":60,"lecturer_id":"1"}`)
		req, rec := newRequest(http.MethodPost, "/v1/sessions", body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"date": "invalid date, expected YYYY-MM-DD"}),
		}, rec)
	})

	t.Run("missing fields", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/sessions", []byte(`{}`))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusBadRequest, rec)
	})
}

func Test_sessionApi_sessionUpdate(t *testing.T) {
	resetState(t)

	t.Run("deactivate", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/sessions/2", []byte(`{"is_active":false,"duration":120}`))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusOK, rec)

		var s attendance.Session
		unmarchal(t, rec, &s)
		if s.IsActive {
			t.Error("session should be deactivated")
		}
		if s.Duration != 120 {
			t.Errorf("Duration = %d, want 120", s.Duration)
		}
		// the stored end time is not recomputed on update
		if s.EndTime != "10:30" {
			t.Errorf("EndTime = %q, want untouched %q", s.EndTime, "10:30")
		}
	})

	t.Run("not found", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/sessions/999", []byte(`{"is_active":false}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})
}

func Test_sessionApi_sessionMark(t *testing.T) {
	resetState(t)

	t.Run("fresh mark", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/sessions/2/attendance", []byte(`{"student_id":"1","status":"present"}`))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusOK, rec)

		var r attendance.Record
		unmarchal(t, rec, &r)
		if r.Status != attendance.StatusPresent || r.StudentID != "1" {
			t.Errorf("record = %+v", r)
		}
		// the record inherits the session's class, date and lecturer
		if r.ClassID != "1" || r.Date != "2024-01-16" || r.LecturerID != "1" {
			t.Errorf("record did not inherit session fields: %+v", r)
		}
	})

	t.Run("re-mark replaces", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/sessions/2/attendance", []byte(`{"student_id":"1","status":"absent"}`))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusOK, rec)

		s, _ := repo.GetSession("2")
		if got := len(s.Records); got != 1 {
			t.Fatalf("records = %d, want 1", got)
		}
		if s.Records[0].Status != attendance.StatusAbsent {
			t.Errorf("Status = %q, want %q", s.Records[0].Status, attendance.StatusAbsent)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/sessions/999/attendance", []byte(`{"student_id":"1","status":"present"}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("bad status", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/sessions/2/attendance", []byte(`{"student_id":"1","status":"here"}`))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusBadRequest, rec)
	})
}
