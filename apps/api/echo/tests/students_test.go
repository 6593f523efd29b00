package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/mahudhurio/core/attendance"
)

func Test_studentApi_studentQuery(t *testing.T) {
	resetState(t)

	req, rec := newRequest(http.MethodGet, "/v1/students")
	app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, repo.QueryStudents())}, rec)
}

func Test_studentApi_studentCreate(t *testing.T) {
	resetState(t)

	t.Run("ok", func(t *testing.T) {
		body := []byte(`{"name":"  Chipo Banda ","reg_no":"CS2021010","email":"CHIPO@university.edu","year":1,"department":"Computer Science","class_id":"1"}`)
		req, rec := newRequest(http.MethodPost, "/v1/students", body)
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusCreated, rec)

		var stu attendance.Student
		unmarchal(t, rec, &stu)
		if stu.ID == "" {
			t.Error("created student should get an id")
		}
		if stu.Name != "Chipo Banda" {
			t.Errorf("Name = %q, want cleaned %q", stu.Name, "Chipo Banda")
		}
		if stu.Email != "chipo@university.edu" {
			t.Errorf("Email = %q, want lowercased", stu.Email)
		}
		if _, ok := repo.GetStudent(stu.ID); !ok {
			t.Error("created student not in store")
		}
	})

	t.Run("validation", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/students", []byte(`{}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name":   "this field is required",
				"reg_no": "this field is required",
			}),
		}, rec)
	})
}

func Test_studentApi_studentRetrieve(t *testing.T) {
	resetState(t)

	stu, _ := repo.GetStudent("1")
	tests := []httpTest{
		{name: "found", path: "/v1/students/1", wantCode: http.StatusOK, wantData: marchallObj(t, stu)},
		{name: "not found", path: "/v1/students/999", wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_studentUpdate(t *testing.T) {
	resetState(t)

	t.Run("merges provided fields only", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/students/1", []byte(`{"name":"Johnny Doe","year":4}`))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusOK, rec)

		var stu attendance.Student
		unmarchal(t, rec, &stu)
		if stu.Name != "Johnny Doe" || stu.Year != 4 {
			t.Errorf("update not applied: %+v", stu)
		}
		if stu.RegNo != "CS2021001" || stu.ClassID != "1" {
			t.Errorf("untouched fields changed: %+v", stu)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/students/999", []byte(`{"name":"Ghost"}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})
}

func Test_studentApi_studentDestroy(t *testing.T) {
	resetState(t)

	req, rec := newRequest(http.MethodDelete, "/v1/students/5")
	app.ServeHTTP(rec, req)
	checkCode(t, http.StatusNoContent, rec)
	if _, ok := repo.GetStudent("5"); ok {
		t.Error("student 5 should be gone")
	}

	// deleting again stays a no-op
	req, rec = newRequest(http.MethodDelete, "/v1/students/5")
	app.ServeHTTP(rec, req)
	checkCode(t, http.StatusNoContent, rec)
	if got := len(repo.QueryStudents()); got != 4 {
		t.Errorf("students len = %d, want 4", got)
	}
}

func Test_classApi(t *testing.T) {
	resetState(t)

	t.Run("query includes derived membership", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/classes")
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusOK, rec)

		var classes []attendance.Class
		unmarchal(t, rec, &classes)
		if len(classes) != 3 {
			t.Fatalf("classes len = %d, want 3", len(classes))
		}
		if got := len(classes[0].Students); got != 3 {
			t.Errorf("class 1 students = %d, want 3", got)
		}
	})

	t.Run("create", func(t *testing.T) {
		body := []byte(`{"name":"Operating Systems","subject":"Computer Science","lecturer_id":"1","year":3,"department":"Computer Science"}`)
		req, rec := newRequest(http.MethodPost, "/v1/classes", body)
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusCreated, rec)

		var c attendance.Class
		unmarchal(t, rec, &c)
		if c.ID == "" {
			t.Error("created class should get an id")
		}
		if _, ok := repo.GetClass(c.ID); !ok {
			t.Error("created class not in store")
		}
	})

	t.Run("enroll students", func(t *testing.T) {
		body := []byte(`{"students":[{"name":"A Student","reg_no":"DS100"},{"name":"B Student","reg_no":"DS101"}]}`)
		req, rec := newRequest(http.MethodPost, "/v1/classes/3/students", body)
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusCreated, rec)

		var students []attendance.Student
		unmarchal(t, rec, &students)
		if len(students) != 2 {
			t.Fatalf("students len = %d, want 2", len(students))
		}
		if students[0].ClassID != "3" {
			t.Errorf("ClassID = %q, want %q", students[0].ClassID, "3")
		}

		c, _ := repo.GetClass("3")
		if got := len(c.Students); got != 2 {
			t.Errorf("class 3 derived students = %d, want 2", got)
		}
	})

	t.Run("enroll requires students", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/classes/3/students", []byte(`{"students":[]}`))
		app.ServeHTTP(rec, req)
		checkCode(t, http.StatusBadRequest, rec)
	})
}
