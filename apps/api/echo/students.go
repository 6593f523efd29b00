package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type studentApi struct {
	svc *attendance.Service
}

func registerStudentAPI(g *echo.Group, svc *attendance.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.GET("", api.studentQuery)
	sg.POST("", api.studentCreate)

	dg := sg.Group("/:id")
	dg.GET("", api.studentRetrieve)
	dg.PUT("", api.studentUpdate)
	dg.DELETE("", api.studentDestroy)
}

func (api *studentApi) studentQuery(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryStudents())
}

func (api *studentApi) studentCreate(ctx echo.Context) error {
	data := new(attendance.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.AddStudent(*data))
}

func (api *studentApi) studentRetrieve(ctx echo.Context) error {
	stu, ok := api.svc.GetStudent(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) studentUpdate(ctx echo.Context) error {
	data := new(attendance.UpdateStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	stu, ok := api.svc.UpdateStudent(ctx.Param("id"), *data)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, stu)
}

// studentDestroy removes the student; deleting an unknown id is a no-op.
func (api *studentApi) studentDestroy(ctx echo.Context) error {
	api.svc.DeleteStudent(ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}
