package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

type classApi struct {
	svc *attendance.Service
}

func registerClassAPI(g *echo.Group, svc *attendance.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes")
	cg.GET("", api.classQuery)
	cg.POST("", api.classCreate)
	cg.GET("/:id", api.classRetrieve)
	cg.POST("/:id/students", api.classEnrollStudents)
}

func (api *classApi) classQuery(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryClasses())
}

func (api *classApi) classCreate(ctx echo.Context) error {
	data := new(attendance.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.AddClass(*data))
}

func (api *classApi) classRetrieve(ctx echo.Context) error {
	c, ok := api.svc.GetClass(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, c)
}

type enrollStudentsRequest struct {
	Students []attendance.NewStudent `json:"students" validate:"required,min=1"`
}

func (r *enrollStudentsRequest) Validate() error {
	if err := core.Validate.Struct(r); err != nil {
		return err
	}
	for i := range r.Students {
		if err := r.Students[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// classEnrollStudents creates the given students and assigns them all to the
// class: they land in the students collection and in the class's student list.
func (api *classApi) classEnrollStudents(ctx echo.Context) error {
	data := new(enrollStudentsRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	students := api.svc.EnrollStudents(ctx.Param("id"), data.Students)
	return ctx.JSON(http.StatusCreated, students)
}
