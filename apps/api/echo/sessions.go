package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type sessionApi struct {
	svc   *attendance.Service
	clock attendance.Clock
}

func registerSessionAPI(g *echo.Group, svc *attendance.Service, clock attendance.Clock) {
	api := sessionApi{svc: svc, clock: clock}

	sg := g.Group("/sessions")
	sg.GET("", api.sessionQuery)
	sg.POST("", api.sessionCreate)

	dg := sg.Group("/:id")
	dg.GET("", api.sessionRetrieve)
	dg.PUT("", api.sessionUpdate)
	dg.POST("/attendance", api.sessionMark)
}

func (api *sessionApi) sessionQuery(ctx echo.Context) error {
	sessions := api.svc.QuerySessions()

	if classID := ctx.QueryParam("class_id"); classID != "" {
		sessions = attendance.SessionsForClass(sessions, classID)
	}
	if lecturerID := ctx.QueryParam("lecturer_id"); lecturerID != "" {
		sessions = attendance.SessionsForLecturer(sessions, lecturerID)
	}

	if bucket := ctx.QueryParam("bucket"); bucket != "" {
		at := new(At)
		if err := at.Bind(ctx, api.clock); err != nil {
			return err
		}
		filtered := make([]attendance.Session, 0, len(sessions))
		for _, s := range sessions {
			if attendance.Classify(s, at.Time).String() == bucket {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) sessionCreate(ctx echo.Context) error {
	data := new(attendance.NewSession)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.CreateSession(*data))
}

func (api *sessionApi) sessionRetrieve(ctx echo.Context) error {
	s, ok := api.svc.GetSession(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *sessionApi) sessionUpdate(ctx echo.Context) error {
	data := new(attendance.UpdateSession)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	s, ok := api.svc.UpdateSession(ctx.Param("id"), *data)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, s)
}

// sessionMark upserts the student's present/absent record for the session;
// marking again replaces the prior record.
func (api *sessionApi) sessionMark(ctx echo.Context) error {
	data := new(attendance.MarkRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rec, ok := api.svc.Mark(ctx.Param("id"), *data)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, rec)
}
