package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

type accountApi struct {
	svc *attendance.Service
}

func registerAccountAPI(g *echo.Group, svc *attendance.Service) {
	api := accountApi{svc: svc}

	ag := g.Group("/accounts")
	ag.GET("", api.accountQuery)
	ag.POST("/:id/approve", api.accountApprove)
	ag.POST("/:id/reject", api.accountReject)

	g.GET("/current-user", api.currentUserRetrieve)
	g.PUT("/current-user", api.currentUserSet)
}

func (api *accountApi) accountQuery(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryPendingAccounts())
}

func (api *accountApi) accountApprove(ctx echo.Context) error {
	acct, ok := api.svc.ApproveAccount(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, acct)
}

func (api *accountApi) accountReject(ctx echo.Context) error {
	acct, ok := api.svc.RejectAccount(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, acct)
}

func (api *accountApi) currentUserRetrieve(ctx echo.Context) error {
	usr, ok := api.svc.CurrentUser()
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, usr)
}

type setCurrentUserRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=student lecturer admin"`
}

func (r *setCurrentUserRequest) Validate() error {
	r.Name = core.CleanString(r.Name)
	r.Role = core.CleanString(r.Role, true)
	return core.Validate.Struct(r)
}

func (api *accountApi) currentUserSet(ctx echo.Context) error {
	data := new(setCurrentUserRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr := attendance.CurrentUser{ID: data.ID, Name: data.Name, Role: data.Role}
	api.svc.SetCurrentUser(usr)
	return ctx.JSON(http.StatusOK, usr)
}
