package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/attendance"
)

var atParam = "at"

// At is the reference instant session windows are evaluated against. It
// defaults to the injected clock and may be overridden with an `at` query
// parameter (RFC 3339) so any instant can be replayed.
type At struct {
	Time time.Time
}

func (a *At) Bind(ctx echo.Context, clock attendance.Clock) error {
	a.Time = clock.Now()

	val := ctx.QueryParam(atParam)
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid `at` parameter, expected RFC 3339")
	}
	a.Time = t.In(time.Local)
	return nil
}
