package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/repository"
	"github.com/rlaig/ezorder/internal/service"
)

// fail maps a service or access error to its JSON response. Unexpected
// errors become a 500 whose cause reaches the request log.
func fail(c echo.Context, err error) error {
	var (
		ie *service.InputError
		ae *access.Error
	)
	switch {
	case errors.As(err, &ie):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ie.Error(), "fields": map[string]string{ie.Field: ie.Message}})
	case errors.Is(err, service.ErrEmailInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Email address is already in use", "fields": map[string]string{"email": "value must be unique"}})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrNoMerchantProfile), errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCannotAdvance), errors.Is(err, service.ErrOrderClosed), errors.Is(err, service.ErrCategoryInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.As(err, &ae):
		switch ae.Kind {
		case access.NotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": ae.Error()})
		case access.Conflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": ae.Error(), "fields": ae.Fields})
		case access.Invalid:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ae.Error() + ": " + errors.Unwrap(ae).Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, ae.Error()).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
}

// ErrorHandler renders echo errors as {"error": message}, matching the
// handlers' own error bodies.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := http.StatusInternalServerError, "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}

// pageParams reads page and perPage, leaving invalid values to the datastore defaults.
func pageParams(c echo.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	perPage, _ = strconv.Atoi(c.QueryParam("perPage"))
	return page, perPage
}
