package api

import (
	"errors"
	"net/http"

	"restaurante/services"

	"github.com/labstack/echo/v4"
)

// toHTTPError maps services errors onto status codes. Anything unknown is a 500.
func toHTTPError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error()).SetInternal(err)
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, services.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, err.Error()).SetInternal(err)
	case errors.Is(err, services.ErrUnknownCliente),
		errors.Is(err, services.ErrUnknownIngrediente),
		errors.Is(err, services.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}
