package http

import (
	"errors"
	"net/http"

	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// writeError maps use case errors onto status codes. Anything unrecognised is a 500
// and its text stays in the log.
func (s *Server) writeError(c echo.Context, err error) error {
	var (
		transitionErr *order.InvalidTransitionError
		changeErr     *delivery.StatusChangeError
		validationErr validator.ValidationErrors
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &transitionErr):
		return c.JSON(http.StatusConflict, TransitionConflict{
			Code:      http.StatusConflict,
			Message:   transitionErr.Error(),
			Current:   transitionErr.Current.String(),
			Attempted: transitionErr.Attempted.String(),
		})
	case errors.As(err, &changeErr):
		return c.JSON(http.StatusConflict, TransitionConflict{
			Code:      http.StatusConflict,
			Message:   changeErr.Error(),
			Current:   changeErr.Current.String(),
			Attempted: changeErr.Attempted.String(),
		})
	case errors.Is(err, commands.ErrOrderAlreadyExists):
		return c.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})
	case errors.As(err, &validationErr),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, Error{Code: httpErr.Code, Message: http.StatusText(httpErr.Code)})
	}

	s.logger.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}
