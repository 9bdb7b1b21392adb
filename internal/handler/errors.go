package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "dataconsult/internal/errors"
)

// httpError maps a service error onto the response envelope. The original
// error rides along as Internal so the error handler can log it.
func httpError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "Invalid request body",
			Code:  apperrors.KindValidation.String(),
		}).SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return httpError(err)
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, httpError(apperrors.Validation("Invalid " + name))
	}
	return uint(id), nil
}

// ErrorHandler renders every failure as {error, code} and logs server-side
// failures with their cause. The client only ever sees the safe message.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status int
			body   apperrors.ErrorResponse
			cause  = err
		)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body = apperrors.ErrorResponse{Error: msg}
			default:
				body = apperrors.ErrorResponse{Error: http.StatusText(status)}
			}
			if he.Internal != nil {
				cause = he.Internal
			}
		} else {
			httpErr := apperrors.MapErrorToHTTP(err)
			status, body = httpErr.StatusCode, httpErr.ToErrorResponse()
		}

		if status >= http.StatusInternalServerError {
			body = apperrors.ErrorResponse{Error: "Internal server error", Code: apperrors.KindInternal.String()}
			LoggerFrom(c.Request().Context(), logger).ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", cause,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("write error response", "error", writeErr)
		}
	}
}
