package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/logging"
)

// FieldError はフィールド単位の検証エラーです。
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError は API が返すエラーレスポンスです。
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func newHTTPError(status int, message string, fields ...FieldError) *HTTPError {
	return &HTTPError{
		Code:    statusCode(status),
		Message: message,
		Status:  status,
		Errors:  fields,
	}
}

func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

var errEmployeeNotFound = newHTTPError(http.StatusNotFound, "employee not found")

func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	var echoErr *echo.HTTPError

	switch {
	case err == nil:
		return nil
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, employee.ErrInvalidFirstName):
		return newHTTPError(http.StatusBadRequest, err.Error(), FieldError{Field: "firstName", Error: "is required"})
	case errors.Is(err, employee.ErrInvalidLastName):
		return newHTTPError(http.StatusBadRequest, err.Error(), FieldError{Field: "lastName", Error: "is required"})
	case errors.Is(err, employee.ErrInvalidEmail):
		return newHTTPError(http.StatusBadRequest, err.Error(), FieldError{Field: "email", Error: "must be a valid email address"})
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidQueryForm):
		return newHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, employee.ErrDuplicateEmail):
		return newHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return errEmployeeNotFound
	case errors.As(err, &echoErr):
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return newHTTPError(echoErr.Code, message)
	default:
		return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// ErrorHandler はハンドラが返したエラーを JSON レスポンスに変換します。
// 5xx の場合は元のエラーを記録し、クライアントには汎用メッセージのみを返します。
func ErrorHandler(fallback zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		resp := toHTTPError(err)

		logger := logging.FromContext(c.Request().Context(), fallback)
		event := logger.Warn()
		if resp.Status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Err(err).Int("status", resp.Status).Str("error_code", resp.Code).Msg("request failed")

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.Status)
			return
		}
		_ = c.JSON(resp.Status, resp)
	}
}

// StatusOf はエラーが返すことになる HTTP ステータスを返します。
func StatusOf(err error) int {
	if resp := toHTTPError(err); resp != nil {
		return resp.Status
	}
	return http.StatusOK
}
