package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// EmployeeRequest は作成・更新で共通のリクエストボディです。
type EmployeeRequest struct {
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=320"`
}

// EmployeeResponse は社員の JSON 表現です。
type EmployeeResponse struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// SearchQuery は氏名検索のクエリパラメータです。
type SearchQuery struct {
	FirstName string `query:"firstName" validate:"required"`
	LastName  string `query:"lastName" validate:"required"`
	Form      string `query:"form"`
}

// MessageResponse は本文のない成功応答です。
type MessageResponse struct {
	Message string `json:"message"`
}

func toEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
}

func toEmployeeResponses(list []*employee.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out
}

// newValidator はエラーのフィールド名に json / query タグ名を使う validator を返します。
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

func validationError(err error) *HTTPError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newHTTPError(http.StatusBadRequest, "validation failed")
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Error: validationMessage(fe)})
	}
	return newHTTPError(http.StatusBadRequest, "validation failed", fields...)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	default:
		return fe.Tag()
	}
}
