package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// EmployeeHandler は社員 API の HTTP ハンドラです。
type EmployeeHandler struct {
	svc      employee.UseCase
	validate *validator.Validate
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, validate: newValidator()}
}

// Register はルートを登録します。/employees/search は /employees/:id より先に登録します。
func (h *EmployeeHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create は POST /employees を処理します。
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req EmployeeRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	created, err := h.svc.CreateEmployee(c.Request().Context(), employee.CreateEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEmployeeResponse(created))
}

// List は GET /employees を処理します。
func (h *EmployeeHandler) List(c echo.Context) error {
	list, err := h.svc.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(list))
}

// Get は GET /employees/:id を処理します。
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	found, err := h.svc.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if found == nil {
		return errEmployeeNotFound
	}

	return c.JSON(http.StatusOK, toEmployeeResponse(found))
}

// Update は PUT /employees/:id を処理します。対象を取得してから差分を適用します。
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req EmployeeRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.svc.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errEmployeeNotFound
	}

	updated, err := h.svc.UpdateEmployee(ctx, existing, employee.UpdateEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeResponse(updated))
}

// Delete は DELETE /employees/:id を処理します。
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEmployee(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "employee deleted"})
}

// Search は GET /employees/search を処理します。
func (h *EmployeeHandler) Search(c echo.Context) error {
	var q SearchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return newHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := h.validate.Struct(q); err != nil {
		return validationError(err)
	}

	form, err := employee.ParseQueryForm(q.Form)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, err.Error(), FieldError{Field: "form", Error: "must be one of: structured-positional structured-named native-positional native-named"})
	}

	found, err := h.svc.FindEmployeeByName(c.Request().Context(), employee.FindEmployeeByNameInput{
		FirstName: q.FirstName,
		LastName:  q.LastName,
		Form:      form,
	})
	if err != nil {
		return err
	}
	if found == nil {
		return errEmployeeNotFound
	}

	return c.JSON(http.StatusOK, toEmployeeResponse(found))
}

func (h *EmployeeHandler) bind(c echo.Context, req *EmployeeRequest) error {
	if err := c.Bind(req); err != nil {
		return newHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// 検証タグは前後の空白を許さないため、検証前に揃えておく。
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, newHTTPError(http.StatusBadRequest, "id must be a positive integer", FieldError{Field: "id", Error: "must be a positive integer"})
	}
	return id, nil
}
