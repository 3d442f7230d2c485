package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/ogurasousui/employee-directory/internal/adapters/http"
	"github.com/ogurasousui/employee-directory/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/memory"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	svc := employee.NewService(memory.NewEmployeeRepository(), nil)
	return adapthttp.NewRouter(svc, nil, zerolog.Nop())
}

func do(t *testing.T, e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func createEmployee(t *testing.T, e *echo.Echo, first, last, email string) handler.EmployeeResponse {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/employees", handler.EmployeeRequest{FirstName: first, LastName: last, Email: email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[handler.EmployeeResponse](t, rec)
}

func TestRouter_CreateAndGet(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	created := createEmployee(t, e, "Sihle", "Dlamini", "sihle@example.com")
	assert.NotZero(t, created.ID)

	rec := do(t, e, http.MethodGet, "/employees/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[handler.EmployeeResponse](t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_CreateTrimsPaddedFields(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	created := createEmployee(t, e, " Pad ", "Ded", " pad@gmail.com ")
	assert.Equal(t, "Pad", created.FirstName)
	assert.Equal(t, "pad@gmail.com", created.Email)

	rec := do(t, e, http.MethodPut, "/employees/1", handler.EmployeeRequest{FirstName: "Pad", LastName: " Ded ", Email: "\tpad2@gmail.com\n"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[handler.EmployeeResponse](t, rec)
	assert.Equal(t, "Ded", updated.LastName)
	assert.Equal(t, "pad2@gmail.com", updated.Email)

	rec = do(t, e, http.MethodPost, "/employees", handler.EmployeeRequest{FirstName: "   ", LastName: "Ded", Email: "x@gmail.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RequestIDIsPropagated(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestRouter_CreateDuplicateEmail(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	createEmployee(t, e, "Sihle", "Dlamini", "sihle@example.com")
	rec := do(t, e, http.MethodPost, "/employees", handler.EmployeeRequest{FirstName: "Other", LastName: "Person", Email: "sihle@example.com"})

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode[handler.HTTPError](t, rec)
	assert.Equal(t, "CONFLICT", body.Code)
	assert.Equal(t, http.StatusConflict, body.Status)

	list := decode[[]handler.EmployeeResponse](t, do(t, e, http.MethodGet, "/employees", nil))
	assert.Len(t, list, 1)
}

func TestRouter_CreateValidation(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/employees", map[string]string{"firstName": "Sihle", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[handler.HTTPError](t, rec)
	fields := map[string]string{}
	for _, fe := range body.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, "is required", fields["lastName"])
	assert.Equal(t, "must be a valid email address", fields["email"])

	malformed := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString("{"))
	malformed.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	mrec := httptest.NewRecorder()
	e.ServeHTTP(mrec, malformed)
	assert.Equal(t, http.StatusBadRequest, mrec.Code)
}

func TestRouter_ListEmptyIsArray(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_GetErrors(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/employees/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodGet, "/employees/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodGet, "/employees/0", nil).Code)
}

func TestRouter_Update(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	created := createEmployee(t, e, "Sihle", "Dlamini", "sihle@example.com")
	createEmployee(t, e, "Thabo", "Nkosi", "thabo@example.com")

	rec := do(t, e, http.MethodPut, "/employees/1", handler.EmployeeRequest{FirstName: "Zinhle", LastName: "Dlamini", Email: "zinhle@example.com"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[handler.EmployeeResponse](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Zinhle", updated.FirstName)
	assert.Equal(t, "zinhle@example.com", updated.Email)

	missing := do(t, e, http.MethodPut, "/employees/42", handler.EmployeeRequest{FirstName: "A", LastName: "B", Email: "a@example.com"})
	assert.Equal(t, http.StatusNotFound, missing.Code)

	clash := do(t, e, http.MethodPut, "/employees/1", handler.EmployeeRequest{FirstName: "Zinhle", LastName: "Dlamini", Email: "thabo@example.com"})
	assert.Equal(t, http.StatusConflict, clash.Code)
}

func TestRouter_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	createEmployee(t, e, "Sihle", "Dlamini", "sihle@example.com")

	for i := 0; i < 2; i++ {
		rec := do(t, e, http.MethodDelete, "/employees/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"employee deleted"}`, rec.Body.String())
	}

	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/employees/1", nil).Code)
	createEmployee(t, e, "Sihle", "Dlamini", "sihle@example.com")
}

func TestRouter_Search(t *testing.T) {
	t.Parallel()
	e := newTestRouter(t)

	first := createEmployee(t, e, "Sihle", "Dlamini", "sihle1@example.com")
	createEmployee(t, e, "Sihle", "Dlamini", "sihle2@example.com")

	for _, form := range []string{"", "structured-positional", "structured-named", "native-positional", "native-named"} {
		rec := do(t, e, http.MethodGet, "/employees/search?firstName=Sihle&lastName=Dlamini&form="+form, nil)
		require.Equal(t, http.StatusOK, rec.Code, "form %q: %s", form, rec.Body.String())
		assert.Equal(t, first.ID, decode[handler.EmployeeResponse](t, rec).ID, "form %q", form)
	}

	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/employees/search?firstName=No&lastName=Body", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodGet, "/employees/search?firstName=Sihle", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodGet, "/employees/search?firstName=Sihle&lastName=Dlamini&form=jpql", nil).Code)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	svc := employee.NewService(memory.NewEmployeeRepository(), nil)

	healthy := adapthttp.NewRouter(svc, stubPinger{}, zerolog.Nop())
	rec := do(t, healthy, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := adapthttp.NewRouter(svc, stubPinger{err: errors.New("dial tcp: refused")}, zerolog.Nop())
	assert.Equal(t, http.StatusServiceUnavailable, do(t, down, http.MethodGet, "/healthz", nil).Code)
}
