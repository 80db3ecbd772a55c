package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"user-registry/internal/domain"
	"user-registry/internal/repository/memory"
	"user-registry/internal/service"
)

const testSecret = "test-session-secret"

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRouter(t *testing.T, seed ...domain.User) (*gin.Engine, service.UserService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewUserService(memory.NewUserRepository(seed...), quietLogger())
	router := gin.New()
	NewHandler(svc, testSecret, quietLogger()).RegisterRoutes(router)
	return router, svc
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validBody = `{"first_name":"Alan","last_name":"Turing","email":"alan@example.com","phone":"555-0112","password":"enigma","age":"41.0"}`

func TestListUsersEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateAndGetUser(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/users", validBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, 41, created.Age)
	require.Equal(t, "enigma", created.Password)

	w = doJSON(router, http.MethodGet, "/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, created, got)

	w = doJSON(router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Equal(t, []domain.User{created}, all)
}

func TestCreateUserValidation(t *testing.T) {
	router, _ := newTestRouter(t, domain.User{ID: "1", Email: "alan@example.com", Phone: "000"})

	w := doJSON(router, http.MethodPost, "/users", `{"first_name":"A"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "last_name")

	w = doJSON(router, http.MethodPost, "/users", validBody)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "email is already in use")

	w = doJSON(router, http.MethodPost, "/users", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/users/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "error")
}

func TestUpdateUser(t *testing.T) {
	router, _ := newTestRouter(t, domain.User{ID: "u1", FirstName: "Alan", LastName: "Turing", Email: "a@x", Phone: "1", Password: "p", Age: 41})

	w := doJSON(router, http.MethodPut, "/users/u1", `{"last_name":"M. Turing"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, domain.User{ID: "u1", FirstName: "Alan", LastName: "M. Turing", Email: "a@x", Phone: "1", Password: "p", Age: 41}, got)

	w = doJSON(router, http.MethodPut, "/users/u2", `{"last_name":"x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	router, _ := newTestRouter(t, domain.User{ID: "u1"})

	w := doJSON(router, http.MethodDelete, "/users/u1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())

	w = doJSON(router, http.MethodGet, "/users/u1", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodDelete, "/users/u1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

type failingService struct {
	service.UserService
}

func (failingService) List(context.Context) ([]domain.User, error) {
	return nil, errors.New("disk on fire")
}

func TestInternalErrorIsNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(failingService{}, testSecret, quietLogger()).RegisterRoutes(router)

	w := doJSON(router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "disk on fire")
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodOptions, "/users", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
