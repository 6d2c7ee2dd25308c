package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"noteful/internal/delivery/api/response"
	deliverycontext "noteful/internal/delivery/context"
	"noteful/internal/domain/entity"
	domainerrors "noteful/internal/domain/errors"
	"noteful/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{header: "bearer abc", expected: "abc"},
		{header: "BEARER   abc  ", expected: "abc"},
		{header: "Basic dXNlcjpwYXNz", expected: ""},
		{header: "Bearer", expected: ""},
		{header: "", expected: ""},
		{header: "abc.def.ghi", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, BearerToken(tt.header))
		})
	}
}

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError
	e.GET("/fail", func(c echo.Context) error {
		deliverycontext.SetRequestID(c, "req-1")

		return err
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestErrorMiddleware_AppError(t *testing.T) {
	rec, body := serveError(t, errors.WithStack(domainerrors.ErrMissingField("username")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.NameValidation, body.Name)
	assert.Equal(t, "MISSING_FIELD", body.Code)
	assert.Equal(t, "Missing 'username' in request body", body.Message)
	assert.Equal(t, "username", body.Details)
	assert.Equal(t, "req-1", body.Meta.RequestID)
}

func TestErrorMiddleware_UnauthorizedHidesDetails(t *testing.T) {
	rec, body := serveError(t, domainerrors.ErrAuthUnauthorized.WithDetails("password mismatch"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.NameAuthentication, body.Name)
	assert.Equal(t, "Unauthorized", body.Message)
	assert.Nil(t, body.Details)
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec, body := serveError(t, echo.NewHTTPError(http.StatusMethodNotAllowed))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "HTTP_ERROR", body.Code)
	assert.Equal(t, http.StatusText(http.StatusMethodNotAllowed), body.Message)
}

func TestErrorMiddleware_UnknownErrorIsInternal(t *testing.T) {
	rec, body := serveError(t, errors.New("db password is hunter2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domainerrors.NameInternal, body.Name)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

type stubAuthUsecase struct {
	usecase.AuthUsecase

	user *entity.User
	err  error
	seen string
}

func (s *stubAuthUsecase) Authenticate(_ context.Context, token string) (*entity.User, error) {
	s.seen = token

	return s.user, s.err
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "alice"}
	stub := &stubAuthUsecase{user: user}

	e := echo.New()
	var seen *entity.User
	handler := NewAuthMiddleware(stub).Authenticate(func(c echo.Context) error {
		seen, _ = deliverycontext.GetUser(c.Request().Context())

		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec := httptest.NewRecorder()

	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "tok", stub.seen)
	assert.Equal(t, user, seen)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	stub := &stubAuthUsecase{err: domainerrors.ErrAuthUnauthorized.WrapMessage("missing bearer token")}

	e := echo.New()
	handler := NewAuthMiddleware(stub).Authenticate(func(c echo.Context) error {
		t.Fatal("handler must not run")

		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	err := handler(e.NewContext(req, httptest.NewRecorder()))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthUnauthorized))
	assert.Empty(t, stub.seen)
}
