package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pelmenoff/m2-hw12/internal/mocks"
	"github.com/Pelmenoff/m2-hw12/internal/model"
	"github.com/Pelmenoff/m2-hw12/internal/testutil"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAuth_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        func() *http.Request
		setup      func(s *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "query parameters",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/register/?email=a@x.com&password=pw1", nil)
			},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "a@x.com", "pw1").Return(model.User{ID: 1, Email: "a@x.com"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":1,"email":"a@x.com"}`,
		},
		{
			name: "form body",
			req: func() *http.Request {
				return postForm("/register/", url.Values{"email": {"a@x.com"}, "password": {"pw1"}})
			},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "a@x.com", "pw1").Return(model.User{ID: 1, Email: "a@x.com"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":1,"email":"a@x.com"}`,
		},
		{
			name: "duplicate email",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/register/?email=a@x.com&password=pw1", nil)
			},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "a@x.com", "pw1").
					Return(model.User{}, model.NewError(model.ErrConflict, "User with this email already exists"))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"detail":"User with this email already exists"}`,
		},
		{
			name: "missing password",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/register/?email=a@x.com", nil)
			},
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "a@x.com", "").
					Return(model.User{}, model.NewValidationError("email and password required"))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"email and password required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewAuthService(t)
			tt.setup(svc)
			h := NewAuth(svc, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Register(rec, tt.req())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAuth_Login(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		setup      func(s *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			form: url.Values{"username": {"a@x.com"}, "password": {"pw1"}},
			setup: func(s *mocks.AuthService) {
				s.On("Login", mock.Anything, "a@x.com", "pw1").
					Return(model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"access_token":"acc","refresh_token":"ref","token_type":"bearer"}`,
		},
		{
			name: "wrong password",
			form: url.Values{"username": {"a@x.com"}, "password": {"bad"}},
			setup: func(s *mocks.AuthService) {
				s.On("Login", mock.Anything, "a@x.com", "bad").
					Return(model.TokenPair{}, model.NewError(model.ErrUnauthorized, "Incorrect username or password"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Incorrect username or password"}`,
		},
		{
			name:       "missing fields",
			form:       url.Values{"username": {"a@x.com"}},
			setup:      func(*mocks.AuthService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"username and password required"}`,
		},
		{
			name: "service failure",
			form: url.Values{"username": {"a@x.com"}, "password": {"pw1"}},
			setup: func(s *mocks.AuthService) {
				s.On("Login", mock.Anything, "a@x.com", "pw1").Return(model.TokenPair{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewAuthService(t)
			tt.setup(svc)
			h := NewAuth(svc, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Login(rec, postForm("/token/", tt.form))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAuth_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "ref").Return("acc2", nil)
		h := NewAuth(svc, testutil.MakeNoopLogger())

		req := httptest.NewRequest(http.MethodPost, "/token/refresh/", nil)
		req.Header.Set("Authorization", "Bearer ref")
		rec := httptest.NewRecorder()
		h.Refresh(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"access_token":"acc2","token_type":"bearer"}`, rec.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/token/refresh/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Not authenticated"}`, rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "acc").
			Return("", model.NewError(model.ErrUnauthorized, "Invalid refresh token"))
		h := NewAuth(svc, testutil.MakeNoopLogger())

		req := httptest.NewRequest(http.MethodPost, "/token/refresh/", nil)
		req.Header.Set("Authorization", "Bearer acc")
		rec := httptest.NewRecorder()
		h.Refresh(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"detail":"Invalid refresh token"}`, rec.Body.String())
	})
}
