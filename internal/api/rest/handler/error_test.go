package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pelmenoff/m2-hw12/internal/model"
	"github.com/Pelmenoff/m2-hw12/internal/testutil"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantChall  bool
	}{
		{
			name:       "validation",
			err:        model.NewValidationError("first_name is required"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"first_name is required"}`,
		},
		{
			name:       "not found",
			err:        model.NewError(model.ErrNotFound, "Contact not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Contact not found"}`,
		},
		{
			name:       "bare not found sentinel",
			err:        fmt.Errorf("lookup: %w", model.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"lookup: not found"}`,
		},
		{
			name:       "conflict",
			err:        model.NewError(model.ErrConflict, "User with this email already exists"),
			wantStatus: http.StatusConflict,
			wantBody:   `{"detail":"User with this email already exists"}`,
		},
		{
			name:       "unauthorized",
			err:        model.NewError(model.ErrUnauthorized, "Incorrect username or password"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"detail":"Incorrect username or password"}`,
			wantChall:  true,
		},
		{
			name:       "internal",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			handleError(rec, testutil.MakeNoopLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			if tt.wantChall {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
