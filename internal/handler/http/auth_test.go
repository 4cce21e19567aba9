package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/makarovdm/go-sync-suite/internal/service"
	"github.com/makarovdm/go-sync-suite/internal/store"
)

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		registerErr error
		wantStatus  int
		wantToken   bool
	}{
		{
			name:       "success",
			body:       `{"login":"dmitry","password":"secret"}`,
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name:       "malformed json",
			body:       `{"login":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "missing credentials",
			body:        `{"login":"dmitry"}`,
			registerErr: service.ErrInvalidDataProvided,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "duplicate login",
			body:        `{"login":"dmitry","password":"secret"}`,
			registerErr: store.ErrLoginAlreadyExists,
			wantStatus:  http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(&fakeAuthService{userID: 7, registerErr: tt.registerErr}, &fakeRecordService{})
			router := h.Init()

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantToken {
				assert.Equal(t, "Bearer signed-token", rec.Header().Get("Authorization"))
			} else {
				assert.Empty(t, rec.Header().Get("Authorization"))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		loginErr   error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "wrong password", loginErr: service.ErrWrongPassword, wantStatus: http.StatusUnauthorized},
		{name: "unknown login", loginErr: store.ErrNoUserWasFound, wantStatus: http.StatusUnauthorized},
		{name: "storage failure", loginErr: errBoom, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(&fakeAuthService{userID: 7, loginErr: tt.loginErr}, &fakeRecordService{})
			router := h.Init()

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
				strings.NewReader(`{"login":"dmitry","password":"secret"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "Bearer signed-token", rec.Header().Get("Authorization"))
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "valid bearer token", header: "Bearer signed-token", wantStatus: http.StatusOK},
		{name: "valid query token", query: "?token=signed-token", wantStatus: http.StatusOK},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "signed-token", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(&fakeAuthService{userID: 7}, &fakeRecordService{})
			router := h.Init()

			req := httptest.NewRequest(http.MethodGet, "/api/record/"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
