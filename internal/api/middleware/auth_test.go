package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestAuthenticate(t *testing.T) {
	var captured *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Authenticate(nopLogger{})(next)

	t.Run("valid headers", func(t *testing.T) {
		captured = nil
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		req.Header.Set("X-User-ID", "7")
		req.Header.Set("X-User-Type", "company")
		req.Header.Set("X-Company-ID", "3")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, int64(7), captured.UserID)
		assert.Equal(t, UserTypeCompany, captured.UserType)
		require.NotNil(t, captured.CompanyID)
		assert.Equal(t, int64(3), *captured.CompanyID)
	})

	t.Run("company header optional", func(t *testing.T) {
		captured = nil
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		req.Header.Set("X-User-ID", "7")
		req.Header.Set("X-User-Type", "admin")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Nil(t, captured.CompanyID)
		assert.True(t, captured.IsAdmin())
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name    string
			headers map[string]string
		}{
			{name: "no headers", headers: map[string]string{}},
			{name: "missing user type", headers: map[string]string{"X-User-ID": "7"}},
			{name: "non-numeric user id", headers: map[string]string{"X-User-ID": "abc", "X-User-Type": "admin"}},
			{name: "zero user id", headers: map[string]string{"X-User-ID": "0", "X-User-Type": "admin"}},
			{name: "unknown user type", headers: map[string]string{"X-User-ID": "7", "X-User-Type": "superuser"}},
			{name: "invalid company id", headers: map[string]string{"X-User-ID": "7", "X-User-Type": "company", "X-Company-ID": "-1"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				captured = nil
				req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
				for k, v := range tt.headers {
					req.Header.Set(k, v)
				}
				rec := httptest.NewRecorder()

				handler.ServeHTTP(rec, req)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Nil(t, captured)
			})
		}
	})
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		userType UserType
		resource string
		action   string
		want     bool
	}{
		{UserTypeAdmin, ResourceSlots, ActionManage, true},
		{UserTypeAdmin, ResourceBookings, ActionOverride, true},
		{UserTypeAdmin, ResourceBookings, ActionReschedule, true},

		{UserTypeScheduler, ResourceSlots, ActionManage, true},
		{UserTypeScheduler, ResourceBookings, ActionApprove, true},
		{UserTypeScheduler, ResourceBookings, ActionOverride, false},

		{UserTypeCompany, ResourceSlots, ActionRead, true},
		{UserTypeCompany, ResourceSlots, ActionManage, false},
		{UserTypeCompany, ResourceBookings, ActionBook, true},
		{UserTypeCompany, ResourceBookings, ActionApprove, false},
		{UserTypeCompany, ResourceBookings, ActionGate, false},

		{UserTypeDriver, ResourceSlots, ActionRead, true},
		{UserTypeDriver, ResourceBookings, ActionGate, true},
		{UserTypeDriver, ResourceBookings, ActionBook, false},
		{UserTypeDriver, ResourceBookings, ActionOverride, false},

		{UserType("ghost"), ResourceSlots, ActionRead, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Allowed(tt.userType, tt.resource, tt.action),
			"%s %s %s", tt.userType, tt.resource, tt.action)
	}
}

func TestAuthorize(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := Authorize(ResourceBookings, ActionOverride, nopLogger{})(next)

	t.Run("allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/1/status", nil)
		req = req.WithContext(withIdentity(req.Context(), &Identity{UserID: 1, UserType: UserTypeAdmin}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/1/status", nil)
		req = req.WithContext(withIdentity(req.Context(), &Identity{UserID: 1, UserType: UserTypeDriver}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/1/status", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
