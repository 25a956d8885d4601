package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
)

const (
	headerUserID    = "X-User-ID"
	headerUserType  = "X-User-Type"
	headerCompanyID = "X-Company-ID"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var validUserTypes = map[UserType]bool{
	UserTypeAdmin:     true,
	UserTypeScheduler: true,
	UserTypeCompany:   true,
	UserTypeDriver:    true,
}

// Authenticate извлекает identity из заголовков, проставленных
// API-шлюзом, и кладет ее в контекст запроса. Запросы без корректных
// заголовков отклоняются с 401.
func Authenticate(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - missing or invalid %s header", r.Method, r.URL.Path, headerUserID)
				handlers.RespondUnauthorized(w)
				return
			}

			userType := UserType(r.Header.Get(headerUserType))
			if !validUserTypes[userType] {
				logger.Warn("%s %s - unknown user type %q", r.Method, r.URL.Path, userType)
				handlers.RespondUnauthorized(w)
				return
			}

			identity := &Identity{
				UserID:   userID,
				UserType: userType,
			}

			if raw := r.Header.Get(headerCompanyID); raw != "" {
				companyID, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || companyID <= 0 {
					logger.Warn("%s %s - invalid %s header", r.Method, r.URL.Path, headerCompanyID)
					handlers.RespondUnauthorized(w)
					return
				}
				identity.CompanyID = &companyID
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}
