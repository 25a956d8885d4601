package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
)

const msgAccessDenied = "доступ запрещен"

// Ресурсы и действия для матрицы доступа
const (
	ResourceSlots    = "slots"
	ResourceBookings = "bookings"

	ActionManage     = "manage"     // создание, изменение, удаление, блокировка
	ActionRead       = "read"       // чтение и списки
	ActionBook       = "book"       // создание и изменение бронирований
	ActionApprove    = "approve"    // подтверждение pending-бронирований
	ActionGate       = "gate"       // check-in / check-out
	ActionOverride   = "override"   // административная смена статуса
	ActionReschedule = "reschedule" // ручной запуск переноса
)

// capabilities матрица доступа: роль -> разрешенные пары ресурс/действие
var capabilities = map[UserType]map[string]map[string]bool{
	UserTypeAdmin: {
		ResourceSlots:    {ActionManage: true, ActionRead: true},
		ResourceBookings: {ActionBook: true, ActionRead: true, ActionApprove: true, ActionGate: true, ActionOverride: true, ActionReschedule: true},
	},
	UserTypeScheduler: {
		ResourceSlots:    {ActionManage: true, ActionRead: true},
		ResourceBookings: {ActionBook: true, ActionRead: true, ActionApprove: true, ActionGate: true, ActionReschedule: true},
	},
	UserTypeCompany: {
		ResourceSlots:    {ActionRead: true},
		ResourceBookings: {ActionBook: true, ActionRead: true},
	},
	UserTypeDriver: {
		ResourceSlots:    {ActionRead: true},
		ResourceBookings: {ActionRead: true, ActionGate: true},
	},
}

// Allowed сообщает, разрешено ли действие над ресурсом для роли
func Allowed(userType UserType, resource, action string) bool {
	return capabilities[userType][resource][action]
}

// Authorize проверяет право identity на действие над ресурсом.
// Должен стоять после Authenticate.
func Authorize(resource, action string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				handlers.RespondUnauthorized(w)
				return
			}

			if !Allowed(identity.UserType, resource, action) {
				logger.Warn("%s %s - access denied: user_id=%d, type=%s, resource=%s, action=%s",
					r.Method, r.URL.Path, identity.UserID, identity.UserType, resource, action)
				handlers.RespondForbidden(w, msgAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
