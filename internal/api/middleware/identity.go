package middleware

import "context"

// UserType роль вызывающего пользователя
type UserType string

const (
	UserTypeAdmin     UserType = "admin"
	UserTypeScheduler UserType = "scheduler"
	UserTypeCompany   UserType = "company"
	UserTypeDriver    UserType = "driver"
)

// Identity данные аутентифицированного пользователя из заголовков
// API-шлюза
type Identity struct {
	UserID    int64
	UserType  UserType
	CompanyID *int64
}

// IsAdmin сообщает, имеет ли пользователь административную роль
func (i *Identity) IsAdmin() bool {
	return i.UserType == UserTypeAdmin
}

type ctxKey struct{}

// withIdentity кладет identity в контекст запроса
func withIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// IdentityFromContext извлекает identity из контекста.
// Возвращает nil, если запрос не прошел аутентификацию.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(ctxKey{}).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
