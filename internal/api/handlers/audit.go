package handlers

import (
	"context"
	"net"
	"net/http"

	"github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
)

// AuditLog интерфейс журнала аудита
type AuditLog interface {
	Log(ctx context.Context, e audit.Entry) error
}

// AuditLogger минимальный интерфейс логирования для записи аудита
type AuditLogger interface {
	Warn(format string, v ...interface{})
}

// ClientIP извлекает IP клиента из запроса
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Audit пишет запись аудита best-effort: сбой аудита логируется,
// но не влияет на ответ клиенту
func Audit(ctx context.Context, log AuditLog, logger AuditLogger, e audit.Entry) {
	if log == nil {
		return
	}
	if err := log.Log(ctx, e); err != nil {
		logger.Warn("audit log failed: action=%s, entity=%s/%d: %v", e.Action, e.EntityType, e.EntityID, err)
	}
}
