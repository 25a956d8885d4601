package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("audit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("audit.repository: failed to execute query")
)

// Entry запись журнала аудита: одно мутирующее действие
type Entry struct {
	Action     string
	EntityType string
	EntityID   int64
	Payload    *string
	ActorID    int64
	ActorIP    string
}

// Repository insert-only репозиторий журнала аудита.
// Пишется хендлерами после успешной мутации, вне доменной транзакции -
// сбой аудита не откатывает бизнес-операцию.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Log записывает одно действие в журнал аудита
func (r *Repository) Log(ctx context.Context, e Entry) error {
	query, args, err := psqlbuilder.Insert("audit_log").
		Columns(
			"action",
			"entity_type",
			"entity_id",
			"payload",
			"actor_id",
			"actor_ip",
		).
		Values(
			e.Action,
			e.EntityType,
			e.EntityID,
			e.Payload,
			e.ActorID,
			e.ActorIP,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Log - build insert query: %v", ErrBuildQuery, err)
	}

	// Аудит пишется вне транзакции запроса намеренно
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Log - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
