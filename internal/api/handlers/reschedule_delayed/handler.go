package reschedule_delayed

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	rescheduleDelayed "github.com/m04kA/SMC-DockService/internal/usecase/reschedule_delayed"
)

const msgAlreadyRunning = "перенос отложенных бронирований уже выполняется"

type Handler struct {
	useCase RescheduleDelayedUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleDelayedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/reschedule-delayed
// Ручной запуск того же прохода, что выполняет планировщик по таймеру
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	resp, err := h.useCase.Execute(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, rescheduleDelayed.ErrAlreadyRunning):
			h.logger.Warn("POST /bookings/reschedule-delayed - Already running: user_id=%d", identity.UserID)
			handlers.RespondConflict(w, msgAlreadyRunning)

		default:
			h.logger.Error("POST /bookings/reschedule-delayed - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/reschedule-delayed - Run finished: processed=%d, rescheduled=%d, skipped=%d, failed=%d, user_id=%d",
		resp.ProcessedCount, resp.RescheduledCount, resp.SkippedCount, resp.FailedCount, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
