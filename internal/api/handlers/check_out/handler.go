package check_out

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
	"github.com/m04kA/SMC-DockService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotCheckedIn       = "въезд не был зарегистрирован"
	msgAlreadyCheckedOut  = "выезд уже зарегистрирован"
	msgInvalidQRCode      = "неверный QR-код"
)

type Handler struct {
	service BookingService
	audit   handlers.AuditLog
	logger  Logger
}

func NewHandler(service BookingService, auditLog handlers.AuditLog, logger Logger) *Handler {
	return &Handler{
		service: service,
		audit:   auditLog,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/check-out
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-out - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CheckOutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && err != io.EOF {
		h.logger.Warn("PATCH /bookings/{id}/check-out - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	qrCode := ""
	if req.QRCode != nil {
		qrCode = *req.QRCode
	}

	resp, err := h.service.CheckOut(r.Context(), bookingID, qrCode)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/check-out - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidQRCode):
			h.logger.Warn("PATCH /bookings/{id}/check-out - Invalid QR code: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgInvalidQRCode)

		case errors.Is(err, bookings.ErrAlreadyCheckedOut):
			h.logger.Warn("PATCH /bookings/{id}/check-out - Already checked out: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCheckedOut)

		case errors.Is(err, bookings.ErrNotCheckedIn):
			h.logger.Warn("PATCH /bookings/{id}/check-out - Not checked in: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotCheckedIn)

		default:
			h.logger.Error("PATCH /bookings/{id}/check-out - Failed to check out: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     "booking.check_out",
		EntityType: "booking",
		EntityID:   bookingID,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})

	h.logger.Info("PATCH /bookings/{id}/check-out - Checked out successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
