package check_in

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
	msgNotConfirmed       = "бронирование не подтверждено"
	msgAlreadyCheckedIn   = "въезд уже зарегистрирован"
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

// Handle PATCH /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && err != io.EOF {
		h.logger.Warn("PATCH /bookings/{id}/check-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	qrCode := ""
	if req.QRCode != nil {
		qrCode = *req.QRCode
	}

	resp, err := h.service.CheckIn(r.Context(), bookingID, qrCode)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidQRCode):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Invalid QR code: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgInvalidQRCode)

		case errors.Is(err, bookings.ErrAlreadyCheckedIn):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Already checked in: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCheckedIn)

		case errors.Is(err, bookings.ErrNotConfirmed):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Not confirmed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotConfirmed)

		default:
			h.logger.Error("PATCH /bookings/{id}/check-in - Failed to check in: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     "booking.check_in",
		EntityType: "booking",
		EntityID:   bookingID,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})

	h.logger.Info("PATCH /bookings/{id}/check-in - Checked in successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
