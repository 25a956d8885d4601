package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DockService/internal/api/handlers"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
	createBooking "github.com/m04kA/SMC-DockService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCompanyNotFound    = "компания не найдена"
	msgCompanyInactive    = "компания деактивирована"
	msgLicenseLimit       = "достигнут лимит бронирований по тарифу"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот недоступен для бронирования"
	msgSlotTypeMismatch   = "тип операции несовместим с типом слота"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateBookingUseCase
	audit   handlers.AuditLog
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, auditLog handlers.AuditLog, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		audit:   auditLog,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пользователь компании бронирует только от имени своей компании
	if identity.UserType == middleware.UserTypeCompany {
		if identity.CompanyID == nil || *identity.CompanyID != req.CompanyID {
			h.logger.Warn("POST /bookings - Company mismatch: user_id=%d, company_id=%d",
				identity.UserID, req.CompanyID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(identity.UserID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrCompanyNotFound):
			h.logger.Warn("POST /bookings - Company not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createBooking.ErrCompanyInactive):
			h.logger.Warn("POST /bookings - Company inactive: company_id=%d", req.CompanyID)
			handlers.RespondForbidden(w, msgCompanyInactive)

		case errors.Is(err, createBooking.ErrLicenseLimitExceeded):
			h.logger.Warn("POST /bookings - License limit exceeded: company_id=%d", req.CompanyID)
			handlers.RespondForbidden(w, msgLicenseLimit)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.TimeSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotTypeMismatch):
			h.logger.Warn("POST /bookings - Slot type mismatch: slot_id=%d, type=%s", req.TimeSlotID, req.BookingType)
			handlers.RespondBadRequest(w, msgSlotTypeMismatch)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: slot_id=%d", req.TimeSlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.Audit(r.Context(), h.audit, h.logger, audit.Entry{
		Action:     "booking.create",
		EntityType: "booking",
		EntityID:   resp.ID,
		ActorID:    identity.UserID,
		ActorIP:    handlers.ClientIP(r),
	})

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, number=%s", resp.ID, resp.BookingNumber)
	handlers.RespondJSON(w, http.StatusCreated, toResponse(resp))
}
