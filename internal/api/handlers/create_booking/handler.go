package create_booking

import (
	"errors"
	"net/http"

	"github.com/Diana0617/BC-sub011/internal/api/handlers"
	createBooking "github.com/Diana0617/BC-sub011/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные записи"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgBusinessNotFound   = "бизнес не найден"
	msgBranchNotFound     = "филиал не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSpecialistNotFound = "специалист не найден"
	msgBookingDisabled    = "бизнес не принимает онлайн-записи"
	msgServiceNotOffered  = "специалист не оказывает выбранную услугу"
	msgInvalidBookingDate = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgBranchClosed       = "филиал закрыт в выбранную дату"
	msgInvalidTimeSlot    = "время вне рабочего графика специалиста"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgSlotLocked         = "время сейчас бронируется другим клиентом, повторите попытку"
	msgEmailRegistered    = "email уже зарегистрирован"
	msgPaymentFailed      = "ошибка платежного шлюза"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		details := handlers.DescribeValidation(err)
		h.logger.Warn("POST /public/bookings - Validation failed: %s", details)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequest, errors.New(details))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /public/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, err, &req)
		return
	}

	h.logger.Info("POST /public/bookings - Appointment created: appointment_id=%d, business_id=%d, specialist_id=%d, client_id=%d",
		result.AppointmentID, req.BusinessID, result.SpecialistID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, err error, req *CreateBookingRequest) {
	status, msg := statusFor(err)

	switch status {
	case http.StatusInternalServerError:
		h.logger.Error("POST /public/bookings - Failed to create appointment: business_id=%d, branch_id=%d, error=%v",
			req.BusinessID, req.BranchID, err)
		handlers.RespondInternalErrorDetails(w, err)
		return

	case http.StatusBadGateway:
		h.logger.Error("POST /public/bookings - Payment failed: business_id=%d, error=%v", req.BusinessID, err)

	default:
		h.logger.Warn("POST /public/bookings - Rejected: business_id=%d, branch_id=%d, specialist_profile_id=%d, specialist_user_id=%d, status=%d, error=%v",
			req.BusinessID, req.BranchID, req.SpecialistProfileID, req.SpecialistUserID, status, err)
	}

	handlers.RespondErrorDetails(w, status, msg, err)
}

// statusFor сопоставляет ошибку use case с HTTP статусом и сообщением
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, createBooking.ErrBusinessNotFound):
		return http.StatusNotFound, msgBusinessNotFound
	case errors.Is(err, createBooking.ErrBranchNotFound):
		return http.StatusNotFound, msgBranchNotFound
	case errors.Is(err, createBooking.ErrServiceNotFound):
		return http.StatusNotFound, msgServiceNotFound
	case errors.Is(err, createBooking.ErrSpecialistNotFound):
		return http.StatusNotFound, msgSpecialistNotFound

	case errors.Is(err, createBooking.ErrBookingDisabled):
		return http.StatusForbidden, msgBookingDisabled

	case errors.Is(err, createBooking.ErrServiceNotOffered):
		return http.StatusBadRequest, msgServiceNotOffered
	case errors.Is(err, createBooking.ErrInvalidDate):
		return http.StatusBadRequest, msgInvalidBookingDate
	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		return http.StatusBadRequest, msgDateTooFar
	case errors.Is(err, createBooking.ErrBranchClosed):
		return http.StatusBadRequest, msgBranchClosed
	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		return http.StatusBadRequest, msgInvalidTimeSlot
	case errors.Is(err, createBooking.ErrTooLateToBook):
		return http.StatusBadRequest, msgTooLateToBook
	case errors.Is(err, createBooking.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidRequest

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		return http.StatusConflict, msgSlotNotAvailable
	case errors.Is(err, createBooking.ErrSlotLocked):
		return http.StatusConflict, msgSlotLocked
	case errors.Is(err, createBooking.ErrEmailAlreadyRegistered):
		return http.StatusConflict, msgEmailRegistered

	case errors.Is(err, createBooking.ErrPaymentFailed):
		return http.StatusBadGateway, msgPaymentFailed

	default:
		return http.StatusInternalServerError, ""
	}
}
