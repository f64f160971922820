package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrBookingDisabled возвращается, когда бизнес не принимает онлайн-записи
	ErrBookingDisabled = errors.New("create_booking: online booking is disabled for this business")

	// ErrBranchNotFound возвращается, когда филиал не найден или неактивен
	ErrBranchNotFound = errors.New("create_booking: branch not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("create_booking: specialist not found")

	// ErrServiceNotOffered возвращается, когда специалист не оказывает основную услугу
	ErrServiceNotOffered = errors.New("create_booking: specialist does not offer this service")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает лимит записи вперед
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrBranchClosed возвращается, когда филиал закрыт в указанную дату
	ErrBranchClosed = errors.New("create_booking: branch is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда интервал не помещается в рабочее окно специалиста
	ErrInvalidTimeSlot = errors.New("create_booking: time slot is outside working hours")

	// ErrTooLateToBook возвращается, когда не соблюдено минимальное время до начала записи
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с активной записью
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotLocked возвращается, когда календарь специалиста на дату уже бронируется другим запросом
	ErrSlotLocked = errors.New("create_booking: specialist calendar is being booked, retry later")

	// ErrEmailAlreadyRegistered возвращается, когда email занят, а клиент бизнеса не найден
	ErrEmailAlreadyRegistered = errors.New("create_booking: email already registered")

	// ErrPaymentFailed возвращается при ошибке платежного шлюза. Запись при этом не создается
	ErrPaymentFailed = errors.New("create_booking: payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")

	// errDuplicateEmail сигнализирует, что транзакция прервана нарушением уникальности email
	errDuplicateEmail = errors.New("create_booking: duplicate client email")
)
