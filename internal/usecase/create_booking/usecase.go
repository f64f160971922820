package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/infra/lock"
	branchRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/branch"
	clientRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/client"
	scheduleRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/schedule"
	"github.com/Diana0617/BC-sub011/internal/integrations/events"
	"github.com/Diana0617/BC-sub011/internal/integrations/wompi"
	"github.com/Diana0617/BC-sub011/internal/service/rules"
	"github.com/Diana0617/BC-sub011/internal/service/specialists"
	"github.com/Diana0617/BC-sub011/pkg/dbmetrics"
	"github.com/Diana0617/BC-sub011/pkg/metrics"
	"github.com/Diana0617/BC-sub011/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	branchRepo      BranchRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	specialists     SpecialistResolver
	rules           RulesProvider
	gateway         PaymentGateway
	txManager       TransactionManager
	locker          CalendarLocker
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
	metrics         *metrics.Metrics

	defaultLoc *time.Location
	currency   string
}

// Option настройка use case
type Option func(*UseCase)

// WithTimeProvider подменяет источник времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) { uc.timeProvider = tp }
}

// WithLocker включает блокировку календаря специалиста
func WithLocker(l CalendarLocker) Option {
	return func(uc *UseCase) { uc.locker = l }
}

// WithPublisher включает публикацию событий после коммита
func WithPublisher(p EventPublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

// WithMetrics включает бизнес-метрики записей
func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	branchRepo BranchRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	specialists SpecialistResolver,
	rules RulesProvider,
	gateway PaymentGateway,
	txManager TransactionManager,
	defaultLoc *time.Location,
	currency string,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		branchRepo:      branchRepo,
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		specialists:     specialists,
		rules:           rules,
		gateway:         gateway,
		txManager:       txManager,
		locker:          lock.NoopLocker{},
		publisher:       events.NoopPublisher{},
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		defaultLoc:      defaultLoc,
		currency:        currency,
	}
	if uc.defaultLoc == nil {
		uc.defaultLoc = time.UTC
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания записи.
// Фаза 1 - сериализуемая транзакция со всеми записями в БД и вызовом платежного шлюза.
// Если транзакция прервана дублем email, фаза 2 перечитывает клиента вне транзакции
// и повторяет фазу 1 один раз с найденным клиентом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%d, branch=%d, specialist=%s, services=%v, date=%s, time=%s",
		req.BusinessID, req.BranchID, req.Specialist, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observeFailure(err)
		return nil, err
	}

	// 2. Бизнес, политика, специалист и дата в часовом поясе бизнеса
	b, err := uc.prepare(ctx, req)
	if err != nil {
		uc.observeFailure(err)
		return nil, err
	}

	// 3. Блокировка календаря специалиста на дату
	release, err := uc.locker.Acquire(ctx, b.specialist.UserID, b.day)
	switch {
	case errors.Is(err, lock.ErrLockNotAcquired):
		uc.logger.Warn("CreateBooking: calendar of specialist=%d on %s is locked", b.specialist.UserID, b.day.Format(domain.DateFormat))
		uc.observeFailure(ErrSlotLocked)
		return nil, ErrSlotLocked
	case err != nil:
		uc.logger.Warn("CreateBooking: calendar lock unavailable, continuing without it: %v", err)
	default:
		defer release()
	}

	// 4. Транзакция с повтором после дубля email
	result, err := uc.book(ctx, b)
	if err != nil {
		uc.observeFailure(err)
		return nil, err
	}

	apt := result.appointment
	uc.logger.Info("CreateBooking: successfully created appointment id=%d, client=%d, %s-%s",
		apt.ID, result.client.ID, apt.StartTime.Format(time.RFC3339), apt.EndTime.Format(time.RFC3339))

	// 5. После коммита: событие и метрики
	uc.publish(ctx, result)
	if uc.metrics != nil {
		uc.metrics.BookingsCreatedTotal.WithLabelValues(string(b.paymentMethod())).Inc()
	}

	return &Response{
		AppointmentID: apt.ID,
		Status:        apt.Status,
		ClientID:      result.client.ID,
		SpecialistID:  apt.SpecialistID,
		StartTime:     apt.StartTime,
		EndTime:       apt.EndTime,
		TotalAmount:   apt.TotalAmount,
		TotalDuration: result.duration,
		PaymentURL:    apt.PaymentURL,
	}, nil
}

// prepare загружает данные, которые не меняются между попытками транзакции
func (uc *UseCase) prepare(ctx context.Context, req *Request) (*booking, error) {
	business, policy, err := uc.loadBookingRules(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := uc.defaultLoc
	if business.Timezone != "" {
		if l, err := time.LoadLocation(business.Timezone); err == nil {
			loc = l
		} else {
			uc.logger.Warn("CreateBooking: business id=%d has invalid timezone %q, using %s", business.ID, business.Timezone, loc)
		}
	}

	now := uc.timeProvider.Now().In(loc)
	day := startOfDay(req.Date, loc)
	if err := validateDate(day, now, policy); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	specialist, err := uc.specialists.Resolve(ctx, business.ID, req.Specialist)
	if err != nil {
		if errors.Is(err, specialists.ErrSpecialistNotFound) || errors.Is(err, specialists.ErrInvalidInput) {
			uc.logger.Warn("CreateBooking: specialist %s not found in business id=%d", req.Specialist, business.ID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve specialist %s: %v", req.Specialist, err)
		return nil, fmt.Errorf("%w: failed to resolve specialist: %w", ErrInternal, err)
	}

	return &booking{
		req:        req,
		business:   business,
		policy:     policy,
		specialist: specialist,
		loc:        loc,
		day:        day,
		now:        now,
		email:      domain.NormalizeEmail(req.Client.Email),
	}, nil
}

// loadBookingRules загружает бизнес и политику записи и проверяет, что бизнес принимает онлайн-записи
func (uc *UseCase) loadBookingRules(ctx context.Context, businessID int64) (*domain.Business, domain.BookingPolicy, error) {
	business, err := uc.rules.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, rules.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", businessID)
			return nil, domain.BookingPolicy{}, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", businessID, err)
		return nil, domain.BookingPolicy{}, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}

	if !business.CanAcceptBookings() {
		uc.logger.Warn("CreateBooking: business id=%d has status %s", business.ID, business.Status)
		return nil, domain.BookingPolicy{}, fmt.Errorf("%w: business status is %s", ErrBookingDisabled, business.Status)
	}

	policy, err := uc.rules.BookingPolicy(ctx, business.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get booking policy for business id=%d: %v", business.ID, err)
		return nil, domain.BookingPolicy{}, fmt.Errorf("%w: failed to get booking policy: %w", ErrInternal, err)
	}

	if !policy.OnlineBookingEnabled {
		uc.logger.Warn("CreateBooking: online booking disabled for business id=%d", business.ID)
		return nil, domain.BookingPolicy{}, ErrBookingDisabled
	}

	return business, policy, nil
}

// book запускает фазу 1 и при дубле email - фазу 2
func (uc *UseCase) book(ctx context.Context, b *booking) (*outcome, error) {
	result, txErr := uc.attempt(ctx, b, nil)
	if txErr == nil {
		return result, nil
	}
	if !errors.Is(txErr, errDuplicateEmail) {
		return nil, mapTxError(txErr)
	}

	// Транзакция прервана, в ней больше ничего не выполняем. Клиента ищем вне ее
	uc.logger.Warn("CreateBooking: duplicate email for business id=%d, reconciling client", b.business.ID)

	existing, err := uc.clientRepo.FindByEmail(dbmetrics.WithoutTx(ctx), b.business.ID, b.email)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			// Параллельная транзакция не зафиксировала клиента, это конфликт записи
			if txmanager.IsSerializationFailure(txErr) {
				uc.logger.Warn("CreateBooking: concurrent client insert for business id=%d was not committed", b.business.ID)
				return nil, mapTxError(txErr)
			}
			uc.logger.Warn("CreateBooking: email is registered outside business id=%d", b.business.ID)
			return nil, ErrEmailAlreadyRegistered
		}
		uc.logger.Error("CreateBooking: failed to reload client: %v", err)
		return nil, fmt.Errorf("%w: failed to reload client: %w", ErrInternal, err)
	}

	result, err = uc.attempt(ctx, b, existing)
	if err != nil {
		if errors.Is(err, errDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, mapTxError(err)
	}

	return result, nil
}

// attempt выполняет все записи в одной сериализуемой транзакции.
// client != nil - клиент уже известен и не создается
func (uc *UseCase) attempt(ctx context.Context, b *booking, client *domain.Client) (*outcome, error) {
	req := b.req

	var result *outcome

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.0. Статус бизнеса и онлайн-запись могли измениться после prepare
		if _, _, err := uc.loadBookingRules(txCtx, b.business.ID); err != nil {
			return err
		}

		// 4.1. Филиал и услуги бизнеса
		branch, err := uc.getBranch(txCtx, b)
		if err != nil {
			return err
		}

		services, err := uc.getServices(txCtx, b)
		if err != nil {
			return err
		}

		// 4.2. Специалист оказывает основную услугу
		offers, err := uc.specialists.OffersService(txCtx, b.specialist, req.ServiceIDs[0])
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check specialist services: %v", err)
			return fmt.Errorf("%w: failed to check specialist services: %w", ErrInternal, err)
		}
		if !offers {
			uc.logger.Warn("CreateBooking: specialist=%d does not offer service id=%d", b.specialist.UserID, req.ServiceIDs[0])
			return ErrServiceNotOffered
		}

		// 4.3. Клиент
		if client == nil {
			client, err = uc.findOrCreateClient(txCtx, b)
			if err != nil {
				return err
			}
		}

		// 4.4. Интервал записи
		duration, total, lines := summarizeServices(req.ServiceIDs, services)
		start := req.StartTime.On(b.day, b.loc)
		end := start.Add(time.Duration(duration) * time.Minute)

		if err := validateBookingTime(start, b.now, b.policy); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		if err := uc.checkWorkingWindow(txCtx, b, branch, duration); err != nil {
			return err
		}

		if err := uc.checkOverlap(txCtx, b, branch.ID, start, end); err != nil {
			return err
		}

		// 4.5. Запись и строки услуг
		apt, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID:    b.business.ID,
			BranchID:      branch.ID,
			ClientID:      client.ID,
			SpecialistID:  b.specialist.UserID,
			ServiceID:     req.ServiceIDs[0],
			StartTime:     start,
			EndTime:       end,
			Status:        domain.StatusPending,
			TotalAmount:   total,
			PaymentStatus: domain.PaymentStatusPending,
			Notes:         req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		for i := range lines {
			lines[i].AppointmentID = apt.ID
		}
		if err := uc.appointmentRepo.CreateServices(txCtx, lines); err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment services: %v", err)
			return fmt.Errorf("%w: failed to create appointment services: %w", ErrInternal, err)
		}
		apt.Services = lines

		// 4.6. Онлайн-оплата. Ошибка шлюза откатывает всю транзакцию
		if b.requiresCharge() {
			if err := uc.charge(txCtx, b, apt, client); err != nil {
				return err
			}
		}

		result = &outcome{
			appointment: apt,
			client:      client,
			services:    req.ServiceIDs,
			duration:    duration,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *UseCase) getBranch(ctx context.Context, b *booking) (*domain.Branch, error) {
	branch, err := uc.branchRepo.GetByID(ctx, b.business.ID, b.req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("CreateBooking: branch id=%d not found", b.req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateBooking: failed to get branch id=%d: %v", b.req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %w", ErrInternal, err)
	}
	if !branch.IsActive() {
		uc.logger.Warn("CreateBooking: branch id=%d is inactive", branch.ID)
		return nil, ErrBranchNotFound
	}
	return branch, nil
}

func (uc *UseCase) getServices(ctx context.Context, b *booking) (map[int64]*domain.Service, error) {
	services, err := uc.serviceRepo.GetByIDs(ctx, b.business.ID, b.req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services %v: %v", b.req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %w", ErrInternal, err)
	}

	for _, id := range b.req.ServiceIDs {
		s, ok := services[id]
		if !ok || !s.IsActive || s.Duration <= 0 {
			uc.logger.Warn("CreateBooking: service id=%d not found in business id=%d", id, b.business.ID)
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
	}

	return services, nil
}

// findOrCreateClient ищет клиента бизнеса по email и создает его при отсутствии.
// Дубль email или конфликт сериализации при вставке прерывают транзакцию,
// поэтому возвращается errDuplicateEmail
func (uc *UseCase) findOrCreateClient(ctx context.Context, b *booking) (*domain.Client, error) {
	client, err := uc.clientRepo.FindByEmail(ctx, b.business.ID, b.email)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("CreateBooking: failed to find client: %v", err)
		return nil, fmt.Errorf("%w: failed to find client: %w", ErrInternal, err)
	}

	data := b.req.Client
	created, err := uc.clientRepo.Create(ctx, &domain.Client{
		BusinessID: b.business.ID,
		FirstName:  strings.TrimSpace(data.FirstName),
		LastName:   strings.TrimSpace(data.LastName),
		Email:      b.email,
		Phone:      data.Phone,
	})
	if err != nil {
		// В SERIALIZABLE гонка вставки одного email приходит как 40001, а не 23505
		if errors.Is(err, clientRepo.ErrDuplicateEmail) || txmanager.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: %w", errDuplicateEmail, err)
		}
		uc.logger.Error("CreateBooking: failed to create client: %v", err)
		return nil, fmt.Errorf("%w: failed to create client: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created client id=%d for business id=%d", created.ID, b.business.ID)
	return created, nil
}

// checkWorkingWindow проверяет, что [startTime, startTime+duration) лежит в пересечении
// часов филиала и расписания специалиста
func (uc *UseCase) checkWorkingWindow(ctx context.Context, b *booking, branch *domain.Branch, duration int) error {
	hours := branch.BusinessHours.ForDate(b.day)
	if hours.Closed || hours.Window.IsEmpty() {
		uc.logger.Warn("CreateBooking: branch id=%d is closed on %s", branch.ID, b.day.Format(domain.DateFormat))
		return ErrBranchClosed
	}

	window := hours.Window
	dayOfWeek := domain.WeekdayName(b.day)

	schedule, err := uc.scheduleRepo.GetActive(ctx, b.specialist.ProfileID, branch.ID, dayOfWeek)
	switch {
	case err == nil:
		window = window.Intersect(domain.WorkingWindow{Start: schedule.StartTime, End: schedule.EndTime})
	case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		// без расписания специалист работает все часы филиала
	default:
		uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
		return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	end, err := b.req.StartTime.AddMinutes(duration)
	if err != nil {
		return fmt.Errorf("%w: appointment ends after midnight", ErrInvalidTimeSlot)
	}

	if !window.Contains(b.req.StartTime, end) {
		uc.logger.Warn("CreateBooking: %s-%s is outside working window %s-%s", b.req.StartTime, end, window.Start, window.End)
		return fmt.Errorf("%w: %s-%s, working hours %s-%s", ErrInvalidTimeSlot, b.req.StartTime, end, window.Start, window.End)
	}

	return nil
}

// checkOverlap блокирует (FOR UPDATE) записи специалиста в филиале на день
// и проверяет пересечение с новым интервалом
func (uc *UseCase) checkOverlap(ctx context.Context, b *booking, branchID int64, start, end time.Time) error {
	from := b.day
	to := b.day.AddDate(0, 0, 1)
	specialistID := b.specialist.UserID

	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		BusinessID:   b.business.ID,
		BranchID:     &branchID,
		SpecialistID: &specialistID,
		From:         &from,
		To:           &to,
		ForUpdate:    true,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
		return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	if n := countOverlapping(start, end, appointments); n > 0 {
		uc.logger.Warn("CreateBooking: slot %s overlaps %d appointment(s) of specialist=%d",
			start.Format(time.RFC3339), n, specialistID)
		return ErrSlotNotAvailable
	}

	return nil
}

// charge создает платеж в шлюзе и сохраняет ссылку на него в записи
func (uc *UseCase) charge(ctx context.Context, b *booking, apt *domain.Appointment, client *domain.Client) error {
	if !apt.TotalAmount.IsPositive() {
		uc.logger.Info("CreateBooking: appointment id=%d has zero amount, skipping payment", apt.ID)
		return nil
	}
	if uc.gateway == nil {
		return fmt.Errorf("%w: payment gateway is not configured", ErrPaymentFailed)
	}

	reference := fmt.Sprintf("APT-%d-%s", apt.ID, strings.ToUpper(uuid.NewString()[:8]))

	payment, err := uc.gateway.CreatePayment(ctx, wompi.PaymentRequest{
		Amount:        apt.TotalAmount,
		Currency:      uc.currency,
		Reference:     reference,
		Description:   fmt.Sprintf("Appointment #%d", apt.ID),
		CustomerEmail: client.Email,
		CustomerName:  strings.TrimSpace(client.FirstName + " " + client.LastName),
	})
	if err != nil {
		uc.logger.Error("CreateBooking: payment for appointment id=%d failed: %v", apt.ID, err)
		return fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	if err := uc.appointmentRepo.SetPayment(ctx, apt.ID, reference, payment.PaymentURL); err != nil {
		uc.logger.Error("CreateBooking: failed to store payment for appointment id=%d: %v", apt.ID, err)
		return fmt.Errorf("%w: failed to store payment: %w", ErrInternal, err)
	}

	apt.PaymentReference = &reference
	apt.PaymentURL = &payment.PaymentURL

	uc.logger.Info("CreateBooking: payment %s created for appointment id=%d", payment.TransactionID, apt.ID)
	return nil
}

// publish отправляет событие о записи. Ошибка только логируется: запись уже зафиксирована
func (uc *UseCase) publish(ctx context.Context, result *outcome) {
	apt := result.appointment
	event := events.AppointmentCreated{
		AppointmentID: apt.ID,
		BusinessID:    apt.BusinessID,
		BranchID:      apt.BranchID,
		ClientID:      apt.ClientID,
		SpecialistID:  int64(apt.SpecialistID),
		ServiceIDs:    result.services,
		StartTime:     apt.StartTime,
		EndTime:       apt.EndTime,
		Status:        string(apt.Status),
		TotalAmount:   apt.TotalAmount,
		OccurredAt:    uc.timeProvider.Now(),
	}

	if err := uc.publisher.PublishAppointmentCreated(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for appointment id=%d: %v", apt.ID, err)
	}
}

func (uc *UseCase) observeFailure(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.BookingsFailedTotal.WithLabelValues(failureReason(err)).Inc()
}

// failureReason метка причины неудачной записи для метрик
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrDateTooFarInFuture), errors.Is(err, ErrTooLateToBook),
		errors.Is(err, ErrInvalidTimeSlot), errors.Is(err, ErrServiceNotOffered):
		return "invalid_request"
	case errors.Is(err, ErrBusinessNotFound), errors.Is(err, ErrBranchNotFound),
		errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrSpecialistNotFound):
		return "not_found"
	case errors.Is(err, ErrBookingDisabled), errors.Is(err, ErrBranchClosed):
		return "not_bookable"
	case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, ErrSlotLocked):
		return "slot_conflict"
	case errors.Is(err, ErrEmailAlreadyRegistered):
		return "email_conflict"
	case errors.Is(err, ErrPaymentFailed):
		return "payment"
	default:
		return "internal"
	}
}

// mapTxError переводит ошибки менеджера транзакций в ошибки use case
func mapTxError(err error) error {
	switch {
	case txmanager.IsSerializationFailure(err):
		return fmt.Errorf("%w: concurrent booking: %w", ErrSlotNotAvailable, err)
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		return fmt.Errorf("%w: %w", ErrInternal, err)
	default:
		return err
	}
}

func (b *booking) paymentMethod() domain.PaymentMethod {
	if b.req.PaymentMethod == "" {
		return domain.PaymentMethodOnSite
	}
	return b.req.PaymentMethod
}

// requiresCharge - оплата при записи выбрана клиентом или обязательна по правилам бизнеса
func (b *booking) requiresCharge() bool {
	return b.paymentMethod().RequiresOnlineCharge() || b.policy.OnlinePaymentRequired
}
