package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Diana0617/BC-sub011/internal/domain"
	appointmentRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/appointment"
	specialistRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/specialist"
	"github.com/Diana0617/BC-sub011/internal/service/appointments/models"
)

// staffRoles роли, которым доступны записи бизнеса
var staffRoles = []domain.UserRole{
	domain.RoleBusiness,
	domain.RoleReceptionist,
	domain.RoleReceptionistSpecialist,
	domain.RoleSpecialist,
}

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Сотрудник бизнеса видит все записи, специалист - только свои
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	apt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, apt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(apt), nil
}

// List получает записи бизнеса с фильтрацией по филиалу, специалисту, периоду и статусу.
// Специалисту возвращаются только его собственные записи
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching appointments for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.BranchID != nil {
		logMsg += fmt.Sprintf(", branch=%d", *req.BranchID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	staff, err := s.findStaff(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if staff.Role == domain.RoleSpecialist {
		if filter.SpecialistID != nil && *filter.SpecialistID != staff.ID {
			s.logger.Warn("List: specialist=%d requested appointments of specialist=%d", staff.ID, *filter.SpecialistID)
			return nil, ErrAccessDenied
		}
		own := staff.ID
		filter.SpecialistID = &own
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for business=%d", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Confirm подтверждает запись (PENDING -> CONFIRMED)
func (s *Service) Confirm(ctx context.Context, id int64, userID int64) error {
	return s.transition(ctx, "Confirm", id, userID, domain.StatusConfirmed, "")
}

// Start отмечает начало обслуживания (CONFIRMED -> IN_PROGRESS)
func (s *Service) Start(ctx context.Context, id int64, userID int64) error {
	return s.transition(ctx, "Start", id, userID, domain.StatusInProgress, "")
}

// Complete завершает запись (IN_PROGRESS -> COMPLETED)
func (s *Service) Complete(ctx context.Context, id int64, userID int64) error {
	return s.transition(ctx, "Complete", id, userID, domain.StatusCompleted, "")
}

// MarkNoShow отмечает неявку клиента
func (s *Service) MarkNoShow(ctx context.Context, id int64, userID int64) error {
	return s.transition(ctx, "MarkNoShow", id, userID, domain.StatusNoShow, "")
}

// Cancel отменяет запись с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, userID int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	return s.transition(ctx, "Cancel", id, userID, domain.StatusCanceled, reason)
}

// UpdateStatus меняет статус записи по строковому значению из API
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	status, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	switch status {
	case domain.StatusConfirmed:
		return s.Confirm(ctx, id, req.UserID)
	case domain.StatusInProgress:
		return s.Start(ctx, id, req.UserID)
	case domain.StatusCompleted:
		return s.Complete(ctx, id, req.UserID)
	case domain.StatusNoShow:
		return s.MarkNoShow(ctx, id, req.UserID)
	case domain.StatusCanceled:
		return s.Cancel(ctx, id, req.UserID, req.Reason)
	default:
		return fmt.Errorf("%w: status %s cannot be set directly", ErrInvalidTransition, status)
	}
}

// transition выполняет переход статуса в транзакции, строка записи заблокирована до коммита
func (s *Service) transition(ctx context.Context, op string, id int64, userID int64, next domain.AppointmentStatus, reason string) error {
	s.logger.Info("%s: appointment id=%d -> %s by user=%d", op, id, next, userID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		apt, err := s.getAppointment(txCtx, op, id)
		if err != nil {
			return err
		}

		if err := s.checkAccess(txCtx, apt, userID); err != nil {
			s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, userID, id)
			return err
		}

		if !apt.CanTransitionTo(next) {
			s.logger.Warn("%s: appointment id=%d cannot move from %s to %s", op, id, apt.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, apt.Status, next)
		}

		if next == domain.StatusCanceled {
			err = s.appointmentRepo.Cancel(txCtx, id, reason, s.timeProvider.Now())
		} else {
			err = s.appointmentRepo.UpdateStatus(txCtx, id, next)
		}
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("%s: successfully moved appointment id=%d to %s", op, id, next)
	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return apt, nil
}

// checkAccess проверяет, что пользователь - сотрудник бизнеса записи.
// Специалист имеет доступ только к своим записям
func (s *Service) checkAccess(ctx context.Context, apt *domain.Appointment, userID int64) error {
	staff, err := s.findStaff(ctx, apt.BusinessID, userID)
	if err != nil {
		return err
	}

	if staff.Role == domain.RoleSpecialist && staff.ID != apt.SpecialistID {
		return ErrAccessDenied
	}

	return nil
}

// findStaff находит активного сотрудника бизнеса
func (s *Service) findStaff(ctx context.Context, businessID int64, userID int64) (*domain.User, error) {
	if userID <= 0 {
		return nil, ErrAccessDenied
	}

	user, err := s.staffRepo.FindUserInBusiness(ctx, businessID, domain.UserID(userID), staffRoles)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrUserNotFound) {
			s.logger.Warn("findStaff: user=%d is not staff of business=%d", userID, businessID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("findStaff: failed to get user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: findStaff - repository error: %w", ErrInternal, err)
	}

	return user, nil
}
