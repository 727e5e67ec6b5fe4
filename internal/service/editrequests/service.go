package editrequests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	editRequestRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/editrequest"
	"github.com/LomaCotta/haulers-app-sub001/internal/integrations/rpc"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests/models"
)

// Service сервис запросов на изменение бронирований
type Service struct {
	requestRepo  EditRequestRepository
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	procedures   ProcedureClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	requestRepo EditRequestRepository,
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	procedures ProcedureClient,
	logger Logger,
) *Service {
	return &Service{
		requestRepo:  requestRepo,
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		procedures:   procedures,
		logger:       logger,
	}
}

// Approve одобряет запрос на изменение через процедуру approve_edit_request
// Доступно только владельцу компании и администратору
func (s *Service) Approve(ctx context.Context, actor domain.Actor, requestID uuid.UUID) (*models.DecisionResponse, error) {
	s.logger.Info("Approve: edit request=%s by user=%s", requestID, actor.UserID)

	req, err := s.load(ctx, "Approve", actor, requestID)
	if err != nil {
		return nil, err
	}

	result, err := s.procedures.ApproveEditRequest(ctx, requestID, actor.UserID)
	if err != nil {
		return nil, s.procedureError("Approve", requestID, result, err)
	}

	s.logger.Info("Approve: successfully approved edit request=%s", requestID)
	return &models.DecisionResponse{
		RequestID: requestID,
		BookingID: req.BookingID,
		Status:    string(domain.EditRequestApproved),
		Message:   result.Message,
	}, nil
}

// Reject отклоняет запрос на изменение через процедуру reject_edit_request
// Доступно только владельцу компании и администратору
func (s *Service) Reject(ctx context.Context, actor domain.Actor, requestID uuid.UUID, in *models.RejectRequest) (*models.DecisionResponse, error) {
	s.logger.Info("Reject: edit request=%s by user=%s", requestID, actor.UserID)

	reason, err := in.Normalize()
	if err != nil {
		s.logger.Warn("Reject: validation failed for edit request=%s: %v", requestID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	req, err := s.load(ctx, "Reject", actor, requestID)
	if err != nil {
		return nil, err
	}

	result, err := s.procedures.RejectEditRequest(ctx, requestID, actor.UserID, reason)
	if err != nil {
		return nil, s.procedureError("Reject", requestID, result, err)
	}

	s.logger.Info("Reject: successfully rejected edit request=%s", requestID)
	return &models.DecisionResponse{
		RequestID: requestID,
		BookingID: req.BookingID,
		Status:    string(domain.EditRequestRejected),
		Message:   result.Message,
	}, nil
}

// Вспомогательные методы

// load получает запрос и проверяет права пользователя и состояние запроса
func (s *Service) load(ctx context.Context, op string, actor domain.Actor, requestID uuid.UUID) (*domain.EditRequest, error) {
	if actor.Role == domain.RoleCustomer {
		s.logger.Warn("%s: customer=%s cannot decide edit requests", op, actor.UserID)
		return nil, ErrAccessDenied
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, editRequestRepo.ErrEditRequestNotFound) {
			s.logger.Warn("%s: edit request=%s not found", op, requestID)
			return nil, ErrEditRequestNotFound
		}
		s.logger.Error("%s: repository error for edit request=%s: %v", op, requestID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking=%s of edit request=%s not found", op, req.BookingID, requestID)
			return nil, ErrEditRequestNotFound
		}
		s.logger.Error("%s: failed to get booking=%s: %v", op, req.BookingID, err)
		return nil, fmt.Errorf("%w: %s - failed to get booking: %v", ErrInternal, op, err)
	}

	business, err := s.businessRepo.GetByID(ctx, booking.BusinessID)
	if err != nil && !errors.Is(err, businessRepo.ErrBusinessNotFound) {
		s.logger.Error("%s: failed to get business=%s: %v", op, booking.BusinessID, err)
		return nil, fmt.Errorf("%w: %s - failed to get business: %v", ErrInternal, op, err)
	}
	if !actor.CanManage(business) {
		s.logger.Warn("%s: user=%s cannot manage business=%s", op, actor.UserID, booking.BusinessID)
		return nil, ErrAccessDenied
	}

	if !req.IsPending() {
		s.logger.Warn("%s: edit request=%s already %s", op, requestID, req.Status)
		return nil, ErrAlreadyDecided
	}

	return req, nil
}

func (s *Service) procedureError(op string, requestID uuid.UUID, result *rpc.Result, err error) error {
	if errors.Is(err, rpc.ErrProcedureFailed) && result != nil {
		s.logger.Warn("%s: procedure rejected edit request=%s: %s", op, requestID, result.Message)
		return fmt.Errorf("%w: %s", ErrRejectedByProcedure, result.Message)
	}
	s.logger.Error("%s: procedure call failed for edit request=%s: %v", op, requestID, err)
	return fmt.Errorf("%w: %s - procedure call failed: %v", ErrInternal, op, err)
}
