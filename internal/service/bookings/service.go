package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту-владельцу, владельцу компании и администратору
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s by user=%s", bookingID, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkReadAccess(ctx, booking, actor); err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListCustomerBookings получает бронирования текущего клиента
func (s *Service) ListCustomerBookings(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListCustomerBookings: fetching bookings for customer=%s", actor.UserID)

	if actor.UserID == uuid.Nil {
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListCustomerBookings: invalid filter for customer=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	customerID := actor.UserID
	filter.CustomerID = &customerID

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListCustomerBookings: repository error for customer=%s: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: ListCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCustomerBookings: successfully fetched %d bookings for customer=%s", len(bookings), actor.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBusinessBookings получает бронирования компании с фильтрацией по периоду и статусу
// Доступно только владельцу компании и администратору
func (s *Service) ListBusinessBookings(ctx context.Context, actor domain.Actor, businessID uuid.UUID, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBusinessBookings: fetching bookings for business=%s by user=%s", businessID, actor.UserID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBusinessBookings: invalid filter for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	business, err := s.getBusiness(ctx, "ListBusinessBookings", businessID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(business) {
		s.logger.Warn("ListBusinessBookings: user=%s cannot manage business=%s", actor.UserID, businessID)
		return nil, ErrAccessDenied
	}
	filter.BusinessID = &businessID

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBusinessBookings: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBusinessBookings: successfully fetched %d bookings for business=%s", len(bookings), businessID)
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

// checkReadAccess проверяет, что пользователь может видеть бронирование
func (s *Service) checkReadAccess(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.UserID != uuid.Nil && booking.CustomerID == actor.UserID {
		return nil
	}
	if actor.Role == domain.RoleCustomer {
		s.logger.Warn("checkReadAccess: customer=%s does not own booking id=%s", actor.UserID, booking.ID)
		return ErrAccessDenied
	}

	business, err := s.getBusiness(ctx, "checkReadAccess", booking.BusinessID)
	if err != nil {
		return err
	}
	if !actor.Owns(business) {
		s.logger.Warn("checkReadAccess: user=%s has no access to booking id=%s", actor.UserID, booking.ID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) getBusiness(ctx context.Context, op string, businessID uuid.UUID) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business=%s not found", op, businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business=%s: %v", op, businessID, err)
		return nil, fmt.Errorf("%w: %s - failed to get business: %v", ErrInternal, op, err)
	}
	return business, nil
}
