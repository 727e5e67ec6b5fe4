package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	reviewRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/review"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/reviews/models"
)

// Service сервис отзывов
type Service struct {
	reviewRepo   ReviewRepository
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create сохраняет отзыв клиента о завершенном бронировании
// Один отзыв на бронирование
func (s *Service) Create(ctx context.Context, actor domain.Actor, bookingID uuid.UUID, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review for booking=%s by user=%s", bookingID, actor.UserID)

	// 1. Валидируем запрос
	if err := req.Validate(); err != nil {
		s.logger.Warn("Create: validation failed for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Create: booking=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Create: failed to get booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Create - failed to get booking: %v", ErrInternal, err)
	}

	// 3. Отзыв оставляет только клиент бронирования и только после завершения
	if actor.UserID == uuid.Nil || booking.CustomerID != actor.UserID {
		s.logger.Warn("Create: user=%s is not the customer of booking=%s", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}
	if !booking.IsCompleted() {
		s.logger.Warn("Create: booking=%s is not completed, status=%s", bookingID, booking.Status)
		return nil, ErrBookingNotCompleted
	}

	// 4. Сохраняем отзыв
	created, err := s.reviewRepo.Create(ctx, &domain.Review{
		BookingID:  booking.ID,
		BusinessID: booking.BusinessID,
		CustomerID: booking.CustomerID,
		Rating:     req.Rating,
		Body:       req.Body,
	})
	if err != nil {
		if errors.Is(err, reviewRepo.ErrAlreadyReviewed) {
			s.logger.Warn("Create: booking=%s already reviewed", bookingID)
			return nil, ErrAlreadyReviewed
		}
		s.logger.Error("Create: repository error for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created review id=%s, rating=%d", created.ID, created.Rating)
	return models.FromDomainReview(created), nil
}

// Update скрывает или показывает отзыв и сохраняет ответ компании.
// Скрывать может владелец компании и администратор, отвечать только владелец.
func (s *Service) Update(ctx context.Context, actor domain.Actor, reviewID uuid.UUID, req *models.UpdateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Update: review id=%s by user=%s", reviewID, actor.UserID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for review id=%s: %v", reviewID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rv, err := s.getReview(ctx, "Update", reviewID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleCustomer {
		s.logger.Warn("Update: customer=%s cannot moderate review id=%s", actor.UserID, reviewID)
		return nil, ErrAccessDenied
	}

	business, err := s.businessRepo.GetByID(ctx, rv.BusinessID)
	if err != nil && !errors.Is(err, businessRepo.ErrBusinessNotFound) {
		s.logger.Error("Update: failed to get business=%s: %v", rv.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - failed to get business: %v", ErrInternal, err)
	}
	if !actor.CanManage(business) {
		s.logger.Warn("Update: user=%s cannot manage business=%s", actor.UserID, rv.BusinessID)
		return nil, ErrAccessDenied
	}

	if req.Hidden != nil {
		rv.Hidden = *req.Hidden
	}

	if req.OwnerResponse != nil {
		if !actor.Owns(business) {
			s.logger.Warn("Update: user=%s is not the owner of business=%s", actor.UserID, rv.BusinessID)
			return nil, ErrAccessDenied
		}
		response := strings.TrimSpace(*req.OwnerResponse)
		if response == "" {
			rv.OwnerResponse = nil
			rv.RespondedAt = nil
		} else {
			now := s.timeProvider.Now()
			rv.OwnerResponse = &response
			rv.RespondedAt = &now
		}
	}

	if err := s.reviewRepo.Update(ctx, rv); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Update: repository error for review id=%s: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated review id=%s, hidden=%t", reviewID, rv.Hidden)
	return models.FromDomainReview(rv), nil
}

// Delete удаляет отзыв
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, actor domain.Actor, reviewID uuid.UUID) error {
	s.logger.Info("Delete: review id=%s by user=%s", reviewID, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("Delete: user=%s is not an admin", actor.UserID)
		return ErrAccessDenied
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("Delete: review id=%s not found", reviewID)
			return ErrReviewNotFound
		}
		s.logger.Error("Delete: repository error for review id=%s: %v", reviewID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted review id=%s", reviewID)
	return nil
}

func (s *Service) getReview(ctx context.Context, op string, reviewID uuid.UUID) (*domain.Review, error) {
	rv, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("%s: review id=%s not found", op, reviewID)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("%s: repository error for review id=%s: %v", op, reviewID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return rv, nil
}
