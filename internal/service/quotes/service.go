package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	quoteRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/quote"
	"github.com/LomaCotta/haulers-app-sub001/internal/integrations/rpc"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes/models"
)

// Service сервис коммерческих предложений
type Service struct {
	quoteRepo    QuoteRepository
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	procedures   ProcedureClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса предложений
func NewService(
	quoteRepo QuoteRepository,
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	procedures ProcedureClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		quoteRepo:    quoteRepo,
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		procedures:   procedures,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetCurrent получает актуальное (последнее созданное) предложение по бронированию.
// Когда клиент впервые открывает отправленное предложение, оно помечается просмотренным.
func (s *Service) GetCurrent(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*models.QuoteResponse, error) {
	s.logger.Info("GetCurrent: fetching quote for booking=%s by user=%s", bookingID, actor.UserID)

	booking, err := s.getBooking(ctx, "GetCurrent", bookingID)
	if err != nil {
		return nil, err
	}

	isCustomer := actor.UserID != uuid.Nil && booking.CustomerID == actor.UserID
	if !isCustomer {
		if err := s.checkBusinessAccess(ctx, "GetCurrent", actor, booking); err != nil {
			return nil, err
		}
	}

	quote, err := s.quoteRepo.GetCurrentByBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			s.logger.Warn("GetCurrent: no quote for booking=%s", bookingID)
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("GetCurrent: repository error for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetCurrent - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if isCustomer && quote.Status == domain.QuoteSent && !quote.IsExpired(now) {
		if err := s.quoteRepo.MarkViewed(ctx, quote.ID, now); err != nil {
			// Отметка просмотра не должна мешать выдаче предложения
			s.logger.Warn("GetCurrent: failed to mark quote=%s viewed: %v", quote.ID, err)
		} else {
			quote.Status = domain.QuoteViewed
			quote.ViewedAt = &now
		}
	}

	return models.FromDomainQuote(quote, now), nil
}

// Respond принимает или отклоняет предложение от имени клиента.
// Смена статусов предложения и бронирования выполняется хранимой процедурой respond_to_quote.
func (s *Service) Respond(ctx context.Context, actor domain.Actor, quoteID uuid.UUID, req *models.RespondRequest) (*models.RespondResponse, error) {
	s.logger.Info("Respond: quote=%s, decision=%s by user=%s", quoteID, req.Decision, actor.UserID)

	// 1. Валидируем запрос
	decision, err := req.Validate()
	if err != nil {
		s.logger.Warn("Respond: validation failed for quote=%s: %v", quoteID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем предложение и бронирование
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			s.logger.Warn("Respond: quote=%s not found", quoteID)
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("Respond: repository error for quote=%s: %v", quoteID, err)
		return nil, fmt.Errorf("%w: Respond - repository error: %v", ErrInternal, err)
	}

	booking, err := s.getBooking(ctx, "Respond", quote.BookingID)
	if err != nil {
		return nil, err
	}

	// 3. Отвечать может только клиент бронирования
	if actor.UserID == uuid.Nil || booking.CustomerID != actor.UserID {
		s.logger.Warn("Respond: user=%s is not the customer of booking=%s", actor.UserID, booking.ID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем, что на предложение еще можно ответить
	if !quote.Actionable(s.timeProvider.Now()) {
		s.logger.Warn("Respond: quote=%s is not actionable, status=%s", quoteID, quote.Status)
		return nil, ErrQuoteNotActionable
	}

	// 5. Вызываем хранимую процедуру
	result, err := s.procedures.RespondToQuote(ctx, quoteID, actor.UserID, decision, req.Note)
	if err != nil {
		if errors.Is(err, rpc.ErrProcedureFailed) && result != nil {
			s.logger.Warn("Respond: procedure rejected quote=%s: %s", quoteID, result.Message)
			return nil, fmt.Errorf("%w: %s", ErrRejectedByProcedure, result.Message)
		}
		s.logger.Error("Respond: procedure call failed for quote=%s: %v", quoteID, err)
		return nil, fmt.Errorf("%w: Respond - procedure call failed: %v", ErrInternal, err)
	}

	s.logger.Info("Respond: successfully answered quote=%s with decision=%s", quoteID, decision)
	return &models.RespondResponse{
		QuoteID:  quoteID,
		Decision: string(decision),
		Message:  result.Message,
	}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking=%s not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to get booking=%s: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - failed to get booking: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkBusinessAccess проверяет, что пользователь владеет компанией бронирования или является администратором
func (s *Service) checkBusinessAccess(ctx context.Context, op string, actor domain.Actor, booking *domain.Booking) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == domain.RoleCustomer {
		s.logger.Warn("%s: customer=%s does not own booking=%s", op, actor.UserID, booking.ID)
		return ErrAccessDenied
	}

	business, err := s.businessRepo.GetByID(ctx, booking.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business=%s not found", op, booking.BusinessID)
			return ErrAccessDenied
		}
		s.logger.Error("%s: failed to get business=%s: %v", op, booking.BusinessID, err)
		return fmt.Errorf("%w: %s - failed to get business: %v", ErrInternal, op, err)
	}

	if !actor.Owns(business) {
		s.logger.Warn("%s: user=%s cannot access booking=%s", op, actor.UserID, booking.ID)
		return ErrAccessDenied
	}
	return nil
}
