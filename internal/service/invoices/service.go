package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	invoiceRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/invoice"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
)

// Service сервис счетов
type Service struct {
	invoiceRepo  InvoiceRepository
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(
	invoiceRepo InvoiceRepository,
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		invoiceRepo:  invoiceRepo,
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Get получает счет по ID
// Доступно клиенту счета, владельцу компании и администратору
func (s *Service) Get(ctx context.Context, actor domain.Actor, invoiceID uuid.UUID) (*models.InvoiceResponse, error) {
	s.logger.Info("Get: fetching invoice id=%s by user=%s", invoiceID, actor.UserID)

	inv, err := s.getInvoice(ctx, "Get", invoiceID, false)
	if err != nil {
		return nil, err
	}

	if actor.UserID == uuid.Nil || inv.CustomerID != actor.UserID {
		if err := s.authorize(ctx, "Get", actor, inv.BusinessID); err != nil {
			return nil, err
		}
	}

	return models.FromDomainInvoice(inv, s.timeProvider.Now()), nil
}

// Create выставляет черновик счета на сумму бронирования
// Доступно только владельцу компании и администратору
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateInvoiceRequest) (*models.InvoiceResponse, error) {
	s.logger.Info("Create: invoice for booking=%s by user=%s", req.BookingID, actor.UserID)

	// 1. Валидируем запрос
	bookingID, dueDate, err := req.Validate()
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем бронирование и проверяем права
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Create: booking=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Create: failed to get booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Create - failed to get booking: %v", ErrInternal, err)
	}

	if err := s.authorize(ctx, "Create", actor, booking.BusinessID); err != nil {
		return nil, err
	}

	// 3. Проверяем, что бронирование можно выставить к оплате
	switch domain.CheckInvoiceable(booking, booking.BusinessID) {
	case "":
	case domain.ReasonInvalidAmount:
		s.logger.Warn("Create: booking=%s has no billable total", bookingID)
		return nil, fmt.Errorf("%w: booking has no billable total", ErrInvalidInput)
	default:
		s.logger.Warn("Create: booking=%s is not invoiceable, status=%s", bookingID, booking.Status)
		return nil, ErrNotInvoiceable
	}

	// 4. Создаем черновик. Повторный счет отклоняет уникальный индекс.
	created, err := s.invoiceRepo.Create(ctx, domain.NewDraftInvoice(booking, dueDate, req.Notes))
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrAlreadyInvoiced) {
			s.logger.Warn("Create: booking=%s already invoiced", bookingID)
			return nil, ErrAlreadyInvoiced
		}
		s.logger.Error("Create: repository error for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created invoice id=%s for booking=%s", created.ID, bookingID)
	return models.FromDomainInvoice(created, s.timeProvider.Now()), nil
}

// Update изменяет черновик счета
// Доступно только владельцу компании и администратору
func (s *Service) Update(ctx context.Context, actor domain.Actor, invoiceID uuid.UUID, req *models.UpdateInvoiceRequest) (*models.InvoiceResponse, error) {
	s.logger.Info("Update: invoice id=%s by user=%s", invoiceID, actor.UserID)

	return s.mutate(ctx, "Update", actor, invoiceID, func(inv *domain.Invoice) error {
		if !inv.IsEditable() {
			s.logger.Warn("Update: invoice id=%s is not editable, status=%s", invoiceID, inv.Status)
			return ErrInvoiceNotEditable
		}
		if err := req.ApplyTo(inv); err != nil {
			s.logger.Warn("Update: validation failed for invoice id=%s: %v", invoiceID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil
	})
}

// Send отправляет черновик клиенту. Переход draft -> sent необратим.
// Доступно только владельцу компании и администратору
func (s *Service) Send(ctx context.Context, actor domain.Actor, invoiceID uuid.UUID) (*models.InvoiceResponse, error) {
	s.logger.Info("Send: invoice id=%s by user=%s", invoiceID, actor.UserID)

	return s.mutate(ctx, "Send", actor, invoiceID, func(inv *domain.Invoice) error {
		if inv.Status != domain.InvoiceDraft {
			s.logger.Warn("Send: invoice id=%s already %s", invoiceID, inv.Status)
			return ErrInvalidTransition
		}
		now := s.timeProvider.Now()
		inv.Status = domain.InvoiceSent
		inv.SentAt = &now
		return nil
	})
}

// RecordPayment регистрирует платеж по отправленному счету
// Доступно только владельцу компании и администратору
func (s *Service) RecordPayment(ctx context.Context, actor domain.Actor, invoiceID uuid.UUID, req *models.PaymentRequest) (*models.InvoiceResponse, error) {
	s.logger.Info("RecordPayment: invoice id=%s, amount=%s by user=%s", invoiceID, req.Amount, actor.UserID)

	amount, err := req.AmountCents()
	if err != nil {
		s.logger.Warn("RecordPayment: validation failed for invoice id=%s: %v", invoiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.mutate(ctx, "RecordPayment", actor, invoiceID, func(inv *domain.Invoice) error {
		if inv.Status != domain.InvoiceSent && inv.Status != domain.InvoicePartiallyPaid {
			s.logger.Warn("RecordPayment: invoice id=%s cannot accept payments, status=%s", invoiceID, inv.Status)
			return ErrInvalidTransition
		}
		if amount > inv.BalanceCents() {
			s.logger.Warn("RecordPayment: amount=%d exceeds balance=%d of invoice id=%s", amount, inv.BalanceCents(), invoiceID)
			return ErrOverpayment
		}
		inv.ApplyPayment(amount)
		return nil
	})
}

// Вспомогательные методы

// mutate читает счет с блокировкой, применяет изменение и сохраняет в одной транзакции
func (s *Service) mutate(ctx context.Context, op string, actor domain.Actor, invoiceID uuid.UUID, change func(inv *domain.Invoice) error) (*models.InvoiceResponse, error) {
	var updated *domain.Invoice

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		inv, err := s.getInvoice(ctx, op, invoiceID, true)
		if err != nil {
			return err
		}

		if err := s.authorize(ctx, op, actor, inv.BusinessID); err != nil {
			return err
		}

		if err := change(inv); err != nil {
			return err
		}

		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
				return ErrInvoiceNotFound
			}
			s.logger.Error("%s: repository error for invoice id=%s: %v", op, invoiceID, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: successfully updated invoice id=%s, status=%s", op, invoiceID, updated.Status)
	return models.FromDomainInvoice(updated, s.timeProvider.Now()), nil
}

func (s *Service) getInvoice(ctx context.Context, op string, invoiceID uuid.UUID, forUpdate bool) (*domain.Invoice, error) {
	get := s.invoiceRepo.GetByID
	if forUpdate {
		get = s.invoiceRepo.GetByIDForUpdate
	}

	inv, err := get(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("%s: invoice id=%s not found", op, invoiceID)
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("%s: repository error for invoice id=%s: %v", op, invoiceID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return inv, nil
}

// authorize проверяет, что пользователь владеет компанией или является администратором
func (s *Service) authorize(ctx context.Context, op string, actor domain.Actor, businessID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == domain.RoleCustomer {
		s.logger.Warn("%s: customer=%s cannot manage invoices", op, actor.UserID)
		return ErrAccessDenied
	}

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business=%s not found", op, businessID)
			return ErrAccessDenied
		}
		s.logger.Error("%s: failed to get business=%s: %v", op, businessID, err)
		return fmt.Errorf("%w: %s - failed to get business: %v", ErrInternal, op, err)
	}

	if !actor.Owns(business) {
		s.logger.Warn("%s: user=%s cannot manage business=%s", op, actor.UserID, businessID)
		return ErrAccessDenied
	}
	return nil
}
