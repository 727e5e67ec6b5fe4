package batch_create_invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	invoiceRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/invoice"
	"github.com/LomaCotta/haulers-app-sub001/pkg/locker"
)

const outcomeCreated = "created"

// UseCase use case пакетного выставления счетов по бронированиям
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	invoiceRepo  InvoiceRepository
	locker       Locker
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	invoiceRepo InvoiceRepository,
	locker Locker,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		invoiceRepo:  invoiceRepo,
		locker:       locker,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute создает черновики счетов для каждого бронирования пакета.
// Ошибка по одному бронированию не прерывает пакет, а попадает в failed с кодом причины.
// Пакеты одной компании выполняются последовательно под блокировкой в Redis.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BatchCreateInvoices: business=%s, bookings=%d by user=%s",
		req.BusinessID, len(req.BookingIDs), req.Actor.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BatchCreateInvoices: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права на компанию
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("BatchCreateInvoices: business=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("BatchCreateInvoices: failed to get business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !req.Actor.CanManage(business) {
		uc.logger.Warn("BatchCreateInvoices: user=%s cannot manage business=%s", req.Actor.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 3. Берем блокировку компании
	lease, err := uc.locker.Lock(ctx, "invoice-batch:"+req.BusinessID.String())
	if err != nil {
		if errors.Is(err, locker.ErrLocked) {
			uc.logger.Warn("BatchCreateInvoices: batch already running for business=%s", req.BusinessID)
			return nil, ErrBatchInProgress
		}
		uc.logger.Error("BatchCreateInvoices: failed to lock business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("BatchCreateInvoices: failed to release lock for business=%s: %v", req.BusinessID, err)
		}
	}()

	// 4. Обрабатываем бронирования по одному
	resp := &Response{
		Succeeded: make([]Succeeded, 0, len(req.BookingIDs)),
		Failed:    []Failed{},
	}
	seen := make(map[uuid.UUID]struct{}, len(req.BookingIDs))

	for i, bookingID := range req.BookingIDs {
		// Продлеваем блокировку перед каждым следующим бронированием
		if i > 0 {
			if err := lease.Refresh(ctx); err != nil {
				uc.logger.Error("BatchCreateInvoices: lock lost for business=%s after %d of %d bookings: %v",
					req.BusinessID, i, len(req.BookingIDs), err)
				for _, rest := range req.BookingIDs[i:] {
					uc.record(resp, rest, domain.ReasonLockLost)
				}
				break
			}
		}

		if _, dup := seen[bookingID]; dup {
			uc.record(resp, bookingID, domain.ReasonDuplicateInBatch)
			continue
		}
		seen[bookingID] = struct{}{}

		booking, inv, reason := uc.createOne(ctx, req, bookingID)
		if reason != "" {
			uc.record(resp, bookingID, reason)
			continue
		}
		resp.succeed(booking, inv)
		uc.metrics.InvoiceBatchItem(outcomeCreated)
	}

	uc.logger.Info("BatchCreateInvoices: business=%s done, succeeded=%d, failed=%d",
		req.BusinessID, len(resp.Succeeded), len(resp.Failed))
	return resp, nil
}

// createOne создает счет для одного бронирования и возвращает код причины при неудаче
func (uc *UseCase) createOne(ctx context.Context, req *Request, bookingID uuid.UUID) (*domain.Booking, *domain.Invoice, domain.BatchFailureReason) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, nil, domain.ReasonBookingNotFound
		}
		uc.logger.Error("BatchCreateInvoices: failed to get booking=%s: %v", bookingID, err)
		return nil, nil, domain.ReasonInternal
	}

	if reason := domain.CheckInvoiceable(booking, req.BusinessID); reason != "" {
		return nil, nil, reason
	}

	exists, err := uc.invoiceRepo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		uc.logger.Error("BatchCreateInvoices: failed to check invoice for booking=%s: %v", bookingID, err)
		return nil, nil, domain.ReasonInternal
	}
	if exists {
		return nil, nil, domain.ReasonAlreadyInvoiced
	}

	inv, err := uc.invoiceRepo.Create(ctx, domain.NewDraftInvoice(booking, req.DueDate, req.Notes))
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrAlreadyInvoiced) {
			return nil, nil, domain.ReasonAlreadyInvoiced
		}
		uc.logger.Error("BatchCreateInvoices: failed to create invoice for booking=%s: %v", bookingID, err)
		return nil, nil, domain.ReasonInternal
	}

	return booking, inv, ""
}

func (uc *UseCase) record(resp *Response, bookingID uuid.UUID, reason domain.BatchFailureReason) {
	uc.logger.Warn("BatchCreateInvoices: booking=%s skipped, reason=%s", bookingID, reason)
	resp.fail(bookingID, reason)
	uc.metrics.InvoiceBatchItem(string(reason))
}
