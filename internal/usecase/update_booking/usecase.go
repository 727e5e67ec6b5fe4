package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/pricing"
)

// UseCase use case частичного изменения бронирования с пересчетом стоимости
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	pricer       Pricer
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	pricer Pricer,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		pricer:       pricer,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования.
// Строка читается FOR UPDATE и записывается в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%s by user=%s, role=%s", req.BookingID, req.Actor.UserID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var resp *Response
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Блокируем строку бронирования
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Получаем компанию для проверки прав и настроек цен
		business, err := uc.businessRepo.GetByID(txCtx, booking.BusinessID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				uc.logger.Error("UpdateBooking: business=%s of booking=%s not found", booking.BusinessID, booking.ID)
			} else {
				uc.logger.Error("UpdateBooking: failed to get business=%s: %v", booking.BusinessID, err)
			}
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}

		// 4. Права: владелец компании или администратор. Клиент меняет бронь только через квоты.
		if req.Actor.Role == domain.RoleCustomer || !req.Actor.CanManage(business) {
			uc.logger.Warn("UpdateBooking: user=%s cannot edit booking=%s", req.Actor.UserID, booking.ID)
			return ErrAccessDenied
		}

		// 5. Оплаченное бронирование заблокировано, кроме смены статуса администратором
		if booking.IsLocked() && !(req.Actor.IsAdmin() && req.Patch.StatusOnly()) {
			uc.logger.Warn("UpdateBooking: booking=%s is paid, edit rejected", booking.ID)
			return ErrBookingLocked
		}

		// 6. Применяем простые поля
		applySimpleFields(booking, req.Patch)

		// 7. Пересчитываем стоимость, если менялись детали
		resp = &Response{Booking: booking}
		if req.Patch.touchesDetails() {
			breakdown, source, err := uc.reprice(txCtx, business, booking, req.Patch)
			if err != nil {
				return err
			}
			resp.Breakdown = breakdown
			resp.RateSource = source
		}

		// 8. Сохраняем
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking=%s, total=%d",
		resp.Booking.ID, resp.Booking.TotalPriceCents)
	return resp, nil
}

// reprice сливает детали, валидирует их, считает стоимость и перезаписывает производные поля
func (uc *UseCase) reprice(ctx context.Context, business *domain.Business, booking *domain.Booking, patch Patch) (*domain.PriceBreakdown, domain.RateSource, error) {
	doc := domain.MergeDocuments(booking.ServiceDetails, patch.ServiceDetails)
	if patch.TeamSize != nil {
		doc = domain.MergeDocuments(doc, map[string]interface{}{
			domain.KeyMoving: map[string]interface{}{domain.KeyTeamSize: *patch.TeamSize},
		})
	}

	details, err := domain.DecodeServiceDetails(doc)
	if err != nil {
		uc.logger.Warn("UpdateBooking: invalid service_details for booking=%s: %v", booking.ID, err)
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if details.Category != domain.CategoryMoving {
		// Для остальных категорий стоимость задается вручную
		booking.ServiceDetails = doc
		return nil, "", nil
	}

	result, err := uc.pricer.Quote(ctx, business, pricing.Input{
		Details:               details.Moving,
		StoredTeamSize:        booking.TeamSize,
		StoredHourlyRateCents: booking.HourlyRateCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrNoRate):
			uc.logger.Warn("UpdateBooking: no rate for booking=%s: %v", booking.ID, err)
			return nil, "", ErrNoRate
		case errors.Is(err, pricing.ErrInvalidInput):
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("UpdateBooking: pricing failed for booking=%s: %v", booking.ID, err)
		return nil, "", fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	result.Apply(details.Moving)
	doc, err = domain.WithMovingDerived(doc, details.Moving)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	b := result.Breakdown
	booking.ServiceDetails = doc
	booking.TeamSize = result.TeamSize
	booking.HourlyRateCents = result.HourlyRateCents
	booking.EstimatedHours = result.BillableHours
	booking.BasePriceCents = b.BaseCents
	booking.AdditionalPriceCents = b.ExtrasCents()
	booking.TotalPriceCents = b.TotalCents

	return &b, result.RateSource, nil
}

// applySimpleFields применяет поля, не влияющие на стоимость
func applySimpleFields(b *domain.Booking, p Patch) {
	if p.Status != nil {
		status, _ := domain.ParseBookingStatus(string(*p.Status))
		b.Status = status
	}
	if p.RequestedDate != nil {
		b.RequestedDate = domain.DateOnly(*p.RequestedDate)
	}
	if p.RequestedSlot != nil {
		b.RequestedSlot = *p.RequestedSlot
	}
	if p.ServiceAddress != nil {
		b.ServiceAddress = *p.ServiceAddress
	}
}
