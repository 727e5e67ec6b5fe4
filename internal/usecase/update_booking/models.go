package update_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// Request модель запроса на частичное изменение бронирования
type Request struct {
	BookingID uuid.UUID
	Actor     domain.Actor // Пользователь из JWT текущего запроса
	Patch     Patch
}

// Patch изменяемые поля. nil означает "не менять".
type Patch struct {
	Status         *domain.BookingStatus
	RequestedDate  *time.Time
	RequestedSlot  *domain.SlotKind
	ServiceAddress *string
	TeamSize       *int
	// ServiceDetails сливается с сохраненным документом, null удаляет ключ
	ServiceDetails map[string]interface{}
}

// IsEmpty сообщает, что в запросе нет изменений
func (p Patch) IsEmpty() bool {
	return p.Status == nil &&
		p.RequestedDate == nil &&
		p.RequestedSlot == nil &&
		p.ServiceAddress == nil &&
		p.TeamSize == nil &&
		p.ServiceDetails == nil
}

// StatusOnly сообщает, что меняется только статус
func (p Patch) StatusOnly() bool {
	return p.Status != nil &&
		p.RequestedDate == nil &&
		p.RequestedSlot == nil &&
		p.ServiceAddress == nil &&
		p.TeamSize == nil &&
		p.ServiceDetails == nil
}

// touchesDetails сообщает, что нужен пересчет стоимости
func (p Patch) touchesDetails() bool {
	return p.ServiceDetails != nil || p.TeamSize != nil
}

// Response модель ответа с обновленным бронированием
type Response struct {
	Booking    *domain.Booking
	Breakdown  *domain.PriceBreakdown // nil, если стоимость не пересчитывалась
	RateSource domain.RateSource
}
