package batch_create_invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// MaxBatchSize максимальное число бронирований в одном запросе
const MaxBatchSize = 100

// Request модель запроса на пакетное выставление счетов
type Request struct {
	Actor      domain.Actor
	BusinessID uuid.UUID
	BookingIDs []uuid.UUID
	DueDate    *time.Time
	Notes      *string
}

// Succeeded счет, созданный для бронирования
type Succeeded struct {
	BookingID  uuid.UUID `json:"bookingId"`
	InvoiceID  uuid.UUID `json:"invoiceId"`
	TotalCents int64     `json:"totalCents"`
}

// Failed бронирование, для которого счет не создан, с кодом причины
type Failed struct {
	BookingID uuid.UUID                 `json:"bookingId"`
	Reason    domain.BatchFailureReason `json:"reason"`
}

// Response результат по каждому бронированию пакета
type Response struct {
	Succeeded []Succeeded `json:"succeeded"`
	Failed    []Failed    `json:"failed"`
}

func (r *Response) succeed(booking *domain.Booking, inv *domain.Invoice) {
	r.Succeeded = append(r.Succeeded, Succeeded{
		BookingID:  booking.ID,
		InvoiceID:  inv.ID,
		TotalCents: inv.TotalCents,
	})
}

func (r *Response) fail(bookingID uuid.UUID, reason domain.BatchFailureReason) {
	r.Failed = append(r.Failed, Failed{BookingID: bookingID, Reason: reason})
}
