package update_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	p := req.Patch
	if p.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if p.Status != nil {
		if _, ok := domain.ParseBookingStatus(string(*p.Status)); !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
		}
	}

	if p.RequestedSlot != nil && !p.RequestedSlot.Valid() {
		return fmt.Errorf("%w: requested_slot must be morning or afternoon", ErrInvalidInput)
	}

	if p.ServiceAddress != nil && strings.TrimSpace(*p.ServiceAddress) == "" {
		return fmt.Errorf("%w: service_address cannot be empty", ErrInvalidInput)
	}

	if p.RequestedDate != nil && p.RequestedDate.IsZero() {
		return fmt.Errorf("%w: requested_date is invalid", ErrInvalidInput)
	}

	return nil
}
