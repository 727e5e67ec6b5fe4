package batch_create_invoices

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req.BusinessID == uuid.Nil {
		return fmt.Errorf("%w: business id is required", ErrInvalidInput)
	}
	if len(req.BookingIDs) == 0 {
		return fmt.Errorf("%w: at least one booking id is required", ErrInvalidInput)
	}
	if len(req.BookingIDs) > MaxBatchSize {
		return fmt.Errorf("%w: at most %d bookings per batch", ErrInvalidInput, MaxBatchSize)
	}
	return nil
}
