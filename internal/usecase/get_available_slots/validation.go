package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req.BusinessID == uuid.Nil {
		return fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	start, end := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)
	if end.Before(start) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	// Период включает обе границы
	if end.After(start.AddDate(0, 0, maxRangeDays-1)) {
		return fmt.Errorf("%w: at most %d days can be requested", ErrRangeTooLong, maxRangeDays)
	}

	return nil
}
