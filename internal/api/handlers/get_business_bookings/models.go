package get_business_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		StartDate: handlers.QueryString(r, "startDate"),
		EndDate:   handlers.QueryString(r, "endDate"),
		Status:    handlers.QueryString(r, "status"),
	}

	// Один день задается параметром date
	if date := handlers.QueryString(r, "date"); date != nil {
		if req.StartDate != nil || req.EndDate != nil {
			return nil, fmt.Errorf("date cannot be combined with startDate/endDate")
		}
		req.StartDate = date
		req.EndDate = date
	}

	if limitStr := handlers.QueryString(r, "limit"); limitStr != nil {
		limit, err := strconv.Atoi(*limitStr)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid limit %q", *limitStr)
		}
		req.Limit = limit
	}

	return req, nil
}
