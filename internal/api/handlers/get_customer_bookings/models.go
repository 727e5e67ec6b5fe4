package get_customer_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Query params: startDate, endDate (YYYY-MM-DD), status, limit
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		StartDate: handlers.QueryString(r, "startDate"),
		EndDate:   handlers.QueryString(r, "endDate"),
		Status:    handlers.QueryString(r, "status"),
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
