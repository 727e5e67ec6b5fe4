package batch_create_invoices

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
	batchCreateInvoices "github.com/LomaCotta/haulers-app-sub001/internal/usecase/batch_create_invoices"
)

// BatchRequest HTTP request model
type BatchRequest struct {
	BusinessID string   `json:"businessId"`
	BookingIDs []string `json:"bookingIds"`
	DueDate    *string  `json:"dueDate,omitempty"` // "2025-11-01"
	Notes      *string  `json:"notes,omitempty"`
}

// BatchResponse HTTP response model
type BatchResponse struct {
	Succeeded []batchCreateInvoices.Succeeded `json:"succeeded"`
	Failed    []batchCreateInvoices.Failed    `json:"failed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BatchRequest) ToUseCaseRequest(actor domain.Actor) (*batchCreateInvoices.Request, error) {
	businessID, err := uuid.Parse(r.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("businessId: %v", err)
	}

	ids := make([]uuid.UUID, 0, len(r.BookingIDs))
	for i, raw := range r.BookingIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("bookingIds[%d]: %v", i, err)
		}
		ids = append(ids, id)
	}

	due, err := models.ParseDueDate(r.DueDate)
	if err != nil {
		return nil, err
	}

	return &batchCreateInvoices.Request{
		Actor:      actor,
		BusinessID: businessID,
		BookingIDs: ids,
		DueDate:    due,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель.
// Пустые списки отдаются как [], а не null.
func FromUseCaseResponse(resp *batchCreateInvoices.Response) *BatchResponse {
	out := &BatchResponse{
		Succeeded: resp.Succeeded,
		Failed:    resp.Failed,
	}
	if out.Succeeded == nil {
		out.Succeeded = []batchCreateInvoices.Succeeded{}
	}
	if out.Failed == nil {
		out.Failed = []batchCreateInvoices.Failed{}
	}
	return out
}
