package record_payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
)

type InvoiceService interface {
	RecordPayment(ctx context.Context, actor domain.Actor, invoiceID uuid.UUID, req *models.PaymentRequest) (*models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
