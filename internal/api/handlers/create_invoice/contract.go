package create_invoice

import (
	"context"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
)

type InvoiceService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateInvoiceRequest) (*models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
