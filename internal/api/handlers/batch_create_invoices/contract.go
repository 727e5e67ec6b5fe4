package batch_create_invoices

import (
	"context"

	batchCreateInvoices "github.com/LomaCotta/haulers-app-sub001/internal/usecase/batch_create_invoices"
)

type BatchCreateInvoicesUseCase interface {
	Execute(ctx context.Context, req *batchCreateInvoices.Request) (*batchCreateInvoices.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
