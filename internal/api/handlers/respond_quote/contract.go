package respond_quote

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes/models"
)

type QuoteService interface {
	Respond(ctx context.Context, actor domain.Actor, quoteID uuid.UUID, req *models.RespondRequest) (*models.RespondResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
