package approve_edit_request

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests/models"
)

type EditRequestService interface {
	Approve(ctx context.Context, actor domain.Actor, requestID uuid.UUID) (*models.DecisionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
