package reject_edit_request

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests/models"
)

type EditRequestService interface {
	Reject(ctx context.Context, actor domain.Actor, requestID uuid.UUID, in *models.RejectRequest) (*models.DecisionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
