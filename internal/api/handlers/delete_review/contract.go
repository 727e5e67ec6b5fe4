package delete_review

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

type ReviewService interface {
	Delete(ctx context.Context, actor domain.Actor, reviewID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
