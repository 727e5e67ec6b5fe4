package create_review

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, actor domain.Actor, bookingID uuid.UUID, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
