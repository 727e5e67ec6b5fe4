package editrequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

// Repository репозиторий запросов на изменение бронирований.
// Решения по запросам принимают хранимые процедуры, здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает запрос на изменение по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EditRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"requested_by",
		"status",
		"requested_changes",
		"decided_by",
		"decided_at",
		"rejection_reason",
		"created_at",
	).
		From("booking_edit_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		req     domain.EditRequest
		status  string
		rawJSON []byte
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&req.BookingID,
		&req.RequestedBy,
		&status,
		&rawJSON,
		&req.DecidedBy,
		&req.DecidedAt,
		&req.RejectionReason,
		&req.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEditRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan edit request: %v", ErrScanRow, err)
	}

	req.Status = domain.EditRequestStatus(status)
	req.RequestedChanges = map[string]interface{}{}
	if len(rawJSON) > 0 {
		if err := json.Unmarshal(rawJSON, &req.RequestedChanges); err != nil {
			return nil, fmt.Errorf("%w: GetByID - decode requested changes: %v", ErrScanRow, err)
		}
	}

	return &req, nil
}
