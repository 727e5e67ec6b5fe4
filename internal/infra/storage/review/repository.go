package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/pgerr"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"id",
	"booking_id",
	"business_id",
	"customer_id",
	"rating",
	"body",
	"hidden",
	"owner_response",
	"responded_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв. На одно бронирование допускается один отзыв.
func (r *Repository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("booking_id", "business_id", "customer_id", "rating", "body").
		Values(rv.BookingID, rv.BusinessID, rv.CustomerID, rv.Rating, rv.Body).
		Suffix("RETURNING " + strings.Join(reviewColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return created, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rv, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %v", ErrScanRow, err)
	}
	return rv, nil
}

// Update сохраняет модерацию и ответ владельца
func (r *Repository) Update(ctx context.Context, rv *domain.Review) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("hidden", rv.Hidden).
		Set("owner_response", rv.OwnerResponse).
		Set("responded_at", rv.RespondedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rv.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReviewNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func scanReview(row *sql.Row) (*domain.Review, error) {
	var (
		rv       domain.Review
		response sql.NullString
	)

	err := row.Scan(
		&rv.ID,
		&rv.BookingID,
		&rv.BusinessID,
		&rv.CustomerID,
		&rv.Rating,
		&rv.Body,
		&rv.Hidden,
		&response,
		&rv.RespondedAt,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if response.Valid {
		rv.OwnerResponse = &response.String
	}
	return &rv, nil
}
