package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

var quoteColumns = []string{
	"id",
	"booking_id",
	"business_id",
	"amount_cents",
	"status",
	"sent_at",
	"viewed_at",
	"responded_at",
	"expires_at",
	"created_at",
}

// Repository репозиторий коммерческих предложений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает предложение по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(quoteColumns...).
		From("quotes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	q, err := scanQuote(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan quote: %v", ErrScanRow, err)
	}
	return q, nil
}

// GetCurrentByBooking получает актуальное предложение: последнее по created_at
func (r *Repository) GetCurrentByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Quote, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(quoteColumns...).
		From("quotes").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentByBooking - build select query: %v", ErrBuildQuery, err)
	}

	q, err := scanQuote(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentByBooking - scan quote: %v", ErrScanRow, err)
	}
	return q, nil
}

// MarkViewed переводит отправленное предложение в статус viewed.
// Повторный вызов ничего не меняет.
func (r *Repository) MarkViewed(ctx context.Context, id uuid.UUID, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("quotes").
		Set("status", string(domain.QuoteViewed)).
		Set("viewed_at", at).
		Where(squirrel.Eq{"id": id, "status": string(domain.QuoteSent)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkViewed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkViewed - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

func scanQuote(row *sql.Row) (*domain.Quote, error) {
	var (
		q      domain.Quote
		status string
	)

	err := row.Scan(
		&q.ID,
		&q.BookingID,
		&q.BusinessID,
		&q.AmountCents,
		&status,
		&q.SentAt,
		&q.ViewedAt,
		&q.RespondedAt,
		&q.ExpiresAt,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.Status = domain.QuoteStatus(status)
	return &q, nil
}
