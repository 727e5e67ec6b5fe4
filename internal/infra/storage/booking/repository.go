package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

// CommitmentSource имя источника занятости для общих бронирований
const CommitmentSource = "bookings"

var bookingColumns = []string{
	"id",
	"business_id",
	"customer_id",
	"status",
	"payment_status",
	"requested_date",
	"requested_slot",
	"service_address",
	"team_size",
	"hourly_rate_cents",
	"estimated_hours",
	"base_price_cents",
	"additional_price_cents",
	"total_price_cents",
	"service_details",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Update сохраняет изменяемые поля бронирования одним UPDATE.
// payment_status здесь не меняется: его выставляет платежный контур.
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	details, err := encodeDetails(b.ServiceDetails)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(b.Status)).
		Set("requested_date", b.RequestedDate).
		Set("requested_slot", string(b.RequestedSlot)).
		Set("service_address", b.ServiceAddress).
		Set("team_size", b.TeamSize).
		Set("hourly_rate_cents", b.HourlyRateCents).
		Set("estimated_hours", b.EstimatedHours).
		Set("base_price_cents", b.BasePriceCents).
		Set("additional_price_cents", b.AdditionalPriceCents).
		Set("total_price_cents", b.TotalPriceCents).
		Set("service_details", details).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	b.UpdatedAt = updatedAt
	return nil
}

// ListCommitments возвращает бронирования компании, занимающие слоты в периоде [from, to]
func (r *Repository) ListCommitments(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.Commitment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "requested_date", "requested_slot").
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"requested_date": from}).
		Where(squirrel.LtOrEq{"requested_date": to}).
		Where(squirrel.Eq{"status": domain.CommittingStatusStrings()}).
		OrderBy("requested_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCommitments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCommitments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	commitments := make([]domain.Commitment, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			date time.Time
			slot string
		)
		if err := rows.Scan(&id, &date, &slot); err != nil {
			return nil, fmt.Errorf("%w: ListCommitments - scan row: %v", ErrScanRow, err)
		}
		bookingID := id
		commitments = append(commitments, domain.Commitment{
			Date:      domain.DateOnly(date),
			Slot:      domain.SlotKind(slot),
			BookingID: &bookingID,
			Source:    CommitmentSource,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCommitments - iterate rows: %v", ErrScanRow, err)
	}

	return commitments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// List получает бронирования по фильтру, новые даты первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("requested_date DESC", "created_at DESC")

	if filter.BusinessID != nil {
		builder = builder.Where(squirrel.Eq{"business_id": *filter.BusinessID})
	}
	if filter.CustomerID != nil {
		builder = builder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"requested_date": domain.DateOnly(*filter.From)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"requested_date": domain.DateOnly(*filter.To)})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			statuses = append(statuses, string(st))
		}
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b       domain.Booking
		status  string
		payment string
		slot    string
		rawJSON []byte
		reqDate time.Time
	)

	err := row.Scan(
		&b.ID,
		&b.BusinessID,
		&b.CustomerID,
		&status,
		&payment,
		&reqDate,
		&slot,
		&b.ServiceAddress,
		&b.TeamSize,
		&b.HourlyRateCents,
		&b.EstimatedHours,
		&b.BasePriceCents,
		&b.AdditionalPriceCents,
		&b.TotalPriceCents,
		&rawJSON,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
	}

	b.Status = domain.BookingStatus(status)
	b.PaymentStatus = domain.PaymentStatus(payment)
	b.RequestedSlot = domain.SlotKind(slot)
	b.RequestedDate = domain.DateOnly(reqDate)

	b.ServiceDetails = map[string]interface{}{}
	if len(rawJSON) > 0 {
		if err := json.Unmarshal(rawJSON, &b.ServiceDetails); err != nil {
			return nil, fmt.Errorf("%w: booking %s: %v", ErrInvalidDetails, b.ID, err)
		}
	}

	return &b, nil
}

// encodeDetails сериализует документ в строку: lib/pq передает []byte как bytea
func encodeDetails(doc map[string]interface{}) (string, error) {
	if doc == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDetails, err)
	}
	return string(raw), nil
}
