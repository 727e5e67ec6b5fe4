package invoice

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

var invoiceColumns = []string{
	"id",
	"business_id",
	"booking_id",
	"customer_id",
	"status",
	"total_cents",
	"paid_cents",
	"due_date",
	"notes",
	"sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий счетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает счет. Второй счет на то же бронирование отклоняется уникальным индексом.
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns("business_id", "booking_id", "customer_id", "status", "total_cents", "paid_cents", "due_date", "notes").
		Values(inv.BusinessID, inv.BookingID, inv.CustomerID, string(inv.Status), inv.TotalCents, inv.PaidCents, inv.DueDate, inv.Notes).
		Suffix("RETURNING " + strings.Join(invoiceColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrAlreadyInvoiced
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return created, nil
}

// GetByID получает счет по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает счет с блокировкой строки, если есть активная транзакция
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(invoiceColumns...).
		From("invoices").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan invoice: %v", ErrScanRow, err)
	}
	return inv, nil
}

// ExistsForBooking проверяет, выставлен ли уже счет на бронирование
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("invoices").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

// Update сохраняет изменяемые поля счета
func (r *Repository) Update(ctx context.Context, inv *domain.Invoice) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
		Set("status", string(inv.Status)).
		Set("total_cents", inv.TotalCents).
		Set("paid_cents", inv.PaidCents).
		Set("due_date", inv.DueDate).
		Set("notes", inv.Notes).
		Set("sent_at", inv.SentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": inv.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&inv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvoiceNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

func scanInvoice(row *sql.Row) (*domain.Invoice, error) {
	var (
		inv       domain.Invoice
		bookingID uuid.NullUUID
		status    string
		notes     sql.NullString
	)

	err := row.Scan(
		&inv.ID,
		&inv.BusinessID,
		&bookingID,
		&inv.CustomerID,
		&status,
		&inv.TotalCents,
		&inv.PaidCents,
		&inv.DueDate,
		&notes,
		&inv.SentAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.Status = domain.InvoiceStatus(status)
	if bookingID.Valid {
		id := bookingID.UUID
		inv.BookingID = &id
	}
	if notes.Valid {
		inv.Notes = &notes.String
	}
	return &inv, nil
}
