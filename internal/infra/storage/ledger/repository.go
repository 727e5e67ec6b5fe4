package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"category",
	"amount_cents",
	"period_start",
	"period_end",
	"notes",
	"created_by",
	"created_at",
}

// Repository репозиторий финансового журнала платформы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ledger_entries").
		Columns("category", "amount_cents", "period_start", "period_end", "notes", "created_by").
		Values(string(e.Category), e.AmountCents, e.PeriodStart, e.PeriodEnd, e.Notes, e.CreatedBy).
		Suffix("RETURNING " + strings.Join(entryColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) != 1 {
		return nil, fmt.Errorf("%w: Create - expected one row, got %d", ErrScanRow, len(entries))
	}
	return entries[0], nil
}

// ListByPeriod получает записи, период которых пересекается с [from, to]
func (r *Repository) ListByPeriod(ctx context.Context, from, to time.Time, category *domain.LedgerCategory) ([]*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(entryColumns...).
		From("ledger_entries").
		Where(squirrel.LtOrEq{"period_start": to}).
		Where(squirrel.GtOrEq{"period_end": from}).
		OrderBy("period_start ASC", "created_at ASC")
	if category != nil {
		builder = builder.Where(squirrel.Eq{"category": string(*category)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*domain.LedgerEntry, error) {
	entries := make([]*domain.LedgerEntry, 0)
	for rows.Next() {
		var (
			e        domain.LedgerEntry
			category string
			notes    sql.NullString
		)
		if err := rows.Scan(&e.ID, &category, &e.AmountCents, &e.PeriodStart, &e.PeriodEnd, &notes, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan ledger entry: %v", ErrScanRow, err)
		}
		e.Category = domain.LedgerCategory(category)
		e.PeriodStart = domain.DateOnly(e.PeriodStart)
		e.PeriodEnd = domain.DateOnly(e.PeriodEnd)
		if notes.Valid {
			e.Notes = &notes.String
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate ledger entries: %v", ErrScanRow, err)
	}
	return entries, nil
}
