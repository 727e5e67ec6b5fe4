package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/pgerr"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"business_id",
	"weekday",
	"morning_jobs",
	"afternoon_jobs",
	"morning_start",
	"morning_end",
	"afternoon_start",
	"afternoon_end",
	"created_at",
	"updated_at",
}

var overrideColumns = []string{
	"id",
	"business_id",
	"override_date",
	"kind",
	"scope",
	"max_concurrent_jobs",
	"reason",
	"created_at",
}

// Repository репозиторий недельных правил и исключений доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRule получает правило компании на день недели
func (r *Repository) GetRule(ctx context.Context, businessID uuid.UUID, weekday time.Weekday) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"business_id": businessID, "weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRule - scan rule: %v", ErrScanRow, err)
	}
	return rule, nil
}

// EnsureRule идемпотентно создает правило и возвращает сохраненную строку.
// Уникальный индекс (business_id, weekday) гарантирует, что при одновременном
// первом обращении будет создана ровно одна строка: проигравшая вставка
// ничего не делает, и обе стороны читают одно и то же правило.
func (r *Repository) EnsureRule(ctx context.Context, rule domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"business_id",
			"weekday",
			"morning_jobs",
			"afternoon_jobs",
			"morning_start",
			"morning_end",
			"afternoon_start",
			"afternoon_end",
		).
		Values(
			rule.BusinessID,
			int(rule.Weekday),
			rule.MorningJobs,
			rule.AfternoonJobs,
			rule.MorningStart,
			rule.MorningEnd,
			rule.AfternoonStart,
			rule.AfternoonEnd,
		).
		Suffix("ON CONFLICT (business_id, weekday) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EnsureRule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: EnsureRule - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetRule(ctx, rule.BusinessID, rule.Weekday)
}

// UpsertRule создает или заменяет правило на день недели
func (r *Repository) UpsertRule(ctx context.Context, rule domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"business_id",
			"weekday",
			"morning_jobs",
			"afternoon_jobs",
			"morning_start",
			"morning_end",
			"afternoon_start",
			"afternoon_end",
		).
		Values(
			rule.BusinessID,
			int(rule.Weekday),
			rule.MorningJobs,
			rule.AfternoonJobs,
			rule.MorningStart,
			rule.MorningEnd,
			rule.AfternoonStart,
			rule.AfternoonEnd,
		).
		Suffix(`ON CONFLICT (business_id, weekday) DO UPDATE SET
			morning_jobs = EXCLUDED.morning_jobs,
			afternoon_jobs = EXCLUDED.afternoon_jobs,
			morning_start = EXCLUDED.morning_start,
			morning_end = EXCLUDED.morning_end,
			afternoon_start = EXCLUDED.afternoon_start,
			afternoon_end = EXCLUDED.afternoon_end,
			updated_at = NOW()
			RETURNING ` + strings.Join(ruleColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - build upsert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: UpsertRule - execute upsert: %v", ErrExecQuery, err)
	}
	return saved, nil
}

// ListOverrides получает исключения компании в периоде [from, to]
func (r *Repository) ListOverrides(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("availability_overrides").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.AvailabilityOverride, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOverrides - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - iterate rows: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// CreateOverride создает исключение
func (r *Repository) CreateOverride(ctx context.Context, o domain.AvailabilityOverride) (*domain.AvailabilityOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_overrides").
		Columns("business_id", "override_date", "kind", "scope", "max_concurrent_jobs", "reason").
		Values(o.BusinessID, o.Date, string(o.Kind), string(o.Scope), o.MaxConcurrentJobs, o.Reason).
		Suffix("RETURNING " + strings.Join(overrideColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: CreateOverride - execute insert: %v", ErrExecQuery, err)
	}
	return created, nil
}

// DeleteOverride удаляет исключение компании
func (r *Repository) DeleteOverride(ctx context.Context, businessID, overrideID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_overrides").
		Where(squirrel.Eq{"id": overrideID, "business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOverrideNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var weekday int

	err := row.Scan(
		&rule.ID,
		&rule.BusinessID,
		&weekday,
		&rule.MorningJobs,
		&rule.AfternoonJobs,
		&rule.MorningStart,
		&rule.MorningEnd,
		&rule.AfternoonStart,
		&rule.AfternoonEnd,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Weekday = time.Weekday(weekday)
	return &rule, nil
}

func scanOverride(row rowScanner) (*domain.AvailabilityOverride, error) {
	var (
		o        domain.AvailabilityOverride
		kind     string
		scope    string
		maxJobs  sql.NullInt64
		reason   sql.NullString
		overDate time.Time
	)

	err := row.Scan(&o.ID, &o.BusinessID, &overDate, &kind, &scope, &maxJobs, &reason, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	o.Date = domain.DateOnly(overDate)
	o.Kind = domain.OverrideKind(kind)
	o.Scope = domain.OverrideScope(scope)
	if maxJobs.Valid {
		v := int(maxJobs.Int64)
		o.MaxConcurrentJobs = &v
	}
	if reason.Valid {
		o.Reason = &reason.String
	}
	return &o, nil
}
