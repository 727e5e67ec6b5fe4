package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

// Repository репозиторий компаний и их тарифов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория компаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает компанию по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"min_notice_hours",
		"packing_room_rate_cents",
		"stairs_flight_rate_cents",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Business
	var packingRate, stairsRate sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.OwnerID,
		&b.Name,
		&b.MinNoticeHours,
		&packingRate,
		&stairsRate,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %v", ErrScanRow, err)
	}

	if packingRate.Valid {
		b.PackingRoomRateCents = &packingRate.Int64
	}
	if stairsRate.Valid {
		b.StairsFlightRateCents = &stairsRate.Int64
	}

	return &b, nil
}

// ListPricingTiers получает тарифы компании, отсортированные по размеру бригады
func (r *Repository) ListPricingTiers(ctx context.Context, businessID uuid.UUID) ([]domain.PricingTier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"team_size",
		"hourly_rate_cents",
		"base_rate_cents",
		"min_hours",
	).
		From("pricing_tiers").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("team_size ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPricingTiers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPricingTiers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]domain.PricingTier, 0)
	for rows.Next() {
		var t domain.PricingTier
		var hourly, base sql.NullInt64
		if err := rows.Scan(&t.ID, &t.BusinessID, &t.TeamSize, &hourly, &base, &t.MinHours); err != nil {
			return nil, fmt.Errorf("%w: ListPricingTiers - scan tier: %v", ErrScanRow, err)
		}
		if hourly.Valid {
			t.HourlyRateCents = &hourly.Int64
		}
		if base.Valid {
			t.BaseRateCents = &base.Int64
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPricingTiers - iterate rows: %v", ErrScanRow, err)
	}

	return tiers, nil
}
