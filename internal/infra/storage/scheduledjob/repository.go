package scheduledjob

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/psqlbuilder"
)

// CommitmentSource имя источника занятости для запланированных работ
const CommitmentSource = "scheduled_jobs"

// Repository репозиторий запланированных работ (календарь бригад)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListCommitments возвращает работы компании в периоде [from, to], занимающие слоты
func (r *Repository) ListCommitments(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.Commitment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "job_date", "slot").
		From("scheduled_jobs").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"job_date": from}).
		Where(squirrel.LtOrEq{"job_date": to}).
		Where(squirrel.Eq{"status": domain.CommittingStatusStrings()}).
		OrderBy("job_date ASC").
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
			jobID     uuid.UUID
			bookingID uuid.NullUUID
			date      time.Time
			slot      string
		)
		if err := rows.Scan(&jobID, &bookingID, &date, &slot); err != nil {
			return nil, fmt.Errorf("%w: ListCommitments - scan row: %v", ErrScanRow, err)
		}

		c := domain.Commitment{
			Date:   domain.DateOnly(date),
			Slot:   domain.SlotKind(slot),
			JobID:  &jobID,
			Source: CommitmentSource,
		}
		if bookingID.Valid {
			id := bookingID.UUID
			c.BookingID = &id
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCommitments - iterate rows: %v", ErrScanRow, err)
	}

	return commitments, nil
}
