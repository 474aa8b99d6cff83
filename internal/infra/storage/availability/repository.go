package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MentorshipService/pkg/ptr"
)

const table = "availability_slots"

var columns = []string{
	"id",
	"mentor_id",
	"start_time",
	"end_time",
	"is_recurring",
	"recurring_pattern",
	"recurring_end_date",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий окон доступности менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет окно доступности. Если ID не задан, генерирует его.
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	var pattern *string
	if slot.RecurringPattern != nil {
		pattern = ptr.Ptr(string(*slot.RecurringPattern))
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"mentor_id",
			"start_time",
			"end_time",
			"is_recurring",
			"recurring_pattern",
			"recurring_end_date",
			"is_active",
		).
		Values(
			slot.ID,
			slot.MentorID,
			slot.StartTime.UTC(),
			slot.EndTime.UTC(),
			slot.IsRecurring,
			pattern,
			utcPtr(slot.RecurringEndDate),
			slot.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает окно по ID.
// Внутри транзакции строка блокируется (FOR SHARE), чтобы окно не деактивировали во время бронирования.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// GetActiveByMentor получает все активные окна ментора
func (r *Repository) GetActiveByMentor(ctx context.Context, mentorID uuid.UUID) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"mentor_id": mentorID, "is_active": true}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetActiveByMentorInRange получает активные окна ментора, которые могут дать вхождения в [from, to).
// Отсекает заведомо лишние строки; точную проверку делает разворачивание.
func (r *Repository) GetActiveByMentorInRange(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := activeInRangeQuery(mentorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByMentorInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// activeInRangeQuery разовые окна, пересекающие [from, to), и повторяющиеся,
// которые начались до to и не закончились до from
func activeInRangeQuery(mentorID uuid.UUID, from, to time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"mentor_id": mentorID, "is_active": true}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"is_recurring": false}, squirrel.Gt{"end_time": from.UTC()}},
			squirrel.And{
				squirrel.Eq{"is_recurring": true},
				squirrel.Or{
					squirrel.Eq{"recurring_end_date": nil},
					squirrel.GtOrEq{"recurring_end_date": from.UTC()},
				},
			},
		}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
}

// Deactivate мягко удаляет окно: все его вхождения перестают разворачиваться
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func scanSlot(row scanner) (*domain.AvailabilitySlot, error) {
	var (
		slot                 domain.AvailabilitySlot
		pattern              sql.NullString
		endDate              sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.MentorID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsRecurring,
		&pattern,
		&endDate,
		&slot.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.StartTime = slot.StartTime.UTC()
	slot.EndTime = slot.EndTime.UTC()
	if pattern.Valid {
		slot.RecurringPattern = ptr.Ptr(domain.RecurringPattern(pattern.String))
	}
	if endDate.Valid {
		slot.RecurringEndDate = ptr.Ptr(endDate.Time.UTC())
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
