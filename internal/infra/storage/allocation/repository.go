package allocation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

const allocationColumns = "id, resource_id, user_id, start_time, end_time, " +
	"effective_start, effective_end, status, hold_expires_at, created_at, updated_at"

// Repository репозиторий аллокаций ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аллокаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую аллокацию
// Если в контексте есть активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, a *domain.Allocation) (*domain.Allocation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("allocations").
		Columns(
			"resource_id",
			"user_id",
			"start_time",
			"end_time",
			"effective_start",
			"effective_end",
			"status",
			"hold_expires_at",
		).
		Values(
			a.ResourceID,
			a.UserID,
			a.StartTime,
			a.EndTime,
			a.EffectiveStart,
			a.EffectiveEnd,
			a.Status,
			a.HoldExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// ListActiveInRange возвращает активные аллокации ресурса, чей эффективный
// (буферно-расширенный) интервал пересекает [start, end)
//
// Предварительная фильтрация для движка доступности: отменённые и истёкшие
// аллокации, а также pending-аллокации с истёкшим hold, ресурс не блокируют
func (r *Repository) ListActiveInRange(ctx context.Context, resourceID string, start, end, now time.Time) ([]*domain.Allocation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(allocationColumns).
		From("allocations").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.NotEq{"status": domain.InactiveStatuses}).
		Where(squirrel.Lt{"effective_start": end}).
		Where(squirrel.Gt{"effective_end": start}).
		Where(squirrel.Or{
			squirrel.NotEq{"status": domain.AllocationPending},
			squirrel.Eq{"hold_expires_at": nil},
			squirrel.Gt{"hold_expires_at": now},
		}).
		OrderBy("effective_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var allocations []*domain.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - iterate rows: %v", ErrExecQuery, err)
	}

	return allocations, nil
}

// GetByID получает аллокацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Allocation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(allocationColumns).
		From("allocations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetByID - iterate rows: %v", ErrExecQuery, err)
		}
		return nil, ErrAllocationNotFound
	}
	return scanAllocation(rows)
}

// UpdateStatus переводит аллокацию в новый статус
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AllocationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("allocations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

func scanAllocation(rows *sql.Rows) (*domain.Allocation, error) {
	var a domain.Allocation
	var holdExpiresAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&a.ID,
		&a.ResourceID,
		&a.UserID,
		&a.StartTime,
		&a.EndTime,
		&a.EffectiveStart,
		&a.EffectiveEnd,
		&a.Status,
		&holdExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scan allocation: %v", ErrScanRow, err)
	}

	if holdExpiresAt.Valid {
		a.HoldExpiresAt = &holdExpiresAt.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}
