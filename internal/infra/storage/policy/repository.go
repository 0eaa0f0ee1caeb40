package policy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// Version одна сохранённая версия политики ресурса
// Canonical — каноническая сериализация, Hash — её контентный идентификатор
type Version struct {
	ID         int64
	ResourceID string
	Hash       string
	Canonical  string
	CreatedAt  time.Time
}

// Repository репозиторий версий политик
//
// Версии иммутабельны: новая конфигурация — это новая строка с новым хешем,
// никогда не изменение существующей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет версию политики
// Идемпотентно по (resource_id, hash): повторная запись той же версии
// возвращает уже существующую строку
func (r *Repository) Create(ctx context.Context, resourceID, hash, canonical string) (*Version, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("policy_versions").
		Columns("resource_id", "hash", "canonical").
		Values(resourceID, hash, canonical).
		Suffix("ON CONFLICT (resource_id, hash) DO UPDATE SET hash = EXCLUDED.hash").
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	version := Version{
		ResourceID: resourceID,
		Hash:       hash,
		Canonical:  canonical,
	}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&version.ID, &version.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &version, nil
}

// GetLatest получает последнюю версию политики ресурса
func (r *Repository) GetLatest(ctx context.Context, resourceID string) (*Version, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "resource_id", "hash", "canonical", "created_at").
		From("policy_versions").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatest - build select query: %v", ErrBuildQuery, err)
	}

	var version Version
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&version.ID,
		&version.ResourceID,
		&version.Hash,
		&version.Canonical,
		&version.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatest - scan version: %v", ErrScanRow, err)
	}

	return &version, nil
}

// GetByHash получает конкретную версию политики по её контентному хешу
func (r *Repository) GetByHash(ctx context.Context, resourceID, hash string) (*Version, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "resource_id", "hash", "canonical", "created_at").
		From("policy_versions").
		Where(squirrel.Eq{"resource_id": resourceID, "hash": hash}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHash - build select query: %v", ErrBuildQuery, err)
	}

	var version Version
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&version.ID,
		&version.ResourceID,
		&version.Hash,
		&version.Canonical,
		&version.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHash - scan version: %v", ErrScanRow, err)
	}

	return &version, nil
}
