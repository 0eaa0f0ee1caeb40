package policies

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	storage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies/models"
)

type fakePolicyRepo struct {
	versions  map[string]*storage.Version
	createErr error
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{versions: make(map[string]*storage.Version)}
}

func (f *fakePolicyRepo) Create(_ context.Context, resourceID, hash, canonical string) (*storage.Version, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	v := &storage.Version{
		ID:         int64(len(f.versions) + 1),
		ResourceID: resourceID,
		Hash:       hash,
		Canonical:  canonical,
		CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	f.versions[resourceID] = v
	return v, nil
}

func (f *fakePolicyRepo) GetLatest(_ context.Context, resourceID string) (*storage.Version, error) {
	v, ok := f.versions[resourceID]
	if !ok {
		return nil, storage.ErrPolicyNotFound
	}
	return v, nil
}

func (f *fakePolicyRepo) GetByHash(_ context.Context, resourceID, hash string) (*storage.Version, error) {
	v, ok := f.versions[resourceID]
	if !ok || v.Hash != hash {
		return nil, storage.ErrPolicyNotFound
	}
	return v, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUpsert_StoresPreparedVersion(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Upsert(context.Background(), &models.UpsertPolicyRequest{
		ResourceID: "r1",
		UserID:     42,
		Config: map[string]any{
			"schema_version": float64(1),
			"default":        "closed",
			"config": map[string]any{
				"duration": map[string]any{"min_minutes": float64(30)},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "r1", resp.ResourceID)
	assert.Len(t, resp.Hash, 64)
	assert.NotNil(t, resp.Warnings)
	assert.Empty(t, resp.Warnings)

	stored := repo.versions["r1"]
	require.NotNil(t, stored)
	assert.Contains(t, stored.Canonical, `"min_ms":1800000`)
}

func TestUpsert_WarningsDoNotBlock(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Upsert(context.Background(), &models.UpsertPolicyRequest{
		ResourceID: "r1",
		UserID:     42,
		Config: map[string]any{
			"default": "closed",
			"rules": []any{
				map[string]any{"match": map[string]any{"kind": "weekly", "days": []any{"monday"}}},
				map[string]any{"match": map[string]any{"kind": "weekly", "days": []any{"monday"}}},
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, domain.WarnUnreachableDays, resp.Warnings[0].Code)
	assert.NotNil(t, repo.versions["r1"])
}

func TestUpsert_InvalidConfig(t *testing.T) {
	svc := NewService(newFakePolicyRepo(), nopLogger{})

	_, err := svc.Upsert(context.Background(), &models.UpsertPolicyRequest{
		ResourceID: "r1",
		UserID:     42,
		Config:     map[string]any{},
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUpsert_StorageFailure(t *testing.T) {
	repo := newFakePolicyRepo()
	repo.createErr = errors.New("connection refused")
	svc := NewService(repo, nopLogger{})

	_, err := svc.Upsert(context.Background(), &models.UpsertPolicyRequest{
		ResourceID: "r1",
		UserID:     42,
		Config:     map[string]any{"default": "open"},
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetActive_DecodesStoredSnapshot(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, nopLogger{})

	upserted, err := svc.Upsert(context.Background(), &models.UpsertPolicyRequest{
		ResourceID: "r1",
		UserID:     42,
		Config: map[string]any{
			"schema_version": float64(1),
			"default":        "open",
		},
	})
	require.NoError(t, err)

	snapshot, err := svc.GetActive(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, upserted.Hash, snapshot.Hash)
	require.NotNil(t, snapshot.Config)
	assert.Equal(t, domain.DefaultOpen, snapshot.Config.Default)
	assert.Equal(t, 1, snapshot.Config.SchemaVersion)
}

func TestGetActive_NotFound(t *testing.T) {
	svc := NewService(newFakePolicyRepo(), nopLogger{})

	_, err := svc.GetActive(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestGetVersion_SelectsByHash(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, nopLogger{})

	upserted, err := svc.Upsert(context.Background(), &models.UpsertPolicyRequest{
		ResourceID: "r1",
		UserID:     42,
		Config: map[string]any{
			"schema_version": float64(1),
			"default":        "closed",
		},
	})
	require.NoError(t, err)

	snapshot, err := svc.GetVersion(context.Background(), "r1", upserted.Hash)
	require.NoError(t, err)

	assert.Equal(t, upserted.Hash, snapshot.Hash)
	require.NotNil(t, snapshot.Config)
	assert.Equal(t, domain.DefaultClosed, snapshot.Config.Default)
}

func TestGetVersion_UnknownHash(t *testing.T) {
	repo := newFakePolicyRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.Upsert(context.Background(), &models.UpsertPolicyRequest{
		ResourceID: "r1",
		UserID:     42,
		Config: map[string]any{
			"schema_version": float64(1),
			"default":        "closed",
		},
	})
	require.NoError(t, err)

	_, err = svc.GetVersion(context.Background(), "r1", "deadbeef")
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}
