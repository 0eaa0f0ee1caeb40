package cancel_allocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	storage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/allocation"
)

type fakeAllocationRepo struct {
	allocation *domain.Allocation
	getErr     error
	updateErr  error

	updatedID     int64
	updatedStatus domain.AllocationStatus
}

func (f *fakeAllocationRepo) GetByID(_ context.Context, id int64) (*domain.Allocation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.allocation == nil || f.allocation.ID != id {
		return nil, storage.ErrAllocationNotFound
	}
	return f.allocation, nil
}

func (f *fakeAllocationRepo) UpdateStatus(_ context.Context, id int64, status domain.AllocationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingAllocation(id, userID int64) *domain.Allocation {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &domain.Allocation{
		ID:             id,
		ResourceID:     "room-1",
		UserID:         userID,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		EffectiveStart: start,
		EffectiveEnd:   start.Add(time.Hour),
		Status:         domain.AllocationPending,
	}
}

func newTestUseCase(repo *fakeAllocationRepo) *UseCase {
	return NewUseCase(repo, fakeTxManager{}, nopLogger{})
}

func TestExecute_CancelsPendingAllocation(t *testing.T) {
	repo := &fakeAllocationRepo{allocation: pendingAllocation(7, 42)}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, AllocationID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.AllocationID)
	assert.Equal(t, domain.AllocationCancelled, resp.Status)
	assert.Equal(t, int64(7), repo.updatedID)
	assert.Equal(t, domain.AllocationCancelled, repo.updatedStatus)
}

func TestExecute_CancelsConfirmedAllocation(t *testing.T) {
	allocation := pendingAllocation(7, 42)
	allocation.Status = domain.AllocationConfirmed
	repo := &fakeAllocationRepo{allocation: allocation}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, AllocationID: 7})
	require.NoError(t, err)
	assert.Equal(t, domain.AllocationCancelled, resp.Status)
}

func TestExecute_AllocationNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAllocationRepo{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, AllocationID: 7})
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

func TestExecute_ForeignAllocationForbidden(t *testing.T) {
	repo := &fakeAllocationRepo{allocation: pendingAllocation(7, 99)}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, AllocationID: 7})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Zero(t, repo.updatedID, "status must not change")
}

func TestExecute_AlreadyCancelledOrExpired(t *testing.T) {
	for _, status := range []domain.AllocationStatus{domain.AllocationCancelled, domain.AllocationExpired} {
		t.Run(string(status), func(t *testing.T) {
			allocation := pendingAllocation(7, 42)
			allocation.Status = status
			repo := &fakeAllocationRepo{allocation: allocation}
			uc := newTestUseCase(repo)

			_, err := uc.Execute(context.Background(), &Request{UserID: 42, AllocationID: 7})
			assert.ErrorIs(t, err, ErrNotCancellable)
			assert.Zero(t, repo.updatedID, "status must not change")
		})
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeAllocationRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{UserID: 0, AllocationID: 7}},
		{"zero allocation", &Request{UserID: 42, AllocationID: 0}},
		{"negative allocation", &Request{UserID: 42, AllocationID: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	repo := &fakeAllocationRepo{allocation: pendingAllocation(7, 42), updateErr: errors.New("boom")}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, AllocationID: 7})
	assert.ErrorIs(t, err, ErrInternal)
}
