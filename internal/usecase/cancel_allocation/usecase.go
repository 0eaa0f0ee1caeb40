package cancel_allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	storage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/allocation"
)

// UseCase use case отмены аллокации ресурса
//
// Проверка статуса и перевод в cancelled выполняются под одной
// SERIALIZABLE-транзакцией: конкурирующее решение о допуске по тому же
// ресурсу либо увидит аллокацию активной, либо уже отменённой, но не
// промежуточное состояние.
type UseCase struct {
	allocationRepo AllocationRepository
	txManager      TxManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	allocationRepo AllocationRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		allocationRepo: allocationRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет use case отмены аллокации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAllocation: user=%d, allocation=%d", req.UserID, req.AllocationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAllocation: validation failed: %v", err)
		return nil, err
	}

	var resp *Response
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		resp, err = uc.cancelInTx(txCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAllocation: cancelled allocation=%d by user=%d", resp.AllocationID, req.UserID)
	return resp, nil
}

func (uc *UseCase) cancelInTx(ctx context.Context, req *Request) (*Response, error) {
	// 2. Загружаем аллокацию уже под транзакцией
	allocation, err := uc.allocationRepo.GetByID(ctx, req.AllocationID)
	if err != nil {
		if errors.Is(err, storage.ErrAllocationNotFound) {
			return nil, ErrAllocationNotFound
		}
		uc.logger.Error("CancelAllocation: failed to load allocation=%d: %v", req.AllocationID, err)
		return nil, fmt.Errorf("%w: failed to load allocation: %v", ErrInternal, err)
	}
	uc.logger.Debug("CancelAllocation: loaded allocation=%d status=%s resource=%s",
		allocation.ID, allocation.Status, allocation.ResourceID)

	// 3. Отменить можно только собственную аллокацию
	if allocation.UserID != req.UserID {
		uc.logger.Warn("CancelAllocation: allocation=%d belongs to user=%d, requested by user=%d",
			allocation.ID, allocation.UserID, req.UserID)
		return nil, ErrNotOwner
	}

	// 4. Отменяются только pending и confirmed; повторная отмена — конфликт
	if !allocation.CanBeCancelled() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, allocation.Status)
	}

	// 5. Переводим в cancelled
	if err := uc.allocationRepo.UpdateStatus(ctx, allocation.ID, domain.AllocationCancelled); err != nil {
		uc.logger.Error("CancelAllocation: failed to update allocation=%d: %v", req.AllocationID, err)
		return nil, fmt.Errorf("%w: failed to update allocation: %v", ErrInternal, err)
	}

	return &Response{
		AllocationID: allocation.ID,
		Status:       domain.AllocationCancelled,
	}, nil
}
