package evaluate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/policy"
	policiesService "github.com/m04kA/SMC-AvailabilityService/internal/service/policies"
)

// UseCase use case принятия решения о допуске бронирования
//
// Решение и запись аллокации выполняются под одной SERIALIZABLE-транзакцией:
// decisionTime захватывается ровно один раз внутри неё, что исключает гонку
// "прочитал — решил" между конкурирующими запросами по одному ресурсу.
type UseCase struct {
	allocationRepo AllocationRepository
	policyProvider PolicyProvider
	txManager      TxManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	allocationRepo AllocationRepository,
	policyProvider PolicyProvider,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		allocationRepo: allocationRepo,
		policyProvider: policyProvider,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case решения о допуске
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EvaluateBooking: user=%d, resource=%s, start=%s, end=%s",
		req.UserID, req.ResourceID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EvaluateBooking: validation failed: %v", err)
		return nil, err
	}

	var resp *Response
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		resp, err = uc.evaluateInTx(txCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	if resp.Allowed {
		uc.logger.Info("EvaluateBooking: allowed user=%d resource=%s effective=[%s, %s)",
			req.UserID, req.ResourceID, resp.EffectiveStart.Format(time.RFC3339), resp.EffectiveEnd.Format(time.RFC3339))
	} else {
		uc.logger.Info("EvaluateBooking: rejected user=%d resource=%s code=%s",
			req.UserID, req.ResourceID, resp.Rejection.Code)
	}
	return resp, nil
}

func (uc *UseCase) evaluateInTx(ctx context.Context, req *Request) (*Response, error) {
	// 2. Захватываем decisionTime один раз, уже под транзакцией
	now := uc.timeProvider.Now()

	// 3. Загружаем активный снимок политики; отсутствие политики — ресурс полностью открыт
	var cfg *domain.PolicyConfig
	var policyHash string
	snapshot, err := uc.policyProvider.GetActive(ctx, req.ResourceID)
	if err != nil && !errors.Is(err, policiesService.ErrPolicyNotFound) {
		uc.logger.Error("EvaluateBooking: failed to load policy for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to load policy: %v", ErrInternal, err)
	}
	if snapshot != nil {
		cfg = snapshot.Config
		policyHash = snapshot.Hash
	}

	// 4. Чистое решение допуска
	decision := policy.Evaluate(cfg, domain.BookingRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, domain.EvaluationContext{
		DecisionTime: now,
		Timezone:     req.Timezone,
		SkipPolicy:   req.SkipPolicy,
	})

	if !decision.Allowed {
		return rejectedResponse(policyHash, decision.Rejection), nil
	}

	// 5. Конфликты против активных аллокаций по эффективному интервалу
	existing, err := uc.allocationRepo.ListActiveInRange(ctx, req.ResourceID,
		decision.EffectiveStart, decision.EffectiveEnd, now)
	if err != nil {
		uc.logger.Error("EvaluateBooking: failed to load allocations for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to load allocations: %v", ErrInternal, err)
	}
	if len(existing) > 0 {
		return rejectedResponse(policyHash, &domain.Rejection{
			Code:    domain.RejectSlotConflict,
			Message: "requested time conflicts with an existing allocation",
			Details: map[string]any{"conflicts": len(existing)},
		}), nil
	}

	resp := &Response{
		Allowed:        true,
		EffectiveStart: &decision.EffectiveStart,
		EffectiveEnd:   &decision.EffectiveEnd,
		BufferBeforeMs: decision.BufferBeforeMs,
		BufferAfterMs:  decision.BufferAfterMs,
		PolicyHash:     policyHash,
	}
	if req.DryRun {
		return resp, nil
	}

	// 6. Записываем аллокацию: эффективный интервал блокирует ресурс,
	// запрошенный остаётся клиентским обязательством
	allocation := &domain.Allocation{
		ResourceID:     req.ResourceID,
		UserID:         req.UserID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		EffectiveStart: decision.EffectiveStart,
		EffectiveEnd:   decision.EffectiveEnd,
		Status:         domain.AllocationPending,
	}
	if holdMs := decision.ResolvedConfig.HoldDurationMs(); holdMs > 0 {
		expires := now.Add(time.Duration(holdMs) * time.Millisecond)
		allocation.HoldExpiresAt = &expires
	}

	created, err := uc.allocationRepo.Create(ctx, allocation)
	if err != nil {
		uc.logger.Error("EvaluateBooking: failed to create allocation for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to create allocation: %v", ErrInternal, err)
	}
	resp.AllocationID = &created.ID

	return resp, nil
}

func rejectedResponse(policyHash string, rejection *domain.Rejection) *Response {
	return &Response{
		Allowed:    false,
		PolicyHash: policyHash,
		Rejection:  rejection,
	}
}
