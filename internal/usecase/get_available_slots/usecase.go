package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/policy"
	policiesService "github.com/m04kA/SMC-AvailabilityService/internal/service/policies"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	allocationRepo AllocationRepository
	policyProvider PolicyProvider
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	allocationRepo AllocationRepository,
	policyProvider PolicyProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		allocationRepo: allocationRepo,
		policyProvider: policyProvider,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%s, from=%s, to=%s, duration=%dms",
		req.ResourceID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339), req.DurationMs)

	// 1. Валидация входных данных и границы диапазона
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	// 2. Текущее время захватывается один раз
	now := uc.timeProvider.Now()

	// 3. Активный снимок политики; отсутствие политики — ресурс полностью открыт
	var cfg *domain.PolicyConfig
	snapshot, err := uc.policyProvider.GetActive(ctx, req.ResourceID)
	if err != nil && !errors.Is(err, policiesService.ErrPolicyNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to load policy for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to load policy: %v", ErrInternal, err)
	}
	if snapshot != nil {
		cfg = snapshot.Config
	}

	// 4. Разрешаем открытые дни диапазона
	days, err := policy.ResolveServiceDays(cfg, req.From, req.To, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve days for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to resolve days: %v", ErrInternal, err)
	}

	// 5. Активные блокирующие аллокации диапазона
	allocations, err := uc.allocationRepo.ListActiveInRange(ctx, req.ResourceID, req.From, req.To, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load allocations for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to load allocations: %v", ErrInternal, err)
	}

	// 6. Генерация дискретных кандидатов
	slots, err := availability.GenerateSlots(availability.SlotQuery{
		Days:               days,
		Allocations:        blockingIntervals(allocations),
		DurationMs:         req.DurationMs,
		Now:                now,
		Location:           loc,
		IncludeUnavailable: req.IncludeUnavailable,
		QueryStart:         req.From,
		QueryEnd:           req.To,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for resource=%s", len(slots), req.ResourceID)

	return &Response{
		ResourceID: req.ResourceID,
		From:       req.From,
		To:         req.To,
		DurationMs: req.DurationMs,
		Slots:      slots,
	}, nil
}

func blockingIntervals(allocations []*domain.Allocation) []domain.BlockingInterval {
	intervals := make([]domain.BlockingInterval, 0, len(allocations))
	for _, a := range allocations {
		intervals = append(intervals, a.Blocking())
	}
	return intervals
}
