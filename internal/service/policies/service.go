package policies

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	storage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AvailabilityService/internal/policy"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policies/models"
)

// Service сервис управления версиями политик ресурсов
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Upsert подготавливает и сохраняет новую версию политики ресурса
//
// Подготовка (нормализация → канонизация → хеш → валидация) выполняется
// один раз здесь, в момент авторинга; путь чтения никогда не нормализует
// повторно. Семантические предупреждения не блокируют сохранение и
// возвращаются вызывающей стороне.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyVersionResponse, error) {
	s.logger.Info("Upsert: preparing policy for resource=%s by user=%d", req.ResourceID, req.UserID)

	// 1. Подготавливаем конфигурацию (нормализация, канонизация, хеш, валидация)
	prepared, err := policy.PrepareConfig(req.Config)
	if err != nil {
		s.logger.Warn("Upsert: config preparation failed for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for _, w := range prepared.Warnings {
		s.logger.Warn("Upsert: resource=%s policy warning %s: %s", req.ResourceID, w.Code, w.Message)
	}

	// 2. Сохраняем версию (идемпотентно по контентному хешу)
	version, err := s.policyRepo.Create(ctx, req.ResourceID, prepared.Hash, prepared.Canonical)
	if err != nil {
		s.logger.Error("Upsert: failed to store policy version for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to store policy version: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: stored policy version resource=%s hash=%s warnings=%d",
		req.ResourceID, version.Hash, len(prepared.Warnings))

	warnings := prepared.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}

	return &models.PolicyVersionResponse{
		ResourceID: version.ResourceID,
		Hash:       version.Hash,
		Warnings:   warnings,
		CreatedAt:  version.CreatedAt,
	}, nil
}

// GetActive возвращает активный (последний) снимок политики ресурса
func (s *Service) GetActive(ctx context.Context, resourceID string) (*models.PolicySnapshot, error) {
	version, err := s.policyRepo.GetLatest(ctx, resourceID)
	if err != nil {
		if errors.Is(err, storage.ErrPolicyNotFound) {
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("GetActive: failed to load policy for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: failed to load policy: %v", ErrInternal, err)
	}

	cfg, err := policy.DecodeConfig(version.Canonical)
	if err != nil {
		s.logger.Error("GetActive: stored canonical config is corrupt for resource=%s hash=%s: %v",
			resourceID, version.Hash, err)
		return nil, fmt.Errorf("%w: corrupt stored policy: %v", ErrInternal, err)
	}

	return &models.PolicySnapshot{
		ResourceID: version.ResourceID,
		Hash:       version.Hash,
		Canonical:  version.Canonical,
		Config:     cfg,
	}, nil
}

// GetVersion возвращает конкретную версию политики ресурса по её контентному
// хешу. Версии неизменяемы, поэтому ответ по хешу стабилен навсегда
func (s *Service) GetVersion(ctx context.Context, resourceID, hash string) (*models.PolicySnapshot, error) {
	version, err := s.policyRepo.GetByHash(ctx, resourceID, hash)
	if err != nil {
		if errors.Is(err, storage.ErrPolicyNotFound) {
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("GetVersion: failed to load policy for resource=%s hash=%s: %v", resourceID, hash, err)
		return nil, fmt.Errorf("%w: failed to load policy: %v", ErrInternal, err)
	}

	cfg, err := policy.DecodeConfig(version.Canonical)
	if err != nil {
		s.logger.Error("GetVersion: stored canonical config is corrupt for resource=%s hash=%s: %v",
			resourceID, version.Hash, err)
		return nil, fmt.Errorf("%w: corrupt stored policy: %v", ErrInternal, err)
	}

	return &models.PolicySnapshot{
		ResourceID: version.ResourceID,
		Hash:       version.Hash,
		Canonical:  version.Canonical,
		Config:     cfg,
	}, nil
}
