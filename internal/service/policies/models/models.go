package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UpsertPolicyRequest запрос на создание новой версии политики ресурса
// Config — сырая авторская конфигурация (дружественные единицы допустимы)
type UpsertPolicyRequest struct {
	ResourceID string
	UserID     int64
	Config     map[string]any
}

// PolicyVersionResponse результат сохранения версии политики
type PolicyVersionResponse struct {
	ResourceID string           `json:"resourceId"`
	Hash       string           `json:"hash"`
	Warnings   []domain.Warning `json:"warnings"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// PolicySnapshot активный снимок политики ресурса
// Config декодирован из канонической формы и готов для вычислителя
type PolicySnapshot struct {
	ResourceID string
	Hash       string
	Canonical  string
	Config     *domain.PolicyConfig
}
