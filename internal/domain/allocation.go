package domain

import "time"

// AllocationStatus статус аллокации ресурса
type AllocationStatus string

const (
	AllocationPending   AllocationStatus = "pending"
	AllocationConfirmed AllocationStatus = "confirmed"
	AllocationCancelled AllocationStatus = "cancelled"
	AllocationExpired   AllocationStatus = "expired"
)

// Allocation a stored time-bound allocation of a resource.
//
// StartTime/EndTime is the customer-visible commitment, EffectiveStart/
// EffectiveEnd the buffer-expanded interval that actually blocks the
// resource. The availability engine only ever sees pre-filtered active
// allocations (active/expired/cancelled bookkeeping is a persistence
// concern, see the allocation repository).
type Allocation struct {
	ID         int64
	ResourceID string
	UserID     int64

	StartTime      time.Time
	EndTime        time.Time
	EffectiveStart time.Time
	EffectiveEnd   time.Time

	Status        AllocationStatus
	HoldExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the allocation currently blocks the resource
func (a *Allocation) IsActive(now time.Time) bool {
	switch a.Status {
	case AllocationCancelled, AllocationExpired:
		return false
	case AllocationPending:
		// Неподтверждённая бронь с истёкшим hold больше не блокирует ресурс
		if a.HoldExpiresAt != nil && !a.HoldExpiresAt.After(now) {
			return false
		}
		return true
	default:
		return true
	}
}

// CanBeCancelled returns true if the allocation can be cancelled
func (a *Allocation) CanBeCancelled() bool {
	return a.Status == AllocationPending || a.Status == AllocationConfirmed
}

// BlockingInterval интервал {resourceId, startTime, endTime}, передаваемый в движок
// Всегда буферно-расширенный эффективный интервал аллокации
type BlockingInterval struct {
	ResourceID string
	StartTime  time.Time
	EndTime    time.Time
}

// Blocking возвращает эффективный интервал аллокации для движка доступности
func (a *Allocation) Blocking() BlockingInterval {
	return BlockingInterval{
		ResourceID: a.ResourceID,
		StartTime:  a.EffectiveStart,
		EndTime:    a.EffectiveEnd,
	}
}

// InactiveStatuses список статусов, не блокирующих ресурс
// Используется репозиторием при выборке активных аллокаций
var InactiveStatuses = []AllocationStatus{
	AllocationCancelled,
	AllocationExpired,
}
