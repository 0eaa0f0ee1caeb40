package cancel_allocation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrAllocationNotFound возвращается, когда аллокация не найдена
	ErrAllocationNotFound = errors.New("usecase: allocation not found")

	// ErrNotOwner возвращается при попытке отменить чужую аллокацию
	ErrNotOwner = errors.New("usecase: allocation belongs to another user")

	// ErrNotCancellable возвращается, когда аллокация уже отменена или истекла
	ErrNotCancellable = errors.New("usecase: allocation cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
