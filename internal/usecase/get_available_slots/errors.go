package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRangeTooWide возвращается, когда запрошенный диапазон превышает лимит для слотов
	ErrRangeTooWide = errors.New("query range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
