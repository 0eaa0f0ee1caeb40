package policies

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда у ресурса нет сохранённой политики
	ErrPolicyNotFound = errors.New("policies.service: policy not found")

	// ErrInvalidConfig возвращается, когда авторская конфигурация не поддаётся подготовке
	ErrInvalidConfig = errors.New("policies.service: invalid policy config")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policies.service: internal error")
)
