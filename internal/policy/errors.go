package policy

import "errors"

var (
	// ErrEmptyConfig возвращается при попытке подготовить пустую конфигурацию
	ErrEmptyConfig = errors.New("policy: config is empty")

	// ErrDecodeConfig возвращается, когда каноническая форма не декодируется в типизированную модель
	ErrDecodeConfig = errors.New("policy: failed to decode canonical config")
)
