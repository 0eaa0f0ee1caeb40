// Package types общие типы-значения, используемые доменом и движком
package types

import (
	"fmt"
)

// TimeString время суток в формате HH:MM (24-часовой формат)
// "24:00" допустимо и означает начало следующих суток (ровно 1440 минут)
type TimeString string

// NewTimeStringFromString валидирует строку HH:MM и возвращает TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if _, err := ts.Minutes(); err != nil {
		return "", err
	}
	return ts, nil
}

// Minutes возвращает количество минут от полуночи (0..1440)
func (t TimeString) Minutes() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("types: invalid time string %q, expected HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("types: invalid time string %q, expected HH:MM", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')

	// "24:00" — единственная допустимая форма с часом 24
	if h == 24 && m == 0 {
		return 24 * 60, nil
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("types: time string %q out of range", s)
	}
	return h*60 + m, nil
}

// Ms возвращает количество миллисекунд от полуночи
func (t TimeString) Ms() (int64, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	return int64(minutes) * 60_000, nil
}
