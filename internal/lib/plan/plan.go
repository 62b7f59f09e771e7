// Package plan считает даты окончания абонементов по типу тарифа.
package plan

import "time"

// Типы тарифов.
const (
	Monthly   = "Monthly"
	Quarterly = "Quarterly"
	Yearly    = "Yearly"
)

var types = []string{Monthly, Quarterly, Yearly}

// Types возвращает все известные типы тарифов в порядке отображения.
func Types() []string {
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// IsValid сообщает, известен ли тип тарифа.
func IsValid(planType string) bool {
	switch planType {
	case Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// EndDate возвращает дату окончания абонемента: start плюс 1 месяц, 3 месяца или 1 год.
//
// Арифметика календарная (time.AddDate), переполнение дня месяца переносится вперёд:
// 31 января + 1 месяц = 2 или 3 марта. Для неизвестного типа тарифа возвращается start без изменений.
func EndDate(start time.Time, planType string) time.Time {
	switch planType {
	case Monthly:
		return start.AddDate(0, 1, 0)
	case Quarterly:
		return start.AddDate(0, 3, 0)
	case Yearly:
		return start.AddDate(1, 0, 0)
	default:
		return start
	}
}
