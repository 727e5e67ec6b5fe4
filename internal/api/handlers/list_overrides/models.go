package list_overrides

import (
	"fmt"
	"time"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// defaultWindowDays период по умолчанию, если from/to не заданы
const defaultWindowDays = 30

// ParsePeriod разбирает query параметры from/to (YYYY-MM-DD).
// Без параметров возвращается период от сегодняшней даты на defaultWindowDays дней.
func ParsePeriod(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	from := domain.DateOnly(now)
	if fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from: expected YYYY-MM-DD")
		}
		from = parsed
	}

	to := from.AddDate(0, 0, defaultWindowDays)
	if toStr != "" {
		parsed, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to: expected YYYY-MM-DD")
		}
		to = parsed
	}
	return from, to, nil
}
