package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// MaxReasonLength максимальная длина причины отказа
const MaxReasonLength = 1000

// ErrReasonTooLong возвращается, когда причина отказа слишком длинная
var ErrReasonTooLong = errors.New("reason is too long")

// RejectRequest запрос на отклонение изменения
type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Normalize обрезает пробелы и проверяет длину причины
func (r *RejectRequest) Normalize() (string, error) {
	if r == nil {
		return "", nil
	}
	reason := strings.TrimSpace(r.Reason)
	if len(reason) > MaxReasonLength {
		return "", ErrReasonTooLong
	}
	return reason, nil
}

// DecisionResponse результат решения по запросу
type DecisionResponse struct {
	RequestID uuid.UUID `json:"requestId"`
	BookingID uuid.UUID `json:"bookingId"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
}
