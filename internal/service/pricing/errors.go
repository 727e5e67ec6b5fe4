package pricing

import "errors"

var (
	// ErrNoRate возвращается, когда нет ни подходящего тарифа, ни ранее сохраненной ставки
	ErrNoRate = errors.New("pricing: no hourly rate available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing: invalid input")

	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = errors.New("pricing: business not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
