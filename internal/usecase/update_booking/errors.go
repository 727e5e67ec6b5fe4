package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на изменение
	ErrAccessDenied = errors.New("access denied")

	// ErrBookingLocked возвращается при попытке изменить оплаченное бронирование
	ErrBookingLocked = errors.New("booking is locked after payment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNoRate возвращается, когда стоимость нельзя рассчитать: нет тарифа и сохраненной ставки
	ErrNoRate = errors.New("no pricing rate for team size")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
