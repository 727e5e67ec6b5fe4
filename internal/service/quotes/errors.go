package quotes

import "errors"

var (
	// ErrQuoteNotFound возвращается, когда коммерческое предложение не найдено
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQuoteNotActionable возвращается, когда на предложение уже нельзя ответить
	ErrQuoteNotActionable = errors.New("quote can no longer be answered")

	// ErrRejectedByProcedure возвращается, когда хранимая процедура отклонила операцию
	ErrRejectedByProcedure = errors.New("operation rejected")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
