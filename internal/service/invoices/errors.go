package invoices

import "errors"

var (
	// ErrInvoiceNotFound возвращается, когда счет не найден
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotInvoiceable возвращается, когда бронирование нельзя выставить к оплате
	ErrNotInvoiceable = errors.New("booking cannot be invoiced")

	// ErrAlreadyInvoiced возвращается, когда на бронирование уже выставлен счет
	ErrAlreadyInvoiced = errors.New("booking already invoiced")

	// ErrInvoiceNotEditable возвращается при попытке изменить отправленный счет
	ErrInvoiceNotEditable = errors.New("only draft invoices can be edited")

	// ErrInvalidTransition возвращается при недопустимой смене статуса счета
	ErrInvalidTransition = errors.New("invalid invoice status transition")

	// ErrOverpayment возвращается, когда платеж превышает остаток по счету
	ErrOverpayment = errors.New("payment exceeds invoice balance")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
