package rpc

import "errors"

var (
	// ErrTransport возвращается, когда вызов процедуры не дошел до платформы
	ErrTransport = errors.New("rpc client: transport error")

	// ErrInvalidResponse возвращается при нераспознанном ответе процедуры
	ErrInvalidResponse = errors.New("rpc client: invalid response")

	// ErrPlatform возвращается, когда платформа ответила собственной ошибкой
	// (нарушение ограничения, отсутствующая функция, нет прав). Текст ошибки только логируется.
	ErrPlatform = errors.New("rpc client: platform error")

	// ErrProcedureFailed возвращается, когда процедура сообщила об ошибке
	ErrProcedureFailed = errors.New("rpc client: procedure reported failure")
)
