package editrequests

import "errors"

var (
	// ErrEditRequestNotFound возвращается, когда запрос на изменение не найден
	ErrEditRequestNotFound = errors.New("edit request not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrAlreadyDecided возвращается, когда по запросу уже принято решение
	ErrAlreadyDecided = errors.New("edit request already decided")

	// ErrRejectedByProcedure возвращается, когда хранимая процедура отклонила операцию
	ErrRejectedByProcedure = errors.New("operation rejected")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
