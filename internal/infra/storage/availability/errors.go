package availability

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило на день недели не найдено
	ErrRuleNotFound = errors.New("availability.repository: rule not found")

	// ErrOverrideNotFound возвращается, когда исключение не найдено
	ErrOverrideNotFound = errors.New("availability.repository: override not found")

	// ErrBusinessNotFound возвращается при нарушении внешнего ключа на компанию
	ErrBusinessNotFound = errors.New("availability.repository: business not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
