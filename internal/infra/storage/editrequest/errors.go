package editrequest

import "errors"

var (
	// ErrEditRequestNotFound возвращается, когда запрос на изменение не найден
	ErrEditRequestNotFound = errors.New("editrequest.repository: edit request not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("editrequest.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("editrequest.repository: failed to scan row")
)
