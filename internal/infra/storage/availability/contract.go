package availability

import "github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
