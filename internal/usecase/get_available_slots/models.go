package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// Options настройки генератора слотов
type Options struct {
	// ApplyExtraCapacity включает учет max_concurrent_jobs из исключений типа extra
	ApplyExtraCapacity bool
	// DefaultMinNoticeHours используется, когда у компании не задано время уведомления
	DefaultMinNoticeHours int
	// MaxRangeDays максимальная длина периода в днях (включительно)
	MaxRangeDays int
}

// Request модель запроса на получение доступности
type Request struct {
	BusinessID uuid.UUID
	StartDate  time.Time // Первая дата периода (включительно)
	EndDate    time.Time // Последняя дата периода (включительно)
}

// Response модель ответа с доступностью по датам
type Response struct {
	BusinessID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Slots      []domain.SlotAvailability // По два слота на дату: утро, день
}
