package preview_pricing

import (
	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/pricing"
	"github.com/LomaCotta/haulers-app-sub001/pkg/money"
)

// PreviewResponse HTTP response model
type PreviewResponse struct {
	TeamSize         int                   `json:"teamSize"`
	HourlyRateCents  int64                 `json:"hourlyRateCents"`
	BillableHours    int                   `json:"billableHours"`
	PackingCostCents int64                 `json:"packingCostCents"`
	RateSource       string                `json:"rateSource"`
	Breakdown        domain.PriceBreakdown `json:"breakdown"`
	TotalCents       int64                 `json:"totalCents"`
	Total            string                `json:"total"` // "$1,234.56"
}

// ToMovingDetails декодирует тело запроса как документ деталей переезда
// (те же ключи, что и в service_details бронирования) и валидирует его
func ToMovingDetails(body map[string]interface{}) (*domain.MovingDetails, error) {
	details, err := domain.DecodeServiceDetails(map[string]interface{}{
		domain.KeyCategory: string(domain.CategoryMoving),
		domain.KeyMoving:   body,
	})
	if err != nil {
		return nil, err
	}
	return details.Moving, nil
}

// FromPricingResult конвертирует результат расчета в HTTP модель
func FromPricingResult(r *pricing.Result) *PreviewResponse {
	return &PreviewResponse{
		TeamSize:         r.TeamSize,
		HourlyRateCents:  r.HourlyRateCents,
		BillableHours:    r.BillableHours,
		PackingCostCents: r.PackingCostCents,
		RateSource:       string(r.RateSource),
		Breakdown:        r.Breakdown,
		TotalCents:       r.Breakdown.TotalCents,
		Total:            money.Format(r.Breakdown.TotalCents),
	}
}
