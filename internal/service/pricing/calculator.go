package pricing

import (
	"fmt"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// Input входные данные расчета стоимости переезда
type Input struct {
	Details  *domain.MovingDetails
	Tiers    []domain.PricingTier
	Settings domain.PricingSettings

	// Ранее сохраненные значения бронирования, используются как запасной вариант
	StoredTeamSize        int
	StoredHourlyRateCents int64
}

// Result результат расчета
type Result struct {
	TeamSize         int
	HourlyRateCents  int64
	BillableHours    int
	PackingCostCents int64
	RateSource       domain.RateSource
	Breakdown        domain.PriceBreakdown
}

// Calculate считает детализированную стоимость. Все суммы в центах, без float.
//
// Если для размера бригады нет тарифа с пригодной ставкой, используется ранее
// сохраненная ставка бронирования, и это отражается в RateSource = stored.
// Если сохраненной ставки тоже нет, возвращается ErrNoRate.
func Calculate(in Input) (*Result, error) {
	if in.Details == nil {
		return nil, fmt.Errorf("%w: moving details are required", ErrInvalidInput)
	}
	d := in.Details

	teamSize := ResolveTeamSize(d.TeamSize, in.StoredTeamSize)

	hourly, minHours, source, ok := lookupRate(in.Tiers, teamSize)
	if !ok {
		if in.StoredHourlyRateCents <= 0 {
			return nil, fmt.Errorf("%w: team_size=%d", ErrNoRate, teamSize)
		}
		hourly, minHours, source = in.StoredHourlyRateCents, 0, domain.RateSourceStored
	}

	billable := d.EstimatedHours
	if billable < minHours {
		billable = minHours
	}

	packing, ok := packingCost(d, in.Settings.PackingRoomRateCents)
	if !ok {
		return nil, fmt.Errorf("%w: packing cost exceeds limit", ErrInvalidInput)
	}
	heavy, ok := heavyItemsCost(d.HeavyItems)
	if !ok {
		return nil, fmt.Errorf("%w: heavy items cost exceeds limit", ErrInvalidInput)
	}
	base, ok := mulCents(hourly, int64(billable))
	if !ok {
		return nil, fmt.Errorf("%w: base price exceeds limit", ErrInvalidInput)
	}
	stairs, ok := mulCents(in.Settings.StairsFlightRateCents, int64(d.StairsFlights))
	if !ok {
		return nil, fmt.Errorf("%w: stairs cost exceeds limit", ErrInvalidInput)
	}

	b := domain.PriceBreakdown{
		MoverTeam:        teamSize,
		HourlyRateCents:  hourly,
		BillableHours:    billable,
		BaseCents:        base,
		AdditionalCents:  d.AdditionalFeesCents,
		DestinationCents: d.DestinationFeeCents,
		HeavyItemsCents:  heavy,
		PackingCents:     packing,
		StairsCents:      stairs,
	}
	if d.StorageCents > 0 {
		b.StorageCents = d.StorageCents
	}
	if d.InsuranceCents > 0 {
		b.InsuranceCents = d.InsuranceCents
	}

	total, ok := sumCents(b.BaseCents, b.AdditionalCents, b.DestinationCents, b.HeavyItemsCents,
		b.PackingCents, b.StairsCents, b.StorageCents, b.InsuranceCents)
	if !ok {
		return nil, fmt.Errorf("%w: total exceeds limit", ErrInvalidInput)
	}
	b.TotalCents = total

	return &Result{
		TeamSize:         teamSize,
		HourlyRateCents:  hourly,
		BillableHours:    billable,
		PackingCostCents: packing,
		RateSource:       source,
		Breakdown:        b,
	}, nil
}

// Apply перезаписывает производные поля деталей результатом расчета
func (r *Result) Apply(d *domain.MovingDetails) {
	breakdown := r.Breakdown
	d.TeamSize = r.TeamSize
	d.HourlyRateCents = r.HourlyRateCents
	d.EstimatedHours = r.BillableHours
	d.PackingCostCents = r.PackingCostCents
	d.RateSource = r.RateSource
	d.Breakdown = &breakdown
}

// ResolveTeamSize ограничивает размер бригады диапазоном [1, 8].
// Ноль означает "не указан": берется сохраненное значение, иначе значение по умолчанию.
func ResolveTeamSize(requested, stored int) int {
	if requested == 0 {
		if stored >= domain.MinTeamSize && stored <= domain.MaxTeamSize {
			return stored
		}
		if stored > domain.MaxTeamSize {
			return domain.MaxTeamSize
		}
		return domain.DefaultTeamSize
	}
	if requested < domain.MinTeamSize {
		return domain.MinTeamSize
	}
	if requested > domain.MaxTeamSize {
		return domain.MaxTeamSize
	}
	return requested
}

// lookupRate ищет тариф по размеру бригады: точное совпадение, иначе ближайший
// по модулю разницы (при равенстве меньшая бригада). Тарифы без ставки пропускаются.
func lookupRate(tiers []domain.PricingTier, teamSize int) (int64, int, domain.RateSource, bool) {
	var (
		best     *domain.PricingTier
		bestRate int64
		bestDiff int
	)

	for i := range tiers {
		rate, ok := tiers[i].HourlyRate()
		if !ok {
			continue
		}
		diff := abs(tiers[i].TeamSize - teamSize)
		if best == nil || diff < bestDiff || (diff == bestDiff && tiers[i].TeamSize < best.TeamSize) {
			best, bestRate, bestDiff = &tiers[i], rate, diff
		}
	}

	if best == nil {
		return 0, 0, "", false
	}

	source := domain.RateSourceNearestTier
	if bestDiff == 0 {
		source = domain.RateSourceExactTier
	}
	return bestRate, best.MinHours, source, true
}

func packingCost(d *domain.MovingDetails, roomRateCents int64) (int64, bool) {
	switch d.PackingMode.Normalize() {
	case domain.PackingFullKit:
		return mulCents(roomRateCents, int64(d.PackingRooms))
	case domain.PackingPayAsYouGo:
		var sum int64
		for _, m := range d.PackingMaterials {
			line, ok := mulCents(m.PriceCents, int64(m.Quantity))
			if !ok {
				return 0, false
			}
			if sum, ok = sumCents(sum, line); !ok {
				return 0, false
			}
		}
		return sum, true
	}
	return 0, true
}

func heavyItemsCost(items []domain.HeavyItem) (int64, bool) {
	var sum int64
	for _, it := range items {
		line, ok := mulCents(it.FeeCents, int64(it.Quantity))
		if !ok {
			return 0, false
		}
		if sum, ok = sumCents(sum, line); !ok {
			return 0, false
		}
	}
	return sum, true
}

// mulCents умножает сумму на количество. false, если операнд отрицателен
// или результат больше domain.MaxPriceCents.
func mulCents(cents, n int64) (int64, bool) {
	if cents < 0 || n < 0 {
		return 0, false
	}
	if cents == 0 || n == 0 {
		return 0, true
	}
	if cents > domain.MaxPriceCents/n {
		return 0, false
	}
	return cents * n, true
}

// sumCents складывает суммы с тем же ограничением, что и mulCents
func sumCents(values ...int64) (int64, bool) {
	var total int64
	for _, v := range values {
		if v < 0 || v > domain.MaxPriceCents-total {
			return 0, false
		}
		total += v
	}
	return total, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
