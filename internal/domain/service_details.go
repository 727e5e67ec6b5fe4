package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidServiceDetails is returned when a details document fails decoding or validation.
var ErrInvalidServiceDetails = errors.New("invalid service details")

// ServiceCategory tags which variant of ServiceDetails is populated.
type ServiceCategory string

const (
	CategoryMoving   ServiceCategory = "moving"
	CategoryCleaning ServiceCategory = "cleaning"
)

// PackingMode selects how packing is priced.
type PackingMode string

const (
	PackingFullKit    PackingMode = "full_kit"
	PackingPayAsYouGo PackingMode = "pay_as_you_go"
	PackingSelfPack   PackingMode = "self_pack"
)

// Normalize maps accepted aliases onto the canonical modes.
func (m PackingMode) Normalize() PackingMode {
	switch strings.ToLower(strings.TrimSpace(string(m))) {
	case "kit", "full_kit", "full-kit", "fullkit":
		return PackingFullKit
	case "pay_as_you_go", "pay-as-you-go", "payg":
		return PackingPayAsYouGo
	case "", "self_pack", "self-pack", "self", "none":
		return PackingSelfPack
	}
	return m
}

// Keys of the details document. Derived keys are always rewritten after a merge.
const (
	KeyCategory = "category"
	KeyMoving   = "moving"
	KeyCleaning = "cleaning"

	KeyTeamSize         = "team_size"
	KeyHourlyRateCents  = "hourly_rate_cents"
	KeyEstimatedHours   = "estimated_hours"
	KeyPackingCostCents = "packing_cost_cents"
	KeyBreakdown        = "breakdown"
	KeyRateSource       = "rate_source"
)

// ServiceDetails is the typed, category-tagged view of a booking's details document.
type ServiceDetails struct {
	Category ServiceCategory  `json:"category" validate:"required,oneof=moving cleaning"`
	Moving   *MovingDetails   `json:"moving,omitempty" validate:"required_if=Category moving"`
	Cleaning *CleaningDetails `json:"cleaning,omitempty" validate:"required_if=Category cleaning"`
}

// MovingDetails carries the inputs and derived outputs of a moving job.
type MovingDetails struct {
	TeamSize       int `json:"team_size"`
	EstimatedHours int `json:"estimated_hours" validate:"min=0,max=24"`

	PackingMode      PackingMode    `json:"packing_mode,omitempty"`
	PackingRooms     int            `json:"packing_rooms" validate:"min=0,max=30"`
	PackingMaterials []MaterialItem `json:"packing_materials,omitempty" validate:"omitempty,max=100,dive"`

	HeavyItems    []HeavyItem `json:"heavy_items,omitempty" validate:"omitempty,max=50,dive"`
	StairsFlights int         `json:"stairs_flights" validate:"min=0,max=20"`

	DestinationFeeCents int64 `json:"destination_fee_cents" validate:"min=0,max=100000000"`
	AdditionalFeesCents int64 `json:"additional_fees_cents" validate:"min=0,max=100000000"`
	StorageCents        int64 `json:"storage_cents" validate:"min=0,max=100000000"`
	InsuranceCents      int64 `json:"insurance_cents" validate:"min=0,max=100000000"`

	HourlyRateCents  int64           `json:"hourly_rate_cents"`
	PackingCostCents int64           `json:"packing_cost_cents"`
	Breakdown        *PriceBreakdown `json:"breakdown,omitempty"`
	RateSource       RateSource      `json:"rate_source,omitempty"`
}

// MaterialItem is a pay-as-you-go packing line.
type MaterialItem struct {
	Name       string `json:"name" validate:"required,max=120"`
	PriceCents int64  `json:"price_cents" validate:"min=0,max=100000000"`
	Quantity   int    `json:"quantity" validate:"min=0,max=1000"`
}

// HeavyItem is a surcharge for a single heavy or bulky item.
type HeavyItem struct {
	Name     string `json:"name" validate:"required,max=120"`
	FeeCents int64  `json:"fee_cents" validate:"min=0,max=100000000"`
	Quantity int    `json:"quantity" validate:"min=0,max=100"`
}

// CleaningDetails carries the inputs of a cleaning job.
type CleaningDetails struct {
	Bedrooms      int   `json:"bedrooms" validate:"min=0,max=20"`
	Bathrooms     int   `json:"bathrooms" validate:"min=0,max=20"`
	DeepClean     bool  `json:"deep_clean"`
	Hours         int   `json:"hours" validate:"min=0,max=24"`
	FlatRateCents int64 `json:"flat_rate_cents" validate:"min=0,max=100000000"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeServiceDetails turns a stored or merged document into the typed view and validates it.
// A document without a category is treated as moving.
func DecodeServiceDetails(doc map[string]interface{}) (*ServiceDetails, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidServiceDetails, err)
	}

	var details ServiceDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidServiceDetails, err)
	}

	if details.Category == "" {
		details.Category = CategoryMoving
	}
	if details.Category == CategoryMoving && details.Moving == nil {
		details.Moving = &MovingDetails{}
	}
	if details.Moving != nil {
		details.Moving.PackingMode = details.Moving.PackingMode.Normalize()
	}

	if err := details.Validate(); err != nil {
		return nil, err
	}
	return &details, nil
}

// Validate checks the struct tags and returns the first failing field.
func (d *ServiceDetails) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", ErrInvalidServiceDetails, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidServiceDetails, err)
	}
	if d.Moving != nil {
		switch d.Moving.PackingMode {
		case PackingFullKit, PackingPayAsYouGo, PackingSelfPack:
		default:
			return fmt.Errorf("%w: unknown packing_mode %q", ErrInvalidServiceDetails, d.Moving.PackingMode)
		}
	}
	return nil
}

// MergeDocuments deep-merges patch into base and returns a new document.
// Nested objects merge key by key, a null in patch removes the key, anything else replaces it.
// Neither input is modified.
func MergeDocuments(base, patch map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		out[k] = cloneValue(v)
	}

	for k, pv := range patch {
		if pv == nil {
			delete(out, k)
			continue
		}
		pm, patchIsMap := pv.(map[string]interface{})
		bm, baseIsMap := out[k].(map[string]interface{})
		if patchIsMap && baseIsMap {
			out[k] = MergeDocuments(bm, pm)
			continue
		}
		out[k] = cloneValue(pv)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return MergeDocuments(t, nil)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	}
	return v
}

// WithMovingDerived returns doc with the derived moving fields overwritten from m.
// Every other key of doc is kept as is.
func WithMovingDerived(doc map[string]interface{}, m *MovingDetails) (map[string]interface{}, error) {
	var breakdown interface{}
	if m.Breakdown != nil {
		raw, err := json.Marshal(m.Breakdown)
		if err != nil {
			return nil, fmt.Errorf("encode breakdown: %w", err)
		}
		var asMap map[string]interface{}
		if err := json.Unmarshal(raw, &asMap); err != nil {
			return nil, fmt.Errorf("encode breakdown: %w", err)
		}
		breakdown = asMap
	}

	moving := map[string]interface{}{
		KeyTeamSize:         m.TeamSize,
		KeyHourlyRateCents:  m.HourlyRateCents,
		KeyEstimatedHours:   m.EstimatedHours,
		KeyPackingCostCents: m.PackingCostCents,
		KeyBreakdown:        breakdown,
		KeyRateSource:       string(m.RateSource),
		"packing_mode":      string(m.PackingMode),
	}

	out := MergeDocuments(doc, nil)
	existing, _ := out[KeyMoving].(map[string]interface{})
	if existing == nil {
		existing = map[string]interface{}{}
	}
	for k, v := range moving {
		existing[k] = v
	}
	out[KeyMoving] = existing
	if _, ok := out[KeyCategory]; !ok {
		out[KeyCategory] = string(CategoryMoving)
	}
	return out, nil
}
