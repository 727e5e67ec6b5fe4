package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestMergeDocumentsPreservesUntouchedKeys(t *testing.T) {
	base := doc(t, `{"category":"moving","notes":"gate code 42","moving":{"team_size":2,"stairs_flights":1,"custom":"x"}}`)
	patch := doc(t, `{"moving":{"team_size":4}}`)

	merged := MergeDocuments(base, patch)

	assert.Equal(t, "gate code 42", merged["notes"])
	moving := merged["moving"].(map[string]interface{})
	assert.Equal(t, float64(4), moving["team_size"])
	assert.Equal(t, float64(1), moving["stairs_flights"])
	assert.Equal(t, "x", moving["custom"])

	// inputs stay untouched
	assert.Equal(t, float64(2), base["moving"].(map[string]interface{})["team_size"])
}

func TestMergeDocumentsNullRemovesKey(t *testing.T) {
	base := doc(t, `{"a":1,"b":{"c":2,"d":3}}`)
	patch := doc(t, `{"a":null,"b":{"d":null}}`)

	merged := MergeDocuments(base, patch)

	_, hasA := merged["a"]
	assert.False(t, hasA)
	assert.Equal(t, map[string]interface{}{"c": float64(2)}, merged["b"])
}

func TestMergeDocumentsReplacesArrays(t *testing.T) {
	base := doc(t, `{"moving":{"heavy_items":[{"name":"piano","fee_cents":15000,"quantity":1}]}}`)
	patch := doc(t, `{"moving":{"heavy_items":[]}}`)

	merged := MergeDocuments(base, patch)

	assert.Empty(t, merged["moving"].(map[string]interface{})["heavy_items"])
}

func TestDecodeServiceDetails(t *testing.T) {
	details, err := DecodeServiceDetails(doc(t, `{"moving":{"team_size":3,"estimated_hours":4,"packing_mode":"kit","packing_rooms":3}}`))
	require.NoError(t, err)

	assert.Equal(t, CategoryMoving, details.Category)
	require.NotNil(t, details.Moving)
	assert.Equal(t, PackingFullKit, details.Moving.PackingMode)
	assert.Equal(t, 3, details.Moving.PackingRooms)
}

func TestDecodeServiceDetailsRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown category":       `{"category":"plumbing"}`,
		"negative hours":         `{"moving":{"estimated_hours":-1}}`,
		"unknown packing":        `{"moving":{"packing_mode":"bubble_wrap"}}`,
		"heavy item no name":     `{"moving":{"heavy_items":[{"fee_cents":100,"quantity":1}]}}`,
		"cleaning without body":  `{"category":"cleaning"}`,
		"wrong type":             `{"moving":{"team_size":"four"}}`,
		"material price too big": `{"moving":{"packing_mode":"pay_as_you_go","packing_materials":[{"name":"crate","price_cents":9000000000000000000,"quantity":2}]}}`,
		"insurance too big":      `{"moving":{"insurance_cents":100000001}}`,
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeServiceDetails(doc(t, in))
			assert.ErrorIs(t, err, ErrInvalidServiceDetails)
		})
	}
}

func TestWithMovingDerivedOverwritesOnlyDerivedKeys(t *testing.T) {
	base := doc(t, `{"notes":"keep","moving":{"team_size":2,"hourly_rate_cents":9000,"stairs_flights":2,"breakdown":{"mover_team":2}}}`)
	m := &MovingDetails{
		TeamSize:         4,
		HourlyRateCents:  18000,
		EstimatedHours:   3,
		PackingMode:      PackingSelfPack,
		PackingCostCents: 0,
		Breakdown:        &PriceBreakdown{MoverTeam: 4, HourlyRateCents: 18000},
		RateSource:       RateSourceExactTier,
	}

	out, err := WithMovingDerived(base, m)
	require.NoError(t, err)

	decoded, err := DecodeServiceDetails(out)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Moving.TeamSize)
	assert.Equal(t, int64(18000), decoded.Moving.HourlyRateCents)
	assert.Equal(t, 2, decoded.Moving.StairsFlights)
	require.NotNil(t, decoded.Moving.Breakdown)
	assert.Equal(t, 4, decoded.Moving.Breakdown.MoverTeam)
	assert.Equal(t, "keep", out["notes"])
}
