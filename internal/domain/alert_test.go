package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, 20, th.HighRiskScore)
	assert.Equal(t, 10, th.MediumRiskScore)
	assert.Equal(t, 10, th.HighActivity)
	assert.Equal(t, 50.0, th.LowVerificationRate)
	assert.Equal(t, 24.0, th.HighResponseHours)
}

func TestThresholdPatchApply(t *testing.T) {
	t.Run("nil fields keep current values", func(t *testing.T) {
		got := ThresholdPatch{}.Apply(DefaultThresholds())
		assert.Equal(t, DefaultThresholds(), got)
	})

	t.Run("set fields override", func(t *testing.T) {
		activity := 25
		rate := 70.0
		got := ThresholdPatch{HighActivity: &activity, LowVerificationRate: &rate}.Apply(DefaultThresholds())

		assert.Equal(t, 25, got.HighActivity)
		assert.Equal(t, 70.0, got.LowVerificationRate)
		assert.Equal(t, 20, got.HighRiskScore)
		assert.Equal(t, 24.0, got.HighResponseHours)
	})
}
